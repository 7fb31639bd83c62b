package drag

import (
	"errors"
	"fmt"
	"time"

	models "docspace/internal/domain/models/workspace"

	"github.com/golang-jwt/jwt/v5"
)

const payloadIssuer = "docspace/drag"

// ErrInvalidPayload is returned for payloads that fail to parse or verify
var ErrInvalidPayload = errors.New("invalid drag payload")

type payloadClaims struct {
	Item models.FileItem `json:"item"`
	jwt.RegisteredClaims
}

// PayloadCodec serializes the dragged item for drops that arrive from a
// different list instance than the one that started the drag
type PayloadCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewPayloadCodec creates a codec signing with secret (HS256)
func NewPayloadCodec(secret string, ttl time.Duration) (*PayloadCodec, error) {
	if len(secret) < 16 {
		return nil, fmt.Errorf("drag payload secret must be at least 16 bytes")
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &PayloadCodec{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Encode signs item for sessionID
func (c *PayloadCodec) Encode(sessionID string, item models.FileItem) (string, error) {
	now := c.now()
	claims := payloadClaims{
		Item: item,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    payloadIssuer,
			Subject:   item.ID,
			ID:        sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign drag payload: %w", err)
	}
	return token, nil
}

// Decode verifies a payload and returns the item and originating session
func (c *PayloadCodec) Decode(payload string) (models.FileItem, string, error) {
	var claims payloadClaims
	_, err := jwt.ParseWithClaims(payload, &claims,
		func(*jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(payloadIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return models.FileItem{}, "", fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if claims.Item.ID == "" || claims.Item.ID != claims.Subject {
		return models.FileItem{}, "", fmt.Errorf("%w: item does not match subject", ErrInvalidPayload)
	}
	return claims.Item, claims.ID, nil
}
