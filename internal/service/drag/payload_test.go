package drag

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-drag-secret-0123456789"

func TestPayloadRoundTrip(t *testing.T) {
	codec, err := NewPayloadCodec(testSecret, time.Minute)
	require.NoError(t, err)

	payload, err := codec.Encode("session-1", heartbeat)
	require.NoError(t, err)

	item, sessionID, err := codec.Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, heartbeat, item)
	assert.Equal(t, "session-1", sessionID)
}

func TestPayloadRejected(t *testing.T) {
	codec, err := NewPayloadCodec(testSecret, time.Minute)
	require.NoError(t, err)
	payload, err := codec.Encode("session-1", heartbeat)
	require.NoError(t, err)

	other, err := NewPayloadCodec("another-secret-with-length", time.Minute)
	require.NoError(t, err)
	forged, err := other.Encode("session-1", heartbeat)
	require.NoError(t, err)

	mismatched, err := jwt.NewWithClaims(jwt.SigningMethodHS256, payloadClaims{
		Item: heartbeat,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    payloadIssuer,
			Subject:   "3",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, payloadClaims{
		Item:             heartbeat,
		RegisteredClaims: jwt.RegisteredClaims{Issuer: payloadIssuer, Subject: "2"},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := map[string]string{
		"empty":           "",
		"garbage":         "not-a-token",
		"tampered":        payload[:len(payload)-2] + flip(payload[len(payload)-2:]),
		"wrong secret":    forged,
		"subject differs": mismatched,
		"no expiry":       noExpiry,
		"truncated":       strings.Join(strings.Split(payload, ".")[:2], "."),
	}
	for name, p := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := codec.Decode(p)
			assert.ErrorIs(t, err, ErrInvalidPayload)
		})
	}
}

func TestPayloadExpires(t *testing.T) {
	codec, err := NewPayloadCodec(testSecret, time.Minute)
	require.NoError(t, err)

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	codec.now = func() time.Time { return start }
	payload, err := codec.Encode("s", userDoc)
	require.NoError(t, err)

	codec.now = func() time.Time { return start.Add(2 * time.Minute) }
	_, _, err = codec.Decode(payload)
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestNewPayloadCodec(t *testing.T) {
	_, err := NewPayloadCodec("short", time.Minute)
	assert.Error(t, err)

	codec, err := NewPayloadCodec(testSecret, 0)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, codec.ttl)
}

// flip changes the signature tail without leaving the base64url alphabet
func flip(s string) string {
	out := []byte(s)
	for i, b := range out {
		if b == 'A' {
			out[i] = 'B'
		} else {
			out[i] = 'A'
		}
	}
	return string(out)
}
