package workspace

import "fmt"

// DropPosition is where a dragged item lands relative to a target row
type DropPosition string

const (
	DropNone   DropPosition = ""
	DropBefore DropPosition = "before"
	DropAfter  DropPosition = "after"
	DropInside DropPosition = "inside"
)

// ParseDropPosition accepts "before", "after", "inside" and "" / "none"
func ParseDropPosition(s string) (DropPosition, error) {
	switch s {
	case "", "none":
		return DropNone, nil
	case string(DropBefore), string(DropAfter), string(DropInside):
		return DropPosition(s), nil
	default:
		return DropNone, fmt.Errorf("unknown drop position %q", s)
	}
}

// MarshalText renders DropNone as "none" so JSON never carries an empty enum
func (p DropPosition) MarshalText() ([]byte, error) {
	if p == DropNone {
		return []byte("none"), nil
	}
	return []byte(p), nil
}

// UnmarshalText is the inverse of MarshalText
func (p *DropPosition) UnmarshalText(b []byte) error {
	parsed, err := ParseDropPosition(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// RowBox is the bounding box of a target row in client coordinates.
// Only the vertical extent matters for classification.
type RowBox struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}
