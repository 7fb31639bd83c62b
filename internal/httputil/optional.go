package httputil

import (
	"bytes"
	"encoding/json"
)

// Optional is a JSON merge-patch (RFC 7396) field. A *T cannot tell an
// absent key from an explicit null, Optional can:
//   - Set=false: key absent, leave the value alone
//   - Set=true, Null=true: key sent as null
//   - Set=true, Null=false: Value holds what was sent
type Optional[T comparable] struct {
	Set   bool
	Null  bool
	Value T
}

// UnmarshalJSON only runs when the key is present
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// Clears reports a field sent as null or as its zero value
func (o Optional[T]) Clears() bool {
	var zero T
	return o.Set && (o.Null || o.Value == zero)
}

// Assigns reports a field carrying a value to store
func (o Optional[T]) Assigns() bool {
	return o.Set && !o.Clears()
}
