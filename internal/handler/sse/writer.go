package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Stream writes Server-Sent Events to one client. Events and keep-alives
// come from different goroutines, so every write holds mu.
type Stream struct {
	mu       sync.Mutex
	w        http.ResponseWriter
	flusher  http.Flusher
	clientID string
}

// NewStream wraps a response that already carries the SSE headers
func NewStream(w http.ResponseWriter, flusher http.Flusher, clientID string) *Stream {
	return &Stream{
		w:        w,
		flusher:  flusher,
		clientID: clientID,
	}
}

// ClientID identifies the connection in logs
func (s *Stream) ClientID() string {
	return s.clientID
}

// WriteRetry tells the client how long to wait before reconnecting
func (s *Stream) WriteRetry(d time.Duration) error {
	return s.write(fmt.Sprintf("retry: %d\n\n", d.Milliseconds()))
}

// WriteEvent sends one event. id 0 omits the id field.
func (s *Stream) WriteEvent(id int64, event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	var b strings.Builder
	if id > 0 {
		fmt.Fprintf(&b, "id: %d\n", id)
	}
	fmt.Fprintf(&b, "event: %s\ndata: %s\n\n", event, payload)
	return s.write(b.String())
}

// WriteKeepAlive writes an SSE comment line, which clients ignore
func (s *Stream) WriteKeepAlive() error {
	return s.write(": keepalive\n\n")
}

func (s *Stream) write(frame string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprint(s.w, frame); err != nil {
		return fmt.Errorf("write to client %s: %w", s.clientID, err)
	}
	s.flusher.Flush()
	return nil
}
