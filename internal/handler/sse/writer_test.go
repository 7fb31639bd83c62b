package sse

import (
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamWriteEvent(t *testing.T) {
	rec := httptest.NewRecorder()
	stream := NewStream(rec, rec, "client-1")

	require.NoError(t, stream.WriteEvent(7, "collection.updated", map[string]int{"version": 3}))
	require.NoError(t, stream.WriteEvent(0, "ready", map[string]string{"client_id": "client-1"}))
	require.NoError(t, stream.WriteKeepAlive())

	want := "id: 7\nevent: collection.updated\ndata: {\"version\":3}\n\n" +
		"event: ready\ndata: {\"client_id\":\"client-1\"}\n\n" +
		": keepalive\n\n"
	assert.Equal(t, want, rec.Body.String())
	assert.True(t, rec.Flushed)
}

type failingWriter struct{ calls int }

func (f *failingWriter) WriteKeepAlive() error {
	f.calls++
	return errors.New("connection closed")
}

func TestTickerKeepAliveStopsOnWriteError(t *testing.T) {
	writer := &failingWriter{}
	ka := NewTickerKeepAlive(time.Millisecond)
	stopped := ka.Start(writer, slog.New(slog.NewTextHandler(io.Discard, nil)))

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("keep-alive did not stop after a failed write")
	}
	assert.Equal(t, 1, writer.calls)
	ka.Stop()
	ka.Stop()
}

func TestTickerKeepAliveStop(t *testing.T) {
	ka := NewTickerKeepAlive(time.Hour)
	stopped := ka.Start(&failingWriter{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ka.Stop()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("keep-alive did not stop")
	}
}
