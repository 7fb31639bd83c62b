package handler

import (
	"log/slog"
	"net/http"
	"time"

	"docspace/internal/handler/sse"
	"docspace/internal/httputil"
	"docspace/internal/service/events"

	"github.com/google/uuid"
)

// EventsHandler streams workspace changes over Server-Sent Events
type EventsHandler struct {
	broker *events.Broker
	config *sse.Config
	logger *slog.Logger
}

// NewEventsHandler creates a new SSE handler
func NewEventsHandler(broker *events.Broker, config *sse.Config, logger *slog.Logger) *EventsHandler {
	if config == nil {
		config = sse.DefaultConfig()
	}
	return &EventsHandler{
		broker: broker,
		config: config,
		logger: logger,
	}
}

// Stream pushes collection, member and UI events until the client leaves.
// UI events are only delivered to the user they belong to.
// GET /api/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		httputil.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	userID := httputil.GetUserID(r)
	clientID := uuid.NewString()

	// The server's write timeout must not cut a long-lived stream
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		h.logger.Debug("could not clear write deadline", "error", err)
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering
	w.WriteHeader(http.StatusOK)

	sub := h.broker.Subscribe()
	defer sub.Close()

	stream := sse.NewStream(w, flusher, clientID)
	if err := stream.WriteRetry(h.config.Retry); err != nil {
		return
	}
	if err := stream.WriteEvent(0, "ready", map[string]string{"client_id": clientID}); err != nil {
		return
	}

	keepAlive := sse.NewTickerKeepAlive(h.config.KeepAliveInterval)
	stopped := keepAlive.Start(stream, h.logger)
	defer keepAlive.Stop()

	h.logger.Debug("SSE client connected",
		"client_id", clientID,
		"user_id", userID,
		"subscribers", h.broker.Subscribers(),
	)
	defer h.logger.Debug("SSE client disconnected", "client_id", clientID)

	for {
		select {
		case <-r.Context().Done():
			return
		case <-stopped:
			return
		case event, ok := <-sub.C:
			if !ok {
				return
			}
			if !visibleTo(event, userID) {
				continue
			}
			if err := stream.WriteEvent(event.ID, event.Type, event.Data); err != nil {
				h.logger.Info("client disconnected during event write",
					"client_id", clientID,
					"error", err,
				)
				return
			}
		}
	}
}

func visibleTo(event events.Event, userID string) bool {
	if ui, ok := event.Data.(events.UIUpdated); ok {
		return ui.UserID == userID
	}
	return true
}
