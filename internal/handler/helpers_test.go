package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"docspace/internal/handler/sse"
	"docspace/internal/middleware"
	"docspace/internal/repository/memory"
	"docspace/internal/seed"
	"docspace/internal/service/drag"
	"docspace/internal/service/events"
	"docspace/internal/service/navigation"
	"docspace/internal/service/uistate"
	"docspace/internal/service/workspace"

	"github.com/stretchr/testify/require"
)

type testServer struct {
	http.Handler
	broker *events.Broker
	codec  *drag.PayloadCodec
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	collections := memory.NewCollectionRepository()
	members := memory.NewMemberRepository()
	f, err := seed.Default()
	require.NoError(t, err)
	_, err = seed.Apply(ctx, f, collections, members)
	require.NoError(t, err)

	broker := events.NewBroker(16, logger)
	workspaces := workspace.NewWorkspaceService(f.Workspace, collections, broker, logger)
	codec, err := drag.NewPayloadCodec("handler-test-secret-value", time.Minute)
	require.NoError(t, err)
	dragService := drag.NewDragService(workspaces, drag.Config{
		Classifier: workspace.NewClassifier(workspace.DefaultEdgeThreshold),
		Codec:      codec,
	}, logger)

	handlers := &Handlers{
		Workspace:  NewWorkspaceHandler(workspaces, logger),
		Drag:       NewDragHandler(dragService, workspaces, logger),
		Navigation: NewNavigationHandler(navigation.NewNavigationService(workspaces, logger), logger),
		UI:         NewUIHandler(uistate.NewUIStateService(workspaces, broker, logger), logger),
		Members:    NewMemberHandler(workspace.NewMemberService(members, workspaces, broker, logger), logger),
		Events:     NewEventsHandler(broker, &sse.Config{KeepAliveInterval: time.Hour, Retry: time.Second}, logger),
	}
	mux := http.NewServeMux()
	handlers.Register(mux)

	return &testServer{
		Handler: middleware.CurrentUser("user_001", "Echo")(mux),
		broker:  broker,
		codec:   codec,
	}
}

// do sends a request with an optional JSON body and headers given as
// key, value pairs
func (s *testServer) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type problem struct {
	Status       int    `json:"status"`
	Detail       string `json:"detail"`
	Reason       string `json:"reason"`
	ResourceType string `json:"resource_type"`
	ResourceID   string `json:"resource_id"`
}
