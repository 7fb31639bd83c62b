package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondProblemFlattensExtensions(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondProblem(rec, NewProblem(http.StatusBadRequest, "cannot drop onto itself").With("reason", "self_drop"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "self_drop", body["reason"])
	assert.Equal(t, "Bad Request", body["title"])
	assert.Equal(t, float64(400), body["status"])
	assert.Equal(t, "cannot drop onto itself", body["detail"])
	assert.Contains(t, body["type"], "rfc7231")
}

func TestProblemStandardMembersWin(t *testing.T) {
	p := NewProblem(http.StatusNotFound, "").With("status", 200)
	data, err := json.Marshal(p)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, float64(404), body["status"])
	assert.NotContains(t, body, "detail")
}

func TestUnknownStatusIsBlank(t *testing.T) {
	assert.Equal(t, "about:blank", NewProblem(http.StatusTeapot, "").Type)
}

func TestRespondJSONFallsBackOnEncodeError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusOK, map[string]any{"bad": make(chan int)})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
