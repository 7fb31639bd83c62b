package uistate

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"docspace/internal/domain"
	models "docspace/internal/domain/models/workspace"
	wsSvc "docspace/internal/domain/services/workspace"
	"docspace/internal/repository/memory"
	"docspace/internal/seed"
	"docspace/internal/service/events"
	"docspace/internal/service/workspace"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (wsSvc.UIStateService, *events.Broker) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	f, err := seed.Default()
	require.NoError(t, err)
	c, err := f.Collection()
	require.NoError(t, err)
	repo := memory.NewCollectionRepository()
	require.NoError(t, repo.Replace(context.Background(), c))

	broker := events.NewBroker(16, logger)
	workspaces := workspace.NewWorkspaceService("default", repo, broker, logger)
	return NewUIStateService(workspaces, broker, logger), broker
}

func patch(t *testing.T, body string) *wsSvc.PatchUIRequest {
	t.Helper()
	var req wsSvc.PatchUIRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return &req
}

func TestDefaultState(t *testing.T) {
	svc, _ := newService(t)
	state, err := svc.Get(context.Background(), "user_001")
	require.NoError(t, err)
	assert.Nil(t, state.ActiveModal)
	assert.Empty(t, state.SelectedIDs)
	assert.NotNil(t, state.SelectedIDs)
	assert.False(t, state.PinnedMode)
}

func TestPatch(t *testing.T) {
	svc, broker := newService(t)
	ctx := context.Background()
	sub := broker.Subscribe()
	defer sub.Close()

	state, err := svc.Patch(ctx, "user_001", patch(t, `{"active_modal":"share","pinned_mode":true}`))
	require.NoError(t, err)
	require.NotNil(t, state.ActiveModal)
	assert.Equal(t, models.ModalShare, *state.ActiveModal)
	assert.True(t, state.PinnedMode)

	select {
	case e := <-sub.C:
		assert.Equal(t, events.TypeUIUpdated, e.Type)
		assert.Equal(t, events.UIUpdated{UserID: "user_001"}, e.Data)
	case <-time.After(time.Second):
		t.Fatal("no event published")
	}

	// Absent fields are left alone
	state, err = svc.Patch(ctx, "user_001", patch(t, `{"tree_visible":true}`))
	require.NoError(t, err)
	assert.Equal(t, models.ModalShare, *state.ActiveModal)
	assert.True(t, state.PinnedMode)
	assert.True(t, state.TreeVisible)

	state, err = svc.Patch(ctx, "user_001", patch(t, `{"active_modal":null}`))
	require.NoError(t, err)
	assert.Nil(t, state.ActiveModal)

	_, err = svc.Patch(ctx, "user_001", patch(t, `{"active_modal":"addFile"}`))
	require.NoError(t, err)
	state, err = svc.Patch(ctx, "user_001", patch(t, `{"active_modal":""}`))
	require.NoError(t, err)
	assert.Nil(t, state.ActiveModal)

	_, err = svc.Patch(ctx, "user_001", patch(t, `{"active_modal":"settings"}`))
	assert.ErrorIs(t, err, domain.ErrValidation)

	other, err := svc.Get(ctx, "user_002")
	require.NoError(t, err)
	assert.False(t, other.PinnedMode)
}

func TestSelection(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	state, err := svc.SetSelection(ctx, "user_001", []string{"2", "3", "2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3"}, state.SelectedIDs)

	state, err = svc.ToggleSelection(ctx, "user_001", "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, state.SelectedIDs)

	state, err = svc.ToggleSelection(ctx, "user_001", "8")
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "8"}, state.SelectedIDs)

	_, err = svc.ToggleSelection(ctx, "user_001", "404")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.SetSelection(ctx, "user_001", []string{"3", "404"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// A failed replace keeps the previous selection
	state, err = svc.Get(ctx, "user_001")
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "8"}, state.SelectedIDs)

	state, err = svc.ClearSelection(ctx, "user_001")
	require.NoError(t, err)
	assert.Empty(t, state.SelectedIDs)
	assert.NotNil(t, state.SelectedIDs)

	state, err = svc.SetSelection(ctx, "user_001", nil)
	require.NoError(t, err)
	assert.Empty(t, state.SelectedIDs)
}

func TestGetReturnsCopy(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.SetSelection(ctx, "user_001", []string{"2"})
	require.NoError(t, err)
	state, err := svc.Get(ctx, "user_001")
	require.NoError(t, err)
	state.SelectedIDs[0] = "changed"

	again, err := svc.Get(ctx, "user_001")
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, again.SelectedIDs)
}
