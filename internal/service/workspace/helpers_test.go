package workspace

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	models "docspace/internal/domain/models/workspace"
	wsSvc "docspace/internal/domain/services/workspace"
	"docspace/internal/repository/memory"
	"docspace/internal/seed"
	"docspace/internal/service/events"

	"github.com/stretchr/testify/require"
)

// Fixture ids: 0 clawd (root), 1 .git, 2 HEARTBEAT, 3 USER, 4 TOOLS,
// 5 hooks, 6 config, 7 HEAD, 8 pre-commit, 9 post-commit
func newFixture(t *testing.T) *models.Collection {
	t.Helper()
	f, err := seed.Default()
	require.NoError(t, err)
	c, err := f.Collection()
	require.NoError(t, err)
	return c
}

func ids(files []models.FileItem) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.ID
	}
	return out
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testEnv struct {
	repo       *memory.CollectionRepository
	members    *memory.MemberRepository
	broker     *events.Broker
	workspaces wsSvc.WorkspaceService
	memberSvc  wsSvc.MemberService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repo := memory.NewCollectionRepository()
	members := memory.NewMemberRepository()
	require.NoError(t, repo.Replace(context.Background(), newFixture(t)))

	broker := events.NewBroker(16, discardLogger())
	svc := NewWorkspaceService("default", repo, broker, discardLogger())
	svc.(*workspaceService).clock = func() time.Time {
		return time.Date(2026, 1, 2, 9, 30, 0, 0, time.UTC)
	}

	return &testEnv{
		repo:       repo,
		members:    members,
		broker:     broker,
		workspaces: svc,
		memberSvc:  NewMemberService(members, svc, broker, discardLogger()),
	}
}

// nextEvent waits briefly for one event
func nextEvent(t *testing.T, sub *events.Subscription) events.Event {
	t.Helper()
	select {
	case e := <-sub.C:
		return e
	case <-time.After(time.Second):
		t.Fatal("no event published")
		return events.Event{}
	}
}

func assertNoEvent(t *testing.T, sub *events.Subscription) {
	t.Helper()
	select {
	case e := <-sub.C:
		t.Fatalf("unexpected event %s", e.Type)
	default:
	}
}
