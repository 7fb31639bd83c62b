package drag

import (
	"testing"

	models "docspace/internal/domain/models/workspace"
	"docspace/internal/service/workspace"

	"github.com/stretchr/testify/assert"
)

var (
	gitFolder = models.FileItem{ID: "1", Name: ".git", Type: models.FileTypeFolder}
	heartbeat = models.FileItem{ID: "2", Name: "HEARTBEAT", Type: models.FileTypeDocument}
	userDoc   = models.FileItem{ID: "3", Name: "USER", Type: models.FileTypeDocument}
	row       = models.RowBox{Top: 0, Height: 40}
)

func TestTrackerLifecycle(t *testing.T) {
	tr := NewTracker(workspace.NewClassifier(workspace.DefaultEdgeThreshold))
	assert.False(t, tr.Active())

	tr.Start(heartbeat)
	assert.True(t, tr.Active())
	dragged, target, position := tr.Snapshot()
	assert.Equal(t, "2", dragged.ID)
	assert.Nil(t, target)
	assert.Equal(t, models.DropNone, position)

	assert.True(t, tr.Hover(gitFolder, row, 20))
	assert.Equal(t, models.DropInside, tr.PositionFor("1"))
	assert.Equal(t, models.DropNone, tr.PositionFor("3"))

	// Same target and band is not a change
	assert.False(t, tr.Hover(gitFolder, row, 22))

	assert.True(t, tr.Hover(gitFolder, row, 2))
	assert.Equal(t, models.DropBefore, tr.PositionFor("1"))

	assert.True(t, tr.Hover(userDoc, row, 30))
	_, target, position = tr.Snapshot()
	assert.Equal(t, "3", *target)
	assert.Equal(t, models.DropAfter, position)

	tr.Reset()
	assert.False(t, tr.Active())
	dragged, target, position = tr.Snapshot()
	assert.Nil(t, dragged)
	assert.Nil(t, target)
	assert.Equal(t, models.DropNone, position)
}

func TestTrackerHoverClears(t *testing.T) {
	tr := NewTracker(workspace.NewClassifier(workspace.DefaultEdgeThreshold))
	tr.Start(heartbeat)

	assert.True(t, tr.Hover(gitFolder, row, 20))
	assert.True(t, tr.Hover(heartbeat, row, 20), "hovering the dragged item clears")
	assert.Equal(t, models.DropNone, tr.PositionFor("1"))
	assert.False(t, tr.Hover(heartbeat, row, 20))

	assert.True(t, tr.Hover(gitFolder, row, 20))
	assert.True(t, tr.Hover(gitFolder, row, 55), "pointer outside the row clears")
	assert.Equal(t, models.DropNone, tr.PositionFor("1"))
}

func TestTrackerLeave(t *testing.T) {
	tr := NewTracker(workspace.NewClassifier(workspace.DefaultEdgeThreshold))
	tr.Start(heartbeat)
	tr.Hover(gitFolder, row, 20)

	assert.False(t, tr.Leave(true))
	assert.Equal(t, models.DropInside, tr.PositionFor("1"))

	assert.True(t, tr.Leave(false))
	assert.Equal(t, models.DropNone, tr.PositionFor("1"))
	assert.False(t, tr.Leave(false))

	// The dragged item survives a leave
	assert.True(t, tr.Active())
}

func TestTrackerStartClearsStaleHover(t *testing.T) {
	tr := NewTracker(workspace.NewClassifier(workspace.DefaultEdgeThreshold))
	tr.Start(heartbeat)
	tr.Hover(gitFolder, row, 20)

	tr.Start(userDoc)
	item, ok := tr.Dragged()
	assert.True(t, ok)
	assert.Equal(t, "3", item.ID)
	assert.Equal(t, models.DropNone, tr.PositionFor("1"))
}
