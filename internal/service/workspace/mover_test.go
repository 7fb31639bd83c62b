package workspace

import (
	"errors"
	"testing"

	"docspace/internal/domain"
	models "docspace/internal/domain/models/workspace"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveApplied(t *testing.T) {
	tests := []struct {
		name       string
		itemID     string
		targetID   string
		position   models.DropPosition
		wantFiles  map[string][]string
		wantDest   string
		wantIndex  int
		wantCounts map[string][2]int // folder -> {fileCount, folderCount}
	}{
		{
			name:     "document inside folder",
			itemID:   "2", // HEARTBEAT
			targetID: "1", // .git
			position: models.DropInside,
			wantFiles: map[string][]string{
				"0": {"1", "3", "4"},
				"1": {"5", "6", "7", "2"},
			},
			wantDest:  "1",
			wantIndex: 3,
			wantCounts: map[string][2]int{
				"0": {2, 1},
				"1": {3, 1},
			},
		},
		{
			name:      "before the next sibling is a no-op reorder",
			itemID:    "3", // USER
			targetID:  "4", // TOOLS
			position:  models.DropBefore,
			wantFiles: map[string][]string{"0": {"1", "2", "3", "4"}},
			wantDest:  "0",
			wantIndex: 2,
		},
		{
			name:      "after the next sibling swaps",
			itemID:    "3",
			targetID:  "4",
			position:  models.DropAfter,
			wantFiles: map[string][]string{"0": {"1", "2", "4", "3"}},
			wantDest:  "0",
			wantIndex: 3,
		},
		{
			name:      "before an earlier sibling",
			itemID:    "2",
			targetID:  "1",
			position:  models.DropBefore,
			wantFiles: map[string][]string{"0": {"2", "1", "3", "4"}},
			wantDest:  "0",
			wantIndex: 0,
		},
		{
			name:     "folder out of its parent keeps its subtree",
			itemID:   "5", // hooks
			targetID: "3",
			position: models.DropAfter,
			wantFiles: map[string][]string{
				"0": {"1", "2", "3", "5", "4"},
				"1": {"6", "7"},
				"5": {"8", "9"},
			},
			wantDest:  "0",
			wantIndex: 3,
			wantCounts: map[string][2]int{
				"0": {3, 2},
				"1": {2, 0},
			},
		},
		{
			name:     "before an item in a nested folder",
			itemID:   "4", // TOOLS
			targetID: "9", // post-commit
			position: models.DropBefore,
			wantFiles: map[string][]string{
				"0": {"1", "2", "3"},
				"5": {"8", "4", "9"},
			},
			wantDest:  "5",
			wantIndex: 1,
		},
		{
			name:     "inside the root",
			itemID:   "8",
			targetID: "0",
			position: models.DropInside,
			wantFiles: map[string][]string{
				"0": {"1", "2", "3", "4", "8"},
				"5": {"9"},
			},
			wantDest:  "0",
			wantIndex: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := newFixture(t)
			before := ids(current.Folders["0"].Files)

			next, placement, err := Move(current, tt.itemID, tt.targetID, tt.position)
			require.NoError(t, err)

			for folderID, want := range tt.wantFiles {
				assert.Equal(t, want, ids(next.Folders[folderID].Files), "folder %s", folderID)
			}
			for folderID, counts := range tt.wantCounts {
				assert.Equal(t, counts[0], next.Folders[folderID].FileCount, "fileCount of %s", folderID)
				assert.Equal(t, counts[1], next.Folders[folderID].FolderCount, "folderCount of %s", folderID)
			}
			assert.Equal(t, tt.itemID, placement.Item.ID)
			assert.Equal(t, tt.wantDest, placement.DestinationID)
			assert.Equal(t, tt.wantIndex, placement.Index)

			dest, ok := next.ContainingFolder(tt.itemID)
			require.True(t, ok)
			assert.Equal(t, tt.wantDest, dest)

			// The input snapshot is never modified
			assert.Equal(t, before, ids(current.Folders["0"].Files))
			assertConsistent(t, current)
			assertConsistent(t, next)
		})
	}
}

func TestMoveRejected(t *testing.T) {
	tests := []struct {
		name     string
		itemID   string
		targetID string
		position models.DropPosition
		want     domain.RejectionReason
		notFound bool
	}{
		{"no position", "2", "1", models.DropNone, domain.ReasonNoPosition, false},
		{"no target", "2", "", models.DropInside, domain.ReasonNoTarget, false},
		{"self drop", "3", "3", models.DropBefore, domain.ReasonSelfDrop, false},
		{"folder onto itself", "1", "1", models.DropInside, domain.ReasonSelfDrop, false},
		{"inside a document", "3", "4", models.DropInside, domain.ReasonTargetNotFolder, false},
		{"folder inside its child", "1", "5", models.DropInside, domain.ReasonCycle, false},
		{"folder next to its grandchild", "1", "8", models.DropBefore, domain.ReasonCycle, false},
		{"unknown target", "2", "404", models.DropAfter, domain.ReasonTargetNotFound, true},
		{"unknown item", "404", "1", models.DropInside, domain.ReasonSourceNotFound, true},
		{"beside the root", "2", "0", models.DropBefore, domain.ReasonTargetNotFound, true},
		{"moving the root", "0", "1", models.DropInside, domain.ReasonSourceNotFound, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := newFixture(t)
			next, placement, err := Move(current, tt.itemID, tt.targetID, tt.position)
			require.Error(t, err)
			assert.Nil(t, next)
			assert.Nil(t, placement)

			var rejection *domain.RejectionError
			require.True(t, errors.As(err, &rejection))
			assert.Equal(t, tt.want, rejection.Reason)
			assert.Equal(t, tt.notFound, errors.Is(err, domain.ErrNotFound))

			assert.Equal(t, []string{"1", "2", "3", "4"}, ids(current.Folders["0"].Files))
		})
	}
}

func TestMovePreservesItemCount(t *testing.T) {
	c := newFixture(t)
	total := c.ItemCount()

	steps := []struct {
		item, target string
		position     models.DropPosition
	}{
		{"2", "1", models.DropInside},
		{"5", "4", models.DropAfter},
		{"8", "3", models.DropBefore},
		{"1", "5", models.DropInside},
		{"9", "2", models.DropAfter},
		{"3", "3", models.DropBefore}, // rejected
		{"4", "6", models.DropBefore},
	}
	for _, s := range steps {
		next, _, err := Move(c, s.item, s.target, s.position)
		if err != nil {
			continue
		}
		c = next
		assert.Equal(t, total, c.ItemCount())
		assertConsistent(t, c)
	}
}

func TestInsert(t *testing.T) {
	c := newFixture(t)

	folder := models.FileItem{ID: "10", Name: "docs", Type: models.FileTypeFolder}
	next, err := Insert(c, "0", folder)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4", "10"}, ids(next.Folders["0"].Files))
	assert.Equal(t, 2, next.Folders["0"].FolderCount)
	require.Contains(t, next.Folders, "10")
	assert.Empty(t, next.Folders["10"].Files)
	assert.NotContains(t, c.Folders, "10")

	// A fresh folder accepts drops
	moved, _, err := Move(next, "3", "10", models.DropInside)
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, ids(moved.Folders["10"].Files))
	assert.Equal(t, 1, moved.Folders["10"].FileCount)

	_, err = Insert(c, "404", folder)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = Insert(c, "0", models.FileItem{ID: "3", Name: "dup", Type: models.FileTypeDocument})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// assertConsistent checks every item is listed exactly once, the index
// agrees with the lists and counters match the contents
func assertConsistent(t *testing.T, c *models.Collection) {
	t.Helper()
	seen := make(map[string]string)
	for folderID, folder := range c.Folders {
		files, folders := 0, 0
		for _, item := range folder.Files {
			prev, dup := seen[item.ID]
			assert.False(t, dup, "item %s in %s and %s", item.ID, prev, folderID)
			seen[item.ID] = folderID

			parent, ok := c.ContainingFolder(item.ID)
			assert.True(t, ok)
			assert.Equal(t, folderID, parent, "index of %s", item.ID)

			if item.IsFolder() {
				folders++
			} else {
				files++
			}
		}
		assert.Equal(t, files, folder.FileCount, "fileCount of %s", folderID)
		assert.Equal(t, folders, folder.FolderCount, "folderCount of %s", folderID)
	}
	assert.Equal(t, len(seen), c.ItemCount())
}
