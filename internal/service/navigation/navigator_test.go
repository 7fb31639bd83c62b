package navigation

import (
	"testing"

	"docspace/internal/domain"
	models "docspace/internal/domain/models/workspace"
	"docspace/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixture(t *testing.T) *models.Collection {
	t.Helper()
	f, err := seed.Default()
	require.NoError(t, err)
	c, err := f.Collection()
	require.NoError(t, err)
	return c
}

type rowSummary struct {
	ID    string
	Depth int
}

func summarize(rows []models.VisibleRow) []rowSummary {
	out := make([]rowSummary, len(rows))
	for i, r := range rows {
		out[i] = rowSummary{ID: r.Item.ID, Depth: r.Depth}
	}
	return out
}

func TestInitialView(t *testing.T) {
	c := newFixture(t)
	view := NewNavigator().View(c)

	assert.Equal(t, models.Crumb{ID: "0", Name: "clawd"}, view.Folder)
	assert.Equal(t, []models.Crumb{{ID: "0", Name: "clawd"}}, view.Breadcrumb)
	assert.Equal(t, 3, view.FileCount)
	assert.Equal(t, 1, view.FolderCount)
	assert.Empty(t, view.Expanded)
	assert.Equal(t, []rowSummary{{"1", 0}, {"2", 0}, {"3", 0}, {"4", 0}}, summarize(view.Rows))
	assert.True(t, view.Rows[0].HasChildren)
	assert.False(t, view.Rows[0].Expanded)
	assert.False(t, view.Rows[1].HasChildren)
}

func TestToggleExpandsInline(t *testing.T) {
	c := newFixture(t)
	n := NewNavigator()

	require.NoError(t, n.Toggle(c, "1"))
	view := n.View(c)
	assert.Equal(t, []string{"1"}, view.Expanded)
	assert.Equal(t, []rowSummary{
		{"1", 0}, {"5", 1}, {"6", 1}, {"7", 1}, {"2", 0}, {"3", 0}, {"4", 0},
	}, summarize(view.Rows))
	assert.True(t, view.Rows[0].Expanded)

	require.NoError(t, n.Toggle(c, "5"))
	view = n.View(c)
	assert.Equal(t, []string{"1", "5"}, view.Expanded)
	assert.Equal(t, []rowSummary{
		{"1", 0}, {"5", 1}, {"8", 2}, {"9", 2}, {"6", 1}, {"7", 1}, {"2", 0}, {"3", 0}, {"4", 0},
	}, summarize(view.Rows))

	// Collapsing the parent keeps the child's own flag
	require.NoError(t, n.Toggle(c, "1"))
	view = n.View(c)
	assert.Equal(t, []string{"5"}, view.Expanded)
	assert.Len(t, view.Rows, 4)

	// The current folder is still the root
	assert.Equal(t, "0", view.Folder.ID)
}

func TestSetExpandedIsIdempotent(t *testing.T) {
	c := newFixture(t)
	n := NewNavigator()

	require.NoError(t, n.SetExpanded(c, "1", true))
	require.NoError(t, n.SetExpanded(c, "1", true))
	assert.Equal(t, []string{"1"}, n.View(c).Expanded)

	require.NoError(t, n.SetExpanded(c, "1", false))
	require.NoError(t, n.SetExpanded(c, "1", false))
	assert.Empty(t, n.View(c).Expanded)

	assert.ErrorIs(t, n.SetExpanded(c, "2", true), domain.ErrValidation)
}

func TestOpenAndUp(t *testing.T) {
	c := newFixture(t)
	n := NewNavigator()

	require.NoError(t, n.Open(c, "5"))
	view := n.View(c)
	assert.Equal(t, []models.Crumb{
		{ID: "0", Name: "clawd"},
		{ID: "1", Name: ".git"},
		{ID: "5", Name: "hooks"},
	}, view.Breadcrumb)
	assert.Equal(t, "hooks", view.Folder.Name)
	assert.Equal(t, []rowSummary{{"8", 0}, {"9", 0}}, summarize(view.Rows))
	assert.Equal(t, 2, view.FileCount)

	n.Up(c)
	assert.Equal(t, "1", n.View(c).Folder.ID)
	n.Up(c)
	assert.Equal(t, "0", n.View(c).Folder.ID)
	n.Up(c)
	assert.Equal(t, "0", n.View(c).Folder.ID)

	require.NoError(t, n.Open(c, "1"))
	n.Reset()
	assert.Equal(t, "0", n.View(c).Folder.ID)

	require.NoError(t, n.Open(c, "0"))
	assert.Len(t, n.View(c).Breadcrumb, 1)
}

func TestOpenErrors(t *testing.T) {
	c := newFixture(t)
	n := NewNavigator()

	assert.ErrorIs(t, n.Open(c, "3"), domain.ErrValidation)
	assert.ErrorIs(t, n.Open(c, "404"), domain.ErrNotFound)
	assert.ErrorIs(t, n.Toggle(c, "6"), domain.ErrValidation)
	assert.ErrorIs(t, n.Toggle(c, "404"), domain.ErrNotFound)
	assert.Equal(t, "0", n.View(c).Folder.ID)
}

func TestViewDropsVanishedFolders(t *testing.T) {
	c := newFixture(t)
	n := NewNavigator()
	require.NoError(t, n.Open(c, "5"))
	require.NoError(t, n.Toggle(c, "1"))

	empty, err := models.NewCollection("default", c.Root, nil)
	require.NoError(t, err)

	view := n.View(empty)
	assert.Equal(t, "0", view.Folder.ID)
	assert.Empty(t, view.Expanded)
	assert.Empty(t, view.Rows)
	assert.NotNil(t, view.Rows)
}
