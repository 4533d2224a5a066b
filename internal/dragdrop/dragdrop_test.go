package dragdrop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/internal/layout"
)

var trash = Rect{Left: 900, Top: 600, Right: 1000, Bottom: 700}

func TestRectContainsIsInclusive(t *testing.T) {
	assert.True(t, trash.Contains(layout.Point{X: 900, Y: 600}))
	assert.True(t, trash.Contains(layout.Point{X: 1000, Y: 700}))
	assert.False(t, trash.Contains(layout.Point{X: 1001, Y: 700}))
	assert.False(t, trash.Contains(layout.Point{X: 950, Y: 599}))
}

func TestCityDropOnTrashDeletesWithConfirm(t *testing.T) {
	m := NewMachine(trash)
	require.NoError(t, m.Start(Entity{Kind: KindCity, ID: "c1"}))

	out, err := m.End(layout.Point{X: 1000, Y: 650}, layout.Point{X: 20, Y: 80})
	require.NoError(t, err)
	assert.Equal(t, ActionDelete, out.Action)
	assert.True(t, out.NeedsConfirm)
	assert.Equal(t, "c1", out.Entity.ID)
	assert.False(t, m.Feedback().Dragging)
}

func TestCityDropOnePixelOutsideRepositions(t *testing.T) {
	m := NewMachine(trash)
	require.NoError(t, m.Start(Entity{Kind: KindCity, ID: "c1"}))

	out, err := m.End(layout.Point{X: 1001, Y: 650}, layout.Point{X: 20, Y: 80})
	require.NoError(t, err)
	assert.Equal(t, ActionReposition, out.Action)
	assert.False(t, out.NeedsConfirm)
	require.NotNil(t, out.Position.X)
	require.NotNil(t, out.Position.Y)
	assert.Equal(t, 1001-20-100, *out.Position.X)
	assert.Equal(t, 650-80-40, *out.Position.Y)
}

func TestActivityDeletesWithoutConfirmAndNeverMoves(t *testing.T) {
	out := Decide(Entity{Kind: KindActivity, ID: "a1"}, trash, layout.Point{X: 950, Y: 650}, layout.Point{})
	assert.Equal(t, ActionDelete, out.Action)
	assert.False(t, out.NeedsConfirm)

	out = Decide(Entity{Kind: KindActivity, ID: "a1"}, trash, layout.Point{X: 10, Y: 10}, layout.Point{})
	assert.Equal(t, ActionNone, out.Action)
}

func TestTripDropOutsideDoesNothing(t *testing.T) {
	out := Decide(Entity{Kind: KindTrip, ID: "t1"}, trash, layout.Point{X: 10, Y: 10}, layout.Point{})
	assert.Equal(t, ActionNone, out.Action)
	assert.Nil(t, out.Position.X)

	out = Decide(Entity{Kind: KindTrip, ID: "t1"}, trash, layout.Point{X: 910, Y: 610}, layout.Point{})
	assert.Equal(t, ActionDelete, out.Action)
	assert.True(t, out.NeedsConfirm)
}

func TestHoverTracksPointerIndependentOfDrop(t *testing.T) {
	m := NewMachine(trash)
	assert.False(t, m.Move(layout.Point{X: 950, Y: 650}).OverTrash, "idle machine never hovers")

	require.NoError(t, m.Start(Entity{Kind: KindTrip, ID: "t1"}))
	fb := m.Feedback()
	assert.True(t, fb.TrashActive)
	assert.Equal(t, 0.5, fb.Opacity())

	fb = m.Move(layout.Point{X: 950, Y: 650})
	assert.True(t, fb.OverTrash)
	assert.Equal(t, 0.3, fb.Opacity())

	fb = m.Move(layout.Point{X: 10, Y: 10})
	assert.False(t, fb.OverTrash)

	// last hover was over the trash, but the release point decides
	m.Move(layout.Point{X: 950, Y: 650})
	out, err := m.End(layout.Point{X: 10, Y: 10}, layout.Point{})
	require.NoError(t, err)
	assert.Equal(t, ActionNone, out.Action)
	assert.Equal(t, 1.0, m.Feedback().Opacity())
}

func TestMachineRejectsOverlappingDrags(t *testing.T) {
	m := NewMachine(trash)
	_, err := m.End(layout.Point{}, layout.Point{})
	assert.ErrorIs(t, err, ErrNotDragging)

	require.NoError(t, m.Start(Entity{Kind: KindCity, ID: "a"}))
	assert.ErrorIs(t, m.Start(Entity{Kind: KindCity, ID: "b"}), ErrAlreadyDragging)

	m.Cancel()
	assert.NoError(t, m.Start(Entity{Kind: KindCity, ID: "b"}))
}
