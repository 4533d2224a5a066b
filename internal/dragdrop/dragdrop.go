// Package dragdrop decides what a drag of a trip card, city tab or activity
// block does when it is released.
package dragdrop

import (
	"errors"
	"math"

	"tripplanner/internal/domain/models"
	"tripplanner/internal/layout"
)

type Kind string

const (
	KindTrip     Kind = "trip"
	KindCity     Kind = "city"
	KindActivity Kind = "activity"
)

// grab point of a city tab relative to its top-left corner
const (
	GrabOffsetX = 100
	GrabOffsetY = 40
)

var (
	ErrAlreadyDragging = errors.New("dragdrop: a drag is already in progress")
	ErrNotDragging     = errors.New("dragdrop: no drag in progress")
)

// Rect is a bounding box in viewport coordinates. Edges are inclusive.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

func (r Rect) Contains(p layout.Point) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Top && p.Y <= r.Bottom
}

type Entity struct {
	Kind Kind   `json:"kind"`
	ID   string `json:"id"`
}

type Action int

const (
	ActionNone Action = iota
	ActionDelete
	ActionReposition
)

func (a Action) String() string {
	switch a {
	case ActionDelete:
		return "delete"
	case ActionReposition:
		return "reposition"
	default:
		return "none"
	}
}

// Outcome is what should happen once a drag ends.
type Outcome struct {
	Entity       Entity
	Action       Action
	NeedsConfirm bool
	Position     models.Position
}

// Feedback is the hover state to paint while dragging.
type Feedback struct {
	Dragging    bool
	TrashActive bool
	OverTrash   bool
	Kind        Kind
}

// Opacity of the dragged element. Only trip cards fade.
func (f Feedback) Opacity() float64 {
	if !f.Dragging || f.Kind != KindTrip {
		return 1
	}
	if f.OverTrash {
		return 0.3
	}
	return 0.5
}

// Machine tracks one drag at a time: Idle -> Dragging -> Idle.
type Machine struct {
	Trash Rect

	dragging  bool
	entity    Entity
	overTrash bool
}

func NewMachine(trash Rect) *Machine {
	return &Machine{Trash: trash}
}

func (m *Machine) Start(e Entity) error {
	if m.dragging {
		return ErrAlreadyDragging
	}
	m.dragging = true
	m.entity = e
	m.overTrash = false
	return nil
}

// Move records the live pointer and reports whether it is over the trash.
func (m *Machine) Move(pointer layout.Point) Feedback {
	if m.dragging {
		m.overTrash = m.Trash.Contains(pointer)
	}
	return m.Feedback()
}

func (m *Machine) Feedback() Feedback {
	return Feedback{
		Dragging:    m.dragging,
		TrashActive: m.dragging,
		OverTrash:   m.dragging && m.overTrash,
		Kind:        m.entity.Kind,
	}
}

// End releases the drag at pointer. Only the release point decides the
// outcome; the last hover state does not. canvasOrigin is the top-left of
// the city canvas in the same coordinates as pointer.
func (m *Machine) End(pointer, canvasOrigin layout.Point) (Outcome, error) {
	if !m.dragging {
		return Outcome{}, ErrNotDragging
	}
	e := m.entity
	m.Cancel()
	return Decide(e, m.Trash, pointer, canvasOrigin), nil
}

// Cancel returns to Idle without an outcome.
func (m *Machine) Cancel() {
	m.dragging = false
	m.overTrash = false
	m.entity = Entity{}
}

// Decide is the drop rule on its own.
func Decide(e Entity, trash Rect, pointer, canvasOrigin layout.Point) Outcome {
	out := Outcome{Entity: e}
	if trash.Contains(pointer) {
		out.Action = ActionDelete
		out.NeedsConfirm = e.Kind != KindActivity
		return out
	}
	if e.Kind == KindCity {
		out.Action = ActionReposition
		out.Position = models.Position{
			X: models.IntPtr(int(math.Round(pointer.X - canvasOrigin.X - GrabOffsetX))),
			Y: models.IntPtr(int(math.Round(pointer.Y - canvasOrigin.Y - GrabOffsetY))),
		}
	}
	return out
}
