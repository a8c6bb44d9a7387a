// Package selection implements the pointer drag that produces a crop selection.
//
// The machine is pure: callers pass the current display rectangle and region
// size with each event and act on the returned Outcome.
package selection

import (
	"image-view/internal/crop"
	"image-view/pkg/geometry"
)

// DragThreshold is the distance in screen pixels a drag must cover on both
// axes before it is committed.
const DragThreshold = 20

// State of the drag.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Button identifies the pointer button of an event.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonTertiary
)

// Outcome tells the caller what an event requires.
type Outcome int

const (
	// None means nothing visible changed.
	None Outcome = iota
	// Redraw means the selection overlay changed; the cached frame is still valid.
	Redraw
	// Commit means the gesture finished and its corners should become the crop.
	Commit
	// Cancelled means an active drag was abandoned without committing.
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case None:
		return "none"
	case Redraw:
		return "redraw"
	case Commit:
		return "commit"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Gesture is a finished drag in screen space.
type Gesture struct {
	From geometry.Point
	To   geometry.Point
}

// Machine tracks one pointer-down to pointer-up gesture.
type Machine struct {
	state      State
	anchor     geometry.Point
	current    geometry.Point
	hasCurrent bool
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Down handles a button press at p. A primary press starts a drag when the
// visible region is larger than crop.MinSize on both axes; any other button
// cancels an active drag.
func (m *Machine) Down(p geometry.Point, b Button, display geometry.Rect, region geometry.Size) Outcome {
	if b != ButtonPrimary {
		return m.Cancel()
	}
	if region.Min() <= crop.MinSize || display.Empty() {
		return m.Cancel()
	}

	m.state = Dragging
	m.anchor = geometry.ClampToRect(p, display)
	m.hasCurrent = false
	return None
}

// Move updates the drag end point.
func (m *Machine) Move(p geometry.Point, display geometry.Rect) Outcome {
	if m.state != Dragging {
		return None
	}
	m.current = geometry.ClampToRect(p, display)
	m.hasCurrent = true
	return Redraw
}

// Up finishes the gesture. The end point is the last Move position, not p, so
// a release without any movement never commits. The returned Gesture is only
// meaningful when the outcome is Commit.
func (m *Machine) Up(p geometry.Point, b Button) (Outcome, Gesture) {
	if m.state != Dragging {
		return None, Gesture{}
	}
	if b != ButtonPrimary {
		return m.Cancel(), Gesture{}
	}

	anchor, current, ok := m.anchor, m.current, m.hasCurrent
	m.reset()

	if !ok {
		return Cancelled, Gesture{}
	}
	d := anchor.Sub(current)
	if abs(d.X) <= DragThreshold || abs(d.Y) <= DragThreshold {
		return Cancelled, Gesture{}
	}
	return Commit, Gesture{From: anchor, To: current}
}

// Cancel abandons an active drag.
func (m *Machine) Cancel() Outcome {
	if m.state != Dragging {
		return None
	}
	m.reset()
	return Cancelled
}

// Rect returns the normalized selection rectangle while a drag with a recorded
// end point is active.
func (m *Machine) Rect() (geometry.Rect, bool) {
	if m.state != Dragging || !m.hasCurrent {
		return geometry.Rect{}, false
	}
	return geometry.RectBetween(m.anchor, m.current), true
}

func (m *Machine) reset() {
	*m = Machine{}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
