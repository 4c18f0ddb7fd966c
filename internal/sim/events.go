package sim

import "math"

// EventKind enumerates input events delivered once per frame.
type EventKind int

const (
	EventQuit EventKind = iota + 1
	EventKeyDown
	EventPointerDown
)

// Key names a keyboard key.
type Key string

const (
	KeyEscape Key = "escape"
	KeyP      Key = "p"
)

// Button identifies a pointer button. ButtonPrimary is the left mouse button.
type Button int

const ButtonPrimary Button = 1

// Event is a single input event in screen coordinates (y down).
type Event struct {
	Kind   EventKind
	Key    Key
	Button Button
	X, Y   float64
}

// Quit builds a quit event.
func Quit() Event { return Event{Kind: EventQuit} }

// KeyDown builds a key press event.
func KeyDown(k Key) Event { return Event{Kind: EventKeyDown, Key: k} }

// PointerDown builds a button press at screen position (x, y).
func PointerDown(b Button, x, y float64) Event {
	return Event{Kind: EventPointerDown, Button: b, X: x, Y: y}
}

// valid rejects events the frame loop cannot act on.
func (e Event) valid() bool {
	switch e.Kind {
	case EventQuit:
		return true
	case EventKeyDown:
		return e.Key != ""
	case EventPointerDown:
		return !math.IsNaN(e.X) && !math.IsNaN(e.Y) && !math.IsInf(e.X, 0) && !math.IsInf(e.Y, 0)
	}
	return false
}

// InputSource supplies the events for one frame. Poll is called exactly once
// per frame and the returned batch is processed in full.
type InputSource interface {
	Poll() []Event
}

// Script replays fixed events on given frames and quits after a frame count.
type Script struct {
	events    map[uint64][]Event
	quitAfter uint64
	polled    uint64
}

// NewScript returns a Script that emits Quit on frame quitAfter (0 disables).
func NewScript(quitAfter uint64) *Script {
	return &Script{events: make(map[uint64][]Event), quitAfter: quitAfter}
}

// At schedules events for the given zero-based frame index.
func (s *Script) At(frame uint64, events ...Event) *Script {
	s.events[frame] = append(s.events[frame], events...)
	return s
}

// Poll returns the events scheduled for the current frame.
func (s *Script) Poll() []Event {
	frame := s.polled
	s.polled++
	batch := s.events[frame]
	if s.quitAfter > 0 && frame+1 >= s.quitAfter {
		batch = append(batch, Quit())
	}
	return batch
}
