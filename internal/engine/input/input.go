// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType is the kind of a processed input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventWindowClose
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Event represents a processed input event.
type Event struct {
	Type     EventType
	WindowID uint32
	Key      sdl.Scancode
	Repeat   bool
	Width    int
	Height   int
	MouseX   int
	MouseY   int
	DeltaX   int
	DeltaY   int
	Button   uint8
	Wheel    float32
}

// Input handles all input processing.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the application should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if ev, ok := Convert(event); ok {
			i.events = append(i.events, ev)
			if ev.Type == EventQuit {
				quit = true
			}
		}
	}
	return quit
}

// Convert maps one SDL event to a viewer event.
func Convert(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_RESIZED:
			return Event{
				Type:     EventWindowResize,
				WindowID: e.WindowID,
				Width:    int(e.Data1),
				Height:   int(e.Data2),
			}, true
		case sdl.WINDOWEVENT_CLOSE:
			return Event{Type: EventWindowClose, WindowID: e.WindowID}, true
		}

	case *sdl.KeyboardEvent:
		ev := Event{
			WindowID: e.WindowID,
			Key:      e.Keysym.Scancode,
			Repeat:   e.Repeat != 0,
		}
		switch e.Type {
		case sdl.KEYDOWN:
			ev.Type = EventKeyDown
			return ev, true
		case sdl.KEYUP:
			ev.Type = EventKeyUp
			return ev, true
		}

	case *sdl.MouseMotionEvent:
		return Event{
			Type:     EventMouseMove,
			WindowID: e.WindowID,
			MouseX:   int(e.X),
			MouseY:   int(e.Y),
			DeltaX:   int(e.XRel),
			DeltaY:   int(e.YRel),
		}, true

	case *sdl.MouseButtonEvent:
		ev := Event{
			WindowID: e.WindowID,
			MouseX:   int(e.X),
			MouseY:   int(e.Y),
			Button:   e.Button,
		}
		switch e.Type {
		case sdl.MOUSEBUTTONDOWN:
			ev.Type = EventMouseDown
			return ev, true
		case sdl.MOUSEBUTTONUP:
			ev.Type = EventMouseUp
			return ev, true
		}

	case *sdl.MouseWheelEvent:
		return Event{
			Type:     EventMouseWheel,
			WindowID: e.WindowID,
			Wheel:    float32(e.Y),
		}, true
	}
	return Event{}, false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}
