// Package event translates raw terminal input into typed events and
// defines the event union routed through the widget tree.
//
// The Translator is a pure state machine over byte chunks and an
// injected clock; it owns the ESC-disambiguation timer. Each Backend
// gets its own Translator so concurrent sessions never share timer
// state. The Reader wraps a Backend's blocking reads in a goroutine
// and pumps translated events over a channel.
package event

import "github.com/cellforge/vista/command"

// Type tags the event union
type Type uint8

const (
	// Nothing marks a consumed event; later handlers drop it
	Nothing Type = iota
	Keyboard
	MouseDown
	MouseUp
	MouseMove
	MouseWheel
	Command
	Broadcast
	Resize
	Error
	Closed
)

// Event carries the minimal payload for its tag. Synthesized events
// (a button turning a MouseDown into a Command) reuse the same type.
type Event struct {
	What Type

	// Keyboard
	Key  Key
	Rune rune
	Mods Modifier

	// Mouse variants: absolute terminal coordinates, button bitmask
	X, Y   int
	Button MouseButton
	Double bool
	Wheel  int

	// Command and Broadcast
	Cmd  command.ID
	Data any

	// Resize
	Width, Height int

	// Error
	Err error
}

// Consume marks the event handled so further propagation stops
func (e *Event) Consume() {
	*e = Event{What: Nothing}
}

// Consumed reports whether the event was handled
func (e *Event) Consumed() bool {
	return e.What == Nothing
}
