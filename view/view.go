// Package view implements the widget tree: the View contract, the Base
// embeddable, and Group, the only container type. Groups own their
// children, encode z-order as child order (index 0 is back-most), keep
// the single-focus invariant, and route events by kind.
package view

import (
	"github.com/cellforge/vista/event"
	"github.com/cellforge/vista/screen"
)

// State holds a view's flag bits
type State uint8

const (
	StateVisible State = 1 << iota
	StateFocused
	StateDisabled
	StateModal
	StateDragging // reserved for drag-tracking widgets
)

// View is the polymorphic unit of the tree. A View never owns other
// Views; only Group does. Implementations embed Base, which carries
// bounds, state, palette, and the owner link.
type View interface {
	// Draw renders into a surface already clipped to the view's bounds
	Draw(s screen.Surface)

	// HandleEvent may mutate the event or consume it to stop propagation
	HandleEvent(ev *event.Event)

	// Bounds is owner-relative
	Bounds() screen.Rect
	SetBounds(r screen.Rect)

	State() State
	SetState(flag State, on bool)

	// CanFocus reports whether the view participates in the focus chain
	CanFocus() bool

	// Palette maps the view's local color slots onto its owner's slots;
	// nil means identity
	Palette() Palette

	// Owner linkage is managed exclusively by Group.Add/Remove; the
	// unexported methods keep outside packages from forging it
	owner() *Group
	setOwner(g *Group, token int)
	token() int
}

// Base is the default View implementation meant for embedding. It draws
// nothing, ignores events, and cannot focus.
type Base struct {
	bounds screen.Rect
	state  State
	pal    Palette

	own *Group
	tok int
}

// NewBase creates a visible base with the given owner-relative bounds
func NewBase(r screen.Rect) Base {
	return Base{bounds: r, state: StateVisible, tok: -1}
}

func (b *Base) Draw(screen.Surface) {}

func (b *Base) HandleEvent(*event.Event) {}

func (b *Base) Bounds() screen.Rect {
	return b.bounds
}

func (b *Base) SetBounds(r screen.Rect) {
	b.bounds = r
}

func (b *Base) State() State {
	return b.state
}

func (b *Base) SetState(flag State, on bool) {
	if on {
		b.state |= flag
	} else {
		b.state &^= flag
	}
}

func (b *Base) CanFocus() bool {
	return false
}

func (b *Base) Palette() Palette {
	return b.pal
}

// SetPalette installs the slot mapping used during style resolution
func (b *Base) SetPalette(p Palette) {
	b.pal = p
}

func (b *Base) owner() *Group {
	return b.own
}

func (b *Base) setOwner(g *Group, token int) {
	b.own = g
	b.tok = token
}

func (b *Base) token() int {
	return b.tok
}

// Owner returns the owning group, nil for a detached or root view
func (b *Base) Owner() *Group {
	return b.own
}

// Token returns the identity token assigned by the owning group,
// -1 while detached
func (b *Base) Token() int {
	return b.tok
}
