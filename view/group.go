package view

import (
	"fmt"

	"github.com/cellforge/vista/event"
	"github.com/cellforge/vista/screen"
)

// NoExclude delivers a broadcast to every child
const NoExclude = -1

// Group is the only container: it exclusively owns an ordered sequence
// of children whose order is back-to-front z-order. At most one child
// holds the focused flag. Groups nest freely (desktop, window, dialog).
type Group struct {
	Base

	children []View
	nextTok  int

	// theme, when set, makes this group a palette-resolution root
	theme *Theme
}

// NewGroup creates an empty visible group with the given bounds
func NewGroup(r screen.Rect) *Group {
	return &Group{Base: NewBase(r)}
}

// SetTheme makes this group resolve slots directly; the desktop group
// carries the application theme
func (g *Group) SetTheme(t *Theme) {
	g.theme = t
}

// Theme returns the group's own theme, nil when it defers to its owner
func (g *Group) Theme() *Theme {
	return g.theme
}

// Add appends v front-most and returns its identity token, stable
// across reordering and unrelated removals. If nothing holds focus and
// v can take it, v becomes focused.
func (g *Group) Add(v View) int {
	tok := g.nextTok
	g.nextTok++
	v.setOwner(g, tok)
	g.children = append(g.children, v)

	if g.Focused() == nil && v.CanFocus() {
		g.focus(v)
	}
	return tok
}

// Remove detaches the child with the given token and returns it, nil
// if the token is unknown. Focus moves to the first remaining
// focusable child.
func (g *Group) Remove(token int) View {
	for i, c := range g.children {
		if c.token() != token {
			continue
		}
		hadFocus := c.State()&StateFocused != 0
		c.setOwner(nil, -1)
		c.SetState(StateFocused, false)
		g.children = append(g.children[:i], g.children[i+1:]...)
		if hadFocus {
			for _, rest := range g.children {
				if rest.CanFocus() {
					g.focus(rest)
					break
				}
			}
		}
		return c
	}
	return nil
}

// TokenOf returns the token of a direct child, -1 when v is not owned
// by this group
func (g *Group) TokenOf(v View) int {
	if v.owner() == g {
		return v.token()
	}
	return -1
}

// Find returns the child with the given token, nil if absent
func (g *Group) Find(token int) View {
	for _, c := range g.children {
		if c.token() == token {
			return c
		}
	}
	return nil
}

// Len returns the number of direct children
func (g *Group) Len() int {
	return len(g.children)
}

// Focused returns the child holding the focused flag, nil if none
func (g *Group) Focused() View {
	for _, c := range g.children {
		if c.State()&StateFocused != 0 {
			return c
		}
	}
	return nil
}

// SetFocus moves focus to the child with the given token. No-op when
// the target cannot focus or the token is unknown.
func (g *Group) SetFocus(token int) {
	v := g.Find(token)
	if v == nil || !v.CanFocus() {
		return
	}
	g.focus(v)
}

// FocusNext advances focus to the next focusable child in z-order,
// wrapping around; used for Tab traversal
func (g *Group) FocusNext() {
	g.cycleFocus(1)
}

// FocusPrev moves focus backwards, for Shift+Tab
func (g *Group) FocusPrev() {
	g.cycleFocus(-1)
}

func (g *Group) cycleFocus(dir int) {
	n := len(g.children)
	if n == 0 {
		return
	}
	start := 0
	if f := g.Focused(); f != nil {
		start = g.indexOf(f.token())
	}
	for step := 1; step <= n; step++ {
		i := ((start+dir*step)%n + n) % n
		c := g.children[i]
		if c.CanFocus() && c.State()&StateVisible != 0 && c.State()&StateDisabled == 0 {
			g.focus(c)
			return
		}
	}
}

// focus enforces the single-focus invariant
func (g *Group) focus(v View) {
	if prev := g.Focused(); prev != nil && prev != v {
		prev.SetState(StateFocused, false)
	}
	v.SetState(StateFocused, true)
}

// BringToFront moves the addressed child to the front of the z-order.
// The whole tree recomposes every frame, so the region the child
// previously shared with its neighbors repaints on the next draw.
func (g *Group) BringToFront(token int) {
	i := g.mustIndex(token)
	if i == len(g.children)-1 {
		return
	}
	c := g.children[i]
	g.children = append(g.children[:i], g.children[i+1:]...)
	g.children = append(g.children, c)
}

// indexOf resolves a token to the current z-order position, -1 if
// absent
func (g *Group) indexOf(token int) int {
	for i, c := range g.children {
		if c.token() == token {
			return i
		}
	}
	return -1
}

// mustIndex converts a stale token into a contract-violation panic,
// which the session host treats as session-fatal only
func (g *Group) mustIndex(token int) int {
	i := g.indexOf(token)
	if i < 0 {
		panic(fmt.Sprintf("view: group has no child with token %d", token))
	}
	return i
}

// CanFocus reports whether any child can take focus
func (g *Group) CanFocus() bool {
	for _, c := range g.children {
		if c.CanFocus() {
			return true
		}
	}
	return false
}

// Draw renders children back-to-front, each clipped to the
// intersection of its bounds and the group's surface. Children fully
// outside the group are skipped.
func (g *Group) Draw(s screen.Surface) {
	if g.State()&StateVisible == 0 {
		return
	}
	s.Fill(StyleOf(g, SlotBackground))

	w, h := s.Size()
	local := screen.NewRect(0, 0, w, h)
	for _, c := range g.children {
		if c.State()&StateVisible == 0 {
			continue
		}
		if c.Bounds().Intersect(local).Empty() {
			continue
		}
		c.Draw(s.Sub(c.Bounds()))
	}
}

// modalChild returns the front-most child flagged modal, nil if none
func (g *Group) modalChild() View {
	for i := len(g.children) - 1; i >= 0; i-- {
		c := g.children[i]
		if c.State()&StateModal != 0 && c.State()&StateVisible != 0 {
			return c
		}
	}
	return nil
}

// HandleEvent routes by event kind. Keyboard and command events go to
// the focused child first, then fall through to the remaining children
// front-to-back for shortcut matching. Mouse events hit-test
// front-to-back so the topmost widget under the pointer wins. A modal
// child preempts all routing.
func (g *Group) HandleEvent(ev *event.Event) {
	if ev.Consumed() {
		return
	}

	if m := g.modalChild(); m != nil {
		g.routeToModal(m, ev)
		return
	}

	switch ev.What {
	case event.Keyboard, event.Command:
		if f := g.Focused(); f != nil && f.State()&StateDisabled == 0 {
			f.HandleEvent(ev)
			if ev.Consumed() {
				return
			}
		}
		// Shortcut phase: unfocused children get a chance to claim it
		for i := len(g.children) - 1; i >= 0; i-- {
			c := g.children[i]
			if c.State()&StateFocused != 0 || c.State()&StateVisible == 0 || c.State()&StateDisabled != 0 {
				continue
			}
			c.HandleEvent(ev)
			if ev.Consumed() {
				return
			}
		}

	case event.MouseDown, event.MouseUp, event.MouseMove, event.MouseWheel:
		g.routeMouse(ev)

	case event.Broadcast, event.Resize:
		// Broadcasts bypass focus and bounds; each child sees a copy so
		// one consumer cannot starve its siblings
		g.Broadcast(ev, NoExclude)
	}
}

// routeToModal delivers everything to the modal child. Mouse events
// outside its bounds are consumed so enclosing widgets observe
// nothing; an event the child transforms (say a click into a Command)
// keeps bubbling so the caller can act on it.
func (g *Group) routeToModal(m View, ev *event.Event) {
	switch ev.What {
	case event.MouseDown, event.MouseUp, event.MouseMove, event.MouseWheel:
		b := m.Bounds()
		if !pointIn(b, ev.X, ev.Y) {
			ev.Consume()
			return
		}
		deliverMouse(m, ev, b)
	case event.Broadcast, event.Resize:
		g.Broadcast(ev, NoExclude)
	default:
		m.HandleEvent(ev)
	}
}

// routeMouse delivers a mouse event to the topmost visible child whose
// bounds contain the point, translating coordinates into that child's
// local frame. A press on a focusable child moves focus to it.
func (g *Group) routeMouse(ev *event.Event) {
	for i := len(g.children) - 1; i >= 0; i-- {
		c := g.children[i]
		if c.State()&StateVisible == 0 {
			continue
		}
		b := c.Bounds()
		if !pointIn(b, ev.X, ev.Y) {
			continue
		}
		if ev.What == event.MouseDown && c.CanFocus() && c.State()&StateDisabled == 0 {
			g.focus(c)
		}
		deliverMouse(c, ev, b)
		return // topmost wins, consumed or not
	}
}

func isMouse(t event.Type) bool {
	switch t {
	case event.MouseDown, event.MouseUp, event.MouseMove, event.MouseWheel:
		return true
	}
	return false
}

// deliverMouse hands the event to v with coordinates in v's local
// frame. If the event survives as a mouse event the coordinates are
// restored; a widget that synthesized something else (e.g. a Command)
// leaves its replacement in place to bubble upward.
func deliverMouse(v View, ev *event.Event, b screen.Rect) {
	ev.X -= b.Min.X
	ev.Y -= b.Min.Y
	v.HandleEvent(ev)
	if isMouse(ev.What) {
		ev.X += b.Min.X
		ev.Y += b.Min.Y
	}
}

// Broadcast delivers a copy of the event to every direct child except
// the one with the excluded token (NoExclude sends to all), regardless
// of focus, bounds, or visibility
func (g *Group) Broadcast(ev *event.Event, excludeToken int) {
	for _, c := range g.children {
		if excludeToken != NoExclude && c.token() == excludeToken {
			continue
		}
		cp := *ev
		c.HandleEvent(&cp)
	}
}

func pointIn(r screen.Rect, x, y int) bool {
	return r.Contains(screen.Point{X: x, Y: y})
}
