package main

import (
	"fmt"

	"github.com/cellforge/vista/app"
	"github.com/cellforge/vista/command"
	"github.com/cellforge/vista/event"
	"github.com/cellforge/vista/screen"
	"github.com/cellforge/vista/view"
)

// Demo command ids
const (
	cmdOpenDialog command.ID = command.UserBase + iota
	cmdToggle
)

// label is a static line of text
type label struct {
	view.Base
	text string
}

func newLabel(x, y int, text string) *label {
	l := &label{text: text}
	l.Base = view.NewBase(screen.NewRect(x, y, len(text), 1))
	return l
}

func (l *label) Draw(s screen.Surface) {
	s.PutString(0, 0, l.text, view.StyleOf(l, view.SlotText))
}

// button is focusable, clickable, and tracks its command's enablement
type button struct {
	view.Base
	text string
	cmd  command.ID
	reg  *command.Registry
}

func newButton(x, y int, text string, cmd command.ID, reg *command.Registry) *button {
	b := &button{text: text, cmd: cmd, reg: reg}
	b.Base = view.NewBase(screen.NewRect(x, y, len(text)+4, 1))
	b.syncEnabled()
	return b
}

func (b *button) CanFocus() bool {
	return b.State()&view.StateDisabled == 0
}

func (b *button) syncEnabled() {
	b.SetState(view.StateDisabled, !b.reg.IsEnabled(b.cmd))
}

func (b *button) Draw(s screen.Surface) {
	slot := view.SlotText
	switch {
	case b.State()&view.StateDisabled != 0:
		slot = view.SlotDisabled
	case b.State()&view.StateFocused != 0:
		slot = view.SlotFocus
	}
	style := view.StyleOf(b, slot)
	s.Fill(style)
	s.PutString(0, 0, "[ "+b.text+" ]", style)
}

func (b *button) HandleEvent(ev *event.Event) {
	switch ev.What {
	case event.MouseDown:
		if b.State()&view.StateDisabled == 0 {
			*ev = event.Event{What: event.Command, Cmd: b.cmd}
		}
	case event.Keyboard:
		if b.State()&view.StateFocused != 0 && b.State()&view.StateDisabled == 0 &&
			(ev.Key == event.KeyEnter || (ev.Key == event.KeyRune && ev.Rune == ' ')) {
			*ev = event.Event{What: event.Command, Cmd: b.cmd}
		}
	case event.Broadcast:
		if ev.Cmd == command.CommandSetChanged {
			b.syncEnabled()
		}
	}
}

// window is a framed group with a title bar
type window struct {
	view.Group
	title string
}

func newWindow(r screen.Rect, title string) *window {
	w := &window{title: title}
	w.Group = *view.NewGroup(r)
	return w
}

func (w *window) Draw(s screen.Surface) {
	w.Group.Draw(s)
	frame := view.StyleOf(w, view.SlotFrame)
	s.Frame(frame)
	s.PutString(2, 0, " "+w.title+" ", view.StyleOf(w, view.SlotTitle))
}

// dialog is a modal confirmation box
type dialog struct {
	view.Group
	message string
}

func newDialog(r screen.Rect, message string) *dialog {
	d := &dialog{message: message}
	d.Group = *view.NewGroup(r)
	d.Add(newButton(4, r.Dy()-2, "OK", command.OK, command.Default()))
	d.Add(newButton(14, r.Dy()-2, "Cancel", command.Cancel, command.Default()))
	return d
}

func (d *dialog) Draw(s screen.Surface) {
	d.Group.Draw(s)
	s.Frame(view.StyleOf(d, view.SlotFrame))
	s.PutString(2, 1, d.message, view.StyleOf(d, view.SlotText))
}

func (d *dialog) HandleEvent(ev *event.Event) {
	if ev.What == event.Keyboard {
		switch ev.Key {
		case event.KeyEscape:
			*ev = event.Event{What: event.Command, Cmd: command.Cancel}
			return
		case event.KeyTab:
			d.FocusNext()
			ev.Consume()
			return
		case event.KeyBacktab:
			d.FocusPrev()
			ev.Consume()
			return
		}
	}
	d.Group.HandleEvent(ev)
}

// statusLine reflects the last modal result
type statusLine struct {
	view.Base
	text string
}

func (s *statusLine) Draw(sf screen.Surface) {
	sf.Fill(view.StyleOf(s, view.SlotFocus))
	sf.PutString(1, 0, s.text, view.StyleOf(s, view.SlotFocus))
}

// launcher owns the demo behavior: it opens the dialog and toggles the
// other button's enablement
type launcher struct {
	view.Base
	a      *app.Application
	status *statusLine
}

func (l *launcher) HandleEvent(ev *event.Event) {
	if ev.What != event.Command {
		return
	}
	switch ev.Cmd {
	case cmdOpenDialog:
		ev.Consume()
		w, h := 40, 7
		dw, dh := l.a.Desktop().Bounds().Dx(), l.a.Desktop().Bounds().Dy()
		d := newDialog(screen.NewRect((dw-w)/2, (dh-h)/2, w, h), "Proceed with the demo action?")
		result, err := l.a.ExecModal(d)
		if err != nil {
			l.status.text = fmt.Sprintf("modal error: %v", err)
			return
		}
		l.status.text = fmt.Sprintf("dialog result: %d", result)
	case cmdToggle:
		ev.Consume()
		if command.IsEnabled(cmdOpenDialog) {
			command.Disable(cmdOpenDialog)
			l.status.text = "dialog button disabled"
		} else {
			command.Enable(cmdOpenDialog)
			l.status.text = "dialog button enabled"
		}
	}
}

// buildDesktop assembles the demo UI on the application's desktop
func buildDesktop(a *app.Application) {
	desktop := a.Desktop()
	w, h := desktop.Bounds().Dx(), desktop.Bounds().Dy()

	status := &statusLine{
		Base: view.NewBase(screen.NewRect(0, h-1, w, 1)),
		text: "Tab cycles focus, Enter activates, double-ESC quits",
	}

	win := newWindow(screen.NewRect(4, 2, 48, 12), "vista demo")
	win.Add(newLabel(2, 2, "A tiny window over the desktop."))
	win.Add(newButton(2, 4, "Open dialog", cmdOpenDialog, command.Default()))
	win.Add(newButton(2, 6, "Toggle other button", cmdToggle, command.Default()))
	win.Add(newLabel(2, 8, "Click a button or press Enter."))

	desktop.Add(&launcher{Base: view.NewBase(screen.NewRect(0, 0, 0, 0)), a: a, status: status})
	desktop.Add(win)
	desktop.Add(status)
	desktop.Add(newButton(2, h-3, "Quit", command.Quit, command.Default()))
}
