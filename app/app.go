// Package app runs one terminal session: it owns a Backend, a
// Compositor, a Translator/Reader pair, and the desktop Group, and
// drives the poll/dispatch/idle/draw/flush cycle. Modal execution is
// an explicit stack of nested loops over the same cycle.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cellforge/vista/command"
	"github.com/cellforge/vista/config"
	"github.com/cellforge/vista/event"
	"github.com/cellforge/vista/screen"
	"github.com/cellforge/vista/terminal"
	"github.com/cellforge/vista/view"
)

// Options configures an Application. Zero values fall back to the
// defaults: stock config, discard logger, the process-wide registry.
type Options struct {
	Config   config.Config
	Logger   *slog.Logger
	Registry *command.Registry
	Theme    *view.Theme
}

// modalEntry is one frame of the explicit modal stack
type modalEntry struct {
	v      view.View
	token  int
	added  bool // the view was attached to the desktop by ExecModal
	done   bool
	result command.ID
}

// Application orchestrates one session. Not safe for concurrent use;
// one goroutine drives Run and everything it dispatches.
type Application struct {
	backend terminal.Backend
	comp    *screen.Compositor
	tr      *event.Translator
	reader  *event.Reader
	desktop *view.Group
	reg     *command.Registry
	log     *slog.Logger

	cfg          config.Config
	pollInterval time.Duration
	mouse        bool

	ctx       context.Context
	modals    []*modalEntry
	prevSnap  command.Set
	quitting  bool
	suspended bool
	runErr    error
}

// New builds an application over the backend. The configuration must
// already be validated; translator construction still rejects
// out-of-range timing values with a RangeError.
func New(b terminal.Backend, opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == (config.Config{}) {
		cfg = config.Default()
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	reg := opts.Registry
	if reg == nil {
		reg = command.Default()
	}
	theme := opts.Theme
	if theme == nil {
		theme = view.DefaultTheme()
	}

	tr, err := event.NewTranslator(
		event.WithEscTimeout(cfg.EscTimeout()),
		event.WithDoubleClickWindow(cfg.DoubleClickWindow()),
	)
	if err != nil {
		return nil, err
	}

	mode := screen.DetectColorMode()
	switch cfg.ColorMode {
	case "256":
		mode = screen.ColorMode256
	case "truecolor":
		mode = screen.ColorModeTrueColor
	}

	w, h := b.Size()
	desktop := view.NewGroup(screen.NewRect(0, 0, w, h))
	desktop.SetTheme(theme)

	return &Application{
		backend:      b,
		comp:         screen.New(w, h, mode),
		tr:           tr,
		desktop:      desktop,
		reg:          reg,
		log:          log,
		cfg:          cfg,
		pollInterval: cfg.PollInterval(),
		mouse:        cfg.MouseEnabled,
	}, nil
}

// Desktop returns the root group; callers populate it before Run
func (a *Application) Desktop() *view.Group {
	return a.desktop
}

// Quit ends the main loop after the current cycle
func (a *Application) Quit() {
	a.quitting = true
}

// Run drives the session until Quit, backend close, context
// cancellation, or a backend error. Raw mode and visual state are
// restored on every exit path.
func (a *Application) Run(ctx context.Context) error {
	if err := a.backend.Init(); err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	defer a.backend.Fini()

	if err := terminal.Setup(a.backend, a.mouse); err != nil {
		return fmt.Errorf("session setup: %w", err)
	}
	defer terminal.Teardown(a.backend, a.mouse)

	w, h := a.backend.Size()
	a.comp.Resize(w, h)
	a.desktop.SetBounds(screen.NewRect(0, 0, w, h))

	a.ctx = ctx
	a.prevSnap = a.reg.Snapshot()
	a.reader = event.NewReader(a.backend, a.tr)
	a.reader.Start()
	defer a.reader.Stop()

	a.log.Info("session started", "width", w, "height", h)

	for !a.quitting {
		if err := a.cycle(); err != nil {
			a.log.Error("session ended on error", "error", err)
			return err
		}
	}
	a.log.Info("session ended")
	return nil
}

// cycle is one iteration: bounded wait for input, dispatch, idle,
// draw, flush. Both the main loop and every modal loop run it; routing
// restriction comes from the modal flag on the widget tree.
func (a *Application) cycle() error {
	select {
	case <-a.ctx.Done():
		a.quitting = true
		return a.ctx.Err()
	case ev := <-a.reader.Events():
		a.dispatch(&ev)
		a.drainEvents()
	case <-time.After(a.pollInterval):
		// Timeout is the normal idle outcome, not a failure
	}
	if a.runErr != nil {
		return a.runErr
	}

	a.idle()

	if !a.suspended {
		if err := a.draw(); err != nil {
			return fmt.Errorf("flush: %w", err)
		}
	}
	return nil
}

// drainEvents empties the reader channel without blocking so a burst
// of input settles within one cycle
func (a *Application) drainEvents() {
	for {
		select {
		case ev := <-a.reader.Events():
			a.dispatch(&ev)
		default:
			return
		}
	}
}

func (a *Application) dispatch(ev *event.Event) {
	switch ev.What {
	case event.Resize:
		a.comp.Resize(ev.Width, ev.Height)
		a.desktop.SetBounds(screen.NewRect(0, 0, ev.Width, ev.Height))
		a.log.Debug("resize", "width", ev.Width, "height", ev.Height)
		a.desktop.HandleEvent(ev)
		return

	case event.Error:
		a.runErr = ev.Err
		a.quitting = true
		return

	case event.Closed:
		a.quitting = true
		return

	case event.Keyboard:
		if ev.Key == event.KeyEscapeDouble {
			// Global panic-exit shortcut: unwind every modal loop and
			// stop the session
			for _, m := range a.modals {
				m.done = true
				m.result = command.Cancel
			}
			a.quitting = true
			return
		}
	}

	origWhat := ev.What
	a.desktop.HandleEvent(ev)

	// A widget may synthesize a Command out of a raw event (a button
	// click, an Enter press); give the tree one pass at the synthesized
	// form before it reaches the modal-termination check
	if !ev.Consumed() && ev.What == event.Command && origWhat != event.Command {
		a.desktop.HandleEvent(ev)
	}

	// A terminating command the modal view left unclaimed ends the
	// innermost modal loop and becomes its result
	if top := a.topModal(); top != nil && !ev.Consumed() &&
		ev.What == event.Command && isTerminating(ev.Cmd) {
		top.done = true
		top.result = ev.Cmd
		return
	}

	// An unclaimed Quit outside any modal ends the session
	if !ev.Consumed() && ev.What == event.Command && ev.Cmd == command.Quit {
		a.quitting = true
	}
}

func isTerminating(id command.ID) bool {
	switch id {
	case command.OK, command.Cancel, command.Yes, command.No,
		command.Close, command.Quit:
		return true
	}
	return false
}

func (a *Application) topModal() *modalEntry {
	if len(a.modals) == 0 {
		return nil
	}
	return a.modals[len(a.modals)-1]
}

// idle compares the command registry against the previous cycle's
// snapshot; any difference produces exactly one CommandSetChanged
// broadcast to the desktop before the next draw
func (a *Application) idle() {
	snap := a.reg.Snapshot()
	if snap.Equal(a.prevSnap) {
		return
	}
	a.prevSnap = snap
	ev := event.Event{What: event.Broadcast, Cmd: command.CommandSetChanged}
	a.desktop.Broadcast(&ev, view.NoExclude)
}

// draw recomposes the whole tree into the back grid and flushes the
// diff; unchanged frames write nothing
func (a *Application) draw() error {
	a.comp.BeginFrame()
	a.desktop.Draw(a.comp.Root().Sub(a.desktop.Bounds()))
	_, err := a.comp.Flush(terminal.Writer{B: a.backend})
	return err
}

// ExecModal runs v modally: it is brought front-most, flagged modal,
// and the cycle repeats with input delivery restricted to v until a
// terminating command arrives (returned to the caller) or the session
// quits. Nested calls stack to arbitrary depth; each inner modal fully
// blocks its enclosing scopes.
func (a *Application) ExecModal(v view.View) (command.ID, error) {
	entry := &modalEntry{v: v}
	if tok := a.desktop.TokenOf(v); tok >= 0 {
		entry.token = tok
	} else {
		entry.token = a.desktop.Add(v)
		entry.added = true
	}
	a.desktop.BringToFront(entry.token)
	v.SetState(view.StateModal, true)
	a.modals = append(a.modals, entry)

	a.log.Debug("modal entered", "depth", len(a.modals))

	var loopErr error
	for !entry.done && !a.quitting {
		if err := a.cycle(); err != nil {
			loopErr = err
			break
		}
	}

	a.modals = a.modals[:len(a.modals)-1]
	v.SetState(view.StateModal, false)
	if entry.added {
		a.desktop.Remove(entry.token)
	}
	a.log.Debug("modal exited", "depth", len(a.modals), "result", entry.result)

	if loopErr != nil {
		return entry.result, loopErr
	}
	if a.quitting && !entry.done {
		return command.Cancel, nil
	}
	return entry.result, nil
}

// EndModal terminates the innermost modal loop programmatically
func (a *Application) EndModal(result command.ID) {
	if top := a.topModal(); top != nil {
		top.done = true
		top.result = result
	}
}

// ModalDepth reports how many modal loops are live
func (a *Application) ModalDepth() int {
	return len(a.modals)
}

// Suspend releases raw mode and the alternate screen without tearing
// down the widget tree or closing the backend, so the process can hand
// the terminal to a shell or editor. Input delivery pauses until
// Resume. Call from the event dispatch path, like everything else.
func (a *Application) Suspend() {
	if a.suspended {
		return
	}
	if a.reader != nil {
		a.reader.Pause()
	}
	terminal.Teardown(a.backend, a.mouse)
	if s, ok := a.backend.(terminal.Suspender); ok {
		if err := s.Suspend(); err != nil {
			a.log.Error("release raw mode", "error", err)
		}
	}
	a.suspended = true
	a.log.Info("session suspended")
}

// Resume re-enters raw mode, restarts input delivery, and forces a
// full repaint. The size is re-queried in case the terminal changed
// while suspended.
func (a *Application) Resume() error {
	if !a.suspended {
		return nil
	}
	if s, ok := a.backend.(terminal.Suspender); ok {
		if err := s.Resume(); err != nil {
			return fmt.Errorf("re-enter raw mode: %w", err)
		}
	}
	if err := terminal.Setup(a.backend, a.mouse); err != nil {
		return fmt.Errorf("session setup: %w", err)
	}
	w, h := a.backend.Size()
	a.comp.Resize(w, h)
	a.desktop.SetBounds(screen.NewRect(0, 0, w, h))
	a.comp.Invalidate()
	if a.reader != nil {
		a.reader.Resume()
	}
	a.suspended = false
	a.log.Info("session resumed")
	return nil
}
