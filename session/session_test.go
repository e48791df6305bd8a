package session

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/cellforge/vista/app"
	"github.com/cellforge/vista/command"
	"github.com/cellforge/vista/event"
	"github.com/cellforge/vista/screen"
	"github.com/cellforge/vista/terminal"
	"github.com/cellforge/vista/view"
)

func TestSessionsAreIndependent(t *testing.T) {
	h := NewHost(app.Options{Registry: command.NewRegistry()}, nil)

	b1 := terminal.NewMemory(80, 24)
	b2 := terminal.NewMemory(80, 24)

	ctx := context.Background()
	if _, err := h.Attach(ctx, b1); err != nil {
		t.Fatalf("attach 1: %v", err)
	}
	if _, err := h.Attach(ctx, b2); err != nil {
		t.Fatalf("attach 2: %v", err)
	}

	// Ending one session leaves the other running
	b1.Fini()
	time.Sleep(50 * time.Millisecond)
	if b2.Closed() {
		t.Fatalf("closing session 1 affected session 2")
	}

	b2.Fini()
	if err := h.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
}

// panicker blows up on the first key, standing in for a widget with a
// stale-token bug
type panicker struct {
	view.Base
}

func (p *panicker) CanFocus() bool { return true }

func (p *panicker) HandleEvent(ev *event.Event) {
	if ev.What == event.Keyboard {
		panic("stale token")
	}
}

func TestPanickingSessionIsContained(t *testing.T) {
	h := NewHost(app.Options{Registry: command.NewRegistry()}, func(d *view.Group, a *app.Application) {
		d.Add(&panicker{Base: view.NewBase(screen.NewRect(0, 0, 10, 1))})
	})

	ctx := context.Background()
	bad := terminal.NewMemory(80, 24)
	good := terminal.NewMemory(80, 24)
	if _, err := h.Attach(ctx, bad); err != nil {
		t.Fatal(err)
	}
	if _, err := h.Attach(ctx, good); err != nil {
		t.Fatal(err)
	}

	bad.QueueInput([]byte("x"))
	time.Sleep(100 * time.Millisecond)
	if good.Closed() {
		t.Fatalf("sibling session ended by another session's panic")
	}

	good.QueueInput([]byte{0x1b, 0x1b})
	err := h.Wait()
	if err == nil {
		t.Fatalf("panic not reported")
	}
	if !strings.Contains(err.Error(), "panicked") {
		t.Errorf("unexpected error: %v", err)
	}
}
