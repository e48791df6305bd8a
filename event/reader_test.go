package event

import (
	"testing"
	"time"

	"github.com/cellforge/vista/terminal"
)

func startReader(t *testing.T) (*terminal.MemoryBackend, *Reader) {
	t.Helper()
	b := terminal.NewMemory(80, 24)
	tr, err := NewTranslator()
	if err != nil {
		t.Fatalf("NewTranslator: %v", err)
	}
	r := NewReader(b, tr)
	r.Start()
	return b, r
}

func TestReaderPauseStopsConsumingInput(t *testing.T) {
	b, r := startReader(t)
	defer r.Stop()

	r.Pause()
	time.Sleep(30 * time.Millisecond) // in-flight read drains, loop parks
	b.QueueInput([]byte("x"))

	select {
	case ev := <-r.Events():
		t.Fatalf("paused reader delivered %+v", ev)
	case <-time.After(150 * time.Millisecond):
	}

	r.Resume()
	select {
	case ev := <-r.Events():
		if ev.What != Keyboard || ev.Rune != 'x' {
			t.Errorf("resumed delivery = %+v, want rune x", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("resume did not restart input delivery")
	}
}

func TestReaderStopWhilePaused(t *testing.T) {
	_, r := startReader(t)

	r.Pause()
	done := make(chan struct{})
	go func() {
		r.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Stop hung on a paused reader")
	}
}

func TestReaderDeliversClosedOnBackendClose(t *testing.T) {
	b, r := startReader(t)
	defer r.Stop()

	b.Fini()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-r.Events():
			if ev.What == Error {
				t.Fatalf("clean close delivered an error: %v", ev.Err)
			}
			if ev.What == Closed {
				return
			}
		case <-deadline:
			t.Fatalf("closed backend never produced a Closed event")
		}
	}
}
