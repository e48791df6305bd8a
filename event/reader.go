package event

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/cellforge/vista/terminal"
)

// Reader pumps a Backend's raw reads through a Translator and delivers
// typed events over a channel. Bounded-wait read timeouts drive the
// translator's Tick so a pending ESC resolves without further input.
type Reader struct {
	backend terminal.Backend
	tr      *Translator

	events chan Event
	stopCh chan struct{}
	doneCh chan struct{}

	stopOnce sync.Once

	mu      sync.Mutex
	paused  bool
	unpause chan struct{}
}

// NewReader creates a reader over the backend. The translator must be
// exclusive to this backend.
func NewReader(b terminal.Backend, tr *Translator) *Reader {
	return &Reader{
		backend: b,
		tr:      tr,
		events:  make(chan Event, 64),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// Events returns the delivery channel. It is never closed; consumers
// stop via their own loop exit after Closed or Error.
func (r *Reader) Events() <-chan Event {
	return r.events
}

// Start launches the read loop goroutine
func (r *Reader) Start() {
	r.backend.SetResizeHandler(func(width, height int) {
		r.deliver(Event{What: Resize, Width: width, Height: height})
	})
	go r.loop()
}

// Stop terminates the read loop and waits for it to exit
func (r *Reader) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopCh)
	})
	<-r.doneCh
}

// Pause parks the read loop without touching the backend, leaving the
// underlying input stream for whoever holds the terminal. Takes effect
// within one bounded wait. Resize deliveries keep flowing.
func (r *Reader) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.paused {
		r.paused = true
		r.unpause = make(chan struct{})
	}
}

// Resume restarts a paused read loop
func (r *Reader) Resume() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.paused {
		r.paused = false
		close(r.unpause)
	}
}

func (r *Reader) loop() {
	defer close(r.doneCh)
	defer func() {
		if rec := recover(); rec != nil {
			r.deliver(Event{What: Error, Err: fmt.Errorf("input reader panic: %v", rec)})
		}
	}()

	for {
		select {
		case <-r.stopCh:
			return
		default:
		}

		r.mu.Lock()
		paused, unpause := r.paused, r.unpause
		r.mu.Unlock()
		if paused {
			select {
			case <-unpause:
			case <-r.stopCh:
				return
			}
			continue
		}

		chunk, err := r.backend.Read(r.stopCh)
		if err != nil {
			if errors.Is(err, io.EOF) {
				// Clean close, not a failure
				r.deliver(Event{What: Closed})
				return
			}
			r.deliver(Event{What: Error, Err: err})
			r.deliver(Event{What: Closed})
			return
		}

		var evs []Event
		if len(chunk) == 0 {
			evs = r.tr.Tick()
		} else {
			evs = r.tr.Feed(chunk)
		}
		for _, ev := range evs {
			if !r.deliver(ev) {
				return
			}
		}
	}
}

// deliver sends an event unless the reader is stopping
func (r *Reader) deliver(ev Event) bool {
	select {
	case r.events <- ev:
		return true
	case <-r.stopCh:
		return false
	}
}
