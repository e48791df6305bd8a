// Package session hosts multiple independent terminal sessions in one
// process, one Application per Backend. The command registry is the
// only state sessions share; a failing or panicking session never
// takes its siblings down.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/cellforge/vista/app"
	"github.com/cellforge/vista/terminal"
	"github.com/cellforge/vista/view"
)

// SetupFunc populates a session's desktop before its loop starts
type SetupFunc func(desktop *view.Group, a *app.Application)

// Host supervises a set of sessions. Attach may be called while the
// host is running (e.g. per accepted SSH connection).
type Host struct {
	opts  app.Options
	log   *slog.Logger
	setup SetupFunc

	mu     sync.Mutex
	nextID int

	// Deliberately not errgroup.WithContext: one session's failure
	// must not cancel the others
	eg errgroup.Group
}

// NewHost creates a host; every attached session shares opts (and
// through it the command registry)
func NewHost(opts app.Options, setup SetupFunc) *Host {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Host{opts: opts, log: log, setup: setup}
}

// Attach starts a session over the backend and returns its id. The
// session runs until its backend closes, its loop errors, or ctx is
// cancelled.
func (h *Host) Attach(ctx context.Context, b terminal.Backend) (int, error) {
	a, err := app.New(b, h.opts)
	if err != nil {
		return 0, fmt.Errorf("create session: %w", err)
	}
	if h.setup != nil {
		h.setup(a.Desktop(), a)
	}

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.mu.Unlock()

	log := h.log.With("session", id)
	h.eg.Go(func() (err error) {
		defer func() {
			// A contract violation inside one session's widget tree is
			// fatal to that session only
			if rec := recover(); rec != nil {
				terminal.EmergencyReset(terminal.Writer{B: b})
				log.Error("session panicked", "panic", rec)
				err = fmt.Errorf("session %d panicked: %v", id, rec)
			}
		}()
		log.Info("session attached")
		if runErr := a.Run(ctx); runErr != nil {
			log.Error("session failed", "error", runErr)
			return fmt.Errorf("session %d: %w", id, runErr)
		}
		log.Info("session detached")
		return nil
	})
	return id, nil
}

// Wait blocks until every attached session has ended and returns the
// first session error, if any
func (h *Host) Wait() error {
	return h.eg.Wait()
}
