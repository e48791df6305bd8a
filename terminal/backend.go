// Package terminal abstracts a single terminal session's raw byte I/O,
// sizing, and mode control. Implementations cover the local TTY, an
// arbitrary byte stream (e.g. a remote pseudo-terminal), and an
// in-memory harness for tests. The core never knows the transport.
package terminal

import "time"

// pollIntervalDuration is the bounded wait used by backends whose Read
// has no data; it keeps the idle/draw cycle at a steady cadence
const pollIntervalDuration = 50 * time.Millisecond

// Backend is one terminal session: raw byte I/O, size, and raw-mode
// lifecycle. One Backend per session; backends are never shared.
type Backend interface {
	// Init enters raw mode (where the transport has a mode to set)
	Init() error

	// Fini restores the terminal mode. Safe to call multiple times.
	Fini()

	// Size returns current terminal dimensions
	Size() (width, height int)

	// Write writes raw bytes to the terminal output
	Write(p []byte) error

	// Read blocks until input is available, the stop channel is
	// closed, or an error occurs. A nil slice with nil error is a
	// bounded-wait timeout (a normal outcome); a closed session
	// reports io.EOF.
	Read(stopCh <-chan struct{}) ([]byte, error)

	// SetResizeHandler registers a callback for size changes
	SetResizeHandler(handler func(width, height int))
}

// Suspender is the optional Backend extension for transports whose raw
// mode can be released and re-entered without closing the session. The
// local TTY implements it; stream and memory transports have no mode
// to release.
type Suspender interface {
	// Suspend restores the transport's original mode. The session
	// stays open and the saved state survives for Resume.
	Suspend() error

	// Resume re-enters raw mode after a Suspend
	Resume() error
}

// Writer adapts a Backend to io.Writer for the compositor flush
type Writer struct {
	B Backend
}

func (w Writer) Write(p []byte) (int, error) {
	if err := w.B.Write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}
