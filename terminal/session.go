package terminal

import (
	"io"
	"os"
)

// Visual-state control sequences written around a session's lifetime.
// Raw mode itself is handled per-backend; these are pure output.
var (
	seqAltScreenEnter = []byte("\x1b[?1049h")
	seqAltScreenExit  = []byte("\x1b[?1049l")
	seqCursorHide     = []byte("\x1b[?25l")
	seqCursorShow     = []byte("\x1b[?25h")
	// DECAWM off keeps the bottom-right corner writable without scroll
	seqAutoWrapOn  = []byte("\x1b[?7h")
	seqAutoWrapOff = []byte("\x1b[?7l")
	seqSGR0        = []byte("\x1b[0m")
	seqClear       = []byte("\x1b[2J\x1b[H")
	seqRIS         = []byte("\x1bc")

	seqMouseSGROn   = []byte("\x1b[?1006h")
	seqMouseSGROff  = []byte("\x1b[?1006l")
	seqMouseAllOn   = []byte("\x1b[?1003h")
	seqMouseAllOff  = []byte("\x1b[?1003l")
	seqMouseClickOn = []byte("\x1b[?1000h")
	seqMouseOff     = []byte("\x1b[?1000l")
)

// Setup writes the session-entry sequences: alternate screen, hidden
// cursor, wrap off, cleared screen, and (optionally) SGR mouse
// reporting for click/drag/motion.
func Setup(b Backend, mouse bool) error {
	seqs := [][]byte{seqAltScreenEnter, seqCursorHide, seqAutoWrapOff, seqSGR0, seqClear}
	if mouse {
		seqs = append(seqs, seqMouseSGROn, seqMouseClickOn, seqMouseAllOn)
	}
	for _, s := range seqs {
		if err := b.Write(s); err != nil {
			return err
		}
	}
	return nil
}

// Teardown reverses Setup. Errors are ignored; the session is ending.
func Teardown(b Backend, mouse bool) {
	if mouse {
		b.Write(seqMouseAllOff)
		b.Write(seqMouseOff)
		b.Write(seqMouseSGROff)
	}
	b.Write(seqCursorShow)
	b.Write(seqAltScreenExit)
	b.Write(seqAutoWrapOn)
	b.Write(seqSGR0)
}

// EmergencyReset restores a sane terminal from panic recovery when the
// normal teardown path cannot run
func EmergencyReset(w io.Writer) {
	w.Write(seqMouseAllOff)
	w.Write(seqMouseOff)
	w.Write(seqMouseSGROff)
	w.Write(seqCursorShow)
	w.Write(seqAltScreenExit)
	w.Write(seqSGR0)
	w.Write(seqAutoWrapOn)
	w.Write(seqRIS)
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}
	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
