//go:build unix

package terminal

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// pollMillis bounds the blocking read so the caller's stop channel
// is observed and the idle/draw cycle keeps a steady cadence
const pollMillis = 50

// ttyBackend drives the local controlling terminal
type ttyBackend struct {
	in      *os.File
	out     *os.File
	inFd    int
	outFd   int
	oldTerm *term.State

	resizeStopCh chan struct{}
	resizeDoneCh chan struct{}
}

// NewTTY creates a Backend for stdin/stdout
func NewTTY() Backend {
	return &ttyBackend{
		in:    os.Stdin,
		out:   os.Stdout,
		inFd:  int(os.Stdin.Fd()),
		outFd: int(os.Stdout.Fd()),
	}
}

func (b *ttyBackend) Init() error {
	if !term.IsTerminal(b.inFd) {
		return fmt.Errorf("stdin is not a terminal")
	}
	old, err := term.MakeRaw(b.inFd)
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	b.oldTerm = old
	return nil
}

func (b *ttyBackend) Fini() {
	if b.resizeStopCh != nil {
		close(b.resizeStopCh)
		<-b.resizeDoneCh
		b.resizeStopCh = nil
	}
	if b.oldTerm != nil {
		term.Restore(b.inFd, b.oldTerm)
		b.oldTerm = nil
	}
}

// Suspend restores cooked mode while keeping the session open. The
// saved state is retained so Resume and Fini still work afterwards.
func (b *ttyBackend) Suspend() error {
	if b.oldTerm == nil {
		return nil
	}
	return term.Restore(b.inFd, b.oldTerm)
}

// Resume re-enters raw mode after a Suspend
func (b *ttyBackend) Resume() error {
	if b.oldTerm == nil {
		return fmt.Errorf("resume before raw mode was entered")
	}
	_, err := term.MakeRaw(b.inFd)
	return err
}

func (b *ttyBackend) Size() (int, int) {
	ws, err := unix.IoctlGetWinsize(b.outFd, unix.TIOCGWINSZ)
	if err != nil {
		return 80, 24 // Fallback
	}
	return int(ws.Col), int(ws.Row)
}

func (b *ttyBackend) Write(p []byte) error {
	_, err := b.out.Write(p)
	return err
}

func (b *ttyBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	buf := make([]byte, 256)

	select {
	case <-stopCh:
		return nil, nil
	default:
	}

	fds := []unix.PollFd{{Fd: int32(b.inFd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, pollMillis)
	if err != nil {
		if err == unix.EINTR {
			return nil, nil
		}
		return nil, err
	}
	if n == 0 {
		return nil, nil // bounded-wait timeout, a normal outcome
	}

	rn, err := unix.Read(b.inFd, buf)
	if err != nil {
		if err == unix.EINTR || err == unix.EAGAIN {
			return nil, nil
		}
		return nil, err
	}
	if rn == 0 {
		return nil, io.EOF // terminal hung up
	}

	ret := make([]byte, rn)
	copy(ret, buf[:rn])
	return ret, nil
}

func (b *ttyBackend) SetResizeHandler(handler func(width, height int)) {
	if b.resizeStopCh != nil {
		close(b.resizeStopCh)
		<-b.resizeDoneCh
	}
	b.resizeStopCh = make(chan struct{})
	b.resizeDoneCh = make(chan struct{})

	go func() {
		defer close(b.resizeDoneCh)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGWINCH)
		defer signal.Stop(sigCh)

		for {
			select {
			case <-b.resizeStopCh:
				return
			case <-sigCh:
				w, h := b.Size()
				if w > 0 && h > 0 {
					handler(w, h)
				}
			}
		}
	}()
}

// resetTerminalMode attempts to restore cooked mode after a crash.
// Best-effort; errors ignored.
func resetTerminalMode() {
	if tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0); err == nil {
		defer tty.Close()
		fd := int(tty.Fd())
		if termios, err := unix.IoctlGetTermios(fd, unix.TCGETS); err == nil {
			termios.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
			termios.Iflag |= unix.ICRNL
			unix.IoctlSetTermios(fd, unix.TCSETS, termios)
		}
	}
}
