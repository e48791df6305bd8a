package terminal

import (
	"io"
	"sync"
	"time"
)

// StreamBackend drives a remote pseudo-terminal reached through any
// byte stream (for example one SSH channel). The transport is assumed
// to be in raw mode already; resize notifications are injected by the
// host via Resize. Closing the backend unblocks Read within one
// bounded wait and ends that session only.
type StreamBackend struct {
	out io.Writer

	mu     sync.Mutex
	width  int
	height int
	onSize func(width, height int)
	closed bool

	chunkCh chan []byte
	errCh   chan error
	stopCh  chan struct{}
}

// NewStream creates a backend over r/w with an initial size
func NewStream(r io.Reader, w io.Writer, width, height int) *StreamBackend {
	b := &StreamBackend{
		out:     w,
		width:   width,
		height:  height,
		chunkCh: make(chan []byte, 64),
		errCh:   make(chan error, 1),
		stopCh:  make(chan struct{}),
	}
	go b.pump(r)
	return b
}

// pump copies the stream into chunkCh until EOF, error, or close
func (b *StreamBackend) pump(r io.Reader) {
	buf := make([]byte, 256)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			select {
			case b.chunkCh <- chunk:
			case <-b.stopCh:
				return
			}
		}
		if err != nil {
			if err != io.EOF {
				select {
				case b.errCh <- err:
				default:
				}
			}
			close(b.chunkCh)
			return
		}
	}
}

// Init is a no-op: the remote side owns its terminal modes
func (b *StreamBackend) Init() error {
	return nil
}

// Fini closes the backend; subsequent Reads report a closed session
func (b *StreamBackend) Fini() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.closed = true
		close(b.stopCh)
	}
}

// Close is an alias for Fini for hosts holding the concrete type
func (b *StreamBackend) Close() {
	b.Fini()
}

func (b *StreamBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

// Resize records a new remote size (e.g. an SSH window-change request)
// and notifies the registered handler
func (b *StreamBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width = width
	b.height = height
	handler := b.onSize
	b.mu.Unlock()
	if handler != nil {
		handler(width, height)
	}
}

func (b *StreamBackend) Write(p []byte) error {
	_, err := b.out.Write(p)
	return err
}

func (b *StreamBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	select {
	case err := <-b.errCh:
		return nil, err
	default:
	}

	select {
	case chunk, ok := <-b.chunkCh:
		if !ok {
			select {
			case err := <-b.errCh:
				return nil, err
			default:
			}
			return nil, io.EOF // remote closed
		}
		return chunk, nil
	case <-b.stopCh:
		return nil, io.EOF
	case <-stopCh:
		return nil, nil
	case <-time.After(pollIntervalDuration):
		return nil, nil // bounded-wait timeout
	}
}

func (b *StreamBackend) SetResizeHandler(handler func(width, height int)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onSize = handler
}
