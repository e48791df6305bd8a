package terminal

import (
	"bytes"
	"io"
	"sync"
	"time"
)

// MemoryBackend is an in-memory test harness: scripted input chunks,
// captured output, settable size. It satisfies Backend without any
// transport, mirroring how a real session behaves under the poll loop.
type MemoryBackend struct {
	mu     sync.Mutex
	width  int
	height int
	out    bytes.Buffer
	onSize func(width, height int)
	closed bool

	inputCh chan []byte
	stopCh  chan struct{}
}

// NewMemory creates a memory backend with the given size
func NewMemory(width, height int) *MemoryBackend {
	return &MemoryBackend{
		width:   width,
		height:  height,
		inputCh: make(chan []byte, 64),
		stopCh:  make(chan struct{}),
	}
}

// QueueInput schedules a chunk for a future Read
func (b *MemoryBackend) QueueInput(p []byte) {
	chunk := make([]byte, len(p))
	copy(chunk, p)
	select {
	case b.inputCh <- chunk:
	case <-b.stopCh:
	}
}

// Output returns everything written so far
func (b *MemoryBackend) Output() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.out.Bytes()...)
}

// ResetOutput discards captured output
func (b *MemoryBackend) ResetOutput() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.out.Reset()
}

// Resize changes the reported size and notifies the handler
func (b *MemoryBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width = width
	b.height = height
	handler := b.onSize
	b.mu.Unlock()
	if handler != nil {
		handler(width, height)
	}
}

// Closed reports whether Fini was called
func (b *MemoryBackend) Closed() bool {
	select {
	case <-b.stopCh:
		return true
	default:
		return false
	}
}

func (b *MemoryBackend) Init() error {
	return nil
}

func (b *MemoryBackend) Fini() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.closed = true
		close(b.stopCh)
	}
}

func (b *MemoryBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *MemoryBackend) Write(p []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.out.Write(p)
	return nil
}

func (b *MemoryBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	select {
	case chunk := <-b.inputCh:
		return chunk, nil
	case <-b.stopCh:
		return nil, io.EOF
	case <-stopCh:
		return nil, nil
	case <-time.After(5 * time.Millisecond):
		return nil, nil // short timeout keeps tests fast
	}
}

func (b *MemoryBackend) SetResizeHandler(handler func(width, height int)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onSize = handler
}
