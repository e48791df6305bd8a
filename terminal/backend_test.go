package terminal

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"
)

func TestMemoryBackendRoundTrip(t *testing.T) {
	b := NewMemory(80, 24)
	if err := b.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer b.Fini()

	b.QueueInput([]byte("abc"))
	stop := make(chan struct{})
	chunk, err := b.Read(stop)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(chunk) != "abc" {
		t.Errorf("Read = %q, want abc", chunk)
	}

	// No input: bounded-wait timeout, a normal outcome
	chunk, err = b.Read(stop)
	if err != nil || chunk != nil {
		t.Errorf("idle Read = %q, %v; want nil, nil", chunk, err)
	}

	if err := b.Write([]byte("out")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if string(b.Output()) != "out" {
		t.Errorf("Output = %q", b.Output())
	}
	b.ResetOutput()
	if len(b.Output()) != 0 {
		t.Errorf("ResetOutput left data")
	}
}

func TestMemoryBackendCloseReportsEOF(t *testing.T) {
	b := NewMemory(80, 24)
	b.Fini()
	if !b.Closed() {
		t.Fatalf("Closed() false after Fini")
	}
	_, err := b.Read(make(chan struct{}))
	if !errors.Is(err, io.EOF) {
		t.Errorf("Read after close = %v, want io.EOF", err)
	}
	b.Fini() // safe to call twice
}

func TestMemoryBackendResizeNotifies(t *testing.T) {
	b := NewMemory(80, 24)
	var gotW, gotH int
	b.SetResizeHandler(func(w, h int) { gotW, gotH = w, h })
	b.Resize(120, 40)
	if gotW != 120 || gotH != 40 {
		t.Errorf("handler got %dx%d", gotW, gotH)
	}
	if w, h := b.Size(); w != 120 || h != 40 {
		t.Errorf("Size = %dx%d", w, h)
	}
}

func TestStreamBackendDeliversChunksAndEOF(t *testing.T) {
	var out bytes.Buffer
	b := NewStream(bytes.NewReader([]byte("hello")), &out, 80, 24)
	defer b.Fini()

	stop := make(chan struct{})
	deadline := time.Now().Add(2 * time.Second)
	var got []byte
	for len(got) < 5 {
		if time.Now().After(deadline) {
			t.Fatalf("chunks not delivered: %q", got)
		}
		chunk, err := b.Read(stop)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			t.Fatalf("Read: %v", err)
		}
		got = append(got, chunk...)
	}
	if string(got) != "hello" {
		t.Errorf("got %q", got)
	}

	// Source exhausted: EOF within one bounded wait
	_, err := b.Read(stop)
	if !errors.Is(err, io.EOF) {
		t.Errorf("drained Read = %v, want io.EOF", err)
	}

	if err := b.Write([]byte("x")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if out.String() != "x" {
		t.Errorf("output = %q", out.String())
	}
}

func TestStreamBackendCallerStopUnblocksRead(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	b := NewStream(pr, io.Discard, 80, 24)
	defer b.Fini()

	stop := make(chan struct{})
	close(stop)
	chunk, err := b.Read(stop)
	if chunk != nil || err != nil {
		t.Errorf("stopped Read = %q, %v; want nil, nil", chunk, err)
	}
}

func TestWriterAdapter(t *testing.T) {
	b := NewMemory(10, 4)
	w := Writer{B: b}
	n, err := w.Write([]byte("xyz"))
	if err != nil || n != 3 {
		t.Fatalf("Write = %d, %v", n, err)
	}
	if string(b.Output()) != "xyz" {
		t.Errorf("output = %q", b.Output())
	}
}
