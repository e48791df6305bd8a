//go:build !unix

package terminal

import "errors"

type unsupportedBackend struct{}

// NewTTY returns a stub backend on platforms without termios support
func NewTTY() Backend {
	return unsupportedBackend{}
}

func (unsupportedBackend) Init() error { return errors.New("local tty not supported on this platform") }
func (unsupportedBackend) Fini()       {}

func (unsupportedBackend) Size() (int, int) { return 80, 24 }

func (unsupportedBackend) Write(p []byte) error { return errors.New("not supported") }

func (unsupportedBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	<-stopCh
	return nil, nil
}

func (unsupportedBackend) SetResizeHandler(func(width, height int)) {}
