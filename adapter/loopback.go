package adapter

import (
	"io"
	"sync"
	"time"

	sdl "github.com/thatdevsherry/suzuki-sdl"
)

// NewLoopback returns the two ends of an in memory diagnostic line. Like
// the real single wire bus, every byte written by either end is delivered
// to both receivers, the writer included, so echo handling gets exercised
// without hardware. Reads honor the configured timeout, one second until
// changed, and report expiry serial style with an empty read.
func NewLoopback() (sdl.Port, sdl.Port) {
	a := &busEnd{wire: make(chan byte, 4096), closed: make(chan struct{}), timeout: time.Second}
	b := &busEnd{wire: make(chan byte, 4096), closed: make(chan struct{}), timeout: time.Second}
	a.peer, b.peer = b, a
	return a, b
}

type busEnd struct {
	wire   chan byte
	peer   *busEnd
	closed chan struct{}
	once   sync.Once

	mu      sync.Mutex
	timeout time.Duration
}

func (e *busEnd) SetReadTimeout(t time.Duration) error {
	e.mu.Lock()
	e.timeout = t
	e.mu.Unlock()
	return nil
}

func (e *busEnd) readTimeout() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.timeout
}

// Read blocks for the first byte up to the read timeout, then drains
// whatever else is already buffered, the way a serial port read behaves.
func (e *busEnd) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	timer := time.NewTimer(e.readTimeout())
	defer timer.Stop()
	select {
	case <-e.closed:
		return 0, io.EOF
	case <-timer.C:
		return 0, nil
	case b := <-e.wire:
		p[0] = b
		n := 1
		for n < len(p) {
			select {
			case b := <-e.wire:
				p[n] = b
				n++
			default:
				return n, nil
			}
		}
		return n, nil
	}
}

func (e *busEnd) Write(p []byte) (int, error) {
	for i, b := range p {
		select {
		case <-e.closed:
			return i, sdl.ErrPortClosed
		case <-e.peer.closed:
			return i, sdl.ErrPortClosed
		default:
		}
		select {
		case e.wire <- b:
		case <-e.closed:
			return i, sdl.ErrPortClosed
		}
		select {
		case e.peer.wire <- b:
		case <-e.peer.closed:
			return i, sdl.ErrPortClosed
		}
	}
	return len(p), nil
}

func (e *busEnd) Close() error {
	e.once.Do(func() { close(e.closed) })
	return nil
}
