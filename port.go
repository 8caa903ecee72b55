package sdl

import (
	"fmt"
	"io"
	"time"
)

// Port is the byte link to the other node. Implementations follow
// go.bug.st/serial semantics: a Read returning (0, nil) means the
// configured read timeout expired with nothing received.
type Port interface {
	io.ReadWriteCloser
	SetReadTimeout(t time.Duration) error
}

// ReadFull reads exactly len(buf) bytes from r. At 7812 baud frames
// trickle in a byte or two per read, so short reads are retried until
// the buffer fills. An empty read aborts with ErrReadTimeout.
func ReadFull(r io.Reader, buf []byte) error {
	pos := 0
	for pos < len(buf) {
		n, err := r.Read(buf[pos:])
		if err != nil {
			return fmt.Errorf("read failed: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w after %d of %d bytes", ErrReadTimeout, pos, len(buf))
		}
		pos += n
	}
	return nil
}
