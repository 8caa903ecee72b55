package adapter

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	sdl "github.com/thatdevsherry/suzuki-sdl"
)

func TestLoopbackSelfEcho(t *testing.T) {
	a, b := NewLoopback()
	msg := []byte{0x10, 0x03, 0xED}
	if _, err := a.Write(msg); err != nil {
		t.Fatal(err)
	}

	own := make([]byte, len(msg))
	if err := sdl.ReadFull(a, own); err != nil {
		t.Fatalf("reading own echo: %v", err)
	}
	if !bytes.Equal(own, msg) {
		t.Errorf("own echo = [% X], want [% X]", own, msg)
	}

	far := make([]byte, len(msg))
	if err := sdl.ReadFull(b, far); err != nil {
		t.Fatalf("reading far end: %v", err)
	}
	if !bytes.Equal(far, msg) {
		t.Errorf("far end = [% X], want [% X]", far, msg)
	}
}

func TestLoopbackBothDirections(t *testing.T) {
	a, b := NewLoopback()
	if _, err := b.Write([]byte{0x55}); err != nil {
		t.Fatal(err)
	}
	got := make([]byte, 1)
	if err := sdl.ReadFull(a, got); err != nil {
		t.Fatal(err)
	}
	if got[0] != 0x55 {
		t.Errorf("a received 0x%02X, want 0x55", got[0])
	}
	// b hears itself too
	if err := sdl.ReadFull(b, got); err != nil {
		t.Fatal(err)
	}
	if got[0] != 0x55 {
		t.Errorf("b echo 0x%02X, want 0x55", got[0])
	}
}

func TestLoopbackReadTimeout(t *testing.T) {
	a, _ := NewLoopback()
	if err := a.SetReadTimeout(10 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	n, err := a.Read(make([]byte, 1))
	if n != 0 || err != nil {
		t.Errorf("Read on silent bus = (%d, %v), want (0, nil)", n, err)
	}
	if err := sdl.ReadFull(a, make([]byte, 1)); !errors.Is(err, sdl.ErrReadTimeout) {
		t.Errorf("ReadFull = %v, want ErrReadTimeout", err)
	}
}

func TestLoopbackWriteToClosedPeer(t *testing.T) {
	a, b := NewLoopback()
	if err := b.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Write([]byte{0x01}); !errors.Is(err, sdl.ErrPortClosed) {
		t.Errorf("Write = %v, want ErrPortClosed", err)
	}
}

func TestLoopbackReadAfterClose(t *testing.T) {
	a, _ := NewLoopback()
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Read(make([]byte, 1)); !errors.Is(err, io.EOF) {
		t.Errorf("Read after close = %v, want io.EOF", err)
	}
}

func TestLoopbackDoubleClose(t *testing.T) {
	a, _ := NewLoopback()
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}
	if err := a.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}
}
