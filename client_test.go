package sdl

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"
)

// wirePort fakes the looped diagnostic line: whatever the client writes
// comes back first, followed by the scripted reply.
type wirePort struct {
	in     bytes.Buffer
	wrote  bytes.Buffer
	reply  []byte
	closed bool
}

func (w *wirePort) Write(p []byte) (int, error) {
	w.wrote.Write(p)
	w.in.Write(p) // self echo
	w.in.Write(w.reply)
	w.reply = nil
	return len(p), nil
}

func (w *wirePort) Read(p []byte) (int, error) { return w.in.Read(p) }

func (w *wirePort) Close() error { w.closed = true; return nil }

func (w *wirePort) SetReadTimeout(time.Duration) error { return nil }

func reply(t *testing.T, h Header, data []byte) []byte {
	t.Helper()
	frame, err := NewMessage(h, data).MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	return frame
}

func TestClientECUID(t *testing.T) {
	port := &wirePort{reply: reply(t, HeaderECUID, []byte{0x19, 0x43})}
	c := New(port)
	id, err := c.ECUID(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(id, []byte{0x19, 0x43}) {
		t.Errorf("ECUID = [% X], want [19 43]", id)
	}
	if !bytes.Equal(port.wrote.Bytes(), []byte{0x10, 0x03, 0xED}) {
		t.Errorf("request = [% X], want [10 03 ED]", port.wrote.Bytes())
	}
}

func TestClientPoll(t *testing.T) {
	port := &wirePort{reply: reply(t, HeaderReadData, []byte{30, 0})}
	data, err := New(port).Poll(context.Background(), []byte{0x04, 0x05})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, []byte{30, 0}) {
		t.Errorf("Poll = [% X], want [1E 00]", data)
	}
	if !bytes.Equal(port.wrote.Bytes(), []byte{0x13, 0x05, 0x04, 0x05, 0xDF}) {
		t.Errorf("request = [% X], want [13 05 04 05 DF]", port.wrote.Bytes())
	}
}

func TestClientPollWidthMismatch(t *testing.T) {
	port := &wirePort{reply: reply(t, HeaderReadData, []byte{30})}
	if _, err := New(port).Poll(context.Background(), []byte{0x04, 0x05}); err == nil {
		t.Fatal("expected error for short poll reply")
	}
}

func TestClientHeaderEchoRule(t *testing.T) {
	// the ECU must lead the reply with the request's header
	port := &wirePort{reply: reply(t, HeaderECUID, []byte{0x19, 0x43})}
	_, err := New(port).Poll(context.Background(), []byte{0x04})
	var hm *HeaderMismatchError
	if !errors.As(err, &hm) {
		t.Fatalf("got %v, want HeaderMismatchError", err)
	}
	if hm.Want != HeaderReadData || hm.Got != HeaderECUID {
		t.Errorf("HeaderMismatchError = %+v", hm)
	}
}

func TestClientActuate(t *testing.T) {
	port := &wirePort{reply: reply(t, HeaderActuate, nil)}
	err := New(port).Actuate(context.Background(), ActuationCommand{Actuator: ActuatorISC, Value: 50})
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x15, 0x0B, 0xC0, 0x32, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xEE}
	if !bytes.Equal(port.wrote.Bytes(), want) {
		t.Errorf("request = [% X], want [% X]", port.wrote.Bytes(), want)
	}
}

func TestClientActuateUnexpectedResponse(t *testing.T) {
	port := &wirePort{reply: reply(t, HeaderActuate, []byte{0x01})}
	err := New(port).Actuate(context.Background(), ActuationCommand{Actuator: ActuatorISC, Value: 50})
	var ur *UnexpectedResponseError
	if !errors.As(err, &ur) {
		t.Fatalf("got %v, want UnexpectedResponseError", err)
	}
	if !bytes.Equal(ur.Data, []byte{0x01}) {
		t.Errorf("Data = [% X], want [01]", ur.Data)
	}
}

func TestActuationPayload(t *testing.T) {
	testCases := []struct {
		name string
		cmd  ActuationCommand
		want []byte
	}{
		{"isc carries the duty byte", ActuationCommand{ActuatorISC, 50}, []byte{0xC0, 0x32, 0, 0, 0, 0, 0, 0}},
		{"fixed spark ignores the value", ActuationCommand{ActuatorFixedSpark, 99}, []byte{0x10, 0, 0, 0, 0, 0, 0, 0}},
		{"none is all padding", ActuationCommand{ActuatorNone, 0}, make([]byte, 8)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cmd.payload(); !bytes.Equal(got, tc.want) {
				t.Errorf("payload = [% X], want [% X]", got, tc.want)
			}
		})
	}
}

func TestClientContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	port := &wirePort{reply: reply(t, HeaderECUID, []byte{0x19, 0x43})}
	if _, err := New(port).ECUID(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestClientClose(t *testing.T) {
	port := &wirePort{}
	c := New(port)
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if !port.closed {
		t.Error("Close did not reach the port")
	}
}
