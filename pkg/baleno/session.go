package baleno

import (
	"context"

	sdl "github.com/thatdevsherry/suzuki-sdl"
)

// Session is one scan tool connection: the fixed address list it polls
// and the latest raw and decoded state. Not safe for concurrent use, the
// wire is strictly one transaction at a time.
type Session struct {
	client *sdl.Client
	addrs  []Address
	raw    map[Address]byte
	values map[Parameter]Value
}

// NewSession seeds every raw slot with zero and every display value with
// the text "0" so the first render has something to show before the
// first poll lands.
func NewSession(client *sdl.Client, addrs []Address) *Session {
	s := &Session{
		client: client,
		addrs:  make([]Address, len(addrs)),
		raw:    make(map[Address]byte, len(addrs)),
		values: make(map[Parameter]Value, int(numParameters)),
	}
	copy(s.addrs, addrs)
	for _, a := range s.addrs {
		s.raw[a] = 0x00
	}
	for _, p := range Parameters() {
		s.values[p] = Value{Text: "0"}
	}
	return s
}

// Poll runs one cycle: a single bulk read of the whole address list,
// positional scatter into the raw map, then a wholesale recompute of the
// display projection. A failed poll leaves the previous state in place.
func (s *Session) Poll(ctx context.Context) error {
	req := make([]byte, len(s.addrs))
	for i, a := range s.addrs {
		req[i] = byte(a)
	}
	data, err := s.client.Poll(ctx, req)
	if err != nil {
		return err
	}
	for i, a := range s.addrs {
		s.raw[a] = data[i]
	}
	values, err := DecodeAll(s.raw)
	if err != nil {
		return err
	}
	s.values = values
	return nil
}

// Addresses returns the poll order.
func (s *Session) Addresses() []Address {
	out := make([]Address, len(s.addrs))
	copy(out, s.addrs)
	return out
}

// Raw returns a copy of the latest raw bytes.
func (s *Session) Raw() map[Address]byte {
	out := make(map[Address]byte, len(s.raw))
	for a, v := range s.raw {
		out[a] = v
	}
	return out
}

// Values returns a copy of the latest display projection.
func (s *Session) Values() map[Parameter]Value {
	out := make(map[Parameter]Value, len(s.values))
	for p, v := range s.values {
		out[p] = v
	}
	return out
}
