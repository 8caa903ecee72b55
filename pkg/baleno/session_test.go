package baleno

import (
	"bytes"
	"context"
	"testing"
	"time"

	sdl "github.com/thatdevsherry/suzuki-sdl"
)

// scriptedPort loops writes back like the real wire and appends a canned
// reply built from the requested addresses.
type scriptedPort struct {
	in     bytes.Buffer
	values map[byte]byte
}

func (p *scriptedPort) Write(frame []byte) (int, error) {
	p.in.Write(frame) // self echo
	addrs := frame[2 : len(frame)-1]
	data := make([]byte, len(addrs))
	for i, a := range addrs {
		data[i] = p.values[a]
	}
	reply, err := sdl.NewMessage(sdl.HeaderReadData, data).MarshalBinary()
	if err != nil {
		return 0, err
	}
	p.in.Write(reply)
	return len(frame), nil
}

func (p *scriptedPort) Read(b []byte) (int, error) { return p.in.Read(b) }

func (p *scriptedPort) Close() error { return nil }

func (p *scriptedPort) SetReadTimeout(time.Duration) error { return nil }

func TestSessionSeedsState(t *testing.T) {
	s := NewSession(nil, DataAddresses())
	raw := s.Raw()
	if len(raw) != len(DataAddresses()) {
		t.Fatalf("raw has %d slots, want %d", len(raw), len(DataAddresses()))
	}
	for a, v := range raw {
		if v != 0 {
			t.Errorf("slot %s seeded with 0x%02X, want 0x00", a, v)
		}
	}
	values := s.Values()
	if len(values) != int(numParameters) {
		t.Fatalf("values has %d entries, want %d", len(values), int(numParameters))
	}
	for p, v := range values {
		if v.Text != "0" {
			t.Errorf("%s seeded with %q, want \"0\"", p, v.Text)
		}
	}
}

func TestSessionPollScattersPositionally(t *testing.T) {
	port := &scriptedPort{values: map[byte]byte{
		byte(AddrRPMHigh): 30,
		byte(AddrRPMLow):  0,
		byte(AddrECT):     128,
	}}
	s := NewSession(sdl.New(port), []Address{AddrRPMHigh, AddrRPMLow, AddrECT})
	if err := s.Poll(context.Background()); err != nil {
		t.Fatal(err)
	}

	raw := s.Raw()
	if raw[AddrRPMHigh] != 30 || raw[AddrRPMLow] != 0 || raw[AddrECT] != 128 {
		t.Errorf("raw scatter = %v", raw)
	}

	speed := s.Values()[EngineSpeed]
	if speed.Text != "1506" || speed.Severity != SeverityNone {
		t.Errorf("engine speed = %+v, want 1506 RPM none", speed)
	}
	coolant := s.Values()[CoolantTemp]
	if coolant.Text != "40" || coolant.Severity != SeverityCold {
		t.Errorf("coolant = %+v, want 40 C cold", coolant)
	}
}

func TestSessionPollRecomputesWholesale(t *testing.T) {
	// parameters whose sources were not polled still recompute, reading
	// their raw slots as zero
	port := &scriptedPort{values: map[byte]byte{byte(AddrVSS): 60}}
	s := NewSession(sdl.New(port), []Address{AddrVSS})
	if err := s.Poll(context.Background()); err != nil {
		t.Fatal(err)
	}
	if v := s.Values()[VehicleSpeed]; v.Text != "60" {
		t.Errorf("vehicle speed = %+v, want 60", v)
	}
	if v := s.Values()[EngineSpeed]; v.Text != "0" || v.Severity != SeverityCritical {
		t.Errorf("engine speed = %+v, want 0 RPM critical", v)
	}
	if v := s.Values()[FuelCut]; v.Text != "ON" {
		t.Errorf("fuel cut = %+v, want ON with both inj slots at zero", v)
	}
}

func TestSessionSnapshotsAreCopies(t *testing.T) {
	s := NewSession(nil, []Address{AddrVSS})
	s.Raw()[AddrVSS] = 99
	if got := s.Raw()[AddrVSS]; got != 0 {
		t.Errorf("raw mutated through snapshot: 0x%02X", got)
	}
	s.Values()[VehicleSpeed] = Value{Text: "tampered"}
	if got := s.Values()[VehicleSpeed]; got.Text != "0" {
		t.Errorf("values mutated through snapshot: %+v", got)
	}
	s.Addresses()[0] = AddrECT
	if got := s.Addresses()[0]; got != AddrVSS {
		t.Errorf("addresses mutated through snapshot: %s", got)
	}
}
