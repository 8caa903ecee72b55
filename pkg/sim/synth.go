package sim

import (
	"log"
	"math/rand"
	"time"

	"github.com/thatdevsherry/suzuki-sdl/pkg/baleno"
)

type genKind int

const (
	genRandom    genKind = iota
	genTwoState          // off or exactly 128
	genBitSubset         // random subset of the listed bits
)

type generator struct {
	kind genKind
	bits []uint
}

// generators covers the slots the bench knows how to fake. The three
// mixture control slots have no generator and fall through to the warn
// and send zero path.
var generators = map[baleno.Address]generator{
	baleno.AddrFaultCodes1:        {kind: genRandom},
	baleno.AddrFaultCodes2:        {kind: genRandom},
	baleno.AddrFaultCodes3:        {kind: genRandom},
	baleno.AddrFaultCodes4:        {kind: genRandom},
	baleno.AddrRPMHigh:            {kind: genRandom},
	baleno.AddrRPMLow:             {kind: genRandom},
	baleno.AddrTargetIdle:         {kind: genRandom},
	baleno.AddrVSS:                {kind: genRandom},
	baleno.AddrECT:                {kind: genRandom},
	baleno.AddrIAT:                {kind: genRandom},
	baleno.AddrTPSAngle:           {kind: genRandom},
	baleno.AddrTPSVoltage:         {kind: genRandom},
	baleno.AddrInjPulseWidthHigh:  {kind: genRandom},
	baleno.AddrInjPulseWidthLow:   {kind: genRandom},
	baleno.AddrIgnitionAdvance:    {kind: genRandom},
	baleno.AddrMAPSensor:          {kind: genRandom},
	baleno.AddrBarometricPressure: {kind: genRandom},
	baleno.AddrISC:                {kind: genRandom},
	baleno.AddrBatteryVoltage:     {kind: genRandom},
	baleno.AddrRadiatorFan:        {kind: genTwoState},
	baleno.AddrStatusFlags1:       {kind: genBitSubset, bits: []uint{1, 2, 4, 6}},
	baleno.AddrFaultCodes5:        {kind: genBitSubset, bits: []uint{0, 1, 2, 3, 4, 5, 6, 7}},
	baleno.AddrFaultCodes6:        {kind: genBitSubset, bits: []uint{0, 1, 2, 3, 4, 5, 6, 7}},
}

// Synthesizer invents byte values for polled addresses. An operator
// pinned value always wins over the generator.
type Synthesizer struct {
	fixed map[baleno.Address]byte
	rnd   *rand.Rand
}

func NewSynthesizer(fixed map[baleno.Address]byte) *Synthesizer {
	f := make(map[baleno.Address]byte, len(fixed))
	for a, v := range fixed {
		f[a] = v
	}
	return &Synthesizer{
		fixed: f,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Byte produces the next value for one address.
func (s *Synthesizer) Byte(addr baleno.Address) byte {
	if v, ok := s.fixed[addr]; ok {
		return v
	}
	g, ok := generators[addr]
	if !ok {
		log.Printf("WARNING: %#x param not handled, sending 0", byte(addr))
		return 0
	}
	switch g.kind {
	case genTwoState:
		if s.rnd.Intn(2) == 1 {
			return 128
		}
		return 0
	case genBitSubset:
		var b byte
		for _, bit := range g.bits {
			if s.rnd.Intn(2) == 1 {
				b |= 1 << bit
			}
		}
		return b
	default:
		return byte(s.rnd.Intn(256))
	}
}

// Payload builds one reply byte per requested address, in request order.
func (s *Synthesizer) Payload(addrs []byte) []byte {
	out := make([]byte, len(addrs))
	for i, a := range addrs {
		out[i] = s.Byte(baleno.Address(a))
	}
	return out
}
