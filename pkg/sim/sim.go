// Package sim is the bench side of the SDL link. It impersonates the
// engine ECU so a scan tool can be exercised on a desk: identification,
// bulk polls answered with synthesized or pinned values and actuator
// acknowledgements.
package sim

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fatih/color"
	sdl "github.com/thatdevsherry/suzuki-sdl"
	"github.com/thatdevsherry/suzuki-sdl/pkg/baleno"
)

// ecuID is the canned identification payload, renders as 2567.
var ecuID = []byte{0x19, 0x43}

var (
	green  = color.New(color.FgGreen).SprintfFunc()
	yellow = color.New(color.FgYellow).SprintfFunc()
)

// Config tunes one bench ECU.
type Config struct {
	// Fixed pins addresses to operator chosen values instead of the
	// generators.
	Fixed map[baleno.Address]byte
	// Echo makes the bench transmit every received frame back before its
	// response, for links that do not loop transmissions physically,
	// like a pty pair. On a looped wire leave it off and the bench
	// drains its own transmissions instead.
	Echo bool
}

// ECU serves SDL requests until its context is done.
type ECU struct {
	port  sdl.Port
	synth *Synthesizer
	echo  bool
}

func New(port sdl.Port, cfg *Config) *ECU {
	return &ECU{
		port:  port,
		synth: NewSynthesizer(cfg.Fixed),
		echo:  cfg.Echo,
	}
}

// Run is the serve loop. A silent line is normal and keeps polling. A
// corrupt poll frame is logged and its cycle skipped so a flaky link
// cannot kill the bench mid stream. A corrupt identification or
// actuation frame is fatal, those arrive once per session on a healthy
// link.
func (e *ECU) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		time.Sleep(50 * time.Millisecond)

		var head [1]byte
		if err := sdl.ReadFull(e.port, head[:]); err != nil {
			if errors.Is(err, sdl.ErrReadTimeout) {
				continue
			}
			return err
		}
		var length [1]byte
		if err := sdl.ReadFull(e.port, length[:]); err != nil {
			return fmt.Errorf("reading length: %w", err)
		}

		switch header := sdl.Header(head[0]); header {
		case sdl.HeaderECUID:
			request, err := e.readRequest(header, length[0])
			if err != nil {
				return err
			}
			log.Println(green("received: [% X]", request))
			if err := e.respond(request, sdl.NewMessage(header, ecuID)); err != nil {
				return err
			}
		case sdl.HeaderActuate:
			request, err := e.readRequest(header, length[0])
			if err != nil {
				return err
			}
			log.Println(green("received: [% X]", request))
			if err := e.respond(request, sdl.NewMessage(header, nil)); err != nil {
				return err
			}
		case sdl.HeaderReadData:
			request, err := e.readRequest(header, length[0])
			if err != nil {
				if corrupt(err) {
					log.Printf("WARNING: dropping corrupt poll frame: %v", err)
					time.Sleep(time.Second)
					continue
				}
				return err
			}
			log.Println(green("received: [% X]", request))
			addrs := request[2 : len(request)-1]
			if err := e.respond(request, sdl.NewMessage(header, e.synth.Payload(addrs))); err != nil {
				return err
			}
		default:
			log.Printf("Unknown header: %#x", head[0])
			if skip := int(length[0]) - 2; skip > 0 {
				drained := make([]byte, skip)
				if err := sdl.ReadFull(e.port, drained); err != nil {
					return err
				}
				log.Printf("skipped: [% X]", drained)
			}
		}
	}
}

// corrupt reports whether the frame itself was bad, as opposed to the
// link failing mid read.
func corrupt(err error) bool {
	var sum *sdl.ChecksumMismatchError
	var length *sdl.InvalidLengthError
	return errors.As(err, &sum) || errors.As(err, &length)
}

// readRequest completes a frame whose header and length are already
// consumed and validates its checksum. The returned slice is the whole
// frame including both.
func (e *ECU) readRequest(header sdl.Header, length byte) ([]byte, error) {
	if length < 3 {
		return nil, &sdl.InvalidLengthError{Length: length}
	}
	frame := make([]byte, int(length))
	frame[0], frame[1] = byte(header), length
	if err := sdl.ReadFull(e.port, frame[2:]); err != nil {
		return nil, err
	}
	if sdl.Checksum(frame[:len(frame)-1]) != frame[len(frame)-1] {
		return nil, &sdl.ChecksumMismatchError{Frame: frame}
	}
	return frame, nil
}

// respond transmits the reply honoring the echo discipline of the link.
func (e *ECU) respond(request []byte, reply *sdl.Message) error {
	out, err := reply.MarshalBinary()
	if err != nil {
		return err
	}
	if e.echo {
		if _, err := e.port.Write(request); err != nil {
			return fmt.Errorf("echoing request: %w", err)
		}
	}
	n, err := e.port.Write(out)
	if err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	if !e.echo {
		if err := sdl.ReadFull(e.port, make([]byte, n)); err != nil {
			return fmt.Errorf("draining own echo: %w", err)
		}
	}
	log.Println(yellow("responded: [% X]", out))
	return nil
}
