// Package adapter provides sdl.Port transports: the real serial line and
// an in memory loopback bus for benches without hardware.
package adapter

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/avast/retry-go"
	sdl "github.com/thatdevsherry/suzuki-sdl"
	"go.bug.st/serial"
)

// Config describes the serial link to the diagnostic connector.
type Config struct {
	Port        string
	Baudrate    int
	ReadTimeout time.Duration
}

// OpenSerial opens the diagnostic port at 8N1 and arms the read timeout.
// Opening is retried, USB converters tend to need a moment right after
// plugging in.
func OpenSerial(ctx context.Context, cfg *Config) (sdl.Port, error) {
	mode := &serial.Mode{
		BaudRate: cfg.Baudrate,
		Parity:   serial.NoParity,
		DataBits: 8,
		StopBits: serial.OneStopBit,
	}
	var port serial.Port
	err := retry.Do(func() error {
		p, err := serial.Open(cfg.Port, mode)
		if err != nil {
			return fmt.Errorf("failed to open com port %q : %v", cfg.Port, err)
		}
		port = p
		return nil
	},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.OnRetry(func(n uint, err error) {
			log.Printf("Retry #%d: %v", n, err)
		}),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}
	if err := port.SetReadTimeout(cfg.ReadTimeout); err != nil {
		port.Close()
		return nil, err
	}
	return port, nil
}

// Ports lists the serial ports on this machine.
func Ports() ([]string, error) {
	return serial.GetPortsList()
}
