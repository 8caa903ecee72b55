package sdl

import (
	"context"
	"fmt"
)

// Actuator selects the output driven during an actuator test.
type Actuator byte

const (
	ActuatorNone       Actuator = 0x00
	ActuatorFixedSpark Actuator = 0x10
	ActuatorISC        Actuator = 0xC0 // idle speed control, takes a duty byte
)

func (a Actuator) String() string {
	switch a {
	case ActuatorNone:
		return "NONE"
	case ActuatorFixedSpark:
		return "FIXED_SPARK"
	case ActuatorISC:
		return "ISC"
	}
	return fmt.Sprintf("UNKNOWN(0x%02X)", byte(a))
}

// ActuationCommand is one actuator test request. Value is the duty byte
// for the ISC test and ignored by the other selectors.
type ActuationCommand struct {
	Actuator Actuator
	Value    byte
}

// payload is always eight bytes: selector, value, six bytes of padding.
func (ac ActuationCommand) payload() []byte {
	p := make([]byte, 8)
	p[0] = byte(ac.Actuator)
	if ac.Actuator == ActuatorISC {
		p[1] = ac.Value
	}
	return p
}

// Actuate commands one actuator test. A correct acknowledgement carries
// no data, anything else comes back with the raw bytes attached.
func (c *Client) Actuate(ctx context.Context, cmd ActuationCommand) error {
	data, err := c.transact(ctx, NewMessage(HeaderActuate, cmd.payload()))
	if err != nil {
		return err
	}
	if len(data) != 0 {
		return &UnexpectedResponseError{Data: data}
	}
	return nil
}
