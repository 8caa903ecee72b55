// Package sdl implements the Suzuki SDL diagnostic protocol spoken by
// late 90s Suzuki ECUs over the serial data line on the diagnostic
// connector, 7812 baud 8N1.
//
// A frame on the wire is [header, length, data..., checksum]. The length
// byte counts itself, the data and the checksum. The checksum is the two's
// complement of the byte sum, so a complete frame sums to zero mod 256.
// The line is half duplex and self echoing: every byte a node transmits
// arrives back at its own receiver, so a transaction is write, drain own
// echo, read reply. Replies carry no addressing, the ECU answers with the
// header it was asked with and values in request order.
package sdl

import "fmt"

// DefaultBaudrate is the line speed on the stock diagnostic connector.
const DefaultBaudrate = 7812

// Header selects the kind of request and is echoed back in the reply.
type Header byte

const (
	HeaderECUID    Header = 0x10 // identification
	HeaderReadData Header = 0x13 // bulk data poll, payload lists the addresses to read
	HeaderActuate  Header = 0x15 // actuator test
)

func (h Header) String() string {
	switch h {
	case HeaderECUID:
		return "ECU_ID"
	case HeaderReadData:
		return "DATA_REQUEST"
	case HeaderActuate:
		return "ACTUATE"
	}
	return fmt.Sprintf("UNKNOWN(0x%02X)", byte(h))
}
