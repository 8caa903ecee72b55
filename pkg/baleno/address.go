// Package baleno maps the data table of the Suzuki Baleno G13BB engine
// ECU (33920-65G0) onto the SDL wire: the byte addresses, the display
// parameters derived from them and the polling session tying the two
// together.
package baleno

import (
	"fmt"
	"strings"
)

// Address is one byte slot in the ECU data table, readable through a
// bulk 0x13 poll.
type Address byte

const (
	AddrFaultCodes1        Address = 0x00
	AddrFaultCodes2        Address = 0x01
	AddrFaultCodes3        Address = 0x02
	AddrFaultCodes4        Address = 0x03
	AddrRPMHigh            Address = 0x04
	AddrRPMLow             Address = 0x05
	AddrTargetIdle         Address = 0x06
	AddrVSS                Address = 0x07
	AddrECT                Address = 0x08
	AddrIAT                Address = 0x09
	AddrTPSAngle           Address = 0x0A
	AddrTPSVoltage         Address = 0x0B
	AddrInjPulseWidthHigh  Address = 0x0D
	AddrInjPulseWidthLow   Address = 0x0E
	AddrIgnitionAdvance    Address = 0x0F
	AddrMAPSensor          Address = 0x10
	AddrBarometricPressure Address = 0x11
	AddrISC                Address = 0x12
	AddrMixControlDwell    Address = 0x13
	AddrMixControlLearning Address = 0x14
	AddrMixControlMonitor  Address = 0x15
	AddrBatteryVoltage     Address = 0x16
	AddrRadiatorFan        Address = 0x19
	AddrStatusFlags1       Address = 0x1A
	AddrFaultCodes5        Address = 0x20
	AddrFaultCodes6        Address = 0x21
)

// addressOrder is the canonical poll order, the order the factory tool
// walks the table in.
var addressOrder = []Address{
	AddrFaultCodes1,
	AddrFaultCodes2,
	AddrFaultCodes3,
	AddrFaultCodes4,
	AddrRPMHigh,
	AddrRPMLow,
	AddrTargetIdle,
	AddrVSS,
	AddrECT,
	AddrIAT,
	AddrTPSAngle,
	AddrTPSVoltage,
	AddrInjPulseWidthHigh,
	AddrInjPulseWidthLow,
	AddrIgnitionAdvance,
	AddrMAPSensor,
	AddrBarometricPressure,
	AddrISC,
	AddrMixControlDwell,
	AddrMixControlLearning,
	AddrMixControlMonitor,
	AddrBatteryVoltage,
	AddrRadiatorFan,
	AddrStatusFlags1,
	AddrFaultCodes5,
	AddrFaultCodes6,
}

var addressNames = map[Address]string{
	AddrFaultCodes1:        "FAULT_CODES_1",
	AddrFaultCodes2:        "FAULT_CODES_2",
	AddrFaultCodes3:        "FAULT_CODES_3",
	AddrFaultCodes4:        "FAULT_CODES_4",
	AddrRPMHigh:            "RPM_HIGH",
	AddrRPMLow:             "RPM_LOW",
	AddrTargetIdle:         "TARGET_IDLE",
	AddrVSS:                "VSS",
	AddrECT:                "ECT",
	AddrIAT:                "IAT",
	AddrTPSAngle:           "TPS_ANGLE",
	AddrTPSVoltage:         "TPS_VOLTAGE",
	AddrInjPulseWidthHigh:  "INJ_PULSE_WIDTH_HIGH",
	AddrInjPulseWidthLow:   "INJ_PULSE_WIDTH_LOW",
	AddrIgnitionAdvance:    "IGNITION_ADVANCE",
	AddrMAPSensor:          "MAP_SENSOR",
	AddrBarometricPressure: "BAROMETRIC_PRESSURE",
	AddrISC:                "ISC",
	AddrMixControlDwell:    "MIX_CONTROL_DWELL",
	AddrMixControlLearning: "MIX_CONTROL_LEARNING",
	AddrMixControlMonitor:  "MIX_CONTROL_MONITOR",
	AddrBatteryVoltage:     "BATTERY_VOLTAGE",
	AddrRadiatorFan:        "RADIATOR_FAN",
	AddrStatusFlags1:       "STATUS_FLAGS_1",
	AddrFaultCodes5:        "FAULT_CODES_5",
	AddrFaultCodes6:        "FAULT_CODES_6",
}

func (a Address) String() string {
	if name, ok := addressNames[a]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(0x%02X)", byte(a))
}

// ParseAddress resolves a slot from its wire name as spelled on the
// command line, case insensitive.
func ParseAddress(name string) (Address, error) {
	upper := strings.ToUpper(name)
	for _, a := range addressOrder {
		if addressNames[a] == upper {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown parameter %q", name)
}

// FaultCode reports whether the slot belongs to the six diagnostic
// trouble code bytes.
func (a Address) FaultCode() bool {
	switch a {
	case AddrFaultCodes1, AddrFaultCodes2, AddrFaultCodes3,
		AddrFaultCodes4, AddrFaultCodes5, AddrFaultCodes6:
		return true
	}
	return false
}

// Addresses returns every known slot in poll order.
func Addresses() []Address {
	out := make([]Address, len(addressOrder))
	copy(out, addressOrder)
	return out
}

// DataAddresses returns the default poll set, every slot except the
// fault code bytes.
func DataAddresses() []Address {
	out := make([]Address, 0, len(addressOrder))
	for _, a := range addressOrder {
		if !a.FaultCode() {
			out = append(out, a)
		}
	}
	return out
}

// FaultCodeAddresses returns the six fault code slots.
func FaultCodeAddresses() []Address {
	out := make([]Address, 0, 6)
	for _, a := range addressOrder {
		if a.FaultCode() {
			out = append(out, a)
		}
	}
	return out
}
