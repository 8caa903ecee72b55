package baleno

import (
	"fmt"
	"math"
	"strconv"
)

// Parameter is one gauge or flag on the scan tool display.
type Parameter int

const (
	DesiredIdle Parameter = iota
	EngineSpeed
	ISCFlowDuty
	AbsoluteThrottlePosition
	InjPulseWidth
	CoolantTemp
	VehicleSpeed
	IntakeAirTemp
	MAPVoltage
	ManifoldPressure
	BarometricPressure
	TPSensorVoltage
	BatteryVoltage
	ClosedThrottlePosition
	ElectricLoad
	FuelCut
	ACSwitch
	PSPSwitch
	RadiatorFan
	IgnitionAdvance

	numParameters
)

// displayNames carries the exact labels of the factory tool, asterisk
// and capitalization included. They double as CSV column sources so
// they must not drift.
var displayNames = map[Parameter]string{
	DesiredIdle:              "Desired idle",
	EngineSpeed:              "Engine speed",
	ISCFlowDuty:              "ISC flow duty",
	AbsoluteThrottlePosition: "Absolute throttle position",
	InjPulseWidth:            "Inj. pulse width (#1 cylinder)",
	CoolantTemp:              "Coolant temperature",
	VehicleSpeed:             "Vehicle speed",
	IntakeAirTemp:            "Intake air temperature",
	MAPVoltage:               "MAP sensor voltage",
	ManifoldPressure:         "Manifold absolute pressure*",
	BarometricPressure:       "Barometric Pressure",
	TPSensorVoltage:          "TP sensor voltage",
	BatteryVoltage:           "Battery voltage",
	ClosedThrottlePosition:   "Closed throttle position",
	ElectricLoad:             "Electric load",
	FuelCut:                  "Fuel cut",
	ACSwitch:                 "A/C switch",
	PSPSwitch:                "PSP switch",
	RadiatorFan:              "Radiator fan",
	IgnitionAdvance:          "Ignition advance",
}

func (p Parameter) String() string {
	if name, ok := displayNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Parameter(%d)", int(p))
}

// Parameters returns every display parameter in table order.
func Parameters() []Parameter {
	out := make([]Parameter, numParameters)
	for i := range out {
		out[i] = Parameter(i)
	}
	return out
}

// Severity is the health band of a reading. Cold and warm are
// informational, critical needs attention now. None means the reading
// carries no health judgement.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityHealthy
	SeverityCold
	SeverityWarm
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "none"
	case SeverityHealthy:
		return "healthy"
	case SeverityCold:
		return "cold"
	case SeverityWarm:
		return "warm"
	case SeverityCritical:
		return "critical"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// Value is one decoded reading ready for display.
type Value struct {
	Text     string
	Unit     string
	Severity Severity
}

// UnhandledParameterError flags a parameter no decode rule covers, a
// programming error rather than a wire fault.
type UnhandledParameterError struct {
	Parameter Parameter
}

func (e *UnhandledParameterError) Error() string {
	return fmt.Sprintf("parameter %q has no decode rule", e.Parameter.String())
}

// roundHalfUp rounds to the nearest integer with halves away from zero,
// the rounding the factory tool uses, not banker's rounding.
func roundHalfUp(v float64) int {
	if v < 0 {
		return int(math.Ceil(v - 0.5))
	}
	return int(math.Floor(v + 0.5))
}

func ceil(v float64) int {
	return int(math.Ceil(v))
}

// decodeRules computes each gauge from the raw byte map. Addresses
// absent from the map read as zero, matching a slot that was never
// polled.
var decodeRules = map[Parameter]func(raw map[Address]byte) Value{
	DesiredIdle: func(raw map[Address]byte) Value {
		return Value{
			Text: strconv.Itoa(ceil(float64(raw[AddrTargetIdle]) * 7.84375)),
			Unit: "RPM",
		}
	},
	EngineSpeed: func(raw map[Address]byte) Value {
		rpm := ceil(float64(int(raw[AddrRPMHigh])*256+int(raw[AddrRPMLow])) / 5.1)
		v := Value{Text: strconv.Itoa(rpm), Unit: "RPM"}
		if rpm < 500 || rpm > 6500 {
			v.Severity = SeverityCritical
		}
		return v
	},
	ISCFlowDuty: func(raw map[Address]byte) Value {
		return Value{
			Text: strconv.Itoa(ceil(float64(raw[AddrISC]) / 255 * 100)),
			Unit: "%",
		}
	},
	AbsoluteThrottlePosition: func(raw map[Address]byte) Value {
		return Value{
			Text: strconv.Itoa(roundHalfUp(float64(raw[AddrTPSVoltage]) / 255 * 100)),
			Unit: "%",
		}
	},
	InjPulseWidth: func(raw map[Address]byte) Value {
		w := float64(int(raw[AddrInjPulseWidthHigh])<<8|int(raw[AddrInjPulseWidthLow])) * 0.002
		return Value{Text: fmt.Sprintf("%.2f", w), Unit: "ms"}
	},
	CoolantTemp: func(raw map[Address]byte) Value {
		temp := roundHalfUp(float64(raw[AddrECT])/255*159 - 40)
		v := Value{Text: strconv.Itoa(temp), Unit: "C"}
		switch {
		case temp < 86:
			v.Severity = SeverityCold
		case temp <= 100:
			v.Severity = SeverityHealthy
		default:
			v.Severity = SeverityCritical
		}
		return v
	},
	VehicleSpeed: func(raw map[Address]byte) Value {
		return Value{Text: strconv.Itoa(int(raw[AddrVSS])), Unit: "km/h"}
	},
	IntakeAirTemp: func(raw map[Address]byte) Value {
		temp := roundHalfUp(float64(raw[AddrIAT])/255*159 - 40)
		v := Value{Text: strconv.Itoa(temp), Unit: "C"}
		// exactly 50 falls between the warm and critical bands
		switch {
		case temp <= 12:
			v.Severity = SeverityCold
		case temp <= 32:
			v.Severity = SeverityHealthy
		case temp <= 49:
			v.Severity = SeverityWarm
		case temp > 50:
			v.Severity = SeverityCritical
		}
		return v
	},
	MAPVoltage: func(raw map[Address]byte) Value {
		return Value{
			Text: fmt.Sprintf("%.2f", float64(raw[AddrMAPSensor])/255*5),
			Unit: "V",
		}
	},
	ManifoldPressure: func(raw map[Address]byte) Value {
		return Value{
			Text: fmt.Sprintf("%.1f", float64(raw[AddrMAPSensor])/255*166.63-20),
			Unit: "kPa",
		}
	},
	BarometricPressure: func(raw map[Address]byte) Value {
		return Value{
			Text: fmt.Sprintf("%.1f", float64(raw[AddrBarometricPressure])/255*166.63-20),
			Unit: "kPa",
		}
	},
	TPSensorVoltage: func(raw map[Address]byte) Value {
		volt := float64(raw[AddrTPSVoltage]) / 255 * 5
		v := Value{Text: fmt.Sprintf("%.2f", volt), Unit: "V", Severity: SeverityCritical}
		if volt > 0.3 && volt < 4.7 {
			v.Severity = SeverityHealthy
		}
		return v
	},
	BatteryVoltage: func(raw map[Address]byte) Value {
		volt := float64(raw[AddrBatteryVoltage]) * 0.0787
		running := raw[AddrRPMHigh] > 0
		v := Value{Text: fmt.Sprintf("%.2f", volt), Unit: "V", Severity: SeverityCritical}
		if (running && volt > 13.6 && volt < 14.8) || (!running && volt > 12.4) {
			v.Severity = SeverityHealthy
		}
		return v
	},
	IgnitionAdvance: func(raw map[Address]byte) Value {
		return Value{
			Text: strconv.Itoa(roundHalfUp(float64(raw[AddrIgnitionAdvance])/255*90 - 12)),
			Unit: "BTDC",
		}
	},
}

type flagKind int

const (
	flagBit      flagKind = iota // a single bit of the source byte
	flagEquals                   // the source byte equals a magic value
	flagBothZero                 // two source bytes are both zero
)

type flagRule struct {
	kind   flagKind
	src    Address
	bit    uint
	equals byte
	low    Address
}

// flagRules is the closed set of boolean parameters. Asking for a flag
// outside it is a programming error.
var flagRules = map[Parameter]flagRule{
	PSPSwitch:              {kind: flagBit, src: AddrStatusFlags1, bit: 1},
	ACSwitch:               {kind: flagBit, src: AddrStatusFlags1, bit: 2},
	ClosedThrottlePosition: {kind: flagBit, src: AddrStatusFlags1, bit: 4},
	ElectricLoad:           {kind: flagBit, src: AddrStatusFlags1, bit: 6},
	RadiatorFan:            {kind: flagEquals, src: AddrRadiatorFan, equals: 128},
	FuelCut:                {kind: flagBothZero, src: AddrInjPulseWidthHigh, low: AddrInjPulseWidthLow},
}

// Flag reports whether the parameter decodes to an ON/OFF state.
func (p Parameter) Flag() bool {
	_, ok := flagRules[p]
	return ok
}

func decodeFlag(p Parameter, raw map[Address]byte) (Value, error) {
	rule, ok := flagRules[p]
	if !ok {
		return Value{}, &UnhandledParameterError{Parameter: p}
	}
	var on bool
	switch rule.kind {
	case flagBit:
		on = raw[rule.src]&(1<<rule.bit) != 0
	case flagEquals:
		on = raw[rule.src] == rule.equals
	case flagBothZero:
		on = raw[rule.src] == 0 && raw[rule.low] == 0
	}
	if on {
		return Value{Text: "ON", Severity: SeverityHealthy}, nil
	}
	return Value{Text: "OFF"}, nil
}

// Decode computes one display parameter from the raw bytes.
func Decode(p Parameter, raw map[Address]byte) (Value, error) {
	if rule, ok := decodeRules[p]; ok {
		return rule(raw), nil
	}
	return decodeFlag(p, raw)
}

// DecodeAll recomputes the whole display projection wholesale, every
// parameter from the same raw snapshot.
func DecodeAll(raw map[Address]byte) (map[Parameter]Value, error) {
	out := make(map[Parameter]Value, int(numParameters))
	for _, p := range Parameters() {
		v, err := Decode(p, raw)
		if err != nil {
			return nil, err
		}
		out[p] = v
	}
	return out, nil
}
