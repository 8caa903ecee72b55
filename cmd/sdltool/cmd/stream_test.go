package cmd

import (
	"testing"

	sdl "github.com/thatdevsherry/suzuki-sdl"
	"github.com/thatdevsherry/suzuki-sdl/pkg/baleno"
)

func TestParseTable(t *testing.T) {
	testCases := []struct {
		in      string
		want    tableMode
		wantErr bool
	}{
		{"all", tableAll, false},
		{"raw", tableRaw, false},
		{"VALUES", tableValues, false},
		{"flags", tableFlags, false},
		{"bogus", 0, true},
	}
	for _, tc := range testCases {
		got, err := parseTable(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseTable(%q) succeeded, want error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseTable(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseTable(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestPollSet(t *testing.T) {
	t.Run("default skips fault codes", func(t *testing.T) {
		addrs, err := pollSet(nil, false, false, tableAll)
		if err != nil {
			t.Fatal(err)
		}
		if len(addrs) != 20 {
			t.Errorf("got %d addresses, want 20", len(addrs))
		}
		for _, a := range addrs {
			if a.FaultCode() {
				t.Errorf("default set includes fault code slot %s", a)
			}
		}
	})

	t.Run("dtc adds fault codes", func(t *testing.T) {
		addrs, err := pollSet(nil, true, false, tableAll)
		if err != nil {
			t.Fatal(err)
		}
		if len(addrs) != 26 {
			t.Errorf("got %d addresses, want 26", len(addrs))
		}
	})

	t.Run("dtc only needs the raw table", func(t *testing.T) {
		if _, err := pollSet(nil, true, true, tableAll); err == nil {
			t.Error("expected error outside the raw table")
		}
		addrs, err := pollSet(nil, true, true, tableRaw)
		if err != nil {
			t.Fatal(err)
		}
		if len(addrs) != 6 {
			t.Errorf("got %d addresses, want the 6 fault code slots", len(addrs))
		}
	})

	t.Run("dtc only without dtc changes nothing", func(t *testing.T) {
		addrs, err := pollSet(nil, false, true, tableAll)
		if err != nil {
			t.Fatal(err)
		}
		if len(addrs) != 20 {
			t.Errorf("got %d addresses, want the default 20", len(addrs))
		}
	})

	t.Run("explicit params need the raw table", func(t *testing.T) {
		if _, err := pollSet([]string{"RPM_HIGH"}, false, false, tableAll); err == nil {
			t.Error("expected error outside the raw table")
		}
		addrs, err := pollSet([]string{"RPM_HIGH", "RPM_LOW"}, false, false, tableRaw)
		if err != nil {
			t.Fatal(err)
		}
		if len(addrs) != 2 || addrs[0] != baleno.AddrRPMHigh || addrs[1] != baleno.AddrRPMLow {
			t.Errorf("addrs = %v", addrs)
		}
	})

	t.Run("unknown param name", func(t *testing.T) {
		if _, err := pollSet([]string{"NO_SUCH"}, false, false, tableRaw); err == nil {
			t.Error("expected error for unknown parameter")
		}
	})
}

func TestBuildActuation(t *testing.T) {
	testCases := []struct {
		name     string
		arg      string
		value    int
		valueSet bool
		want     sdl.ActuationCommand
		wantErr  bool
	}{
		{"isc with value", "isc", 50, true, sdl.ActuationCommand{Actuator: sdl.ActuatorISC, Value: 50}, false},
		{"isc without value", "isc", 0, false, sdl.ActuationCommand{}, true},
		{"isc value out of range", "isc", 300, true, sdl.ActuationCommand{}, true},
		{"fixed spark", "fixed-spark", 0, false, sdl.ActuationCommand{Actuator: sdl.ActuatorFixedSpark}, false},
		{"fixed spark underscore", "FIXED_SPARK", 0, false, sdl.ActuationCommand{Actuator: sdl.ActuatorFixedSpark}, false},
		{"none", "none", 0, false, sdl.ActuationCommand{Actuator: sdl.ActuatorNone}, false},
		{"unknown", "wastegate", 0, false, sdl.ActuationCommand{}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := buildActuation(tc.arg, tc.value, tc.valueSet)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("buildActuation = %+v, want %+v", got, tc.want)
			}
		})
	}
}
