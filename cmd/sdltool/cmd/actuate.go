package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	sdl "github.com/thatdevsherry/suzuki-sdl"
)

const flagValue = "value"

func init() {
	rootCmd.AddCommand(actuateCmd)
	actuateCmd.Flags().Int(flagValue, 0, "duty byte for the isc test")
}

var actuateCmd = &cobra.Command{
	Use:   "actuate <isc|fixed-spark|none>",
	Short: "Run an actuator test",
	Long:  `Commands the ECU to drive an output: isc holds the idle speed control valve at the given duty, fixed-spark locks ignition timing, none releases a running test`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := cmd.Flags().GetInt(flagValue)
		if err != nil {
			return err
		}
		acmd, err := buildActuation(args[0], value, cmd.Flags().Changed(flagValue))
		if err != nil {
			return err
		}
		log.Printf("about to run the %s actuator test on a live ECU", acmd.Actuator)
		if !yesNo() {
			return nil
		}
		client, err := initClient(cmd)
		if err != nil {
			return err
		}
		defer client.Close()
		if err := client.Actuate(cmd.Context(), acmd); err != nil {
			return err
		}
		log.Printf("%s actuation acknowledged", acmd.Actuator)
		return nil
	},
}

// buildActuation resolves the actuator spelling and validates its value.
// The isc test drives a valve, so the duty byte must be deliberate
// rather than defaulted.
func buildActuation(name string, value int, valueSet bool) (sdl.ActuationCommand, error) {
	var actuator sdl.Actuator
	switch strings.ToLower(name) {
	case "isc":
		actuator = sdl.ActuatorISC
	case "fixed-spark", "fixed_spark":
		actuator = sdl.ActuatorFixedSpark
	case "none":
		actuator = sdl.ActuatorNone
	default:
		return sdl.ActuationCommand{}, fmt.Errorf("unknown actuator %q, want isc, fixed-spark or none", name)
	}
	if actuator == sdl.ActuatorISC {
		if !valueSet {
			return sdl.ActuationCommand{}, errors.New("the isc test needs an explicit value")
		}
		if value < 0 || value > 255 {
			return sdl.ActuationCommand{}, fmt.Errorf("value %d out of byte range", value)
		}
	}
	return sdl.ActuationCommand{Actuator: actuator, Value: byte(value)}, nil
}
