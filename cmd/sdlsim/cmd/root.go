package cmd

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	sdl "github.com/thatdevsherry/suzuki-sdl"
	"github.com/thatdevsherry/suzuki-sdl/adapter"
	"github.com/thatdevsherry/suzuki-sdl/pkg/baleno"
	"github.com/thatdevsherry/suzuki-sdl/pkg/sim"
)

var rootCmd = &cobra.Command{
	Use:          "sdlsim <port>",
	Short:        "Bench ECU simulator for the SDL diagnostic line",
	Long:         `Impersonates the engine ECU so a scan tool can be exercised without a car. Polled values are invented per address unless pinned with --fixed`,
	SilenceUsage: true,
	Args:         cobra.ExactArgs(1),
	RunE:         run,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) {
	rootCmd.ExecuteContext(ctx)
}

const (
	flagBaudrate = "baudrate"
	flagTimeout  = "timeout"
	flagEcho     = "echo"
	flagFixed    = "fixed"
)

func init() {
	log.SetFlags(log.Lshortfile | log.LstdFlags)

	f := rootCmd.Flags()
	f.IntP(flagBaudrate, "b", sdl.DefaultBaudrate, "baudrate")
	f.DurationP(flagTimeout, "t", 30*time.Second, "serial read timeout")
	f.Bool(flagEcho, false, "transmit received frames back, for links that do not loop physically")
	f.StringArray(flagFixed, nil, "pin a parameter, e.g. --fixed RPM_HIGH=30, repeatable")
}

func run(cmd *cobra.Command, args []string) error {
	baudrate, err := cmd.Flags().GetInt(flagBaudrate)
	if err != nil {
		return err
	}
	timeout, err := cmd.Flags().GetDuration(flagTimeout)
	if err != nil {
		return err
	}
	echo, err := cmd.Flags().GetBool(flagEcho)
	if err != nil {
		return err
	}
	pairs, err := cmd.Flags().GetStringArray(flagFixed)
	if err != nil {
		return err
	}
	fixed, err := parseFixed(pairs)
	if err != nil {
		return err
	}

	port, err := adapter.OpenSerial(cmd.Context(), &adapter.Config{
		Port:        args[0],
		Baudrate:    baudrate,
		ReadTimeout: timeout,
	})
	if err != nil {
		return err
	}
	defer port.Close()

	log.Printf("serving on %s at %d baud, echo=%v", args[0], baudrate, echo)
	return sim.New(port, &sim.Config{Fixed: fixed, Echo: echo}).Run(cmd.Context())
}

// parseFixed turns NAME=VALUE pairs into pinned address bytes. Values
// take any integer spelling strconv accepts, 30 and 0x1E both work.
func parseFixed(pairs []string) (map[baleno.Address]byte, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	fixed := make(map[baleno.Address]byte, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("malformed --fixed %q, want NAME=VALUE", pair)
		}
		addr, err := baleno.ParseAddress(name)
		if err != nil {
			return nil, err
		}
		v, err := strconv.ParseUint(value, 0, 8)
		if err != nil {
			return nil, fmt.Errorf("fixed value for %s: %v", name, err)
		}
		fixed[addr] = byte(v)
	}
	return fixed, nil
}
