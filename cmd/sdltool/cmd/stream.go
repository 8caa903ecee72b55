package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/thatdevsherry/suzuki-sdl/pkg/baleno"
	"github.com/thatdevsherry/suzuki-sdl/pkg/logfile"
	"github.com/thatdevsherry/suzuki-sdl/pkg/ui"
)

const (
	flagParam        = "param"
	flagTable        = "table"
	flagActuate      = "actuate"
	flagActuateValue = "actuate-value"
	flagLogFile      = "log-file"
	flagDTC          = "dtc"
	flagDTCOnly      = "dtc-only"
)

const refreshRate = 100 * time.Millisecond

func init() {
	rootCmd.AddCommand(streamCmd)
	f := streamCmd.Flags()
	f.StringArray(flagParam, nil, "poll only these parameters, raw table only, repeatable")
	f.String(flagTable, "all", "table to display: raw, values, flags or all")
	f.String(flagActuate, "", "actuator test to run before streaming: isc, fixed-spark or none")
	f.Int(flagActuateValue, 0, "duty byte for the isc actuator test")
	f.String(flagLogFile, "", "CSV log path, default sdl_log_<timestamp>.csv")
	f.Bool(flagDTC, false, "include the fault code slots in the poll")
	f.Bool(flagDTCOnly, false, "with --dtc, poll only the fault code slots, raw table only")
}

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Stream live data with in place tables and a CSV session log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		tableFlag, err := cmd.Flags().GetString(flagTable)
		if err != nil {
			return err
		}
		mode, err := parseTable(tableFlag)
		if err != nil {
			return err
		}
		addrs, err := selectAddresses(cmd, mode)
		if err != nil {
			return err
		}

		client, err := initClient(cmd)
		if err != nil {
			return err
		}
		defer client.Close()

		// the actuation goes out before the loop, the ECU holds the
		// test while data streams
		if name, _ := cmd.Flags().GetString(flagActuate); name != "" {
			value, err := cmd.Flags().GetInt(flagActuateValue)
			if err != nil {
				return err
			}
			acmd, err := buildActuation(name, value, cmd.Flags().Changed(flagActuateValue))
			if err != nil {
				return err
			}
			if err := client.Actuate(ctx, acmd); err != nil {
				return err
			}
			log.Printf("%s actuation acknowledged", acmd.Actuator)
		}

		id, err := client.ECUID(ctx)
		if err != nil {
			return err
		}
		if len(id) < 2 {
			return fmt.Errorf("short identification payload: [% X]", id)
		}
		fmt.Printf("ECU ID: %02d%02d\n", id[0], id[1])

		path, err := cmd.Flags().GetString(flagLogFile)
		if err != nil {
			return err
		}
		if path == "" {
			path = logfile.Filename(time.Now())
		}
		logw, err := logfile.New(path)
		if err != nil {
			return err
		}
		defer logw.Close()

		session := baleno.NewSession(client, addrs)
		live := ui.NewLive()
		tick := time.NewTicker(refreshRate)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-tick.C:
				if err := session.Poll(ctx); err != nil {
					return err
				}
				live.Update(render(mode, session))
				if err := logw.WriteCycle(time.Now(), session.Values()); err != nil {
					return err
				}
			}
		}
	},
}

type tableMode int

const (
	tableAll tableMode = iota
	tableRaw
	tableValues
	tableFlags
)

func parseTable(s string) (tableMode, error) {
	switch strings.ToLower(s) {
	case "all":
		return tableAll, nil
	case "raw":
		return tableRaw, nil
	case "values":
		return tableValues, nil
	case "flags":
		return tableFlags, nil
	}
	return 0, fmt.Errorf("unknown table %q, want raw, values, flags or all", s)
}

func selectAddresses(cmd *cobra.Command, mode tableMode) ([]baleno.Address, error) {
	params, err := cmd.Flags().GetStringArray(flagParam)
	if err != nil {
		return nil, err
	}
	dtc, err := cmd.Flags().GetBool(flagDTC)
	if err != nil {
		return nil, err
	}
	dtcOnly, err := cmd.Flags().GetBool(flagDTCOnly)
	if err != nil {
		return nil, err
	}
	return pollSet(params, dtc, dtcOnly, mode)
}

// pollSet translates the flag values into the poll list. Explicit
// parameters and fault codes carry no decode rules worth showing, so
// both demand the raw table.
func pollSet(params []string, dtc, dtcOnly bool, mode tableMode) ([]baleno.Address, error) {
	if len(params) > 0 {
		if mode != tableRaw {
			return nil, errors.New("explicit parameters are only available on the raw table")
		}
		addrs := make([]baleno.Address, 0, len(params))
		for _, name := range params {
			a, err := baleno.ParseAddress(name)
			if err != nil {
				return nil, err
			}
			addrs = append(addrs, a)
		}
		return addrs, nil
	}
	if dtc && dtcOnly {
		if mode != tableRaw {
			return nil, errors.New("fault codes only stream on the raw table")
		}
		return baleno.FaultCodeAddresses(), nil
	}
	if dtc {
		return baleno.Addresses(), nil
	}
	return baleno.DataAddresses(), nil
}

func render(mode tableMode, s *baleno.Session) string {
	switch mode {
	case tableRaw:
		return ui.RawTable(s.Addresses(), s.Raw())
	case tableValues:
		return ui.ValuesTable(s.Values())
	case tableFlags:
		return ui.FlagsTable(s.Values())
	}
	return ui.SideBySide(
		ui.RawTable(s.Addresses(), s.Raw()),
		ui.ValuesTable(s.Values()),
		ui.FlagsTable(s.Values()),
	)
}
