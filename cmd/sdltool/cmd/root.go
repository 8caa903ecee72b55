package cmd

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	sdl "github.com/thatdevsherry/suzuki-sdl"
	"github.com/thatdevsherry/suzuki-sdl/adapter"
)

var rootCmd = &cobra.Command{
	Use:          "sdltool",
	Short:        "Scan tool for the Suzuki SDL diagnostic line",
	Long:         `Talks to the engine ECU over the serial data line on the diagnostic connector. Developed against the Baleno G13BB but the wire protocol is shared across period Suzuki ECUs`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) {
	rootCmd.ExecuteContext(ctx)
}

const (
	flagPort     = "port"
	flagBaudrate = "baudrate"
	flagTimeout  = "timeout"
)

func init() {
	log.SetFlags(log.Lshortfile | log.LstdFlags)

	pf := rootCmd.PersistentFlags()
	pf.StringP(flagPort, "p", "/dev/ttyUSB0", "serial port, * lists the ports to pick from")
	pf.IntP(flagBaudrate, "b", sdl.DefaultBaudrate, "baudrate")
	pf.DurationP(flagTimeout, "t", 1*time.Second, "serial read timeout")
}

// initClient opens the diagnostic port described by the shared flags.
func initClient(cmd *cobra.Command) (*sdl.Client, error) {
	port, err := cmd.Flags().GetString(flagPort)
	if err != nil {
		return nil, err
	}
	baudrate, err := cmd.Flags().GetInt(flagBaudrate)
	if err != nil {
		return nil, err
	}
	timeout, err := cmd.Flags().GetDuration(flagTimeout)
	if err != nil {
		return nil, err
	}
	if port == "*" {
		port, err = selectPort()
		if err != nil {
			return nil, err
		}
	}
	p, err := adapter.OpenSerial(cmd.Context(), &adapter.Config{
		Port:        port,
		Baudrate:    baudrate,
		ReadTimeout: timeout,
	})
	if err != nil {
		return nil, err
	}
	return sdl.New(p), nil
}

func selectPort() (string, error) {
	ports, err := adapter.Ports()
	if err != nil {
		return "", err
	}
	if len(ports) == 0 {
		return "", errors.New("no serial ports found")
	}
	prompt := promptui.Select{
		Label:    "Select port",
		HideHelp: true,
		Items:    ports,
	}
	_, port, err := prompt.Run()
	return port, err
}

func yesNo() bool {
	prompt := promptui.Select{
		Label:    "[Yes/No]",
		HideHelp: true,
		Items:    []string{"Yes", "No"},
	}
	_, result, err := prompt.Run()
	if err != nil {
		log.Fatalf("Prompt failed %v\n", err)
	}
	return result == "Yes"
}
