package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(idCmd)
}

var idCmd = &cobra.Command{
	Use:   "id",
	Short: "Read the ECU identification",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := initClient(cmd)
		if err != nil {
			return err
		}
		defer client.Close()
		id, err := client.ECUID(cmd.Context())
		if err != nil {
			return err
		}
		if len(id) < 2 {
			return fmt.Errorf("short identification payload: [% X]", id)
		}
		fmt.Printf("ECU ID: %02d%02d\n", id[0], id[1])
		return nil
	},
}
