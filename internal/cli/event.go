package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

var eventFile string

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Process a single chat event envelope from a file or stdin",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			raw []byte
			err error
		)
		if eventFile != "" {
			raw, err = os.ReadFile(eventFile)
		} else {
			raw, err = io.ReadAll(cmd.InOrStdin())
		}
		if err != nil {
			return err
		}

		return getApp().HandleEvent(cmd.Context(), raw)
	},
}

func init() {
	eventCmd.Flags().StringVar(&eventFile, "file", "", "Path to the event envelope JSON (defaults to stdin)")
}
