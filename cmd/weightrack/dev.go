//go:build !release

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/garrettladley/weightrack/internal/service/tracking"
)

func addDevCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(resetCmd())
}

func resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Overwrite the stored tracker with the default state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withTracker(cmd.Context(), func(svc tracking.Service) error {
				snap, err := svc.Reset(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(stdout, "Reset to %d empty weeks\n", len(snap.State.Weeks))
				return nil
			})
		},
	}
}
