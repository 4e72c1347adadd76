package cli

import (
	"github.com/spf13/cobra"
)

func newTrackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "track <page>",
		Short: "Record a page visit for analytics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := api.TrackPageView(cmd.Context(), args[0]); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Visit recorded")
			return nil
		},
	}
}
