package cli

import (
	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := api.Health(cmd.Context())
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(status)
			return nil
		},
	}
}
