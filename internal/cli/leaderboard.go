package cli

import (
	"github.com/spf13/cobra"

	"github.com/ctfarena/ctfarena/internal/client"
)

func newLeaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "leaderboard",
		Aliases: []string{"lb"},
		Short:   "Leaderboard and progress queries",
	}

	cmd.AddCommand(newLeaderboardTopCmd())
	cmd.AddCommand(newLeaderboardProgressCmd())

	return cmd
}

func newLeaderboardTopCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the ranked leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := api.Leaderboard(cmd.Context(), limit)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(board)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", client.DefaultLeaderboardLimit, "Maximum entries to show")

	return cmd
}

func newLeaderboardProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show your completion progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			progress, err := api.Progress(cmd.Context())
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(progress)
			return nil
		},
	}
}
