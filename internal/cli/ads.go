package cli

import (
	"github.com/spf13/cobra"

	"github.com/ctfarena/ctfarena/internal/model"
)

func newAdsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ads",
		Short: "Ad listing and click tracking",
	}

	cmd.AddCommand(newAdsListCmd())
	cmd.AddCommand(newAdsClickCmd())

	return cmd
}

func newAdsListCmd() *cobra.Command {
	var position string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active ads",
		RunE: func(cmd *cobra.Command, args []string) error {
			ads, err := api.Ads(cmd.Context(), position)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(ads)
			return nil
		},
	}

	cmd.Flags().StringVar(&position, "position", "", "Filter by position (top, bottom, left, right)")

	return cmd
}

func newAdsClickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "click <id>",
		Short: "Record a click on an ad",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := api.ClickAd(cmd.Context(), model.AdID(args[0])); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Click recorded")
			return nil
		},
	}
}
