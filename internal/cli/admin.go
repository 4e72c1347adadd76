package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ctfarena/ctfarena/internal/model"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin-only management commands",
	}

	cmd.AddCommand(newAdminUsersCmd())
	cmd.AddCommand(newAdminChallengesCmd())
	cmd.AddCommand(newAdminAdsCmd())

	return cmd
}

func newAdminUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List all users",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := api.AdminUsers(cmd.Context())
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(users)
			return nil
		},
	}
}

func newAdminChallengesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "challenges",
		Short: "Manage challenges",
	}

	cmd.AddCommand(newAdminChallengesListCmd())
	cmd.AddCommand(newAdminChallengesShowCmd())
	cmd.AddCommand(newAdminChallengesCreateCmd())
	cmd.AddCommand(newAdminChallengesUpdateCmd())
	cmd.AddCommand(newAdminChallengesDeleteCmd())

	return cmd
}

func newAdminChallengesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all challenges including inactive ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			challenges, err := api.AdminChallenges(cmd.Context())
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(challenges)
			return nil
		},
	}
}

func newAdminChallengesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one challenge including its backend config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			challenge, err := api.AdminChallenge(cmd.Context(), model.ChallengeID(args[0]))
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(challenge)
			return nil
		},
	}
}

func newAdminChallengesCreateCmd() *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a challenge from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(filePath)
			if err != nil {
				return fmt.Errorf("failed to read challenge file: %w", err)
			}

			var challenge model.Challenge
			if err := json.Unmarshal(data, &challenge); err != nil {
				return fmt.Errorf("failed to parse challenge file: %w", err)
			}

			created, err := api.CreateAdminChallenge(cmd.Context(), &challenge)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(created)
			return nil
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "", "Path to challenge JSON (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newAdminChallengesUpdateCmd() *cobra.Command {
	var patchJSON string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Apply a partial update to a challenge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := map[string]any{}
			if err := json.Unmarshal([]byte(patchJSON), &patch); err != nil {
				return fmt.Errorf("failed to parse --patch: %w", err)
			}

			updated, err := api.UpdateAdminChallenge(cmd.Context(), model.ChallengeID(args[0]), patch)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(updated)
			return nil
		},
	}

	cmd.Flags().StringVar(&patchJSON, "patch", "", `JSON object of fields to change, e.g. '{"points": 200}' (required)`)
	_ = cmd.MarkFlagRequired("patch")

	return cmd
}

func newAdminChallengesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a challenge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := api.DeleteAdminChallenge(cmd.Context(), model.ChallengeID(args[0])); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Challenge deleted")
			return nil
		},
	}
}

func newAdminAdsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ads",
		Short: "Manage the ad inventory",
	}

	cmd.AddCommand(newAdminAdsListCmd())
	cmd.AddCommand(newAdminAdsCreateCmd())
	cmd.AddCommand(newAdminAdsUpdateCmd())
	cmd.AddCommand(newAdminAdsDeleteCmd())

	return cmd
}

func newAdminAdsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all ads including inactive ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			ads, err := api.AdminAds(cmd.Context())
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(ads)
			return nil
		},
	}
}

func newAdminAdsCreateCmd() *cobra.Command {
	var position, content string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an ad",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := api.CreateAdminAd(cmd.Context(), position, content); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Ad created")
			return nil
		},
	}

	cmd.Flags().StringVar(&position, "position", "", "Ad position: top, bottom, left, right (required)")
	cmd.Flags().StringVar(&content, "content", "", "Ad HTML content (required)")
	_ = cmd.MarkFlagRequired("position")
	_ = cmd.MarkFlagRequired("content")

	return cmd
}

func newAdminAdsUpdateCmd() *cobra.Command {
	var position, content string
	var active bool

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace an ad record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := model.AdID(args[0])
			ad := model.Ad{
				AdID:     id,
				Position: position,
				Content:  content,
				IsActive: active,
			}
			if err := api.UpdateAdminAd(cmd.Context(), id, &ad); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Ad updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&position, "position", "", "Ad position (required)")
	cmd.Flags().StringVar(&content, "content", "", "Ad HTML content (required)")
	cmd.Flags().BoolVar(&active, "active", true, "Whether the ad is active")
	_ = cmd.MarkFlagRequired("position")
	_ = cmd.MarkFlagRequired("content")

	return cmd
}

func newAdminAdsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an ad",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := api.DeleteAdminAd(cmd.Context(), model.AdID(args[0])); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Ad deleted")
			return nil
		},
	}
}
