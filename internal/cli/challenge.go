package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ctfarena/ctfarena/internal/client"
	"github.com/ctfarena/ctfarena/internal/model"
)

func newChallengeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "challenge",
		Aliases: []string{"chal"},
		Short:   "Challenge listing and flag submission",
	}

	cmd.AddCommand(newChallengeListCmd())
	cmd.AddCommand(newChallengeShowCmd())
	cmd.AddCommand(newChallengeSubmitCmd())
	cmd.AddCommand(newChallengeCategoriesCmd())
	cmd.AddCommand(newChallengeDifficultiesCmd())

	return cmd
}

func newChallengeListCmd() *cobra.Command {
	var category, difficulty string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List challenges",
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := client.ChallengeFilters{
				Category:   category,
				Difficulty: difficulty,
			}
			challenges, err := api.Challenges(cmd.Context(), filters)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(challenges)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Filter by category")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Filter by difficulty")

	return cmd
}

func newChallengeShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one challenge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			challenge, err := api.Challenge(cmd.Context(), model.ChallengeID(args[0]))
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(challenge)
			return nil
		},
	}
}

func newChallengeSubmitCmd() *cobra.Command {
	var flag string
	var data []string

	cmd := &cobra.Command{
		Use:   "submit <id>",
		Short: "Submit a flag for a challenge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			submission := map[string]any{}
			if flag != "" {
				submission["flag"] = flag
			}
			for _, pair := range data {
				key, value, ok := strings.Cut(pair, "=")
				if !ok {
					return fmt.Errorf("invalid --data entry %q, expected key=value", pair)
				}
				submission[key] = value
			}

			result, err := api.SubmitChallenge(cmd.Context(), model.ChallengeID(args[0]), submission)
			if err != nil {
				return err
			}

			// A solve changes the score; pull the fresh record so the next
			// whoami reflects it
			if result.Success {
				sess.RefreshUser(cmd.Context())
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&flag, "flag", "", "Flag to submit")
	cmd.Flags().StringArrayVar(&data, "data", nil, "Extra submission data as key=value (repeatable)")

	return cmd
}

func newChallengeCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List challenge categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := api.ChallengeCategories(cmd.Context())
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if cfg.Output == "json" {
				out.Print(categories)
				return nil
			}
			out.PrintMessage(strings.Join(categories, "\n"))
			return nil
		},
	}
}

func newChallengeDifficultiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "difficulties",
		Short: "List challenge difficulty levels",
		RunE: func(cmd *cobra.Command, args []string) error {
			difficulties, err := api.ChallengeDifficulties(cmd.Context())
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if cfg.Output == "json" {
				out.Print(difficulties)
				return nil
			}
			out.PrintMessage(strings.Join(difficulties, "\n"))
			return nil
		},
	}
}
