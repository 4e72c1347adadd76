package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ctfarena/ctfarena/internal/client"
	"github.com/ctfarena/ctfarena/internal/keyval"
	"github.com/ctfarena/ctfarena/internal/keyval/file"
	"github.com/ctfarena/ctfarena/internal/keyval/memory"
	"github.com/ctfarena/ctfarena/internal/session"
)

var (
	cfg  *Config
	api  *client.Client
	sess *session.Manager
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "ctfarena",
		Short: "CLI tool for the CTF Arena API",
		Long: `ctfarena is a CLI tool for interacting with the CTF Arena JSON API.

It supports account management, challenge listing and flag submission,
leaderboard queries, and the admin surface. The session token persists in a
credentials file between invocations, so one login carries across commands.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			// An explicit token bypasses the credentials file entirely so
			// one-off invocations never clobber the stored login
			var store keyval.Store
			if cfg.Token != "" {
				store = memory.New()
			} else {
				store = file.New(cfg.CredentialsFile)
			}

			tokens := session.NewTokenStore(store)
			if err := tokens.Initialize(cmd.Context()); err != nil {
				return err
			}
			if cfg.Token != "" {
				if err := tokens.Set(cmd.Context(), cfg.Token); err != nil {
					return err
				}
			}

			api = client.New(cfg.ServerURL, tokens, client.WithUserAgent("ctfarena-cli/1.0"))
			sess = session.NewManager(api, tokens, logger)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: CTFARENA_API_URL)")
	rootCmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "Session token (env: CTFARENA_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&cfg.CredentialsFile, "credentials-file", cfg.CredentialsFile, "Credentials file path (env: CTFARENA_CREDENTIALS_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newChallengeCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newAdsCmd())
	rootCmd.AddCommand(newAdminCmd())
	rootCmd.AddCommand(newTrackCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
