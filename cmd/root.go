// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-repo-analyzer/internal/config"
	"github.com/naka-gawa/github-repo-analyzer/internal/gateway"
	"github.com/naka-gawa/github-repo-analyzer/internal/usecase"
)

var rootCmd = &cobra.Command{
	Use:   "github-repo-analyzer",
	Short: "Summarizes the public repositories of a GitHub user.",
	Long: `github-repo-analyzer fetches every public repository owned by a GitHub user
and prints the most starred repositories and the primary languages used.
The username is read from standard input unless --user is given.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.DefaultConfig()
		cfg.Verbose, _ = cmd.Flags().GetBool("verbose")
		cfg.TopN, _ = cmd.Flags().GetInt("top")
		cfg.Output, _ = cmd.Flags().GetString("output")
		cfg.BaseURL, _ = cmd.Flags().GetString("base-url")
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

		username, _ := cmd.Flags().GetString("user")
		var err error
		if username == "" {
			username, err = promptUsername(cmd.InOrStdin(), cmd.OutOrStdout())
		} else {
			username, err = normalizeUsername(username)
		}
		if err != nil {
			return err
		}

		githubGateway, err := gateway.NewGitHubGateway(nil, cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to create GitHub gateway: %w", err)
		}
		analyzer := usecase.NewAnalyzer(cfg.TopN, logger)

		return analyze(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, username, githubGateway, analyzer)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, diagnostic(err))
		os.Exit(1)
	}
}

func init() {
	defaults := config.DefaultConfig()
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.Flags().StringP("user", "u", "", "GitHub user name to analyze (prompted for when empty)")
	rootCmd.Flags().Int("top", defaults.TopN, "Number of most starred repositories to show")
	rootCmd.Flags().StringP("output", "o", defaults.Output, `Output format, "text" or "json"`)
	rootCmd.Flags().String("base-url", defaults.BaseURL, "GitHub REST API base URL")
}
