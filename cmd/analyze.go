package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/naka-gawa/github-repo-analyzer/internal/config"
	"github.com/naka-gawa/github-repo-analyzer/internal/domain"
	"github.com/naka-gawa/github-repo-analyzer/internal/gateway"
	"github.com/naka-gawa/github-repo-analyzer/internal/report"
	"github.com/naka-gawa/github-repo-analyzer/internal/usecase"
)

const (
	promptText       = "Enter the GitHub username to analyze: "
	noDataDiagnostic = "No repositories found or an error occurred."
)

// promptUsername reads a single line from in. Blank input is rejected so that
// no request is made for an empty account.
func promptUsername(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, promptText)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read username: %w", err)
	}
	return normalizeUsername(line)
}

// normalizeUsername trims surrounding whitespace and rejects what is left if it is empty.
func normalizeUsername(raw string) (string, error) {
	username := strings.TrimSpace(raw)
	if username == "" {
		return "", domain.ErrEmptyUsername
	}
	return username, nil
}

// analyze fetches all repositories of username, summarizes them and writes the report to out.
// Progress goes to errOut when the report is JSON so that out stays machine readable.
func analyze(ctx context.Context, out, errOut io.Writer, cfg *config.Config, username string, fetcher gateway.Fetcher, analyzer *usecase.Analyzer) error {
	progress := out
	if cfg.Output == config.OutputJSON {
		progress = errOut
	}
	fmt.Fprintf(progress, "Fetching repositories for %s...\n", username)

	repos, err := fetcher.FetchRepositories(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to fetch repositories: %w", err)
	}

	summary, err := analyzer.Analyze(repos)
	if err != nil {
		return err
	}
	summary.Username = username

	if cfg.Output == config.OutputJSON {
		return report.JSON(out, summary)
	}
	return report.Text(out, summary)
}

// diagnostic turns an error from the root command into the line shown to the user.
func diagnostic(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoRepositories):
		return noDataDiagnostic
	case errors.Is(err, domain.ErrAccountNotFound):
		return fmt.Sprintf("An error occurred: the account does not exist (%v)", err)
	case errors.Is(err, domain.ErrRateLimited):
		return fmt.Sprintf("An error occurred: GitHub rate limit reached, try again later (%v)", err)
	default:
		return fmt.Sprintf("An error occurred: %v", err)
	}
}
