// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST client.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/go-github/v62/github"

	"github.com/naka-gawa/github-repo-analyzer/internal/config"
	"github.com/naka-gawa/github-repo-analyzer/internal/domain"
)

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	// FetchRepositories returns every repository owned by username in API order.
	// On failure it returns a nil slice; partial results are never returned.
	FetchRepositories(ctx context.Context, username string) ([]*domain.Repository, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient *github.Client
	perPage    int
	logger     *log.Logger
}

// NewGitHubGateway creates a gateway talking to cfg.BaseURL.
// A nil httpClient falls back to a plain http.Client without any timeout.
func NewGitHubGateway(httpClient *http.Client, cfg *config.Config, logger *log.Logger) (*GitHubGateway, error) {
	baseURL := cfg.BaseURL
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL %q: %w", cfg.BaseURL, err)
	}

	restClient := github.NewClient(httpClient)
	restClient.BaseURL = u
	restClient.UserAgent = cfg.UserAgent

	return &GitHubGateway{
		restClient: restClient,
		perPage:    cfg.PerPage,
		logger:     logger,
	}, nil
}

// FetchRepositories walks /users/{username}/repos page by page, starting at page 1,
// and stops at the first page that comes back empty.
func (g *GitHubGateway) FetchRepositories(ctx context.Context, username string) ([]*domain.Repository, error) {
	opts := &github.RepositoryListByUserOptions{
		ListOptions: github.ListOptions{PerPage: g.perPage, Page: 1},
	}
	repos := make([]*domain.Repository, 0)
	for {
		g.logger.Debug("fetching repositories page", "user", username, "page", opts.Page)
		page, _, err := g.restClient.Repositories.ListByUser(ctx, username, opts)
		if err != nil {
			return nil, classifyError(username, err)
		}
		if len(page) == 0 {
			break
		}
		for i, r := range page {
			repo, err := toDomain(r)
			if err != nil {
				return nil, fmt.Errorf("page %d, item %d: %w", opts.Page, i, err)
			}
			repos = append(repos, repo)
		}
		g.logger.Debug("received repositories", "page", opts.Page, "count", len(page), "total", len(repos))
		opts.Page++
	}
	g.logger.Debug("completed fetching repositories", "user", username, "total", len(repos))
	return repos, nil
}

// toDomain narrows an API repository to the analyzed fields.
// A missing language is expected; a missing name or counter is not.
func toDomain(r *github.Repository) (*domain.Repository, error) {
	var missing []string
	if r.Name == nil {
		missing = append(missing, "name")
	}
	if r.StargazersCount == nil {
		missing = append(missing, "stargazers_count")
	}
	if r.ForksCount == nil {
		missing = append(missing, "forks_count")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", domain.ErrMalformedRepository, strings.Join(missing, ", "))
	}
	return &domain.Repository{
		Name:     r.GetName(),
		Language: r.Language,
		Stars:    r.GetStargazersCount(),
		Forks:    r.GetForksCount(),
	}, nil
}

func classifyError(username string, err error) error {
	var (
		rateErr  *github.RateLimitError
		abuseErr *github.AbuseRateLimitError
		respErr  *github.ErrorResponse
	)
	switch {
	case errors.As(err, &rateErr), errors.As(err, &abuseErr):
		return fmt.Errorf("failed to list repositories for %s: %w: %w", username, domain.ErrRateLimited, err)
	case errors.As(err, &respErr) && respErr.Response != nil:
		switch respErr.Response.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("failed to list repositories for %s: %w: %w", username, domain.ErrAccountNotFound, err)
		case http.StatusTooManyRequests:
			return fmt.Errorf("failed to list repositories for %s: %w: %w", username, domain.ErrRateLimited, err)
		}
	}
	return fmt.Errorf("failed to list repositories for %s: %w", username, err)
}
