package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-repo-analyzer/internal/config"
	"github.com/naka-gawa/github-repo-analyzer/internal/domain"
	"github.com/naka-gawa/github-repo-analyzer/internal/usecase"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchRepositories(ctx context.Context, username string) ([]*domain.Repository, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Repository), args.Error(1)
}

func TestPromptUsername(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expected    string
		expectedErr error
	}{
		{name: "line with newline", input: "octocat\n", expected: "octocat"},
		{name: "surrounding whitespace is trimmed", input: "  octocat \r\n", expected: "octocat"},
		{name: "input without trailing newline", input: "octocat", expected: "octocat"},
		{name: "only the first line is read", input: "octocat\nsomeone-else\n", expected: "octocat"},
		{name: "blank line", input: "   \n", expectedErr: domain.ErrEmptyUsername},
		{name: "no input at all", input: "", expectedErr: domain.ErrEmptyUsername},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			username, err := promptUsername(strings.NewReader(tc.input), &out)

			assert.Equal(t, promptText, out.String())
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, username)
		})
	}
}

func TestNormalizeUsername(t *testing.T) {
	testCases := []struct {
		name        string
		raw         string
		expected    string
		expectedErr error
	}{
		{name: "plain", raw: "octocat", expected: "octocat"},
		{name: "padded", raw: "\t octocat \n", expected: "octocat"},
		{name: "whitespace only", raw: "   ", expectedErr: domain.ErrEmptyUsername},
		{name: "empty", raw: "", expectedErr: domain.ErrEmptyUsername},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			username, err := normalizeUsername(tc.raw)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Empty(t, username)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, username)
		})
	}
}

func TestAnalyze(t *testing.T) {
	goLang := "Go"
	repos := []*domain.Repository{
		{Name: "a", Stars: 10, Language: &goLang},
		{Name: "b", Stars: 50},
		{Name: "c", Stars: 50, Language: &goLang},
	}

	testCases := []struct {
		name        string
		output      string
		mockRepos   []*domain.Repository
		mockErr     error
		expectedErr error
		check       func(t *testing.T, out, errOut string)
	}{
		{
			name:      "text report",
			output:    config.OutputText,
			mockRepos: repos,
			check: func(t *testing.T, out, errOut string) {
				assert.True(t, strings.HasPrefix(out, "Fetching repositories for octocat...\n"))
				assert.Contains(t, out, "--- Analysis for 3 repositories ---")
				assert.Empty(t, errOut)
			},
		},
		{
			name:      "json report keeps stdout parseable",
			output:    config.OutputJSON,
			mockRepos: repos,
			check: func(t *testing.T, out, errOut string) {
				var summary domain.Summary
				require.NoError(t, json.Unmarshal([]byte(out), &summary))
				assert.Equal(t, "octocat", summary.Username)
				assert.Equal(t, 3, summary.Total)
				assert.Equal(t, []domain.LanguageCount{{Language: "Go", Count: 2}}, summary.Languages)
				assert.Equal(t, "Fetching repositories for octocat...\n", errOut)
			},
		},
		{
			name:        "fetch failure skips the analysis",
			output:      config.OutputText,
			mockErr:     fmt.Errorf("boom: %w", domain.ErrAccountNotFound),
			expectedErr: domain.ErrAccountNotFound,
			check: func(t *testing.T, out, errOut string) {
				assert.Equal(t, "Fetching repositories for octocat...\n", out)
			},
		},
		{
			name:        "no repositories",
			output:      config.OutputText,
			mockRepos:   []*domain.Repository{},
			expectedErr: domain.ErrNoRepositories,
			check: func(t *testing.T, out, errOut string) {
				assert.NotContains(t, out, "Analysis for")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Output = tc.output
			fetcher := new(mockFetcher)
			if tc.mockRepos != nil {
				fetcher.On("FetchRepositories", mock.Anything, "octocat").Return(tc.mockRepos, tc.mockErr)
			} else {
				fetcher.On("FetchRepositories", mock.Anything, "octocat").Return(nil, tc.mockErr)
			}
			analyzer := usecase.NewAnalyzer(cfg.TopN, log.New(io.Discard))

			var out, errOut bytes.Buffer
			err := analyze(context.Background(), &out, &errOut, cfg, "octocat", fetcher, analyzer)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				assert.NoError(t, err)
			}
			tc.check(t, out.String(), errOut.String())
			fetcher.AssertExpectations(t)
		})
	}
}

func TestAnalyze_IsRepeatable(t *testing.T) {
	goLang := "Go"
	repos := []*domain.Repository{
		{Name: "a", Stars: 10, Language: &goLang},
		{Name: "b", Stars: 50},
	}
	fetcher := new(mockFetcher)
	fetcher.On("FetchRepositories", mock.Anything, "octocat").Return(repos, nil)
	cfg := config.DefaultConfig()
	analyzer := usecase.NewAnalyzer(cfg.TopN, log.New(io.Discard))

	var first, second bytes.Buffer
	require.NoError(t, analyze(context.Background(), &first, io.Discard, cfg, "octocat", fetcher, analyzer))
	require.NoError(t, analyze(context.Background(), &second, io.Discard, cfg, "octocat", fetcher, analyzer))

	assert.Equal(t, first.String(), second.String())
}

func TestDiagnostic(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nothing to analyze",
			err:      domain.ErrNoRepositories,
			expected: noDataDiagnostic,
		},
		{
			name:     "unknown account",
			err:      fmt.Errorf("failed to fetch repositories: %w", domain.ErrAccountNotFound),
			expected: "An error occurred: the account does not exist (failed to fetch repositories: account not found)",
		},
		{
			name:     "rate limited",
			err:      domain.ErrRateLimited,
			expected: "An error occurred: GitHub rate limit reached, try again later (rate limited by GitHub)",
		},
		{
			name:     "anything else",
			err:      errors.New("connection refused"),
			expected: "An error occurred: connection refused",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, diagnostic(tc.err))
		})
	}
}

func TestRootCmd(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/users/octocat/repos" {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message": "Not Found"}`)
			return
		}
		if r.URL.Query().Get("page") != "1" {
			fmt.Fprint(w, `[]`)
			return
		}
		fmt.Fprint(w, `[
			{"name": "hello-world", "language": "Go", "stargazers_count": 5, "forks_count": 1},
			{"name": "dotfiles", "language": null, "stargazers_count": 1, "forks_count": 0}
		]`)
	}))
	defer server.Close()

	testCases := []struct {
		name          string
		args          []string
		stdin         string
		expectedErr   error
		expectedOut   []string
		expectedCalls int32
	}{
		{
			name:          "username from the prompt",
			args:          []string{"--user=", "--base-url", server.URL},
			stdin:         "octocat\n",
			expectedOut:   []string{promptText, "Fetching repositories for octocat...", "--- Analysis for 2 repositories ---", "hello-world"},
			expectedCalls: 2,
		},
		{
			name:          "username from the flag",
			args:          []string{"--user", "octocat", "--base-url", server.URL},
			expectedOut:   []string{"Fetching repositories for octocat...", "dotfiles"},
			expectedCalls: 2,
		},
		{
			name:          "unknown account",
			args:          []string{"--user", "ghost", "--base-url", server.URL},
			expectedErr:   domain.ErrAccountNotFound,
			expectedCalls: 1,
		},
		{
			name:          "blank flag makes no request",
			args:          []string{"--user", "   ", "--base-url", server.URL},
			expectedErr:   domain.ErrEmptyUsername,
			expectedCalls: 0,
		},
		{
			name:          "flag value is trimmed",
			args:          []string{"--user", " octocat ", "--base-url", server.URL},
			expectedOut:   []string{"Fetching repositories for octocat...", "hello-world"},
			expectedCalls: 2,
		},
		{
			name:          "blank prompt makes no request",
			args:          []string{"--user=", "--base-url", server.URL},
			stdin:         "\n",
			expectedErr:   domain.ErrEmptyUsername,
			expectedCalls: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			calls.Store(0)
			var out, errOut bytes.Buffer
			rootCmd.SetArgs(tc.args)
			rootCmd.SetIn(strings.NewReader(tc.stdin))
			rootCmd.SetOut(&out)
			rootCmd.SetErr(&errOut)

			err := rootCmd.ExecuteContext(context.Background())

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				assert.NoError(t, err)
			}
			for _, s := range tc.expectedOut {
				assert.Contains(t, out.String(), s)
			}
			assert.Equal(t, tc.expectedCalls, calls.Load())
		})
	}
}
