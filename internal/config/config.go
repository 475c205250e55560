// Package config holds the runtime settings of the analyzer.
package config

import "fmt"

const (
	// OutputText renders the summary as human readable tables.
	OutputText = "text"
	// OutputJSON renders the summary as indented JSON.
	OutputJSON = "json"

	// MaxPerPage is the largest page size the GitHub API accepts.
	MaxPerPage = 100
)

// Config represents the analyzer configuration
type Config struct {
	// BaseURL is the GitHub REST API root, must end with a slash
	BaseURL string `json:"baseURL"`

	// UserAgent is sent with every request in place of the client default
	UserAgent string `json:"userAgent"`

	// PerPage is the number of repositories requested per page (1-100)
	PerPage int `json:"perPage"`

	// TopN is the length of the most starred repositories list
	TopN int `json:"topN"`

	// Output selects the report format, "text" or "json"
	Output string `json:"output"`

	// Verbose enables debug logging to stderr
	Verbose bool `json:"verbose"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:   "https://api.github.com/",
		UserAgent: "GitHub Repo Analyzer",
		PerPage:   MaxPerPage,
		TopN:      5,
		Output:    OutputText,
		Verbose:   false,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL must not be empty")
	}
	if c.PerPage < 1 || c.PerPage > MaxPerPage {
		return fmt.Errorf("per-page must be between 1 and %d, got %d", MaxPerPage, c.PerPage)
	}
	if c.TopN < 1 {
		return fmt.Errorf("top must be positive, got %d", c.TopN)
	}
	switch c.Output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("unknown output format %q", c.Output)
	}
	return nil
}
