// Package domain contains the core data structures and domain logic for the application.
package domain

import "errors"

var (
	// ErrAccountNotFound is returned when the GitHub account does not exist.
	ErrAccountNotFound = errors.New("account not found")
	// ErrRateLimited is returned when GitHub refuses the request because of rate limiting.
	ErrRateLimited = errors.New("rate limited by GitHub")
	// ErrMalformedRepository is returned when a repository record lacks a required field.
	ErrMalformedRepository = errors.New("malformed repository record")
	// ErrNoRepositories is returned when there is nothing to analyze.
	ErrNoRepositories = errors.New("no repositories found")
	// ErrEmptyUsername is returned when no account identifier was given.
	ErrEmptyUsername = errors.New("username must not be empty")
)

// Repository holds the fields of a GitHub repository that the analysis consumes.
// Language is nil when GitHub detected no primary language.
type Repository struct {
	Name     string  `json:"name"`
	Language *string `json:"language"`
	Stars    int     `json:"stars"`
	Forks    int     `json:"forks"`
}

// RepoRank is a single entry of the most starred repositories list.
type RepoRank struct {
	Name     string  `json:"name"`
	Stars    int     `json:"stars"`
	Language *string `json:"language"`
}

// LanguageCount is the number of repositories using a primary language.
type LanguageCount struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// StarStats holds aggregate popularity numbers over all analyzed repositories.
type StarStats struct {
	Total      int     `json:"total_stars"`
	Mean       float64 `json:"mean_stars"`
	Median     float64 `json:"median_stars"`
	TotalForks int     `json:"total_forks"`
}

// Summary is the result of analyzing a user's repositories.
// It is always derived from the complete collection and never modifies it.
type Summary struct {
	Username   string          `json:"username,omitempty"`
	Total      int             `json:"total"`
	TopN       int             `json:"top_n"`
	TopStarred []RepoRank      `json:"top_starred"`
	Languages  []LanguageCount `json:"languages"`
	Stars      StarStats       `json:"stars"`
}
