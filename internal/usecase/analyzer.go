// Package usecase contains the business logic of the application.
package usecase

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/github-repo-analyzer/internal/domain"
)

// DefaultTopN is the length of the most starred list when none is configured.
const DefaultTopN = 5

// Analyzer is the use case for summarizing a user's repositories.
type Analyzer struct {
	topN   int
	logger *log.Logger
}

// NewAnalyzer creates a new Analyzer instance.
// A non-positive topN falls back to DefaultTopN.
func NewAnalyzer(topN int, logger *log.Logger) *Analyzer {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Analyzer{
		topN:   topN,
		logger: logger,
	}
}

// Analyze derives a Summary from repos without modifying the slice or its elements.
// It returns domain.ErrNoRepositories when repos is empty.
func (a *Analyzer) Analyze(repos []*domain.Repository) (*domain.Summary, error) {
	if len(repos) == 0 {
		return nil, domain.ErrNoRepositories
	}
	a.logger.Debug("analyzing repositories", "count", len(repos))

	starStats, err := computeStarStats(repos)
	if err != nil {
		return nil, err
	}

	summary := &domain.Summary{
		Total:      len(repos),
		TopN:       a.topN,
		TopStarred: TopStarred(repos, a.topN),
		Languages:  CountLanguages(repos),
		Stars:      starStats,
	}
	a.logger.Debug("analysis complete", "languages", len(summary.Languages))
	return summary, nil
}

// TopStarred returns the n repositories with the most stars, highest first.
// Repositories with equal star counts keep their original order.
func TopStarred(repos []*domain.Repository, n int) []domain.RepoRank {
	sorted := make([]*domain.Repository, len(repos))
	copy(sorted, repos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Stars > sorted[j].Stars
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	top := make([]domain.RepoRank, 0, n)
	for _, r := range sorted[:n] {
		top = append(top, domain.RepoRank{Name: r.Name, Stars: r.Stars, Language: r.Language})
	}
	return top
}

// CountLanguages counts repositories per primary language, skipping those without one.
// The result is ordered by count descending, then by language name.
func CountLanguages(repos []*domain.Repository) []domain.LanguageCount {
	counts := make(map[string]int)
	for _, r := range repos {
		if r.Language == nil {
			continue
		}
		counts[*r.Language]++
	}

	result := make([]domain.LanguageCount, 0, len(counts))
	for lang, count := range counts {
		result = append(result, domain.LanguageCount{Language: lang, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Language < result[j].Language
	})
	return result
}

func computeStarStats(repos []*domain.Repository) (domain.StarStats, error) {
	starCounts := make([]int, len(repos))
	totalForks := 0
	for i, r := range repos {
		starCounts[i] = r.Stars
		totalForks += r.Forks
	}
	data := stats.LoadRawData(starCounts)

	total, err := stats.Sum(data)
	if err != nil {
		return domain.StarStats{}, fmt.Errorf("failed to sum stars: %w", err)
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return domain.StarStats{}, fmt.Errorf("failed to compute mean stars: %w", err)
	}
	median, err := stats.Median(data)
	if err != nil {
		return domain.StarStats{}, fmt.Errorf("failed to compute median stars: %w", err)
	}
	return domain.StarStats{
		Total:      int(total),
		Mean:       mean,
		Median:     median,
		TotalForks: totalForks,
	}, nil
}
