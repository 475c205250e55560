// Package report renders an analysis summary for the terminal or as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/naka-gawa/github-repo-analyzer/internal/domain"
)

// noLanguage is printed for repositories without a detected primary language.
const noLanguage = "-"

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245")).Padding(0, 1)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
	styleNumber = styleCell.Align(lipgloss.Right)
	styleBorder = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Text writes the human readable report: a banner, the most starred
// repositories, the language histogram and the star statistics.
func Text(w io.Writer, s *domain.Summary) error {
	rows := make([][]string, 0, len(s.TopStarred))
	for _, r := range s.TopStarred {
		language := noLanguage
		if r.Language != nil {
			language = *r.Language
		}
		rows = append(rows, []string{r.Name, strconv.Itoa(r.Stars), language})
	}
	top := newTable(1).Headers("NAME", "STARS", "LANGUAGE").Rows(rows...)

	rows = make([][]string, 0, len(s.Languages))
	for _, l := range s.Languages {
		rows = append(rows, []string{l.Language, strconv.Itoa(l.Count)})
	}
	languages := newTable(1).Headers("LANGUAGE", "COUNT").Rows(rows...)

	_, err := fmt.Fprintf(w, "\n%s\n\n%s\n%s\n\n%s\n%s\n\n%s\n%s\n",
		styleTitle.Render(fmt.Sprintf("--- Analysis for %d repositories ---", s.Total)),
		styleTitle.Render(fmt.Sprintf("Top %d Most Starred Repositories:", s.TopN)),
		top.Render(),
		styleTitle.Render("Primary Languages Used:"),
		languages.Render(),
		styleTitle.Render("Star Statistics:"),
		fmt.Sprintf("total %d, mean %.2f, median %.1f, forks %d",
			s.Stars.Total, s.Stars.Mean, s.Stars.Median, s.Stars.TotalForks),
	)
	return err
}

// JSON writes the summary as indented JSON.
func JSON(w io.Writer, s *domain.Summary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary to JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// newTable returns a bordered table whose column numberCol is right aligned.
func newTable(numberCol int) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styleBorder).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case col == numberCol:
				return styleNumber
			default:
				return styleCell
			}
		})
}
