package safety

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Report styles (package-level for consistent terminal output).
var (
	safetyHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	safetyBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	safetyBadStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	safetyGoodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("40"))
	safetyLabelStyle  = lipgloss.NewStyle().Bold(true)
	safetyMutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// WriteJSON writes the safety report as formatted JSON.
func WriteJSON(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// WriteText writes the safety report as human-readable styled text.
func WriteText(w io.Writer, report *Report) error {
	if len(report.Scores) == 0 {
		fmt.Fprintln(w, safetyMutedStyle.Render("No products scored."))
		return nil
	}

	threshold := report.Summary.Threshold

	// Budget: 80 cols. PRODUCT gets what the numeric columns leave.
	const maxName = 36
	rows := make([][]string, 0, len(report.Scores))
	for _, s := range report.Scores {
		marker := ""
		if s.Score < threshold {
			marker = " *"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d%s", s.Score, marker),
			truncate(s.Product, maxName),
			s.Category,
			fmt.Sprintf("%d/%d", s.Concerning, s.Ingredients),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(safetyBorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return safetyHeaderStyle
			}
			// Color the score column based on threshold.
			if col == 0 && row >= 0 && row < len(report.Scores) {
				if report.Scores[row].Score < threshold {
					return safetyBadStyle
				}
				return safetyGoodStyle
			}
			return lipgloss.NewStyle()
		}).
		Headers("SCORE", "PRODUCT", "CATEGORY", "CONCERNS").
		Rows(rows...)

	fmt.Fprintln(w, t)

	// Summary.
	fmt.Fprintln(w)
	fmt.Fprintln(w, safetyHeaderStyle.Render("--- Summary ---"))
	fmt.Fprintf(w, "%s  %d\n", safetyLabelStyle.Render("Products scored:"), report.Summary.TotalProducts)
	fmt.Fprintf(w, "%s  %.1f\n", safetyLabelStyle.Render("Avg safety score:"), report.Summary.AvgScore)
	fmt.Fprintf(w, "%s  %d\n", safetyLabelStyle.Render("Concerning total:"), report.Summary.TotalConcerning)
	fmt.Fprintf(w, "%s  %d\n", safetyLabelStyle.Render("Score threshold:"), threshold)

	flagged := fmt.Sprintf("%d", report.Summary.Flagged)
	if report.Summary.Flagged > 0 {
		flagged = safetyBadStyle.Render(flagged) + safetyMutedStyle.Render(" (products below threshold)")
	}
	fmt.Fprintf(w, "%s  %s\n", safetyLabelStyle.Render("Flagged:"), flagged)

	if len(report.Summary.Worst) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, safetyHeaderStyle.Render(
			fmt.Sprintf("--- Most Concerning (top %d) ---", len(report.Summary.Worst))))
		for i, s := range report.Summary.Worst {
			score := fmt.Sprintf("%d", s.Score)
			if s.Score < threshold {
				score = safetyBadStyle.Render(score)
			} else {
				score = safetyGoodStyle.Render(score)
			}
			fmt.Fprintf(w, "  %d. %s  %s  %s\n",
				i+1, score, truncate(s.Product, maxName),
				safetyMutedStyle.Render(fmt.Sprintf("(%d concerning)", s.Concerning)))
		}
	}

	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
