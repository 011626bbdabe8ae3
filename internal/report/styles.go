package report

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles defines the visual theme for terminal report output.
// Lipgloss automatically degrades to no-color when output is not a TTY.
type Styles struct {
	// Header is used for section headers (e.g. "=== Product ===").
	Header lipgloss.Style

	// SubHeader is used for secondary information lines.
	SubHeader lipgloss.Style

	// TableHeader styles the header row of tables.
	TableHeader lipgloss.Style

	// TableCell styles regular table cells.
	TableCell lipgloss.Style

	// Beneficial and Concerning color-code ingredient rows.
	Beneficial lipgloss.Style
	Concerning lipgloss.Style

	// ScoreBad styles safety scores below threshold.
	ScoreBad lipgloss.Style

	// ScoreGood styles safety scores at or above threshold.
	ScoreGood lipgloss.Style

	// SummaryLabel styles summary line labels.
	SummaryLabel lipgloss.Style

	// Pass styles the no-conflict indicator.
	Pass lipgloss.Style

	// Warn styles the conflict indicator.
	Warn lipgloss.Style

	// Border is used for table borders.
	Border lipgloss.Style

	// Muted is used for de-emphasized text.
	Muted lipgloss.Style
}

// DefaultStyles returns the default color scheme for terminal reports.
func DefaultStyles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		SubHeader: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		TableHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		TableCell:   lipgloss.NewStyle().PaddingRight(1),

		Beneficial: lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
		Concerning: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),

		ScoreBad:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		ScoreGood: lipgloss.NewStyle().Foreground(lipgloss.Color("40")),

		SummaryLabel: lipgloss.NewStyle().Bold(true).Width(20),

		Pass: lipgloss.NewStyle().Foreground(lipgloss.Color("40")).Bold(true),
		Warn: lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),

		Border: lipgloss.NewStyle().Foreground(lipgloss.Color("63")),

		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// ScoreStyle returns the style for a safety score against threshold.
func (s Styles) ScoreStyle(score, threshold int) lipgloss.Style {
	if score < threshold {
		return s.ScoreBad
	}
	return s.ScoreGood
}

// IngredientStyle returns the style for an ingredient note column.
func (s Styles) IngredientStyle(note string) lipgloss.Style {
	switch note {
	case noteBeneficial:
		return s.Beneficial
	case noteConcern:
		return s.Concerning
	default:
		return s.Muted
	}
}
