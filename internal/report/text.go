package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/unbound-force/dermis/internal/routine"
	"github.com/unbound-force/dermis/internal/safety"
	"github.com/unbound-force/dermis/internal/taxonomy"
)

const (
	noteBeneficial = "beneficial"
	noteConcern    = "concern"
)

// TextOptions configures WriteTextOptions.
type TextOptions struct {
	// Threshold colors safety scores below it as bad. Zero means
	// safety.DefaultThreshold.
	Threshold int
}

// WriteText writes an analyze report as human-readable styled text
// to the writer. Output uses lipgloss for color and formatting when
// the output is a TTY; degrades gracefully for pipes and CI.
func WriteText(w io.Writer, r *AnalyzeReport) error {
	return WriteTextOptions(w, r, TextOptions{})
}

// WriteTextOptions is WriteText with options.
func WriteTextOptions(w io.Writer, r *AnalyzeReport, opts TextOptions) error {
	s := DefaultStyles()
	threshold := opts.Threshold
	if threshold == 0 {
		threshold = safety.DefaultThreshold
	}

	concerning := 0
	for i, pa := range r.Products {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeProduct(w, pa, threshold, s)
		concerning += len(pa.Analysis.Concerning)
	}

	for _, rt := range r.Routines {
		fmt.Fprintln(w)
		writeRoutine(w, rt, s)
	}

	fmt.Fprintln(w)
	writeConflicts(w, r.Conflicts, s)

	fmt.Fprintf(w, "\n%s\n",
		s.Header.Render(fmt.Sprintf(
			"%d product(s) analyzed, %d concerning ingredient(s), %d conflict(s)",
			len(r.Products), concerning, len(r.Conflicts.Pairs))))
	return nil
}

// WriteRoutineText writes one ordered routine.
func WriteRoutineText(w io.Writer, rt routine.Routine) error {
	writeRoutine(w, rt, DefaultStyles())
	return nil
}

// WriteConflictsText writes a conflict report.
func WriteConflictsText(w io.Writer, r taxonomy.ConflictReport) error {
	writeConflicts(w, r, DefaultStyles())
	return nil
}

// WriteProductsText writes a compact product table.
func WriteProductsText(w io.Writer, products []taxonomy.Product) error {
	s := DefaultStyles()
	if len(products) == 0 {
		fmt.Fprintln(w, s.Muted.Render("No products."))
		return nil
	}

	// Budget: 80 cols. ID is shortened; PRODUCT takes the remainder.
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			truncate(p.ID, 10),
			truncate(p.DisplayName(), 30),
			string(p.Category),
			routinesLabel(p.Routines),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader
			}
			return s.TableCell
		}).
		Headers("ID", "PRODUCT", "CATEGORY", "ROUTINES").
		Rows(rows...)
	fmt.Fprintln(w, t)
	return nil
}

func writeProduct(w io.Writer, pa taxonomy.ProductAnalysis, threshold int, s Styles) {
	p := pa.Product
	fmt.Fprintln(w, s.Header.Render(fmt.Sprintf("=== %s ===", truncate(p.DisplayName(), 70))))
	fmt.Fprintln(w, s.SubHeader.Render(fmt.Sprintf("    %s - %s", p.Category, routinesLabel(p.Routines))))
	fmt.Fprintf(w, "    Safety score: %s\n",
		s.ScoreStyle(pa.SafetyScore, threshold).Render(fmt.Sprintf("%d", pa.SafetyScore)))

	if len(p.Ingredients) == 0 {
		fmt.Fprintln(w, s.Muted.Render("    No ingredients listed."))
	} else {
		// Budget: 80 cols total, table width 76 leaves the indent.
		const maxName, maxPurpose, maxNote = 26, 22, 20
		rows := make([][]string, 0, len(p.Ingredients))
		for _, ing := range p.Ingredients {
			rows = append(rows, []string{
				truncate(ing.Name, maxName),
				truncate(ing.Purpose, maxPurpose),
				truncate(ingredientNote(ing), maxNote),
			})
		}
		t := table.New().
			Width(76).
			Border(lipgloss.NormalBorder()).
			BorderStyle(s.Border).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return s.TableHeader
				}
				if col == 2 && row >= 0 && row < len(rows) {
					return s.IngredientStyle(noteKind(rows[row][2]))
				}
				return s.TableCell
			}).
			Headers("INGREDIENT", "PURPOSE", "NOTE").
			Rows(rows...)
		fmt.Fprintln(w, t)
	}

	fmt.Fprintf(w, "    %s\n", wrap(pa.Analysis.Summary, 74, "    "))
}

func writeRoutine(w io.Writer, rt routine.Routine, s Styles) {
	fmt.Fprintln(w, s.Header.Render(fmt.Sprintf("--- %s Routine ---", rt.Time.Title())))
	fmt.Fprintln(w, s.SubHeader.Render(rt.Headline()))
	for _, st := range rt.Steps {
		fmt.Fprintf(w, "  %d. %s %s\n", st.Number,
			truncate(st.Product.DisplayName(), 56),
			s.Muted.Render("("+string(st.Product.Category)+")"))
	}
}

func writeConflicts(w io.Writer, r taxonomy.ConflictReport, s Styles) {
	fmt.Fprintln(w, s.Header.Render("--- Interactions ---"))
	if !r.HasConflicts {
		fmt.Fprintf(w, "%s %s\n", s.Pass.Render("OK"), wrap(r.Message, 76, "   "))
		return
	}
	fmt.Fprintf(w, "%s %s\n", s.Warn.Render("!!"), wrap(r.Message, 76, "   "))
	for _, p := range r.Pairs {
		fmt.Fprintf(w, "  %s: %s + %s %s\n",
			s.Warn.Render(p.Rule),
			truncate(p.First.DisplayName(), 20),
			truncate(p.Second.DisplayName(), 20),
			s.Muted.Render("("+routinesLabel(p.SharedRoutines)+")"))
	}
}

func ingredientNote(ing taxonomy.Ingredient) string {
	switch {
	case ing.Concern != "" && !ing.Beneficial:
		return noteConcern + ": " + ing.Concern
	case ing.Beneficial:
		return noteBeneficial
	default:
		return "-"
	}
}

func noteKind(note string) string {
	if strings.HasPrefix(note, noteConcern) {
		return noteConcern
	}
	return note
}

func routinesLabel(ts []taxonomy.TimeOfDay) string {
	if len(ts) == 0 {
		return "unassigned"
	}
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

// wrap breaks text on spaces so no line exceeds width. Continuation
// lines start with indent.
func wrap(text string, width int, indent string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	line := 0
	for i, word := range words {
		if i > 0 {
			if line+1+len(word) > width {
				b.WriteString("\n" + indent)
				line = 0
			} else {
				b.WriteByte(' ')
				line++
			}
		}
		b.WriteString(word)
		line += len(word)
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
