package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/unbound-force/dermis/internal/report"
	"github.com/unbound-force/dermis/internal/routine"
)

// keyMap defines keybindings for the interactive TUI.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Next     key.Binding
	Prev     key.Binding
	Quit     key.Binding
	Help     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Up, k.Down, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Next, k.Prev},
		{k.Quit, k.Help},
	}
}

var defaultKeyMap = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("^/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("v/j", "down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
	Next:     key.NewBinding(key.WithKeys("tab", "l", "right"), key.WithHelp("tab", "next view")),
	Prev:     key.NewBinding(key.WithKeys("shift+tab", "h", "left"), key.WithHelp("shift+tab", "previous view")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

// Styles for the TUI.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	tabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("241"))

	activeTabStyle = tabStyle.
			Bold(true).
			Foreground(lipgloss.Color("63")).
			Underline(true)

	tuiHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	tuiBorderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63"))
)

// page is one browsable view.
type page struct {
	title   string
	content string
}

// analyzePages renders an analyze report as an overview page plus one
// page per routine and one for interactions.
func analyzePages(rpt *report.AnalyzeReport, threshold int) []page {
	pages := []page{{title: "Products", content: renderOverview(rpt, threshold)}}
	for _, rt := range rpt.Routines {
		pages = append(pages, routinePage(rt))
	}

	var buf bytes.Buffer
	_ = report.WriteConflictsText(&buf, rpt.Conflicts)
	pages = append(pages, page{title: "Interactions", content: buf.String()})
	return pages
}

// routinePages renders one page per routine.
func routinePages(routines []routine.Routine) []page {
	pages := make([]page, 0, len(routines))
	for _, rt := range routines {
		pages = append(pages, routinePage(rt))
	}
	return pages
}

func routinePage(rt routine.Routine) page {
	var buf bytes.Buffer
	_ = report.WriteRoutineText(&buf, rt)
	return page{title: rt.Time.Title(), content: buf.String()}
}

// renderOverview summarizes every product in a single table.
func renderOverview(rpt *report.AnalyzeReport, threshold int) string {
	var sb strings.Builder

	concerning := 0
	for _, pa := range rpt.Products {
		concerning += len(pa.Analysis.Concerning)
	}
	sb.WriteString(titleStyle.Render(
		fmt.Sprintf("Dermis Analysis: %d product(s), %d concerning ingredient(s)",
			len(rpt.Products), concerning)))
	sb.WriteString("\n")

	if len(rpt.Products) == 0 {
		sb.WriteString(statusStyle.Render("No products in the collection."))
		sb.WriteString("\n")
		return sb.String()
	}

	s := report.DefaultStyles()
	rows := make([][]string, 0, len(rpt.Products))
	scores := make([]int, 0, len(rpt.Products))
	for _, pa := range rpt.Products {
		name := []rune(pa.Product.DisplayName())
		if len(name) > 40 {
			name = append(name[:37], []rune("...")...)
		}
		rows = append(rows, []string{
			string(name),
			string(pa.Product.Category),
			fmt.Sprintf("%d", pa.SafetyScore),
			fmt.Sprintf("%d", len(pa.Analysis.Concerning)),
		})
		scores = append(scores, pa.SafetyScore)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tuiBorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tuiHeaderStyle
			}
			if col == 2 && row >= 0 && row < len(scores) {
				return s.ScoreStyle(scores[row], threshold)
			}
			return lipgloss.NewStyle()
		}).
		Headers("PRODUCT", "CATEGORY", "SCORE", "CONCERNS").
		Rows(rows...)

	sb.WriteString(t.String())
	sb.WriteString("\n")
	return sb.String()
}

// browserModel is the Bubble Tea model for paging through views.
type browserModel struct {
	pages    []page
	current  int
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	ready    bool
}

func newBrowserModel(pages []page) browserModel {
	if len(pages) == 0 {
		pages = []page{{title: "Empty", content: "Nothing to show."}}
	}
	return browserModel{
		pages: pages,
		help:  help.New(),
		keys:  defaultKeyMap,
	}
}

func (m browserModel) Init() tea.Cmd {
	return nil
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 2
		footerHeight := 2
		verticalMargin := headerHeight + footerHeight

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-verticalMargin)
			m.viewport.SetContent(m.pages[m.current].content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - verticalMargin
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Next):
			m.show((m.current + 1) % len(m.pages))
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.show((m.current + len(m.pages) - 1) % len(m.pages))
			return m, nil
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *browserModel) show(i int) {
	m.current = i
	if m.ready {
		m.viewport.SetContent(m.pages[i].content)
		m.viewport.GotoTop()
	}
}

func (m browserModel) tabs() string {
	parts := make([]string, len(m.pages))
	for i, p := range m.pages {
		if i == m.current {
			parts[i] = activeTabStyle.Render(p.title)
		} else {
			parts[i] = tabStyle.Render(p.title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m browserModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	footer := statusStyle.Render(
		fmt.Sprintf(" %3.f%% ", m.viewport.ScrollPercent()*100)) +
		" " + m.help.View(m.keys)

	return m.tabs() + "\n\n" + m.viewport.View() + "\n" + footer
}

// runBrowser launches the Bubble Tea TUI for paging through views.
func runBrowser(pages []page) error {
	p := tea.NewProgram(newBrowserModel(pages), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
