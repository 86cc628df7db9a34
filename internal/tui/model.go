// Package tui is an interactive terminal browser over a scored task set:
// a ranked list with a scrollable per-task detail panel.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/astralhq/polaris/internal/rank"
)

// Model is the root bubbletea model for the task browser.
type Model struct {
	List   *ListView
	Detail DetailPanel
	Keys   KeyMap
	Cycles [][]string

	width      int
	height     int
	showDetail bool
}

// NewModel builds the browser over an analysis, tasks in ranked order.
func NewModel(analysis *rank.Analysis) Model {
	return Model{
		List:   NewListView(rank.Ranked(analysis), 80),
		Detail: NewDetailPanel(80, 12),
		Keys:   DefaultKeyMap(),
		Cycles: analysis.Cycles,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.List.Width = msg.Width
		m.Detail.SetSize(msg.Width, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.Keys.Back):
			m.showDetail = false
			return m, nil

		case key.Matches(msg, m.Keys.Enter):
			if len(m.List.Tasks) > 0 {
				m.Detail.SetTask(m.List.Selected())
				m.showDetail = true
			}
			return m, nil

		case key.Matches(msg, m.Keys.Up):
			if m.showDetail {
				m.Detail.Update(msg)
			} else {
				m.List.MoveUp()
			}
			return m, nil

		case key.Matches(msg, m.Keys.Down):
			if m.showDetail {
				m.Detail.Update(msg)
			} else {
				m.List.MoveDown()
			}
			return m, nil
		}
	}

	if m.showDetail {
		m.Detail.Update(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Polaris"))
	b.WriteString("\n\n")

	if m.showDetail {
		b.WriteString(m.Detail.View())
		b.WriteString("\n\n")
		b.WriteString(styleHint.Render("↑↓ scroll · esc back · q quit"))
		return b.String()
	}

	b.WriteString(m.List.View())
	b.WriteString("\n")
	if len(m.Cycles) > 0 {
		b.WriteString("\n")
		b.WriteString(styleCycleWarn.Render(fmt.Sprintf("⚠ %d dependency cycle%s detected", len(m.Cycles), plural(len(m.Cycles)))))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styleHint.Render("↑↓ navigate · enter detail · q quit"))
	return b.String()
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
