package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/astralhq/polaris/internal/score"
)

// DetailPanel wraps a viewport showing one task's full breakdown.
type DetailPanel struct {
	viewport viewport.Model
	title    string
}

// NewDetailPanel creates a detail panel with the given dimensions.
func NewDetailPanel(width, height int) DetailPanel {
	vp := viewport.New(width, height)
	vp.SetContent("")
	return DetailPanel{viewport: vp}
}

// SetSize updates the viewport dimensions.
func (d *DetailPanel) SetSize(width, height int) {
	d.viewport.Width = width
	d.viewport.Height = height
}

// SetTask fills the panel with the task's score breakdown.
func (d *DetailPanel) SetTask(st score.ScoredTask) {
	d.title = st.Title

	var b strings.Builder
	fmt.Fprintf(&b, "Score: %s\n", scoreStyle(st.Score).Render(fmt.Sprintf("%.4f", st.Score)))
	if st.Metadata.DueDate != nil {
		fmt.Fprintf(&b, "Due: %s\n", *st.Metadata.DueDate)
	} else {
		b.WriteString("Due: none\n")
	}
	fmt.Fprintf(&b, "Importance: %d/10\n", st.Metadata.Importance)
	fmt.Fprintf(&b, "Estimated hours: %g\n", st.Metadata.EstimatedHours)
	if len(st.Metadata.Dependencies) > 0 {
		fmt.Fprintf(&b, "Depends on: %s\n", strings.Join(st.Metadata.Dependencies, ", "))
	}

	b.WriteString(styleDetailSep.Render(strings.Repeat("─", 40)))
	b.WriteString("\n")
	for _, reason := range strings.Split(st.Explanation, "; ") {
		fmt.Fprintf(&b, "• %s\n", reason)
	}

	d.viewport.SetContent(b.String())
	d.viewport.GotoTop()
}

// Update handles viewport scroll messages.
func (d *DetailPanel) Update(msg tea.Msg) {
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	_ = cmd
}

// View renders the panel with its title bar.
func (d *DetailPanel) View() string {
	header := styleTitle.Render(d.title)
	return header + "\n\n" + d.viewport.View()
}
