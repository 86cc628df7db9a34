package tui

import (
	"fmt"
	"strings"

	"github.com/astralhq/polaris/internal/score"
)

// ListView is a navigable list of scored tasks in ranked order.
type ListView struct {
	Tasks  []score.ScoredTask
	Cursor int
	Width  int
}

// NewListView creates a list over the given ranked tasks.
func NewListView(tasks []score.ScoredTask, width int) *ListView {
	return &ListView{Tasks: tasks, Width: width}
}

// View renders the list with a cursor indicator and band-colored scores.
func (v *ListView) View() string {
	if len(v.Tasks) == 0 {
		return styleHint.Render("(no tasks)")
	}

	available := v.Width - 12 // indicator + score column + padding
	if available < 10 {
		available = 10
	}

	var b strings.Builder
	for i, st := range v.Tasks {
		indicator := "  "
		title := st.Title
		if len(title) > available {
			title = title[:available-1] + "…"
		}
		if i == v.Cursor {
			indicator = styleCursor.Render("▸") + " "
			title = styleTitle.Render(title)
		}

		b.WriteString(indicator)
		b.WriteString(scoreStyle(st.Score).Render(fmt.Sprintf("%.2f", st.Score)))
		b.WriteString("  ")
		b.WriteString(title)
		if i < len(v.Tasks)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// MoveUp moves the cursor up, wrapping at the top.
func (v *ListView) MoveUp() {
	if len(v.Tasks) == 0 {
		return
	}
	v.Cursor--
	if v.Cursor < 0 {
		v.Cursor = len(v.Tasks) - 1
	}
}

// MoveDown moves the cursor down, wrapping at the bottom.
func (v *ListView) MoveDown() {
	if len(v.Tasks) == 0 {
		return
	}
	v.Cursor++
	if v.Cursor >= len(v.Tasks) {
		v.Cursor = 0
	}
}

// Selected returns the task under the cursor. Returns a zero value when the
// list is empty.
func (v *ListView) Selected() score.ScoredTask {
	if len(v.Tasks) == 0 {
		return score.ScoredTask{}
	}
	return v.Tasks[v.Cursor]
}
