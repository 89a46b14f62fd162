package format

import (
	"io"
	"os"
	"strings"

	"calpick/internal/calendar"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// newRenderer follows the writer's color support; NO_COLOR forces plain text.
func newRenderer(w io.Writer) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// cellLabel adds plain-text markers so state survives without colors:
// [12] selected, (12) disabled, 12* today.
func cellLabel(it calendar.Item) string {
	label := it.Label
	if it.Today {
		label += "*"
	}
	switch {
	case it.Selected:
		return "[" + label + "]"
	case it.Disabled:
		return "(" + label + ")"
	}
	return label
}

// RenderGrid draws g as a bordered table with the title centered above it.
func RenderGrid(w io.Writer, g calendar.Grid) string {
	r := newRenderer(w)
	base := r.NewStyle().Padding(0, 1).Align(lipgloss.Center)
	muted := base.Foreground(lipgloss.AdaptiveColor{Light: "245", Dark: "240"})
	disabled := base.Faint(true).Strikethrough(true)
	selected := base.Bold(true).Reverse(true)
	header := base.Bold(true)

	rows := make([][]string, len(g.Items))
	for i, row := range g.Items {
		rows[i] = make([]string, len(row))
		for j, it := range row {
			rows[i][j] = cellLabel(it)
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "250", Dark: "238"})).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if row < 0 || row >= len(g.Items) || col >= len(g.Items[row]) {
				return base
			}
			it := g.Items[row][col]
			switch {
			case it.Selected:
				return selected
			case it.Disabled:
				return disabled
			case it.OutsidePeriod:
				return muted
			}
			return base
		})
	if len(g.Headers) > 0 {
		t = t.Headers(g.Headers...)
	}
	body := t.String()

	title := g.Title
	nav := "<"
	if !g.CanPrev {
		nav = " "
	}
	next := ">"
	if !g.CanNext {
		next = " "
	}
	first, _, _ := strings.Cut(body, "\n")
	inner := ansi.StringWidth(first) - ansi.StringWidth(nav) - ansi.StringWidth(next)
	if inner < ansi.StringWidth(title) {
		inner = ansi.StringWidth(title)
	}
	head := nav + r.NewStyle().Bold(true).Width(inner).Align(lipgloss.Center).Render(title) + next
	return head + "\n" + body
}
