package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

type cellState struct {
	cursor   bool
	selected bool
	disabled bool
	outside  bool
	today    bool
}

func (m pickerModel) cellWidth(headers []string) int {
	w := 0
	for _, it := range m.items {
		w = max(w, ansi.StringWidth(it.Label))
	}
	for _, h := range headers {
		w = max(w, ansi.StringWidth(h))
	}
	return w
}

func (m pickerModel) renderTitle(width int) string {
	prev, next := glyphPrev(), glyphNext()
	if !m.nav.CanMovePrev() {
		prev = " "
	}
	if !m.nav.CanMoveNext() {
		next = " "
	}
	title := styleTitle().Render(m.nav.View().Title(m.nav.RenderedDate()))
	inner := max(0, width-2*ansi.StringWidth(prev)-2)
	return prev + " " + lipgloss.PlaceHorizontal(inner, lipgloss.Center, title) + " " + next
}

func (m pickerModel) renderGrid() string {
	grid := m.nav.Grid()
	cols := grid.Columns
	cw := m.cellWidth(grid.Headers)

	var rows []string
	if len(grid.Headers) > 0 {
		var hs []string
		for _, h := range grid.Headers {
			hs = append(hs, styleMuted().Padding(0, 1).Width(cw+2).Align(lipgloss.Center).Render(h))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, hs...))
	}
	for r := 0; r*cols < len(m.items); r++ {
		var cells []string
		for c := 0; c < cols && r*cols+c < len(m.items); c++ {
			i := r*cols + c
			it := m.items[i]
			st := styleCell(cellState{
				cursor:   i == m.cursor,
				selected: it.Selected,
				disabled: it.Disabled,
				outside:  it.OutsidePeriod,
				today:    it.Today,
			})
			cells = append(cells, st.Width(cw+2).Align(lipgloss.Center).Render(it.Label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.JoinVertical(lipgloss.Left, m.renderTitle(lipgloss.Width(body)), body)
}

func (m pickerModel) View() string {
	var b strings.Builder
	grid := m.renderGrid()
	b.WriteString(grid)
	b.WriteString("\n")
	b.WriteString(styleMuted().Render(strings.Repeat(glyphHRule(), lipgloss.Width(grid))))
	b.WriteString("\n")

	if m.entering {
		b.WriteString(lipgloss.NewStyle().Background(colorInputBg).Render(m.input.View()))
		b.WriteString("\n")
	}
	if m.status != "" {
		if m.isError {
			b.WriteString(styleError().Render(m.status))
		} else {
			b.WriteString(styleMuted().Render(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))

	out := b.String()
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, out)
	}
	return out
}
