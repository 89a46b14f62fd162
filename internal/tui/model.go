package tui

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"calpick/internal/calendar"
	"calpick/internal/locale"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type pickerModel struct {
	svc     *calendar.Service
	nav     *calendar.Navigator
	parser  *locale.Parser
	pattern string

	keys  keyMap
	help  help.Model
	input textinput.Model

	width  int
	height int

	items    []calendar.Item
	cursor   int
	entering bool
	status   string
	isError  bool

	result *time.Time
}

func newPickerModel(svc *calendar.Service, pattern string) (pickerModel, error) {
	nav, err := calendar.NewNavigator(svc)
	if err != nil {
		return pickerModel{}, err
	}
	parser := locale.NewParser(svc.Locale())
	if err := parser.Validate(pattern); err != nil {
		return pickerModel{}, err
	}

	// Typed entries replace the selection; reopen the final view around it.
	svc.OnManualUpdate(func() {
		if sel := svc.SelectedDate(); sel != nil {
			svc.SetCurrentDate(*sel)
		}
		svc.Reset()
		if err := nav.Sync(); err != nil {
			log.Printf("SYNC: %v", err)
		}
	})

	in := textinput.New()
	in.Placeholder = pattern
	in.Prompt = "date: "
	in.CharLimit = 64
	in.Width = 32

	m := pickerModel{
		svc:     svc,
		nav:     nav,
		parser:  parser,
		pattern: pattern,
		keys:    defaultKeyMap(),
		help:    help.New(),
		input:   in,
	}
	m.reload()
	m.cursor = m.initialCursor()
	return m, nil
}

func (m pickerModel) Init() tea.Cmd { return nil }

// Result is the committed date, or nil when the picker was cancelled.
func (m pickerModel) Result() *time.Time { return m.result }

func (m *pickerModel) reload() {
	m.items = m.nav.Items()
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// initialCursor prefers the selected cell, then today, then the cell holding
// the service's current date.
func (m pickerModel) initialCursor() int {
	for i, it := range m.items {
		if it.Selected {
			return i
		}
	}
	for i, it := range m.items {
		if it.Today && !it.OutsidePeriod {
			return i
		}
	}
	return m.indexAtOrBefore(m.svc.CurrentDate())
}

func (m pickerModel) indexAtOrBefore(t time.Time) int {
	idx := 0
	for i, it := range m.items {
		if it.Date.After(t) {
			break
		}
		idx = i
	}
	return idx
}

func (m pickerModel) columns() int { return m.nav.View().Columns() }

func (m *pickerModel) setStatus(msg string, isErr bool) {
	m.status = msg
	m.isError = isErr
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.entering {
			return m.updateEntry(msg)
		}
		return m.updateGrid(msg)
	}
	return m, nil
}

func (m pickerModel) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.setStatus("", false)
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Left):
		m.move(-1)
	case key.Matches(msg, m.keys.Right):
		m.move(1)
	case key.Matches(msg, m.keys.Up):
		m.move(-m.columns())
	case key.Matches(msg, m.keys.Down):
		m.move(m.columns())

	case key.Matches(msg, m.keys.Prev):
		m.page(-1)
	case key.Matches(msg, m.keys.Next):
		m.page(1)

	case key.Matches(msg, m.keys.Select):
		return m.selectCursor()

	case key.Matches(msg, m.keys.ZoomOut):
		if err := m.nav.ZoomOut(); err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.reload()
		m.cursor = m.indexAtOrBefore(m.svc.CurrentDate())

	case key.Matches(msg, m.keys.Today):
		m.nav.SetRenderedDate(m.svc.Now())
		m.reload()
		m.cursor = m.indexAtOrBefore(m.svc.Now())

	case key.Matches(msg, m.keys.Entry):
		m.entering = true
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// move shifts the cursor by delta cells, paging when it leaves the grid. The
// column is kept when paging vertically.
func (m *pickerModel) move(delta int) {
	n := len(m.items)
	next := m.cursor + delta
	switch {
	case next < 0:
		if !m.nav.CanMovePrev() {
			return
		}
		m.nav.PrevDateRange()
		m.reload()
		m.cursor = next + n
	case next >= n:
		if !m.nav.CanMoveNext() {
			return
		}
		m.nav.NextDateRange()
		m.reload()
		m.cursor = next - n
	default:
		m.cursor = next
	}
}

func (m *pickerModel) page(dir int) {
	if dir < 0 {
		if !m.nav.CanMovePrev() {
			return
		}
		m.nav.PrevDateRange()
	} else {
		if !m.nav.CanMoveNext() {
			return
		}
		m.nav.NextDateRange()
	}
	m.reload()
}

func (m pickerModel) selectCursor() (tea.Model, tea.Cmd) {
	if len(m.items) == 0 {
		return m, nil
	}
	item := m.items[m.cursor]
	wasFinal := m.svc.InFinalView()
	if err := m.nav.Select(item); err != nil {
		if errors.Is(err, calendar.ErrItemDisabled) {
			m.setStatus(fmt.Sprintf("%s is out of range", item.Label), true)
			return m, nil
		}
		m.setStatus(err.Error(), true)
		return m, nil
	}
	if wasFinal {
		d := m.svc.CurrentDate()
		m.result = &d
		return m, tea.Quit
	}
	m.reload()
	m.cursor = m.indexAtOrBefore(item.Date)
	return m, nil
}

func (m pickerModel) updateEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.entering = false
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		return m.commitEntry()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m pickerModel) commitEntry() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		m.entering = false
		m.input.Blur()
		return m, nil
	}
	d, err := m.parser.Parse(text, m.pattern, m.svc.CurrentDate())
	if err != nil {
		m.setStatus(fmt.Sprintf("cannot read %q as %s", text, m.pattern), true)
		return m, nil
	}
	c := calendar.NewComparer(m.svc.Config().Precision, d)
	if !c.IsBetween(m.svc.MinDate(), m.svc.MaxDate()) {
		m.setStatus(fmt.Sprintf("%s is out of range", m.parser.Format(d, m.pattern)), true)
		return m, nil
	}

	m.entering = false
	m.input.Blur()
	m.svc.SetSelectedDate(&d)
	m.reload()
	m.cursor = m.initialCursor()
	m.setStatus("press enter to confirm "+m.parser.Format(d, m.pattern), false)
	return m, nil
}
