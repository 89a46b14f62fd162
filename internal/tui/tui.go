package tui

import (
	"fmt"
	"time"

	"calpick/internal/calendar"

	tea "github.com/charmbracelet/bubbletea"
)

// Preferences are the optional appearance settings from config.json.
type Preferences struct {
	Theme  string
	Glyphs string
}

// Run opens the interactive picker and returns the committed date, or nil if
// the user quit without choosing.
func Run(svc *calendar.Service, pattern string, prefs Preferences) (*time.Time, error) {
	applyThemePreference(prefs.Theme)
	applyColorProfilePreference()
	applyGlyphPreference(prefs.Glyphs)

	m, err := newPickerModel(svc, pattern)
	if err != nil {
		return nil, err
	}
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return nil, err
	}
	fm, ok := final.(pickerModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model %T", final)
	}
	return fm.Result(), nil
}
