package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette helpers. AdaptiveColor keeps the grid readable on light and dark
// backgrounds; faint styling is only applied on dark ones.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted    lipgloss.TerminalColor = ac("240", "243")
	colorSubtle   lipgloss.TerminalColor = ac("248", "239")
	colorCursorBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorCursorFg lipgloss.TerminalColor = ac("235", "255")
	colorAccent   lipgloss.TerminalColor = ac("27", "62")
	colorAccentFg lipgloss.TerminalColor = ac("255", "235")
	colorToday    lipgloss.TerminalColor = ac("166", "214")
	colorErrorFg  lipgloss.TerminalColor = ac("160", "203")
	colorTitleFg  lipgloss.TerminalColor = ac("235", "252")
	colorInputBg  lipgloss.TerminalColor = ac("254", "234")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleTitle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorTitleFg)
}

func styleCell(it cellState) lipgloss.Style {
	st := lipgloss.NewStyle().Padding(0, 1)
	switch {
	case it.cursor:
		st = st.Background(colorCursorBg).Foreground(colorCursorFg).Bold(true)
	case it.selected:
		st = st.Background(colorAccent).Foreground(colorAccentFg).Bold(true)
	case it.disabled:
		st = st.Foreground(colorSubtle).Strikethrough(true)
	case it.outside:
		st = faintIfDark(st.Foreground(colorMuted))
	}
	if it.cursor && it.selected {
		st = st.Foreground(colorAccent)
	}
	if it.today {
		st = st.Underline(true)
		if !it.cursor && !it.selected {
			st = st.Foreground(colorToday)
		}
	}
	return st
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorErrorFg)
}

// applyColorProfilePreference sets Lip Gloss's color profile for the TUI.
//
// termenv.EnvColorProfile honors CLICOLOR too, which can drop colors in a TUI;
// only NO_COLOR is honored here.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	// Trust TERM/COLORTERM when the detector under-reports.
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && (profile == termenv.Ascii || profile == termenv.ANSI) {
		profile = termenv.ANSI256
	}

	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures background detection.
//
// Priority:
// 1) CALPICK_TUI_THEME=light|dark|auto
// 2) configured theme (config.json "tui.theme")
// 3) CALPICK_TUI_DARKBG=true|false
// 4) COLORFGBG heuristic ("fg;bg")
func applyThemePreference(configured string) {
	for _, v := range []string{os.Getenv("CALPICK_TUI_THEME"), configured} {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "light":
			lipgloss.SetHasDarkBackground(false)
			return
		case "dark":
			lipgloss.SetHasDarkBackground(true)
			return
		}
	}

	if v := strings.TrimSpace(os.Getenv("CALPICK_TUI_DARKBG")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			lipgloss.SetHasDarkBackground(b)
			return
		}
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
