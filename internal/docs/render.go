package docs

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

var (
	rendererMu sync.Mutex
	// Keyed by style + width. Fixed styles only: WithAutoStyle queries the
	// terminal and can block.
	renderers = map[string]*glamour.TermRenderer{}
)

// Style picks a glamour standard style: "notty" under NO_COLOR, otherwise
// CALPICK_TUI_THEME (light|dark), defaulting to dark.
func Style() string {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return "notty"
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("CALPICK_TUI_THEME"))) {
	case "light":
		return "light"
	default:
		return "dark"
	}
}

// Render renders markdown for a terminal. On renderer errors it returns md
// unchanged.
func Render(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}
	style := Style()
	key := style + ":" + strconv.Itoa(width)

	rendererMu.Lock()
	r := renderers[key]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			rendererMu.Unlock()
			return md
		}
		renderers[key] = rr
		r = rr
	}
	rendererMu.Unlock()

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
