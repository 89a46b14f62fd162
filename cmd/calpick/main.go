package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strings"

	"calpick/internal/cli"

	tea "github.com/charmbracelet/bubbletea"
)

var reDateArg = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}([ T].*)?$`)

func isDateArg(s string) bool {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "today", "now":
		return true
	}
	return reDateArg.MatchString(s)
}

func rewriteDirectDateArgs(argv []string) []string {
	// Convenience: `calpick 2024-03-05` works like `calpick pick --selected 2024-03-05`.
	//
	// Cobra treats the first non-flag token as a subcommand, so argv is rewritten
	// before parsing. Persistent flags may come first, so look for the first
	// positional token rather than argv[1].
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":    true,
		"--locale": true,
		"--kind":   true,
		"--format": true,
	}

	rewrite := func(i int) []string {
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:i]...)
		out = append(out, "pick", "--selected")
		out = append(out, argv[i:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isDateArg(argv[i+1]) {
				out := make([]string, 0, len(argv)+2)
				out = append(out, argv[:i]...)
				out = append(out, "pick", "--selected", argv[i+1])
				return append(out, argv[i+2:]...)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}
		if isDateArg(a) {
			return rewrite(i)
		}
		return argv
	}
	return argv
}

func main() {
	// Debug logging goes to a file; the TUI owns the terminal.
	if len(os.Getenv("CALPICK_DEBUG")) > 0 {
		f, err := tea.LogToFile("calpick-debug.log", "debug")
		if err != nil {
			fmt.Fprintln(os.Stderr, "fatal:", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	os.Args = rewriteDirectDateArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
