package cli

import (
	"errors"
	"strings"
	"time"

	"calpick/internal/locale"

	"github.com/spf13/cobra"
)

// resolvePattern returns pattern, or the locale's default for --kind when
// pattern is empty.
func resolvePattern(app *App, values locale.Values, pattern string) (string, error) {
	if strings.TrimSpace(pattern) != "" {
		return pattern, nil
	}
	kind := app.Kind
	if kind == "" {
		kind = "date"
	}
	p := values.Formats.For(kind)
	if p == "" {
		return "", errUsage("no default pattern for kind %q", kind)
	}
	return p, nil
}

func newFmtCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt <date> [pattern]",
		Short: "Format a date with a locale pattern (default: the locale's pattern for --kind)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := app.values("")
			if err != nil {
				return writeErr(cmd, err)
			}
			d, err := parseDateTime(args[0])
			if err != nil {
				return writeErr(cmd, usageError{msg: err.Error()})
			}
			var pattern string
			if len(args) == 2 {
				pattern = args[1]
			}
			if pattern, err = resolvePattern(app, values, pattern); err != nil {
				return writeErr(cmd, err)
			}
			p := locale.NewParser(values)
			if err := p.Validate(pattern); err != nil {
				return writeErr(cmd, usageError{msg: err.Error()})
			}
			out := p.Format(d, pattern)
			if app.Format == "text" {
				return writeOut(cmd, app, out)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"locale":    values.Name,
				"pattern":   pattern,
				"date":      d.Format(time.RFC3339),
				"formatted": out,
			}})
		},
	}
	return cmd
}

func newParseCmd(app *App) *cobra.Command {
	var base string

	cmd := &cobra.Command{
		Use:   "parse <text> [pattern]",
		Short: "Parse text with a locale pattern, filling missing fields from --base",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := app.values("")
			if err != nil {
				return writeErr(cmd, err)
			}
			var pattern string
			if len(args) == 2 {
				pattern = args[1]
			}
			if pattern, err = resolvePattern(app, values, pattern); err != nil {
				return writeErr(cmd, err)
			}
			b := nowFunc()
			if strings.TrimSpace(base) != "" {
				if b, err = parseDateTime(base); err != nil {
					return writeErr(cmd, errUsage("--base: %v", err))
				}
			}

			p := locale.NewParser(values)
			t, err := p.Parse(args[0], pattern, b)
			if err != nil {
				if errors.Is(err, locale.ErrBadPattern) {
					return writeErr(cmd, usageError{msg: err.Error()})
				}
				return writeErr(cmd, err)
			}
			if app.Format == "text" {
				return writeOut(cmd, app, t.Format(time.RFC3339))
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"locale":  values.Name,
				"pattern": pattern,
				"input":   args[0],
				"date":    t.Format(time.RFC3339),
			}})
		},
	}
	cmd.Flags().StringVar(&base, "base", "", "Base date for fields the pattern omits (default: now)")
	return cmd
}
