package cli

import (
	"time"

	"calpick/internal/locale"
	"calpick/internal/tui"

	"github.com/spf13/cobra"
)

type pickOptions struct {
	min      string
	max      string
	selected string
}

type pickResult struct {
	Kind      string `json:"kind"`
	Locale    string `json:"locale"`
	Date      string `json:"date"`
	Formatted string `json:"formatted"`
}

func newPickCmd(app *App) *cobra.Command {
	var o pickOptions

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Open the interactive picker and print the chosen date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPick(cmd, app, o)
		},
	}
	cmd.Flags().StringVar(&o.min, "min", "", "Minimum selectable date")
	cmd.Flags().StringVar(&o.max, "max", "", "Maximum selectable date")
	cmd.Flags().StringVar(&o.selected, "selected", "", "Preselected date")
	return cmd
}

func runPick(cmd *cobra.Command, app *App, o pickOptions) error {
	spec, err := app.specFromFlags(o.min, o.max, o.selected)
	if err != nil {
		return writeErr(cmd, err)
	}
	values := spec.values

	svc, err := newService(spec)
	if err != nil {
		return writeErr(cmd, err)
	}
	kind := svc.Config().Kind
	pattern := values.Formats.For(kind)

	var prefs tui.Preferences
	if t := app.config().TUI; t != nil {
		prefs = tui.Preferences{Theme: t.Theme, Glyphs: t.Glyphs}
	}
	d, err := tui.Run(svc, pattern, prefs)
	if err != nil {
		return writeErr(cmd, err)
	}
	if d == nil {
		// Cancelled.
		return nil
	}

	formatted := locale.NewParser(values).Format(*d, pattern)
	if app.Format == "text" {
		return writeOut(cmd, app, formatted)
	}
	return writeOut(cmd, app, map[string]any{"data": pickResult{
		Kind:      kind,
		Locale:    values.Name,
		Date:      d.Format(time.RFC3339),
		Formatted: formatted,
	}})
}
