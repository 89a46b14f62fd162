package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"calpick/internal/calendar"
	"calpick/internal/format"
	"calpick/internal/locale"
	"calpick/internal/store"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Locale     string
	Kind       string
	PrettyJSON bool
	Format     string

	cfg *store.GlobalConfig
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "calpick",
		Short:        "Calendar date/time picker (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Pick a date interactively
  calpick

  # Pick a date and time, printing the result in the locale's format
  calpick pick --kind datetime --locale en-GB

  # Print the day grid for a month
  calpick grid --view day --date 2024-03-01 --format text

  # Drive a persisted picker from a script
  calpick session reset --kind date
  calpick session change 2025-05-20 year
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive picker.
			if len(args) == 0 {
				return runPick(cmd, app, pickOptions{})
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := store.LoadConfig()
		if err != nil {
			return writeErr(cmd, fmt.Errorf("load config: %w", err))
		}
		app.cfg = cfg
		if app.Kind == "" {
			app.Kind = cfg.Kind
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("CALPICK_DIR", ""), "Session store dir (default ~/.calpick/sessions)")
	cmd.PersistentFlags().StringVar(&app.Locale, "locale", envOr("CALPICK_LOCALE", ""), "Locale name (e.g. en-US, en-GB, de-DE)")
	cmd.PersistentFlags().StringVar(&app.Kind, "kind", envOr("CALPICK_KIND", ""), "Picker kind (year|month|date|datetime|time)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("CALPICK_FORMAT", "json"), "Output format (json|edn|text)")

	cmd.AddCommand(newPickCmd(app))
	cmd.AddCommand(newGridCmd(app))
	cmd.AddCommand(newSessionCmd(app))
	cmd.AddCommand(newFmtCmd(app))
	cmd.AddCommand(newParseCmd(app))
	cmd.AddCommand(newLocaleCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

func (app *App) config() *store.GlobalConfig {
	if app.cfg == nil {
		app.cfg = &store.GlobalConfig{}
	}
	return app.cfg
}

func (app *App) values(name string) (locale.Values, error) {
	if strings.TrimSpace(name) == "" {
		name = app.Locale
	}
	return app.config().ResolveLocale(name)
}

func (app *App) store() (store.Store, error) {
	dir := app.Dir
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return store.Store{}, err
		}
		dir = d
	}
	return store.Store{Dir: dir}, nil
}

// defaultBounds parses the config file's minDate/maxDate.
func (app *App) defaultBounds() (min, max *time.Time, err error) {
	cfg := app.config()
	if strings.TrimSpace(cfg.MinDate) != "" {
		t, err := parseDateTime(cfg.MinDate)
		if err != nil {
			return nil, nil, fmt.Errorf("config minDate: %w", err)
		}
		min = &t
	}
	if strings.TrimSpace(cfg.MaxDate) != "" {
		t, err := parseDateTime(cfg.MaxDate)
		if err != nil {
			return nil, nil, fmt.Errorf("config maxDate: %w", err)
		}
		max = &t
	}
	return min, max, nil
}

// serviceSpec is everything needed to build a calendar service from flags.
type serviceSpec struct {
	kind     string
	values   locale.Values
	min, max *time.Time
	selected *time.Time
}

// specFromFlags resolves --locale/--kind plus bound and selection flags over
// the config file's defaults.
func (app *App) specFromFlags(min, max, selected string) (serviceSpec, error) {
	values, err := app.values("")
	if err != nil {
		return serviceSpec{}, err
	}
	spec := serviceSpec{kind: app.Kind, values: values}
	if spec.min, spec.max, err = app.defaultBounds(); err != nil {
		return serviceSpec{}, err
	}
	if t, err := parseOptionalDateTime(min); err != nil {
		return serviceSpec{}, errUsage("--min: %v", err)
	} else if t != nil {
		spec.min = t
	}
	if t, err := parseOptionalDateTime(max); err != nil {
		return serviceSpec{}, errUsage("--max: %v", err)
	} else if t != nil {
		spec.max = t
	}
	if spec.selected, err = parseOptionalDateTime(selected); err != nil {
		return serviceSpec{}, errUsage("--selected: %v", err)
	}
	return spec, nil
}

func newService(spec serviceSpec) (*calendar.Service, error) {
	cfg, err := calendar.ConfigFor(spec.kind)
	if err != nil {
		return nil, usageError{msg: err.Error()}
	}
	opts := []calendar.Option{
		calendar.WithClock(nowFunc),
		calendar.WithBounds(spec.min, spec.max),
	}
	if spec.selected != nil {
		opts = append(opts, calendar.WithSelected(*spec.selected))
	}
	return calendar.NewService(cfg, spec.values, opts...), nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

// writeData wraps v in the {"data": ...} envelope; text output renders v as-is.
func writeData(cmd *cobra.Command, app *App, v any) error {
	if app.Format == "text" {
		return writeOut(cmd, app, v)
	}
	return writeOut(cmd, app, map[string]any{"data": v})
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
