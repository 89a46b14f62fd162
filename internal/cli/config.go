package cli

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"calpick/internal/calendar"
	"calpick/internal/locale"
	"calpick/internal/store"

	"github.com/spf13/cobra"
)

// configSetters validate and apply one config.json key. An empty value clears it.
var configSetters = map[string]func(cfg *store.GlobalConfig, v string) error{
	"locale": func(cfg *store.GlobalConfig, v string) error {
		if v != "" {
			vals, err := locale.Lookup(v)
			if err != nil {
				return err
			}
			v = vals.Name
		}
		cfg.Locale = v
		return nil
	},
	"localeFile": func(cfg *store.GlobalConfig, v string) error {
		if v != "" {
			abs, err := filepath.Abs(v)
			if err != nil {
				return err
			}
			if _, err := locale.Load(abs, locale.Default()); err != nil {
				return err
			}
			v = abs
		}
		cfg.LocaleFile = v
		return nil
	},
	"kind": func(cfg *store.GlobalConfig, v string) error {
		v = strings.ToLower(v)
		if v != "" {
			if _, err := calendar.ConfigFor(v); err != nil {
				return err
			}
		}
		cfg.Kind = v
		return nil
	},
	"firstDayOfWeek": func(cfg *store.GlobalConfig, v string) error {
		if v == "" {
			cfg.FirstDayOfWeek = nil
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 6 {
			return fmt.Errorf("firstDayOfWeek must be 0..6 (0 = Sunday), got %q", v)
		}
		cfg.FirstDayOfWeek = &n
		return nil
	},
	"minDate": func(cfg *store.GlobalConfig, v string) error {
		if _, err := parseOptionalDateTime(v); err != nil {
			return err
		}
		cfg.MinDate = v
		return nil
	},
	"maxDate": func(cfg *store.GlobalConfig, v string) error {
		if _, err := parseOptionalDateTime(v); err != nil {
			return err
		}
		cfg.MaxDate = v
		return nil
	},
	"tui.theme": func(cfg *store.GlobalConfig, v string) error {
		switch v {
		case "", "light", "dark", "auto":
		default:
			return fmt.Errorf("tui.theme must be light|dark|auto, got %q", v)
		}
		tuiConfig(cfg).Theme = v
		return nil
	},
	"tui.glyphs": func(cfg *store.GlobalConfig, v string) error {
		switch v {
		case "", "unicode", "ascii":
		default:
			return fmt.Errorf("tui.glyphs must be unicode|ascii, got %q", v)
		}
		tuiConfig(cfg).Glyphs = v
		return nil
	},
}

func init() {
	for _, kind := range []string{"year", "month", "date", "datetime", "time"} {
		configSetters["formats."+kind] = formatSetter(kind)
	}
}

func formatSetter(kind string) func(cfg *store.GlobalConfig, v string) error {
	return func(cfg *store.GlobalConfig, v string) error {
		if v != "" {
			if err := locale.NewParser(locale.Default()).Validate(v); err != nil {
				return err
			}
		}
		switch kind {
		case "year":
			cfg.Formats.Year = v
		case "month":
			cfg.Formats.Month = v
		case "date":
			cfg.Formats.Date = v
		case "datetime":
			cfg.Formats.Datetime = v
		case "time":
			cfg.Formats.Time = v
		}
		return nil
	}
}

func tuiConfig(cfg *store.GlobalConfig) *store.TUIConfig {
	if cfg.TUI == nil {
		cfg.TUI = &store.TUIConfig{}
	}
	return cfg.TUI
}

func configKeys() []string {
	keys := make([]string, 0, len(configSetters))
	for k := range configSetters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or edit ~/.calpick/config.json",
	}
	cmd.AddCommand(newConfigShowCmd(app))
	cmd.AddCommand(newConfigSetCmd(app))
	cmd.AddCommand(newConfigUnsetCmd(app))
	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the config file path and contents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := store.ConfigPath()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"path":   path,
				"config": app.config(),
				"keys":   configKeys(),
			}})
		},
	}
}

func newConfigSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config key (see `calpick config show` for keys)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(cmd, app, args[0], strings.TrimSpace(args[1]))
		},
	}
}

func newConfigUnsetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a config key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(cmd, app, args[0], "")
		},
	}
}

func updateConfig(cmd *cobra.Command, app *App, key, value string) error {
	set, ok := configSetters[key]
	if !ok {
		return writeErr(cmd, errUsage("unknown config key: %s (expected one of %s)", key, strings.Join(configKeys(), ", ")))
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return writeErr(cmd, err)
	}
	if err := set(cfg, value); err != nil {
		return writeErr(cmd, usageError{msg: fmt.Sprintf("%s: %v", key, err)})
	}
	if err := store.SaveConfig(cfg); err != nil {
		return writeErr(cmd, err)
	}
	app.cfg = cfg

	path, err := store.ConfigPath()
	if err != nil {
		return writeErr(cmd, err)
	}
	return writeOut(cmd, app, map[string]any{"data": map[string]any{
		"path":   path,
		"key":    key,
		"value":  value,
		"config": cfg,
	}})
}
