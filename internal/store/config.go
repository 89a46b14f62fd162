package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"calpick/internal/locale"
)

type GlobalConfig struct {
	// Locale is a built-in locale name (e.g. "en-GB").
	Locale string `json:"locale,omitempty"`
	// LocaleFile is an optional JSON locale merged over Locale.
	LocaleFile string `json:"localeFile,omitempty"`

	// Kind is the default picker kind: year|month|date|datetime|time.
	Kind string `json:"kind,omitempty"`

	// FirstDayOfWeek overrides the locale's week start (0 = Sunday).
	FirstDayOfWeek *int `json:"firstDayOfWeek,omitempty"`

	// MinDate/MaxDate are default explicit bounds (YYYY-MM-DD, YYYY-MM-DD HH:MM or RFC3339).
	MinDate string `json:"minDate,omitempty"`
	MaxDate string `json:"maxDate,omitempty"`

	// Formats override the locale's default patterns per kind.
	Formats locale.Formats `json:"formats"`

	// TUI holds optional user preferences for the interactive picker.
	TUI *TUIConfig `json:"tui,omitempty"`
}

type TUIConfig struct {
	// Theme is light|dark|auto.
	Theme string `json:"theme,omitempty"`
	// Glyphs selects the glyph set ("unicode", "ascii").
	Glyphs string `json:"glyphs,omitempty"`
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.calpick).
	if v := strings.TrimSpace(os.Getenv("CALPICK_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".calpick"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ResolveLocale builds the effective locale: built-in name, then the optional
// file, then the first-day override.
func (c *GlobalConfig) ResolveLocale(name string) (locale.Values, error) {
	if strings.TrimSpace(name) == "" {
		name = c.Locale
	}
	if strings.TrimSpace(name) == "" {
		name = "en-US"
	}
	v, err := locale.Lookup(name)
	if err != nil {
		return locale.Values{}, err
	}
	if strings.TrimSpace(c.LocaleFile) != "" {
		v, err = locale.Load(c.LocaleFile, v)
		if err != nil {
			return locale.Values{}, err
		}
	}
	if c.FirstDayOfWeek != nil {
		v.FirstDayOfWeek = *c.FirstDayOfWeek
	}
	v.Formats = v.Formats.Merge(c.Formats)
	return v, v.Validate()
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

func SaveConfig(cfg *GlobalConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}
