package locale

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Formats are the default patterns per picker kind, in the Parser's token
// grammar.
type Formats struct {
	Year     string `json:"year,omitempty"`
	Month    string `json:"month,omitempty"`
	Date     string `json:"date,omitempty"`
	Datetime string `json:"datetime,omitempty"`
	Time     string `json:"time,omitempty"`
}

// For returns the pattern for a picker kind (year|month|date|datetime|time).
func (f Formats) For(kind string) string {
	switch kind {
	case "year":
		return f.Year
	case "month":
		return f.Month
	case "datetime":
		return f.Datetime
	case "time":
		return f.Time
	default:
		return f.Date
	}
}

// Merge overlays the non-empty patterns of o.
func (f Formats) Merge(o Formats) Formats {
	str := func(base, over string) string {
		if strings.TrimSpace(over) != "" {
			return over
		}
		return base
	}
	return Formats{
		Year:     str(f.Year, o.Year),
		Month:    str(f.Month, o.Month),
		Date:     str(f.Date, o.Date),
		Datetime: str(f.Datetime, o.Datetime),
		Time:     str(f.Time, o.Time),
	}
}

// Values are the locale strings injected into formatting and parsing.
type Values struct {
	Name                string   `json:"name"`
	Months              []string `json:"months"`
	MonthsShort         []string `json:"monthsShort"`
	Weekdays            []string `json:"weekdays"`
	WeekdaysShort       []string `json:"weekdaysShort"`
	WeekdaysNarrow      []string `json:"weekdaysNarrow"`
	TimesOfDayUppercase []string `json:"timesOfDayUppercase"`
	TimesOfDayLowercase []string `json:"timesOfDayLowercase"`
	FirstDayOfWeek      int      `json:"firstDayOfWeek"`
	Formats             Formats  `json:"formats"`
}

// Validate checks that every name table has the expected length.
func (v Values) Validate() error {
	checks := []struct {
		name string
		xs   []string
		n    int
	}{
		{"months", v.Months, 12},
		{"monthsShort", v.MonthsShort, 12},
		{"weekdays", v.Weekdays, 7},
		{"weekdaysShort", v.WeekdaysShort, 7},
		{"weekdaysNarrow", v.WeekdaysNarrow, 7},
		{"timesOfDayUppercase", v.TimesOfDayUppercase, 2},
		{"timesOfDayLowercase", v.TimesOfDayLowercase, 2},
	}
	for _, c := range checks {
		if len(c.xs) != c.n {
			return fmt.Errorf("locale %s: %s has %d entries, want %d", v.Name, c.name, len(c.xs), c.n)
		}
	}
	if v.FirstDayOfWeek < 0 || v.FirstDayOfWeek > 6 {
		return fmt.Errorf("locale %s: firstDayOfWeek %d out of range 0..6", v.Name, v.FirstDayOfWeek)
	}
	return nil
}

// Merge overlays the non-empty fields of o onto v. FirstDayOfWeek has no empty
// value (0 is Sunday), so it is kept from v; callers override it explicitly.
func (v Values) Merge(o Values) Values {
	pick := func(base, over []string) []string {
		if len(over) > 0 {
			return append([]string(nil), over...)
		}
		return base
	}
	str := func(base, over string) string {
		if strings.TrimSpace(over) != "" {
			return over
		}
		return base
	}
	out := v
	out.Name = str(v.Name, o.Name)
	out.Months = pick(v.Months, o.Months)
	out.MonthsShort = pick(v.MonthsShort, o.MonthsShort)
	out.Weekdays = pick(v.Weekdays, o.Weekdays)
	out.WeekdaysShort = pick(v.WeekdaysShort, o.WeekdaysShort)
	out.WeekdaysNarrow = pick(v.WeekdaysNarrow, o.WeekdaysNarrow)
	out.TimesOfDayUppercase = pick(v.TimesOfDayUppercase, o.TimesOfDayUppercase)
	out.TimesOfDayLowercase = pick(v.TimesOfDayLowercase, o.TimesOfDayLowercase)
	out.Formats = v.Formats.Merge(o.Formats)
	return out
}

// Names lists the built-in locales.
func Names() []string {
	out := make([]string, 0, len(builtins))
	for name := range builtins {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Default is en-US.
func Default() Values {
	v, _ := Lookup("en-US")
	return v
}

type unknownLocaleError struct {
	name        string
	suggestions []string
}

func (e unknownLocaleError) Error() string {
	if len(e.suggestions) == 0 {
		return fmt.Sprintf("unknown locale %q (available: %s)", e.name, strings.Join(Names(), ", "))
	}
	return fmt.Sprintf("unknown locale %q (did you mean %s?)", e.name, strings.Join(e.suggestions, " or "))
}

// ErrUnknownLocale matches errors returned by Lookup for missing locales.
var ErrUnknownLocale = errors.New("unknown locale")

func (e unknownLocaleError) Is(target error) bool { return target == ErrUnknownLocale }

// Lookup returns a copy of a built-in locale. Names are case-insensitive and
// accept "_" for "-".
func Lookup(name string) (Values, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", "-"))
	for n, v := range builtins {
		if strings.ToLower(n) == key {
			return v.clone(), nil
		}
	}
	return Values{}, unknownLocaleError{name: name, suggestions: Suggest(name)}
}

// Suggest returns up to two built-in names closest to name.
func Suggest(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	names := Names()
	matches := fuzzy.Find(strings.ToLower(name), lowerAll(names))
	if len(matches) == 0 {
		// Fall back to the language part ("de-XX" => "de").
		lang, _, _ := strings.Cut(strings.ToLower(strings.ReplaceAll(name, "_", "-")), "-")
		matches = fuzzy.Find(lang, lowerAll(names))
	}
	var out []string
	for _, m := range matches {
		out = append(out, names[m.Index])
		if len(out) == 2 {
			break
		}
	}
	return out
}

func lowerAll(xs []string) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = strings.ToLower(x)
	}
	return out
}

// Load reads a JSON locale file and merges it over base. A "base" key in the
// file selects a built-in locale to start from instead.
func Load(path string, base Values) (Values, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Values{}, err
	}
	var raw struct {
		Values
		Base           string `json:"base"`
		FirstDayOfWeek *int   `json:"firstDayOfWeek"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return Values{}, fmt.Errorf("parse locale file %s: %w", path, err)
	}
	if strings.TrimSpace(raw.Base) != "" {
		base, err = Lookup(raw.Base)
		if err != nil {
			return Values{}, err
		}
	}
	out := base.Merge(raw.Values)
	if raw.FirstDayOfWeek != nil {
		out.FirstDayOfWeek = *raw.FirstDayOfWeek
	}
	if err := out.Validate(); err != nil {
		return Values{}, err
	}
	return out, nil
}

func (v Values) clone() Values {
	cp := func(xs []string) []string { return append([]string(nil), xs...) }
	out := v
	out.Months = cp(v.Months)
	out.MonthsShort = cp(v.MonthsShort)
	out.Weekdays = cp(v.Weekdays)
	out.WeekdaysShort = cp(v.WeekdaysShort)
	out.WeekdaysNarrow = cp(v.WeekdaysNarrow)
	out.TimesOfDayUppercase = cp(v.TimesOfDayUppercase)
	out.TimesOfDayLowercase = cp(v.TimesOfDayLowercase)
	return out
}
