package locale

import (
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"
)

// Width selects which name table is used for months and weekdays.
type Width int

const (
	WidthLong Width = iota
	WidthShort
	WidthNarrow
)

func (v Values) monthNames(w Width) []string {
	switch w {
	case WidthShort:
		return v.MonthsShort
	case WidthNarrow:
		return firstRunes(v.Months)
	default:
		return v.Months
	}
}

func (v Values) weekdayNames(w Width) []string {
	switch w {
	case WidthShort:
		return v.WeekdaysShort
	case WidthNarrow:
		return v.WeekdaysNarrow
	default:
		return v.Weekdays
	}
}

func firstRunes(xs []string) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		if r, _ := utf8.DecodeRuneInString(x); r != utf8.RuneError {
			out[i] = string(r)
		}
	}
	return out
}

// Month returns the localized month name for a zero-based index.
func (v Values) Month(index int, w Width) string {
	return at(v.monthNames(w), index)
}

// Weekday returns the localized weekday name (0 = Sunday).
func (v Values) Weekday(index int, w Width) string {
	return at(v.weekdayNames(w), index)
}

func at(xs []string, i int) string {
	if i < 0 || i >= len(xs) {
		return ""
	}
	return xs[i]
}

// MatchMonth matches a month name at the start of s. It returns the zero-based
// month index and the number of bytes consumed, or -1 and 0 when no name of the
// requested width matches.
func (v Values) MatchMonth(s string, w Width) (index int, n int) {
	return matchName(v.monthNames(w), s)
}

// MatchWeekday is MatchMonth for weekday names (0 = Sunday).
func (v Values) MatchWeekday(s string, w Width) (index int, n int) {
	return matchName(v.weekdayNames(w), s)
}

// matchName finds the first alternative matching the start of s, then maps the
// matched text back to its index. Matching is case-insensitive.
func matchName(names []string, s string) (int, int) {
	alts := make([]string, 0, len(names))
	for _, n := range names {
		if n != "" {
			alts = append(alts, regexp.QuoteMeta(n))
		}
	}
	if len(alts) == 0 {
		return -1, 0
	}
	m := nameMatcher(strings.Join(alts, "|")).FindString(s)
	if m == "" {
		return -1, 0
	}
	for i, n := range names {
		if n != "" && strings.EqualFold(n, m) {
			return i, len(m)
		}
	}
	return -1, 0
}

// Compiled alternations, keyed by the alternation source. Name tables are
// fixed per locale so the set stays small.
var nameMatchers sync.Map

func nameMatcher(alternation string) *regexp.Regexp {
	if re, ok := nameMatchers.Load(alternation); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`^(?i:` + alternation + `)`)
	actual, _ := nameMatchers.LoadOrStore(alternation, re)
	return actual.(*regexp.Regexp)
}

// matchAny tries the preferred width first, then the remaining widths.
func matchAny(fn func(string, Width) (int, int), s string, preferred Width) (int, int) {
	order := []Width{preferred, WidthLong, WidthShort, WidthNarrow}
	for _, w := range order {
		if i, n := fn(s, w); i >= 0 {
			return i, n
		}
	}
	return -1, 0
}
