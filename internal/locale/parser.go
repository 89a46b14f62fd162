package locale

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrNoMatch means a month, weekday or day period name did not match any
	// configured alternative.
	ErrNoMatch = errors.New("no matching locale name")
	// ErrOutOfRange means a parsed number is not a valid value for its field.
	ErrOutOfRange = errors.New("date field out of range")
)

// options is what every Format/Parse call reads: the week start and the locale
// tables that replace the built-in English names.
type options struct {
	weekStartsOn int
	values       Values
}

// Parser formats and parses dates with date-fns style patterns using the
// injected locale values instead of English names.
type Parser struct {
	weekStartsOn int
	values       Values
}

func NewParser(v Values) *Parser {
	return &Parser{weekStartsOn: v.FirstDayOfWeek, values: v}
}

func (p *Parser) config() options {
	return options{weekStartsOn: p.weekStartsOn, values: p.values}
}

func (p *Parser) Values() Values { return p.values }

// Validate reports whether pattern only uses supported tokens.
func (p *Parser) Validate(pattern string) error {
	_, err := tokenize(pattern)
	return err
}

// Format renders t with pattern. Unsupported letters and an unterminated
// quote are written as-is.
func (p *Parser) Format(t time.Time, pattern string) string {
	toks := tokenizeLenient(pattern)
	o := p.config()
	var b strings.Builder
	for _, tk := range toks {
		if tk.field == 0 {
			b.WriteString(tk.literal)
			continue
		}
		b.WriteString(o.formatField(t, tk))
	}
	return b.String()
}

func pad(n, width int) string {
	s := strconv.Itoa(n)
	for len(s) < width {
		s = "0" + s
	}
	return s
}

func (o options) formatField(t time.Time, tk token) string {
	w := tk.width
	switch tk.field {
	case 'y':
		if w == 2 {
			return pad(t.Year()%100, 2)
		}
		return pad(t.Year(), w)
	case 'M':
		switch {
		case w <= 2:
			return pad(int(t.Month()), w)
		case w == 3:
			return o.values.Month(int(t.Month())-1, WidthShort)
		case w == 4:
			return o.values.Month(int(t.Month())-1, WidthLong)
		default:
			return o.values.Month(int(t.Month())-1, WidthNarrow)
		}
	case 'd':
		return pad(t.Day(), w)
	case 'E':
		switch {
		case w == 4:
			return o.values.Weekday(int(t.Weekday()), WidthLong)
		case w == 5:
			return o.values.Weekday(int(t.Weekday()), WidthNarrow)
		default:
			return o.values.Weekday(int(t.Weekday()), WidthShort)
		}
	case 'H':
		return pad(t.Hour(), w)
	case 'h':
		h := t.Hour() % 12
		if h == 0 {
			h = 12
		}
		return pad(h, w)
	case 'm':
		return pad(t.Minute(), w)
	case 's':
		return pad(t.Second(), w)
	case 'a':
		idx := 0
		if t.Hour() >= 12 {
			idx = 1
		}
		if w == 3 {
			return at(o.values.TimesOfDayLowercase, idx)
		}
		return at(o.values.TimesOfDayUppercase, idx)
	}
	return ""
}

// parsed collects the fields read from the input. -1 means absent.
type parsed struct {
	year, month, day, weekday int
	hour, hour12, period      int
	minute, second            int
}

func newParsed() parsed {
	return parsed{year: -1, month: -1, day: -1, weekday: -1, hour: -1, hour12: -1, period: -1, minute: -1, second: -1}
}

// Parse reads s according to pattern. Fields missing from the pattern come
// from base; setting a field resets every finer field (a parsed month starts
// at day 1, midnight).
func (p *Parser) Parse(s, pattern string, base time.Time) (time.Time, error) {
	toks, err := tokenize(pattern)
	if err != nil {
		return time.Time{}, err
	}
	o := p.config()
	f := newParsed()
	rest := s
	for _, tk := range toks {
		if tk.field == 0 {
			if !strings.HasPrefix(rest, tk.literal) {
				return time.Time{}, fmt.Errorf("parse %q with %q: expected %q at %q", s, pattern, tk.literal, rest)
			}
			rest = rest[len(tk.literal):]
			continue
		}
		rest, err = o.parseField(&f, tk, rest, base)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse %q with %q: %w", s, pattern, err)
		}
	}
	if rest != "" {
		return time.Time{}, fmt.Errorf("parse %q with %q: unexpected trailing text %q", s, pattern, rest)
	}
	return o.apply(f, base)
}

func (o options) parseField(f *parsed, tk token, rest string, base time.Time) (string, error) {
	w := tk.width
	switch tk.field {
	case 'y':
		if w == 2 {
			n, r, err := readDigits(rest, 2, 2)
			if err != nil {
				return rest, err
			}
			f.year = normalizeTwoDigitYear(n, base.Year())
			return r, nil
		}
		minD, maxD := w, w
		if w == 1 {
			minD, maxD = 1, 4
		}
		n, r, err := readDigits(rest, minD, maxD)
		f.year = n
		return r, err
	case 'M':
		if w <= 2 {
			n, r, err := readNumber(rest, w)
			if err == nil && (n < 1 || n > 12) {
				err = fmt.Errorf("%w: month %d", ErrOutOfRange, n)
			}
			f.month = n - 1
			return r, err
		}
		width := WidthLong
		if w == 3 {
			width = WidthShort
		} else if w >= 5 {
			width = WidthNarrow
		}
		idx, n := matchAny(o.values.MatchMonth, rest, width)
		if idx < 0 {
			return rest, fmt.Errorf("%w: month at %q", ErrNoMatch, rest)
		}
		f.month = idx
		return rest[n:], nil
	case 'd':
		n, r, err := readNumber(rest, w)
		if err == nil && (n < 1 || n > 31) {
			err = fmt.Errorf("%w: day %d", ErrOutOfRange, n)
		}
		f.day = n
		return r, err
	case 'E':
		width := WidthShort
		if w == 4 {
			width = WidthLong
		} else if w == 5 {
			width = WidthNarrow
		}
		idx, n := matchAny(o.values.MatchWeekday, rest, width)
		if idx < 0 {
			return rest, fmt.Errorf("%w: weekday at %q", ErrNoMatch, rest)
		}
		f.weekday = idx
		return rest[n:], nil
	case 'H':
		n, r, err := readNumber(rest, w)
		if err == nil && n > 23 {
			err = fmt.Errorf("%w: hour %d", ErrOutOfRange, n)
		}
		f.hour = n
		return r, err
	case 'h':
		n, r, err := readNumber(rest, w)
		if err == nil && (n < 1 || n > 12) {
			err = fmt.Errorf("%w: hour %d", ErrOutOfRange, n)
		}
		f.hour12 = n
		return r, err
	case 'm':
		n, r, err := readNumber(rest, w)
		if err == nil && n > 59 {
			err = fmt.Errorf("%w: minute %d", ErrOutOfRange, n)
		}
		f.minute = n
		return r, err
	case 's':
		n, r, err := readNumber(rest, w)
		if err == nil && n > 59 {
			err = fmt.Errorf("%w: second %d", ErrOutOfRange, n)
		}
		f.second = n
		return r, err
	case 'a':
		for _, names := range [][]string{o.values.TimesOfDayUppercase, o.values.TimesOfDayLowercase} {
			if idx, n := matchName(names, rest); idx >= 0 {
				f.period = idx
				return rest[n:], nil
			}
		}
		return rest, fmt.Errorf("%w: day period at %q", ErrNoMatch, rest)
	}
	return rest, fmt.Errorf("%w: %q", ErrBadPattern, string(tk.field))
}

// readNumber reads 1-2 digits for a single letter token and exactly width
// digits otherwise.
func readNumber(s string, width int) (int, string, error) {
	if width == 1 {
		return readDigits(s, 1, 2)
	}
	return readDigits(s, width, width)
}

func readDigits(s string, minD, maxD int) (int, string, error) {
	i := 0
	for i < len(s) && i < maxD && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i < minD {
		return 0, s, fmt.Errorf("expected %d-%d digits at %q", minD, maxD, s)
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, s, err
	}
	return n, s[i:], nil
}

// normalizeTwoDigitYear picks the year ending in twoDigit that lies within 50
// years of current.
func normalizeTwoDigitYear(twoDigit, current int) int {
	abs := current
	if abs <= 0 {
		abs = 1 - current
	}
	if abs <= 50 {
		if twoDigit == 0 {
			return 100
		}
		return twoDigit
	}
	rangeEnd := abs + 50
	century := rangeEnd / 100 * 100
	if twoDigit >= rangeEnd%100 {
		return twoDigit + century - 100
	}
	return twoDigit + century
}

func (o options) apply(f parsed, base time.Time) (time.Time, error) {
	loc := base.Location()
	res := base
	set := func(y int, m time.Month, d, h, mi, s int) {
		res = time.Date(y, m, d, h, mi, s, 0, loc)
	}

	if f.year >= 0 {
		set(f.year, time.January, 1, 0, 0, 0)
	}
	if f.month >= 0 {
		set(res.Year(), time.Month(f.month+1), 1, 0, 0, 0)
	}
	switch {
	case f.day >= 0:
		last := time.Date(res.Year(), res.Month()+1, 0, 0, 0, 0, 0, loc).Day()
		if f.day > last {
			return time.Time{}, fmt.Errorf("%w: day %d in %s %d", ErrOutOfRange, f.day, res.Month(), res.Year())
		}
		set(res.Year(), res.Month(), f.day, 0, 0, 0)
	case f.weekday >= 0:
		day := time.Date(res.Year(), res.Month(), res.Day(), 0, 0, 0, 0, loc)
		back := (int(day.Weekday()) - o.weekStartsOn + 7) % 7
		start := day.AddDate(0, 0, -back)
		res = start.AddDate(0, 0, (f.weekday-o.weekStartsOn+7)%7)
	}

	// An H token wins over h + a.
	hour := f.hour
	if hour < 0 && f.hour12 >= 0 {
		hour = f.hour12 % 12
		if f.period == 1 {
			hour += 12
		}
	}
	if hour >= 0 {
		set(res.Year(), res.Month(), res.Day(), hour, 0, 0)
	}
	if f.minute >= 0 {
		set(res.Year(), res.Month(), res.Day(), res.Hour(), f.minute, 0)
	}
	if f.second >= 0 {
		set(res.Year(), res.Month(), res.Day(), res.Hour(), res.Minute(), f.second)
	}
	return res, nil
}
