package cli

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	reDateOnly = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reDateTime = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})[ T](\d{2}:\d{2})(?::(\d{2}))?$`)
)

// nowFunc is swapped in tests.
var nowFunc = time.Now

// parseDateTime parses:
// - now / today
// - YYYY-MM-DD (local midnight)
// - YYYY-MM-DD HH:MM[:SS] (local time)
// - RFC3339 / RFC3339Nano (timezone-aware)
func parseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return time.Time{}, fmt.Errorf("empty datetime")
	case "now":
		return nowFunc(), nil
	case "today":
		n := nowFunc()
		return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, n.Location()), nil
	}

	if reDateOnly.MatchString(s) {
		return time.ParseInLocation("2006-01-02", s, time.Local)
	}

	if m := reDateTime.FindStringSubmatch(s); m != nil {
		layout := "2006-01-02 15:04"
		v := m[1] + " " + m[2]
		if m[3] != "" {
			layout += ":05"
			v += ":" + m[3]
		}
		return time.ParseInLocation(layout, v, time.Local)
	}

	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts, nil
	}

	return time.Time{}, fmt.Errorf("invalid datetime %q (expected YYYY-MM-DD, YYYY-MM-DD HH:MM, RFC3339, now or today)", s)
}

// parseOptionalDateTime returns nil for an empty flag value.
func parseOptionalDateTime(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := parseDateTime(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
