package calendar

import (
	"errors"
	"fmt"
	"strings"
)

// ViewType is one zoom level of the calendar.
type ViewType int

const (
	ViewYear ViewType = iota
	ViewMonth
	ViewDate
	ViewHour
	ViewMinute
)

var viewNames = map[ViewType]string{
	ViewYear:   "year",
	ViewMonth:  "month",
	ViewDate:   "day",
	ViewHour:   "hour",
	ViewMinute: "minute",
}

func (v ViewType) String() string {
	if s, ok := viewNames[v]; ok {
		return s
	}
	return fmt.Sprintf("view(%d)", int(v))
}

func (v ViewType) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// ParseViewType accepts year|month|day|date|hour|minute.
func ParseViewType(s string) (ViewType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "year":
		return ViewYear, nil
	case "month":
		return ViewMonth, nil
	case "day", "date":
		return ViewDate, nil
	case "hour":
		return ViewHour, nil
	case "minute":
		return ViewMinute, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownView, s)
	}
}

// Mode selects which parts of a date the picker edits.
type Mode int

const (
	ModeDateOnly Mode = iota
	ModeTimeOnly
	ModeBoth
)

func (m Mode) String() string {
	switch m {
	case ModeDateOnly:
		return "date"
	case ModeTimeOnly:
		return "time"
	case ModeBoth:
		return "datetime"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// ErrUnknownView is returned when a transition is requested from a view the
// active mappings do not know about.
var ErrUnknownView = errors.New("unknown view type")

// Mappings drive view transitions: Changed for drill-in after a selection,
// Zoom for the header control.
type Mappings struct {
	InitialView ViewType
	FinalView   ViewType
	Changed     map[ViewType]ViewType
	Zoom        map[ViewType]ViewType
}

func (m Mappings) next(table map[ViewType]ViewType, from ViewType) (ViewType, error) {
	to, ok := table[from]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownView, from)
	}
	return to, nil
}

// NextChanged returns the view shown after an item in from was chosen.
func (m Mappings) NextChanged(from ViewType) (ViewType, error) { return m.next(m.Changed, from) }

// NextZoom returns the view shown after zooming out of from.
func (m Mappings) NextZoom(from ViewType) (ViewType, error) { return m.next(m.Zoom, from) }

// Views lists every view reachable under these mappings, coarse to fine.
func (m Mappings) Views() []ViewType {
	seen := map[ViewType]bool{m.InitialView: true, m.FinalView: true}
	for k, v := range m.Changed {
		seen[k], seen[v] = true, true
	}
	for k, v := range m.Zoom {
		seen[k], seen[v] = true, true
	}
	var out []ViewType
	for v := ViewYear; v <= ViewMinute; v++ {
		if seen[v] {
			out = append(out, v)
		}
	}
	return out
}

func YearMappings() Mappings {
	return Mappings{
		InitialView: ViewYear,
		FinalView:   ViewYear,
		Changed:     map[ViewType]ViewType{},
		Zoom:        map[ViewType]ViewType{ViewYear: ViewYear},
	}
}

func MonthMappings() Mappings {
	return Mappings{
		InitialView: ViewYear,
		FinalView:   ViewMonth,
		Changed:     map[ViewType]ViewType{ViewYear: ViewMonth},
		Zoom: map[ViewType]ViewType{
			ViewYear:  ViewMonth,
			ViewMonth: ViewYear,
		},
	}
}

func DateMappings() Mappings {
	return Mappings{
		InitialView: ViewYear,
		FinalView:   ViewDate,
		Changed: map[ViewType]ViewType{
			ViewYear:  ViewMonth,
			ViewMonth: ViewDate,
		},
		Zoom: map[ViewType]ViewType{
			ViewYear:  ViewDate,
			ViewMonth: ViewYear,
			ViewDate:  ViewMonth,
		},
	}
}

func DatetimeMappings() Mappings {
	return Mappings{
		InitialView: ViewYear,
		FinalView:   ViewMinute,
		Changed: map[ViewType]ViewType{
			ViewYear:  ViewMonth,
			ViewMonth: ViewDate,
			ViewDate:  ViewHour,
			ViewHour:  ViewMinute,
		},
		Zoom: map[ViewType]ViewType{
			ViewYear:   ViewDate,
			ViewMonth:  ViewYear,
			ViewDate:   ViewMonth,
			ViewHour:   ViewDate,
			ViewMinute: ViewHour,
		},
	}
}

func TimeMappings() Mappings {
	return Mappings{
		InitialView: ViewHour,
		FinalView:   ViewMinute,
		Changed:     map[ViewType]ViewType{ViewHour: ViewMinute},
		Zoom: map[ViewType]ViewType{
			ViewHour:   ViewMinute,
			ViewMinute: ViewHour,
		},
	}
}
