package calendar

import (
	"fmt"
	"time"
)

// Precision is the truncation granularity used for range math and comparisons.
type Precision int

const (
	PrecisionDecade Precision = iota
	PrecisionYear
	PrecisionMonth
	PrecisionDate
	PrecisionHour
	PrecisionMinute
)

func (p Precision) String() string {
	switch p {
	case PrecisionDecade:
		return "decade"
	case PrecisionYear:
		return "year"
	case PrecisionMonth:
		return "month"
	case PrecisionDate:
		return "date"
	case PrecisionHour:
		return "hour"
	case PrecisionMinute:
		return "minute"
	default:
		return fmt.Sprintf("precision(%d)", int(p))
	}
}

func daysInMonth(y int, m time.Month) int {
	// Day 0 of next month is last day of this month.
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func clampDay(y int, m time.Month, d int) int {
	if d < 1 {
		return 1
	}
	max := daysInMonth(y, m)
	if d > max {
		return max
	}
	return d
}

// StartOf truncates t to the first instant of its enclosing period.
func StartOf(p Precision, t time.Time) time.Time {
	loc := t.Location()
	switch p {
	case PrecisionDecade:
		y := t.Year() - mod(t.Year(), 10)
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	case PrecisionYear:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, loc)
	case PrecisionMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	case PrecisionDate:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	case PrecisionHour:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, loc)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, loc)
	}
}

// EndOf returns the last representable instant of t's enclosing period.
func EndOf(p Precision, t time.Time) time.Time {
	return Add(p, StartOf(p, t), 1).Add(-time.Nanosecond)
}

// Add moves t by n periods. Month-based steps clamp the day of month instead of
// overflowing into the following month (Jan 31 + 1 month = Feb 28/29).
func Add(p Precision, t time.Time, n int) time.Time {
	switch p {
	case PrecisionDecade:
		return addMonths(t, 120*n)
	case PrecisionYear:
		return addMonths(t, 12*n)
	case PrecisionMonth:
		return addMonths(t, n)
	case PrecisionDate:
		return t.AddDate(0, 0, n)
	case PrecisionHour:
		return t.Add(time.Duration(n) * time.Hour)
	default:
		return t.Add(time.Duration(n) * time.Minute)
	}
}

func addMonths(t time.Time, n int) time.Time {
	total := int(t.Month()) - 1 + n
	y := t.Year() + total/12
	mo := mod(total, 12)
	if total < 0 && mo != 0 {
		y--
	}
	m := time.Month(mo + 1)
	d := clampDay(y, m, t.Day())
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// StartOfWeek returns midnight of the first day of t's week.
func StartOfWeek(t time.Time, firstDayOfWeek int) time.Time {
	day := StartOf(PrecisionDate, t)
	back := mod(int(day.Weekday())-firstDayOfWeek, 7)
	return day.AddDate(0, 0, -back)
}

func mod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}
