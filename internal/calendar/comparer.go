package calendar

import "time"

// minuteBucket is the spacing of minute view items.
const minuteBucket = 5

// DateComparer answers equality and range questions about a date at a fixed
// precision. Components finer than the precision are ignored.
type DateComparer struct {
	precision Precision
	date      time.Time
	bucketed  bool
}

func NewComparer(p Precision, date time.Time) DateComparer {
	return DateComparer{precision: p, date: StartOf(p, date)}
}

// NewMinuteComparer compares against 5 minute items: a target of 10:07 is equal
// to an item at 10:05.
func NewMinuteComparer(date time.Time) DateComparer {
	c := NewComparer(PrecisionMinute, date)
	c.bucketed = true
	return c
}

func (c DateComparer) Precision() Precision { return c.precision }

func (c DateComparer) truncate(t time.Time) time.Time {
	t = StartOf(c.precision, t.In(c.date.Location()))
	if c.bucketed {
		t = t.Add(-time.Duration(t.Minute()%minuteBucket) * time.Minute)
	}
	return t
}

// IsEqualTo reports whether other falls in the same period. A nil target is
// never equal.
func (c DateComparer) IsEqualTo(other *time.Time) bool {
	if other == nil {
		return false
	}
	return c.truncate(c.date).Equal(c.truncate(*other))
}

// IsBetween reports whether the date lies in [min, max] at the comparer's
// precision. Nil bounds are open. Minute buckets do not apply here: a 10:05
// item is below a 10:07 minimum even though it is equal to 10:07.
func (c DateComparer) IsBetween(min, max *time.Time) bool {
	if min != nil && c.date.Before(StartOf(c.precision, min.In(c.date.Location()))) {
		return false
	}
	if max != nil && c.date.After(StartOf(c.precision, max.In(c.date.Location()))) {
		return false
	}
	return true
}
