package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"calpick/internal/locale"
)

// Item is one cell of a calendar grid.
type Item struct {
	Date     time.Time `json:"date"`
	Label    string    `json:"label"`
	Disabled bool      `json:"disabled"`
	Selected bool      `json:"selected"`
	// OutsidePeriod marks context cells that belong to a neighbouring period,
	// e.g. the previous month's trailing days in a day grid.
	OutsidePeriod bool `json:"outsidePeriod"`
	Today         bool `json:"today"`
}

// View computes the grid for one zoom level.
type View interface {
	Type() ViewType
	Columns() int
	Rows() int
	// Step is the period one prev/next navigation moves by.
	Step() Precision
	CalculateRangeStart(rendered time.Time) time.Time
	CalculateRange(start time.Time) []time.Time
	CalculateItem(date time.Time, rendered time.Time) Item
	Title(rendered time.Time) string
}

// RangeLength is Columns*Rows.
func RangeLength(v View) int { return v.Columns() * v.Rows() }

// ViewFor returns the calculator for t bound to s.
func ViewFor(t ViewType, s *Service) (View, error) {
	b := baseView{service: s, values: s.Locale()}
	switch t {
	case ViewYear:
		return yearView{b}, nil
	case ViewMonth:
		return monthView{b}, nil
	case ViewDate:
		return dayView{b}, nil
	case ViewHour:
		return hourView{b}, nil
	case ViewMinute:
		return minuteView{b}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownView, t)
	}
}

type baseView struct {
	service *Service
	values  locale.Values
}

func (b baseView) item(c DateComparer, date time.Time, label string, outside bool) Item {
	now := b.service.Now()
	return Item{
		Date:          date,
		Label:         label,
		Disabled:      !c.IsBetween(b.service.MinDate(), b.service.MaxDate()),
		Selected:      c.IsEqualTo(b.service.SelectedDate()),
		OutsidePeriod: outside,
		Today:         c.IsEqualTo(&now),
	}
}

func (b baseView) dayTitle(t time.Time) string {
	return fmt.Sprintf("%s %d, %d", b.values.Month(int(t.Month())-1, locale.WidthLong), t.Day(), t.Year())
}

func steps(p Precision, start time.Time, n, every int) []time.Time {
	out := make([]time.Time, n)
	for i := range out {
		out[i] = Add(p, start, i*every)
	}
	return out
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

type yearView struct{ baseView }

func (yearView) Type() ViewType { return ViewYear }
func (yearView) Columns() int { return 4 }
func (yearView) Rows() int { return 3 }
func (yearView) Step() Precision { return PrecisionDecade }

func (yearView) CalculateRangeStart(rendered time.Time) time.Time {
	return StartOf(PrecisionDecade, rendered)
}

func (v yearView) CalculateRange(start time.Time) []time.Time {
	return steps(PrecisionYear, start, RangeLength(v), 1)
}

func (v yearView) CalculateItem(date, rendered time.Time) Item {
	decade := StartOf(PrecisionDecade, rendered).Year()
	label := strconv.Itoa(date.Year())
	for len(label) < 4 {
		label = "0" + label
	}
	return v.item(NewComparer(PrecisionYear, date), date, label, date.Year() >= decade+10)
}

func (yearView) Title(rendered time.Time) string {
	start := StartOf(PrecisionDecade, rendered).Year()
	return fmt.Sprintf("%d - %d", start, start+9)
}

type monthView struct{ baseView }

func (monthView) Type() ViewType { return ViewMonth }
func (monthView) Columns() int { return 4 }
func (monthView) Rows() int { return 3 }
func (monthView) Step() Precision { return PrecisionYear }

func (monthView) CalculateRangeStart(rendered time.Time) time.Time {
	return StartOf(PrecisionYear, rendered)
}

func (v monthView) CalculateRange(start time.Time) []time.Time {
	return steps(PrecisionMonth, start, RangeLength(v), 1)
}

func (v monthView) CalculateItem(date, _ time.Time) Item {
	label := v.values.Month(int(date.Month())-1, locale.WidthShort)
	return v.item(NewComparer(PrecisionMonth, date), date, label, false)
}

func (monthView) Title(rendered time.Time) string {
	return strconv.Itoa(rendered.Year())
}

type dayView struct{ baseView }

func (dayView) Type() ViewType { return ViewDate }
func (dayView) Columns() int { return 7 }
func (dayView) Rows() int { return 6 }
func (dayView) Step() Precision { return PrecisionMonth }

// CalculateRangeStart backs up from the 1st of the month to the start of its
// week.
func (v dayView) CalculateRangeStart(rendered time.Time) time.Time {
	return StartOfWeek(StartOf(PrecisionMonth, rendered), v.service.FirstDayOfWeek())
}

func (v dayView) CalculateRange(start time.Time) []time.Time {
	return steps(PrecisionDate, start, RangeLength(v), 1)
}

func (v dayView) CalculateItem(date, rendered time.Time) Item {
	outside := date.Month() != rendered.Month() || date.Year() != rendered.Year()
	return v.item(NewComparer(PrecisionDate, date), date, strconv.Itoa(date.Day()), outside)
}

func (v dayView) Title(rendered time.Time) string {
	return fmt.Sprintf("%s %d", v.values.Month(int(rendered.Month())-1, locale.WidthLong), rendered.Year())
}

// Headers returns short weekday names starting at the locale's first day.
func (v dayView) Headers() []string {
	out := make([]string, 7)
	for i := range out {
		out[i] = v.values.Weekday((v.service.FirstDayOfWeek()+i)%7, locale.WidthShort)
	}
	return out
}

type hourView struct{ baseView }

func (hourView) Type() ViewType { return ViewHour }
func (hourView) Columns() int { return 4 }
func (hourView) Rows() int { return 6 }
func (hourView) Step() Precision { return PrecisionDate }

func (hourView) CalculateRangeStart(rendered time.Time) time.Time {
	return StartOf(PrecisionDate, rendered)
}

func (v hourView) CalculateRange(start time.Time) []time.Time {
	return steps(PrecisionHour, start, RangeLength(v), 1)
}

func (v hourView) CalculateItem(date, _ time.Time) Item {
	return v.item(NewComparer(PrecisionHour, date), date, pad2(date.Hour())+":00", false)
}

func (v hourView) Title(rendered time.Time) string {
	if v.service.Config().Mode == ModeTimeOnly {
		return ""
	}
	return v.dayTitle(rendered)
}

type minuteView struct{ baseView }

func (minuteView) Type() ViewType { return ViewMinute }
func (minuteView) Columns() int { return 4 }
func (minuteView) Rows() int { return 3 }
func (minuteView) Step() Precision { return PrecisionHour }

func (minuteView) CalculateRangeStart(rendered time.Time) time.Time {
	return StartOf(PrecisionHour, rendered)
}

func (v minuteView) CalculateRange(start time.Time) []time.Time {
	return steps(PrecisionMinute, start, RangeLength(v), minuteBucket)
}

func (v minuteView) CalculateItem(date, _ time.Time) Item {
	label := pad2(date.Hour()) + ":" + pad2(date.Minute())
	return v.item(NewMinuteComparer(date), date, label, false)
}

func (v minuteView) Title(rendered time.Time) string {
	hour := pad2(rendered.Hour()) + ":00"
	if v.service.Config().Mode == ModeTimeOnly {
		return hour
	}
	return v.dayTitle(rendered) + " " + hour
}

// ErrItemDisabled is returned when a host tries to select a disabled cell.
var ErrItemDisabled = errors.New("calendar item is disabled")
