package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Config kinds accepted by ConfigFor.
const (
	KindYear     = "year"
	KindMonth    = "month"
	KindDate     = "date"
	KindDatetime = "datetime"
	KindTime     = "time"
)

// Config describes one flavour of picker: which views it walks through, what
// the committed value's precision is and which absolute bounds apply.
type Config struct {
	Kind      string
	Mode      Mode
	Precision Precision
	Mappings  Mappings

	// MinBound/MaxBound are derived by UpdateBounds. Nil means unbounded.
	MinBound *time.Time
	MaxBound *time.Time

	// PostProcess transforms a committed selection before it is emitted.
	// Nil is the identity.
	PostProcess func(time.Time) time.Time

	boundsFn func(c *Config, provided time.Time)
}

// UpdateBounds recomputes the config-derived bounds around provided.
func (c *Config) UpdateBounds(provided time.Time) {
	if c.boundsFn != nil {
		c.boundsFn(c, provided)
	}
}

func (c *Config) postProcess(t time.Time) time.Time {
	if c.PostProcess == nil {
		return t
	}
	return c.PostProcess(t)
}

func YearConfig() *Config {
	return &Config{Kind: KindYear, Mode: ModeDateOnly, Precision: PrecisionYear, Mappings: YearMappings()}
}

func MonthConfig() *Config {
	return &Config{Kind: KindMonth, Mode: ModeDateOnly, Precision: PrecisionMonth, Mappings: MonthMappings()}
}

func DateConfig() *Config {
	return &Config{Kind: KindDate, Mode: ModeDateOnly, Precision: PrecisionDate, Mappings: DateMappings()}
}

func DatetimeConfig() *Config {
	return &Config{Kind: KindDatetime, Mode: ModeBoth, Precision: PrecisionMinute, Mappings: DatetimeMappings()}
}

// TimeConfig pins the picker to the day of the provided date.
func TimeConfig() *Config {
	return &Config{
		Kind:      KindTime,
		Mode:      ModeTimeOnly,
		Precision: PrecisionMinute,
		Mappings:  TimeMappings(),
		boundsFn: func(c *Config, provided time.Time) {
			min := StartOf(PrecisionDate, provided)
			max := EndOf(PrecisionDate, provided)
			c.MinBound, c.MaxBound = &min, &max
		},
	}
}

// ConfigFor returns a fresh config for kind (year|month|date|datetime|time).
func ConfigFor(kind string) (*Config, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindYear:
		return YearConfig(), nil
	case KindMonth:
		return MonthConfig(), nil
	case "", KindDate:
		return DateConfig(), nil
	case KindDatetime:
		return DatetimeConfig(), nil
	case KindTime:
		return TimeConfig(), nil
	default:
		return nil, fmt.Errorf("unknown picker kind %q (expected year|month|date|datetime|time)", kind)
	}
}
