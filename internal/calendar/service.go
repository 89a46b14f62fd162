package calendar

import (
	"fmt"
	"log"
	"time"

	"calpick/internal/locale"
)

// Service owns the picker's navigation state: which view is active, the date
// being browsed, the committed selection and the bounds.
//
// A Service is not safe for concurrent use. Hosts call it from a single
// goroutine (e.g. a bubbletea update loop) and every call completes its state
// change, including listener callbacks, before returning.
type Service struct {
	config *Config
	values locale.Values
	now    func() time.Time

	currentView  ViewType
	currentDate  time.Time
	selectedDate *time.Time

	minDate *time.Time
	maxDate *time.Time

	firstDayOfWeek int

	dateChange   []func(time.Time)
	manualUpdate []func()
}

type Option func(*Service)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithBounds sets the explicit bounds before the initial Reset so "now" is
// clamped into them.
func WithBounds(min, max *time.Time) Option {
	return func(s *Service) {
		s.minDate = cloneTime(min)
		s.maxDate = cloneTime(max)
	}
}

// WithSelected preselects a date; the initial Reset then opens the final view.
func WithSelected(t time.Time) Option {
	return func(s *Service) {
		s.selectedDate = &t
		s.currentDate = t
	}
}

func NewService(cfg *Config, values locale.Values, opts ...Option) *Service {
	s := &Service{
		values:         values,
		now:            time.Now,
		firstDayOfWeek: values.FirstDayOfWeek,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.currentDate.IsZero() {
		s.currentDate = s.now()
	}
	s.SetConfig(cfg)
	s.Reset()
	return s
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func (s *Service) Config() *Config { return s.config }

// SetConfig swaps the config and recomputes its bounds around the selection
// (or the current date when nothing is selected).
func (s *Service) SetConfig(cfg *Config) {
	s.config = cfg
	cfg.UpdateBounds(s.anchor())
}

func (s *Service) anchor() time.Time {
	if s.selectedDate != nil {
		return *s.selectedDate
	}
	return s.currentDate
}

func (s *Service) Locale() locale.Values { return s.values }
func (s *Service) FirstDayOfWeek() int { return s.firstDayOfWeek }
func (s *Service) Now() time.Time { return s.now() }
func (s *Service) CurrentView() ViewType { return s.currentView }
func (s *Service) CurrentDate() time.Time { return s.currentDate }
func (s *Service) InFinalView() bool { return s.currentView == s.config.Mappings.FinalView }
func (s *Service) SelectedDate() *time.Time { return cloneTime(s.selectedDate) }

// SetSelectedDate copies t into both the selection and the current date (nil
// clears the selection only), then notifies manual-update listeners.
func (s *Service) SetSelectedDate(t *time.Time) {
	if t != nil {
		s.selectedDate = cloneTime(t)
		s.currentDate = *t
	} else {
		s.selectedDate = nil
	}
	s.config.UpdateBounds(s.anchor())
	for _, fn := range s.manualUpdate {
		fn()
	}
}

// MinDate is the later of the explicit minimum and the config-derived one.
func (s *Service) MinDate() *time.Time {
	min, bound := s.minDate, s.config.MinBound
	if min != nil && bound != nil {
		if min.After(*bound) {
			return cloneTime(min)
		}
		return cloneTime(bound)
	}
	if min != nil {
		return cloneTime(min)
	}
	return cloneTime(bound)
}

// MaxDate is the earlier of the explicit maximum and the config-derived one.
func (s *Service) MaxDate() *time.Time {
	max, bound := s.maxDate, s.config.MaxBound
	if max != nil && bound != nil {
		if max.Before(*bound) {
			return cloneTime(max)
		}
		return cloneTime(bound)
	}
	if max != nil {
		return cloneTime(max)
	}
	return cloneTime(bound)
}

func (s *Service) SetMinDate(t *time.Time) { s.minDate = cloneTime(t) }
func (s *Service) SetMaxDate(t *time.Time) { s.maxDate = cloneTime(t) }

// ExplicitBounds returns the bounds set through SetMinDate/SetMaxDate only.
func (s *Service) ExplicitBounds() (min, max *time.Time) {
	return cloneTime(s.minDate), cloneTime(s.maxDate)
}

// OnDateChange registers a listener for committed selections.
func (s *Service) OnDateChange(fn func(time.Time)) {
	s.dateChange = append(s.dateChange, fn)
}

// OnManualUpdate registers a listener fired when the selection is set outside
// of normal navigation.
func (s *Service) OnManualUpdate(fn func()) {
	s.manualUpdate = append(s.manualUpdate, fn)
}

// Reset returns to the final view when a date is selected. Otherwise it moves
// the current date to now, clamped into the explicit bounds, and opens the
// initial view.
func (s *Service) Reset() {
	s.currentView = s.config.Mappings.FinalView
	if s.selectedDate != nil {
		return
	}

	today := s.now()
	if s.minDate != nil && today.Before(*s.minDate) {
		today = *s.minDate
	}
	if s.maxDate != nil && today.After(*s.maxDate) {
		today = *s.maxDate
	}
	s.currentDate = today
	s.config.UpdateBounds(s.currentDate)
	s.currentView = s.config.Mappings.InitialView
}

// ChangeDate records date as current. From the final view it commits the
// selection and notifies date-change listeners; from any other view it
// drills into the next view.
func (s *Service) ChangeDate(date time.Time, fromView ViewType) error {
	s.currentDate = date

	if fromView == s.config.Mappings.FinalView {
		s.SetSelectedDate(&date)
		out := s.config.postProcess(date)
		s.currentDate = out
		log.Printf("SELECT: kind=%s date=%s", s.config.Kind, out.Format(time.RFC3339))
		for _, fn := range s.dateChange {
			fn(out)
		}
		return nil
	}

	next, err := s.config.Mappings.NextChanged(fromView)
	if err != nil {
		return err
	}
	log.Printf("CHANGE: kind=%s from=%s to=%s", s.config.Kind, fromView, next)
	s.currentView = next
	return nil
}

// ZoomOut moves from fromView to the next coarser view.
func (s *Service) ZoomOut(fromView ViewType) error {
	next, err := s.config.Mappings.NextZoom(fromView)
	if err != nil {
		return err
	}
	log.Printf("ZOOM: kind=%s from=%s to=%s", s.config.Kind, fromView, next)
	s.currentView = next
	return nil
}

// SetView jumps directly to v. Hosts use it to restore a persisted session.
func (s *Service) SetView(v ViewType) error {
	for _, known := range s.config.Mappings.Views() {
		if known == v {
			s.currentView = v
			return nil
		}
	}
	return fmt.Errorf("%w: %s not reachable for %s", ErrUnknownView, v, s.config.Kind)
}

// SetCurrentDate moves the browsed date without touching the selection.
func (s *Service) SetCurrentDate(t time.Time) { s.currentDate = t }
