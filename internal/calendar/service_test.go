package calendar

import (
	"errors"
	"testing"
	"time"

	"calpick/internal/locale"
)

var fixedNow = time.Date(2024, time.March, 15, 10, 42, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newTestService(t *testing.T, cfg *Config, opts ...Option) *Service {
	t.Helper()
	opts = append([]Option{WithClock(fixedClock)}, opts...)
	return NewService(cfg, locale.Default(), opts...)
}

func allConfigs() []*Config {
	return []*Config{YearConfig(), MonthConfig(), DateConfig(), DatetimeConfig(), TimeConfig()}
}

func TestReset_NoSelectionOpensInitialView(t *testing.T) {
	for _, cfg := range allConfigs() {
		s := newTestService(t, cfg)
		s.SetCurrentDate(time.Date(1999, time.January, 1, 0, 0, 0, 0, time.UTC))
		s.Reset()
		if s.CurrentView() != cfg.Mappings.InitialView {
			t.Fatalf("%s: expected %s, got %s", cfg.Kind, cfg.Mappings.InitialView, s.CurrentView())
		}
		if !s.CurrentDate().Equal(fixedNow) {
			t.Fatalf("%s: expected current date reset to now, got %s", cfg.Kind, s.CurrentDate())
		}
	}
}

func TestReset_WithSelectionOpensFinalView(t *testing.T) {
	sel := time.Date(2023, time.July, 4, 9, 15, 0, 0, time.UTC)
	for _, cfg := range allConfigs() {
		s := newTestService(t, cfg, WithSelected(sel))
		if s.CurrentView() != cfg.Mappings.FinalView {
			t.Fatalf("%s: expected %s, got %s", cfg.Kind, cfg.Mappings.FinalView, s.CurrentView())
		}
		s.SetCurrentDate(fixedNow)
		s.Reset()
		if s.CurrentView() != cfg.Mappings.FinalView {
			t.Fatalf("%s: expected %s after reset, got %s", cfg.Kind, cfg.Mappings.FinalView, s.CurrentView())
		}
		if !s.CurrentDate().Equal(fixedNow) {
			t.Fatalf("%s: reset must not move the date when selected", cfg.Kind)
		}
	}
}

func TestReset_ClampsNowIntoExplicitBounds(t *testing.T) {
	min := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	s := newTestService(t, DateConfig(), WithBounds(&min, nil))
	if !s.CurrentDate().Equal(min) {
		t.Fatalf("expected now clamped to %s, got %s", min, s.CurrentDate())
	}

	max := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	s = newTestService(t, DateConfig(), WithBounds(nil, &max))
	if !s.CurrentDate().Equal(max) {
		t.Fatalf("expected now clamped to %s, got %s", max, s.CurrentDate())
	}
}

func TestChangeDate_BothModeWalksDownAndCommits(t *testing.T) {
	s := newTestService(t, DatetimeConfig())
	x := time.Date(2025, time.May, 20, 13, 35, 0, 0, time.UTC)

	var events []time.Time
	s.OnDateChange(func(d time.Time) { events = append(events, d) })

	steps := []struct{ from, want ViewType }{
		{ViewYear, ViewMonth},
		{ViewMonth, ViewDate},
		{ViewDate, ViewHour},
		{ViewHour, ViewMinute},
	}
	if s.CurrentView() != ViewYear {
		t.Fatalf("expected year view, got %s", s.CurrentView())
	}
	for _, st := range steps {
		if err := s.ChangeDate(x, st.from); err != nil {
			t.Fatalf("change from %s: %v", st.from, err)
		}
		if s.CurrentView() != st.want {
			t.Fatalf("from %s: expected %s, got %s", st.from, st.want, s.CurrentView())
		}
		if s.SelectedDate() != nil {
			t.Fatalf("from %s: selection must stay empty", st.from)
		}
		if len(events) != 0 {
			t.Fatalf("from %s: unexpected event", st.from)
		}
	}

	if err := s.ChangeDate(x, ViewMinute); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if sel := s.SelectedDate(); sel == nil || !sel.Equal(x) {
		t.Fatalf("expected selected %s, got %v", x, sel)
	}
	if len(events) != 1 || !events[0].Equal(x) {
		t.Fatalf("expected exactly one event with %s, got %v", x, events)
	}
	if s.CurrentView() != ViewMinute {
		t.Fatalf("commit must not change the view, got %s", s.CurrentView())
	}
}

func TestChangeDate_FinalViewCommitsForEveryConfig(t *testing.T) {
	x := time.Date(2025, time.May, 20, 13, 35, 0, 0, time.UTC)
	for _, cfg := range allConfigs() {
		s := newTestService(t, cfg)
		n := 0
		s.OnDateChange(func(d time.Time) {
			n++
			if !d.Equal(x) {
				t.Fatalf("%s: event payload %s, want %s", cfg.Kind, d, x)
			}
		})
		if err := s.ChangeDate(x, cfg.Mappings.FinalView); err != nil {
			t.Fatalf("%s: %v", cfg.Kind, err)
		}
		if n != 1 {
			t.Fatalf("%s: expected one event, got %d", cfg.Kind, n)
		}
	}
}

func TestChangeDate_PostProcessShapesPayload(t *testing.T) {
	cfg := DateConfig()
	cfg.PostProcess = func(d time.Time) time.Time { return StartOf(PrecisionDate, d) }
	s := newTestService(t, cfg)

	var got time.Time
	s.OnDateChange(func(d time.Time) { got = d })
	x := time.Date(2025, time.May, 20, 13, 35, 0, 0, time.UTC)
	if err := s.ChangeDate(x, ViewDate); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if want := time.Date(2025, time.May, 20, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("expected post-processed %s, got %s", want, got)
	}
	if sel := s.SelectedDate(); sel == nil || !sel.Equal(x) {
		t.Fatalf("selection must keep the chosen date, got %v", sel)
	}
}

func TestChangeDate_UnknownViewFails(t *testing.T) {
	s := newTestService(t, TimeConfig())
	err := s.ChangeDate(fixedNow, ViewYear)
	if !errors.Is(err, ErrUnknownView) {
		t.Fatalf("expected ErrUnknownView, got %v", err)
	}
	if s.CurrentView() != ViewHour {
		t.Fatalf("view must be unchanged, got %s", s.CurrentView())
	}
}

func TestZoomOut_FollowsTable(t *testing.T) {
	for _, cfg := range allConfigs() {
		for from, want := range cfg.Mappings.Zoom {
			s := newTestService(t, cfg)
			if err := s.ZoomOut(from); err != nil {
				t.Fatalf("%s: zoom from %s: %v", cfg.Kind, from, err)
			}
			if s.CurrentView() != want {
				t.Fatalf("%s: zoom from %s: expected %s, got %s", cfg.Kind, from, want, s.CurrentView())
			}
		}
	}

	s := newTestService(t, DateConfig())
	if err := s.ZoomOut(ViewMinute); !errors.Is(err, ErrUnknownView) {
		t.Fatalf("expected ErrUnknownView, got %v", err)
	}
}

func TestBounds_TighterWins(t *testing.T) {
	cfg := DateConfig()
	cfgMin := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	cfgMax := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
	cfg.MinBound, cfg.MaxBound = &cfgMin, &cfgMax
	s := newTestService(t, cfg)

	explicitMin := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	explicitMax := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	s.SetMinDate(&explicitMin)
	s.SetMaxDate(&explicitMax)

	if got := s.MinDate(); got == nil || !got.Equal(explicitMin) {
		t.Fatalf("expected min %s, got %v", explicitMin, got)
	}
	if got := s.MaxDate(); got == nil || !got.Equal(cfgMax) {
		t.Fatalf("expected max %s, got %v", cfgMax, got)
	}

	s.SetMinDate(nil)
	if got := s.MinDate(); got == nil || !got.Equal(cfgMin) {
		t.Fatalf("expected config min %s, got %v", cfgMin, got)
	}
	if min, _ := s.ExplicitBounds(); min != nil {
		t.Fatalf("explicit min should be cleared")
	}
}

func TestTimeConfig_BoundsFollowSelectedDay(t *testing.T) {
	s := newTestService(t, TimeConfig())
	min, max := s.MinDate(), s.MaxDate()
	if min == nil || max == nil {
		t.Fatalf("time config must derive bounds")
	}
	if !min.Equal(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected min %s", min)
	}

	sel := time.Date(2024, time.June, 2, 8, 0, 0, 0, time.UTC)
	s.SetSelectedDate(&sel)
	if max := s.MaxDate(); max.Day() != 2 || max.Hour() != 23 || max.Month() != time.June {
		t.Fatalf("expected bounds to move to June 2, got max %s", max)
	}
}

func TestSetSelectedDate_CopiesAndNotifies(t *testing.T) {
	s := newTestService(t, DateConfig())
	calls := 0
	s.OnManualUpdate(func() { calls++ })

	d := time.Date(2024, time.August, 8, 0, 0, 0, 0, time.UTC)
	s.SetSelectedDate(&d)
	d = d.AddDate(1, 0, 0)

	if sel := s.SelectedDate(); sel == nil || sel.Year() != 2024 {
		t.Fatalf("selection must be a copy, got %v", sel)
	}
	if s.CurrentDate().Year() != 2024 {
		t.Fatalf("current date must follow the selection")
	}
	if calls != 1 {
		t.Fatalf("expected one manual update, got %d", calls)
	}

	s.SetSelectedDate(nil)
	if s.SelectedDate() != nil || calls != 2 {
		t.Fatalf("expected cleared selection and second notification")
	}
}

func TestSetView_RejectsUnreachable(t *testing.T) {
	s := newTestService(t, DateConfig())
	if err := s.SetView(ViewDate); err != nil {
		t.Fatalf("set view: %v", err)
	}
	if err := s.SetView(ViewHour); !errors.Is(err, ErrUnknownView) {
		t.Fatalf("expected ErrUnknownView, got %v", err)
	}
}
