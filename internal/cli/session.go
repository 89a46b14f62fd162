package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"calpick/internal/calendar"
	"calpick/internal/format"
	"calpick/internal/locale"
	"calpick/internal/store"

	"github.com/spf13/cobra"
)

// pickerSession is a restored session: the service, its navigator and the
// selections committed during this invocation.
type pickerSession struct {
	name      string
	values    locale.Values
	svc       *calendar.Service
	nav       *calendar.Navigator
	committed []time.Time
}

// sessionView is the output of every session subcommand.
type sessionView struct {
	Session   *store.Session `json:"session"`
	Grid      calendar.Grid  `json:"grid"`
	Final     bool           `json:"final"`
	Formatted string         `json:"formatted,omitempty"`
	Committed *string        `json:"committed,omitempty"`
}

func (v sessionView) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintln(w, format.RenderGrid(w, v.Grid)); err != nil {
		return err
	}
	fmt.Fprintf(w, "session: %s (%s, %s)\n", v.Session.Name, v.Session.Kind, v.Session.View)
	if v.Formatted != "" {
		fmt.Fprintf(w, "selected: %s\n", v.Formatted)
	}
	if v.Committed != nil {
		fmt.Fprintf(w, "committed: %s\n", *v.Committed)
	}
	return nil
}

func newSessionCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Drive a persisted picker state machine across invocations",
	}
	cmd.PersistentFlags().StringVar(&name, "name", envOr("CALPICK_SESSION", "default"), "Session name")

	cmd.AddCommand(newSessionResetCmd(app, &name))
	cmd.AddCommand(newSessionShowCmd(app, &name))
	cmd.AddCommand(newSessionChangeCmd(app, &name))
	cmd.AddCommand(newSessionZoomCmd(app, &name))
	cmd.AddCommand(newSessionSelectCmd(app, &name))
	cmd.AddCommand(newSessionPageCmd(app, &name, "prev", -1))
	cmd.AddCommand(newSessionPageCmd(app, &name, "next", 1))
	cmd.AddCommand(newSessionBoundsCmd(app, &name))
	cmd.AddCommand(newSessionEventsCmd(app, &name))
	cmd.AddCommand(newSessionDeleteCmd(app, &name))
	return cmd
}

func newSessionResetCmd(app *App, name *string) *cobra.Command {
	var min, max, selected string

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Start (or restart) a session from --kind/--locale and bounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := app.specFromFlags(min, max, selected)
			if err != nil {
				return writeErr(cmd, err)
			}
			svc, err := newService(spec)
			if err != nil {
				return writeErr(cmd, err)
			}
			ps, err := newPickerSession(*name, spec.values, svc)
			if err != nil {
				return writeErr(cmd, err)
			}
			return finishSession(cmd, app, ps)
		},
	}
	cmd.Flags().StringVar(&min, "min", "", "Minimum selectable date")
	cmd.Flags().StringVar(&max, "max", "", "Maximum selectable date")
	cmd.Flags().StringVar(&selected, "selected", "", "Preselected date")
	return cmd
}

func newSessionShowCmd(app *App, name *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the session's current page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, err := loadSession(ctxOf(cmd), app, *name)
			if err != nil {
				return writeErr(cmd, err)
			}
			v := ps.view(ps.snapshot())
			return writeData(cmd, app, v)
		},
	}
}

func newSessionChangeCmd(app *App, name *string) *cobra.Command {
	return &cobra.Command{
		Use:   "change <date> <from-view>",
		Short: "Report a date picked in <from-view> (drill in, or commit in the final view)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, err := loadSession(ctxOf(cmd), app, *name)
			if err != nil {
				return writeErr(cmd, err)
			}
			d, err := parseDateTime(args[0])
			if err != nil {
				return writeErr(cmd, usageError{msg: err.Error()})
			}
			from, err := calendar.ParseViewType(args[1])
			if err != nil {
				return writeErr(cmd, usageError{msg: err.Error()})
			}
			if err := ps.svc.ChangeDate(d, from); err != nil {
				return writeErr(cmd, err)
			}
			if err := ps.nav.Sync(); err != nil {
				return writeErr(cmd, err)
			}
			return finishSession(cmd, app, ps)
		},
	}
}

func newSessionZoomCmd(app *App, name *string) *cobra.Command {
	return &cobra.Command{
		Use:   "zoom [from-view]",
		Short: "Zoom out of [from-view] (default: the current view)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, err := loadSession(ctxOf(cmd), app, *name)
			if err != nil {
				return writeErr(cmd, err)
			}
			from := ps.svc.CurrentView()
			if len(args) == 1 {
				if from, err = calendar.ParseViewType(args[0]); err != nil {
					return writeErr(cmd, usageError{msg: err.Error()})
				}
			}
			if from == ps.svc.CurrentView() {
				err = ps.nav.ZoomOut()
			} else if err = ps.svc.ZoomOut(from); err == nil {
				err = ps.nav.Sync()
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return finishSession(cmd, app, ps)
		},
	}
}

func newSessionSelectCmd(app *App, name *string) *cobra.Command {
	return &cobra.Command{
		Use:   "select <date>",
		Short: "Select a cell of the current view (disabled cells are rejected)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, err := loadSession(ctxOf(cmd), app, *name)
			if err != nil {
				return writeErr(cmd, err)
			}
			d, err := parseDateTime(args[0])
			if err != nil {
				return writeErr(cmd, usageError{msg: err.Error()})
			}
			item := ps.nav.View().CalculateItem(d, ps.nav.RenderedDate())
			if err := ps.nav.Select(item); err != nil {
				return writeErr(cmd, err)
			}
			return finishSession(cmd, app, ps)
		},
	}
}

func newSessionPageCmd(app *App, name *string, use string, dir int) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("Move the rendered page %s", map[int]string{-1: "back", 1: "forward"}[dir]),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, err := loadSession(ctxOf(cmd), app, *name)
			if err != nil {
				return writeErr(cmd, err)
			}
			for i := 0; i < count; i++ {
				if dir < 0 {
					ps.nav.PrevDateRange()
				} else {
					ps.nav.NextDateRange()
				}
			}
			return finishSession(cmd, app, ps)
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Pages to move")
	return cmd
}

func newSessionBoundsCmd(app *App, name *string) *cobra.Command {
	var min, max string

	cmd := &cobra.Command{
		Use:   "bounds",
		Short: "Set or clear the explicit min/max (empty value clears)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, err := loadSession(ctxOf(cmd), app, *name)
			if err != nil {
				return writeErr(cmd, err)
			}
			if cmd.Flags().Changed("min") {
				t, err := parseOptionalDateTime(min)
				if err != nil {
					return writeErr(cmd, errUsage("--min: %v", err))
				}
				ps.svc.SetMinDate(t)
			}
			if cmd.Flags().Changed("max") {
				t, err := parseOptionalDateTime(max)
				if err != nil {
					return writeErr(cmd, errUsage("--max: %v", err))
				}
				ps.svc.SetMaxDate(t)
			}
			return finishSession(cmd, app, ps)
		},
	}
	cmd.Flags().StringVar(&min, "min", "", "Minimum selectable date")
	cmd.Flags().StringVar(&max, "max", "", "Maximum selectable date")
	return cmd
}

func newSessionEventsCmd(app *App, name *string) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List committed selections (newest first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.store()
			if err != nil {
				return writeErr(cmd, err)
			}
			sels, err := s.ListSelections(ctxOf(cmd), *name, limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			if sels == nil {
				sels = []store.Selection{}
			}
			if app.Format == "text" {
				var b strings.Builder
				for _, sel := range sels {
					fmt.Fprintf(&b, "%d\t%s\t%s\t%s\n", sel.ID, sel.CreatedAt.Local().Format("2006-01-02 15:04"), sel.Kind, sel.Formatted)
				}
				return writeOut(cmd, app, strings.TrimRight(b.String(), "\n"))
			}
			return writeOut(cmd, app, map[string]any{"data": sels})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Max events (0 = all)")
	return cmd
}

func newSessionDeleteCmd(app *App, name *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Delete the session (its selection events are kept)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.store()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.DeleteSession(ctxOf(cmd), *name); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": *name}})
		},
	}
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadSession restores the service and navigator from the store.
func loadSession(ctx context.Context, app *App, name string) (*pickerSession, error) {
	s, err := app.store()
	if err != nil {
		return nil, err
	}
	sess, err := s.LoadSession(ctx, name)
	if errors.Is(err, store.ErrNoSession) {
		return nil, errNotFound("session", name)
	}
	if err != nil {
		return nil, err
	}

	values, err := app.values(sess.Locale)
	if err != nil {
		return nil, err
	}
	svc, err := newService(serviceSpec{
		kind:     sess.Kind,
		values:   values,
		min:      sess.Min,
		max:      sess.Max,
		selected: sess.Selected,
	})
	if err != nil {
		return nil, err
	}
	view, err := calendar.ParseViewType(sess.View)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", name, err)
	}
	if err := svc.SetView(view); err != nil {
		return nil, fmt.Errorf("session %s: %w", name, err)
	}
	svc.SetCurrentDate(sess.Current)
	// Re-derive the config bounds around the restored anchor.
	svc.SetConfig(svc.Config())

	ps, err := newPickerSession(name, values, svc)
	if err != nil {
		return nil, err
	}
	if sess.Rendered != nil {
		ps.nav.SetRenderedDate(*sess.Rendered)
	}
	return ps, nil
}

func newPickerSession(name string, values locale.Values, svc *calendar.Service) (*pickerSession, error) {
	nav, err := calendar.NewNavigator(svc)
	if err != nil {
		return nil, err
	}
	ps := &pickerSession{name: name, values: values, svc: svc, nav: nav}
	svc.OnDateChange(func(t time.Time) { ps.committed = append(ps.committed, t) })
	return ps, nil
}

func (ps *pickerSession) snapshot() *store.Session {
	min, max := ps.svc.ExplicitBounds()
	rendered := ps.nav.RenderedDate()
	return &store.Session{
		Name:     ps.name,
		Kind:     ps.svc.Config().Kind,
		Locale:   ps.values.Name,
		View:     ps.svc.CurrentView().String(),
		Current:  ps.svc.CurrentDate(),
		Selected: ps.svc.SelectedDate(),
		Min:      min,
		Max:      max,
		Rendered: &rendered,
	}
}

func (ps *pickerSession) format(t time.Time) string {
	p := locale.NewParser(ps.values)
	return p.Format(t, ps.values.Formats.For(ps.svc.Config().Kind))
}

func (ps *pickerSession) view(sess *store.Session) sessionView {
	v := sessionView{
		Session: sess,
		Grid:    ps.nav.Grid(),
		Final:   ps.svc.InFinalView(),
	}
	if sel := ps.svc.SelectedDate(); sel != nil {
		v.Formatted = ps.format(*sel)
	}
	if n := len(ps.committed); n > 0 {
		s := ps.format(ps.committed[n-1])
		v.Committed = &s
	}
	return v
}

// finishSession records commits made during this invocation, persists the
// snapshot and prints it.
func finishSession(cmd *cobra.Command, app *App, ps *pickerSession) error {
	ctx := ctxOf(cmd)
	s, err := app.store()
	if err != nil {
		return writeErr(cmd, err)
	}
	for _, d := range ps.committed {
		sel := store.Selection{
			Session:   ps.name,
			Kind:      ps.svc.Config().Kind,
			Date:      d,
			Formatted: ps.format(d),
		}
		if err := s.AppendSelection(ctx, &sel); err != nil {
			return writeErr(cmd, err)
		}
	}
	sess := ps.snapshot()
	if err := s.SaveSession(ctx, sess); err != nil {
		return writeErr(cmd, err)
	}
	return writeData(cmd, app, ps.view(sess))
}
