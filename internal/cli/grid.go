package cli

import (
	"calpick/internal/calendar"

	"github.com/spf13/cobra"
)

type gridFlags struct {
	view     string
	date     string
	min      string
	max      string
	selected string
	shift    int
}

func newGridCmd(app *App) *cobra.Command {
	var f gridFlags

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Compute one calendar page (view items, title, paging)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := buildGrid(app, f)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeData(cmd, app, g)
		},
	}

	cmd.Flags().StringVar(&f.view, "view", "", "View to render (year|month|day|hour|minute; default: the kind's initial view)")
	cmd.Flags().StringVar(&f.date, "date", "", "Date to render (default: now)")
	cmd.Flags().StringVar(&f.min, "min", "", "Minimum selectable date")
	cmd.Flags().StringVar(&f.max, "max", "", "Maximum selectable date")
	cmd.Flags().StringVar(&f.selected, "selected", "", "Currently selected date")
	cmd.Flags().IntVar(&f.shift, "shift", 0, "Pages to move forward (negative: back)")
	return cmd
}

func buildGrid(app *App, f gridFlags) (calendar.Grid, error) {
	spec, err := app.specFromFlags(f.min, f.max, f.selected)
	if err != nil {
		return calendar.Grid{}, err
	}
	svc, err := newService(spec)
	if err != nil {
		return calendar.Grid{}, err
	}
	if f.view != "" {
		v, err := calendar.ParseViewType(f.view)
		if err != nil {
			return calendar.Grid{}, usageError{msg: err.Error()}
		}
		if err := svc.SetView(v); err != nil {
			return calendar.Grid{}, usageError{msg: err.Error()}
		}
	}
	if f.date != "" {
		d, err := parseDateTime(f.date)
		if err != nil {
			return calendar.Grid{}, errUsage("--date: %v", err)
		}
		svc.SetCurrentDate(d)
		svc.Config().UpdateBounds(d)
	}

	nav, err := calendar.NewNavigator(svc)
	if err != nil {
		return calendar.Grid{}, err
	}
	for i := 0; i < f.shift; i++ {
		nav.NextDateRange()
	}
	for i := 0; i > f.shift; i-- {
		nav.PrevDateRange()
	}
	return nav.Grid(), nil
}
