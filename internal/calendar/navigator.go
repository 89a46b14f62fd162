package calendar

import "time"

// Grid is one rendered page of a view.
type Grid struct {
	View    ViewType `json:"view"`
	Title   string   `json:"title"`
	Headers []string `json:"headers,omitempty"`
	Columns int      `json:"columns"`
	Rows    int      `json:"rows"`
	Items   [][]Item `json:"items"`
	CanPrev bool     `json:"canPrev"`
	CanNext bool     `json:"canNext"`
}

// Navigator pairs the active view with the date being rendered. The rendered
// date moves with prev/next without touching the service's current date.
type Navigator struct {
	service  *Service
	view     View
	rendered time.Time
}

// NewNavigator opens the service's current view at its current date.
func NewNavigator(s *Service) (*Navigator, error) {
	n := &Navigator{service: s}
	if err := n.Sync(); err != nil {
		return nil, err
	}
	return n, nil
}

// Sync reloads the view and rendered date from the service. Call it after any
// transition.
func (n *Navigator) Sync() error {
	v, err := ViewFor(n.service.CurrentView(), n.service)
	if err != nil {
		return err
	}
	n.view = v
	n.rendered = n.service.CurrentDate()
	return nil
}

func (n *Navigator) View() View { return n.view }
func (n *Navigator) RenderedDate() time.Time { return n.rendered }
func (n *Navigator) SetRenderedDate(t time.Time) { n.rendered = t }

// Items returns the flat, chronologically ordered range for the rendered date.
func (n *Navigator) Items() []Item {
	return n.itemsAt(n.rendered)
}

func (n *Navigator) itemsAt(rendered time.Time) []Item {
	dates := n.view.CalculateRange(n.view.CalculateRangeStart(rendered))
	out := make([]Item, len(dates))
	for i, d := range dates {
		out[i] = n.view.CalculateItem(d, rendered)
	}
	return out
}

// Group chunks items into rows of columns cells, preserving order.
func Group(items []Item, columns int) [][]Item {
	if columns <= 0 {
		return nil
	}
	var out [][]Item
	for i := 0; i < len(items); i += columns {
		end := i + columns
		if end > len(items) {
			end = len(items)
		}
		out = append(out, items[i:end:end])
	}
	return out
}

// Grid renders the current page.
func (n *Navigator) Grid() Grid {
	g := Grid{
		View:    n.view.Type(),
		Title:   n.view.Title(n.rendered),
		Columns: n.view.Columns(),
		Rows:    n.view.Rows(),
		Items:   Group(n.Items(), n.view.Columns()),
		CanPrev: n.CanMovePrev(),
		CanNext: n.CanMoveNext(),
	}
	if dv, ok := n.view.(dayView); ok {
		g.Headers = dv.Headers()
	}
	return g
}

func (n *Navigator) PrevDateRange() { n.rendered = Add(n.view.Step(), n.rendered, -1) }
func (n *Navigator) NextDateRange() { n.rendered = Add(n.view.Step(), n.rendered, 1) }

// CanMovePrev reports whether the previous page has any enabled item.
func (n *Navigator) CanMovePrev() bool { return anyEnabled(n.itemsAt(Add(n.view.Step(), n.rendered, -1))) }

// CanMoveNext reports whether the next page has any enabled item.
func (n *Navigator) CanMoveNext() bool { return anyEnabled(n.itemsAt(Add(n.view.Step(), n.rendered, 1))) }

func anyEnabled(items []Item) bool {
	for _, it := range items {
		if !it.Disabled {
			return true
		}
	}
	return false
}

// ZoomOut delegates to the service and reloads the view.
func (n *Navigator) ZoomOut() error {
	if err := n.service.ZoomOut(n.view.Type()); err != nil {
		return err
	}
	n.service.SetCurrentDate(n.rendered)
	return n.Sync()
}

// Select picks item from the current view: a drill-in, or a commit in the
// final view. Disabled items are rejected. Items outside the current period
// are selectable like any other.
func (n *Navigator) Select(item Item) error {
	if item.Disabled {
		return ErrItemDisabled
	}
	if err := n.service.ChangeDate(item.Date, n.view.Type()); err != nil {
		return err
	}
	return n.Sync()
}
