// Package viewstate holds the dashboard's selection state and the rules for
// changing it.
package viewstate

import (
	"time"

	"github.com/ngmaloney/solar-terminal/internal/models"
)

// MinDate is the earliest date the archive holds.
var MinDate = models.NewDate(2026, time.January, 1)

// Target identifies a drill-down: one day for one model.
type Target struct {
	Date  models.Date
	Model models.Model
}

// State is the current selection. A zero SelectedDate means unset.
type State struct {
	Mode           models.ViewMode
	Range          int
	SelectedDate   models.Date
	ShowComparison bool
	Drilldown      *Target
}

// FetchKey is the part of State that decides what the coordinator fetches.
type FetchKey struct {
	Mode         models.ViewMode
	Range        int
	SelectedDate models.Date
}

// Key returns the state's fetch key.
func (s State) Key() FetchKey {
	return FetchKey{Mode: s.Mode, Range: s.Range, SelectedDate: s.SelectedDate}
}

// Controller owns the State. Every transition is total: input that is not
// allowed is ignored and reported as unchanged.
type Controller struct {
	state State
	now   func() time.Time
	loc   *time.Location
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the wall clock used for "today".
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithLocation sets the zone in which "today" is evaluated.
func WithLocation(loc *time.Location) Option {
	return func(c *Controller) { c.loc = loc }
}

// New returns a controller on the forecast view with a one-day range.
func New(opts ...Option) *Controller {
	c := &Controller{
		state: State{Mode: models.ViewForecast, Range: 1},
		now:   time.Now,
		loc:   time.Local,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	s := c.state
	if s.Drilldown != nil {
		t := *s.Drilldown
		s.Drilldown = &t
	}
	return s
}

// FetchKey returns the (mode, range, date) tuple of the current state.
func (c *Controller) FetchKey() FetchKey {
	return c.state.Key()
}

// MaxDate is today's calendar date, recomputed on every call.
func (c *Controller) MaxDate() models.Date {
	return models.DateOf(c.now().In(c.loc))
}

// SetViewMode switches views. A selected date survives leaving the past view;
// a drill-down does not survive leaving model analytics.
func (c *Controller) SetViewMode(mode models.ViewMode) bool {
	if c.state.Mode == mode {
		return false
	}
	if c.state.Mode == models.ViewModelAnalytics {
		c.state.Drilldown = nil
	}
	c.state.Mode = mode
	return true
}

// SetTimeRange sets the window to 1, 3 or 7 days.
func (c *Controller) SetTimeRange(days int) bool {
	switch days {
	case 1, 3, 7:
	default:
		return false
	}
	if c.state.Range == days {
		return false
	}
	c.state.Range = days
	return true
}

// SetSelectedDate accepts dates in [MinDate, today] and resets the range to
// a single day.
func (c *Controller) SetSelectedDate(d models.Date) bool {
	if d.IsZero() || d.Before(MinDate) || d.After(c.MaxDate()) {
		return false
	}
	if c.state.SelectedDate == d && c.state.Range == 1 {
		return false
	}
	c.state.SelectedDate = d
	c.state.Range = 1
	return true
}

// ToggleComparison flips the comparison overlay.
func (c *Controller) ToggleComparison() bool {
	c.state.ShowComparison = !c.state.ShowComparison
	return true
}

// SetDrilldown opens a drill-down target. Only valid in model analytics.
func (c *Controller) SetDrilldown(t Target) bool {
	if c.state.Mode != models.ViewModelAnalytics || t.Date.IsZero() {
		return false
	}
	if c.state.Drilldown != nil && *c.state.Drilldown == t {
		return false
	}
	c.state.Drilldown = &t
	return true
}

// ClearDrilldown removes any drill-down target.
func (c *Controller) ClearDrilldown() bool {
	if c.state.Drilldown == nil {
		return false
	}
	c.state.Drilldown = nil
	return true
}
