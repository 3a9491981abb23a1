// Package drilldown drives the hourly calibration view opened from a day in
// the model-analytics tables.
package drilldown

import (
	"context"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/solar-terminal/internal/align"
	"github.com/ngmaloney/solar-terminal/internal/api"
	"github.com/ngmaloney/solar-terminal/internal/models"
)

// Phase is the drill-down lifecycle state.
type Phase int

const (
	Closed Phase = iota
	Loading
	Open
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Open:
		return "open"
	default:
		return "closed"
	}
}

// LoadedMsg carries the hourly bundle for one drill-down request.
type LoadedMsg struct {
	token  uint64
	Bundle *models.SeriesBundle
	err    error
}

// Err returns the load error, if any.
func (m LoadedMsg) Err() error { return m.err }

// Controller tracks one drill-down at a time. Responses to requests that
// have since been replaced or closed are dropped.
type Controller struct {
	client api.Client

	phase  Phase
	date   models.Date
	model  models.Model
	bundle *models.SeriesBundle
	token  uint64
}

// New creates a closed drill-down controller.
func New(client api.Client) *Controller {
	return &Controller{client: client}
}

// Open starts loading the single-day past bundle for date.
func (c *Controller) Open(date models.Date, model models.Model) tea.Cmd {
	c.token++
	c.phase = Loading
	c.date = date
	c.model = model
	c.bundle = nil

	token := c.token
	client := c.client
	return func() tea.Msg {
		d := date
		bundle, err := client.GetPredictions(context.Background(), models.ViewPast, 1, &d)
		return LoadedMsg{token: token, Bundle: bundle, err: err}
	}
}

// Close discards any bundle and ignores pending responses.
func (c *Controller) Close() {
	c.token++
	c.phase = Closed
	c.bundle = nil
}

// Update applies a LoadedMsg. It reports whether the message was for the
// current request.
func (c *Controller) Update(msg tea.Msg) bool {
	loaded, ok := msg.(LoadedMsg)
	if !ok || loaded.token != c.token || c.phase != Loading {
		return false
	}
	if loaded.err != nil || loaded.Bundle == nil {
		log.Printf("drilldown: failed to load %s: %v", c.date, loaded.err)
		c.phase = Closed
		return true
	}
	c.bundle = loaded.Bundle
	c.phase = Open
	return true
}

// Phase returns the current state.
func (c *Controller) Phase() Phase { return c.phase }

// Date returns the day being drilled into.
func (c *Controller) Date() models.Date { return c.date }

// Model returns the model the drill-down was opened from.
func (c *Controller) Model() models.Model { return c.model }

// Bundle returns the loaded bundle while open.
func (c *Controller) Bundle() *models.SeriesBundle {
	if c.phase != Open {
		return nil
	}
	return c.bundle
}

// Calibration returns the hourly rows while open, else nil.
func (c *Controller) Calibration() []align.CalibrationRow {
	if c.phase != Open {
		return nil
	}
	return align.Calibrate(c.bundle)
}
