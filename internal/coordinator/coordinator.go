// Package coordinator decides when the dashboard re-fetches its data and
// owns the bundles that come back.
//
// All methods are meant to be called from the Bubble Tea update loop. The
// commands it returns run on their own goroutines and report back through
// FetchedMsg and SyncDoneMsg, which must be passed to Update.
package coordinator

import (
	"context"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/solar-terminal/internal/api"
	"github.com/ngmaloney/solar-terminal/internal/metrics"
	"github.com/ngmaloney/solar-terminal/internal/models"
	"github.com/ngmaloney/solar-terminal/internal/viewstate"
)

// SyncHold is how long the syncing indicator stays up after a manual sync
// settles.
const SyncHold = 1000 * time.Millisecond

// FetchedMsg carries the result of one fetch.
type FetchedMsg struct {
	Seq         uint64
	Key         viewstate.FetchKey
	SyncGen     uint64 // non-zero for fetches issued by Sync
	Series      *models.SeriesBundle
	Performance *models.PerformanceBundle
	err         error
}

// Err returns the fetch error, if any.
func (m FetchedMsg) Err() error { return m.err }

// SyncDoneMsg fires when the sync hold for generation Gen elapses.
type SyncDoneMsg struct {
	Gen uint64
}

// Coordinator issues fetches for view-state changes. Results are applied in
// arrival order; a slow response to an older request can overwrite a newer
// one.
type Coordinator struct {
	client api.Client
	hold   time.Duration

	observed bool
	lastKey  viewstate.FetchKey

	seq      uint64
	inFlight int
	syncGen  uint64
	syncing  bool

	series      *models.SeriesBundle
	performance *models.PerformanceBundle
}

// New creates a coordinator backed by client.
func New(client api.Client) *Coordinator {
	return &Coordinator{client: client, hold: SyncHold}
}

// SetSyncHold overrides the sync indicator hold.
func (c *Coordinator) SetSyncHold(d time.Duration) {
	c.hold = d
}

// Observe returns a fetch command when the state's fetch key differs from
// the last one observed. The first call always fetches.
func (c *Coordinator) Observe(state viewstate.State) tea.Cmd {
	key := state.Key()
	if c.observed && key == c.lastKey {
		return nil
	}
	c.observed = true
	c.lastKey = key
	return c.fetch(key, 0)
}

// Sync re-issues the fetch for state and raises the syncing flag until
// SyncHold after the fetch settles.
func (c *Coordinator) Sync(state viewstate.State) tea.Cmd {
	key := state.Key()
	c.observed = true
	c.lastKey = key
	c.syncGen++
	c.syncing = true
	return c.fetch(key, c.syncGen)
}

// Update applies coordinator messages. Other messages are ignored.
func (c *Coordinator) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case FetchedMsg:
		return c.applyFetched(msg)
	case SyncDoneMsg:
		if msg.Gen == c.syncGen {
			c.syncing = false
		}
	}
	return nil
}

// Series returns the current forecast/past bundle, or nil.
func (c *Coordinator) Series() *models.SeriesBundle { return c.series }

// Performance returns the current model-analytics bundle, or nil.
func (c *Coordinator) Performance() *models.PerformanceBundle { return c.performance }

// Loading reports whether any fetch is in flight.
func (c *Coordinator) Loading() bool { return c.inFlight > 0 }

// Syncing reports whether a manual sync is running or being held.
func (c *Coordinator) Syncing() bool { return c.syncing }

// Seq returns the sequence number of the most recent request.
func (c *Coordinator) Seq() uint64 { return c.seq }

func (c *Coordinator) fetch(key viewstate.FetchKey, syncGen uint64) tea.Cmd {
	c.seq++
	c.inFlight++
	metrics.FetchesInFlight.Inc()

	seq := c.seq
	client := c.client
	return func() tea.Msg {
		ctx := api.WithSeq(context.Background(), seq)
		msg := FetchedMsg{Seq: seq, Key: key, SyncGen: syncGen}

		if key.Mode == models.ViewModelAnalytics {
			msg.Performance, msg.err = client.GetModelPerformance(ctx)
			return msg
		}

		var date *models.Date
		if key.Mode == models.ViewPast && !key.SelectedDate.IsZero() {
			d := key.SelectedDate
			date = &d
		}
		msg.Series, msg.err = client.GetPredictions(ctx, key.Mode, key.Range, date)
		return msg
	}
}

func (c *Coordinator) applyFetched(msg FetchedMsg) tea.Cmd {
	if c.inFlight > 0 {
		c.inFlight--
		metrics.FetchesInFlight.Dec()
	}

	if msg.err != nil {
		log.Printf("coordinator: fetch #%d (%s, range %d) failed: %v", msg.Seq, msg.Key.Mode, msg.Key.Range, msg.err)
	} else if msg.Performance != nil {
		c.performance = msg.Performance
	} else if msg.Series != nil {
		c.series = msg.Series
	}

	if msg.SyncGen == 0 {
		return nil
	}
	gen := msg.SyncGen
	return tea.Tick(c.hold, func(time.Time) tea.Msg {
		return SyncDoneMsg{Gen: gen}
	})
}
