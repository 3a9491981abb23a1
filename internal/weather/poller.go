// Package weather polls the backend for live plant weather on a fixed period.
package weather

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/ngmaloney/solar-terminal/internal/api"
	"github.com/ngmaloney/solar-terminal/internal/metrics"
	"github.com/ngmaloney/solar-terminal/internal/models"
)

// DefaultInterval is the live weather refresh period.
const DefaultInterval = 10 * time.Minute

// Poller fetches the current weather immediately on Start and then every
// Interval until Stop. A failed poll keeps the last snapshot.
type Poller struct {
	client   api.Client
	interval time.Duration

	// Notify, when set, receives every new snapshot from the polling goroutine.
	Notify func(models.WeatherSnapshot)

	mu       sync.Mutex
	snapshot models.WeatherSnapshot
	hasData  bool
	ticker   *backoff.Ticker
	stop     chan struct{}
}

// NewPoller creates a stopped poller. A non-positive interval uses DefaultInterval.
func NewPoller(client api.Client, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{client: client, interval: interval}
}

// Interval returns the polling period.
func (p *Poller) Interval() time.Duration { return p.interval }

// Start begins polling. Calling Start on a running poller does nothing.
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ticker != nil {
		return
	}

	// ConstantBackOff never gives up, so the ticker fires first at once and
	// then every interval.
	p.ticker = backoff.NewTicker(backoff.NewConstantBackOff(p.interval))
	p.stop = make(chan struct{})
	go p.run(p.ticker, p.stop)
}

// Stop halts future polls. A poll already in flight still completes and
// its result is kept. Calling Stop on a stopped poller does nothing.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ticker == nil {
		return
	}
	p.ticker.Stop()
	close(p.stop)
	p.ticker = nil
	p.stop = nil
}

// Snapshot returns the last successful reading and whether there is one.
func (p *Poller) Snapshot() (models.WeatherSnapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot, p.hasData
}

func (p *Poller) run(ticker *backoff.Ticker, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case _, ok := <-ticker.C:
			if !ok {
				return
			}
			p.poll()
		}
	}
}

func (p *Poller) poll() {
	snap, err := p.client.GetCurrentWeather(context.Background())
	if err != nil {
		metrics.WeatherPollsTotal.WithLabelValues("error").Inc()
		log.Printf("weather: poll failed: %v", err)
		return
	}
	metrics.WeatherPollsTotal.WithLabelValues("ok").Inc()

	p.mu.Lock()
	p.snapshot = *snap
	p.hasData = true
	notify := p.Notify
	p.mu.Unlock()

	if notify != nil {
		notify(*snap)
	}
}
