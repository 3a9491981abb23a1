package api

import (
	"context"

	"github.com/ngmaloney/solar-terminal/internal/models"
)

// DefaultBaseURL is used when no backend URL is configured.
const DefaultBaseURL = "http://localhost:8000"

// Client defines the calls the dashboard makes against the prediction backend.
type Client interface {
	// GetPredictions retrieves the forecast/past series bundle. date is only
	// sent when non-nil; the server infers "today" or the forecast horizon otherwise.
	GetPredictions(ctx context.Context, mode models.ViewMode, rangeDays int, date *models.Date) (*models.SeriesBundle, error)

	// GetCurrentWeather retrieves the live plant weather
	GetCurrentWeather(ctx context.Context) (*models.WeatherSnapshot, error)

	// GetModelPerformance retrieves the rolling performance table and model summaries
	GetModelPerformance(ctx context.Context) (*models.PerformanceBundle, error)

	// TriggerDay asks the backend to recompute both models for a date
	TriggerDay(ctx context.Context, date models.Date) (*models.TriggerAck, error)

	// GetStatus retrieves the backend liveness report
	GetStatus(ctx context.Context) (*models.StatusReport, error)
}

// Recorder receives one record per completed backend call.
type Recorder interface {
	RecordFetch(ctx context.Context, rec models.FetchRecord) error
}

type seqKey struct{}

// WithSeq tags ctx with the caller's request sequence number so it shows up
// in the fetch journal.
func WithSeq(ctx context.Context, seq uint64) context.Context {
	return context.WithValue(ctx, seqKey{}, seq)
}

func seqFrom(ctx context.Context) uint64 {
	seq, _ := ctx.Value(seqKey{}).(uint64)
	return seq
}
