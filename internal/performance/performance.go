// Package performance slices the backend's rolling performance table for the
// model-analytics charts.
package performance

import (
	"math"

	"github.com/ngmaloney/solar-terminal/internal/models"
)

// Window is the number of trailing days shown in model analytics.
const Window = 30

// ErrorDay is a settled day with per-model error percentages.
type ErrorDay struct {
	models.PerformanceDay
	ErrorLSTM float64
	ErrorLGBM float64
}

// LastN returns the trailing n rows in the table's existing order. Rows are
// trusted to arrive ascending by date and are not re-sorted.
func LastN(rows []models.PerformanceDay, n int) []models.PerformanceDay {
	if n <= 0 {
		return []models.PerformanceDay{}
	}
	if len(rows) <= n {
		return rows
	}
	return rows[len(rows)-n:]
}

// HistoricalOnly keeps rows dated strictly before today, dropping today and
// any future-dated row whose actuals have not settled.
func HistoricalOnly(rows []models.PerformanceDay, today models.Date) []models.PerformanceDay {
	out := make([]models.PerformanceDay, 0, len(rows))
	for _, r := range rows {
		if r.Date.Before(today) {
			out = append(out, r)
		}
	}
	return out
}

// Errors converts accuracy into error per model, clamped at zero so an
// accuracy above 100% never yields a negative error.
func Errors(rows []models.PerformanceDay) []ErrorDay {
	out := make([]ErrorDay, 0, len(rows))
	for _, r := range rows {
		out = append(out, ErrorDay{
			PerformanceDay: r,
			ErrorLSTM:      ErrorPct(r.AccuracyLSTM),
			ErrorLGBM:      ErrorPct(r.AccuracyLGBM),
		})
	}
	return out
}

// ErrorPct is max(0, 100 - accuracy).
func ErrorPct(accuracy float64) float64 {
	return math.Max(0, 100-accuracy)
}

// Newest returns a reversed copy, newest day first, for log tables.
func Newest(rows []models.PerformanceDay) []models.PerformanceDay {
	out := make([]models.PerformanceDay, len(rows))
	for i, r := range rows {
		out[len(rows)-1-i] = r
	}
	return out
}
