package align

import (
	"time"

	"github.com/ngmaloney/solar-terminal/internal/models"
)

// CalibrationRow is one hour of the drill-down table.
type CalibrationRow struct {
	Timestamp time.Time
	Actual    float64
	LGBM      float64
	LSTM      float64
}

// Calibrate builds the hourly calibration table for a single-day bundle. Rows
// follow the LSTM series; LGBM and actual values at the same instant are looked
// up and default to 0 when missing. Unlike Align, a missing value is shown as
// zero here.
func Calibrate(bundle *models.SeriesBundle) []CalibrationRow {
	if bundle == nil || len(bundle.LSTM.Data) == 0 {
		return nil
	}

	lgbm := indexPower(bundle.LGBM.Data)
	actual := indexPower(bundle.Actual.Data)

	rows := make([]CalibrationRow, 0, len(bundle.LSTM.Data))
	for _, p := range bundle.LSTM.Data {
		key := models.InstantKey(p.Timestamp)
		rows = append(rows, CalibrationRow{
			Timestamp: p.Timestamp,
			Actual:    actual[key],
			LGBM:      lgbm[key],
			LSTM:      p.Power,
		})
	}
	return rows
}

// indexPower keeps the first point seen per instant.
func indexPower(points []models.SamplePoint) map[int64]float64 {
	ix := make(map[int64]float64, len(points))
	for _, p := range points {
		key := models.InstantKey(p.Timestamp)
		if _, ok := ix[key]; !ok {
			ix[key] = p.Power
		}
	}
	return ix
}
