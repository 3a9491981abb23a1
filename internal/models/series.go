package models

import "time"

// SamplePoint is one hourly reading or prediction as delivered by the backend.
// Optional weather fields are nil when the backend did not send them.
type SamplePoint struct {
	Timestamp   time.Time
	Power       float64  // MW
	Temperature *float64 // °C
	Humidity    *float64 // %
	WindSpeed   *float64 // km/h
	GHI         *float64 // W/m²
}

// Series is one source's points plus the backend's MWh total for the window.
type Series struct {
	Data       []SamplePoint
	SummaryMWh float64
}

// SeriesBundle is the unit of state for the forecast and past views.
// It is replaced wholesale on every successful fetch.
type SeriesBundle struct {
	LSTM   Series
	LGBM   Series
	Actual Series

	IsToday         bool
	TargetDateLabel string
	TargetDateISO   string

	ViewMode      string
	RangeDays     int
	YesterdayDate string
	TomorrowDate  string
}

// Empty reports whether the bundle holds no points at all.
func (b *SeriesBundle) Empty() bool {
	return b == nil || (len(b.LSTM.Data) == 0 && len(b.LGBM.Data) == 0 && len(b.Actual.Data) == 0)
}

// ComparisonRow joins the three sources at one instant. A nil field means the
// source had no point at that instant, which is different from a zero reading.
type ComparisonRow struct {
	Timestamp   time.Time
	LSTMPower   *float64
	LGBMPower   *float64
	ActualPower *float64
}
