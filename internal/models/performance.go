package models

// PerformanceDay is one row of the backend's rolling performance table.
// Accuracy figures are percentages in (0, 100] as computed upstream.
type PerformanceDay struct {
	Date          Date
	Actual        float64 // MWh
	LSTM          float64 // MWh
	LGBM          float64 // MWh
	VariationLSTM float64
	VariationLGBM float64
	AccuracyLSTM  float64
	AccuracyLGBM  float64
}

// Accuracy returns the accuracy figure for the given model.
func (p PerformanceDay) Accuracy(m Model) float64 {
	if m == ModelLGBM {
		return p.AccuracyLGBM
	}
	return p.AccuracyLSTM
}

// Predicted returns the predicted daily yield for the given model.
func (p PerformanceDay) Predicted(m Model) float64 {
	if m == ModelLGBM {
		return p.LGBM
	}
	return p.LSTM
}

// ModelSummary describes one model and its cumulative accuracy.
type ModelSummary struct {
	Description     string
	OverallAccuracy float64
	TodayAccuracy   float64
}

// PerformanceSummary holds both models' summaries.
type PerformanceSummary struct {
	LSTM ModelSummary
	LGBM ModelSummary
}

// For returns the summary of the given model.
func (s PerformanceSummary) For(m Model) ModelSummary {
	if m == ModelLGBM {
		return s.LGBM
	}
	return s.LSTM
}

// PerformanceBundle is the model-analytics payload.
type PerformanceBundle struct {
	TableData []PerformanceDay // ascending by date, as delivered
	Summary   PerformanceSummary
}
