package models

// ViewMode selects which dashboard view is active.
type ViewMode int

const (
	ViewForecast ViewMode = iota
	ViewPast
	ViewModelAnalytics
)

// String returns the backend's name for the view ("model" for analytics).
func (v ViewMode) String() string {
	switch v {
	case ViewPast:
		return "past"
	case ViewModelAnalytics:
		return "model"
	default:
		return "forecast"
	}
}

// Title is the human label shown in the header.
func (v ViewMode) Title() string {
	switch v {
	case ViewPast:
		return "Performance"
	case ViewModelAnalytics:
		return "Model Analytics"
	default:
		return "Forecast"
	}
}

// Model identifies one of the two predictive sources.
type Model int

const (
	ModelLSTM Model = iota
	ModelLGBM
)

func (m Model) String() string {
	if m == ModelLGBM {
		return "lgbm"
	}
	return "lstm"
}

// Label is the display name used in tables and legends.
func (m Model) Label() string {
	if m == ModelLGBM {
		return "ML (LGBM)"
	}
	return "DL (LSTM)"
}
