package api

import (
	"github.com/ngmaloney/solar-terminal/internal/models"
)

// Wire types for backend responses. Pointer fields let validation tell a
// missing key from a zero value.

type samplePayload struct {
	Timestamp   string   `json:"timestamp"`
	Power       *float64 `json:"power"`
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	WindSpeed   *float64 `json:"wind_speed"`
	GHI         *float64 `json:"ghi"`
}

type seriesPayload struct {
	Data       []samplePayload `json:"data"`
	SummaryMWh *float64        `json:"summary_mwh"`
}

type predictionsResponse struct {
	ViewMode        string         `json:"view_mode"`
	RangeDays       int            `json:"range_days"`
	IsToday         bool           `json:"is_today"`
	YesterdayDate   string         `json:"yesterday_date"`
	TomorrowDate    string         `json:"tomorrow_date"`
	TargetDateLabel string         `json:"target_date_label"`
	TargetDateISO   string         `json:"target_date_iso"`
	LSTM            *seriesPayload `json:"lstm"`
	LGBM            *seriesPayload `json:"lgbm"`
	Actual          *seriesPayload `json:"actual"`
}

func (r predictionsResponse) toModel() (*models.SeriesBundle, error) {
	bundle := &models.SeriesBundle{
		IsToday:         r.IsToday,
		TargetDateLabel: r.TargetDateLabel,
		TargetDateISO:   r.TargetDateISO,
		ViewMode:        r.ViewMode,
		RangeDays:       r.RangeDays,
		YesterdayDate:   r.YesterdayDate,
		TomorrowDate:    r.TomorrowDate,
	}

	var err error
	if bundle.LSTM, err = r.LSTM.toModel("lstm"); err != nil {
		return nil, err
	}
	if bundle.LGBM, err = r.LGBM.toModel("lgbm"); err != nil {
		return nil, err
	}
	if bundle.Actual, err = r.Actual.toModel("actual"); err != nil {
		return nil, err
	}
	return bundle, nil
}

func (s *seriesPayload) toModel(name string) (models.Series, error) {
	if s == nil {
		return models.Series{}, malformed("missing %s series", name)
	}

	series := models.Series{Data: make([]models.SamplePoint, 0, len(s.Data))}
	if s.SummaryMWh != nil {
		series.SummaryMWh = *s.SummaryMWh
	}

	for i, p := range s.Data {
		ts, err := models.ParseTimestamp(p.Timestamp)
		if err != nil {
			return models.Series{}, malformed("%s point %d: %v", name, i, err)
		}
		if p.Power == nil {
			return models.Series{}, malformed("%s point %d has no power", name, i)
		}
		series.Data = append(series.Data, models.SamplePoint{
			Timestamp:   ts,
			Power:       *p.Power,
			Temperature: p.Temperature,
			Humidity:    p.Humidity,
			WindSpeed:   p.WindSpeed,
			GHI:         p.GHI,
		})
	}
	return series, nil
}

type weatherResponse struct {
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	WindSpeed   *float64 `json:"wind_speed"`
	Timestamp   string   `json:"timestamp"`
	Error       string   `json:"error"`
}

func (r weatherResponse) toModel() (*models.WeatherSnapshot, error) {
	// The backend reports upstream weather failures as a 200 with an error body.
	if r.Error != "" {
		return nil, malformed("backend weather error: %s", r.Error)
	}
	if r.Temperature == nil || r.Humidity == nil || r.WindSpeed == nil {
		return nil, malformed("weather payload missing temperature, humidity or wind_speed")
	}

	snapshot := &models.WeatherSnapshot{
		Temperature: *r.Temperature,
		Humidity:    *r.Humidity,
		WindSpeed:   *r.WindSpeed,
	}
	if r.Timestamp != "" {
		if ts, err := models.ParseTimestamp(r.Timestamp); err == nil {
			snapshot.Timestamp = ts
		}
	}
	return snapshot, nil
}

type performanceDayPayload struct {
	Date          models.Date `json:"date"`
	Actual        float64     `json:"actual"`
	LSTM          float64     `json:"lstm"`
	LGBM          float64     `json:"lgbm"`
	VariationLSTM float64     `json:"variation_lstm"`
	VariationLGBM float64     `json:"variation_lgbm"`
	AccuracyLSTM  *float64    `json:"accuracy_lstm"`
	AccuracyLGBM  *float64    `json:"accuracy_lgbm"`
}

type modelSummaryPayload struct {
	Description     string   `json:"description"`
	OverallAccuracy *float64 `json:"overall_accuracy"`
	TodayAccuracy   float64  `json:"today_accuracy"`
}

type performanceResponse struct {
	TableData []performanceDayPayload `json:"table_data"`
	Summary   *struct {
		LSTM *modelSummaryPayload `json:"lstm"`
		LGBM *modelSummaryPayload `json:"lgbm"`
	} `json:"summary"`
}

func (r performanceResponse) toModel() (*models.PerformanceBundle, error) {
	if r.TableData == nil {
		return nil, malformed("missing table_data")
	}
	if r.Summary == nil || r.Summary.LSTM == nil || r.Summary.LGBM == nil {
		return nil, malformed("missing model summary")
	}

	lstm, err := r.Summary.LSTM.toModel("lstm")
	if err != nil {
		return nil, err
	}
	lgbm, err := r.Summary.LGBM.toModel("lgbm")
	if err != nil {
		return nil, err
	}

	bundle := &models.PerformanceBundle{
		TableData: make([]models.PerformanceDay, 0, len(r.TableData)),
		Summary:   models.PerformanceSummary{LSTM: lstm, LGBM: lgbm},
	}
	for i, d := range r.TableData {
		if d.Date.IsZero() {
			return nil, malformed("table row %d has no date", i)
		}
		if d.AccuracyLSTM == nil || d.AccuracyLGBM == nil {
			return nil, malformed("table row %s has no accuracy", d.Date)
		}
		bundle.TableData = append(bundle.TableData, models.PerformanceDay{
			Date:          d.Date,
			Actual:        d.Actual,
			LSTM:          d.LSTM,
			LGBM:          d.LGBM,
			VariationLSTM: d.VariationLSTM,
			VariationLGBM: d.VariationLGBM,
			AccuracyLSTM:  *d.AccuracyLSTM,
			AccuracyLGBM:  *d.AccuracyLGBM,
		})
	}
	return bundle, nil
}

func (s *modelSummaryPayload) toModel(name string) (models.ModelSummary, error) {
	if s.OverallAccuracy == nil {
		return models.ModelSummary{}, malformed("%s summary has no overall_accuracy", name)
	}
	return models.ModelSummary{
		Description:     s.Description,
		OverallAccuracy: *s.OverallAccuracy,
		TodayAccuracy:   s.TodayAccuracy,
	}, nil
}
