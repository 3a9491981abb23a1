package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/solar-terminal/internal/coordinator"
	"github.com/ngmaloney/solar-terminal/internal/drilldown"
	"github.com/ngmaloney/solar-terminal/internal/models"
)

// Mock client for testing

type predictionCall struct {
	mode      models.ViewMode
	rangeDays int
	date      *models.Date
}

type mockClient struct {
	mu          sync.Mutex
	calls       []predictionCall
	perfCalls   int
	bundle      *models.SeriesBundle
	performance *models.PerformanceBundle
	err         error
}

func (c *mockClient) GetPredictions(ctx context.Context, mode models.ViewMode, rangeDays int, date *models.Date) (*models.SeriesBundle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, predictionCall{mode, rangeDays, date})
	if c.err != nil {
		return nil, c.err
	}
	return c.bundle, nil
}

func (c *mockClient) GetCurrentWeather(ctx context.Context) (*models.WeatherSnapshot, error) {
	return nil, errors.New("not used")
}

func (c *mockClient) GetModelPerformance(ctx context.Context) (*models.PerformanceBundle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.perfCalls++
	if c.err != nil {
		return nil, c.err
	}
	return c.performance, nil
}

func (c *mockClient) TriggerDay(ctx context.Context, date models.Date) (*models.TriggerAck, error) {
	return nil, errors.New("not used")
}

func (c *mockClient) GetStatus(ctx context.Context) (*models.StatusReport, error) {
	return nil, errors.New("not used")
}

func testBundle() *models.SeriesBundle {
	at := func(h int) time.Time { return time.Date(2026, 3, 10, h, 0, 0, 0, time.UTC) }
	series := func(vals ...float64) models.Series {
		s := models.Series{}
		for i, v := range vals {
			s.Data = append(s.Data, models.SamplePoint{Timestamp: at(8 + i), Power: v})
			s.SummaryMWh += v
		}
		return s
	}
	return &models.SeriesBundle{
		LSTM:            series(1.0, 3.5, 4.2),
		LGBM:            series(1.2, 3.1, 4.0),
		Actual:          series(1.1, 3.3, 4.4),
		IsToday:         true,
		TargetDateLabel: "10 Mar 2026",
		TargetDateISO:   "2026-03-10",
	}
}

func testPerformance() *models.PerformanceBundle {
	var days []models.PerformanceDay
	for i := 0; i < 5; i++ {
		days = append(days, models.PerformanceDay{
			Date:         models.MustParseDate("2026-03-06").AddDays(i),
			Actual:       20 + float64(i),
			LSTM:         21,
			LGBM:         19,
			AccuracyLSTM: 95,
			AccuracyLGBM: 105,
		})
	}
	return &models.PerformanceBundle{
		TableData: days,
		Summary: models.PerformanceSummary{
			LSTM: models.ModelSummary{Description: "Sequence model", OverallAccuracy: 93.2},
			LGBM: models.ModelSummary{Description: "Gradient boosting", OverallAccuracy: 91.8},
		},
	}
}

func newTestModel(client *mockClient) Model {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	m := NewModel(client,
		WithClock(func() time.Time { return now }),
		WithLocation(time.UTC),
		WithSyncHold(time.Millisecond),
	)
	// A static cursor keeps blink timers out of the returned commands.
	m.dateInput.Cursor.SetMode(cursor.CursorStatic)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model)
}

// runCmd executes cmd and returns the coordinator and drill-down messages it
// produces, expanding batches.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, runCmd(c)...)
		}
		return out
	case coordinator.FetchedMsg, drilldown.LoadedMsg:
		return []tea.Msg{msg}
	}
	return nil
}

// press sends a key and feeds any fetch results back into the model.
func press(t *testing.T, m Model, key string) Model {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	updated, cmd := m.Update(msg)
	return settle(updated.(Model), cmd)
}

func settle(m Model, cmd tea.Cmd) Model {
	for _, msg := range runCmd(cmd) {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func TestNewModel(t *testing.T) {
	m := NewModel(&mockClient{})

	state := m.view.State()
	if state.Mode != models.ViewForecast {
		t.Errorf("NewModel() mode = %v, want forecast", state.Mode)
	}
	if state.Range != 1 {
		t.Errorf("NewModel() range = %d, want 1", state.Range)
	}
	if m.editingDate {
		t.Error("NewModel() should not start in date entry")
	}
}

func TestModel_Update_WindowSize(t *testing.T) {
	m := NewModel(&mockClient{})

	updatedModel, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updatedModel.(Model)

	if m.width != 120 {
		t.Errorf("After WindowSizeMsg, width = %d, want 120", m.width)
	}
	if m.height != 40 {
		t.Errorf("After WindowSizeMsg, height = %d, want 40", m.height)
	}
}

func TestModel_Init_FetchesForecast(t *testing.T) {
	client := &mockClient{bundle: testBundle()}
	m := newTestModel(client)

	m = settle(m, m.Init())

	if len(client.calls) != 1 {
		t.Fatalf("Init issued %d prediction calls, want 1", len(client.calls))
	}
	if client.calls[0].mode != models.ViewForecast {
		t.Errorf("Init fetched %v, want forecast", client.calls[0].mode)
	}
	if m.coord.Series() == nil {
		t.Fatal("series not stored after Init fetch")
	}
	if m.coord.Loading() {
		t.Error("Loading() should be false after the fetch settles")
	}
}

func TestModel_CtrlC_Quits(t *testing.T) {
	m := NewModel(&mockClient{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("Expected Ctrl+C to return quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected Ctrl+C to produce tea.QuitMsg")
	}
}

func TestModel_ModeKeys(t *testing.T) {
	client := &mockClient{bundle: testBundle(), performance: testPerformance()}
	m := newTestModel(client)
	m = settle(m, m.Init())

	m = press(t, m, "2")
	if m.view.State().Mode != models.ViewPast {
		t.Fatalf("mode = %v, want past", m.view.State().Mode)
	}
	if len(client.calls) != 2 || client.calls[1].mode != models.ViewPast {
		t.Errorf("switching to past should fetch past predictions, calls = %+v", client.calls)
	}

	m = press(t, m, "3")
	if client.perfCalls != 1 {
		t.Errorf("model analytics should fetch performance, got %d calls", client.perfCalls)
	}
	if m.coord.Performance() == nil {
		t.Error("performance bundle not stored")
	}
	if len(m.logRows) != 5 {
		t.Errorf("log rows = %d, want 5", len(m.logRows))
	}
	if m.logRows[0].Date.String() != "2026-03-10" {
		t.Errorf("first log row = %s, want newest day 2026-03-10", m.logRows[0].Date)
	}
}

func TestModel_ComparisonToggleDoesNotFetch(t *testing.T) {
	client := &mockClient{bundle: testBundle()}
	m := newTestModel(client)
	m = settle(m, m.Init())

	m = press(t, m, "c")

	if !m.view.State().ShowComparison {
		t.Error("c should enable comparison")
	}
	if len(client.calls) != 1 {
		t.Errorf("comparison toggle issued a fetch (%d calls)", len(client.calls))
	}
	if !strings.Contains(m.View(), "POWER COMPARISON") {
		t.Error("comparison chart not rendered")
	}
}

func TestModel_RangeKeysOnlyInPast(t *testing.T) {
	client := &mockClient{bundle: testBundle()}
	m := newTestModel(client)
	m = settle(m, m.Init())

	m = press(t, m, "w")
	if m.view.State().Range != 1 {
		t.Errorf("range changed outside past view: %d", m.view.State().Range)
	}

	m = press(t, m, "2")
	m = press(t, m, "m")
	if m.view.State().Range != 7 {
		t.Errorf("range = %d, want 7", m.view.State().Range)
	}
	last := client.calls[len(client.calls)-1]
	if last.mode != models.ViewPast || last.rangeDays != 7 || last.date != nil {
		t.Errorf("last call = %+v, want past/7/no date", last)
	}
}

func TestModel_DateEntry(t *testing.T) {
	client := &mockClient{bundle: testBundle()}
	m := newTestModel(client)
	m = settle(m, m.Init())
	m = press(t, m, "2")
	m = press(t, m, "w")

	m = press(t, m, "/")
	if !m.editingDate {
		t.Fatal("/ should open date entry in past view")
	}
	for _, r := range "2026-02-14" {
		m = press(t, m, string(r))
	}
	m = press(t, m, "enter")

	if m.editingDate {
		t.Error("enter should close date entry")
	}
	state := m.view.State()
	if state.SelectedDate.String() != "2026-02-14" || state.Range != 1 {
		t.Errorf("state = %s/%d, want 2026-02-14/1", state.SelectedDate, state.Range)
	}
	last := client.calls[len(client.calls)-1]
	if last.date == nil || last.date.String() != "2026-02-14" {
		t.Errorf("last call date = %v, want 2026-02-14", last.date)
	}
}

func TestModel_DateEntryRejectsOutOfRange(t *testing.T) {
	client := &mockClient{bundle: testBundle()}
	m := newTestModel(client)
	m = settle(m, m.Init())
	m = press(t, m, "2")
	calls := len(client.calls)

	m = press(t, m, "/")
	for _, r := range "2025-12-31" {
		m = press(t, m, string(r))
	}
	m = press(t, m, "enter")

	if !m.view.State().SelectedDate.IsZero() {
		t.Errorf("SelectedDate = %s, want unset", m.view.State().SelectedDate)
	}
	if len(client.calls) != calls {
		t.Error("a rejected date should not trigger a fetch")
	}
}

func TestModel_SyncHoldsIndicator(t *testing.T) {
	client := &mockClient{bundle: testBundle()}
	m := newTestModel(client)
	m = settle(m, m.Init())

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = updated.(Model)
	if !m.coord.Syncing() {
		t.Fatal("r should start a sync")
	}

	updated, hold := m.Update(cmd())
	m = updated.(Model)
	if !m.coord.Syncing() {
		t.Error("sync indicator should be held after the fetch settles")
	}

	updated, _ = m.Update(hold())
	m = updated.(Model)
	if m.coord.Syncing() {
		t.Error("sync indicator should clear after the hold")
	}
}

func TestModel_DrilldownFlow(t *testing.T) {
	client := &mockClient{bundle: testBundle(), performance: testPerformance()}
	m := newTestModel(client)
	m = settle(m, m.Init())
	m = press(t, m, "3")

	m = press(t, m, "enter")

	if m.drill.Phase() != drilldown.Open {
		t.Fatalf("drill-down phase = %v, want open", m.drill.Phase())
	}
	last := client.calls[len(client.calls)-1]
	if last.mode != models.ViewPast || last.rangeDays != 1 || last.date == nil || last.date.String() != "2026-03-10" {
		t.Errorf("drill-down request = %+v, want past/1/2026-03-10", last)
	}
	if !strings.Contains(m.View(), "HOURLY CALIBRATION") {
		t.Error("calibration table not rendered")
	}

	m = press(t, m, "esc")
	if m.drill.Phase() != drilldown.Closed || m.view.State().Drilldown != nil {
		t.Error("esc should close the drill-down")
	}
	if !strings.Contains(m.View(), "PERFORMANCE LOG") {
		t.Error("performance log not rendered after closing")
	}
}

func TestModel_DrilldownIgnoresLogKeys(t *testing.T) {
	client := &mockClient{bundle: testBundle(), performance: testPerformance()}
	m := newTestModel(client)
	m = settle(m, m.Init())
	m = press(t, m, "3")

	// Loading: the response has not been fed back yet.
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	loading := updated.(Model)
	if loading.drill.Phase() != drilldown.Loading {
		t.Fatalf("drill-down phase = %v, want loading", loading.drill.Phase())
	}
	before := len(client.calls)
	loading = press(t, loading, "tab")
	loading = press(t, loading, "enter")
	if len(client.calls) != before {
		t.Errorf("keys during loading fired %d extra fetches", len(client.calls)-before)
	}
	if loading.logModel != models.ModelLSTM {
		t.Errorf("logModel = %v, want LSTM unchanged while loading", loading.logModel)
	}

	m = settle(loading, cmd)
	if m.drill.Phase() != drilldown.Open {
		t.Fatalf("drill-down phase = %v, want open", m.drill.Phase())
	}
	target := m.view.State().Drilldown
	before = len(client.calls)
	m = press(t, m, "tab")
	m = press(t, m, "enter")
	if len(client.calls) != before {
		t.Errorf("tab+enter with drill-down open fired %d extra fetches", len(client.calls)-before)
	}
	if m.logModel != models.ModelLSTM {
		t.Errorf("logModel = %v, want LSTM unchanged while open", m.logModel)
	}
	if got := m.view.State().Drilldown; got == nil || *got != *target {
		t.Errorf("drill-down target = %v, want %v", got, target)
	}
}

func TestModel_DrilldownFailureReturnsToLog(t *testing.T) {
	client := &mockClient{bundle: testBundle(), performance: testPerformance()}
	m := newTestModel(client)
	m = settle(m, m.Init())
	m = press(t, m, "3")

	client.err = errors.New("backend down")
	m = press(t, m, "enter")

	if m.drill.Phase() != drilldown.Closed {
		t.Errorf("phase = %v, want closed after failure", m.drill.Phase())
	}
	if m.view.State().Drilldown != nil {
		t.Error("failed drill-down should clear the target so it can be retried")
	}
	if m.coord.Performance() == nil {
		t.Error("performance bundle should survive a failed drill-down")
	}
}

func TestModel_LeavingAnalyticsClosesDrilldown(t *testing.T) {
	client := &mockClient{bundle: testBundle(), performance: testPerformance()}
	m := newTestModel(client)
	m = settle(m, m.Init())
	m = press(t, m, "3")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if m.drill.Phase() != drilldown.Loading {
		t.Fatalf("phase = %v, want loading", m.drill.Phase())
	}

	m = press(t, m, "1")
	if m.drill.Phase() != drilldown.Closed {
		t.Errorf("phase = %v, want closed after leaving model analytics", m.drill.Phase())
	}
}

func TestModel_TabSwitchesLogModel(t *testing.T) {
	client := &mockClient{bundle: testBundle(), performance: testPerformance()}
	m := newTestModel(client)
	m = settle(m, m.Init())
	m = press(t, m, "3")

	m = press(t, m, "tab")
	if m.logModel != models.ModelLGBM {
		t.Errorf("logModel = %v, want LGBM", m.logModel)
	}
	if !strings.Contains(m.View(), "PERFORMANCE LOG · ML (LGBM)") {
		t.Error("log header should name the LGBM model")
	}
}

func TestModel_WeatherMsg(t *testing.T) {
	m := newTestModel(&mockClient{bundle: testBundle()})
	m = settle(m, m.Init())

	var sent tea.Msg
	notify := WeatherNotifier(func(msg tea.Msg) { sent = msg })
	notify(models.WeatherSnapshot{Temperature: 27.4, Humidity: 40, WindSpeed: 11.2})

	updated, _ := m.Update(sent)
	m = updated.(Model)

	if !m.hasWeather || m.weather.Temperature != 27.4 {
		t.Errorf("weather = %+v, hasWeather = %v", m.weather, m.hasWeather)
	}
	if !strings.Contains(m.View(), "27.4 °C") {
		t.Error("weather card not rendered")
	}
}

func TestModel_FetchFailureKeepsData(t *testing.T) {
	client := &mockClient{bundle: testBundle()}
	m := newTestModel(client)
	m = settle(m, m.Init())

	client.err = errors.New("timeout")
	m = press(t, m, "2")

	if m.coord.Series() == nil || m.coord.Series().TargetDateLabel != "10 Mar 2026" {
		t.Error("previous bundle should be kept when a fetch fails")
	}
	if m.coord.Loading() {
		t.Error("Loading() should clear after a failed fetch")
	}
}

func TestModel_View_BeforeResize(t *testing.T) {
	m := NewModel(&mockClient{})
	if got := m.View(); got != "Loading..." {
		t.Errorf("View() = %q before window size, want Loading...", got)
	}
}
