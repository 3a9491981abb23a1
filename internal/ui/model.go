package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/solar-terminal/internal/api"
	"github.com/ngmaloney/solar-terminal/internal/coordinator"
	"github.com/ngmaloney/solar-terminal/internal/drilldown"
	"github.com/ngmaloney/solar-terminal/internal/models"
	"github.com/ngmaloney/solar-terminal/internal/performance"
	"github.com/ngmaloney/solar-terminal/internal/viewstate"
)

// Model represents the dashboard's state. Selection, fetched data and the
// drill-down live in their controllers; Model wires keys and messages to them.
type Model struct {
	width  int
	height int

	view  *viewstate.Controller
	coord *coordinator.Coordinator
	drill *drilldown.Controller

	// Live weather, pushed by the poller
	weather    models.WeatherSnapshot
	hasWeather bool

	// Date entry (past view)
	dateInput   textinput.Model
	editingDate bool

	// Model analytics
	logModel models.Model
	logRows  []models.PerformanceDay
	logTable table.Model
	calTable table.Model

	spinner spinner.Model
}

// Option configures a Model.
type Option func(*options)

type options struct {
	viewOpts []viewstate.Option
	syncHold time.Duration
}

// WithClock sets the clock used for "today".
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.viewOpts = append(o.viewOpts, viewstate.WithClock(now)) }
}

// WithLocation sets the zone "today" is evaluated in.
func WithLocation(loc *time.Location) Option {
	return func(o *options) { o.viewOpts = append(o.viewOpts, viewstate.WithLocation(loc)) }
}

// WithSyncHold overrides how long the sync indicator lingers.
func WithSyncHold(d time.Duration) Option {
	return func(o *options) { o.syncHold = d }
}

// NewModel creates a new dashboard model backed by client
func NewModel(client api.Client, opts ...Option) Model {
	o := options{syncHold: coordinator.SyncHold}
	for _, opt := range opts {
		opt(&o)
	}

	ti := textinput.New()
	ti.Placeholder = models.DateLayout
	ti.CharLimit = len(models.DateLayout)
	ti.Width = 12

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	coord := coordinator.New(client)
	coord.SetSyncHold(o.syncHold)

	return Model{
		view:      viewstate.New(o.viewOpts...),
		coord:     coord,
		drill:     drilldown.New(client),
		dateInput: ti,
		logModel:  models.ModelLSTM,
		logTable:  newLogTable(),
		calTable:  newCalibrationTable(),
		spinner:   s,
	}
}

// Init issues the initial fetch
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.coord.Observe(m.view.State()))
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case WeatherMsg:
		m.weather = msg.Snapshot
		m.hasWeather = true
		return m, nil

	case coordinator.FetchedMsg, coordinator.SyncDoneMsg:
		cmd := m.coord.Update(msg)
		m.refreshLog()
		return m, cmd

	case drilldown.LoadedMsg:
		if m.drill.Update(msg) && m.drill.Phase() == drilldown.Closed {
			// Failed loads fall back to the log so the day can be retried.
			m.view.ClearDrilldown()
		}
		m.refreshCalibration()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.editingDate {
			return m.handleDateInput(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey handles keyboard input outside of date entry
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" || key == "q" {
		return m, tea.Quit
	}

	state := m.view.State()
	switch key {
	case "1":
		m.setMode(models.ViewForecast)
	case "2":
		m.setMode(models.ViewPast)
	case "3":
		m.setMode(models.ViewModelAnalytics)
	case "d", "w", "m":
		if state.Mode == models.ViewPast {
			m.view.SetTimeRange(map[string]int{"d": 1, "w": 3, "m": 7}[key])
		}
	case "/":
		if state.Mode == models.ViewPast {
			m.editingDate = true
			m.dateInput.SetValue(state.SelectedDate.String())
			m.dateInput.CursorEnd()
			return m, m.dateInput.Focus()
		}
	case "c":
		m.view.ToggleComparison()
	case "r":
		return m, m.coord.Sync(m.view.State())
	default:
		if state.Mode == models.ViewModelAnalytics {
			return m.handleAnalyticsKey(msg)
		}
	}

	return m, m.coord.Observe(m.view.State())
}

// handleAnalyticsKey handles the model-analytics log and drill-down
func (m Model) handleAnalyticsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The log table and its cursor are hidden while a drill-down is loading or open.
	logActive := m.drill.Phase() == drilldown.Closed

	switch msg.String() {
	case "tab":
		if !logActive {
			return m, nil
		}
		if m.logModel == models.ModelLSTM {
			m.logModel = models.ModelLGBM
		} else {
			m.logModel = models.ModelLSTM
		}
		m.refreshLog()
		return m, nil

	case "enter":
		if !logActive {
			return m, nil
		}
		cursor := m.logTable.Cursor()
		if cursor < 0 || cursor >= len(m.logRows) {
			return m, nil
		}
		target := viewstate.Target{Date: m.logRows[cursor].Date, Model: m.logModel}
		if !m.view.SetDrilldown(target) {
			return m, nil
		}
		m.refreshCalibration()
		return m, m.drill.Open(target.Date, target.Model)

	case "esc", "backspace":
		m.closeDrilldown()
		return m, nil
	}

	var cmd tea.Cmd
	if m.drill.Phase() == drilldown.Open {
		m.calTable, cmd = m.calTable.Update(msg)
	} else {
		m.logTable, cmd = m.logTable.Update(msg)
	}
	return m, cmd
}

// handleDateInput handles keyboard input while entering a date
func (m Model) handleDateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.editingDate = false
		m.dateInput.Blur()
		if d, err := models.ParseDate(m.dateInput.Value()); err == nil {
			m.view.SetSelectedDate(d)
		}
		return m, m.coord.Observe(m.view.State())

	case tea.KeyEsc:
		m.editingDate = false
		m.dateInput.Blur()
		return m, nil

	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.dateInput, cmd = m.dateInput.Update(msg)
	return m, cmd
}

func (m *Model) setMode(mode models.ViewMode) {
	m.view.SetViewMode(mode)
	if m.view.State().Drilldown == nil && m.drill.Phase() != drilldown.Closed {
		m.drill.Close()
		m.refreshCalibration()
	}
}

func (m *Model) closeDrilldown() {
	m.view.ClearDrilldown()
	m.drill.Close()
	m.refreshCalibration()
}

// refreshLog rebuilds the performance log for the selected model, newest first.
func (m *Model) refreshLog() {
	perf := m.coord.Performance()
	if perf == nil {
		m.logRows = nil
		m.logTable.SetRows(nil)
		return
	}
	m.logRows = performance.Newest(performance.LastN(perf.TableData, performance.Window))
	m.logTable.SetRows(logTableRows(m.logRows, m.logModel))
	if m.logTable.Cursor() >= len(m.logRows) {
		m.logTable.SetCursor(0)
	}
}

func (m *Model) refreshCalibration() {
	m.calTable.SetRows(calibrationTableRows(m.drill.Calibration()))
	m.calTable.SetCursor(0)
}
