package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/solar-terminal/internal/align"
	"github.com/ngmaloney/solar-terminal/internal/drilldown"
	"github.com/ngmaloney/solar-terminal/internal/models"
	"github.com/ngmaloney/solar-terminal/internal/performance"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	state := m.view.State()
	sections := []string{m.renderHeader(), m.renderTabs()}

	if state.Mode == models.ViewModelAnalytics {
		sections = append(sections, m.renderAnalytics())
	} else {
		if m.hasWeather {
			sections = append(sections, m.renderWeatherCards())
		}
		sections = append(sections, m.renderSeries())
	}

	if m.editingDate {
		sections = append(sections, "", labelStyle.Render("Date: ")+m.dateInput.View())
	}

	sections = append(sections, helpStyle.Render(m.helpText()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the title, target date and activity indicator
func (m Model) renderHeader() string {
	state := m.view.State()
	header := titleStyle.Render("☀ Solar Terminal") + mutedStyle.Render(" · "+state.Mode.Title())

	if bundle := m.coord.Series(); bundle != nil && state.Mode != models.ViewModelAnalytics {
		label := bundle.TargetDateLabel
		if bundle.IsToday {
			label += " (today)"
		}
		header += valueStyle.Render(" · " + label)
	}

	switch {
	case m.coord.Syncing():
		header += " " + m.spinner.View() + mutedStyle.Render(" syncing")
	case m.coord.Loading():
		header += " " + m.spinner.View()
	}
	return header
}

func (m Model) renderTabs() string {
	current := m.view.State().Mode
	var tabs []string
	for i, mode := range []models.ViewMode{models.ViewForecast, models.ViewPast, models.ViewModelAnalytics} {
		label := fmt.Sprintf("%d %s", i+1, mode.Title())
		if mode == current {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderWeatherCards renders the live plant weather
func (m Model) renderWeatherCards() string {
	card := func(label, value string) string {
		return cardStyle.Render(labelStyle.Render(label) + "\n" + valueStyle.Render(value))
	}
	cards := []string{
		card("Temperature", fmt.Sprintf("%.1f °C", m.weather.Temperature)),
		card("Humidity", fmt.Sprintf("%.0f %%", m.weather.Humidity)),
		card("Wind", fmt.Sprintf("%.1f km/h", m.weather.WindSpeed)),
	}
	if !m.weather.Timestamp.IsZero() {
		cards = append(cards, mutedStyle.Render("updated "+m.weather.Timestamp.Format("15:04")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, cards...)
}

// renderSeries renders the summary cards and the power chart for the
// forecast and past views
func (m Model) renderSeries() string {
	state := m.view.State()
	bundle := m.coord.Series()
	if bundle.Empty() {
		if m.coord.Loading() {
			return mutedStyle.Render("Fetching predictions...")
		}
		return mutedStyle.Render("No data for this selection")
	}

	includeActual := state.Mode == models.ViewPast
	summary := func(style lipgloss.Style, label string, mwh float64) string {
		return cardStyle.Render(style.Bold(true).Render(label) + "\n" + valueStyle.Render(fmt.Sprintf("%.2f MWh", mwh)))
	}
	cards := []string{
		summary(lstmStyle, models.ModelLSTM.Label(), bundle.LSTM.SummaryMWh),
		summary(lgbmStyle, models.ModelLGBM.Label(), bundle.LGBM.SummaryMWh),
	}
	if includeActual {
		cards = append(cards, summary(actualStyle, "Actual", bundle.Actual.SummaryMWh))
	}

	sections := []string{lipgloss.JoinHorizontal(lipgloss.Top, cards...)}
	if state.Mode == models.ViewPast {
		sections = append(sections, mutedStyle.Render(fmt.Sprintf("Range: %d day(s)", state.Range)))
	}

	chartWidth := m.width - 4
	if state.ShowComparison {
		rows := align.Align(bundle, includeActual)
		sections = append(sections,
			sectionHeaderStyle.Render("POWER COMPARISON (MW)"),
			renderComparisonChart(rows, chartWidth, max(m.height/3, minChartHeight)),
		)
	} else {
		sections = append(sections,
			sectionHeaderStyle.Render("POWER (MW)"),
			renderSparkline(seriesLSTM, models.ModelLSTM.Label(), bundle.LSTM.Data, chartWidth),
			renderSparkline(seriesLGBM, models.ModelLGBM.Label(), bundle.LGBM.Data, chartWidth),
		)
		if includeActual {
			sections = append(sections, renderSparkline(seriesActual, "Actual", bundle.Actual.Data, chartWidth))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderAnalytics renders the model summaries, the rolling window tables and
// either the performance log or the drill-down
func (m Model) renderAnalytics() string {
	perf := m.coord.Performance()
	if perf == nil {
		if m.coord.Loading() {
			return mutedStyle.Render("Fetching model performance...")
		}
		return mutedStyle.Render("No performance data")
	}

	var cards []string
	for _, model := range []models.Model{models.ModelLSTM, models.ModelLGBM} {
		s := perf.Summary.For(model)
		style := seriesStyle(model.String())
		body := fmt.Sprintf("%s\noverall %s  today %s",
			mutedStyle.Render(s.Description),
			valueStyle.Render(fmt.Sprintf("%.1f%%", s.OverallAccuracy)),
			valueStyle.Render(fmt.Sprintf("%.1f%%", s.TodayAccuracy)),
		)
		cards = append(cards, cardStyle.Render(style.Bold(true).Render(model.Label())+"\n"+body))
	}

	window := performance.LastN(perf.TableData, performance.Window)
	errs := performance.Errors(performance.HistoricalOnly(window, m.view.MaxDate()))

	sections := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
		lipgloss.JoinHorizontal(lipgloss.Top,
			sectionBoxStyle.Render(newYieldTable(window).View()),
			sectionBoxStyle.Render(renderErrorPane(errs)),
		),
	}

	switch m.drill.Phase() {
	case drilldown.Loading:
		sections = append(sections, mutedStyle.Render(
			fmt.Sprintf("%s Loading hourly data for %s...", m.spinner.View(), m.drill.Date())))
	case drilldown.Open:
		sections = append(sections,
			sectionHeaderStyle.Render(fmt.Sprintf("HOURLY CALIBRATION · %s · %s", m.drill.Date(), m.drill.Model().Label())),
			m.calTable.View(),
		)
	default:
		sections = append(sections,
			sectionHeaderStyle.Render("PERFORMANCE LOG · "+m.logModel.Label()),
			m.logTable.View(),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderErrorPane(errs []performance.ErrorDay) string {
	if len(errs) == 0 {
		return labelStyle.Render("ERROR") + "\n" + mutedStyle.Render("no settled days")
	}
	return newErrorTable(errs).View() + "\n" + errorLegend()
}

// errorLegend explains the severity markers in the error table.
func errorLegend() string {
	return errorMidStyle.Render(fmt.Sprintf("! ≥%d%%", errorMid)) + "  " +
		errorHighStyle.Render(fmt.Sprintf("!! ≥%d%%", errorHigh))
}

func (m Model) helpText() string {
	if m.editingDate {
		return "Enter: Apply date • Esc: Cancel"
	}
	parts := []string{"1/2/3: View", "c: Compare", "r: Sync"}
	switch m.view.State().Mode {
	case models.ViewPast:
		parts = append(parts, "d/w/m: 1/3/7 days", "/: Date")
	case models.ViewModelAnalytics:
		if m.drill.Phase() == drilldown.Closed {
			parts = append(parts, "↑/↓: Select", "Enter: Hourly", "Tab: Switch model")
		} else {
			parts = append(parts, "Esc: Back")
		}
	}
	parts = append(parts, "Q: Quit")
	return strings.Join(parts, " • ")
}
