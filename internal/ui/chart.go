package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/solar-terminal/internal/models"
)

const (
	seriesLSTM   = "lstm"
	seriesLGBM   = "lgbm"
	seriesActual = "actual"

	minChartWidth  = 20
	minChartHeight = 6
)

// renderComparisonChart draws the aligned rows as one braille line per
// source. Sources absent at an instant are skipped rather than drawn as zero.
func renderComparisonChart(rows []models.ComparisonRow, width, height int) string {
	if len(rows) < 2 {
		return mutedStyle.Render("Not enough data to plot")
	}
	width = max(width, minChartWidth)
	height = max(height, minChartHeight)

	first, last := rows[0].Timestamp, rows[len(rows)-1].Timestamp
	peak := 0.0
	for _, r := range rows {
		for _, v := range []*float64{r.LSTMPower, r.LGBMPower, r.ActualPower} {
			if v != nil && *v > peak {
				peak = *v
			}
		}
	}
	if peak <= 0 {
		peak = 1
	}

	formatter := timeserieslinechart.HourTimeLabelFormatter()
	if last.Sub(first) > 24*time.Hour {
		formatter = timeserieslinechart.DateTimeLabelFormatter()
	}

	chart := timeserieslinechart.New(width, height,
		timeserieslinechart.WithTimeRange(first, last),
		timeserieslinechart.WithYRange(0, peak*1.1),
		timeserieslinechart.WithXLabelFormatter(formatter),
	)
	chart.SetDataSetStyle(seriesLSTM, lstmStyle)
	chart.SetDataSetStyle(seriesLGBM, lgbmStyle)
	chart.SetDataSetStyle(seriesActual, actualStyle)

	hasActual := false
	for _, r := range rows {
		if r.LSTMPower != nil {
			chart.PushDataSet(seriesLSTM, timeserieslinechart.TimePoint{Time: r.Timestamp, Value: *r.LSTMPower})
		}
		if r.LGBMPower != nil {
			chart.PushDataSet(seriesLGBM, timeserieslinechart.TimePoint{Time: r.Timestamp, Value: *r.LGBMPower})
		}
		if r.ActualPower != nil {
			hasActual = true
			chart.PushDataSet(seriesActual, timeserieslinechart.TimePoint{Time: r.Timestamp, Value: *r.ActualPower})
		}
	}
	chart.DrawBrailleAll()

	legend := []string{
		lstmStyle.Render("━ " + models.ModelLSTM.Label()),
		lgbmStyle.Render("━ " + models.ModelLGBM.Label()),
	}
	if hasActual {
		legend = append(legend, actualStyle.Render("━ Actual"))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		chart.View(),
		strings.Join(legend, "   "),
	)
}

// renderSparkline draws one source's power curve with its peak value.
func renderSparkline(name, label string, points []models.SamplePoint, width int) string {
	style := seriesStyle(name)
	title := style.Bold(true).Render(label)
	if len(points) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, mutedStyle.Render("no data"))
	}

	width = max(width, minChartWidth)
	values := make([]float64, len(points))
	peak := 0.0
	for i, p := range points {
		values[i] = p.Power
		peak = max(peak, p.Power)
	}

	sl := sparkline.New(width, 3, sparkline.WithStyle(style))
	sl.PushAll(values)
	sl.Draw()

	return lipgloss.JoinVertical(lipgloss.Left,
		title+mutedStyle.Render(fmt.Sprintf("  peak %.2f MW", peak)),
		sl.View(),
	)
}
