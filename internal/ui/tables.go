package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/solar-terminal/internal/align"
	"github.com/ngmaloney/solar-terminal/internal/models"
	"github.com/ngmaloney/solar-terminal/internal/performance"
)

// summaryRows is how many of the newest days the yield and error panes show.
const summaryRows = 10

// Error percentages at or above these are flagged in the error table.
const (
	errorMid  = 10
	errorHigh = 25
)

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#000000")).
		Background(colorPrimary).
		Bold(false)
	return s
}

// readOnlyTableStyles drops the cursor highlight for tables that never take focus.
func readOnlyTableStyles() table.Styles {
	s := tableStyles()
	s.Selected = lipgloss.NewStyle()
	return s
}

func newReadOnlyTable(columns []table.Column, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(summaryRows),
	)
	t.SetStyles(readOnlyTableStyles())
	return t
}

// newYieldTable lists daily yield for the window, newest last.
func newYieldTable(days []models.PerformanceDay) table.Model {
	return newReadOnlyTable([]table.Column{
		{Title: "Date", Width: 7},
		{Title: "Actual", Width: 8},
		{Title: "LSTM", Width: 8},
		{Title: "LGBM", Width: 8},
	}, yieldTableRows(days))
}

// newErrorTable lists per-model percentage error for settled days.
func newErrorTable(days []performance.ErrorDay) table.Model {
	return newReadOnlyTable([]table.Column{
		{Title: "Date", Width: 7},
		{Title: "LSTM %", Width: 9},
		{Title: "LGBM %", Width: 9},
	}, errorTableRows(days))
}

func newLogTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 8},
			{Title: "Actual MWh", Width: 11},
			{Title: "Predicted", Width: 10},
			{Title: "Variation", Width: 10},
			{Title: "Accuracy", Width: 9},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(tableStyles())
	return t
}

func newCalibrationTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Hour", Width: 6},
			{Title: "Actual", Width: 8},
			{Title: "LGBM", Width: 8},
			{Title: "LSTM", Width: 8},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	t.SetStyles(tableStyles())
	return t
}

func logTableRows(days []models.PerformanceDay, model models.Model) []table.Row {
	rows := make([]table.Row, 0, len(days))
	for _, d := range days {
		variation := d.VariationLSTM
		if model == models.ModelLGBM {
			variation = d.VariationLGBM
		}
		rows = append(rows, table.Row{
			d.Date.Label(),
			fmt.Sprintf("%.2f", d.Actual),
			fmt.Sprintf("%.2f", d.Predicted(model)),
			fmt.Sprintf("%+.2f", variation),
			fmt.Sprintf("%.1f%%", d.Accuracy(model)),
		})
	}
	return rows
}

func calibrationTableRows(cal []align.CalibrationRow) []table.Row {
	rows := make([]table.Row, 0, len(cal))
	for _, r := range cal {
		rows = append(rows, table.Row{
			r.Timestamp.Format("15:04"),
			fmt.Sprintf("%.2f", r.Actual),
			fmt.Sprintf("%.2f", r.LGBM),
			fmt.Sprintf("%.2f", r.LSTM),
		})
	}
	return rows
}

func yieldTableRows(days []models.PerformanceDay) []table.Row {
	days = lastRows(days, summaryRows)
	rows := make([]table.Row, 0, len(days))
	for _, d := range days {
		rows = append(rows, table.Row{
			d.Date.Label(),
			fmt.Sprintf("%.2f", d.Actual),
			fmt.Sprintf("%.2f", d.LSTM),
			fmt.Sprintf("%.2f", d.LGBM),
		})
	}
	return rows
}

func errorTableRows(days []performance.ErrorDay) []table.Row {
	days = lastRows(days, summaryRows)
	rows := make([]table.Row, 0, len(days))
	for _, d := range days {
		rows = append(rows, table.Row{
			d.Date.Label(),
			errorCell(d.ErrorLSTM),
			errorCell(d.ErrorLGBM),
		})
	}
	return rows
}

// errorCell formats a percentage error with a severity marker.
// Cells stay plain text; the table truncates by rune width and would cut ANSI codes.
func errorCell(pct float64) string {
	cell := fmt.Sprintf("%.1f", pct)
	switch {
	case pct >= errorHigh:
		return cell + " !!"
	case pct >= errorMid:
		return cell + " !"
	default:
		return cell
	}
}

func lastRows[T any](rows []T, n int) []T {
	if len(rows) <= n {
		return rows
	}
	return rows[len(rows)-n:]
}
