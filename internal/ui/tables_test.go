package ui

import (
	"strings"
	"testing"

	"github.com/ngmaloney/solar-terminal/internal/models"
	"github.com/ngmaloney/solar-terminal/internal/performance"
)

func TestYieldTableRows_KeepsNewest(t *testing.T) {
	start := models.MustParseDate("2026-03-01")
	var days []models.PerformanceDay
	for i := 0; i < 12; i++ {
		days = append(days, models.PerformanceDay{Date: start.AddDays(i), Actual: float64(i), LSTM: 1.5, LGBM: 2.25})
	}

	rows := yieldTableRows(days)
	if len(rows) != summaryRows {
		t.Fatalf("len(rows) = %d, want %d", len(rows), summaryRows)
	}
	if rows[0][0] != "03 Mar" || rows[len(rows)-1][0] != "12 Mar" {
		t.Errorf("rows span %s..%s, want 03 Mar..12 Mar", rows[0][0], rows[len(rows)-1][0])
	}
	last := rows[len(rows)-1]
	if last[1] != "11.00" || last[2] != "1.50" || last[3] != "2.25" {
		t.Errorf("last row = %v", last)
	}
}

func TestErrorCell_Severity(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{4.2, "4.2"},
		{10, "10.0 !"},
		{24.9, "24.9 !"},
		{25, "25.0 !!"},
	}
	for _, tt := range tests {
		if got := errorCell(tt.pct); got != tt.want {
			t.Errorf("errorCell(%v) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}

func TestErrorTable_ReadOnly(t *testing.T) {
	days := []performance.ErrorDay{
		{PerformanceDay: models.PerformanceDay{Date: models.MustParseDate("2026-03-09")}, ErrorLSTM: 30, ErrorLGBM: 5},
	}
	tbl := newErrorTable(days)
	if tbl.Focused() {
		t.Error("error table should not take focus")
	}
	view := tbl.View()
	for _, want := range []string{"LSTM %", "09 Mar", "30.0 !!", "5.0"} {
		if !strings.Contains(view, want) {
			t.Errorf("error table missing %q:\n%s", want, view)
		}
	}
}

func TestRenderErrorPane_Empty(t *testing.T) {
	if got := renderErrorPane(nil); !strings.Contains(got, "no settled days") {
		t.Errorf("renderErrorPane(nil) = %q", got)
	}
}
