package performance

import (
	"testing"

	"github.com/ngmaloney/solar-terminal/internal/models"
)

func days(start string, n int) []models.PerformanceDay {
	d := models.MustParseDate(start)
	out := make([]models.PerformanceDay, n)
	for i := range out {
		out[i] = models.PerformanceDay{Date: d.AddDays(i), AccuracyLSTM: 90, AccuracyLGBM: 85}
	}
	return out
}

func TestLastN(t *testing.T) {
	rows := days("2026-03-01", 10)

	got := LastN(rows, 30)
	if len(got) != 10 {
		t.Fatalf("LastN(10 rows, 30) returned %d rows, want 10", len(got))
	}
	for i := range rows {
		if got[i].Date != rows[i].Date {
			t.Errorf("row %d = %s, want %s (order must be preserved)", i, got[i].Date, rows[i].Date)
		}
	}

	got = LastN(rows, 3)
	if len(got) != 3 || got[0].Date.String() != "2026-03-08" || got[2].Date.String() != "2026-03-10" {
		t.Errorf("LastN(rows, 3) = %v", got)
	}

	if got := LastN(rows, 0); len(got) != 0 {
		t.Errorf("LastN(rows, 0) = %d rows, want 0", len(got))
	}
}

func TestLastN_DoesNotResort(t *testing.T) {
	rows := []models.PerformanceDay{
		{Date: models.MustParseDate("2026-03-05")},
		{Date: models.MustParseDate("2026-03-01")},
		{Date: models.MustParseDate("2026-03-03")},
	}

	got := LastN(rows, 2)
	if got[0].Date.String() != "2026-03-01" || got[1].Date.String() != "2026-03-03" {
		t.Errorf("LastN re-ordered rows: %v", got)
	}
}

func TestHistoricalOnly(t *testing.T) {
	rows := []models.PerformanceDay{
		{Date: models.MustParseDate("2026-03-08")},
		{Date: models.MustParseDate("2026-03-09")},
		{Date: models.MustParseDate("2026-03-10")},
		{Date: models.MustParseDate("2026-03-11")},
	}

	got := HistoricalOnly(rows, models.MustParseDate("2026-03-10"))
	if len(got) != 2 {
		t.Fatalf("HistoricalOnly returned %d rows, want 2", len(got))
	}
	if got[1].Date.String() != "2026-03-09" {
		t.Errorf("last kept row = %s, want 2026-03-09", got[1].Date)
	}
	for _, r := range got {
		if !r.Date.Before(models.MustParseDate("2026-03-10")) {
			t.Errorf("row %s should have been excluded", r.Date)
		}
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name     string
		accuracy float64
		want     float64
	}{
		{"typical", 92.5, 7.5},
		{"perfect", 100, 0},
		{"over 100 clamps", 105, 0},
		{"no settlement", 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Errors([]models.PerformanceDay{{AccuracyLSTM: tt.accuracy, AccuracyLGBM: tt.accuracy}})
			if got[0].ErrorLSTM != tt.want || got[0].ErrorLGBM != tt.want {
				t.Errorf("Errors(%v) = %v/%v, want %v", tt.accuracy, got[0].ErrorLSTM, got[0].ErrorLGBM, tt.want)
			}
		})
	}
}

func TestNewest(t *testing.T) {
	rows := days("2026-03-01", 3)
	got := Newest(rows)

	if got[0].Date.String() != "2026-03-03" || got[2].Date.String() != "2026-03-01" {
		t.Errorf("Newest() = %v", got)
	}
	if rows[0].Date.String() != "2026-03-01" {
		t.Error("Newest() must not modify its input")
	}
}
