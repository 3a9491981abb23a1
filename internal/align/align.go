// Package align joins independently fetched power series into rows keyed by
// timestamp.
package align

import (
	"sort"
	"time"

	"github.com/ngmaloney/solar-terminal/internal/models"
)

// rowIndex is an ordered associative structure keyed by canonical instant.
// order keeps first-seen insertion order; the final sort does not depend on it.
type rowIndex struct {
	rows  map[int64]*models.ComparisonRow
	order []int64
}

func newRowIndex(capacity int) *rowIndex {
	return &rowIndex{
		rows:  make(map[int64]*models.ComparisonRow, capacity),
		order: make([]int64, 0, capacity),
	}
}

// upsert returns the row for t, creating it if needed.
func (ix *rowIndex) upsert(t time.Time) *models.ComparisonRow {
	key := models.InstantKey(t)
	if row, ok := ix.rows[key]; ok {
		return row
	}
	row := &models.ComparisonRow{Timestamp: t}
	ix.rows[key] = row
	ix.order = append(ix.order, key)
	return row
}

// sorted returns the rows ascending by instant.
func (ix *rowIndex) sorted() []models.ComparisonRow {
	out := make([]models.ComparisonRow, 0, len(ix.order))
	for _, key := range ix.order {
		out = append(out, *ix.rows[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// Align merges the bundle's LSTM and LGBM series, and the actual series when
// includeActual is set, into one row per distinct instant. Timestamps must
// match exactly; there is no tolerance window. A source with no point at an
// instant leaves its field nil.
func Align(bundle *models.SeriesBundle, includeActual bool) []models.ComparisonRow {
	if bundle == nil {
		return nil
	}

	ix := newRowIndex(len(bundle.LSTM.Data))
	for _, p := range bundle.LSTM.Data {
		ix.upsert(p.Timestamp).LSTMPower = power(p)
	}
	for _, p := range bundle.LGBM.Data {
		ix.upsert(p.Timestamp).LGBMPower = power(p)
	}
	if includeActual {
		for _, p := range bundle.Actual.Data {
			ix.upsert(p.Timestamp).ActualPower = power(p)
		}
	}
	return ix.sorted()
}

func power(p models.SamplePoint) *float64 {
	v := p.Power
	return &v
}
