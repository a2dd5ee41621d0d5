package quotes

import (
	"sort"

	"github.com/guttosm/tickerpulse/internal/domain/models"
)

// clean drops non-positive closes and points outside the period, sorts by date
// and keeps the last close seen for a duplicated date.
func clean(points []models.PricePoint, period models.Period) []models.PricePoint {
	out := make([]models.PricePoint, 0, len(points))
	for _, p := range points {
		if p.Close <= 0 || !period.Contains(p.Date) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	dedup := out[:0]
	for _, p := range out {
		if n := len(dedup); n > 0 && sameDay(dedup[n-1], p) {
			dedup[n-1] = p
			continue
		}
		dedup = append(dedup, p)
	}
	return dedup
}

func sameDay(a, b models.PricePoint) bool {
	ay, am, ad := a.Date.Date()
	by, bm, bd := b.Date.Date()
	return ay == by && am == bm && ad == bd
}
