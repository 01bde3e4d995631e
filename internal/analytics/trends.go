package analytics

import (
	"sort"
	"time"

	"equipment-feasibility-backend/internal/feasibility"
)

// MonthCount is the number of rental transactions started in one month.
type MonthCount struct {
	Month string `json:"bulan"`
	Count int    `json:"jumlah_transaksi"`
}

// RentalTrends counts rental transactions per calendar month (YYYY-MM) in
// loc, oldest first. Only rows with a rental date count, and when the log has
// an identifier column only rows carrying an identifier are transactions.
func RentalTrends(r feasibility.RentalTable, loc *time.Location) []MonthCount {
	if loc == nil {
		loc = time.UTC
	}

	counts := make(map[string]int)
	for _, row := range r.Rows {
		if row.RentalDate == nil {
			continue
		}
		if r.IDColumn != "" && row.ID == "" {
			continue
		}
		counts[row.RentalDate.In(loc).Format("2006-01")]++
	}

	out := make([]MonthCount, 0, len(counts))
	for month, c := range counts {
		out = append(out, MonthCount{Month: month, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
