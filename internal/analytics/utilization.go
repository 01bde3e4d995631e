package analytics

import "equipment-feasibility-backend/internal/feasibility"

// DefaultUtilizationCount is how many items Utilization returns by default.
const DefaultUtilizationCount = 20

// Utilization returns the n most rented items.
func Utilization(t feasibility.Table, n int) feasibility.Table {
	if n <= 0 {
		n = DefaultUtilizationCount
	}
	return topBy(t, n, func(r feasibility.Record) float64 { return float64(r.RentalCount) })
}
