package analytics

import "equipment-feasibility-backend/internal/feasibility"

// DefaultCriticalThreshold is the maintenance ratio used by CriticalItems when
// callers have no configured value.
const DefaultCriticalThreshold = 0.3

// criticalScore is the operational alert line: anything below it is critical
// regardless of its maintenance ratio.
const criticalScore = 70.0

// CriticalItems returns the rows whose maintenance ratio exceeds threshold or
// whose score is below 70, in table order.
func CriticalItems(t feasibility.Table, threshold float64) feasibility.Table {
	out := feasibility.Table{}
	for _, r := range t {
		if r.MaintenanceRatio > threshold || r.Score < criticalScore {
			out = append(out, r)
		}
	}
	return out
}
