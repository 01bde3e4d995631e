package analytics

import (
	"sort"

	"equipment-feasibility-backend/internal/feasibility"
)

const (
	topPerformerCount       = 5
	highMaintenanceCount    = 5
	investmentPriorityCount = 10
)

// Strategic is the portfolio-wide summary of an insight table.
type Strategic struct {
	TotalItems       int     `json:"total_items"`
	AvgScore         float64 `json:"avg_kelayakan"`
	TotalRentals     int     `json:"total_sewa"`
	AvgUtilization   float64 `json:"avg_utilization"`
	TotalMaintenance int     `json:"total_maintenance"`

	StatusDistribution map[string]int `json:"status_dist"`
	CriticalCount      int            `json:"critical_count"`
	WarningCount       int            `json:"warning_count"`

	TopPerformers      feasibility.Table `json:"top_performers"`
	HighMaintenance    feasibility.Table `json:"high_maintenance"`
	InvestmentPriority feasibility.Table `json:"investment_priority"`
}

// StrategicInsights summarises the table. It returns nil for an empty table.
//
// Investment priority is not the CriticalItems rule: it keeps items rented
// more often than the median whose score is below 70, ranked by rental count.
func StrategicInsights(t feasibility.Table) *Strategic {
	if len(t) == 0 {
		return nil
	}

	s := &Strategic{
		TotalItems:         len(t),
		StatusDistribution: make(map[string]int),
	}

	var scoreSum float64
	for _, r := range t {
		scoreSum += r.Score
		s.TotalRentals += r.RentalCount
		s.TotalMaintenance += r.MaintenanceCount
		s.StatusDistribution[r.Recommendation.String()]++

		switch {
		case r.Score < 40:
			s.CriticalCount++
		case r.Score < 70:
			s.WarningCount++
		}
	}
	n := float64(len(t))
	s.AvgScore = scoreSum / n
	s.AvgUtilization = float64(s.TotalRentals) / n

	s.TopPerformers = topBy(t, topPerformerCount, func(r feasibility.Record) float64 { return float64(r.RentalCount) })
	s.HighMaintenance = topBy(t, highMaintenanceCount, func(r feasibility.Record) float64 { return r.MaintenanceRatio })

	median := feasibility.MedianRentalCount(t)
	candidates := feasibility.Table{}
	for _, r := range t {
		if float64(r.RentalCount) > median && r.Score < 70 {
			candidates = append(candidates, r)
		}
	}
	s.InvestmentPriority = topBy(candidates, investmentPriorityCount, func(r feasibility.Record) float64 { return float64(r.RentalCount) })

	return s
}

// topBy returns the n records with the largest key; ties keep table order.
func topBy(t feasibility.Table, n int, key func(feasibility.Record) float64) feasibility.Table {
	sorted := make(feasibility.Table, len(t))
	copy(sorted, t)
	sort.SliceStable(sorted, func(i, j int) bool {
		return key(sorted[i]) > key(sorted[j])
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
