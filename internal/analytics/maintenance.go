package analytics

import (
	"sort"

	"equipment-feasibility-backend/internal/feasibility"
)

// DefaultTopMaintenanceCount is how many items TopMaintenanceItems returns by default.
const DefaultTopMaintenanceCount = 10

// MaintenanceSummary describes the maintenance log. A distribution is nil
// when the log has no such column.
type MaintenanceSummary struct {
	TotalEvents           int            `json:"total_events"`
	SeverityDistribution  map[string]int `json:"severity_dist,omitempty"`
	ConditionDistribution map[string]int `json:"condition_dist,omitempty"`
}

// SummarizeMaintenance returns nil for an empty log.
func SummarizeMaintenance(m feasibility.MaintenanceTable) *MaintenanceSummary {
	if len(m.Rows) == 0 {
		return nil
	}

	s := &MaintenanceSummary{TotalEvents: len(m.Rows)}
	if m.HasSeverity {
		s.SeverityDistribution = make(map[string]int)
	}
	if m.HasCondition {
		s.ConditionDistribution = make(map[string]int)
	}
	for _, row := range m.Rows {
		if s.SeverityDistribution != nil && row.Severity != "" {
			s.SeverityDistribution[row.Severity]++
		}
		if s.ConditionDistribution != nil && row.Condition != "" {
			s.ConditionDistribution[row.Condition]++
		}
	}
	return s
}

// ItemCount is a number of events attributed to one equipment code.
type ItemCount struct {
	Code  string `json:"kode_barang"`
	Count int    `json:"jumlah_maintenance"`
}

// TopMaintenanceItems ranks equipment codes by maintenance events, ties by code.
func TopMaintenanceItems(m feasibility.MaintenanceTable, n int) []ItemCount {
	if n <= 0 {
		n = DefaultTopMaintenanceCount
	}

	counts := make(map[string]int)
	for _, row := range m.Rows {
		if row.Code == "" || (m.HasID && row.ID == "") {
			continue
		}
		counts[row.Code]++
	}

	out := make([]ItemCount, 0, len(counts))
	for code, c := range counts {
		out = append(out, ItemCount{Code: code, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Code < out[j].Code
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
