package feasibility

import (
	"fmt"
	"sort"
)

// Stage is the lifecycle stage of an item.
type Stage int

const (
	StagePrime Stage = iota
	StageActive
	StageUnderutilized
	StageAging
	StageMaintenanceHeavy
	StageEndOfLife
)

var stageLabels = [...]string{
	StagePrime:            "PRIME - Kondisi Optimal",
	StageActive:           "ACTIVE - Produktif",
	StageUnderutilized:    "UNDERUTILIZED - Kurang Digunakan",
	StageAging:            "AGING - Perlu Perhatian",
	StageMaintenanceHeavy: "MAINTENANCE HEAVY - Beban Tinggi",
	StageEndOfLife:        "END OF LIFE - Pertimbangkan Penggantian",
}

// Stages lists every lifecycle stage in evaluation order.
func Stages() []Stage {
	return []Stage{StagePrime, StageActive, StageUnderutilized, StageAging, StageMaintenanceHeavy, StageEndOfLife}
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageLabels) {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageLabels[s]
}

// MarshalText encodes the stage as its label.
func (s Stage) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(stageLabels) {
		return nil, fmt.Errorf("unknown stage %d", int(s))
	}
	return []byte(stageLabels[s]), nil
}

func (s *Stage) UnmarshalText(text []byte) error {
	for i, label := range stageLabels {
		if label == string(text) {
			*s = Stage(i)
			return nil
		}
	}
	return fmt.Errorf("unknown stage %q", text)
}

// StagedRecord is an insight record annotated with its lifecycle stage.
type StagedRecord struct {
	Record
	Stage Stage `json:"lifecycle_stage"`
}

// ClassifyStage evaluates the stage rules in priority order; the first match wins.
// medianRentals is the median rental count over the whole insight table.
func ClassifyStage(r Record, medianRentals float64) Stage {
	freq := float64(r.RentalCount)
	switch {
	case r.Score >= 85 && r.RentalCount > 0:
		return StagePrime
	case r.Score >= 70 && freq >= medianRentals:
		return StageActive
	case r.Score >= 70:
		return StageUnderutilized
	case r.Score >= 40 && r.MaintenanceRatio < 0.5:
		return StageAging
	case r.Score >= 40:
		return StageMaintenanceHeavy
	default:
		return StageEndOfLife
	}
}

// ClassifyLifecycle annotates every record with its stage. The median rental
// count is computed once over the full table.
func ClassifyLifecycle(t Table) []StagedRecord {
	out := make([]StagedRecord, 0, len(t))
	if len(t) == 0 {
		return out
	}
	median := MedianRentalCount(t)
	for _, r := range t {
		out = append(out, StagedRecord{Record: r, Stage: ClassifyStage(r, median)})
	}
	return out
}

// MedianRentalCount returns the median of freq_sewa over the table; an even
// number of rows averages the two middle values. Empty tables yield 0.
func MedianRentalCount(t Table) float64 {
	if len(t) == 0 {
		return 0
	}
	counts := make([]int, len(t))
	for i, r := range t {
		counts[i] = r.RentalCount
	}
	sort.Ints(counts)
	mid := len(counts) / 2
	if len(counts)%2 == 1 {
		return float64(counts[mid])
	}
	return float64(counts[mid-1]+counts[mid]) / 2
}
