package analytics

import (
	"sort"

	"equipment-feasibility-backend/internal/feasibility"
)

// LabelCount is the number of items carrying one recommendation label.
type LabelCount struct {
	Recommendation feasibility.Recommendation `json:"rekomendasi"`
	Count          int                        `json:"jumlah"`
}

// RecommendationDistribution counts items per recommendation, most frequent
// first. Labels with no items are left out.
func RecommendationDistribution(t feasibility.Table) []LabelCount {
	counts := make(map[feasibility.Recommendation]int)
	for _, r := range t {
		counts[r.Recommendation]++
	}

	out := make([]LabelCount, 0, len(counts))
	for _, rec := range feasibility.Recommendations() {
		if c := counts[rec]; c > 0 {
			out = append(out, LabelCount{Recommendation: rec, Count: c})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
