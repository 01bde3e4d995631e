package feasibility

import "fmt"

// Recommendation is the action label derived from a feasibility score.
type Recommendation int

const (
	RecommendationExcellent Recommendation = iota
	RecommendationOperational
	RecommendationIncreaseMaintenance
	RecommendationSpecialAttention
)

var recommendationLabels = [...]string{
	RecommendationExcellent:           "KONDISI SANGAT BAIK",
	RecommendationOperational:         "LAYAK OPERASIONAL",
	RecommendationIncreaseMaintenance: "TINGGKATKAN PEMELIHARAAN",
	RecommendationSpecialAttention:    "PERLU PERHATIAN KHUSUS",
}

// Recommendations lists every label from best to worst.
func Recommendations() []Recommendation {
	return []Recommendation{
		RecommendationExcellent,
		RecommendationOperational,
		RecommendationIncreaseMaintenance,
		RecommendationSpecialAttention,
	}
}

// ClassifyRecommendation maps a score to its label. Ranges are lower-inclusive.
func ClassifyRecommendation(score float64) Recommendation {
	switch {
	case score >= 85:
		return RecommendationExcellent
	case score >= 70:
		return RecommendationOperational
	case score >= 40:
		return RecommendationIncreaseMaintenance
	default:
		return RecommendationSpecialAttention
	}
}

func (r Recommendation) String() string {
	if r < 0 || int(r) >= len(recommendationLabels) {
		return fmt.Sprintf("Recommendation(%d)", int(r))
	}
	return recommendationLabels[r]
}

// MarshalText encodes the recommendation as its label.
func (r Recommendation) MarshalText() ([]byte, error) {
	if r < 0 || int(r) >= len(recommendationLabels) {
		return nil, fmt.Errorf("unknown recommendation %d", int(r))
	}
	return []byte(recommendationLabels[r]), nil
}

// UnmarshalText decodes a label produced by MarshalText.
func (r *Recommendation) UnmarshalText(text []byte) error {
	for i, label := range recommendationLabels {
		if label == string(text) {
			*r = Recommendation(i)
			return nil
		}
	}
	return fmt.Errorf("unknown recommendation %q", text)
}
