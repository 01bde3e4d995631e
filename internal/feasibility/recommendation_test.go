package feasibility

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyRecommendation(t *testing.T) {
	testCases := []struct {
		score    float64
		expected string
	}{
		{100, "KONDISI SANGAT BAIK"},
		{85, "KONDISI SANGAT BAIK"},
		{84.999, "LAYAK OPERASIONAL"},
		{70.0, "LAYAK OPERASIONAL"},
		{69.999, "TINGGKATKAN PEMELIHARAAN"},
		{40, "TINGGKATKAN PEMELIHARAAN"},
		{39.999, "PERLU PERHATIAN KHUSUS"},
		{0, "PERLU PERHATIAN KHUSUS"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, ClassifyRecommendation(tc.score).String(), "score %v", tc.score)
	}
}

func TestRecommendation_JSON(t *testing.T) {
	b, err := json.Marshal(Record{Code: "A001", Recommendation: RecommendationOperational})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"rekomendasi":"LAYAK OPERASIONAL"`)

	var decoded Record
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, RecommendationOperational, decoded.Recommendation)

	var r Recommendation
	assert.Error(t, r.UnmarshalText([]byte("RUSAK")))
}

func TestRecommendations_Exhaustive(t *testing.T) {
	seen := make(map[string]bool)
	for _, r := range Recommendations() {
		text, err := r.MarshalText()
		require.NoError(t, err)
		seen[string(text)] = true
	}
	assert.Len(t, seen, 4)

	_, err := Recommendation(99).MarshalText()
	assert.Error(t, err)
}
