package feasibility

import (
	"math"
	"time"
)

// Scoring weights and caps. Every degradation term is capped on its own
// before the terms are combined.
const (
	baseScore = 100.0

	agePenaltyPerDay = 0.01
	agePenaltyCap    = 20.0

	rentalPenaltyPerEvent = 0.5
	rentalPenaltyCap      = 30.0

	rentalDayPenaltyPerDay = 0.05
	rentalDayPenaltyCap    = 20.0

	maintenanceImpactPerEvent = -0.2
	maintenanceImpactFloor    = -15.0
)

// Factors are the per-item inputs of the score.
type Factors struct {
	// AgeDays is ignored unless AgeKnown is set.
	AgeDays          int
	AgeKnown         bool
	RentalCount      int
	RentalDays       float64
	MaintenanceCount int
}

// Score computes the feasibility score for the given factors, clamped to [0, 100].
func Score(f Factors) float64 {
	score := baseScore
	if f.AgeKnown {
		score -= math.Min(float64(f.AgeDays)*agePenaltyPerDay, agePenaltyCap)
	}
	score -= math.Min(float64(f.RentalCount)*rentalPenaltyPerEvent, rentalPenaltyCap)
	score -= math.Min(f.RentalDays*rentalDayPenaltyPerDay, rentalDayPenaltyCap)
	score += math.Max(float64(f.MaintenanceCount)*maintenanceImpactPerEvent, maintenanceImpactFloor)
	return clamp(score, 0, 100)
}

// Compute joins the three tables by equipment code and scores every catalog
// row. A zero ref means "now". An empty catalog yields an empty table.
func Compute(t Tables, ref time.Time) Table {
	if len(t.Catalog) == 0 {
		return Table{}
	}
	if ref.IsZero() {
		ref = time.Now()
	}

	usage := aggregateRentals(t.Rentals)
	maintenance := countMaintenance(t.Maintenance)

	out := make(Table, 0, len(t.Catalog))
	for _, eq := range t.Catalog {
		u := usage[eq.Code]
		m := maintenance[eq.Code]
		age, known := AgeDays(eq.PurchaseDate, ref)

		score := Score(Factors{
			AgeDays:          age,
			AgeKnown:         known,
			RentalCount:      u.count,
			RentalDays:       u.days,
			MaintenanceCount: m,
		})

		out = append(out, Record{
			Code:             eq.Code,
			Name:             eq.Name,
			Category:         eq.Category,
			RentalCount:      u.count,
			RentalDays:       u.days,
			MaintenanceCount: m,
			MaintenanceRatio: MaintenanceRatio(m, u.count),
			Score:            score,
			Recommendation:   ClassifyRecommendation(score),
		})
	}
	return out
}

// AgeDays returns the whole days between purchase and ref, rounded down.
// It reports false when the purchase date is missing.
func AgeDays(purchase *time.Time, ref time.Time) (int, bool) {
	if purchase == nil || purchase.IsZero() {
		return 0, false
	}
	return int(math.Floor(ref.Sub(*purchase).Hours() / 24)), true
}

// MaintenanceRatio is maintenance events per rental event, 0 without rentals.
func MaintenanceRatio(maintenanceCount, rentalCount int) float64 {
	if rentalCount <= 0 {
		return 0
	}
	return float64(maintenanceCount) / float64(rentalCount)
}

type rentalUsage struct {
	count int
	days  float64
}

func aggregateRentals(t RentalTable) map[string]rentalUsage {
	usage := make(map[string]rentalUsage)
	for _, r := range t.Rows {
		if r.Code == "" {
			continue
		}
		u := usage[r.Code]
		// Without an identifier column the duration field is what gets counted.
		if t.IDColumn != "" {
			if r.ID != "" {
				u.count++
			}
		} else if r.Duration != nil {
			u.count++
		}
		if validDuration(r.Duration) {
			u.days += *r.Duration
		}
		usage[r.Code] = u
	}
	return usage
}

// validDuration rejects missing, non-finite and negative durations.
func validDuration(d *float64) bool {
	return d != nil && !math.IsNaN(*d) && !math.IsInf(*d, 0) && *d >= 0
}

func countMaintenance(t MaintenanceTable) map[string]int {
	counts := make(map[string]int)
	for _, m := range t.Rows {
		if m.Code == "" {
			continue
		}
		if t.HasID && m.ID == "" {
			continue
		}
		counts[m.Code]++
	}
	return counts
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
