// Package feasibility scores rental equipment from its catalog, rental and
// maintenance history. Everything in this package is a pure function of its
// inputs and the reference instant.
package feasibility

import "time"

// Equipment is a single catalog row.
type Equipment struct {
	Code         string
	Name         string
	Category     string
	PurchaseDate *time.Time
}

// Rental is a single rental log row.
type Rental struct {
	Code       string
	ID         string
	Duration   *float64
	RentalDate *time.Time
	ReturnDate *time.Time
}

// Maintenance is a single maintenance log row.
type Maintenance struct {
	Code      string
	ID        string
	Date      *time.Time
	Severity  string
	Condition string
}

// RentalTable is the rental log together with the name of the identifier
// column its rows were read from. IDColumn is empty when the source had none,
// in which case events are counted by their duration field instead.
type RentalTable struct {
	Rows     []Rental
	IDColumn string
}

// MaintenanceTable is the maintenance log with the presence of its optional columns.
type MaintenanceTable struct {
	Rows         []Maintenance
	HasID        bool
	HasSeverity  bool
	HasCondition bool
}

// Tables groups the three source tables of one computation.
type Tables struct {
	Catalog     []Equipment
	Rentals     RentalTable
	Maintenance MaintenanceTable
}

// Record is the scored row produced for one catalog item.
type Record struct {
	Code             string         `json:"kode_barang"`
	Name             string         `json:"nama_barang"`
	Category         string         `json:"kategori"`
	RentalCount      int            `json:"freq_sewa"`
	RentalDays       float64        `json:"total_hari_sewa"`
	MaintenanceCount int            `json:"jumlah_maintenance"`
	MaintenanceRatio float64        `json:"maintenance_ratio"`
	Score            float64        `json:"kelayakan"`
	Recommendation   Recommendation `json:"rekomendasi"`
}

// Table is the insight table, one Record per catalog row in catalog order.
type Table []Record

// Find returns the record with the given equipment code.
func (t Table) Find(code string) (Record, bool) {
	for _, r := range t {
		if r.Code == code {
			return r, true
		}
	}
	return Record{}, false
}
