package store

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"equipment-feasibility-backend/internal/feasibility"
	"equipment-feasibility-backend/internal/model"
)

const batchSize = 500

// rentalIDColumn is reported as the rental identifier column when any stored
// rental carries an id.
const rentalIDColumn = "id_penyewaan"

// Store defines the interface for all database operations.
type Store interface {
	// Load reads the three source tables.
	Load(ctx context.Context) (feasibility.Tables, error)
	// Replace swaps the stored tables for t in one transaction.
	Replace(ctx context.Context, t feasibility.Tables) error
	DB() *gorm.DB
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// Load reads the catalog in its import order and both logs in insertion order.
func (s *gormStore) Load(ctx context.Context) (feasibility.Tables, error) {
	db := s.db.WithContext(ctx)

	var equipment []model.Equipment
	if err := db.Order("urutan").Order("kode_barang").Find(&equipment).Error; err != nil {
		return feasibility.Tables{}, fmt.Errorf("failed to load catalog: %w", err)
	}
	var rentals []model.RentalEvent
	if err := db.Order("id").Find(&rentals).Error; err != nil {
		return feasibility.Tables{}, fmt.Errorf("failed to load rentals: %w", err)
	}
	var maintenance []model.MaintenanceEvent
	if err := db.Order("id").Find(&maintenance).Error; err != nil {
		return feasibility.Tables{}, fmt.Errorf("failed to load maintenance: %w", err)
	}

	return feasibility.Tables{
		Catalog:     toCatalog(equipment),
		Rentals:     toRentalTable(rentals),
		Maintenance: toMaintenanceTable(maintenance),
	}, nil
}

// Replace deletes every stored row and inserts t. Duplicate catalog codes
// keep the last row.
func (s *gormStore) Replace(ctx context.Context, t feasibility.Tables) error {
	equipment := fromCatalog(t.Catalog)
	rentals := fromRentals(t.Rentals)
	maintenance := fromMaintenance(t.Maintenance)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, m := range []any{&model.MaintenanceEvent{}, &model.RentalEvent{}, &model.Equipment{}} {
			if err := all.Delete(m).Error; err != nil {
				return fmt.Errorf("failed to clear %T: %w", m, err)
			}
		}

		if len(equipment) > 0 {
			log.Printf("Batch inserting %d catalog items...", len(equipment))
			if err := tx.CreateInBatches(&equipment, batchSize).Error; err != nil {
				return fmt.Errorf("batch insert catalog failed: %w", err)
			}
		}
		if len(rentals) > 0 {
			log.Printf("Batch inserting %d rental events...", len(rentals))
			if err := tx.CreateInBatches(&rentals, batchSize).Error; err != nil {
				return fmt.Errorf("batch insert rentals failed: %w", err)
			}
		}
		if len(maintenance) > 0 {
			log.Printf("Batch inserting %d maintenance events...", len(maintenance))
			if err := tx.CreateInBatches(&maintenance, batchSize).Error; err != nil {
				return fmt.Errorf("batch insert maintenance failed: %w", err)
			}
		}
		return nil
	})
}

func fromCatalog(catalog []feasibility.Equipment) []model.Equipment {
	// Collapse duplicate codes first; a single INSERT cannot touch one row twice.
	index := make(map[string]int, len(catalog))
	out := make([]model.Equipment, 0, len(catalog))
	for _, e := range catalog {
		row := model.Equipment{
			Code:         e.Code,
			Name:         e.Name,
			Category:     e.Category,
			PurchaseDate: e.PurchaseDate,
		}
		if i, ok := index[e.Code]; ok {
			row.Position = out[i].Position
			out[i] = row
			continue
		}
		row.Position = len(out)
		index[e.Code] = len(out)
		out = append(out, row)
	}
	return out
}

func fromRentals(t feasibility.RentalTable) []model.RentalEvent {
	out := make([]model.RentalEvent, 0, len(t.Rows))
	for _, r := range t.Rows {
		out = append(out, model.RentalEvent{
			RentalID:   r.ID,
			Code:       r.Code,
			RentalDate: r.RentalDate,
			Duration:   r.Duration,
			ReturnDate: r.ReturnDate,
		})
	}
	return out
}

func fromMaintenance(t feasibility.MaintenanceTable) []model.MaintenanceEvent {
	out := make([]model.MaintenanceEvent, 0, len(t.Rows))
	for _, m := range t.Rows {
		out = append(out, model.MaintenanceEvent{
			MaintenanceID:   m.ID,
			Code:            m.Code,
			MaintenanceDate: m.Date,
			Severity:        m.Severity,
			Condition:       m.Condition,
		})
	}
	return out
}

func toCatalog(rows []model.Equipment) []feasibility.Equipment {
	out := make([]feasibility.Equipment, 0, len(rows))
	for _, e := range rows {
		out = append(out, feasibility.Equipment{
			Code:         e.Code,
			Name:         e.Name,
			Category:     e.Category,
			PurchaseDate: e.PurchaseDate,
		})
	}
	return out
}

func toRentalTable(rows []model.RentalEvent) feasibility.RentalTable {
	t := feasibility.RentalTable{Rows: make([]feasibility.Rental, 0, len(rows))}
	for _, r := range rows {
		if r.RentalID != "" {
			t.IDColumn = rentalIDColumn
		}
		t.Rows = append(t.Rows, feasibility.Rental{
			Code:       r.Code,
			ID:         r.RentalID,
			Duration:   r.Duration,
			RentalDate: r.RentalDate,
			ReturnDate: r.ReturnDate,
		})
	}
	return t
}

func toMaintenanceTable(rows []model.MaintenanceEvent) feasibility.MaintenanceTable {
	t := feasibility.MaintenanceTable{Rows: make([]feasibility.Maintenance, 0, len(rows))}
	for _, m := range rows {
		t.HasID = t.HasID || m.MaintenanceID != ""
		t.HasSeverity = t.HasSeverity || m.Severity != ""
		t.HasCondition = t.HasCondition || m.Condition != ""
		t.Rows = append(t.Rows, feasibility.Maintenance{
			Code:      m.Code,
			ID:        m.MaintenanceID,
			Date:      m.MaintenanceDate,
			Severity:  m.Severity,
			Condition: m.Condition,
		})
	}
	return t
}
