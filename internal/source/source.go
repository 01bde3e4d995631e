// Package source opens the configured provider of the three input tables.
package source

import (
	"fmt"
	"log"

	"equipment-feasibility-backend/config"
	"equipment-feasibility-backend/internal/db"
	"equipment-feasibility-backend/internal/insight"
	"equipment-feasibility-backend/internal/loader"
	"equipment-feasibility-backend/internal/store"
)

// Open returns the source selected by cfg.Source.Kind and a function that
// releases its resources.
func Open(cfg *config.Config) (insight.Source, func() error, error) {
	switch cfg.Source.Kind {
	case config.SourceFiles:
		log.Printf("Reading source tables from files (catalog=%q, rentals=%q, maintenance=%q)",
			cfg.Source.CatalogPath, cfg.Source.RentalsPath, cfg.Source.MaintenancePath)
		return loader.NewFileSource(FilePaths(cfg), cfg.Analysis.Location), func() error { return nil }, nil

	case config.SourceDatabase:
		s, err := OpenStore(cfg)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := s.DB().DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		return s, sqlDB.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported source kind %q", cfg.Source.Kind)
	}
}

// OpenStore connects to the configured database.
func OpenStore(cfg *config.Config) (store.Store, error) {
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		return nil, err
	}
	return store.NewGormStore(gormDB), nil
}

// FilePaths returns the configured source file locations.
func FilePaths(cfg *config.Config) loader.Paths {
	return loader.Paths{
		Catalog:     cfg.Source.CatalogPath,
		Rentals:     cfg.Source.RentalsPath,
		Maintenance: cfg.Source.MaintenancePath,
	}
}
