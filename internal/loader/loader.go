// Package loader reads the catalog, rental log and maintenance log from CSV
// or XLSX files into the tables the feasibility engine consumes.
package loader

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"equipment-feasibility-backend/internal/feasibility"
	"equipment-feasibility-backend/internal/parse"
)

// Column names of the source files.
const (
	colCode         = "kode_barang"
	colName         = "nama_barang"
	colCategory     = "kategori"
	colPurchaseDate = "tanggal_pembelian"

	colDuration   = "durasi_sewa"
	colRentalDate = "tanggal_sewa"
	colReturnDate = "tanggal_kembali"

	colMaintenanceID   = "id_maintenance"
	colMaintenanceDate = "tanggal_maintenance"
	colSeverity        = "severity"
	colCondition       = "kondisi_setelah_perbaikan"
)

// rentalIDColumns are the accepted names of the rental identifier, by priority.
var rentalIDColumns = []string{"id_penyewaan", "no", "id"}

var (
	// ErrMissingColumn is returned when a non-empty file lacks a required column.
	ErrMissingColumn = errors.New("required column missing")
	// ErrUnsupportedFormat is returned for file extensions other than csv/xlsx.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// Warning is a non-fatal issue in one row of a source file.
type Warning struct {
	File    string `json:"file"`
	Row     int    `json:"row"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s:%d: %s", w.File, w.Row, w.Message)
}

// Paths locates the three source files. Empty or missing paths load as empty tables.
type Paths struct {
	Catalog     string
	Rentals     string
	Maintenance string
}

// Result is the outcome of loading all three files.
type Result struct {
	Tables   feasibility.Tables
	Warnings []Warning
}

// LoadAll loads the three tables. Dates are interpreted in loc.
func LoadAll(p Paths, loc *time.Location) (*Result, error) {
	catalog, w1, err := LoadCatalog(p.Catalog, loc)
	if err != nil {
		return nil, err
	}
	rentals, w2, err := LoadRentals(p.Rentals, loc)
	if err != nil {
		return nil, err
	}
	maintenance, w3, err := LoadMaintenance(p.Maintenance, loc)
	if err != nil {
		return nil, err
	}

	warnings := append(append(w1, w2...), w3...)
	return &Result{
		Tables: feasibility.Tables{
			Catalog:     catalog,
			Rentals:     rentals,
			Maintenance: maintenance,
		},
		Warnings: warnings,
	}, nil
}

// LoadCatalog reads the equipment catalog.
func LoadCatalog(path string, loc *time.Location) ([]feasibility.Equipment, []Warning, error) {
	s, err := readSheet(path)
	if err != nil {
		return nil, nil, err
	}
	if err := s.require(colCode); err != nil {
		return nil, s.warnings, err
	}

	catalog := make([]feasibility.Equipment, 0, len(s.rows))
	for i, row := range s.rows {
		line := i + 2
		code := parse.Code(s.cell(row, colCode))
		if code == "" {
			s.warn(line, "empty %s; row skipped", colCode)
			continue
		}
		catalog = append(catalog, feasibility.Equipment{
			Code:         code,
			Name:         parse.Text(s.cell(row, colName)),
			Category:     parse.Text(s.cell(row, colCategory)),
			PurchaseDate: s.date(row, line, colPurchaseDate, loc),
		})
	}
	return catalog, s.warnings, nil
}

// LoadRentals reads the rental log.
func LoadRentals(path string, loc *time.Location) (feasibility.RentalTable, []Warning, error) {
	s, err := readSheet(path)
	if err != nil {
		return feasibility.RentalTable{}, nil, err
	}
	if err := s.require(colCode); err != nil {
		return feasibility.RentalTable{}, s.warnings, err
	}

	table := feasibility.RentalTable{Rows: make([]feasibility.Rental, 0, len(s.rows))}
	for _, c := range rentalIDColumns {
		if s.has(c) {
			table.IDColumn = c
			break
		}
	}

	for i, row := range s.rows {
		line := i + 2
		code := parse.Code(s.cell(row, colCode))
		if code == "" {
			s.warn(line, "empty %s; row skipped", colCode)
			continue
		}
		rental := feasibility.Rental{
			Code:       code,
			Duration:   parse.NumberPtr(s.cell(row, colDuration)),
			RentalDate: s.date(row, line, colRentalDate, loc),
			ReturnDate: s.date(row, line, colReturnDate, loc),
		}
		if table.IDColumn != "" {
			rental.ID = parse.Text(s.cell(row, table.IDColumn))
		}
		if rental.Duration == nil && parse.Text(s.cell(row, colDuration)) != "" {
			s.warn(line, "unparseable %s %q; treated as missing", colDuration, s.cell(row, colDuration))
		}
		table.Rows = append(table.Rows, rental)
	}
	return table, s.warnings, nil
}

// LoadMaintenance reads the maintenance log. Cost, repair duration and
// technician columns are never read.
func LoadMaintenance(path string, loc *time.Location) (feasibility.MaintenanceTable, []Warning, error) {
	s, err := readSheet(path)
	if err != nil {
		return feasibility.MaintenanceTable{}, nil, err
	}
	if err := s.require(colCode); err != nil {
		return feasibility.MaintenanceTable{}, s.warnings, err
	}

	table := feasibility.MaintenanceTable{
		Rows:         make([]feasibility.Maintenance, 0, len(s.rows)),
		HasID:        s.has(colMaintenanceID),
		HasSeverity:  s.has(colSeverity),
		HasCondition: s.has(colCondition),
	}
	for i, row := range s.rows {
		line := i + 2
		code := parse.Code(s.cell(row, colCode))
		if code == "" {
			s.warn(line, "empty %s; row skipped", colCode)
			continue
		}
		table.Rows = append(table.Rows, feasibility.Maintenance{
			Code:      code,
			ID:        parse.Text(s.cell(row, colMaintenanceID)),
			Date:      s.date(row, line, colMaintenanceDate, loc),
			Severity:  parse.Text(s.cell(row, colSeverity)),
			Condition: parse.Text(s.cell(row, colCondition)),
		})
	}
	return table, s.warnings, nil
}

// date parses an optional date cell, recording a warning when a value is present but unreadable.
func (s *sheet) date(row []string, line int, col string, loc *time.Location) *time.Time {
	raw := s.cell(row, col)
	t := parse.DatePtr(raw, loc)
	if t == nil && parse.Text(raw) != "" {
		s.warn(line, "unparseable %s %q; treated as missing", col, raw)
	}
	return t
}

// FileSource serves the three tables from files on every Load.
type FileSource struct {
	paths Paths
	loc   *time.Location
}

// NewFileSource creates a file-backed source.
func NewFileSource(p Paths, loc *time.Location) *FileSource {
	return &FileSource{paths: p, loc: loc}
}

// Load reads the files again. Row warnings are logged, not returned.
func (s *FileSource) Load(ctx context.Context) (feasibility.Tables, error) {
	if err := ctx.Err(); err != nil {
		return feasibility.Tables{}, err
	}
	res, err := LoadAll(s.paths, s.loc)
	if err != nil {
		return feasibility.Tables{}, err
	}
	if n := len(res.Warnings); n > 0 {
		log.Printf("Loaded source files with %d row warnings; first: %s", n, res.Warnings[0])
	}
	return res.Tables, nil
}
