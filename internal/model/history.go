package model

import "time"

// RentalEvent is one row of the rental log.
type RentalEvent struct {
	ID         int64      `gorm:"primaryKey;autoIncrement"`
	RentalID   string     `gorm:"column:id_penyewaan;size:64;not null;default:''"`
	Code       string     `gorm:"column:kode_barang;size:64;index;not null"`
	RentalDate *time.Time `gorm:"column:tanggal_sewa;index"`
	Duration   *float64   `gorm:"column:durasi_sewa"`
	ReturnDate *time.Time `gorm:"column:tanggal_kembali"`
}

func (RentalEvent) TableName() string { return "riwayat_penyewaan" }

// MaintenanceEvent is one row of the maintenance log.
type MaintenanceEvent struct {
	ID              int64      `gorm:"primaryKey;autoIncrement"`
	MaintenanceID   string     `gorm:"column:id_maintenance;size:64;not null;default:''"`
	Code            string     `gorm:"column:kode_barang;size:64;index;not null"`
	MaintenanceDate *time.Time `gorm:"column:tanggal_maintenance"`
	Severity        string     `gorm:"column:severity;size:64;not null;default:''"`
	Condition       string     `gorm:"column:kondisi_setelah_perbaikan;size:128;not null;default:''"`
}

func (MaintenanceEvent) TableName() string { return "riwayat_maintenance" }
