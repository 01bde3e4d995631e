package model

import "time"

// Equipment is one rentable item of the catalog.
type Equipment struct {
	Code         string     `gorm:"column:kode_barang;primaryKey;size:64"`
	Name         string     `gorm:"column:nama_barang;size:256;not null;default:''"`
	Category     string     `gorm:"column:kategori;size:128;index;not null;default:''"`
	PurchaseDate *time.Time `gorm:"column:tanggal_pembelian"`
	Position     int        `gorm:"column:urutan;not null;default:0"` // catalog order
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Equipment) TableName() string { return "katalog_barang" }
