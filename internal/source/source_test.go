package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equipment-feasibility-backend/config"
	"equipment-feasibility-backend/internal/loader"
	"equipment-feasibility-backend/internal/store"
)

func TestOpen_Files(t *testing.T) {
	dir := t.TempDir()
	catalog := filepath.Join(dir, "katalog.csv")
	require.NoError(t, os.WriteFile(catalog, []byte("kode_barang,nama_barang\nA001,Tenda\n"), 0o644))

	cfg := config.Default()
	cfg.Source.Kind = config.SourceFiles
	cfg.Source.CatalogPath = catalog

	src, closeFn, err := Open(cfg)
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &loader.FileSource{}, src)

	tables, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, tables.Catalog, 1)
}

func TestOpen_SQLite(t *testing.T) {
	cfg := config.Default()
	cfg.Source.Kind = config.SourceDatabase
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.DSN = filepath.Join(t.TempDir(), "kelayakan.db")

	src, closeFn, err := Open(cfg)
	require.NoError(t, err)
	defer closeFn()
	assert.Implements(t, (*store.Store)(nil), src)

	tables, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tables.Catalog)
}

func TestOpen_UnknownKind(t *testing.T) {
	cfg := config.Default()
	cfg.Source.Kind = "ftp"

	_, _, err := Open(cfg)
	require.Error(t, err)
}
