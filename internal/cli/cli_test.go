package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	dir         string
	catalog     string
	rentals     string
	maintenance string
}

func writeFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		dir:         dir,
		catalog:     filepath.Join(dir, "katalog.csv"),
		rentals:     filepath.Join(dir, "sewa.csv"),
		maintenance: filepath.Join(dir, "maintenance.csv"),
	}
	require.NoError(t, os.WriteFile(f.catalog, []byte(
		"kode_barang,nama_barang,kategori,tanggal_pembelian\n"+
			"A001,Tenda Dome,Tenda,\n"+
			"B002,Kompor,Masak,\n"), 0o644))
	require.NoError(t, os.WriteFile(f.rentals, []byte(
		"id_penyewaan,kode_barang,tanggal_sewa,durasi_sewa\n"+
			"R1,A001,2024-05-01,4\n"+
			"R2,A001,2024-05-09,4\n"+
			"R3,A001,2024-06-02,4\n"+
			"R4,A001,2024-06-10,4\n"+
			"R5,A001,2024-06-20,4\n"), 0o644))
	require.NoError(t, os.WriteFile(f.maintenance, []byte(
		"id_maintenance,kode_barang,tanggal_maintenance,severity,biaya_perbaikan\n"+
			"M1,A001,2024-05-05,ringan,10000\n"+
			"M2,A001,2024-06-05,ringan,25000\n"), 0o644))
	return f
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CONFIG_PATH", "")
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func (f fixture) fileArgs() []string {
	return []string{"--catalog", f.catalog, "--rentals", f.rentals, "--maintenance", f.maintenance}
}

func TestScore_JSON(t *testing.T) {
	f := writeFixture(t)

	out, err := run(t, append([]string{"score", "--at", "2024-07-01", "-o", "json"}, f.fileArgs()...)...)
	require.NoError(t, err)

	var snap struct {
		Insights []struct {
			Code           string  `json:"kode_barang"`
			Score          float64 `json:"kelayakan"`
			Recommendation string  `json:"rekomendasi"`
		} `json:"insights"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	require.Len(t, snap.Insights, 2)
	assert.Equal(t, "A001", snap.Insights[0].Code)
	assert.InDelta(t, 96.1, snap.Insights[0].Score, 1e-9)
	assert.Equal(t, "B002", snap.Insights[1].Code)
	assert.InDelta(t, 100.0, snap.Insights[1].Score, 1e-9)
	assert.Equal(t, "KONDISI SANGAT BAIK", snap.Insights[1].Recommendation)
}

func TestScore_Table(t *testing.T) {
	f := writeFixture(t)

	out, err := run(t, append([]string{"score", "--at", "2024-07-01"}, f.fileArgs()...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Tenda Dome")
	assert.Contains(t, out, "96.10")
}

func TestScore_BadFlags(t *testing.T) {
	f := writeFixture(t)

	_, err := run(t, append([]string{"score", "--at", "kemarin"}, f.fileArgs()...)...)
	require.Error(t, err)

	_, err = run(t, append([]string{"score", "-o", "yaml"}, f.fileArgs()...)...)
	require.Error(t, err)

	_, err = run(t, "score", "--config", filepath.Join(f.dir, "missing.yaml"))
	require.Error(t, err)
}

func TestReport_Formats(t *testing.T) {
	f := writeFixture(t)

	out, err := run(t, append([]string{"report", "--at", "2024-07-01", "-o", "json", "--threshold", "0.5"}, f.fileArgs()...)...)
	require.NoError(t, err)

	var report Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "2024-07-01", report.Reference)
	require.NotNil(t, report.Strategic)
	assert.Equal(t, 2, report.Strategic.TotalItems)
	assert.Empty(t, report.Critical, "ratio 0.4 is below the 0.5 threshold")
	assert.Len(t, report.RentalTrends, 2)
	require.NotNil(t, report.Maintenance)
	assert.Equal(t, 2, report.Maintenance.TotalEvents)

	out, err = run(t, append([]string{"report", "--at", "2024-07-01", "-o", "markdown"}, f.fileArgs()...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "## Kategori")
	assert.Contains(t, out, "## Paling sering disewa")
	assert.Contains(t, out, "## Rasio maintenance tertinggi")
	assert.Contains(t, out, "## Prioritas investasi")

	out, err = run(t, append([]string{"report", "--at", "2024-07-01"}, f.fileArgs()...)...)
	require.NoError(t, err)
	assert.Contains(t, strings.ToLower(out), "paling sering disewa")
	assert.Contains(t, out, "Tenda Dome")
	assert.Contains(t, out, "| Tenda")
}

func TestImportThenScoreFromDatabase(t *testing.T) {
	f := writeFixture(t)
	dbPath := filepath.Join(f.dir, "kelayakan.db")
	cfgPath := filepath.Join(f.dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"database:\n  driver: sqlite\n  dsn: "+dbPath+"\n"+
			"analysis:\n  timezone: UTC\n"), 0o644))

	out, err := run(t, append([]string{"import", "--config", cfgPath}, f.fileArgs()...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 2 catalog items, 5 rentals, 2 maintenance events")

	out, err = run(t, "score", "--config", cfgPath, "--source", "database", "--at", "2024-07-01", "-o", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "A001,Tenda Dome,Tenda,5,20.00,2,0.40,96.10,KONDISI SANGAT BAIK")
}
