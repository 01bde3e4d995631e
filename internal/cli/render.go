package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"equipment-feasibility-backend/internal/feasibility"
	"equipment-feasibility-backend/internal/insight"
)

const (
	formatTable    = "table"
	formatMarkdown = "markdown"
	formatCSV      = "csv"
	formatJSON     = "json"
)

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer, title string, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	if title != "" {
		t.SetTitle(title)
	}
	t.AppendHeader(header)
	return t
}

func render(t table.Writer, format string) {
	switch format {
	case formatMarkdown:
		t.RenderMarkdown()
	case formatCSV:
		t.RenderCSV()
	default:
		t.Render()
	}
}

func round2(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

var recordHeader = table.Row{"kode_barang", "nama_barang", "kategori", "freq_sewa", "total_hari_sewa", "jumlah_maintenance", "maintenance_ratio", "kelayakan", "rekomendasi"}

func recordRow(r feasibility.Record) table.Row {
	return table.Row{r.Code, r.Name, r.Category, r.RentalCount, round2(r.RentalDays), r.MaintenanceCount, round2(r.MaintenanceRatio), round2(r.Score), r.Recommendation.String()}
}

func renderRecords(w io.Writer, format, title string, records feasibility.Table) {
	t := newTable(w, title, recordHeader)
	for _, r := range records {
		t.AppendRow(recordRow(r))
	}
	render(t, format)
}

func renderInsights(w io.Writer, format string, snap *insight.Snapshot) error {
	if format == formatJSON {
		return renderJSON(w, snap)
	}
	title := ""
	if format == formatTable {
		title = "Kelayakan per " + snap.Reference.Format("2006-01-02")
	}
	renderRecords(w, format, title, snap.Insights)
	return nil
}

func renderReport(w io.Writer, format string, r *Report) error {
	if format == formatJSON {
		return renderJSON(w, r)
	}
	section := func(title string) string {
		if format == formatTable {
			return title
		}
		fmt.Fprintf(w, "\n## %s\n\n", title)
		return ""
	}

	if s := r.Strategic; s != nil {
		t := newTable(w, section("Ringkasan "+r.Reference), table.Row{"metrik", "nilai"})
		t.AppendRows([]table.Row{
			{"total_items", s.TotalItems},
			{"avg_kelayakan", round2(s.AvgScore)},
			{"total_sewa", s.TotalRentals},
			{"avg_utilization", round2(s.AvgUtilization)},
			{"total_maintenance", s.TotalMaintenance},
			{"critical_count", s.CriticalCount},
			{"warning_count", s.WarningCount},
		})
		render(t, format)

		renderRecords(w, format, section("Paling sering disewa"), s.TopPerformers)
		renderRecords(w, format, section("Rasio maintenance tertinggi"), s.HighMaintenance)
		renderRecords(w, format, section("Prioritas investasi"), s.InvestmentPriority)
	}

	t := newTable(w, section("Rekomendasi"), table.Row{"rekomendasi", "jumlah"})
	for _, c := range r.Recommendations {
		t.AppendRow(table.Row{c.Recommendation.String(), c.Count})
	}
	render(t, format)

	t = newTable(w, section("Kategori"), table.Row{"kategori", "avg_kelayakan", "min", "max", "jumlah_items", "total_sewa", "total_maintenance", "avg_maintenance_ratio", "roi_indicator"})
	for _, c := range r.Categories {
		t.AppendRow(table.Row{c.Category, round2(c.AvgScore), round2(c.MinScore), round2(c.MaxScore), c.ItemCount, c.TotalRentals, c.TotalMaintenance, round2(c.AvgMaintenanceRatio), round2(c.ROIIndicator)})
	}
	render(t, format)

	renderRecords(w, format, section("Perlu tindakan"), r.Critical)

	stages := make(map[string]int)
	for _, s := range r.Lifecycle {
		stages[s.Stage.String()]++
	}
	t = newTable(w, section("Siklus hidup"), table.Row{"lifecycle_stage", "jumlah"})
	for _, s := range feasibility.Stages() {
		if n := stages[s.String()]; n > 0 {
			t.AppendRow(table.Row{s.String(), n})
		}
	}
	render(t, format)

	if m := r.Maintenance; m != nil {
		t = newTable(w, section("Maintenance"), table.Row{"jenis", "nilai", "jumlah"})
		t.AppendRow(table.Row{"total_events", "", m.TotalEvents})
		for _, k := range sortedKeys(m.SeverityDistribution) {
			t.AppendRow(table.Row{"severity", k, m.SeverityDistribution[k]})
		}
		for _, k := range sortedKeys(m.ConditionDistribution) {
			t.AppendRow(table.Row{"kondisi", k, m.ConditionDistribution[k]})
		}
		render(t, format)
	}

	if len(r.TopMaintenance) > 0 {
		t = newTable(w, section("Maintenance terbanyak"), table.Row{"kode_barang", "jumlah_maintenance"})
		for _, c := range r.TopMaintenance {
			t.AppendRow(table.Row{c.Code, c.Count})
		}
		render(t, format)
	}

	if len(r.RentalTrends) > 0 {
		t = newTable(w, section("Tren penyewaan"), table.Row{"bulan", "jumlah_transaksi"})
		for _, m := range r.RentalTrends {
			t.AppendRow(table.Row{m.Month, m.Count})
		}
		render(t, format)
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
