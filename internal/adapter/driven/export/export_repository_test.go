package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/diillson/erp-reports/internal/domain/entity"
	"github.com/diillson/erp-reports/internal/domain/report"
	"github.com/diillson/erp-reports/internal/domain/report/variants"
	"github.com/diillson/erp-reports/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var generatedAt = time.Date(2026, 2, 3, 16, 45, 0, 0, time.UTC)

func sampleDocument(rows []entity.ReportRow, filters entity.FilterSet) entity.Document {
	return report.Build(variants.Requisiciones, rows, filters, entity.ReportMetadata{
		Subtitle:    "Febrero 2026",
		GeneratedAt: generatedAt,
		GeneratedBy: "Compras",
	})
}

func sampleRows() []entity.ReportRow {
	return []entity.ReportRow{
		{"folio": "REQ-001", "fecha": "2026-02-01", "solicitante": "Ana López", "estatus": "AUTORIZADA", "subtotal": 100, "iva": 16, "total": 116},
		{"folio": "REQ-002", "fecha": "2026-02-02", "proveedor": map[string]interface{}{"nombre": "Papelera del Bajío"}, "total": "sin dato"},
	}
}

type fakePrinter struct {
	html string
	err  error
}

func (p *fakePrinter) PrintPDF(_ context.Context, html string) ([]byte, error) {
	p.html = html
	if p.err != nil {
		return nil, p.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

func newTestRepository(printer HTMLPrinter) *ExportRepositoryImpl {
	r := newExportRepository(printer)
	r.now = func() time.Time { return generatedAt }
	return r
}

func TestExportCSV(t *testing.T) {
	dir := t.TempDir()
	filters := entity.FilterSet{}.Add("estatus", "AUTORIZADA").Add("area", "")
	doc := sampleDocument(sampleRows(), filters)

	path, err := newTestRepository(nil).Export(context.Background(), "CSV", doc, "requisiciones", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "requisiciones_20260203_164500.csv"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)

	require.Len(t, records, len(doc.Grid))
	assert.Equal(t, []string{"Requisiciones de compra"}, records[0])
	assert.Equal(t, []string{"Generated:", "2026-02-03 16:45"}, records[2])
	assert.Equal(t, []string{"estatus", "AUTORIZADA"}, records[5])
	assert.Equal(t, "Folio", records[doc.Layout.HeaderRowIndex-1][0])
	assert.Equal(t, []string{"REQ-002", "2026-02-02", "—", "—", "—", "Papelera del Bajío", "—", "0.00", "0.00", "0.00"}, records[len(records)-1])
}

func TestExportJSON(t *testing.T) {
	doc := sampleDocument(sampleRows(), nil)

	path, err := newTestRepository(nil).Export(context.Background(), FormatJSON, doc, "req", t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded struct {
		Report string                `json:"report"`
		Layout entity.LayoutHints    `json:"layout"`
		Grid   [][]interface{}       `json:"grid"`
		Meta   entity.ReportMetadata `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "requisiciones", decoded.Report)
	assert.Equal(t, doc.Layout, decoded.Layout)
	assert.Len(t, decoded.Grid, len(doc.Grid))
	assert.Equal(t, "Compras", decoded.Meta.GeneratedBy)
}

func TestExportPDF(t *testing.T) {
	rows := make([]entity.ReportRow, 0, 120)
	for i := 0; i < 120; i++ {
		rows = append(rows, entity.ReportRow{"folio": i, "solicitante": strings.Repeat("Nombre largo ", 4), "total": i * 10})
	}
	doc := sampleDocument(rows, entity.FilterSet{}.Add("sucursal", []string{"Centro", "Norte"}))

	path, err := newTestRepository(nil).Export(context.Background(), FormatPDF, doc, "req", t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestExportPDFWithoutRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writePDF(&buf, sampleDocument(nil, nil)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestExportHTMLPDFUsesPrinter(t *testing.T) {
	printer := &fakePrinter{}
	repo := newTestRepository(printer)
	assert.Contains(t, repo.SupportedFormats(), FormatHTMLPDF)

	path, err := repo.Export(context.Background(), FormatHTMLPDF, sampleDocument(sampleRows(), nil), "req", t.TempDir())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".pdf"))
	assert.Contains(t, printer.html, "REQ-001")

	printer.err = errors.New("chrome not found")
	_, err = repo.Export(context.Background(), FormatHTMLPDF, sampleDocument(nil, nil), "req", t.TempDir())
	assert.ErrorContains(t, err, "chrome not found")
}

func TestExportUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	repo := newTestRepository(nil)

	_, err := repo.Export(context.Background(), "docx", sampleDocument(nil, nil), "req", dir)
	assert.True(t, errors.Is(err, types.ErrUnsupportedFormat))

	_, err = repo.Export(context.Background(), FormatHTMLPDF, sampleDocument(nil, nil), "req", dir)
	assert.True(t, errors.Is(err, types.ErrUnsupportedFormat))
	assert.NotContains(t, repo.SupportedFormats(), FormatHTMLPDF)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSafeBaseName(t *testing.T) {
	assert.Equal(t, "requisiciones_febrero", safeBaseName("requisiciones febrero"))
	assert.Equal(t, "Áreas", safeBaseName("Áreas"))
	assert.Equal(t, "etc_passwd", safeBaseName("../etc/passwd"))
	assert.Equal(t, "report", safeBaseName("  "))
}

func TestCellText(t *testing.T) {
	assert.Equal(t, "", cellText(nil))
	assert.Equal(t, "12", cellText(int64(12)))
	assert.Equal(t, "7", cellText(7))
	assert.Equal(t, "1.5", cellText(1.5))
	assert.Equal(t, "x", cellText("x"))
	assert.Equal(t, "true", cellText(true))
}
