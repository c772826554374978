package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/diillson/erp-reports/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRenderXLSXWritesGridAndStyles(t *testing.T) {
	doc := sampleDocument(sampleRows(), entity.FilterSet{}.Add("estatus", "AUTORIZADA"))

	var buf bytes.Buffer
	require.NoError(t, writeXLSX(&buf, doc))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheet := "Requisiciones de compra"
	assert.Equal(t, []string{sheet}, f.GetSheetList())

	value := func(cell string) string {
		v, err := f.GetCellValue(sheet, cell)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "Requisiciones de compra", value("A1"))
	assert.Equal(t, "Febrero 2026", value("A2"))
	assert.Equal(t, "Generated:", value("A3"))
	assert.Equal(t, "2026-02-03 16:45", value("B3"))
	assert.Equal(t, "Filters", value("A5"))
	assert.Equal(t, "AUTORIZADA", value("B6"))

	header := doc.Layout.HeaderRowIndex
	assert.Equal(t, 8, header)
	assert.Equal(t, "Folio", value("A8"))
	assert.Equal(t, "Total", value("J8"))
	assert.Equal(t, "REQ-001", value("A9"))
	assert.Equal(t, "116.00", value("J9"))
	assert.Equal(t, "—", value("G10"))

	headerStyle, err := f.GetCellStyle(sheet, "A8")
	require.NoError(t, err)
	bodyStyle, err := f.GetCellStyle(sheet, "A9")
	require.NoError(t, err)
	titleStyle, err := f.GetCellStyle(sheet, "A1")
	require.NoError(t, err)
	assert.NotZero(t, headerStyle)
	assert.NotZero(t, bodyStyle)
	assert.NotEqual(t, headerStyle, bodyStyle)

	style, err := f.GetStyle(headerStyle)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)

	style, err = f.GetStyle(titleStyle)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
	assert.Equal(t, float64(titleFontSize), style.Font.Size)

	subtitleStyle, err := f.GetCellStyle(sheet, "A2")
	require.NoError(t, err)
	style, err = f.GetStyle(subtitleStyle)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Italic)

	lastBody, err := f.GetCellStyle(sheet, "J10")
	require.NoError(t, err)
	style, err = f.GetStyle(lastBody)
	require.NoError(t, err)
	assert.NotEmpty(t, style.Border)
	require.NotNil(t, style.Alignment)
	assert.True(t, style.Alignment.WrapText)

	panes, err := f.GetPanes(sheet)
	require.NoError(t, err)
	assert.True(t, panes.Freeze)
	assert.Equal(t, header, panes.YSplit)
	assert.Equal(t, "A9", panes.TopLeftCell)

	assertFilterRange(t, f, "$A$8:$J$10")

	width, err := f.GetColWidth(sheet, "C")
	require.NoError(t, err)
	assert.Equal(t, 30.0, width)
}

func TestApplyStylesIsIdempotent(t *testing.T) {
	doc := sampleDocument(sampleRows(), nil)

	f, err := RenderXLSX(doc)
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)
	before, err := f.GetRows(sheet)
	require.NoError(t, err)

	require.NoError(t, ApplyStyles(f, sheet, doc.Layout, doc.Columns))

	after, err := f.GetRows(sheet)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	panes, err := f.GetPanes(sheet)
	require.NoError(t, err)
	assert.Equal(t, doc.Layout.FirstDataRowIndex-1, panes.YSplit)

	width, err := f.GetColWidth(sheet, "A")
	require.NoError(t, err)
	assert.Equal(t, 14.0, width)

	// header on row 5, two data rows
	assertFilterRange(t, f, "$A$5:$J$7")
}

// assertFilterRange checks that the sheet carries exactly one autofilter over ref.
func assertFilterRange(t *testing.T, f *excelize.File, ref string) {
	t.Helper()
	var filters []excelize.DefinedName
	for _, dn := range f.GetDefinedName() {
		if dn.Name == "_xlnm._FilterDatabase" {
			filters = append(filters, dn)
		}
	}
	require.Len(t, filters, 1)
	assert.True(t, strings.HasSuffix(filters[0].RefersTo, ref), "autofilter refers to %s", filters[0].RefersTo)
}

func TestRenderXLSXWithoutRowsKeepsEmptyDataRow(t *testing.T) {
	doc := sampleDocument(nil, nil)

	f, err := RenderXLSX(doc)
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)
	assert.Equal(t, doc.Layout.HeaderRowIndex+1, doc.Layout.LastDataRowIndex)

	cell, err := excelize.CoordinatesToCellName(1, doc.Layout.LastDataRowIndex)
	require.NoError(t, err)
	style, err := f.GetCellStyle(sheet, cell)
	require.NoError(t, err)
	assert.NotZero(t, style)
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Report", sheetName("  "))
	assert.Equal(t, "Altas Bajas", sheetName("Altas/Bajas"))
	assert.Equal(t, "(2026) Conceptos", sheetName("[2026] Conceptos"))

	long := sheetName(strings.Repeat("Requisición ", 5))
	assert.LessOrEqual(t, len([]rune(long)), maxSheetNameLength)
}
