package export

import (
	"fmt"
	"io"

	"github.com/diillson/erp-reports/internal/domain/entity"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfMargin       = 10.0
	pdfFooterHeight = 12.0
	pdfLineHeight   = 5.0
	pdfCellPadding  = 1.0
)

// pdfTable desenha a grade em páginas A4 paisagem, repetindo o cabeçalho a cada quebra.
type pdfTable struct {
	pdf     *gofpdf.Fpdf
	tr      func(string) string
	widths  []float64
	headers []string
}

func writePDF(w io.Writer, doc entity.Document) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	footer := fmt.Sprintf("%s | %s", doc.Metadata.Title, doc.Metadata.GeneratedAt.Format("2006-01-02 15:04"))
	if doc.Metadata.GeneratedBy != "" {
		footer = fmt.Sprintf("Generated by %s | %s", doc.Metadata.GeneratedBy, footer)
	}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-pdfFooterHeight)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, tr(footer), "", 0, "L", false, 0, "")
		pdf.SetX(pdfMargin)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	drawPrefix(pdf, tr, doc)

	pageWidth, _ := pdf.GetPageSize()
	table := &pdfTable{
		pdf:     pdf,
		tr:      tr,
		widths:  scaleWidths(doc.Columns, doc.Layout.LastColumnIndex, pageWidth-2*pdfMargin),
		headers: headerCells(doc),
	}
	table.drawHeader()

	data := dataLines(doc)
	if len(data) == 0 {
		// linha vazia para manter a tabela com pelo menos uma linha
		table.drawRow(make([]string, len(table.widths)))
	}
	for _, line := range data {
		cells := make([]string, len(table.widths))
		for i := range cells {
			if i < len(line) {
				cells[i] = cellText(line[i])
			}
		}
		table.drawRow(cells)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("error writing PDF data: %w", err)
	}
	return nil
}

// drawPrefix renders title, subtitle, generated line and the filter block.
func drawPrefix(pdf *gofpdf.Fpdf, tr func(string) string, doc entity.Document) {
	prefix := doc.Grid
	if h := doc.Layout.HeaderRowIndex - 1; h >= 0 && h <= len(prefix) {
		prefix = prefix[:h]
	}

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 9, tr(lineText(prefix, 0, 0)), "", 1, "L", false, 0, "")

	if subtitle := lineText(prefix, 1, 0); subtitle != "" {
		pdf.SetFont("Arial", "I", 11)
		pdf.CellFormat(0, 7, tr(subtitle), "", 1, "L", false, 0, "")
	}

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("%s %s", lineText(prefix, 2, 0), lineText(prefix, 2, 1))), "", 1, "L", false, 0, "")

	// bloco de filtros: "Filters", entradas, linha em branco
	if len(prefix) > 5 {
		pdf.Ln(2)
		pdf.SetFont("Arial", "B", 9)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 6, tr(lineText(prefix, 4, 0)), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		for i := 5; i < len(prefix)-1; i++ {
			pdf.CellFormat(0, 5, tr(fmt.Sprintf("%s: %s", lineText(prefix, i, 0), lineText(prefix, i, 1))), "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(4)
}

func (t *pdfTable) drawHeader() {
	t.pdf.SetFont("Arial", "B", 9)
	t.pdf.SetTextColor(0, 0, 0)
	t.pdf.SetFillColor(231, 230, 230)
	t.drawCells(t.headers, true)
	t.pdf.SetFont("Arial", "", 8)
}

func (t *pdfTable) drawRow(cells []string) {
	_, pageHeight := t.pdf.GetPageSize()
	if t.pdf.GetY()+t.rowHeight(cells) > pageHeight-pdfFooterHeight-pdfMargin {
		t.pdf.AddPage()
		t.drawHeader()
	}
	t.drawCells(cells, false)
}

func (t *pdfTable) rowHeight(cells []string) float64 {
	lines := 1
	for i, c := range cells {
		if n := len(t.pdf.SplitLines([]byte(t.tr(c)), t.widths[i]-2*pdfCellPadding)); n > lines {
			lines = n
		}
	}
	return float64(lines)*pdfLineHeight + pdfCellPadding
}

func (t *pdfTable) drawCells(cells []string, fill bool) {
	style := "D"
	if fill {
		style = "FD"
	}

	height := t.rowHeight(cells)
	x, y := t.pdf.GetX(), t.pdf.GetY()
	for i, c := range cells {
		t.pdf.Rect(x, y, t.widths[i], height, style)
		for j, part := range t.pdf.SplitLines([]byte(t.tr(c)), t.widths[i]-2*pdfCellPadding) {
			t.pdf.SetXY(x+pdfCellPadding, y+pdfCellPadding/2+float64(j)*pdfLineHeight)
			t.pdf.CellFormat(t.widths[i]-2*pdfCellPadding, pdfLineHeight, string(part), "", 0, "L", false, 0, "")
		}
		x += t.widths[i]
	}
	t.pdf.SetXY(pdfMargin, y+height)
}

// scaleWidths stretches the column widths so the table fills the printable width.
func scaleWidths(columns entity.ColumnSpec, count int, available float64) []float64 {
	if count < 1 {
		count = 1
	}
	widths := make([]float64, count)
	total := 0.0
	for i := range widths {
		widths[i] = 10
		if i < len(columns) && columns[i].Width > 0 {
			widths[i] = columns[i].Width
		}
		total += widths[i]
	}
	for i := range widths {
		widths[i] = widths[i] * available / total
	}
	return widths
}

func headerCells(doc entity.Document) []string {
	count := doc.Layout.LastColumnIndex
	if count < 1 {
		count = 1
	}
	cells := make([]string, count)
	idx := doc.Layout.HeaderRowIndex - 1
	for i := range cells {
		cells[i] = lineText(doc.Grid, idx, i)
	}
	return cells
}

func dataLines(doc entity.Document) []entity.Line {
	first := doc.Layout.FirstDataRowIndex - 1
	if first < 0 || first >= len(doc.Grid) {
		return nil
	}
	return doc.Grid[first:]
}

func lineText(grid entity.ReportGrid, row, col int) string {
	if row < 0 || row >= len(grid) || col >= len(grid[row]) {
		return ""
	}
	return cellText(grid[row][col])
}
