package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/diillson/erp-reports/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

const (
	maxSheetNameLength = 31
	headerFillColor    = "E7E6E6"
	borderColor        = "000000"
	titleFontSize      = 14
)

var sheetNameReplacer = strings.NewReplacer(":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")")

// RenderXLSX writes the grid into a new workbook and styles it from the layout hints.
func RenderXLSX(doc entity.Document) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := sheetName(doc.Metadata.Title)

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("error naming sheet: %w", err)
	}

	for i, line := range doc.Grid {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			f.Close()
			return nil, err
		}
		values := []interface{}(line)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			f.Close()
			return nil, fmt.Errorf("error writing row %d: %w", i+1, err)
		}
	}

	if err := ApplyStyles(f, sheet, doc.Layout, doc.Columns); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

// ApplyStyles paints an already written sheet: title, subtitle, header, bordered table,
// frozen panes, autofilter and column widths. Re-applying it yields the same sheet.
func ApplyStyles(f *excelize.File, sheet string, layout entity.LayoutHints, columns entity.ColumnSpec) error {
	if layout.LastColumnIndex < 1 {
		return nil
	}
	lastCol, err := excelize.ColumnNumberToName(layout.LastColumnIndex)
	if err != nil {
		return err
	}

	styles, err := newSheetStyles(f)
	if err != nil {
		return err
	}

	header := layout.HeaderRowIndex
	steps := []struct {
		from, to string
		style    int
	}{
		{"A1", "A1", styles.title},
		{"A2", "A2", styles.subtitle},
		{fmt.Sprintf("A%d", header), fmt.Sprintf("%s%d", lastCol, layout.LastDataRowIndex), styles.body},
		{fmt.Sprintf("A%d", header), fmt.Sprintf("%s%d", lastCol, header), styles.header},
	}
	for _, s := range steps {
		if err := f.SetCellStyle(sheet, s.from, s.to, s.style); err != nil {
			return fmt.Errorf("error styling %s:%s: %w", s.from, s.to, err)
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      layout.FirstDataRowIndex - 1,
		TopLeftCell: fmt.Sprintf("A%d", layout.FirstDataRowIndex),
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("error freezing panes: %w", err)
	}

	filterRange := fmt.Sprintf("A%d:%s%d", header, lastCol, layout.LastDataRowIndex)
	if err := f.AutoFilter(sheet, filterRange, []excelize.AutoFilterOptions{}); err != nil {
		return fmt.Errorf("error enabling autofilter: %w", err)
	}

	for i, c := range columns {
		if c.Width <= 0 || i >= layout.LastColumnIndex {
			continue
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, c.Width); err != nil {
			return fmt.Errorf("error setting width of column %s: %w", name, err)
		}
	}

	return nil
}

type sheetStyles struct {
	title, subtitle, header, body int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error

	thin := []excelize.Border{
		{Type: "left", Color: borderColor, Style: 1},
		{Type: "top", Color: borderColor, Style: 1},
		{Type: "right", Color: borderColor, Style: 1},
		{Type: "bottom", Color: borderColor, Style: 1},
	}

	if s.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: titleFontSize}}); err != nil {
		return s, fmt.Errorf("error creating title style: %w", err)
	}
	if s.subtitle, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Italic: true}}); err != nil {
		return s, fmt.Errorf("error creating subtitle style: %w", err)
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFillColor}},
		Border:    thin,
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "center"},
	}); err != nil {
		return s, fmt.Errorf("error creating header style: %w", err)
	}
	if s.body, err = f.NewStyle(&excelize.Style{
		Border:    thin,
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	}); err != nil {
		return s, fmt.Errorf("error creating body style: %w", err)
	}

	return s, nil
}

func sheetName(title string) string {
	name := strings.TrimSpace(sheetNameReplacer.Replace(title))
	name = strings.Trim(name, "'")
	if name == "" {
		return "Report"
	}
	if r := []rune(name); len(r) > maxSheetNameLength {
		name = strings.TrimSpace(string(r[:maxSheetNameLength]))
	}
	return name
}

func writeXLSX(w io.Writer, doc entity.Document) error {
	f, err := RenderXLSX(doc)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("error writing XLSX data: %w", err)
	}
	return nil
}
