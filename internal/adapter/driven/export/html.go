package export

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/diillson/erp-reports/internal/domain/entity"
	"github.com/flosch/pongo2/v6"
)

//go:embed templates/report.html
var reportTemplateHTML []byte

var reportTemplate = pongo2.Must(pongo2.FromBytes(reportTemplateHTML))

// RenderHTML renders the document into the report template. Prefix block, header and rows
// come from the same grid and layout hints used by the spreadsheet output.
func RenderHTML(doc entity.Document) (string, error) {
	prefix := doc.Grid
	if h := doc.Layout.HeaderRowIndex - 1; h >= 0 && h <= len(prefix) {
		prefix = prefix[:h]
	}

	var filters []map[string]string
	for i := 5; i < len(prefix)-1; i++ {
		filters = append(filters, map[string]string{
			"label": lineText(prefix, i, 0),
			"value": lineText(prefix, i, 1),
		})
	}

	headings := headerCells(doc)
	var rows [][]string
	for _, line := range dataLines(doc) {
		cells := make([]string, len(headings))
		for i := range cells {
			if i < len(line) {
				cells[i] = cellText(line[i])
			}
		}
		rows = append(rows, cells)
	}

	widths := scaleWidths(doc.Columns, len(headings), 100)
	percent := make([]string, len(widths))
	for i, w := range widths {
		percent[i] = fmt.Sprintf("%.2f", w)
	}

	out, err := reportTemplate.Execute(pongo2.Context{
		"title":           lineText(prefix, 0, 0),
		"subtitle":        lineText(prefix, 1, 0),
		"generated_label": lineText(prefix, 2, 0),
		"generated_at":    lineText(prefix, 2, 1),
		"generated_by":    strings.TrimSpace(doc.Metadata.GeneratedBy),
		"filters_label":   lineText(prefix, 4, 0),
		"filters":         filters,
		"headings":        headings,
		"rows":            rows,
		"widths":          percent,
	})
	if err != nil {
		return "", fmt.Errorf("error rendering HTML template: %w", err)
	}
	return out, nil
}

func writeHTML(w io.Writer, doc entity.Document) error {
	out, err := RenderHTML(doc)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("error writing HTML data: %w", err)
	}
	return nil
}
