package entity

import "time"

// ReportMetadata descreve o bloco de cabeçalho de um relatório exportado.
type ReportMetadata struct {
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle"`
	GeneratedAt time.Time `json:"generated_at"`
	GeneratedBy string    `json:"generated_by,omitempty"`
}

// ReportRow is one record as supplied by the caller. Only report MapRow functions read it.
type ReportRow map[string]interface{}

// Column describes one output column of a report variant.
type Column struct {
	Index   int     `json:"index"`
	Heading string  `json:"heading"`
	Width   float64 `json:"width"`
}

// ColumnSpec é a sequência ordenada de colunas de um relatório.
type ColumnSpec []Column

// Headings returns the column headings in order.
func (cs ColumnSpec) Headings() []string {
	headings := make([]string, len(cs))
	for i, c := range cs {
		headings[i] = c.Heading
	}
	return headings
}

// Widths returns the column widths in order.
func (cs ColumnSpec) Widths() []float64 {
	widths := make([]float64, len(cs))
	for i, c := range cs {
		widths[i] = c.Width
	}
	return widths
}

// Line is one row of the grid. Cells hold string, int64 or float64 values.
type Line []interface{}

// ReportGrid is the full sheet: title block, filter block, header and data lines.
type ReportGrid []Line

// LayoutHints locate the table inside the grid. All indexes are 1-based.
type LayoutHints struct {
	HeaderRowIndex    int `json:"header_row_index"`
	FirstDataRowIndex int `json:"first_data_row_index"`
	LastDataRowIndex  int `json:"last_data_row_index"`
	LastColumnIndex   int `json:"last_column_index"`
}

// Document agrupa tudo o que um backend de renderização precisa para um relatório.
type Document struct {
	Report   string         `json:"report"`
	Metadata ReportMetadata `json:"metadata"`
	Filters  FilterSet      `json:"filters"`
	Columns  ColumnSpec     `json:"columns"`
	Grid     ReportGrid     `json:"grid"`
	Layout   LayoutHints    `json:"layout"`
	RowCount int            `json:"row_count"`
}
