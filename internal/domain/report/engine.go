// Package report monta a grade tabular de um relatório (título, filtros, cabeçalho e linhas)
// e calcula as coordenadas usadas pelos backends de renderização.
package report

import (
	"strings"
	"time"

	"github.com/diillson/erp-reports/internal/domain/entity"
)

const (
	// DefaultTitle é usado quando o relatório não informa título.
	DefaultTitle = "Report"
	// GeneratedLabel precede a data de geração na terceira linha.
	GeneratedLabel = "Generated:"
	// FiltersLabel abre o bloco de filtros.
	FiltersLabel = "Filters"
	// GeneratedAtLayout formata a data de geração (YYYY-MM-DD HH:mm).
	GeneratedAtLayout = "2006-01-02 15:04"

	// title, subtitle, generated, blank
	prefixLines = 4
)

// now is replaced in tests.
var now = time.Now

// HeadingsFunc produces the fixed column headings of a report variant.
type HeadingsFunc func() []string

// MapRowFunc maps one input record to one grid line, one cell per heading.
type MapRowFunc func(entity.ReportRow) entity.Line

// Descriptor is the data-only configuration of one report variant.
type Descriptor struct {
	Key      string
	Title    string
	Headings HeadingsFunc
	MapRow   MapRowFunc
	Columns  entity.ColumnSpec
}

// Normalize fills the metadata defaults: "Report" title and current time.
func Normalize(meta entity.ReportMetadata) entity.ReportMetadata {
	if strings.TrimSpace(meta.Title) == "" {
		meta.Title = DefaultTitle
	}
	if meta.GeneratedAt.IsZero() {
		meta.GeneratedAt = now()
	}
	return meta
}

// BuildGrid assembles the report sheet line by line. It never fails and never mutates its
// inputs; empty rows or filters yield a header-only table.
func BuildGrid(
	rows []entity.ReportRow,
	filters entity.FilterSet,
	meta entity.ReportMetadata,
	headings HeadingsFunc,
	mapRow MapRowFunc,
) entity.ReportGrid {
	meta = Normalize(meta)
	active := filters.Active()

	grid := make(entity.ReportGrid, 0, prefixLines+filterBlockSize(len(active))+1+len(rows))
	grid = append(grid,
		entity.Line{meta.Title},
		entity.Line{meta.Subtitle},
		entity.Line{GeneratedLabel, meta.GeneratedAt.Format(GeneratedAtLayout)},
		entity.Line{""},
	)

	if len(active) > 0 {
		grid = append(grid, entity.Line{FiltersLabel})
		for _, f := range active {
			grid = append(grid, entity.Line{f.Label, f.Value})
		}
		grid = append(grid, entity.Line{""})
	}

	header := headings()
	headerLine := make(entity.Line, len(header))
	for i, h := range header {
		headerLine[i] = h
	}
	grid = append(grid, headerLine)

	for _, row := range rows {
		grid = append(grid, normalizeLine(mapRow(row), len(header)))
	}

	return grid
}

// ComputeLayout returns the table coordinates for a grid built with the same filters and row count.
func ComputeLayout(filters entity.FilterSet, rowCount, columnCount int) entity.LayoutHints {
	header := prefixLines + filterBlockSize(len(filters.Active())) + 1
	return entity.LayoutHints{
		HeaderRowIndex:    header,
		FirstDataRowIndex: header + 1,
		LastDataRowIndex:  header + max(1, rowCount),
		LastColumnIndex:   columnCount,
	}
}

// Build runs BuildGrid and ComputeLayout with matching arguments and bundles the result.
func Build(d Descriptor, rows []entity.ReportRow, filters entity.FilterSet, meta entity.ReportMetadata) entity.Document {
	if strings.TrimSpace(meta.Title) == "" {
		meta.Title = d.Title
	}
	meta = Normalize(meta)

	headings := d.Headings
	if headings == nil {
		headings = d.Columns.Headings
	}

	grid := BuildGrid(rows, filters, meta, headings, d.MapRow)

	return entity.Document{
		Report:   d.Key,
		Metadata: meta,
		Filters:  entity.FilterSet(filters.Active()),
		Columns:  d.Columns,
		Grid:     grid,
		Layout:   ComputeLayout(filters, len(rows), len(headings())),
		RowCount: len(rows),
	}
}

// filterBlockSize counts the "Filters" line, one line per filter and the trailing blank.
func filterBlockSize(active int) int {
	if active == 0 {
		return 0
	}
	return active + 2
}

// normalizeLine pads short lines with placeholders and trims long ones so every data line
// spans exactly the header width.
func normalizeLine(line entity.Line, width int) entity.Line {
	out := make(entity.Line, width)
	for i := range out {
		if i < len(line) && line[i] != nil {
			out[i] = line[i]
			continue
		}
		out[i] = Placeholder
	}
	return out
}
