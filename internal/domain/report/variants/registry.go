// Package variants holds the report variants of the ERP: one descriptor (headings, row
// mapping, column widths) per exported entity.
package variants

import (
	"sort"
	"strings"

	"github.com/diillson/erp-reports/internal/domain/entity"
	"github.com/diillson/erp-reports/internal/domain/report"
)

var registry = map[string]report.Descriptor{}

func newDescriptor(key, title string, columns entity.ColumnSpec, mapRow report.MapRowFunc) report.Descriptor {
	for i := range columns {
		columns[i].Index = i + 1
	}
	d := report.Descriptor{
		Key:      key,
		Title:    title,
		Headings: columns.Headings,
		MapRow:   mapRow,
		Columns:  columns,
	}
	registry[key] = d
	return d
}

// Lookup devolve o descritor de um relatório, sem diferenciar maiúsculas.
func Lookup(key string) (report.Descriptor, bool) {
	d, ok := registry[strings.ToLower(strings.TrimSpace(key))]
	return d, ok
}

// Keys returns the registered report keys, sorted.
func Keys() []string {
	keys := make([]string, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// All returns every descriptor ordered by key.
func All() []report.Descriptor {
	keys := Keys()
	all := make([]report.Descriptor, len(keys))
	for i, k := range keys {
		all[i] = registry[k]
	}
	return all
}
