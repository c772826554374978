package entity

import (
	"fmt"
	"strings"
)

// Filter is one active search criterion. Value is a string or a list of strings.
type Filter struct {
	Label string      `json:"label" yaml:"label" toml:"label"`
	Value interface{} `json:"value" yaml:"value" toml:"value"`
}

// FilterSet keeps filters in insertion order; render order follows it.
type FilterSet []Filter

// Add anexa um filtro preservando a ordem de inserção.
func (fs FilterSet) Add(label string, value interface{}) FilterSet {
	return append(fs, Filter{Label: label, Value: value})
}

// Active returns the filters that survive the empty-value drop, with their joined values.
// The receiver is never modified.
func (fs FilterSet) Active() []Filter {
	active := make([]Filter, 0, len(fs))
	for _, f := range fs {
		joined := JoinFilterValue(f.Value)
		if joined == "" {
			continue
		}
		active = append(active, Filter{Label: f.Label, Value: joined})
	}
	return active
}

// JoinFilterValue renders a filter value: lists become "A, B", blanks become "".
func JoinFilterValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case []string:
		return joinNonEmpty(v)
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			parts = append(parts, fmt.Sprint(item))
		}
		return joinNonEmpty(parts)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func joinNonEmpty(values []string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}
