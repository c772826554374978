package report

import (
	"math"
	"strings"
	"time"

	"github.com/diillson/erp-reports/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

const (
	// Placeholder substitui qualquer campo ausente ou ilegível.
	Placeholder = "—"
	// ZeroMoney is what a monetary cell shows for absent or non-numeric input.
	ZeroMoney = "0.00"
	// DateLayout formata colunas de data.
	DateLayout = "2006-01-02"
)

// Lookup reads a field from a row. Dotted paths ("corporativo.nombre") walk nested maps.
func Lookup(row entity.ReportRow, field string) (interface{}, bool) {
	if row == nil {
		return nil, false
	}
	if v, ok := row[field]; ok {
		return v, true
	}

	parts := strings.Split(field, ".")
	if len(parts) < 2 {
		return nil, false
	}

	var current interface{} = map[string]interface{}(row)
	for _, part := range parts {
		m, err := cast.ToStringMapE(current)
		if err != nil {
			return nil, false
		}
		next, ok := m[part]
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// Text returns the field as a string, or the placeholder when it is absent, blank or not scalar.
func Text(row entity.ReportRow, field string) interface{} {
	v, ok := Lookup(row, field)
	if !ok || v == nil {
		return Placeholder
	}
	s, err := cast.ToStringE(v)
	if err != nil || strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return strings.TrimSpace(s)
}

// FirstText returns the first non-placeholder Text among fields.
func FirstText(row entity.ReportRow, fields ...string) interface{} {
	for _, f := range fields {
		if v := Text(row, f); v != Placeholder {
			return v
		}
	}
	return Placeholder
}

// Integer keeps numeric identifiers numeric. Strings are kept verbatim so leading zeros survive.
func Integer(row entity.ReportRow, field string) interface{} {
	v, ok := Lookup(row, field)
	if !ok || v == nil {
		return Placeholder
	}
	switch t := v.(type) {
	case string:
		return Text(row, field)
	case bool:
		return Placeholder
	case float64:
		if !wholeInt64(t) {
			return Placeholder
		}
	case float32:
		if !wholeInt64(float64(t)) {
			return Placeholder
		}
	case uint64:
		if t > math.MaxInt64 {
			return Placeholder
		}
	case uint:
		if uint64(t) > math.MaxInt64 {
			return Placeholder
		}
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return Placeholder
	}
	return n
}

// wholeInt64 reports whether f has no fraction and fits in an int64 (-2^63 <= f < 2^63).
func wholeInt64(f float64) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return false
	}
	return f >= math.MinInt64 && f < -math.MinInt64
}

// Money formats a monetary field with two decimals, a period separator and no grouping.
func Money(row entity.ReportRow, field string) interface{} {
	v, _ := Lookup(row, field)
	return FormatMoney(v)
}

// FormatMoney formats any value as currency text; absent or non-numeric values yield "0.00".
func FormatMoney(v interface{}) string {
	d, ok := toDecimal(v)
	if !ok {
		return ZeroMoney
	}
	return d.StringFixed(2)
}

// Product multiplies two numeric fields and formats the result as money.
func Product(row entity.ReportRow, a, b string) interface{} {
	va, _ := Lookup(row, a)
	vb, _ := Lookup(row, b)
	da, okA := toDecimal(va)
	db, okB := toDecimal(vb)
	if !okA || !okB {
		return ZeroMoney
	}
	return da.Mul(db).StringFixed(2)
}

func toDecimal(v interface{}) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case nil, bool:
		return decimal.Zero, false
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case decimal.Decimal:
		return t, true
	}

	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}

// ActiveLabel maps a status flag to its label; absent or falsy flags are inactive.
func ActiveLabel(row entity.ReportRow, field, active, inactive string) interface{} {
	v, ok := Lookup(row, field)
	if !ok {
		return inactive
	}
	if truthy(v) {
		return active
	}
	return inactive
}

func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		switch s {
		case "activo", "active", "si", "sí", "yes", "y":
			return true
		}
		b, err := cast.ToBoolE(s)
		return err == nil && b
	}
	f, err := cast.ToFloat64E(v)
	return err == nil && f != 0
}

// Date formats a date field as YYYY-MM-DD. Unparseable text is shown as given.
func Date(row entity.ReportRow, field string) interface{} {
	v, ok := Lookup(row, field)
	if !ok || v == nil {
		return Placeholder
	}
	if t, ok := v.(time.Time); ok {
		if t.IsZero() {
			return Placeholder
		}
		return t.Format(DateLayout)
	}

	s, err := cast.ToStringE(v)
	if err != nil || strings.TrimSpace(s) == "" {
		return Placeholder
	}
	t, err := cast.ToTimeE(strings.TrimSpace(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return t.Format(DateLayout)
}

// FirstDate returns the first field that formats as something other than the placeholder.
func FirstDate(row entity.ReportRow, fields ...string) interface{} {
	for _, f := range fields {
		if v := Date(row, f); v != Placeholder {
			return v
		}
	}
	return Placeholder
}
