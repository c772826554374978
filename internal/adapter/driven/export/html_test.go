package export

import (
	"strings"
	"testing"

	"github.com/diillson/erp-reports/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML(t *testing.T) {
	filters := entity.FilterSet{}.Add("estatus", "AUTORIZADA").Add("sucursal", []string{"Centro", "Norte"})
	out, err := RenderHTML(sampleDocument(sampleRows(), filters))
	require.NoError(t, err)

	assert.Contains(t, out, "<h1>Requisiciones de compra</h1>")
	assert.Contains(t, out, `<p class="subtitle">Febrero 2026</p>`)
	assert.Contains(t, out, "Generated: 2026-02-03 16:45")
	assert.Contains(t, out, `<span class="chip">estatus: AUTORIZADA</span>`)
	assert.Contains(t, out, `<span class="chip">sucursal: Centro, Norte</span>`)
	assert.Contains(t, out, "<th>Folio</th>")
	assert.Contains(t, out, "<td>REQ-001</td>")
	assert.Contains(t, out, "<td>116.00</td>")
	assert.Contains(t, out, "Generated by Compras")
	assert.Equal(t, 10, strings.Count(out, "<col style="))
}

func TestRenderHTMLEscapesValues(t *testing.T) {
	rows := []entity.ReportRow{{"folio": "<script>alert(1)</script>"}}
	out, err := RenderHTML(sampleDocument(rows, nil))
	require.NoError(t, err)

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestRenderHTMLWithoutRowsOrFilters(t *testing.T) {
	out, err := RenderHTML(sampleDocument(nil, nil))
	require.NoError(t, err)

	assert.NotContains(t, out, `class="filters"`)
	assert.Equal(t, 10, strings.Count(out, "<td>&nbsp;</td>"))
}
