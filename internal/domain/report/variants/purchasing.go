package variants

import (
	"github.com/diillson/erp-reports/internal/domain/entity"
	"github.com/diillson/erp-reports/internal/domain/report"
)

// Requisiciones lista as requisições de compra com totais monetários.
var Requisiciones = newDescriptor("requisiciones", "Requisiciones de compra",
	entity.ColumnSpec{
		{Heading: "Folio", Width: 14},
		{Heading: "Fecha", Width: 12},
		{Heading: "Solicitante", Width: 30},
		{Heading: "Área", Width: 24},
		{Heading: "Sucursal", Width: 24},
		{Heading: "Proveedor", Width: 30},
		{Heading: "Estatus", Width: 14},
		{Heading: "Subtotal", Width: 14},
		{Heading: "IVA", Width: 12},
		{Heading: "Total", Width: 14},
	},
	func(row entity.ReportRow) entity.Line {
		return entity.Line{
			report.FirstText(row, "folio", "id"),
			report.FirstDate(row, "fecha", "created_at"),
			report.FirstText(row, "solicitante.nombre", "solicitante", "empleado.nombre"),
			report.FirstText(row, "area.nombre", "area"),
			report.FirstText(row, "sucursal.nombre", "sucursal"),
			report.FirstText(row, "proveedor.nombre", "proveedor.razon_social", "proveedor"),
			report.FirstText(row, "estatus", "status"),
			report.Money(row, "subtotal"),
			report.Money(row, "iva"),
			report.Money(row, "total"),
		}
	},
)

// Conceptos are the line items of a requisition or payment voucher.
var Conceptos = newDescriptor("conceptos", "Conceptos",
	entity.ColumnSpec{
		{Heading: "Clave", Width: 14},
		{Heading: "Descripción", Width: 44},
		{Heading: "Unidad", Width: 12},
		{Heading: "Cantidad", Width: 12},
		{Heading: "Precio unitario", Width: 16},
		{Heading: "Importe", Width: 16},
	},
	func(row entity.ReportRow) entity.Line {
		return entity.Line{
			report.FirstText(row, "clave", "codigo"),
			report.FirstText(row, "descripcion", "concepto"),
			report.FirstText(row, "unidad.nombre", "unidad"),
			report.Money(row, "cantidad"),
			report.Money(row, "precio_unitario"),
			importe(row),
		}
	},
)

// importe usa o valor informado; sem ele, calcula cantidad × precio_unitario.
func importe(row entity.ReportRow) interface{} {
	if v, ok := report.Lookup(row, "importe"); ok && v != nil {
		return report.FormatMoney(v)
	}
	return report.Product(row, "cantidad", "precio_unitario")
}
