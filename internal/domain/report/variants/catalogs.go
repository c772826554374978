package variants

import (
	"github.com/diillson/erp-reports/internal/domain/entity"
	"github.com/diillson/erp-reports/internal/domain/report"
)

const (
	labelActive   = "Activo"
	labelDown     = "Baja"
	labelInactive = "Inactivo"
)

// Areas lista as áreas com corporativo, sucursal e responsável.
var Areas = newDescriptor("areas", "Áreas",
	entity.ColumnSpec{
		{Heading: "ID", Width: 8},
		{Heading: "Nombre", Width: 30},
		{Heading: "Corporativo", Width: 28},
		{Heading: "Sucursal", Width: 28},
		{Heading: "Responsable", Width: 28},
		{Heading: "Estatus", Width: 12},
	},
	func(row entity.ReportRow) entity.Line {
		return entity.Line{
			report.Integer(row, "id"),
			report.Text(row, "nombre"),
			report.FirstText(row, "corporativo.nombre", "corporativo"),
			report.FirstText(row, "sucursal.nombre", "sucursal"),
			report.FirstText(row, "responsable.nombre", "responsable"),
			report.ActiveLabel(row, "activo", labelActive, labelDown),
		}
	},
)

// Corporativos uses Activo/Inactivo, not Activo/Baja.
var Corporativos = newDescriptor("corporativos", "Corporativos",
	entity.ColumnSpec{
		{Heading: "ID", Width: 8},
		{Heading: "Nombre", Width: 30},
		{Heading: "Razón social", Width: 36},
		{Heading: "RFC", Width: 16},
		{Heading: "Teléfono", Width: 16},
		{Heading: "Correo", Width: 30},
		{Heading: "Estatus", Width: 12},
	},
	func(row entity.ReportRow) entity.Line {
		return entity.Line{
			report.Integer(row, "id"),
			report.Text(row, "nombre"),
			report.Text(row, "razon_social"),
			report.Text(row, "rfc"),
			report.Text(row, "telefono"),
			report.FirstText(row, "email", "correo"),
			report.ActiveLabel(row, "activo", labelActive, labelInactive),
		}
	},
)

var Sucursales = newDescriptor("sucursales", "Sucursales",
	entity.ColumnSpec{
		{Heading: "ID", Width: 8},
		{Heading: "Nombre", Width: 30},
		{Heading: "Corporativo", Width: 28},
		{Heading: "Dirección", Width: 44},
		{Heading: "Teléfono", Width: 16},
		{Heading: "Estatus", Width: 12},
	},
	func(row entity.ReportRow) entity.Line {
		return entity.Line{
			report.Integer(row, "id"),
			report.Text(row, "nombre"),
			report.FirstText(row, "corporativo.nombre", "corporativo"),
			report.FirstText(row, "direccion", "domicilio"),
			report.Text(row, "telefono"),
			report.ActiveLabel(row, "activo", labelActive, labelDown),
		}
	},
)

// Empleados junta nome e sobrenomes quando vêm separados.
var Empleados = newDescriptor("empleados", "Empleados",
	entity.ColumnSpec{
		{Heading: "No. empleado", Width: 14},
		{Heading: "Nombre", Width: 34},
		{Heading: "Correo", Width: 30},
		{Heading: "Corporativo", Width: 26},
		{Heading: "Sucursal", Width: 26},
		{Heading: "Área", Width: 24},
		{Heading: "Puesto", Width: 24},
		{Heading: "Estatus", Width: 12},
	},
	func(row entity.ReportRow) entity.Line {
		return entity.Line{
			report.FirstText(row, "numero_empleado", "id"),
			fullName(row),
			report.FirstText(row, "email", "correo"),
			report.FirstText(row, "corporativo.nombre", "corporativo"),
			report.FirstText(row, "sucursal.nombre", "sucursal"),
			report.FirstText(row, "area.nombre", "area"),
			report.Text(row, "puesto"),
			report.ActiveLabel(row, "activo", labelActive, labelDown),
		}
	},
)

func fullName(row entity.ReportRow) interface{} {
	var name string
	for _, field := range []string{"nombre", "apellido_paterno", "apellido_materno"} {
		v := report.Text(row, field)
		if v == report.Placeholder {
			continue
		}
		if name != "" {
			name += " "
		}
		name += v.(string)
	}
	if name == "" {
		return report.Placeholder
	}
	return name
}
