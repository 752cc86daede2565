package api

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Cliente mirrors the backend customer record. Direccion and Telefono are
// optional on the backend and may arrive as null.
type Cliente struct {
	ID        int    `json:"id"`
	Nombre    string `json:"nombre"`
	Apellido  string `json:"apellido"`
	DNI       int64  `json:"dni"`
	Direccion string `json:"direccion"`
	Telefono  string `json:"telefono"`
}

// ClienteInput is the create/update payload for a customer.
type ClienteInput struct {
	Nombre    string `json:"nombre"`
	Apellido  string `json:"apellido"`
	DNI       int64  `json:"dni"`
	Direccion string `json:"direccion,omitempty"`
	Telefono  string `json:"telefono,omitempty"`
}

type Producto struct {
	ID           int             `json:"id"`
	Nombre       string          `json:"nombre"`
	Descripcion  string          `json:"descripcion"`
	Stock        int             `json:"stock"`
	PrecioCompra decimal.Decimal `json:"precio_compra"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
}

type ProductoInput struct {
	Nombre       string          `json:"nombre"`
	Descripcion  string          `json:"descripcion"`
	Stock        int             `json:"stock"`
	PrecioCompra decimal.Decimal `json:"precio_compra"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
}

// Factura is an invoice header as listed by GET /facturas. Customer and
// creator names are denormalized by the backend for display.
type Factura struct {
	ID              int    `json:"id"`
	Fecha           Fecha  `json:"fecha"`
	ClienteNombre   string `json:"cliente_nombre"`
	ClienteApellido string `json:"cliente_apellido"`
	CreadorUsername string `json:"creador_username"`
}

// DetalleItem is one persisted invoice line as returned by the detail
// endpoint. Precio and Importe are authoritative backend values.
type DetalleItem struct {
	ProductoID int             `json:"producto_id"`
	Nombre     string          `json:"nombre"`
	Cantidad   int             `json:"cantidad"`
	Precio     decimal.Decimal `json:"precio"`
	Importe    decimal.Decimal `json:"importe"`
}

// Fecha wraps time.Time to accept the backend's timestamps, which come
// without a timezone offset (naive datetimes serialized by the backend).
type Fecha struct {
	time.Time
}

var fechaLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (f *Fecha) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		f.Time = time.Time{}
		return nil
	}
	var err error
	for _, layout := range fechaLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			f.Time = t
			return nil
		}
	}
	return err
}

func (f Fecha) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.Format("2006-01-02T15:04:05") + `"`), nil
}

// Display renders the timestamp for table cells.
func (f Fecha) Display() string {
	if f.IsZero() {
		return ""
	}
	return f.Format("02/01/2006 15:04")
}
