package api

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// Facturas lists invoice headers with denormalized display names.
func (c *Client) Facturas(ctx context.Context, token string) ([]Factura, error) {
	var out []Factura
	if err := c.get(ctx, token, "/facturas", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateFactura opens an invoice header for the given customer and returns
// the backend-assigned invoice id. A response without an id is a hard
// failure: no items must be attached to an unknown invoice.
func (c *Client) CreateFactura(ctx context.Context, token string, clienteID int) (int, error) {
	var out struct {
		FacturaID int `json:"factura_id"`
	}
	body := map[string]int{"cliente_id": clienteID}
	if err := c.send(ctx, token, http.MethodPost, "/facturas", body, &out); err != nil {
		return 0, err
	}
	if out.FacturaID == 0 {
		return 0, fmt.Errorf("create factura: backend returned no factura_id")
	}
	return out.FacturaID, nil
}

// AddItem attaches one line item to an existing invoice.
func (c *Client) AddItem(ctx context.Context, token string, facturaID, productoID, cantidad int) error {
	body := map[string]int{"producto_id": productoID, "cantidad": cantidad}
	return c.send(ctx, token, http.MethodPost, fmt.Sprintf("/facturas/%d/items", facturaID), body, nil)
}

// Detalle fetches the persisted line items of an invoice. Precio and
// Importe are taken as-is from the backend, never recomputed here.
func (c *Client) Detalle(ctx context.Context, token string, facturaID int) ([]DetalleItem, error) {
	var out []DetalleItem
	if err := c.get(ctx, token, fmt.Sprintf("/facturas/%d/detalle", facturaID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FacturaPDF fetches the rendered PDF of an invoice. On failure the error
// payload is binary from the transport's point of view; newAPIError digs a
// readable detail message out of it when the backend sent one.
func (c *Client) FacturaPDF(ctx context.Context, token string, facturaID int) ([]byte, string, error) {
	path := fmt.Sprintf("/facturas/%d/pdf", facturaID)
	res, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Accept", "application/pdf").
		Get(path)
	if err != nil {
		return nil, "", fmt.Errorf("GET %s: %w", path, err)
	}
	if res.IsError() {
		return nil, "", newAPIError(res.StatusCode(), res.Bytes())
	}
	ct := res.Header().Get("Content-Type")
	if ct == "" {
		ct = "application/pdf"
	}
	c.logger.Debug("fetched invoice pdf",
		zap.Int("factura_id", facturaID),
		zap.Int("bytes", len(res.Bytes())))
	return res.Bytes(), ct, nil
}
