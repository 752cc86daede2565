package api

import (
	"context"
	"fmt"
	"net/http"
)

// Productos lists all products in backend order.
func (c *Client) Productos(ctx context.Context, token string) ([]Producto, error) {
	var out []Producto
	if err := c.get(ctx, token, "/productos", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProducto(ctx context.Context, token string, in ProductoInput) (*Producto, error) {
	var out Producto
	if err := c.send(ctx, token, http.MethodPost, "/productos", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProducto(ctx context.Context, token string, id int, in ProductoInput) (*Producto, error) {
	var out Producto
	if err := c.send(ctx, token, http.MethodPut, fmt.Sprintf("/productos/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProducto(ctx context.Context, token string, id int) error {
	return c.send(ctx, token, http.MethodDelete, fmt.Sprintf("/productos/%d", id), nil, nil)
}
