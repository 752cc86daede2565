package api

import (
	"context"
	"fmt"
	"net/http"
)

// Clientes lists all customers in backend order.
func (c *Client) Clientes(ctx context.Context, token string) ([]Cliente, error) {
	var out []Cliente
	if err := c.get(ctx, token, "/clientes", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCliente returns the created record with its backend-assigned id.
func (c *Client) CreateCliente(ctx context.Context, token string, in ClienteInput) (*Cliente, error) {
	var out Cliente
	if err := c.send(ctx, token, http.MethodPost, "/clientes", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCliente(ctx context.Context, token string, id int, in ClienteInput) (*Cliente, error) {
	var out Cliente
	if err := c.send(ctx, token, http.MethodPut, fmt.Sprintf("/clientes/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCliente(ctx context.Context, token string, id int) error {
	return c.send(ctx, token, http.MethodDelete, fmt.Sprintf("/clientes/%d", id), nil, nil)
}
