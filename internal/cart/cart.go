// Package cart holds the draft invoice a user is composing: the selected
// customer plus the accumulated line items. The draft lives in a cookie so
// it survives the redirect-after-post cycle without any server-side state.
package cart

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

var (
	ErrNoProduct   = errors.New("no product selected")
	ErrBadQuantity = errors.New("quantity must be at least 1")
)

const cookieName = "draft_factura"

// Line is one pending invoice line. Nombre is a display snapshot taken from
// the product list at add time; the backend stays authoritative for prices.
type Line struct {
	ProductoID int    `json:"producto_id"`
	Nombre     string `json:"nombre"`
	Cantidad   int    `json:"cantidad"`
}

// Cart is the transient invoice draft.
type Cart struct {
	ClienteID int    `json:"cliente_id,omitempty"`
	Lines     []Line `json:"items,omitempty"`
}

// Add merges a product into the draft. Adding a product that already has a
// line increments that line's quantity; there is never more than one line
// per product id.
func (c *Cart) Add(productoID int, nombre string, cantidad int) error {
	if productoID == 0 {
		return ErrNoProduct
	}
	if cantidad < 1 {
		return ErrBadQuantity
	}
	for i := range c.Lines {
		if c.Lines[i].ProductoID == productoID {
			c.Lines[i].Cantidad += cantidad
			return nil
		}
	}
	c.Lines = append(c.Lines, Line{ProductoID: productoID, Nombre: nombre, Cantidad: cantidad})
	return nil
}

// Empty reports whether the draft has no lines.
func (c *Cart) Empty() bool { return len(c.Lines) == 0 }

// Quantity returns the pending quantity for a product, 0 when absent.
func (c *Cart) Quantity(productoID int) int {
	for _, l := range c.Lines {
		if l.ProductoID == productoID {
			return l.Cantidad
		}
	}
	return 0
}

// FromRequest decodes the draft cookie. A missing or corrupt cookie yields
// an empty draft; there is nothing to recover from it.
func FromRequest(r *http.Request) Cart {
	var c Cart
	ck, err := r.Cookie(cookieName)
	if err != nil || ck.Value == "" {
		return c
	}
	raw, err := base64.RawURLEncoding.DecodeString(ck.Value)
	if err != nil {
		return Cart{}
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return Cart{}
	}
	return c
}

// Write persists the draft back into the cookie.
func Write(w http.ResponseWriter, c Cart) {
	raw, err := json.Marshal(c)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Drop deletes the draft cookie.
func Drop(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: cookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1, HttpOnly: true, SameSite: http.SameSiteLaxMode})
}
