package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/diewo77/invoicing-admin/internal/api"
	"github.com/diewo77/invoicing-admin/internal/middleware"
	"github.com/diewo77/invoicing-admin/internal/session"
)

type ProductHandler struct {
	API    *api.Client
	Logger *zap.Logger
}

func NewProductHandler(client *api.Client, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{API: client, Logger: logger}
}

type productoForm struct {
	Nombre       string
	Descripcion  string
	Stock        string
	PrecioCompra string
	PrecioVenta  string
}

func readProductoForm(r *http.Request) productoForm {
	return productoForm{
		Nombre:       strings.TrimSpace(r.FormValue("nombre")),
		Descripcion:  strings.TrimSpace(r.FormValue("descripcion")),
		Stock:        strings.TrimSpace(r.FormValue("stock")),
		PrecioCompra: strings.TrimSpace(r.FormValue("precio_compra")),
		PrecioVenta:  strings.TrimSpace(r.FormValue("precio_venta")),
	}
}

func (f productoForm) toInput() (api.ProductoInput, error) {
	if f.Nombre == "" {
		return api.ProductoInput{}, fmt.Errorf("el nombre es obligatorio")
	}
	stock, err := strconv.Atoi(f.Stock)
	if err != nil {
		return api.ProductoInput{}, fmt.Errorf("el stock debe ser un número entero")
	}
	compra, err := decimal.NewFromString(f.PrecioCompra)
	if err != nil {
		return api.ProductoInput{}, fmt.Errorf("el precio de compra no es válido")
	}
	venta, err := decimal.NewFromString(f.PrecioVenta)
	if err != nil {
		return api.ProductoInput{}, fmt.Errorf("el precio de venta no es válido")
	}
	return api.ProductoInput{
		Nombre:       f.Nombre,
		Descripcion:  f.Descripcion,
		Stock:        stock,
		PrecioCompra: compra,
		PrecioVenta:  venta,
	}, nil
}

func formFromProducto(p api.Producto) productoForm {
	return productoForm{
		Nombre:       p.Nombre,
		Descripcion:  p.Descripcion,
		Stock:        strconv.Itoa(p.Stock),
		PrecioCompra: p.PrecioCompra.String(),
		PrecioVenta:  p.PrecioVenta.String(),
	}
}

// List: GET /productos
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	data := basePage(w, r)
	token, _ := session.FromContext(r.Context())
	productos, err := h.API.Productos(r.Context(), token)
	if err != nil {
		h.Logger.Error("list productos failed", zap.Error(err))
		data["Error"] = "Error al cargar los productos: " + err.Error()
		data["Productos"] = []api.Producto{}
		data["Form"] = productoForm{}
		data["EditingID"] = 0
		renderTemplate(w, r, "productos", data)
		return
	}
	form := productoForm{}
	editingID := 0
	if v := r.URL.Query().Get("edit"); v != "" {
		if id, aerr := strconv.Atoi(v); aerr == nil {
			for _, p := range productos {
				if p.ID == id {
					form = formFromProducto(p)
					editingID = id
					break
				}
			}
		}
	}
	data["Productos"] = productos
	data["Form"] = form
	data["EditingID"] = editingID
	renderTemplate(w, r, "productos", data)
}

func (h *ProductHandler) rerender(w http.ResponseWriter, r *http.Request, form productoForm, editingID int, errMsg string) {
	data := basePage(w, r)
	token, _ := session.FromContext(r.Context())
	productos, err := h.API.Productos(r.Context(), token)
	if err != nil {
		productos = nil
	}
	data["Productos"] = productos
	data["Form"] = form
	data["EditingID"] = editingID
	data["Error"] = errMsg
	renderTemplate(w, r, "productos", data)
}

// Create: POST /productos
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := readProductoForm(r)
	input, err := form.toInput()
	if err != nil {
		h.rerender(w, r, form, 0, err.Error())
		return
	}
	token, _ := session.FromContext(r.Context())
	created, err := h.API.CreateProducto(r.Context(), token, input)
	if err != nil {
		h.Logger.Error("create producto failed", zap.Error(err))
		h.rerender(w, r, form, 0, "Error al crear el producto: "+err.Error())
		return
	}
	middleware.Flash(w, fmt.Sprintf("Producto #%d creado.", created.ID))
	http.Redirect(w, r, "/productos", statusSeeOther)
}

// Update: POST /productos/update
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil || id <= 0 {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	form := readProductoForm(r)
	input, ferr := form.toInput()
	if ferr != nil {
		h.rerender(w, r, form, id, ferr.Error())
		return
	}
	token, _ := session.FromContext(r.Context())
	if _, err := h.API.UpdateProducto(r.Context(), token, id, input); err != nil {
		h.Logger.Error("update producto failed", zap.Int("id", id), zap.Error(err))
		h.rerender(w, r, form, id, "Error al actualizar el producto: "+err.Error())
		return
	}
	middleware.Flash(w, fmt.Sprintf("Producto #%d actualizado.", id))
	http.Redirect(w, r, "/productos", statusSeeOther)
}

// Delete: POST /productos/delete
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil || id <= 0 {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	token, _ := session.FromContext(r.Context())
	if err := h.API.DeleteProducto(r.Context(), token, id); err != nil {
		h.Logger.Error("delete producto failed", zap.Int("id", id), zap.Error(err))
		middleware.FlashError(w, "Error al eliminar el producto: "+err.Error())
		http.Redirect(w, r, "/productos", statusSeeOther)
		return
	}
	middleware.Flash(w, fmt.Sprintf("Producto #%d eliminado.", id))
	http.Redirect(w, r, "/productos", statusSeeOther)
}
