package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/diewo77/invoicing-admin/internal/api"
	"github.com/diewo77/invoicing-admin/internal/cart"
	"github.com/diewo77/invoicing-admin/internal/middleware"
	"github.com/diewo77/invoicing-admin/internal/session"
)

// InvoiceHandler drives the invoice-building workflow: pick a customer,
// accumulate a cart, submit header-then-items, and inspect or print the
// result.
type InvoiceHandler struct {
	API    *api.Client
	Logger *zap.Logger
}

func NewInvoiceHandler(client *api.Client, logger *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{API: client, Logger: logger}
}

// Page: GET /facturas. Customers, products, and invoices load concurrently;
// one failure fails the page with an inline error.
func (h *InvoiceHandler) Page(w http.ResponseWriter, r *http.Request) {
	data := basePage(w, r)
	token, _ := session.FromContext(r.Context())

	var (
		clientes  []api.Cliente
		productos []api.Producto
		facturas  []api.Factura
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		clientes, err = h.API.Clientes(ctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		productos, err = h.API.Productos(ctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		facturas, err = h.API.Facturas(ctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		h.Logger.Error("invoice page load failed", zap.Error(err))
		data["Error"] = "Error al cargar datos: " + err.Error()
	}

	draft := cart.FromRequest(r)
	data["Clientes"] = clientes
	data["Productos"] = productos
	data["Facturas"] = facturas
	data["Cart"] = draft.Lines
	data["SelectedClienteID"] = draft.ClienteID
	renderTemplate(w, r, "facturas", data)
}

// AddToCart: POST /facturas/cart. Validates the staged product/quantity
// locally before touching the backend, then merges into the draft: a
// product already in the cart gets its quantity incremented.
func (h *InvoiceHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	draft := cart.FromRequest(r)
	// The customer selection rides along so it survives the redirect.
	if v, err := strconv.Atoi(r.FormValue("cliente_id")); err == nil {
		draft.ClienteID = v
	}

	productoID, _ := strconv.Atoi(r.FormValue("producto_id"))
	cantidad, err := strconv.Atoi(r.FormValue("cantidad"))
	if err != nil {
		cantidad = 0
	}
	if productoID == 0 || cantidad < 1 {
		cart.Write(w, draft)
		middleware.FlashError(w, "Por favor, selecciona un producto y una cantidad válida.")
		http.Redirect(w, r, "/facturas", statusSeeOther)
		return
	}

	token, _ := session.FromContext(r.Context())
	productos, err := h.API.Productos(r.Context(), token)
	if err != nil {
		cart.Write(w, draft)
		middleware.FlashError(w, "Error al cargar datos: "+err.Error())
		http.Redirect(w, r, "/facturas", statusSeeOther)
		return
	}
	var producto *api.Producto
	for i := range productos {
		if productos[i].ID == productoID {
			producto = &productos[i]
			break
		}
	}
	if producto == nil {
		cart.Write(w, draft)
		middleware.FlashError(w, "Producto no encontrado.")
		http.Redirect(w, r, "/facturas", statusSeeOther)
		return
	}
	if err := draft.Add(producto.ID, producto.Nombre, cantidad); err != nil {
		cart.Write(w, draft)
		middleware.FlashError(w, "Por favor, selecciona un producto y una cantidad válida.")
		http.Redirect(w, r, "/facturas", statusSeeOther)
		return
	}
	cart.Write(w, draft)
	http.Redirect(w, r, "/facturas", statusSeeOther)
}

// ClearCart: POST /facturas/cart/clear. Discards the whole draft, customer
// selection included. Purely local; the backend never sees drafts.
func (h *InvoiceHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	cart.Drop(w)
	middleware.Flash(w, "Carrito vaciado.")
	http.Redirect(w, r, "/facturas", statusSeeOther)
}

// Submit: POST /facturas. Two-phase write: create the header, then attach
// every cart line in parallel. A missing selection or empty cart fails
// locally with zero backend requests. On partial item failure the header
// stays behind with whatever items made it; only the first error is shown.
func (h *InvoiceHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	draft := cart.FromRequest(r)
	if v, err := strconv.Atoi(r.FormValue("cliente_id")); err == nil && v > 0 {
		draft.ClienteID = v
	}
	if draft.ClienteID == 0 || draft.Empty() {
		cart.Write(w, draft)
		middleware.FlashError(w, "Debes seleccionar un cliente y añadir al menos un producto.")
		http.Redirect(w, r, "/facturas", statusSeeOther)
		return
	}

	token, _ := session.FromContext(r.Context())
	facturaID, err := h.API.CreateFactura(r.Context(), token, draft.ClienteID)
	if err != nil {
		h.Logger.Error("create factura failed", zap.Int("cliente_id", draft.ClienteID), zap.Error(err))
		middleware.FlashError(w, "Error al crear la factura: "+err.Error())
		http.Redirect(w, r, "/facturas", statusSeeOther)
		return
	}

	g, ctx := errgroup.WithContext(r.Context())
	for _, line := range draft.Lines {
		line := line
		g.Go(func() error {
			return h.API.AddItem(ctx, token, facturaID, line.ProductoID, line.Cantidad)
		})
	}
	if err := g.Wait(); err != nil {
		// No compensation: the header stays with however many items
		// succeeded. The draft is kept so nothing typed is lost.
		h.Logger.Error("add items failed", zap.Int("factura_id", facturaID), zap.Error(err))
		cart.Write(w, draft)
		middleware.FlashError(w, "Error al crear la factura: "+err.Error())
		http.Redirect(w, r, "/facturas", statusSeeOther)
		return
	}

	h.Logger.Info("factura created",
		zap.Int("factura_id", facturaID),
		zap.Int("cliente_id", draft.ClienteID),
		zap.Int("items", len(draft.Lines)))
	cart.Drop(w)
	middleware.Flash(w, fmt.Sprintf("¡Factura #%d creada con éxito!", facturaID))
	http.Redirect(w, r, "/facturas", statusSeeOther)
}

// Detail: GET /facturas/detalle?id=N. Line values (precio, importe) come
// straight from the backend's detail endpoint.
func (h *InvoiceHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil || id <= 0 {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	token, _ := session.FromContext(r.Context())
	items, err := h.API.Detalle(r.Context(), token, id)
	if err != nil {
		h.Logger.Error("factura detail failed", zap.Int("factura_id", id), zap.Error(err))
		middleware.FlashError(w, "Error al cargar el detalle de la factura: "+err.Error())
		http.Redirect(w, r, "/facturas", statusSeeOther)
		return
	}
	data := basePage(w, r)
	data["FacturaID"] = id
	data["Items"] = items
	renderTemplate(w, r, "factura_detalle", data)
}

// PDF: GET /facturas/pdf?id=N. Streams the backend's rendition inline so
// the browser opens it in the new tab the template targets.
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil || id <= 0 {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	token, _ := session.FromContext(r.Context())
	pdf, contentType, err := h.API.FacturaPDF(r.Context(), token, id)
	if err != nil {
		h.Logger.Error("factura pdf failed", zap.Int("factura_id", id), zap.Error(err))
		middleware.FlashError(w, "Error al generar el PDF: "+err.Error())
		http.Redirect(w, r, "/facturas", statusSeeOther)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=\"factura-%d.pdf\"", id))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
