package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/diewo77/invoicing-admin/internal/api"
	"github.com/diewo77/invoicing-admin/internal/middleware"
	"github.com/diewo77/invoicing-admin/internal/session"
)

type ClientHandler struct {
	API    *api.Client
	Logger *zap.Logger
}

func NewClientHandler(client *api.Client, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{API: client, Logger: logger}
}

// clienteForm is the text-input buffer backing the customer form. Optional
// fields keep empty strings; DNI stays textual until submit.
type clienteForm struct {
	Nombre    string
	Apellido  string
	DNI       string
	Direccion string
	Telefono  string
}

func readClienteForm(r *http.Request) clienteForm {
	return clienteForm{
		Nombre:    strings.TrimSpace(r.FormValue("nombre")),
		Apellido:  strings.TrimSpace(r.FormValue("apellido")),
		DNI:       strings.TrimSpace(r.FormValue("dni")),
		Direccion: strings.TrimSpace(r.FormValue("direccion")),
		Telefono:  strings.TrimSpace(r.FormValue("telefono")),
	}
}

func (f clienteForm) toInput() (api.ClienteInput, error) {
	if f.Nombre == "" || f.Apellido == "" || f.DNI == "" {
		return api.ClienteInput{}, fmt.Errorf("nombre, apellido y DNI son obligatorios")
	}
	dni, err := strconv.ParseInt(f.DNI, 10, 64)
	if err != nil {
		return api.ClienteInput{}, fmt.Errorf("el DNI debe ser numérico")
	}
	return api.ClienteInput{
		Nombre:    f.Nombre,
		Apellido:  f.Apellido,
		DNI:       dni,
		Direccion: f.Direccion,
		Telefono:  f.Telefono,
	}, nil
}

func formFromCliente(c api.Cliente) clienteForm {
	return clienteForm{
		Nombre:    c.Nombre,
		Apellido:  c.Apellido,
		DNI:       strconv.FormatInt(c.DNI, 10),
		Direccion: c.Direccion,
		Telefono:  c.Telefono,
	}
}

// List: GET /clientes. ?edit=<id> switches the form to update mode with the
// selected record copied into the buffer.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	data := basePage(w, r)
	token, _ := session.FromContext(r.Context())
	clientes, err := h.API.Clientes(r.Context(), token)
	if err != nil {
		h.Logger.Error("list clientes failed", zap.Error(err))
		data["Error"] = "Error al cargar los clientes: " + err.Error()
		data["Clientes"] = []api.Cliente{}
		data["Form"] = clienteForm{}
		data["EditingID"] = 0
		renderTemplate(w, r, "clientes", data)
		return
	}
	form := clienteForm{}
	editingID := 0
	if v := r.URL.Query().Get("edit"); v != "" {
		if id, aerr := strconv.Atoi(v); aerr == nil {
			for _, c := range clientes {
				if c.ID == id {
					form = formFromCliente(c)
					editingID = id
					break
				}
			}
		}
	}
	data["Clientes"] = clientes
	data["Form"] = form
	data["EditingID"] = editingID
	renderTemplate(w, r, "clientes", data)
}

// rerender shows the page again with the submitted buffer preserved, after
// a validation or backend error. Only the message changes; the list is
// re-fetched so the table still renders.
func (h *ClientHandler) rerender(w http.ResponseWriter, r *http.Request, form clienteForm, editingID int, errMsg string) {
	data := basePage(w, r)
	token, _ := session.FromContext(r.Context())
	clientes, err := h.API.Clientes(r.Context(), token)
	if err != nil {
		clientes = nil
	}
	data["Clientes"] = clientes
	data["Form"] = form
	data["EditingID"] = editingID
	data["Error"] = errMsg
	renderTemplate(w, r, "clientes", data)
}

// Create: POST /clientes
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := readClienteForm(r)
	input, err := form.toInput()
	if err != nil {
		h.rerender(w, r, form, 0, err.Error())
		return
	}
	token, _ := session.FromContext(r.Context())
	created, err := h.API.CreateCliente(r.Context(), token, input)
	if err != nil {
		h.Logger.Error("create cliente failed", zap.Error(err))
		h.rerender(w, r, form, 0, "Error al crear el cliente: "+err.Error())
		return
	}
	middleware.Flash(w, fmt.Sprintf("Cliente #%d creado.", created.ID))
	http.Redirect(w, r, "/clientes", statusSeeOther)
}

// Update: POST /clientes/update
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil || id <= 0 {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	form := readClienteForm(r)
	input, ferr := form.toInput()
	if ferr != nil {
		h.rerender(w, r, form, id, ferr.Error())
		return
	}
	token, _ := session.FromContext(r.Context())
	if _, err := h.API.UpdateCliente(r.Context(), token, id, input); err != nil {
		h.Logger.Error("update cliente failed", zap.Int("id", id), zap.Error(err))
		h.rerender(w, r, form, id, "Error al actualizar el cliente: "+err.Error())
		return
	}
	middleware.Flash(w, fmt.Sprintf("Cliente #%d actualizado.", id))
	http.Redirect(w, r, "/clientes", statusSeeOther)
}

// Delete: POST /clientes/delete. The confirmation dialog lives in the
// template; by the time this runs the user already accepted it.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
	if err := h.API.DeleteCliente(r.Context(), token, id); err != nil {
		h.Logger.Error("delete cliente failed", zap.Int("id", id), zap.Error(err))
		middleware.FlashError(w, "Error al eliminar el cliente: "+err.Error())
		http.Redirect(w, r, "/clientes", statusSeeOther)
		return
	}
	middleware.Flash(w, fmt.Sprintf("Cliente #%d eliminado.", id))
	http.Redirect(w, r, "/clientes", statusSeeOther)
}
