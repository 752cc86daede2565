package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/diewo77/invoicing-admin/internal/api"
)

// clienteBackend is an in-memory stand-in for the customer endpoints.
type clienteBackend struct {
	mu     sync.Mutex
	nextID int
	list   []api.Cliente
}

func newClienteBackend(seed ...api.Cliente) *clienteBackend {
	b := &clienteBackend{nextID: 1}
	for _, c := range seed {
		b.list = append(b.list, c)
		if c.ID >= b.nextID {
			b.nextID = c.ID + 1
		}
	}
	return b
}

func (b *clienteBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/clientes":
		_ = json.NewEncoder(w).Encode(b.list)
	case r.Method == http.MethodPost && r.URL.Path == "/clientes":
		var in api.ClienteInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		c := api.Cliente{ID: b.nextID, Nombre: in.Nombre, Apellido: in.Apellido, DNI: in.DNI, Direccion: in.Direccion, Telefono: in.Telefono}
		b.nextID++
		b.list = append(b.list, c)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(c)
	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/clientes/"):
		id, _ := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/clientes/"))
		var in api.ClienteInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		for i := range b.list {
			if b.list[i].ID == id {
				b.list[i] = api.Cliente{ID: id, Nombre: in.Nombre, Apellido: in.Apellido, DNI: in.DNI, Direccion: in.Direccion, Telefono: in.Telefono}
				_ = json.NewEncoder(w).Encode(b.list[i])
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Cliente no encontrado"}`))
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/clientes/"):
		id, _ := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/clientes/"))
		for i := range b.list {
			if b.list[i].ID == id {
				b.list = append(b.list[:i], b.list[i+1:]...)
				_, _ = w.Write([]byte(`{"mensaje":"eliminado"}`))
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Cliente no encontrado"}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (b *clienteBackend) byID(id int) (api.Cliente, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range b.list {
		if c.ID == id {
			return c, true
		}
	}
	return api.Cliente{}, false
}

func seedCliente() api.Cliente {
	return api.Cliente{ID: 3, Nombre: "Ana", Apellido: "Pérez", DNI: 30111222, Direccion: "Calle 1", Telefono: "555-0101"}
}

func TestClientListRendersTable(t *testing.T) {
	backend := newClienteBackend(seedCliente())
	h := NewClientHandler(newTestAPI(t, backend), zaptest.NewLogger(t))

	rec := httptest.NewRecorder()
	h.List(rec, getWithToken("/clientes"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{"Ana", "Pérez", "30111222"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
}

func TestClientListEditPrefillsForm(t *testing.T) {
	backend := newClienteBackend(seedCliente())
	h := NewClientHandler(newTestAPI(t, backend), zaptest.NewLogger(t))

	rec := httptest.NewRecorder()
	h.List(rec, getWithToken("/clientes?edit=3"))

	body := rec.Body.String()
	if !strings.Contains(body, "/clientes/update") {
		t.Fatal("form not in update mode")
	}
	if !strings.Contains(body, `value="Ana"`) {
		t.Fatal("form not prefilled")
	}
	if !strings.Contains(body, "Cancelar") {
		t.Fatal("missing cancel link")
	}
}

func TestClientListBackendErrorShowsMessage(t *testing.T) {
	h := NewClientHandler(newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"boom"}`))
	})), zaptest.NewLogger(t))

	rec := httptest.NewRecorder()
	h.List(rec, getWithToken("/clientes"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Error al cargar los clientes") {
		t.Fatalf("missing error message: %s", rec.Body.String())
	}
}

func TestClientCreate(t *testing.T) {
	backend := newClienteBackend()
	h := NewClientHandler(newTestAPI(t, backend), zaptest.NewLogger(t))

	req := postForm("/clientes", url.Values{
		"nombre":    {"Ana"},
		"apellido":  {"Pérez"},
		"dni":       {"30111222"},
		"direccion": {"Calle 1"},
		"telefono":  {"555-0101"},
	})
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != statusSeeOther {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	c, ok := backend.byID(1)
	if !ok {
		t.Fatal("cliente not stored")
	}
	if c.Nombre != "Ana" || c.DNI != 30111222 {
		t.Fatalf("stored = %+v", c)
	}
	ck := cookieByName(rec.Result(), "flash")
	if ck == nil {
		t.Fatal("no flash cookie")
	}
	msg, _ := url.QueryUnescape(ck.Value)
	if msg != "Cliente #1 creado." {
		t.Fatalf("flash = %q", msg)
	}

	// the new record shows up exactly once in the list
	listRec := httptest.NewRecorder()
	h.List(listRec, getWithToken("/clientes"))
	if got := strings.Count(listRec.Body.String(), "<td>Ana</td>"); got != 1 {
		t.Fatalf("created row appears %d times", got)
	}
}

func TestClientCreateValidation(t *testing.T) {
	backend := newClienteBackend()
	h := NewClientHandler(newTestAPI(t, backend), zaptest.NewLogger(t))

	cases := []struct {
		name string
		form url.Values
		want string
	}{
		{"missing fields", url.Values{"nombre": {"Ana"}}, "obligatorios"},
		{"non numeric dni", url.Values{"nombre": {"Ana"}, "apellido": {"Pérez"}, "dni": {"abc"}}, "numérico"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Create(rec, postForm("/clientes", tc.form))
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tc.want) {
				t.Fatalf("body missing %q", tc.want)
			}
		})
	}
	if len(backend.list) != 0 {
		t.Fatalf("invalid input reached backend: %+v", backend.list)
	}

	// the submitted buffer must survive the re-render
	rec := httptest.NewRecorder()
	h.Create(rec, postForm("/clientes", url.Values{"nombre": {"Ana"}}))
	if !strings.Contains(rec.Body.String(), `value="Ana"`) {
		t.Fatal("buffer lost on validation error")
	}
}

func TestClientUpdate(t *testing.T) {
	backend := newClienteBackend(seedCliente())
	h := NewClientHandler(newTestAPI(t, backend), zaptest.NewLogger(t))

	req := postForm("/clientes/update", url.Values{
		"id":       {"3"},
		"nombre":   {"Ana María"},
		"apellido": {"Pérez"},
		"dni":      {"30111222"},
	})
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	if rec.Code != statusSeeOther {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	c, _ := backend.byID(3)
	if c.Nombre != "Ana María" {
		t.Fatalf("stored = %+v", c)
	}

	// same id, updated fields, no duplicate row
	listRec := httptest.NewRecorder()
	h.List(listRec, getWithToken("/clientes"))
	body := listRec.Body.String()
	if got := strings.Count(body, "<td>Ana María</td>"); got != 1 {
		t.Fatalf("updated row appears %d times", got)
	}
	if strings.Contains(body, "<td>Ana</td>") {
		t.Fatal("stale row still listed")
	}
}

func TestClientUpdateRejectsBadID(t *testing.T) {
	h := NewClientHandler(newTestAPI(t, newClienteBackend()), zaptest.NewLogger(t))
	rec := httptest.NewRecorder()
	h.Update(rec, postForm("/clientes/update", url.Values{"nombre": {"Ana"}}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestClientDelete(t *testing.T) {
	backend := newClienteBackend(seedCliente())
	h := NewClientHandler(newTestAPI(t, backend), zaptest.NewLogger(t))

	rec := httptest.NewRecorder()
	h.Delete(rec, postForm("/clientes/delete", url.Values{"id": {"3"}}))

	if rec.Code != statusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if _, ok := backend.byID(3); ok {
		t.Fatal("cliente still stored")
	}

	listRec := httptest.NewRecorder()
	h.List(listRec, getWithToken("/clientes"))
	body := listRec.Body.String()
	if strings.Contains(body, "<td>Ana</td>") {
		t.Fatal("deleted row still listed")
	}
	if !strings.Contains(body, "No se encontraron clientes.") {
		t.Fatal("empty-list message missing")
	}
}

func TestClientDeleteMissingFlashesError(t *testing.T) {
	backend := newClienteBackend()
	h := NewClientHandler(newTestAPI(t, backend), zaptest.NewLogger(t))

	rec := httptest.NewRecorder()
	h.Delete(rec, postForm("/clientes/delete", url.Values{"id": {"99"}}))

	if rec.Code != statusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if msg := flashError(t, rec.Result()); !strings.Contains(msg, "Cliente no encontrado") {
		t.Fatalf("flash = %q", msg)
	}
}
