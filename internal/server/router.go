package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/diewo77/invoicing-admin/internal/api"
	"github.com/diewo77/invoicing-admin/internal/handlers"
	"github.com/diewo77/invoicing-admin/internal/middleware"
	"github.com/diewo77/invoicing-admin/internal/session"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(client *api.Client, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if _, werr := w.Write([]byte(`{"status":"ok"}`)); werr != nil {
			_ = werr
		}
	})
	//revive:enable:unused-parameter

	// Auth endpoints
	authHandler := handlers.NewAuthHandler(client, logger)
	authHandler.Register(mux)

	// Customer pages. List/Create via /clientes; update/delete via
	// /clientes/update & /clientes/delete for simplicity.
	ch := handlers.NewClientHandler(client, logger)
	mux.Handle("/clientes", session.RequireToken(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ch.List(w, r)
		case http.MethodPost:
			ch.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})))
	mux.Handle("/clientes/update", session.RequireToken(postOnly(ch.Update)))
	mux.Handle("/clientes/delete", session.RequireToken(postOnly(ch.Delete)))

	// Product pages, same shape.
	ph := handlers.NewProductHandler(client, logger)
	mux.Handle("/productos", session.RequireToken(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ph.List(w, r)
		case http.MethodPost:
			ph.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})))
	mux.Handle("/productos/update", session.RequireToken(postOnly(ph.Update)))
	mux.Handle("/productos/delete", session.RequireToken(postOnly(ph.Delete)))

	// Invoice workflow.
	ih := handlers.NewInvoiceHandler(client, logger)
	mux.Handle("/facturas", session.RequireToken(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ih.Page(w, r)
		case http.MethodPost:
			ih.Submit(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})))
	mux.Handle("/facturas/cart", session.RequireToken(postOnly(ih.AddToCart)))
	mux.Handle("/facturas/cart/clear", session.RequireToken(postOnly(ih.ClearCart)))
	mux.Handle("/facturas/detalle", session.RequireToken(getOnly(ih.Detail)))
	mux.Handle("/facturas/pdf", session.RequireToken(getOnly(ih.PDF)))

	mux.HandleFunc("/", handlers.Home)

	return session.Middleware(middleware.Recover(logger)(middleware.Logging(logger)(mux)))
}

func postOnly(h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", "POST")
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	})
}

func getOnly(h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", "GET")
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	})
}
