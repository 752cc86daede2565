package handlers

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/diewo77/invoicing-admin/internal/api"
	"github.com/diewo77/invoicing-admin/internal/cart"
	"github.com/diewo77/invoicing-admin/internal/middleware"
	"github.com/diewo77/invoicing-admin/internal/session"
)

type AuthHandler struct {
	API    *api.Client
	Logger *zap.Logger
}

func NewAuthHandler(client *api.Client, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{API: client, Logger: logger}
}

func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/login", h.login)
	mux.HandleFunc("/signup", h.signup)
	mux.HandleFunc("/logout", h.logout)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		if _, ok := session.FromContext(r.Context()); ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		data := basePage(w, r)
		data["Username"] = ""
		renderTemplate(w, r, "login", data)
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET,POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	if username == "" || password == "" {
		renderTemplate(w, r, "login", map[string]any{"Error": "Usuario y contraseña son obligatorios.", "Username": username})
		return
	}
	token, err := h.API.Login(r.Context(), username, password)
	if err != nil {
		h.Logger.Warn("login failed", zap.String("username", username), zap.Error(err))
		msg := "Error al iniciar sesión. Verifica tus credenciales."
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.Detail != "" {
			msg = apiErr.Detail
		}
		renderTemplate(w, r, "login", map[string]any{"Error": msg, "Username": username})
		return
	}
	session.Set(w, token)
	h.Logger.Info("login ok", zap.String("username", username))
	// PRG redirect (303)
	http.Redirect(w, r, "/", statusSeeOther)
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		data := basePage(w, r)
		data["Username"] = ""
		renderTemplate(w, r, "signup", data)
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET,POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	if username == "" || password == "" {
		renderTemplate(w, r, "signup", map[string]any{"Error": "Usuario y contraseña son obligatorios.", "Username": username})
		return
	}
	if err := h.API.Register(r.Context(), username, password); err != nil {
		h.Logger.Warn("signup failed", zap.String("username", username), zap.Error(err))
		renderTemplate(w, r, "signup", map[string]any{"Error": "Error al crear la cuenta: " + err.Error(), "Username": username})
		return
	}
	middleware.Flash(w, "Cuenta creada. Ya puedes iniciar sesión.")
	http.Redirect(w, r, "/login", statusSeeOther)
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	session.Clear(w)
	cart.Drop(w)
	http.Redirect(w, r, "/login", statusSeeOther)
}
