package handlers

import (
	"net/http"

	"github.com/diewo77/invoicing-admin/internal/middleware"
	"github.com/diewo77/invoicing-admin/internal/session"
	"github.com/diewo77/invoicing-admin/internal/view"
)

// Explicit constant for 303 See Other (Post/Redirect/Get)
const statusSeeOther = 303

// renderTemplate uses the shared view.Render to ensure layout, funcs, and caching.
func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if err := view.Render(w, r, name+".html", data); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		if _, werr := w.Write([]byte("template error")); werr != nil {
			_ = werr
		}
	}
}

// basePage seeds the data map every page shares: session state for the nav
// and any pending one-shot messages.
func basePage(w http.ResponseWriter, r *http.Request) map[string]any {
	_, authed := session.FromContext(r.Context())
	data := map[string]any{"Authed": authed}
	if msg := middleware.PopFlash(w, r); msg != "" {
		data["Flash"] = msg
	}
	if msg := middleware.PopFlashError(w, r); msg != "" {
		data["Error"] = msg
	}
	return data
}
