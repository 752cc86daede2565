package handlers

import "net/http"

// Home: GET /. Landing page; the nav links in the layout switch on session
// presence.
func Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	renderTemplate(w, r, "index", basePage(w, r))
}
