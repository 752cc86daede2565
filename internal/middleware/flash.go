package middleware

import (
	"net/http"
	"net/url"
	"time"
)

// Flash cookies carry one-shot messages across the redirect-after-post
// cycle: "flash" for success notices, "flash_error" for dismissible errors.

const (
	flashCookie      = "flash"
	flashErrorCookie = "flash_error"
)

// Flash sets a one-shot success message.
func Flash(w http.ResponseWriter, msg string) {
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: url.QueryEscape(msg), Path: "/"})
}

// FlashError sets a one-shot error message.
func FlashError(w http.ResponseWriter, msg string) {
	http.SetCookie(w, &http.Cookie{Name: flashErrorCookie, Value: url.QueryEscape(msg), Path: "/"})
}

// PopFlash reads and clears the success message.
func PopFlash(w http.ResponseWriter, r *http.Request) string {
	return pop(w, r, flashCookie)
}

// PopFlashError reads and clears the error message.
func PopFlashError(w http.ResponseWriter, r *http.Request) string {
	return pop(w, r, flashErrorCookie)
}

func pop(w http.ResponseWriter, r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil || c.Value == "" {
		return ""
	}
	http.SetCookie(w, &http.Cookie{Name: name, Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1})
	if dec, derr := url.QueryUnescape(c.Value); derr == nil {
		return dec
	}
	return c.Value
}
