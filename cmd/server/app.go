package main

import (
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/diewo77/invoicing-admin/internal/api"
	"github.com/diewo77/invoicing-admin/internal/config"
	"github.com/diewo77/invoicing-admin/internal/server"
)

// NewApp bundles static assets and the page routes into one handler.
func NewApp(client *api.Client, logger *zap.Logger) http.Handler {
	pages := server.New(client, logger)

	// serve static assets (CSS) under /static/ with a content ETag
	fs := http.FileServer(http.Dir("static"))
	staticHandler := http.StripPrefix("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Path
		if f, err := os.Open(filepath.Join("static", name)); err == nil {
			h := sha1.New()
			if _, cerr := io.Copy(h, f); cerr == nil {
				etag := fmt.Sprintf("\"%x\"", h.Sum(nil)[:8])
				w.Header().Set("ETag", etag)
				if match := r.Header.Get("If-None-Match"); match == etag {
					f.Close()
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
			f.Close()
		}
		if ext := filepath.Ext(name); ext == ".css" {
			w.Header().Set("Content-Type", "text/css; charset=utf-8")
		}
		if !config.ParseBool("DEV", false) {
			w.Header().Set("Cache-Control", "public, max-age=86400")
		} else {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		}
		fs.ServeHTTP(w, r)
	}))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(r.URL.Path) >= 8 && r.URL.Path[:8] == "/static/" {
			staticHandler.ServeHTTP(w, r)
			return
		}
		pages.ServeHTTP(w, r)
	})
}
