package web

import (
	"io/fs"
	"net/http"
)

// RegisterRoutes registers all web GUI routes on the provided mux.
// Web routes serve HTML at / and accept form posts under /app/*.
// Static assets are served from the embedded filesystem at /static/*.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Static assets (embedded via go:embed).
	staticFS, _ := fs.Sub(StaticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	// Page routes.
	mux.HandleFunc("GET /{$}", h.Browser)

	// Browser events.
	mux.HandleFunc("POST /app/window", h.SelectWindow)
	mux.HandleFunc("POST /app/page/next", h.NextPage)
	mux.HandleFunc("POST /app/page/prev", h.PrevPage)
	mux.HandleFunc("POST /app/select", h.Select)
	mux.HandleFunc("POST /app/reset", h.Reset)
}
