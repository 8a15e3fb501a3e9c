package uploads

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registra la subida y el servido de archivos.
func RegisterRoutes(route chi.Router, handler *Handler, dir string) {
	route.Post("/upload", handler.Upload)
	route.Handle("/files/*", http.StripPrefix("/files/", http.FileServer(http.Dir(dir))))
}
