package docs

import (
	"embed"
	"net/http"
)

//go:embed openapi.yaml swagger.html
var fs embed.FS

// OpenAPI devuelve el documento embebido.
func OpenAPI() ([]byte, error) {
	return fs.ReadFile("openapi.yaml")
}

// OpenAPIHandler sirve el documento OpenAPI del catálogo.
func OpenAPIHandler() http.HandlerFunc {
	return serve("openapi.yaml", "application/yaml; charset=utf-8")
}

// SwaggerUIHandler sirve la página de Swagger UI.
func SwaggerUIHandler() http.HandlerFunc {
	return serve("swagger.html", "text/html; charset=utf-8")
}

func serve(name, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := fs.ReadFile(name)
		if err != nil {
			http.Error(w, name+" not found", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}
}
