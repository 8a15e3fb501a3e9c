package products_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Lelo88/monument-catalog/internal/products"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func TestRegisterRoutes(t *testing.T) {
	router := chi.NewRouter()
	products.RegisterRoutes(router, products.NewHandler(&stubService{}, maxBody))

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{name: "list", method: http.MethodGet, path: "/products", wantStatus: http.StatusOK},
		{name: "list trailing slash", method: http.MethodGet, path: "/products/", wantStatus: http.StatusOK},
		{name: "create", method: http.MethodPost, path: "/products", body: `{"name":"a","category":"standard"}`, wantStatus: http.StatusCreated},
		{name: "get", method: http.MethodGet, path: "/products/3", wantStatus: http.StatusOK},
		{name: "update", method: http.MethodPut, path: "/products/3", body: `{"name":"a","category":"standard"}`, wantStatus: http.StatusOK},
		{name: "delete", method: http.MethodDelete, path: "/products/3", wantStatus: http.StatusOK},
		{name: "patch is not allowed", method: http.MethodPatch, path: "/products/3", body: `{}`, wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
