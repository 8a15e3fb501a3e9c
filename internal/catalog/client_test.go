package catalog_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Lelo88/monument-catalog/internal/catalog"
	"github.com/Lelo88/monument-catalog/internal/products"
	"github.com/stretchr/testify/require"
)

// recordedRequest guarda lo que recibió el servidor de prueba.
type recordedRequest struct {
	method      string
	path        string
	contentType string
	body        []byte
}

func newServer(t *testing.T, status int, body string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()

	var requests []recordedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		requests = append(requests, recordedRequest{
			method:      r.Method,
			path:        r.URL.Path,
			contentType: r.Header.Get("Content-Type"),
			body:        data,
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func TestClient_List(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server, requests := newServer(t, http.StatusOK, `{"products":[{"id":1,"name":"Классика","category":"standard","price":25000}]}`)
		client := catalog.New(server.URL + "/products/")

		list, err := client.List(context.Background())

		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, int64(1), list[0].ID)
		require.Equal(t, products.CategoryStandard, list[0].Category)
		require.Equal(t, http.MethodGet, (*requests)[0].method)
		require.Equal(t, "/products", (*requests)[0].path)
	})

	t.Run("missing array is empty", func(t *testing.T) {
		server, _ := newServer(t, http.StatusOK, `{}`)

		list, err := catalog.New(server.URL).List(context.Background())

		require.NoError(t, err)
		require.NotNil(t, list)
		require.Empty(t, list)
	})

	t.Run("malformed body is a transport failure", func(t *testing.T) {
		server, _ := newServer(t, http.StatusOK, `<html>`)

		list, err := catalog.New(server.URL).List(context.Background())

		var transportError *catalog.TransportError
		require.ErrorAs(t, err, &transportError)
		require.NotNil(t, list)
		require.Empty(t, list)
	})

	t.Run("network failure", func(t *testing.T) {
		server, _ := newServer(t, http.StatusOK, `{}`)
		server.Close()

		list, err := catalog.New(server.URL).List(context.Background())

		var transportError *catalog.TransportError
		require.ErrorAs(t, err, &transportError)
		require.Empty(t, list)
		require.Equal(t, "fallback", catalog.UserMessage(err, "fallback"))
	})
}

func TestClient_Create(t *testing.T) {
	t.Run("sends the full field set", func(t *testing.T) {
		server, requests := newServer(t, http.StatusCreated, `{"product":{"id":5,"name":"Стандарт 1","category":"standard","price":18000}}`)
		client := catalog.New(server.URL + "/products")

		result, err := client.Create(context.Background(), products.Fields{Name: "Стандарт 1", Category: products.CategoryStandard, Price: 18000})

		require.NoError(t, err)
		require.NotNil(t, result.Product)
		require.Equal(t, int64(5), result.Product.ID)

		request := (*requests)[0]
		require.Equal(t, http.MethodPost, request.method)
		require.Equal(t, "application/json", request.contentType)

		var sent map[string]any
		require.NoError(t, json.Unmarshal(request.body, &sent))
		require.Equal(t, map[string]any{
			"name":        "Стандарт 1",
			"category":    "standard",
			"shape":       "",
			"size":        "",
			"dimensions":  "",
			"material":    "",
			"price":       18000.0,
			"description": "",
			"image_url":   "",
		}, sent)
	})

	t.Run("error field on success status", func(t *testing.T) {
		server, _ := newServer(t, http.StatusOK, `{"error":"name is required"}`)

		_, err := catalog.New(server.URL).Create(context.Background(), products.Fields{})

		var applicationError *catalog.ApplicationError
		require.ErrorAs(t, err, &applicationError)
		require.Equal(t, "name is required", catalog.UserMessage(err, "fallback"))
	})

	t.Run("non 2xx with server text", func(t *testing.T) {
		server, _ := newServer(t, http.StatusBadRequest, `{"error":"category must be one of: standard, premium, exclusive"}`)

		_, err := catalog.New(server.URL).Create(context.Background(), products.Fields{})

		var applicationError *catalog.ApplicationError
		require.ErrorAs(t, err, &applicationError)
		require.Equal(t, http.StatusBadRequest, applicationError.Status)
		require.Equal(t, "category must be one of: standard, premium, exclusive", catalog.UserMessage(err, "fallback"))
	})

	t.Run("non 2xx without text uses fallback", func(t *testing.T) {
		server, _ := newServer(t, http.StatusBadGateway, `bad gateway`)

		_, err := catalog.New(server.URL).Create(context.Background(), products.Fields{})

		var applicationError *catalog.ApplicationError
		require.ErrorAs(t, err, &applicationError)
		require.Equal(t, "fallback", catalog.UserMessage(err, "fallback"))
	})
}

func TestClient_UpdateDelete(t *testing.T) {
	t.Run("update addresses the record", func(t *testing.T) {
		server, requests := newServer(t, http.StatusOK, `{"product":{"id":7}}`)

		_, err := catalog.New(server.URL+"/products").Update(context.Background(), 7, products.Fields{Name: "a", Category: products.CategoryPremium})

		require.NoError(t, err)
		require.Equal(t, http.MethodPut, (*requests)[0].method)
		require.Equal(t, "/products/7", (*requests)[0].path)
	})

	t.Run("delete", func(t *testing.T) {
		server, requests := newServer(t, http.StatusOK, `{"message":"Product deleted successfully"}`)

		result, err := catalog.New(server.URL+"/products").Delete(context.Background(), 7)

		require.NoError(t, err)
		require.Equal(t, "Product deleted successfully", result.Message)
		require.Equal(t, http.MethodDelete, (*requests)[0].method)
		require.Equal(t, "/products/7", (*requests)[0].path)
		require.Empty(t, (*requests)[0].body)
	})

	t.Run("delete with empty body", func(t *testing.T) {
		server, _ := newServer(t, http.StatusNoContent, ``)

		_, err := catalog.New(server.URL).Delete(context.Background(), 7)

		require.NoError(t, err)
	})

	t.Run("delete not found", func(t *testing.T) {
		server, _ := newServer(t, http.StatusNotFound, `{"error":"Product not found"}`)

		_, err := catalog.New(server.URL).Delete(context.Background(), 7)

		var applicationError *catalog.ApplicationError
		require.ErrorAs(t, err, &applicationError)
		require.Equal(t, http.StatusNotFound, applicationError.Status)
	})
}

func TestClient_BulkImport(t *testing.T) {
	server, requests := newServer(t, http.StatusOK, `{"message":"12 products imported","imported":12,"errors":[]}`)

	result, err := catalog.New(server.URL).BulkImport(context.Background(), []byte("PK\x03\x04workbook"))

	require.NoError(t, err)
	require.Equal(t, "12 products imported", result.Message)
	require.Equal(t, 12, result.Imported)
	require.Equal(t, products.SpreadsheetMIME, (*requests)[0].contentType)
	require.Equal(t, []byte("PK\x03\x04workbook"), (*requests)[0].body)
}

func TestClient_UploadImage(t *testing.T) {
	t.Run("multipart file field", func(t *testing.T) {
		var filename, content string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			file, header, err := r.FormFile("file")
			if err != nil {
				http.Error(w, `{"error":"file field is required"}`, http.StatusBadRequest)
				return
			}
			data, _ := io.ReadAll(file)
			filename, content = header.Filename, string(data)
			_, _ = w.Write([]byte(`{"url":"https://cdn.example.com/files/x.png"}`))
		}))
		defer server.Close()

		client := catalog.New("http://unused", catalog.WithUploadURL(server.URL+"/upload"), catalog.WithHTTPClient(server.Client()))

		url, err := client.UploadImage(context.Background(), "x.png", strings.NewReader("png"))

		require.NoError(t, err)
		require.Equal(t, "https://cdn.example.com/files/x.png", url)
		require.Equal(t, "x.png", filename)
		require.Equal(t, "png", content)
	})

	t.Run("not configured", func(t *testing.T) {
		_, err := catalog.New("http://unused").UploadImage(context.Background(), "x.png", strings.NewReader("png"))

		var transportError *catalog.TransportError
		require.ErrorAs(t, err, &transportError)
	})

	t.Run("server error", func(t *testing.T) {
		server, _ := newServer(t, http.StatusBadRequest, `{"error":"unsupported file type"}`)

		_, err := catalog.New("http://unused", catalog.WithUploadURL(server.URL)).UploadImage(context.Background(), "x.exe", strings.NewReader("x"))

		require.Equal(t, "unsupported file type", catalog.UserMessage(err, "fallback"))
	})
}

func TestUserMessage(t *testing.T) {
	require.Equal(t, "fallback", catalog.UserMessage(errors.New("boom"), "fallback"))
	require.Equal(t, "fallback", catalog.UserMessage(&catalog.ApplicationError{Status: 500}, "fallback"))
	require.Equal(t, "server", catalog.UserMessage(&catalog.ApplicationError{Status: 500, Message: "server"}, "fallback"))
}
