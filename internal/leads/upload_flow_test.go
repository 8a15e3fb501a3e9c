package leads_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/Lelo88/monument-catalog/internal/leads"
	"github.com/Lelo88/monument-catalog/internal/uploads"
)

type recordingSender struct {
	sent []leads.Request
}

func (sender *recordingSender) Send(ctx context.Context, request leads.Request) error {
	sender.sent = append(sender.sent, request)
	return nil
}

func TestUploadedPhotoCanBeSentAsLead(t *testing.T) {
	dir := t.TempDir()
	sender := &recordingSender{}

	router := chi.NewRouter()
	uploads.RegisterRoutes(router, uploads.NewHandler(uploads.NewDiskStore(dir), "", 1<<20, nil), dir)
	leads.RegisterRoutes(router, leads.NewHandler(sender, nil))

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	part, err := writer.CreateFormFile("file", "retouch.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &form)
	req.Host = "catalog.local"
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var uploaded uploads.URLBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &uploaded))
	require.True(t, strings.HasPrefix(uploaded.URL, "http://catalog.local/files/"))

	payload, err := json.Marshal(map[string]string{"photo_url": uploaded.URL, "name": "Анна"})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPost, "/leads", bytes.NewReader(payload))
	req.Host = "catalog.local"
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, sender.sent, 1)
	require.Equal(t, uploaded.URL, sender.sent[0].PhotoURL)
}
