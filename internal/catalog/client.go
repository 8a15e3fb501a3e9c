package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/Lelo88/monument-catalog/internal/products"
)

// Client habla con la API del catálogo. Una instancia por URL base.
// No reintenta ni agrega timeouts: eso queda en el context del que llama.
type Client struct {
	baseURL    string
	uploadURL  string
	httpClient *http.Client
}

// Option configura el cliente.
type Option func(*Client)

// WithHTTPClient reemplaza el cliente HTTP (tests, transportes propios).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(client *Client) {
		client.httpClient = httpClient
	}
}

// WithUploadURL configura el endpoint de subida de imágenes.
func WithUploadURL(uploadURL string) Option {
	return func(client *Client) {
		client.uploadURL = uploadURL
	}
}

// New crea un cliente para baseURL (ej: http://localhost:8080/products).
func New(baseURL string, options ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// Result es la respuesta de una operación exitosa.
type Result struct {
	Message  string            `json:"message"`
	Product  *products.Product `json:"product,omitempty"`
	Imported int               `json:"imported"`
	Errors   []string          `json:"errors"`
}

type listResponse struct {
	Products []products.Product `json:"products"`
}

type uploadResponse struct {
	URL string `json:"url"`
}

// errorEnvelope detecta el campo "error" en cualquier respuesta.
type errorEnvelope struct {
	Error string `json:"error"`
}

// List trae el catálogo completo. Si falla devuelve lista vacía y el error.
func (client *Client) List(ctx context.Context) ([]products.Product, error) {
	var response listResponse
	if err := client.do(ctx, "list products", http.MethodGet, client.baseURL, "", nil, &response); err != nil {
		return []products.Product{}, err
	}
	if response.Products == nil {
		return []products.Product{}, nil
	}
	return response.Products, nil
}

// Create manda el set completo de campos.
func (client *Client) Create(ctx context.Context, fields products.Fields) (Result, error) {
	return client.send(ctx, "create product", http.MethodPost, client.baseURL, fields)
}

// Update reemplaza todos los campos del producto id.
func (client *Client) Update(ctx context.Context, id int64, fields products.Fields) (Result, error) {
	return client.send(ctx, "update product", http.MethodPut, client.itemURL(id), fields)
}

// Delete borra el producto id.
func (client *Client) Delete(ctx context.Context, id int64) (Result, error) {
	var result Result
	err := client.do(ctx, "delete product", http.MethodDelete, client.itemURL(id), "", nil, &result)
	return result, err
}

// BulkImport sube un Excel crudo. El servidor responde cuántos productos cargó.
func (client *Client) BulkImport(ctx context.Context, workbook []byte) (Result, error) {
	var result Result
	err := client.do(ctx, "import products", http.MethodPost, client.baseURL, products.SpreadsheetMIME, bytes.NewReader(workbook), &result)
	return result, err
}

// UploadImage sube una imagen como multipart (campo "file") y devuelve su URL.
func (client *Client) UploadImage(ctx context.Context, filename string, content io.Reader) (string, error) {
	const op = "upload image"
	if client.uploadURL == "" {
		return "", &TransportError{Op: op, Err: errors.New("upload url not configured")}
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", &TransportError{Op: op, Err: err}
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", &TransportError{Op: op, Err: fmt.Errorf("read %s: %w", filename, err)}
	}
	if err := writer.Close(); err != nil {
		return "", &TransportError{Op: op, Err: err}
	}

	var response uploadResponse
	if err := client.do(ctx, op, http.MethodPost, client.uploadURL, writer.FormDataContentType(), &body, &response); err != nil {
		return "", err
	}
	if response.URL == "" {
		return "", &TransportError{Op: op, Err: errors.New("response without url")}
	}
	return response.URL, nil
}

func (client *Client) itemURL(id int64) string {
	return client.baseURL + "/" + strconv.FormatInt(id, 10)
}

func (client *Client) send(ctx context.Context, op, method, url string, fields products.Fields) (Result, error) {
	payload, err := json.Marshal(fields)
	if err != nil {
		return Result{}, &TransportError{Op: op, Err: err}
	}

	var result Result
	err = client.do(ctx, op, method, url, "application/json", bytes.NewReader(payload), &result)
	return result, err
}

// do ejecuta el request y clasifica el resultado en éxito, falla de
// transporte o falla de aplicación.
func (client *Client) do(ctx context.Context, op, method, url, contentType string, body io.Reader, out any) error {
	request, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}
	request.Header.Set("Accept", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer response.Body.Close()

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		// Cuerpo ilegible: el usuario ve el texto genérico.
		var envelope errorEnvelope
		_ = json.Unmarshal(data, &envelope)
		return &ApplicationError{Op: op, Status: response.StatusCode, Message: envelope.Error}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	if envelope.Error != "" {
		return &ApplicationError{Op: op, Status: response.StatusCode, Message: envelope.Error}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
