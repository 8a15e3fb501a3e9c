package products

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/Lelo88/monument-catalog/internal/httpx"
	"github.com/go-chi/chi/v5"
)

// ServiceAPI define lo que el handler necesita.
// Permite testear handlers con stubs sin tocar DB.
type ServiceAPI interface {
	Create(ctx context.Context, fields Fields) (Product, error)
	List(ctx context.Context, category string) ([]Product, error)
	Get(ctx context.Context, id int64) (Product, error)
	Update(ctx context.Context, id int64, fields Fields) (Product, error)
	Delete(ctx context.Context, id int64) error
	Import(ctx context.Context, data []byte) (ImportResult, error)
}

// Handler HTTP para productos.
// Solo traduce HTTP <-> dominio (service).
type Handler struct {
	service      ServiceAPI
	maxBodyBytes int64
}

// NewHandler crea un handler de productos. maxBodyBytes limita el Excel.
func NewHandler(service ServiceAPI, maxBodyBytes int64) *Handler {
	return &Handler{service: service, maxBodyBytes: maxBodyBytes}
}

type productBody struct {
	Product Product `json:"product"`
}

type listBody struct {
	Products []Product `json:"products"`
}

// List maneja GET /products, con filtro opcional ?category=.
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	products, err := handler.service.List(request.Context(), request.URL.Query().Get("category"))
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	httpx.OK(writer, http.StatusOK, listBody{Products: products})
}

// Create maneja POST /products. Si el content type es el de un .xlsx
// se trata como carga masiva.
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	if IsSpreadsheet(request.Header.Get("Content-Type")) {
		handler.importWorkbook(writer, request)
		return
	}

	var fields Fields
	if err := json.NewDecoder(request.Body).Decode(&fields); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	product, err := handler.service.Create(request.Context(), fields)
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	httpx.OK(writer, http.StatusCreated, productBody{Product: product})
}

func (handler *Handler) importWorkbook(writer http.ResponseWriter, request *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(writer, request.Body, handler.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.Fail(writer, request, http.StatusRequestEntityTooLarge, "too_large", "file is too large")
			return
		}
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_body", "could not read request body")
		return
	}
	if len(data) == 0 {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_workbook", "empty file")
		return
	}

	result, err := handler.service.Import(request.Context(), data)
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	httpx.OK(writer, http.StatusOK, result)
}

// GetByID maneja GET /products/{id}.
func (handler *Handler) GetByID(writer http.ResponseWriter, request *http.Request) {
	id, ok := parseID(writer, request)
	if !ok {
		return
	}

	product, err := handler.service.Get(request.Context(), id)
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	httpx.OK(writer, http.StatusOK, productBody{Product: product})
}

// Update maneja PUT /products/{id}: reemplazo completo.
func (handler *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	id, ok := parseID(writer, request)
	if !ok {
		return
	}

	var fields Fields
	if err := json.NewDecoder(request.Body).Decode(&fields); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	product, err := handler.service.Update(request.Context(), id, fields)
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	httpx.OK(writer, http.StatusOK, productBody{Product: product})
}

// Delete maneja DELETE /products/{id}.
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	id, ok := parseID(writer, request)
	if !ok {
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		handler.fail(writer, request, err)
		return
	}

	httpx.Message(writer, http.StatusOK, "Product deleted successfully")
}

// parseID valida que el id sea un entero positivo (BIGSERIAL en DB).
func parseID(writer http.ResponseWriter, request *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(request, "id"), 10, 64)
	if err != nil || id < 1 {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
		return 0, false
	}
	return id, true
}

// fail traduce errores de dominio a HTTP.
func (handler *Handler) fail(writer http.ResponseWriter, request *http.Request, err error) {
	var validationError *ValidationError
	switch {
	case errors.As(err, &validationError):
		// El panel muestra este texto al usuario.
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_input", validationError.Error())
	case errors.Is(err, ErrorInvalidInput):
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_input", "invalid input data")
	case errors.Is(err, ErrorInvalidWorkbook):
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_workbook", "file is not a valid Excel workbook")
	case errors.Is(err, ErrorNotFound):
		httpx.Fail(writer, request, http.StatusNotFound, "not_found", "Product not found")
	default:
		// No filtramos detalles internos.
		httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
	}
}
