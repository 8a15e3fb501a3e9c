package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Errores de dominio (no HTTP). El handler los traduce a status codes.
var (
	ErrorInvalidInput    = errors.New("invalid input")
	ErrorNotFound        = errors.New("product not found")
	ErrorInvalidWorkbook = errors.New("invalid workbook")
)

// RepositoryAPI es lo que el service necesita de la persistencia.
type RepositoryAPI interface {
	Insert(ctx context.Context, fields Fields) (Product, error)
	List(ctx context.Context, category Category) ([]Product, error)
	GetByID(ctx context.Context, id int64) (Product, error)
	Update(ctx context.Context, id int64, fields Fields) (Product, error)
	Delete(ctx context.Context, id int64) error
}

// ImportObserver recibe el resultado de cada carga masiva (métricas).
type ImportObserver interface {
	ObserveImport(imported, rejected int)
}

// Option configura dependencias opcionales del service.
type Option func(*Service)

// WithImportObserver registra quién observa las cargas masivas.
func WithImportObserver(observer ImportObserver) Option {
	return func(service *Service) {
		service.observer = observer
	}
}

// WithLogger reemplaza el logger (por defecto no loguea).
func WithLogger(logger *zap.Logger) Option {
	return func(service *Service) {
		service.logger = logger
	}
}

// Service contiene reglas de negocio del catálogo.
type Service struct {
	repository RepositoryAPI
	validate   *validator.Validate
	observer   ImportObserver
	logger     *zap.Logger
}

// NewService crea un service de productos.
func NewService(repository RepositoryAPI, options ...Option) *Service {
	service := &Service{
		repository: repository,
		validate:   NewValidator(),
		logger:     zap.NewNop(),
	}
	for _, option := range options {
		option(service)
	}
	return service
}

// Create valida reglas y crea el producto en DB.
func (service *Service) Create(ctx context.Context, fields Fields) (Product, error) {
	fields = fields.Normalize()
	if err := service.validate.Struct(fields); err != nil {
		return Product{}, Describe(err)
	}

	return service.repository.Insert(ctx, fields)
}

// List devuelve el catálogo completo, opcionalmente filtrado por categoría.
func (service *Service) List(ctx context.Context, category string) ([]Product, error) {
	filter := Category(strings.ToLower(strings.TrimSpace(category)))
	if filter != "" && !filter.Valid() {
		return nil, &ValidationError{Problems: []string{"category must be one of: standard, premium, exclusive"}}
	}

	products, err := service.repository.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []Product{}
	}
	return products, nil
}

// Get obtiene un producto por ID.
func (service *Service) Get(ctx context.Context, id int64) (Product, error) {
	return service.repository.GetByID(ctx, id)
}

// Update reemplaza todos los campos editables de un producto.
func (service *Service) Update(ctx context.Context, id int64, fields Fields) (Product, error) {
	fields = fields.Normalize()
	if err := service.validate.Struct(fields); err != nil {
		return Product{}, Describe(err)
	}

	return service.repository.Update(ctx, id, fields)
}

// Delete elimina un producto por ID.
func (service *Service) Delete(ctx context.Context, id int64) error {
	return service.repository.Delete(ctx, id)
}

// Import carga productos desde un Excel. Las filas inválidas no cortan la
// carga: se informan en Errors y el resto se inserta.
func (service *Service) Import(ctx context.Context, data []byte) (ImportResult, error) {
	rows, err := ParseWorkbook(DecodeUpload(data))
	if err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{Errors: []string{}}
	for _, row := range rows {
		if row.Err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", row.Line, row.Err))
			continue
		}
		if err := service.validate.Struct(row.Fields); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", row.Line, Describe(err)))
			continue
		}
		if _, err := service.repository.Insert(ctx, row.Fields); err != nil {
			// No filtramos detalles internos en la respuesta.
			service.logger.Warn("import row failed", zap.Int("row", row.Line), zap.Error(err))
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: could not be saved", row.Line))
			continue
		}
		result.Imported++
	}

	result.Message = fmt.Sprintf("Successfully imported %d products", result.Imported)
	if service.observer != nil {
		service.observer.ObserveImport(result.Imported, len(result.Errors))
	}
	service.logger.Info("spreadsheet imported",
		zap.Int("imported", result.Imported),
		zap.Int("rejected", len(result.Errors)),
	)

	return result, nil
}
