package products

import (
	"strings"
	"time"
)

// Category es la línea de producto. Solo hay tres.
type Category string

const (
	CategoryStandard  Category = "standard"
	CategoryPremium   Category = "premium"
	CategoryExclusive Category = "exclusive"
)

// Categories devuelve las categorías en el orden en que las muestra el panel.
func Categories() []Category {
	return []Category{CategoryStandard, CategoryPremium, CategoryExclusive}
}

// Valid indica si c es una de las categorías conocidas.
func (c Category) Valid() bool {
	switch c {
	case CategoryStandard, CategoryPremium, CategoryExclusive:
		return true
	}
	return false
}

// Product representa un monumento del catálogo tal como viaja en JSON.
// Los atributos de texto son opcionales: vacío significa "no informado".
type Product struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Category    Category   `json:"category"`
	Shape       string     `json:"shape,omitempty"`
	Size        string     `json:"size,omitempty"`
	Dimensions  string     `json:"dimensions,omitempty"`
	Material    string     `json:"material,omitempty"`
	Price       float64    `json:"price"`
	Description string     `json:"description,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// HasImage es falso cuando hay que dibujar el placeholder.
func (product Product) HasImage() bool {
	return strings.TrimSpace(product.ImageURL) != ""
}

// Fields devuelve el set editable del producto.
func (product Product) Fields() Fields {
	return Fields{
		Name:        product.Name,
		Category:    product.Category,
		Shape:       product.Shape,
		Size:        product.Size,
		Dimensions:  product.Dimensions,
		Material:    product.Material,
		Price:       product.Price,
		Description: product.Description,
		ImageURL:    product.ImageURL,
	}
}

// Fields es el set completo de campos editables. Create y Update lo reciben
// entero: Update reemplaza todo, lo que no venga queda vacío.
type Fields struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Category    Category `json:"category" validate:"required,oneof=standard premium exclusive"`
	Shape       string   `json:"shape"`
	Size        string   `json:"size"`
	Dimensions  string   `json:"dimensions"`
	Material    string   `json:"material"`
	Price       float64  `json:"price" validate:"gte=0"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
}

// Normalize recorta espacios de todos los campos de texto.
func (fields Fields) Normalize() Fields {
	fields.Name = strings.TrimSpace(fields.Name)
	fields.Category = Category(strings.ToLower(strings.TrimSpace(string(fields.Category))))
	fields.Shape = strings.TrimSpace(fields.Shape)
	fields.Size = strings.TrimSpace(fields.Size)
	fields.Dimensions = strings.TrimSpace(fields.Dimensions)
	fields.Material = strings.TrimSpace(fields.Material)
	fields.Description = strings.TrimSpace(fields.Description)
	fields.ImageURL = strings.TrimSpace(fields.ImageURL)
	return fields
}

// ImportResult es la respuesta de una carga masiva desde Excel.
type ImportResult struct {
	Message  string   `json:"message"`
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}
