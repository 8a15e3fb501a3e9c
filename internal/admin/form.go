package admin

import (
	"strconv"
	"strings"

	"github.com/Lelo88/monument-catalog/internal/products"
	"github.com/go-playground/validator/v10"
)

// Form es el área de edición: todo texto, como lo tipea el usuario.
type Form struct {
	Name        string `validate:"required"`
	Category    string `validate:"required,oneof=standard premium exclusive"`
	Shape       string
	Size        string
	Dimensions  string
	Material    string
	Price       string `validate:"required"`
	Description string
	ImageURL    string
}

// DefaultForm es el formulario vacío del modo alta.
func DefaultForm() Form {
	return Form{Category: string(products.CategoryStandard)}
}

// FormFrom carga el formulario con los campos editables de un producto.
func FormFrom(product products.Product) Form {
	return Form{
		Name:        product.Name,
		Category:    string(product.Category),
		Shape:       product.Shape,
		Size:        product.Size,
		Dimensions:  product.Dimensions,
		Material:    product.Material,
		Price:       strconv.FormatFloat(product.Price, 'f', -1, 64),
		Description: product.Description,
		ImageURL:    product.ImageURL,
	}
}

var formValidator = validator.New()

// Validate revisa los campos obligatorios antes de tocar la red.
func (form Form) Validate() error {
	trimmed := form
	trimmed.Name = strings.TrimSpace(form.Name)
	// Misma normalización que products.Fields.Normalize.
	trimmed.Category = strings.ToLower(strings.TrimSpace(form.Category))
	trimmed.Price = strings.TrimSpace(form.Price)
	if err := formValidator.Struct(trimmed); err != nil {
		return ErrInvalidForm
	}
	return nil
}

// Fields convierte el formulario al set que viaja al servidor.
func (form Form) Fields() products.Fields {
	return products.Fields{
		Name:        form.Name,
		Category:    products.Category(form.Category),
		Shape:       form.Shape,
		Size:        form.Size,
		Dimensions:  form.Dimensions,
		Material:    form.Material,
		Price:       ParsePrice(form.Price),
		Description: form.Description,
		ImageURL:    form.ImageURL,
	}.Normalize()
}

// ParsePrice nunca falla: texto ilegible, negativo o no finito vale 0.
func ParsePrice(text string) float64 {
	price, err := products.ParsePrice(text)
	if err != nil || price < 0 {
		return 0
	}
	return price
}
