package products

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCategory_Valid(t *testing.T) {
	for _, category := range Categories() {
		require.True(t, category.Valid(), category)
	}
	require.False(t, Category("").Valid())
	require.False(t, Category("Standard").Valid())
	require.False(t, Category("vip").Valid())
}

func TestProduct_HasImage(t *testing.T) {
	require.False(t, Product{}.HasImage())
	require.False(t, Product{ImageURL: "   "}.HasImage())
	require.True(t, Product{ImageURL: "/files/a.jpg"}.HasImage())
}

func TestFields_Normalize(t *testing.T) {
	fields := Fields{
		Name:     "  Гранит  ",
		Category: " Premium ",
		Shape:    " heart ",
		ImageURL: " https://example.com/x.png ",
		Price:    10,
	}.Normalize()

	require.Equal(t, "Гранит", fields.Name)
	require.Equal(t, CategoryPremium, fields.Category)
	require.Equal(t, "heart", fields.Shape)
	require.Equal(t, "https://example.com/x.png", fields.ImageURL)
	require.Equal(t, 10.0, fields.Price)
}

func TestProduct_Fields(t *testing.T) {
	product := Product{ID: 7, Name: "Крест", Category: CategoryExclusive, Material: "gabbro", Price: 99000}

	require.Equal(t, Fields{Name: "Крест", Category: CategoryExclusive, Material: "gabbro", Price: 99000}, product.Fields())
}
