package admin

import (
	"fmt"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/Lelo88/monument-catalog/internal/products"
	"github.com/gocarina/gocsv"
)

// Nombres sugeridos para las plantillas.
const (
	TemplateFilename         = "products_template.csv"
	TemplateWorkbookFilename = "products_template.xlsx"
)

// templateRow sigue el orden de columnas de products.Columns.
type templateRow struct {
	Name        string `csv:"Название"`
	Category    string `csv:"Категория"`
	Shape       string `csv:"Форма"`
	Size        string `csv:"Размер"`
	Dimensions  string `csv:"Габариты"`
	Material    string `csv:"Материал"`
	Price       string `csv:"Цена"`
	Description string `csv:"Описание"`
	ImageURL    string `csv:"URL изображения"`
}

func (row templateRow) cells() []string {
	return []string{row.Name, row.Category, row.Shape, row.Size, row.Dimensions, row.Material, row.Price, row.Description, row.ImageURL}
}

var exampleRow = templateRow{
	Name:        `Памятник "Классика"`,
	Category:    string(products.CategoryStandard),
	Shape:       "classic",
	Size:        "medium",
	Dimensions:  "100x50x5",
	Material:    "black-granite",
	Price:       "25000",
	Description: "Описание товара",
	ImageURL:    "https://example.com/image.jpg",
}

// TemplateCSV genera la plantilla: encabezado y una fila de ejemplo.
func TemplateCSV() ([]byte, error) {
	data, err := gocsv.MarshalBytes([]templateRow{exampleRow})
	if err != nil {
		return nil, fmt.Errorf("marshal template: %w", err)
	}
	return data, nil
}

// TemplateWorkbook genera la misma plantilla como .xlsx, lista para importar.
func TemplateWorkbook() ([]byte, error) {
	file := excelize.NewFile()
	sheet := file.GetSheetName(file.GetActiveSheetIndex())

	for column, header := range products.Columns {
		file.SetCellValue(sheet, cellName(column, 1), header)
	}
	for column, value := range exampleRow.cells() {
		file.SetCellValue(sheet, cellName(column, 2), value)
	}

	buffer, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write template workbook: %w", err)
	}
	return buffer.Bytes(), nil
}

// cellName convierte índice de columna (desde 0) y fila a "A1". Alcanza
// para las nueve columnas de la plantilla.
func cellName(column, row int) string {
	return fmt.Sprintf("%c%d", 'A'+column, row)
}
