package products

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"math"
	"mime"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/spf13/cast"
)

// SpreadsheetMIME es el content type con el que el panel manda el Excel.
const SpreadsheetMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Columns son los encabezados del Excel (y de la plantilla), en orden.
var Columns = []string{
	"Название",
	"Категория",
	"Форма",
	"Размер",
	"Габариты",
	"Материал",
	"Цена",
	"Описание",
	"URL изображения",
}

// Un .xlsx es un zip.
var zipMagic = []byte("PK\x03\x04")

// SheetRow es una fila de datos del Excel. Line es el número de fila en la hoja.
type SheetRow struct {
	Line   int
	Fields Fields
	Err    error
}

// IsSpreadsheet indica si el content type corresponde a un .xlsx.
func IsSpreadsheet(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == SpreadsheetMIME
}

// DecodeUpload acepta el archivo crudo o en base64 (con o sin prefijo data:),
// que es como lo manda el sitio desde el navegador.
func DecodeUpload(body []byte) []byte {
	if bytes.HasPrefix(body, zipMagic) {
		return body
	}

	text := strings.TrimSpace(string(body))
	if index := strings.Index(text, ";base64,"); index >= 0 {
		text = text[index+len(";base64,"):]
	}

	decoded, err := base64.StdEncoding.DecodeString(text)
	if err != nil || !bytes.HasPrefix(decoded, zipMagic) {
		return body
	}
	return decoded
}

// ParseWorkbook lee la hoja activa: primera fila encabezado, después una fila
// por producto. Las filas sin nombre se saltean.
func ParseWorkbook(data []byte) ([]SheetRow, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrorInvalidWorkbook, err)
	}

	sheet := file.GetSheetName(file.GetActiveSheetIndex())
	if sheet == "" {
		// Algunos generadores no marcan hoja activa: usamos la primera.
		sheet = file.GetSheetName(1)
	}
	if sheet == "" {
		return nil, fmt.Errorf("%w: no active sheet", ErrorInvalidWorkbook)
	}

	rows := file.GetRows(sheet)
	if len(rows) < 2 {
		return []SheetRow{}, nil
	}

	result := make([]SheetRow, 0, len(rows)-1)
	for index, row := range rows[1:] {
		line := index + 2
		if cell(row, 0) == "" {
			continue
		}

		sheetRow := SheetRow{Line: line}
		price, err := ParsePrice(cell(row, 6))
		if err != nil {
			sheetRow.Err = err
		}
		sheetRow.Fields = Fields{
			Name:        cell(row, 0),
			Category:    Category(cell(row, 1)),
			Shape:       cell(row, 2),
			Size:        cell(row, 3),
			Dimensions:  cell(row, 4),
			Material:    cell(row, 5),
			Price:       price,
			Description: cell(row, 7),
			ImageURL:    cell(row, 8),
		}.Normalize()

		result = append(result, sheetRow)
	}

	return result, nil
}

// ParsePrice interpreta precios escritos a mano: "25 000", "1500,50".
// Vacío es 0.
func ParsePrice(raw string) (float64, error) {
	cleaned := strings.NewReplacer(" ", "", "\u00a0", "", ",", ".").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return 0, nil
	}

	price, err := cast.ToFloat64E(cleaned)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("invalid price %q", raw)
	}
	return price, nil
}

func cell(row []string, index int) string {
	if index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}
