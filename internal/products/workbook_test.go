package products

import (
	"fmt"
	"testing"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/stretchr/testify/require"
)

// buildWorkbook arma un .xlsx en memoria con los encabezados y las filas dadas.
func buildWorkbook(t *testing.T, rows ...[]any) []byte {
	t.Helper()

	file := excelize.NewFile()
	const sheet = "Sheet1"
	for column, header := range Columns {
		file.SetCellValue(sheet, axis(column, 1), header)
	}
	for index, row := range rows {
		for column, value := range row {
			file.SetCellValue(sheet, axis(column, index+2), value)
		}
	}

	buffer, err := file.WriteToBuffer()
	require.NoError(t, err)
	return buffer.Bytes()
}

func axis(column, row int) string {
	return fmt.Sprintf("%c%d", 'A'+column, row)
}
