package lead

import (
	"strings"

	"kliernav-crm/internal/common/models"

	"github.com/xuri/excelize/v2"
)

var exportColumns = []string{"ID", "Título", "Empresa", "Valor", "Etapa", "Propietario", "Último Contacto", "Servicio", "Same-Day", "Origen", "Tags"}

// ExportToExcel renders the given (already visibility-filtered) leads as an
// xlsx workbook.
func ExportToExcel(leads []models.Lead) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Leads"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, lead := range leads {
		sameDay := "No"
		if lead.IsSameDay {
			sameDay = "Sí"
		}
		values := []any{
			lead.ID, lead.Title, lead.Company, lead.Value, lead.Status,
			lead.OwnerID, lead.LastContact, string(lead.ServiceType), sameDay,
			lead.LeadSource, strings.Join(lead.Tags, ", "),
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	for i := range exportColumns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
