package importer

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/crmlocal/api/internal/crm/client"
	"github.com/crmlocal/api/internal/platform/apperr"
)

// exportHeaders is the column layout of the client export, mirrored by the
// import alias table so an exported file can be re-imported unchanged.
var exportHeaders = []string{
	"company_name", "name", "email", "phone", "billing_address",
	"depannage", "astreinte", "tags", "status",
}

// ReadWorkbook extracts the first sheet of an .xlsx stream as raw rows.
func ReadWorkbook(reader io.Reader) ([][]string, error) {
	workbook, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, apperr.ValidationError("Could not read the Excel file")
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperr.ValidationError("The file contains no data")
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, apperr.ValidationError("Could not read the Excel file")
	}
	return rows, nil
}

// WriteWorkbook builds an .xlsx workbook of the given clients, one row per
// client with a header row.
func WriteWorkbook(clients []*client.Client, writer io.Writer) error {
	workbook := excelize.NewFile()
	defer workbook.Close()

	sheet := workbook.GetSheetName(0)

	headerRow := make([]interface{}, len(exportHeaders))
	for index, header := range exportHeaders {
		headerRow[index] = header
	}
	if err := writeRow(workbook, sheet, 1, headerRow); err != nil {
		return err
	}

	for index, c := range clients {
		status := "actif"
		if !c.IsActive {
			status = "inactif"
		}
		row := []interface{}{
			c.CompanyName,
			c.Name,
			strOrEmpty(c.Email),
			strOrEmpty(c.Phone),
			strOrEmpty(c.BillingAddress),
			c.Depannage,
			c.Astreinte,
			strOrEmpty(c.Tag),
			status,
		}
		if err := writeRow(workbook, sheet, index+2, row); err != nil {
			return err
		}
	}

	return workbook.Write(writer)
}

func writeRow(workbook *excelize.File, sheet string, line int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, line)
	if err != nil {
		return err
	}
	return workbook.SetSheetRow(sheet, cell, &values)
}

func strOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
