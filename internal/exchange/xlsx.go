package exchange

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jeanpaul/agenda/internal/contact"
	"github.com/jeanpaul/agenda/internal/store"
)

const sheetName = "Contacts"

var xlsxHeader = []string{"ID", "Name", "Phone", "Email", "Street", "Number", "Municipality", "Postal code"}

// headerAliases maps lower-cased column titles to contact fields. The
// Spanish names match the keys of the data file.
var headerAliases = map[string]string{
	"name": "name", "nombre": "name",
	"phone": "phone", "telefono": "phone", "teléfono": "phone",
	"email": "email",
	"street": "street", "calle": "street",
	"number": "number", "numero": "number", "número": "number",
	"municipality": "municipality", "municipio": "municipality",
	"postal code": "postal_code", "cp": "postal_code",
}

// WriteXLSX writes records to a new workbook at path, one row per contact.
func WriteXLSX(path string, records []store.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	header := make([]any, len(xlsxHeader))
	for i, h := range xlsxHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(sheetName, 1, 1, bold); err != nil {
		return err
	}

	for i, r := range records {
		c := r.Contact
		row := []any{r.ID, c.Name, c.Phone, c.Email, c.Address.Street, c.Address.Number, c.Address.Municipality, c.Address.PostalCode}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write contact %s: %w", r.ID, err)
		}
	}
	if err := f.SetColWidth(sheetName, "B", "H", 20); err != nil {
		return err
	}

	return f.SaveAs(path)
}

// ReadXLSX reads contacts from the first sheet of the workbook at path.
// The first row names the columns; unknown columns (including ID) are
// ignored and missing cells read as empty.
func ReadXLSX(path string) ([]contact.Contact, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	columns := map[string]int{}
	for i, title := range rows[0] {
		if field, ok := headerAliases[strings.ToLower(strings.TrimSpace(title))]; ok {
			columns[field] = i
		}
	}
	if _, ok := columns["name"]; !ok {
		return nil, fmt.Errorf("sheet %s has no Name column", sheets[0])
	}

	var out []contact.Contact
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		cell := func(field string) string {
			i, ok := columns[field]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		out = append(out, contact.Contact{
			Name:  cell("name"),
			Phone: cell("phone"),
			Email: cell("email"),
			Address: contact.Address{
				Street:       cell("street"),
				Number:       cell("number"),
				Municipality: cell("municipality"),
				PostalCode:   cell("postal_code"),
			},
		})
	}
	return out, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
