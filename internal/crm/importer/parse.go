// Package importer reads client rows from Excel workbooks and writes the
// client list back out as a workbook.
package importer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/crmlocal/api/internal/crm/client"
	"github.com/crmlocal/api/internal/platform/apperr"
)

// Canonical column keys. Spreadsheet headers are normalized and mapped onto
// these through the alias table.
const (
	fieldCompanyName    = "company_name"
	fieldName           = "name"
	fieldEmail          = "email"
	fieldPhone          = "phone"
	fieldBillingAddress = "billing_address"
	fieldDepannage      = "depannage"
	fieldAstreinte      = "astreinte"
	fieldTags           = "tags"
	fieldStatus         = "status"
)

var requiredFields = []string{fieldCompanyName, fieldName}

var columnAliases = map[string]string{
	"company_name":        fieldCompanyName,
	"entreprise":          fieldCompanyName,
	"nom_entreprise":      fieldCompanyName,
	"societe":             fieldCompanyName,
	"raison_sociale":      fieldCompanyName,
	"name":                fieldName,
	"client":              fieldName,
	"nom_client":          fieldName,
	"contact":             fieldName,
	"email":               fieldEmail,
	"mail":                fieldEmail,
	"courriel":            fieldEmail,
	"phone":               fieldPhone,
	"telephone":           fieldPhone,
	"tel":                 fieldPhone,
	"billing_address":     fieldBillingAddress,
	"adresse":             fieldBillingAddress,
	"adresse_facturation": fieldBillingAddress,
	"depannage":           fieldDepannage,
	"type_depannage":      fieldDepannage,
	"astreinte":           fieldAstreinte,
	"tags":                fieldTags,
	"tag":                 fieldTags,
	"status":              fieldStatus,
	"statut":              fieldStatus,
}

var statusAliases = map[string]string{
	"actif":    "actif",
	"active":   "actif",
	"oui":      "actif",
	"true":     "actif",
	"1":        "actif",
	"inactif":  "inactif",
	"inactive": "inactif",
	"non":      "inactif",
	"false":    "inactif",
	"0":        "inactif",
}

// Row is one parsed client line. Line is the 1-based spreadsheet row, kept for
// error messages when the row is applied.
type Row struct {
	Line           int
	CompanyName    string
	Name           string
	Email          *string
	Phone          *string
	BillingAddress *string
	Depannage      *string
	Astreinte      *string
	Tag            *string
	Status         *string
}

// normalizeHeader lowercases a header, strips accents and replaces separator
// punctuation so that "Adresse de facturation" and "adresse_facturation"
// collapse to the same key.
func normalizeHeader(header string) string {
	value := strings.ToLower(strings.TrimSpace(header))
	value = norm.NFKD.String(value)

	var cleaned strings.Builder
	for _, r := range value {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		switch r {
		case '-', '.', '\'', ' ':
			cleaned.WriteRune(' ')
		default:
			cleaned.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(cleaned.String()), "_")
}

// coerceCell trims a cell and collapses integral floats ("42.0" -> "42") the
// way spreadsheet number cells round-trip. Blank cells become empty.
func coerceCell(value string) string {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return ""
	}
	if strings.Contains(cleaned, ".") {
		if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil && parsed == float64(int64(parsed)) {
			return strconv.FormatInt(int64(parsed), 10)
		}
	}
	return cleaned
}

// ParseRows maps a sheet (header row first) onto client rows. It validates
// headers, enum columns and required values; every error names the 1-based
// spreadsheet row.
func ParseRows(sheet [][]string) ([]Row, error) {
	if len(sheet) == 0 {
		return nil, apperr.ValidationError("The file contains no data")
	}

	headers := make([]string, len(sheet[0]))
	anyKnown := false
	for index, header := range sheet[0] {
		headers[index] = columnAliases[normalizeHeader(header)]
		if headers[index] != "" {
			anyKnown = true
		}
	}
	if !anyKnown {
		return nil, apperr.ValidationError("The file has no recognizable headers")
	}

	present := make(map[string]bool, len(headers))
	for _, key := range headers {
		if key != "" {
			present[key] = true
		}
	}
	missing := make([]string, 0)
	for _, field := range requiredFields {
		if !present[field] {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, apperr.ValidationError("Missing required columns: " + strings.Join(missing, ", "))
	}

	rows := make([]Row, 0, len(sheet)-1)
	for index, cells := range sheet[1:] {
		line := index + 2
		row := Row{Line: line}
		empty := true

		for cellIndex, raw := range cells {
			if cellIndex >= len(headers) || headers[cellIndex] == "" {
				continue
			}
			value := coerceCell(raw)
			if value == "" {
				continue
			}
			empty = false

			switch headers[cellIndex] {
			case fieldCompanyName:
				row.CompanyName = value
			case fieldName:
				row.Name = value
			case fieldEmail:
				row.Email = &value
			case fieldPhone:
				row.Phone = &value
			case fieldBillingAddress:
				row.BillingAddress = &value
			case fieldDepannage:
				normalized := normalizeHeader(value)
				if !client.ValidDepannage(normalized) {
					return nil, apperr.ValidationError(fmt.Sprintf("Row %d: invalid depannage value %q", line, value))
				}
				row.Depannage = &normalized
			case fieldAstreinte:
				normalized := normalizeHeader(value)
				if !client.ValidAstreinte(normalized) {
					return nil, apperr.ValidationError(fmt.Sprintf("Row %d: invalid astreinte value %q", line, value))
				}
				row.Astreinte = &normalized
			case fieldTags:
				row.Tag = &value
			case fieldStatus:
				normalized := normalizeHeader(value)
				if mapped, ok := statusAliases[normalized]; ok {
					row.Status = &mapped
				} else {
					row.Status = &normalized
				}
			}
		}

		if empty {
			continue
		}

		missingValues := make([]string, 0)
		if row.CompanyName == "" {
			missingValues = append(missingValues, fieldCompanyName)
		}
		if row.Name == "" {
			missingValues = append(missingValues, fieldName)
		}
		if len(missingValues) > 0 {
			return nil, apperr.ValidationError(fmt.Sprintf("Row %d: missing values for %s", line, strings.Join(missingValues, ", ")))
		}

		if row.Status != nil && *row.Status != "actif" && *row.Status != "inactif" {
			return nil, apperr.ValidationError(fmt.Sprintf("Row %d: unknown status %q, accepted values: actif, inactif", line, *row.Status))
		}

		rows = append(rows, row)
	}

	return rows, nil
}
