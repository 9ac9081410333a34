package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crmlocal/api/internal/platform/apperr"
)

func TestNormalizeHeader(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "Entreprise", expected: "entreprise"},
		{input: "  Téléphone  ", expected: "telephone"},
		{input: "Adresse de facturation", expected: "adresse_de_facturation"},
		{input: "raison-sociale", expected: "raison_sociale"},
		{input: "nom.client", expected: "nom_client"},
		{input: "l'adresse", expected: "l_adresse"},
		{input: "nom client", expected: "nom_client"},
		{input: "", expected: ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.input, func(t *testing.T) {
			assert.Equal(t, testCase.expected, normalizeHeader(testCase.input))
		})
	}
}

func TestCoerceCell(t *testing.T) {
	assert.Equal(t, "", coerceCell("   "))
	assert.Equal(t, "42", coerceCell("42.0"))
	assert.Equal(t, "4.5", coerceCell("4.5"))
	assert.Equal(t, "01 23 45 67 89", coerceCell(" 01 23 45 67 89 "))
}

func TestParseRows(t *testing.T) {
	sheet := [][]string{
		{"Entreprise", "Client", "Mail", "Téléphone", "Adresse", "Type dépannage", "Astreinte", "Tag", "Statut"},
		{"ACME", "Site Nord", "nord@acme.fr", "0102030405", "1 rue du Port", "refacturable", "pas d'astreinte", "prioritaire", "Oui"},
		{"", "", "", "", "", "", "", "", ""},
		{"ACME", "Site Sud", "", "", "", "", "", "", "non"},
	}

	rows, err := ParseRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, 2, first.Line)
	assert.Equal(t, "ACME", first.CompanyName)
	assert.Equal(t, "Site Nord", first.Name)
	require.NotNil(t, first.Email)
	assert.Equal(t, "nord@acme.fr", *first.Email)
	require.NotNil(t, first.Depannage)
	assert.Equal(t, "refacturable", *first.Depannage)
	require.NotNil(t, first.Astreinte)
	assert.Equal(t, "pas_d_astreinte", *first.Astreinte)
	require.NotNil(t, first.Status)
	assert.Equal(t, "actif", *first.Status)

	second := rows[1]
	assert.Equal(t, 4, second.Line)
	require.NotNil(t, second.Status)
	assert.Equal(t, "inactif", *second.Status)
	assert.Nil(t, second.Email)
}

func TestParseRows_HeaderErrors(t *testing.T) {
	testCases := []struct {
		name    string
		sheet   [][]string
		message string
	}{
		{
			name:    "empty sheet",
			sheet:   [][]string{},
			message: "The file contains no data",
		},
		{
			name:    "no recognizable headers",
			sheet:   [][]string{{"foo", "bar"}},
			message: "The file has no recognizable headers",
		},
		{
			name:    "missing required columns",
			sheet:   [][]string{{"Email", "Téléphone"}},
			message: "Missing required columns: company_name, name",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := ParseRows(testCase.sheet)
			require.Error(t, err)
			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, "VALIDATION_ERROR", appError.Code)
			assert.Equal(t, testCase.message, appError.Message)
		})
	}
}

func TestParseRows_RowErrors(t *testing.T) {
	headers := []string{"Entreprise", "Client", "Type dépannage", "Astreinte", "Statut"}

	testCases := []struct {
		name    string
		row     []string
		message string
	}{
		{
			name:    "missing client name",
			row:     []string{"ACME", "", "", "", ""},
			message: "Row 2: missing values for name",
		},
		{
			name:    "invalid depannage",
			row:     []string{"ACME", "Site", "gratuit", "", ""},
			message: `Row 2: invalid depannage value "gratuit"`,
		},
		{
			name:    "invalid astreinte",
			row:     []string{"ACME", "Site", "", "toujours", ""},
			message: `Row 2: invalid astreinte value "toujours"`,
		},
		{
			name:    "unknown status",
			row:     []string{"ACME", "Site", "", "", "prospect"},
			message: `Row 2: unknown status "prospect", accepted values: actif, inactif`,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := ParseRows([][]string{headers, testCase.row})
			require.Error(t, err)
			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, testCase.message, appError.Message)
		})
	}
}

func TestParseRows_IgnoresUnknownColumns(t *testing.T) {
	sheet := [][]string{
		{"Entreprise", "Client", "Colonne interne"},
		{"ACME", "Site Nord", "ignoré"},
	}

	rows, err := ParseRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ACME", rows[0].CompanyName)
}
