// Package serviceorder manages subcontracted service orders attached to clients.
package serviceorder

import "time"

// Order statuses.
const (
	StatusNonCommence = "non_commence"
	StatusEnCours     = "en_cours"
	StatusTermine     = "termine"

	DefaultStatus = StatusNonCommence
)

func ValidStatus(value string) bool {
	return value == StatusNonCommence || value == StatusEnCours || value == StatusTermine
}

// Order is a subcontracted service commissioned for a client, referencing a
// prestation from the catalog by key with a label snapshot taken at creation.
type Order struct {
	ID                string    `json:"id"`
	ClientID          string    `json:"client_id"`
	ClientName        string    `json:"client_name"`
	CompanyName       string    `json:"company_name"`
	PrestationKey     string    `json:"prestation_key"`
	PrestationLabel   string    `json:"prestation_label"`
	Category          string    `json:"category"`
	BudgetCode        *string   `json:"budget_code"`
	Frequency         *string   `json:"frequency"`
	FrequencyInterval *int      `json:"frequency_interval"`
	FrequencyUnit     *string   `json:"frequency_unit"`
	Supplier          *string   `json:"supplier"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"-"`
}

// ListFilter narrows the order list. Zero values mean "no filter".
type ListFilter struct {
	// Q matches prestation label, category, budget code, client and company names.
	Q         string
	Category  string
	Frequency string
	// Limit caps the newest-first result set. Zero applies the default of 200.
	Limit int
}

const DefaultListLimit = 200
