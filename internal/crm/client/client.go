package client

import "time"

// Depannage billing modes. Whether an emergency call-out is billed back.
const (
	DepannageRefacturable    = "refacturable"
	DepannageNonRefacturable = "non_refacturable"

	DefaultDepannage = DepannageNonRefacturable
)

// Astreinte coverage modes for the on-call duty attached to a client.
const (
	AstreinteIncluseNonRefacturable = "incluse_non_refacturable"
	AstreinteIncluseRefacturable    = "incluse_refacturable"
	AstreintePasDAstreinte          = "pas_d_astreinte"

	DefaultAstreinte = AstreintePasDAstreinte
)

func ValidDepannage(value string) bool {
	return value == DepannageRefacturable || value == DepannageNonRefacturable
}

func ValidAstreinte(value string) bool {
	return value == AstreinteIncluseNonRefacturable ||
		value == AstreinteIncluseRefacturable ||
		value == AstreintePasDAstreinte
}

// Client is a serviced site/account belonging to a company.
//
// CompanyName is denormalized from the joined company row at read time, so it
// can never drift from the company record.
type Client struct {
	ID             string    `json:"id"`
	CompanyID      string    `json:"company_id"`
	CompanyName    string    `json:"company_name"`
	Name           string    `json:"name"`
	Email          *string   `json:"email"`
	Phone          *string   `json:"phone"`
	BillingAddress *string   `json:"billing_address"`
	Depannage      string    `json:"depannage"`
	Astreinte      string    `json:"astreinte"`
	Tag            *string   `json:"tag"`
	TechnicianName *string   `json:"technician_name"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"-"`

	Contacts []Contact `json:"contacts"`
}

// Contact is a person attached to a client. Contacts are removed with their client.
type Contact struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"-"`
}

// ListFilter narrows the client list. Zero values mean "no filter".
type ListFilter struct {
	// Q is matched case-insensitively against client, company, and contact columns.
	Q string
	// Status filters on the active flag: "actif" or "inactif".
	Status string
	// Depannage / Astreinte filter on their exact enum values.
	Depannage string
	Astreinte string
	// Limit caps the newest-first result set. Zero applies the default of 50.
	Limit int
}

const DefaultListLimit = 50
