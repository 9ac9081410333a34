package company

import "time"

// Company is an entreprise record. Clients hang off a company; the company
// carries the billing identity shared by its clients.
type Company struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	BillingAddress *string   `json:"billing_address"`
	Tag            *string   `json:"tag"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"-"`
}
