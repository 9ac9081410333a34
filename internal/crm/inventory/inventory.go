// Package inventory tracks the air-filter and belt replacement stock lines.
package inventory

import "time"

// FilterTypeCousuSurFil is the only filter format with two-number dimensions.
const FilterTypeCousuSurFil = "cousus_sur_fil"

// FilterLine is one air-filter stock entry. Dimensions and the order week are
// normalized on write.
type FilterLine struct {
	ID         string    `json:"id"`
	Site       string    `json:"site"`
	Equipment  *string   `json:"equipment"`
	Efficiency *string   `json:"efficiency"`
	FilterType string    `json:"filter_type"`
	Dimensions *string   `json:"dimensions"`
	Quantity   int       `json:"quantity"`
	OrderWeek  *string   `json:"order_week"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"-"`
}

// BeltLine is one drive-belt stock entry. Only the order week is normalized.
type BeltLine struct {
	ID         string    `json:"id"`
	Site       string    `json:"site"`
	Equipment  *string   `json:"equipment"`
	BeltType   *string   `json:"belt_type"`
	Dimensions *string   `json:"dimensions"`
	Quantity   int       `json:"quantity"`
	OrderWeek  *string   `json:"order_week"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"-"`
}
