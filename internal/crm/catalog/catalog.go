// Package catalog holds the prestation definitions that service orders
// reference. The catalog is seeded from built-in defaults on first start.
package catalog

// Prestation is a purchasable service definition.
type Prestation struct {
	Key        string  `json:"key"`
	Label      string  `json:"label"`
	BudgetCode *string `json:"budget_code"`
	Category   string  `json:"category"`
	Position   int     `json:"position"`
}

// Group is a category with its prestations ordered by position.
type Group struct {
	Category string       `json:"category"`
	Options  []Prestation `json:"options"`
}
