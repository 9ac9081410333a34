package schema

// CrmFilterLineTable represents the 'crm.filter_line' table
type CrmFilterLineTable struct {
	Table      string
	ID         string
	Site       string
	Equipment  string
	Efficiency string
	FilterType string
	Dimensions string
	Quantity   string
	OrderWeek  string
	CreatedAt  string
	UpdatedAt  string
}

// CrmFilterLine is the schema definition for crm.filter_line
var CrmFilterLine = CrmFilterLineTable{
	Table:      "crm.filter_line",
	ID:         "id",
	Site:       "site",
	Equipment:  "equipment",
	Efficiency: "efficiency",
	FilterType: "filtertype",
	Dimensions: "dimensions",
	Quantity:   "quantity",
	OrderWeek:  "orderweek",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

func (t CrmFilterLineTable) Columns() []string {
	return []string{
		t.ID, t.Site, t.Equipment, t.Efficiency, t.FilterType,
		t.Dimensions, t.Quantity, t.OrderWeek, t.CreatedAt, t.UpdatedAt,
	}
}
