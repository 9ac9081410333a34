package schema

// CrmBeltLineTable represents the 'crm.belt_line' table
type CrmBeltLineTable struct {
	Table      string
	ID         string
	Site       string
	Equipment  string
	BeltType   string
	Dimensions string
	Quantity   string
	OrderWeek  string
	CreatedAt  string
	UpdatedAt  string
}

// CrmBeltLine is the schema definition for crm.belt_line
var CrmBeltLine = CrmBeltLineTable{
	Table:      "crm.belt_line",
	ID:         "id",
	Site:       "site",
	Equipment:  "equipment",
	BeltType:   "belttype",
	Dimensions: "dimensions",
	Quantity:   "quantity",
	OrderWeek:  "orderweek",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

func (t CrmBeltLineTable) Columns() []string {
	return []string{
		t.ID, t.Site, t.Equipment, t.BeltType, t.Dimensions,
		t.Quantity, t.OrderWeek, t.CreatedAt, t.UpdatedAt,
	}
}
