package schema

// CrmServiceOrderTable represents the 'crm.service_order' table
type CrmServiceOrderTable struct {
	Table             string
	ID                string
	ClientID          string
	PrestationKey     string
	PrestationLabel   string
	Category          string
	BudgetCode        string
	Frequency         string
	FrequencyInterval string
	FrequencyUnit     string
	Supplier          string
	Status            string
	CreatedAt         string
	UpdatedAt         string
}

// CrmServiceOrder is the schema definition for crm.service_order
var CrmServiceOrder = CrmServiceOrderTable{
	Table:             "crm.service_order",
	ID:                "id",
	ClientID:          "clientid",
	PrestationKey:     "prestationkey",
	PrestationLabel:   "prestationlabel",
	Category:          "category",
	BudgetCode:        "budgetcode",
	Frequency:         "frequency",
	FrequencyInterval: "frequencyinterval",
	FrequencyUnit:     "frequencyunit",
	Supplier:          "supplier",
	Status:            "status",
	CreatedAt:         "createdat",
	UpdatedAt:         "updatedat",
}

func (t CrmServiceOrderTable) Columns() []string {
	return []string{
		t.ID, t.ClientID, t.PrestationKey, t.PrestationLabel, t.Category,
		t.BudgetCode, t.Frequency, t.FrequencyInterval, t.FrequencyUnit,
		t.Supplier, t.Status, t.CreatedAt, t.UpdatedAt,
	}
}
