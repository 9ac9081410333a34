package schema

// CrmPrestationDefinitionTable represents the 'crm.prestation_definition' table
type CrmPrestationDefinitionTable struct {
	Table      string
	Key        string
	Label      string
	BudgetCode string
	Category   string
	Position   string
}

// CrmPrestationDefinition is the schema definition for crm.prestation_definition
var CrmPrestationDefinition = CrmPrestationDefinitionTable{
	Table:      "crm.prestation_definition",
	Key:        "key",
	Label:      "label",
	BudgetCode: "budgetcode",
	Category:   "category",
	Position:   "position",
}

func (t CrmPrestationDefinitionTable) Columns() []string {
	return []string{t.Key, t.Label, t.BudgetCode, t.Category, t.Position}
}
