package schema

// CrmCompanyTable represents the 'crm.company' table
type CrmCompanyTable struct {
	Table          string
	ID             string
	Name           string
	BillingAddress string
	Tag            string
	IsActive       string
	CreatedAt      string
	UpdatedAt      string
}

// CrmCompany is the schema definition for crm.company
var CrmCompany = CrmCompanyTable{
	Table:          "crm.company",
	ID:             "id",
	Name:           "name",
	BillingAddress: "billingaddress",
	Tag:            "tag",
	IsActive:       "isactive",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
}

func (t CrmCompanyTable) Columns() []string {
	return []string{t.ID, t.Name, t.BillingAddress, t.Tag, t.IsActive, t.CreatedAt, t.UpdatedAt}
}
