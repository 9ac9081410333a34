package schema

// CrmClientTable represents the 'crm.client' table
type CrmClientTable struct {
	Table          string
	ID             string
	CompanyID      string
	Name           string
	Email          string
	Phone          string
	BillingAddress string
	Depannage      string
	Astreinte      string
	Tag            string
	TechnicianName string
	IsActive       string
	CreatedAt      string
	UpdatedAt      string
}

// CrmClient is the schema definition for crm.client
var CrmClient = CrmClientTable{
	Table:          "crm.client",
	ID:             "id",
	CompanyID:      "companyid",
	Name:           "name",
	Email:          "email",
	Phone:          "phone",
	BillingAddress: "billingaddress",
	Depannage:      "depannage",
	Astreinte:      "astreinte",
	Tag:            "tag",
	TechnicianName: "technicianname",
	IsActive:       "isactive",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
}

func (t CrmClientTable) Columns() []string {
	return []string{
		t.ID, t.CompanyID, t.Name, t.Email, t.Phone, t.BillingAddress,
		t.Depannage, t.Astreinte, t.Tag, t.TechnicianName, t.IsActive,
		t.CreatedAt, t.UpdatedAt,
	}
}
