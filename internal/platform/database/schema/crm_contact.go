package schema

// CrmContactTable represents the 'crm.contact' table
type CrmContactTable struct {
	Table     string
	ID        string
	ClientID  string
	Name      string
	Email     string
	Phone     string
	CreatedAt string
}

// CrmContact is the schema definition for crm.contact
var CrmContact = CrmContactTable{
	Table:     "crm.contact",
	ID:        "id",
	ClientID:  "clientid",
	Name:      "name",
	Email:     "email",
	Phone:     "phone",
	CreatedAt: "createdat",
}

func (t CrmContactTable) Columns() []string {
	return []string{t.ID, t.ClientID, t.Name, t.Email, t.Phone, t.CreatedAt}
}
