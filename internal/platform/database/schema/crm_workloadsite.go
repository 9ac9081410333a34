package schema

// CrmWorkloadSiteTable represents the 'crm.workload_site' table
type CrmWorkloadSiteTable struct {
	Table     string
	ID        string
	Name      string
	Position  string
	CreatedAt string
}

// CrmWorkloadSite is the schema definition for crm.workload_site
var CrmWorkloadSite = CrmWorkloadSiteTable{
	Table:     "crm.workload_site",
	ID:        "id",
	Name:      "name",
	Position:  "position",
	CreatedAt: "createdat",
}

func (t CrmWorkloadSiteTable) Columns() []string {
	return []string{t.ID, t.Name, t.Position, t.CreatedAt}
}
