package schema

// CrmWorkloadCellTable represents the 'crm.workload_cell' table
type CrmWorkloadCellTable struct {
	Table     string
	SiteID    string
	DayIndex  string
	Value     string
	UpdatedAt string
}

// CrmWorkloadCell is the schema definition for crm.workload_cell
var CrmWorkloadCell = CrmWorkloadCellTable{
	Table:     "crm.workload_cell",
	SiteID:    "siteid",
	DayIndex:  "dayindex",
	Value:     "value",
	UpdatedAt: "updatedat",
}

func (t CrmWorkloadCellTable) Columns() []string {
	return []string{t.SiteID, t.DayIndex, t.Value, t.UpdatedAt}
}
