// Package workload manages the yearly planning board: one row per site,
// one cell per day over a 364-day grid.
package workload

import "time"

// DaysPerPlan is the number of day columns on the board (52 weeks of 7 days).
const DaysPerPlan = 364

// Site is one board row. Positions order rows top to bottom.
type Site struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"-"`

	Cells []Cell `json:"cells"`
}

// Cell is one filled day on a site's row. Empty days have no cell.
type Cell struct {
	SiteID   string `json:"site_id"`
	DayIndex int    `json:"day_index"`
	Value    string `json:"value"`
}

// CellUpdate is one entry of a bulk cell write. A blank value clears the cell.
type CellUpdate struct {
	SiteID   string `json:"site_id"`
	DayIndex int    `json:"day_index"`
	Value    string `json:"value"`
}
