package workload

import "context"

type Repository interface {
	ListSites(ctx context.Context) ([]*Site, error)
	GetSite(ctx context.Context, id string) (*Site, error)
	GetSiteByName(ctx context.Context, name string) (*Site, error)
	MaxPosition(ctx context.Context) (int, error)
	CreateSite(ctx context.Context, site *Site) error
	UpdateSite(ctx context.Context, site *Site) error
	DeleteSite(ctx context.Context, id string) error

	SiteIDsExist(ctx context.Context, ids []string) (map[string]bool, error)
	UpsertCell(ctx context.Context, cell Cell) error
	DeleteCell(ctx context.Context, siteID string, dayIndex int) error

	// ReplacePlan wipes all sites and cells and writes the given board in a
	// single transaction.
	ReplacePlan(ctx context.Context, sites []*Site) error
}
