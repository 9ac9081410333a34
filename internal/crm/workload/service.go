package workload

import (
	"context"
	"log/slog"
	"strings"

	"github.com/crmlocal/api/internal/platform/apperr"
	"github.com/crmlocal/api/pkg/uuid"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListSites(context context.Context) ([]*Site, error) {
	return service.repo.ListSites(context)
}

func (service *Service) CreateSite(context context.Context, name string) (*Site, error) {
	normalized := strings.TrimSpace(name)
	if normalized == "" {
		return nil, apperr.ValidationError("Site name is required", apperr.FieldError{Field: "name", Message: "is required"})
	}

	if _, err := service.repo.GetSiteByName(context, normalized); err == nil {
		return nil, apperr.Conflict("A site with this name already exists")
	}

	maxPosition, err := service.repo.MaxPosition(context)
	if err != nil {
		return nil, err
	}

	site := &Site{
		ID:       uuid.New(),
		Name:     normalized,
		Position: maxPosition + 1,
		Cells:    make([]Cell, 0),
	}
	if err := service.repo.CreateSite(context, site); err != nil {
		return nil, err
	}
	return site, nil
}

// UpdateSiteInput carries a partial site update; nil fields stay untouched.
type UpdateSiteInput struct {
	Name     *string
	Position *int
}

func (service *Service) UpdateSite(context context.Context, id string, input UpdateSiteInput) (*Site, error) {
	site, err := service.repo.GetSite(context, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		normalized := strings.TrimSpace(*input.Name)
		if normalized == "" {
			return nil, apperr.ValidationError("Site name is required", apperr.FieldError{Field: "name", Message: "is required"})
		}
		if existing, err := service.repo.GetSiteByName(context, normalized); err == nil && existing.ID != id {
			return nil, apperr.Conflict("This name is already in use")
		}
		site.Name = normalized
	}
	if input.Position != nil {
		site.Position = *input.Position
	}

	if err := service.repo.UpdateSite(context, site); err != nil {
		return nil, err
	}
	return site, nil
}

func (service *Service) DeleteSite(context context.Context, id string) error {
	return service.repo.DeleteSite(context, id)
}

// UpdateCells applies a batch of cell writes. A blank value clears the cell.
// An unknown site or an out-of-range day index rejects the whole batch before
// anything is written. Returns the number of entries processed.
func (service *Service) UpdateCells(context context.Context, updates []CellUpdate) (int, error) {
	if len(updates) == 0 {
		return 0, nil
	}

	siteIDs := make([]string, 0, len(updates))
	seen := make(map[string]bool, len(updates))
	for _, update := range updates {
		if update.DayIndex < 0 || update.DayIndex >= DaysPerPlan {
			return 0, apperr.ValidationError("Invalid day index", apperr.FieldError{Field: "day_index", Message: "must be between 0 and 363"})
		}
		if !seen[update.SiteID] {
			seen[update.SiteID] = true
			siteIDs = append(siteIDs, update.SiteID)
		}
	}

	existing, err := service.repo.SiteIDsExist(context, siteIDs)
	if err != nil {
		return 0, err
	}
	for _, siteID := range siteIDs {
		if !existing[siteID] {
			return 0, apperr.NotFound("Workload site")
		}
	}

	for _, update := range updates {
		value := strings.TrimSpace(update.Value)
		if value == "" {
			if err := service.repo.DeleteCell(context, update.SiteID, update.DayIndex); err != nil {
				return 0, err
			}
			continue
		}
		cell := Cell{SiteID: update.SiteID, DayIndex: update.DayIndex, Value: value}
		if err := service.repo.UpsertCell(context, cell); err != nil {
			return 0, err
		}
	}
	return len(updates), nil
}

// ReplacePlan wipes the whole board and rebuilds it from ordered site names
// and their day values. Names are trimmed and deduplicated; positions are
// assigned sequentially from 1; each site keeps at most 364 values and blank
// values are skipped. Returns the number of sites created.
func (service *Service) ReplacePlan(context context.Context, siteNames []string, cells map[string][]string) (int, error) {
	normalizedCells := make(map[string][]string, len(cells))
	for name, values := range cells {
		normalizedCells[strings.TrimSpace(name)] = values
	}

	sites := make([]*Site, 0, len(siteNames))
	seen := make(map[string]bool, len(siteNames))
	for _, rawName := range siteNames {
		name := strings.TrimSpace(rawName)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		site := &Site{
			ID:       uuid.New(),
			Name:     name,
			Position: len(sites) + 1,
			Cells:    make([]Cell, 0),
		}

		values := normalizedCells[name]
		if len(values) > DaysPerPlan {
			values = values[:DaysPerPlan]
		}
		for dayIndex, raw := range values {
			value := strings.TrimSpace(raw)
			if value == "" {
				continue
			}
			site.Cells = append(site.Cells, Cell{SiteID: site.ID, DayIndex: dayIndex, Value: value})
		}

		sites = append(sites, site)
	}

	if err := service.repo.ReplacePlan(context, sites); err != nil {
		return 0, err
	}
	service.logger.Info("workload_plan_replaced", "sites", len(sites))
	return len(sites), nil
}
