package catalog

import (
	"context"
	"log/slog"
	"sort"
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

// SeedDefaults populates the catalog from the built-in defaults when the table
// is empty. Called once at startup; a non-empty catalog is left untouched.
func (service *Service) SeedDefaults(context context.Context) error {
	count, err := service.repo.Count(context)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	prestations := make([]Prestation, 0)
	for _, group := range DefaultGroups {
		for _, prestation := range group.Options {
			prestation.Category = group.Category
			prestations = append(prestations, prestation)
		}
	}

	if err := service.repo.InsertAll(context, prestations); err != nil {
		return err
	}
	service.logger.Info("catalog_seeded", "prestations", len(prestations))
	return nil
}

// ListGrouped returns the catalog grouped by category, options ordered by
// position. Category order follows the defaults table, unknown categories last.
func (service *Service) ListGrouped(context context.Context) ([]Group, error) {
	prestations, err := service.repo.List(context)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string][]Prestation)
	for _, prestation := range prestations {
		byCategory[prestation.Category] = append(byCategory[prestation.Category], prestation)
	}

	rank := make(map[string]int, len(DefaultGroups))
	for index, group := range DefaultGroups {
		rank[group.Category] = index
	}

	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		ri, iKnown := rank[categories[i]]
		rj, jKnown := rank[categories[j]]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return categories[i] < categories[j]
		}
	})

	groups := make([]Group, 0, len(categories))
	for _, category := range categories {
		options := byCategory[category]
		sort.Slice(options, func(i, j int) bool { return options[i].Position < options[j].Position })
		groups = append(groups, Group{Category: category, Options: options})
	}
	return groups, nil
}

// Get resolves a prestation by key.
func (service *Service) Get(context context.Context, key string) (*Prestation, error) {
	return service.repo.GetByKey(context, key)
}
