package catalog

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crmlocal/api/internal/platform/apperr"
)

type memoryRepository struct {
	prestations []Prestation
}

func (repo *memoryRepository) List(_ context.Context) ([]Prestation, error) {
	return append([]Prestation(nil), repo.prestations...), nil
}

func (repo *memoryRepository) GetByKey(_ context.Context, key string) (*Prestation, error) {
	for _, prestation := range repo.prestations {
		if prestation.Key == key {
			copied := prestation
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Prestation")
}

func (repo *memoryRepository) Count(_ context.Context) (int, error) {
	return len(repo.prestations), nil
}

func (repo *memoryRepository) InsertAll(_ context.Context, prestations []Prestation) error {
	repo.prestations = append(repo.prestations, prestations...)
	return nil
}

func newCatalogService(repo *memoryRepository) *Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSeedDefaults(t *testing.T) {
	repo := &memoryRepository{}
	service := newCatalogService(repo)
	ctx := context.Background()

	require.NoError(t, service.SeedDefaults(ctx))

	total := 0
	for _, group := range DefaultGroups {
		total += len(group.Options)
	}
	assert.Len(t, repo.prestations, total)

	// Every seeded prestation carries its group's category.
	seeded, err := repo.GetByKey(ctx, "analyse_eau")
	require.NoError(t, err)
	assert.Equal(t, CategorySousTraitance, seeded.Category)
	require.NotNil(t, seeded.BudgetCode)
	assert.Equal(t, "S1000", *seeded.BudgetCode)
}

func TestSeedDefaultsSkipsNonEmptyCatalog(t *testing.T) {
	repo := &memoryRepository{prestations: []Prestation{
		{Key: "custom", Label: "Custom", Category: "Divers", Position: 1},
	}}
	service := newCatalogService(repo)

	require.NoError(t, service.SeedDefaults(context.Background()))
	assert.Len(t, repo.prestations, 1)
}

func TestListGroupedOrdersCategoriesAndOptions(t *testing.T) {
	code := "X9999"
	repo := &memoryRepository{prestations: []Prestation{
		{Key: "location_nacelle", Label: "Nacelle", Category: CategoryLocations, Position: 3},
		{Key: "analyse_eau", Label: "Analyse eau", Category: CategorySousTraitance, Position: 1},
		{Key: "location_echafaudage", Label: "Échafaudage", Category: CategoryLocations, Position: 1},
		{Key: "divers_xyz", Label: "XYZ", BudgetCode: &code, Category: "Divers", Position: 1},
	}}
	service := newCatalogService(repo)

	groups, err := service.ListGrouped(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 3)

	// Known categories keep the defaults order, unknown ones go last.
	assert.Equal(t, CategorySousTraitance, groups[0].Category)
	assert.Equal(t, CategoryLocations, groups[1].Category)
	assert.Equal(t, "Divers", groups[2].Category)

	require.Len(t, groups[1].Options, 2)
	assert.Equal(t, "location_echafaudage", groups[1].Options[0].Key)
	assert.Equal(t, "location_nacelle", groups[1].Options[1].Key)
}

func TestGetUnknownKey(t *testing.T) {
	service := newCatalogService(&memoryRepository{})

	_, err := service.Get(context.Background(), "missing")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}
