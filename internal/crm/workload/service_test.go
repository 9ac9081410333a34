package workload

import (
	"context"
	"log/slog"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crmlocal/api/internal/platform/apperr"
)

type memoryRepository struct {
	sites map[string]*Site
	cells map[string]map[int]string
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		sites: make(map[string]*Site),
		cells: make(map[string]map[int]string),
	}
}

func (repo *memoryRepository) ListSites(_ context.Context) ([]*Site, error) {
	sites := make([]*Site, 0, len(repo.sites))
	for _, site := range repo.sites {
		copied := *site
		copied.Cells = make([]Cell, 0)
		for dayIndex, value := range repo.cells[site.ID] {
			copied.Cells = append(copied.Cells, Cell{SiteID: site.ID, DayIndex: dayIndex, Value: value})
		}
		sort.Slice(copied.Cells, func(i, j int) bool { return copied.Cells[i].DayIndex < copied.Cells[j].DayIndex })
		sites = append(sites, &copied)
	}
	sort.Slice(sites, func(i, j int) bool { return sites[i].Position < sites[j].Position })
	return sites, nil
}

func (repo *memoryRepository) GetSite(_ context.Context, id string) (*Site, error) {
	site, ok := repo.sites[id]
	if !ok {
		return nil, apperr.NotFound("Workload site")
	}
	copied := *site
	return &copied, nil
}

func (repo *memoryRepository) GetSiteByName(_ context.Context, name string) (*Site, error) {
	for _, site := range repo.sites {
		if site.Name == name {
			copied := *site
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Workload site")
}

func (repo *memoryRepository) MaxPosition(_ context.Context) (int, error) {
	max := 0
	for _, site := range repo.sites {
		if site.Position > max {
			max = site.Position
		}
	}
	return max, nil
}

func (repo *memoryRepository) CreateSite(_ context.Context, site *Site) error {
	copied := *site
	repo.sites[site.ID] = &copied
	return nil
}

func (repo *memoryRepository) UpdateSite(_ context.Context, site *Site) error {
	copied := *site
	repo.sites[site.ID] = &copied
	return nil
}

func (repo *memoryRepository) DeleteSite(_ context.Context, id string) error {
	if _, ok := repo.sites[id]; !ok {
		return apperr.NotFound("Workload site")
	}
	delete(repo.sites, id)
	delete(repo.cells, id)
	return nil
}

func (repo *memoryRepository) SiteIDsExist(_ context.Context, ids []string) (map[string]bool, error) {
	existing := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := repo.sites[id]; ok {
			existing[id] = true
		}
	}
	return existing, nil
}

func (repo *memoryRepository) UpsertCell(_ context.Context, cell Cell) error {
	if repo.cells[cell.SiteID] == nil {
		repo.cells[cell.SiteID] = make(map[int]string)
	}
	repo.cells[cell.SiteID][cell.DayIndex] = cell.Value
	return nil
}

func (repo *memoryRepository) DeleteCell(_ context.Context, siteID string, dayIndex int) error {
	delete(repo.cells[siteID], dayIndex)
	return nil
}

func (repo *memoryRepository) ReplacePlan(_ context.Context, sites []*Site) error {
	repo.sites = make(map[string]*Site)
	repo.cells = make(map[string]map[int]string)
	for _, site := range sites {
		copied := *site
		repo.sites[site.ID] = &copied
		repo.cells[site.ID] = make(map[int]string)
		for _, cell := range site.Cells {
			repo.cells[site.ID][cell.DayIndex] = cell.Value
		}
	}
	return nil
}

func newTestService() (*Service, *memoryRepository) {
	repo := newMemoryRepository()
	return NewService(repo, slog.Default()), repo
}

func TestService_CreateSite(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	first, err := service.CreateSite(ctx, "  Tour A  ")
	require.NoError(t, err)
	assert.Equal(t, "Tour A", first.Name)
	assert.Equal(t, 1, first.Position)

	second, err := service.CreateSite(ctx, "Tour B")
	require.NoError(t, err)
	assert.Equal(t, 2, second.Position)
}

func TestService_CreateSite_Validation(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	_, err := service.CreateSite(ctx, "   ")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	_, err = service.CreateSite(ctx, "Tour A")
	require.NoError(t, err)
	_, err = service.CreateSite(ctx, "Tour A")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestService_UpdateSite_RenameConflict(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	siteA, err := service.CreateSite(ctx, "Tour A")
	require.NoError(t, err)
	_, err = service.CreateSite(ctx, "Tour B")
	require.NoError(t, err)

	name := "Tour B"
	_, err = service.UpdateSite(ctx, siteA.ID, UpdateSiteInput{Name: &name})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	// Renaming to its own name is a no-op, not a conflict.
	own := "Tour A"
	_, err = service.UpdateSite(ctx, siteA.ID, UpdateSiteInput{Name: &own})
	assert.NoError(t, err)
}

func TestService_UpdateCells(t *testing.T) {
	service, repo := newTestService()
	ctx := context.Background()

	site, err := service.CreateSite(ctx, "Tour A")
	require.NoError(t, err)

	updated, err := service.UpdateCells(ctx, []CellUpdate{
		{SiteID: site.ID, DayIndex: 0, Value: " chantier "},
		{SiteID: site.ID, DayIndex: 5, Value: "maintenance"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated)
	assert.Equal(t, "chantier", repo.cells[site.ID][0])

	// A blank value clears the cell.
	updated, err = service.UpdateCells(ctx, []CellUpdate{
		{SiteID: site.ID, DayIndex: 0, Value: "  "},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated)
	_, exists := repo.cells[site.ID][0]
	assert.False(t, exists)
}

func TestService_UpdateCells_RejectsBatch(t *testing.T) {
	service, repo := newTestService()
	ctx := context.Background()

	site, err := service.CreateSite(ctx, "Tour A")
	require.NoError(t, err)

	testCases := []struct {
		name    string
		updates []CellUpdate
		code    string
	}{
		{
			name: "day index below range",
			updates: []CellUpdate{
				{SiteID: site.ID, DayIndex: -1, Value: "x"},
			},
			code: "VALIDATION_ERROR",
		},
		{
			name: "day index above range",
			updates: []CellUpdate{
				{SiteID: site.ID, DayIndex: DaysPerPlan, Value: "x"},
			},
			code: "VALIDATION_ERROR",
		},
		{
			name: "unknown site rejects whole batch",
			updates: []CellUpdate{
				{SiteID: site.ID, DayIndex: 1, Value: "kept out"},
				{SiteID: "ghost", DayIndex: 2, Value: "x"},
			},
			code: "NOT_FOUND",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := service.UpdateCells(ctx, testCase.updates)
			require.Error(t, err)
			assert.Equal(t, testCase.code, apperr.As(err).Code)
		})
	}

	// The valid entry of the rejected batch was not written.
	_, exists := repo.cells[site.ID][1]
	assert.False(t, exists)
}

func TestService_ReplacePlan(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	// Pre-existing board is wiped.
	_, err := service.CreateSite(ctx, "Ancien site")
	require.NoError(t, err)

	created, err := service.ReplacePlan(ctx,
		[]string{" Tour A ", "Tour B", "Tour A", "  ", "Tour C"},
		map[string][]string{
			"Tour A": {"chantier", "", " maintenance "},
			"Tour C": {"visite"},
		})
	require.NoError(t, err)
	assert.Equal(t, 3, created)

	sites, err := service.ListSites(ctx)
	require.NoError(t, err)
	require.Len(t, sites, 3)

	assert.Equal(t, "Tour A", sites[0].Name)
	assert.Equal(t, 1, sites[0].Position)
	assert.Equal(t, "Tour B", sites[1].Name)
	assert.Equal(t, 2, sites[1].Position)
	assert.Equal(t, "Tour C", sites[2].Name)
	assert.Equal(t, 3, sites[2].Position)

	// Blank values are skipped; kept values are trimmed.
	require.Len(t, sites[0].Cells, 2)
	assert.Equal(t, 0, sites[0].Cells[0].DayIndex)
	assert.Equal(t, "chantier", sites[0].Cells[0].Value)
	assert.Equal(t, 2, sites[0].Cells[1].DayIndex)
	assert.Equal(t, "maintenance", sites[0].Cells[1].Value)
	assert.Empty(t, sites[1].Cells)
}

func TestService_ReplacePlan_CapsValuesPerSite(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	values := make([]string, DaysPerPlan+20)
	for index := range values {
		values[index] = "x"
	}

	created, err := service.ReplacePlan(ctx, []string{"Tour A"}, map[string][]string{"Tour A": values})
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	sites, err := service.ListSites(ctx)
	require.NoError(t, err)
	require.Len(t, sites, 1)
	assert.Len(t, sites[0].Cells, DaysPerPlan)
}
