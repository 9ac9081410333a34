package client

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crmlocal/api/internal/crm/company"
	"github.com/crmlocal/api/internal/platform/apperr"
)

type memoryCompanyRepository struct {
	companies map[string]*company.Company
}

func newMemoryCompanyRepository() *memoryCompanyRepository {
	return &memoryCompanyRepository{companies: make(map[string]*company.Company)}
}

func (repo *memoryCompanyRepository) GetByID(_ context.Context, id string) (*company.Company, error) {
	c, ok := repo.companies[id]
	if !ok {
		return nil, apperr.NotFound("Company")
	}
	copied := *c
	return &copied, nil
}

func (repo *memoryCompanyRepository) GetByName(_ context.Context, name string) (*company.Company, error) {
	for _, c := range repo.companies {
		if c.Name == name {
			copied := *c
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Company")
}

func (repo *memoryCompanyRepository) List(_ context.Context, limit, offset int) ([]*company.Company, error) {
	all := make([]*company.Company, 0, len(repo.companies))
	for _, c := range repo.companies {
		copied := *c
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (repo *memoryCompanyRepository) Count(_ context.Context) (int, error) {
	return len(repo.companies), nil
}

func (repo *memoryCompanyRepository) Create(_ context.Context, c *company.Company) error {
	copied := *c
	repo.companies[c.ID] = &copied
	return nil
}

func (repo *memoryCompanyRepository) Update(_ context.Context, c *company.Company) error {
	copied := *c
	repo.companies[c.ID] = &copied
	return nil
}

type memoryClientRepository struct {
	clients map[string]*Client
}

func newMemoryClientRepository() *memoryClientRepository {
	return &memoryClientRepository{clients: make(map[string]*Client)}
}

func (repo *memoryClientRepository) List(_ context.Context, filter ListFilter) ([]*Client, error) {
	all := make([]*Client, 0, len(repo.clients))
	for _, c := range repo.clients {
		if filter.Q != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Q)) {
			continue
		}
		if filter.Depannage != "" && c.Depannage != filter.Depannage {
			continue
		}
		if filter.Astreinte != "" && c.Astreinte != filter.Astreinte {
			continue
		}
		copied := *c
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

func (repo *memoryClientRepository) ListChoices(_ context.Context) ([]*Client, error) {
	all := make([]*Client, 0, len(repo.clients))
	for _, c := range repo.clients {
		copied := *c
		copied.Contacts = nil
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CompanyName != all[j].CompanyName {
			return all[i].CompanyName < all[j].CompanyName
		}
		return all[i].Name < all[j].Name
	})
	return all, nil
}

func (repo *memoryClientRepository) GetByID(_ context.Context, id string) (*Client, error) {
	c, ok := repo.clients[id]
	if !ok {
		return nil, apperr.NotFound("Client")
	}
	copied := *c
	copied.Contacts = append([]Contact(nil), c.Contacts...)
	return &copied, nil
}

func (repo *memoryClientRepository) Create(_ context.Context, c *Client) error {
	copied := *c
	copied.Contacts = append([]Contact(nil), c.Contacts...)
	repo.clients[c.ID] = &copied
	return nil
}

func (repo *memoryClientRepository) Update(_ context.Context, c *Client) error {
	existing, ok := repo.clients[c.ID]
	if !ok {
		return apperr.NotFound("Client")
	}
	copied := *c
	copied.Contacts = existing.Contacts
	repo.clients[c.ID] = &copied
	return nil
}

func (repo *memoryClientRepository) Delete(_ context.Context, id string) error {
	if _, ok := repo.clients[id]; !ok {
		return apperr.NotFound("Client")
	}
	delete(repo.clients, id)
	return nil
}

func (repo *memoryClientRepository) AddContact(_ context.Context, contact *Contact) error {
	c, ok := repo.clients[contact.ClientID]
	if !ok {
		return apperr.NotFound("Client")
	}
	c.Contacts = append(c.Contacts, *contact)
	return nil
}

func (repo *memoryClientRepository) DeleteContact(_ context.Context, clientID, contactID string) error {
	c, ok := repo.clients[clientID]
	if !ok {
		return apperr.NotFound("Contact")
	}
	for i, contact := range c.Contacts {
		if contact.ID == contactID {
			c.Contacts = append(c.Contacts[:i], c.Contacts[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("Contact")
}

func newTestService(t *testing.T) (*Service, *memoryClientRepository, *memoryCompanyRepository) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	companyRepo := newMemoryCompanyRepository()
	clientRepo := newMemoryClientRepository()
	companies := company.NewService(companyRepo, logger)
	return NewService(clientRepo, companies, logger), clientRepo, companyRepo
}

func strPtr(value string) *string { return &value }

func TestCreateResolvesCompanyByName(t *testing.T) {
	service, _, companyRepo := newTestService(t)
	ctx := context.Background()

	first, err := service.Create(ctx, CreateInput{CompanyName: "Vinci", Name: "Site A"})
	require.NoError(t, err)
	assert.Equal(t, "Vinci", first.CompanyName)
	assert.Equal(t, DefaultDepannage, first.Depannage)
	assert.Equal(t, DefaultAstreinte, first.Astreinte)
	assert.True(t, first.IsActive)

	// A second client with the same company name reuses the company record.
	second, err := service.Create(ctx, CreateInput{CompanyName: "  Vinci ", Name: "Site B"})
	require.NoError(t, err)
	assert.Equal(t, first.CompanyID, second.CompanyID)

	count, err := companyRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreateValidation(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreateInput
	}{
		{name: "blank name", input: CreateInput{CompanyName: "Vinci", Name: "   "}},
		{name: "blank company", input: CreateInput{CompanyName: "", Name: "Site A"}},
		{name: "bad depannage", input: CreateInput{CompanyName: "Vinci", Name: "Site A", Depannage: "maybe"}},
		{name: "bad astreinte", input: CreateInput{CompanyName: "Vinci", Name: "Site A", Astreinte: "sometimes"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Create(ctx, tc.input)
			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}

func TestCreateSkipsBlankContacts(t *testing.T) {
	service, _, _ := newTestService(t)

	created, err := service.Create(context.Background(), CreateInput{
		CompanyName: "Vinci",
		Name:        "Site A",
		Contacts: []ContactInput{
			{Name: "  Paul Martin  ", Email: strPtr("paul@vinci.fr")},
			{Name: "   "},
			{Name: ""},
		},
	})
	require.NoError(t, err)
	require.Len(t, created.Contacts, 1)
	assert.Equal(t, "Paul Martin", created.Contacts[0].Name)
	assert.Equal(t, created.ID, created.Contacts[0].ClientID)
}

func TestCreateNormalizesBlankOptionalFields(t *testing.T) {
	service, _, _ := newTestService(t)

	created, err := service.Create(context.Background(), CreateInput{
		CompanyName: "Vinci",
		Name:        "Site A",
		Email:       strPtr("   "),
		Phone:       strPtr(" 06 11 22 33 44 "),
	})
	require.NoError(t, err)
	assert.Nil(t, created.Email)
	require.NotNil(t, created.Phone)
	assert.Equal(t, "06 11 22 33 44", *created.Phone)
}

func TestUpdatePartial(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, CreateInput{
		CompanyName: "Vinci",
		Name:        "Site A",
		Email:       strPtr("site-a@vinci.fr"),
	})
	require.NoError(t, err)

	updated, err := service.Update(ctx, created.ID, UpdateInput{
		Name:      strPtr("Site A bis"),
		Depannage: strPtr(DepannageRefacturable),
	})
	require.NoError(t, err)
	assert.Equal(t, "Site A bis", updated.Name)
	assert.Equal(t, DepannageRefacturable, updated.Depannage)
	// Untouched fields survive the partial update.
	require.NotNil(t, updated.Email)
	assert.Equal(t, "site-a@vinci.fr", *updated.Email)
	assert.Equal(t, created.CompanyID, updated.CompanyID)
}

func TestUpdateMovesClientToAnotherCompany(t *testing.T) {
	service, _, companyRepo := newTestService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, CreateInput{CompanyName: "Vinci", Name: "Site A"})
	require.NoError(t, err)

	updated, err := service.Update(ctx, created.ID, UpdateInput{CompanyName: strPtr("Bouygues")})
	require.NoError(t, err)
	assert.NotEqual(t, created.CompanyID, updated.CompanyID)
	assert.Equal(t, "Bouygues", updated.CompanyName)

	count, err := companyRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestUpdateUnknownClient(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.Update(context.Background(), "missing", UpdateInput{Name: strPtr("x")})
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

func TestAddContact(t *testing.T) {
	service, repo, _ := newTestService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, CreateInput{CompanyName: "Vinci", Name: "Site A"})
	require.NoError(t, err)

	contact, err := service.AddContact(ctx, created.ID, ContactInput{Name: " Claire Dubois "})
	require.NoError(t, err)
	assert.Equal(t, "Claire Dubois", contact.Name)

	_, err = service.AddContact(ctx, created.ID, ContactInput{Name: "  "})
	require.Error(t, err)

	_, err = service.AddContact(ctx, "missing", ContactInput{Name: "Someone"})
	require.Error(t, err)

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Contacts, 1)
}

func TestDeleteContact(t *testing.T) {
	service, repo, _ := newTestService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, CreateInput{
		CompanyName: "Vinci",
		Name:        "Site A",
		Contacts:    []ContactInput{{Name: "Paul"}},
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteContact(ctx, created.ID, created.Contacts[0].ID))

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Contacts)

	err = service.DeleteContact(ctx, created.ID, "missing")
	require.Error(t, err)
}
