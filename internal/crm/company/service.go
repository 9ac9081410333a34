package company

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/crmlocal/api/internal/platform/apperr"
	"github.com/crmlocal/api/pkg/pagination"
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

func (service *Service) List(context context.Context, params pagination.Params) ([]*Company, pagination.Meta, error) {
	companies, err := service.repo.List(context, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	total, err := service.repo.Count(context)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return companies, pagination.NewMeta(params.Page, params.Limit, total), nil
}

func (service *Service) Get(context context.Context, id string) (*Company, error) {
	return service.repo.GetByID(context, id)
}

// CreateInput carries a new company. Name is trimmed and must be unique.
type CreateInput struct {
	Name           string
	BillingAddress *string
	Tag            *string
}

func (service *Service) Create(context context.Context, input CreateInput) (*Company, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperr.ValidationError("Company name is required", apperr.FieldError{Field: "name", Message: "is required"})
	}

	if _, err := service.repo.GetByName(context, name); err == nil {
		return nil, apperr.Conflict("A company with this name already exists")
	}

	c := &Company{
		ID:             uuid.New(),
		Name:           name,
		BillingAddress: input.BillingAddress,
		Tag:            input.Tag,
		IsActive:       true,
	}
	if err := service.repo.Create(context, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateInput carries a partial update; nil fields stay untouched.
type UpdateInput struct {
	Name           *string
	BillingAddress *string
	Tag            *string
	IsActive       *bool
}

func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Company, error) {
	c, err := service.repo.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperr.ValidationError("Company name is required", apperr.FieldError{Field: "name", Message: "is required"})
		}
		if existing, err := service.repo.GetByName(context, name); err == nil && existing.ID != id {
			return nil, apperr.Conflict("A company with this name already exists")
		}
		c.Name = name
	}
	if input.BillingAddress != nil {
		c.BillingAddress = emptyToNil(input.BillingAddress)
	}
	if input.Tag != nil {
		c.Tag = emptyToNil(input.Tag)
	}
	if input.IsActive != nil {
		c.IsActive = *input.IsActive
	}

	if err := service.repo.Update(context, c); err != nil {
		return nil, err
	}
	return c, nil
}

// EnsureByName finds a company by its trimmed name or creates it, merging any
// provided billing address and tag into an existing record. Used by client
// creation and the Excel importer.
func (service *Service) EnsureByName(context context.Context, name string, billingAddress, tag *string) (*Company, error) {
	normalized := strings.TrimSpace(name)
	if normalized == "" {
		return nil, apperr.ValidationError("Company name is required", apperr.FieldError{Field: "name", Message: "is required"})
	}

	existing, err := service.repo.GetByName(context, normalized)
	if err != nil {
		if ae := apperr.As(err); ae == nil || ae.HTTPStatus != http.StatusNotFound {
			return nil, err
		}
		existing = nil
	}

	if existing != nil {
		changed := false
		if address := emptyToNil(billingAddress); address != nil {
			existing.BillingAddress = address
			changed = true
		}
		if t := emptyToNil(tag); t != nil {
			existing.Tag = t
			changed = true
		}
		if changed {
			if err := service.repo.Update(context, existing); err != nil {
				return nil, err
			}
		}
		return existing, nil
	}

	c := &Company{
		ID:             uuid.New(),
		Name:           normalized,
		BillingAddress: emptyToNil(billingAddress),
		Tag:            emptyToNil(tag),
		IsActive:       true,
	}
	if err := service.repo.Create(context, c); err != nil {
		return nil, err
	}
	service.logger.Info("company_ensured", "name", normalized)
	return c, nil
}

func emptyToNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
