package client

import (
	"context"
	"log/slog"
	"strings"

	"github.com/crmlocal/api/internal/crm/company"
	"github.com/crmlocal/api/internal/platform/apperr"
	"github.com/crmlocal/api/pkg/uuid"
)

type Service struct {
	repo      Repository
	companies *company.Service
	logger    *slog.Logger
}

func NewService(repo Repository, companies *company.Service, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		companies: companies,
		logger:    logger,
	}
}

func (service *Service) List(context context.Context, filter ListFilter) ([]*Client, error) {
	return service.repo.List(context, filter)
}

// ListChoices returns every client ordered by company then client name, without
// contacts. Used for dropdowns and the Excel export.
func (service *Service) ListChoices(context context.Context) ([]*Client, error) {
	return service.repo.ListChoices(context)
}

func (service *Service) Get(context context.Context, id string) (*Client, error) {
	return service.repo.GetByID(context, id)
}

// ContactInput carries an inline contact on client creation.
type ContactInput struct {
	Name  string
	Email *string
	Phone *string
}

// CreateInput carries a new client. The company is resolved by name and
// created on the fly when unknown.
type CreateInput struct {
	CompanyName    string
	Name           string
	Email          *string
	Phone          *string
	BillingAddress *string
	Depannage      string
	Astreinte      string
	Tag            *string
	TechnicianName *string
	IsActive       *bool
	Contacts       []ContactInput
}

func (service *Service) Create(context context.Context, input CreateInput) (*Client, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperr.ValidationError("Client name is required", apperr.FieldError{Field: "name", Message: "is required"})
	}

	depannage := input.Depannage
	if depannage == "" {
		depannage = DefaultDepannage
	}
	if !ValidDepannage(depannage) {
		return nil, apperr.ValidationError("Invalid depannage value", apperr.FieldError{Field: "depannage", Message: "must be refacturable or non_refacturable"})
	}

	astreinte := input.Astreinte
	if astreinte == "" {
		astreinte = DefaultAstreinte
	}
	if !ValidAstreinte(astreinte) {
		return nil, apperr.ValidationError("Invalid astreinte value", apperr.FieldError{Field: "astreinte", Message: "is not a recognized astreinte mode"})
	}

	co, err := service.companies.EnsureByName(context, input.CompanyName, input.BillingAddress, input.Tag)
	if err != nil {
		return nil, err
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	c := &Client{
		ID:             uuid.New(),
		CompanyID:      co.ID,
		CompanyName:    co.Name,
		Name:           name,
		Email:          emptyToNil(input.Email),
		Phone:          emptyToNil(input.Phone),
		BillingAddress: emptyToNil(input.BillingAddress),
		Depannage:      depannage,
		Astreinte:      astreinte,
		Tag:            emptyToNil(input.Tag),
		TechnicianName: emptyToNil(input.TechnicianName),
		IsActive:       active,
		Contacts:       make([]Contact, 0, len(input.Contacts)),
	}
	for _, contact := range input.Contacts {
		contactName := strings.TrimSpace(contact.Name)
		if contactName == "" {
			continue
		}
		c.Contacts = append(c.Contacts, Contact{
			ID:       uuid.New(),
			ClientID: c.ID,
			Name:     contactName,
			Email:    emptyToNil(contact.Email),
			Phone:    emptyToNil(contact.Phone),
		})
	}

	if err := service.repo.Create(context, c); err != nil {
		return nil, err
	}
	service.logger.Info("client_created", "client_id", c.ID, "company", co.Name)
	return c, nil
}

// UpdateInput carries a partial update; nil fields stay untouched. Setting
// CompanyName moves the client, resolving or creating the target company.
type UpdateInput struct {
	CompanyName    *string
	Name           *string
	Email          *string
	Phone          *string
	BillingAddress *string
	Depannage      *string
	Astreinte      *string
	Tag            *string
	TechnicianName *string
	IsActive       *bool
}

func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Client, error) {
	c, err := service.repo.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.CompanyName != nil {
		co, err := service.companies.EnsureByName(context, *input.CompanyName, nil, nil)
		if err != nil {
			return nil, err
		}
		c.CompanyID = co.ID
		c.CompanyName = co.Name
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperr.ValidationError("Client name is required", apperr.FieldError{Field: "name", Message: "is required"})
		}
		c.Name = name
	}
	if input.Email != nil {
		c.Email = emptyToNil(input.Email)
	}
	if input.Phone != nil {
		c.Phone = emptyToNil(input.Phone)
	}
	if input.BillingAddress != nil {
		c.BillingAddress = emptyToNil(input.BillingAddress)
	}
	if input.Depannage != nil {
		if !ValidDepannage(*input.Depannage) {
			return nil, apperr.ValidationError("Invalid depannage value", apperr.FieldError{Field: "depannage", Message: "must be refacturable or non_refacturable"})
		}
		c.Depannage = *input.Depannage
	}
	if input.Astreinte != nil {
		if !ValidAstreinte(*input.Astreinte) {
			return nil, apperr.ValidationError("Invalid astreinte value", apperr.FieldError{Field: "astreinte", Message: "is not a recognized astreinte mode"})
		}
		c.Astreinte = *input.Astreinte
	}
	if input.Tag != nil {
		c.Tag = emptyToNil(input.Tag)
	}
	if input.TechnicianName != nil {
		c.TechnicianName = emptyToNil(input.TechnicianName)
	}
	if input.IsActive != nil {
		c.IsActive = *input.IsActive
	}

	if err := service.repo.Update(context, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}
	service.logger.Info("client_deleted", "client_id", id)
	return nil
}

func (service *Service) AddContact(context context.Context, clientID string, input ContactInput) (*Contact, error) {
	if _, err := service.repo.GetByID(context, clientID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperr.ValidationError("Contact name is required", apperr.FieldError{Field: "name", Message: "is required"})
	}

	contact := &Contact{
		ID:       uuid.New(),
		ClientID: clientID,
		Name:     name,
		Email:    emptyToNil(input.Email),
		Phone:    emptyToNil(input.Phone),
	}
	if err := service.repo.AddContact(context, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (service *Service) DeleteContact(context context.Context, clientID, contactID string) error {
	return service.repo.DeleteContact(context, clientID, contactID)
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
