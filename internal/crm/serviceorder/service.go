package serviceorder

import (
	"context"
	"log/slog"
	"strings"

	"github.com/crmlocal/api/internal/crm/catalog"
	"github.com/crmlocal/api/internal/platform/apperr"
	"github.com/crmlocal/api/pkg/uuid"
)

type Service struct {
	repo    Repository
	catalog *catalog.Service
	logger  *slog.Logger
}

func NewService(repo Repository, catalogService *catalog.Service, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		catalog: catalogService,
		logger:  logger,
	}
}

func (service *Service) List(context context.Context, filter ListFilter) ([]*Order, error) {
	return service.repo.List(context, filter)
}

func (service *Service) Get(context context.Context, id string) (*Order, error) {
	return service.repo.GetByID(context, id)
}

// CreateInput carries a new order. The prestation key is resolved against the
// catalog; label, category and budget code are snapshotted from the definition
// so later catalog edits don't rewrite existing orders.
type CreateInput struct {
	PrestationKey     string
	Frequency         *string
	FrequencyInterval *int
	FrequencyUnit     *string
	Supplier          *string
	Status            string
}

func (service *Service) Create(context context.Context, clientID string, input CreateInput) (*Order, error) {
	key := strings.TrimSpace(input.PrestationKey)
	if key == "" {
		return nil, apperr.ValidationError("Prestation is required", apperr.FieldError{Field: "prestation_key", Message: "is required"})
	}

	prestation, err := service.catalog.Get(context, key)
	if err != nil {
		return nil, apperr.ValidationError("Unknown prestation", apperr.FieldError{Field: "prestation_key", Message: "is not in the catalog"})
	}

	status := input.Status
	if status == "" {
		status = DefaultStatus
	}
	if !ValidStatus(status) {
		return nil, apperr.ValidationError("Invalid status", apperr.FieldError{Field: "status", Message: "must be non_commence, en_cours or termine"})
	}

	if input.FrequencyInterval != nil && *input.FrequencyInterval < 1 {
		return nil, apperr.ValidationError("Invalid frequency interval", apperr.FieldError{Field: "frequency_interval", Message: "must be at least 1"})
	}

	order := &Order{
		ID:                uuid.New(),
		ClientID:          clientID,
		PrestationKey:     prestation.Key,
		PrestationLabel:   prestation.Label,
		Category:          prestation.Category,
		BudgetCode:        prestation.BudgetCode,
		Frequency:         input.Frequency,
		FrequencyInterval: input.FrequencyInterval,
		FrequencyUnit:     input.FrequencyUnit,
		Supplier:          input.Supplier,
		Status:            status,
	}
	if err := service.repo.Create(context, order); err != nil {
		return nil, err
	}
	service.logger.Info("service_order_created", "order_id", order.ID, "client_id", clientID, "prestation", prestation.Key)
	return order, nil
}

// UpdateInput carries a partial update; nil fields stay untouched. Changing the
// prestation key re-snapshots label, category and budget code.
type UpdateInput struct {
	PrestationKey     *string
	Frequency         *string
	FrequencyInterval *int
	FrequencyUnit     *string
	Supplier          *string
	Status            *string
}

func (service *Service) Update(context context.Context, clientID, orderID string, input UpdateInput) (*Order, error) {
	order, err := service.repo.GetByID(context, orderID)
	if err != nil {
		return nil, err
	}
	if order.ClientID != clientID {
		return nil, apperr.NotFound("Service order")
	}

	if input.PrestationKey != nil {
		prestation, err := service.catalog.Get(context, strings.TrimSpace(*input.PrestationKey))
		if err != nil {
			return nil, apperr.ValidationError("Unknown prestation", apperr.FieldError{Field: "prestation_key", Message: "is not in the catalog"})
		}
		order.PrestationKey = prestation.Key
		order.PrestationLabel = prestation.Label
		order.Category = prestation.Category
		order.BudgetCode = prestation.BudgetCode
	}
	if input.Frequency != nil {
		order.Frequency = emptyToNil(input.Frequency)
	}
	if input.FrequencyInterval != nil {
		if *input.FrequencyInterval < 1 {
			return nil, apperr.ValidationError("Invalid frequency interval", apperr.FieldError{Field: "frequency_interval", Message: "must be at least 1"})
		}
		order.FrequencyInterval = input.FrequencyInterval
	}
	if input.FrequencyUnit != nil {
		order.FrequencyUnit = emptyToNil(input.FrequencyUnit)
	}
	if input.Supplier != nil {
		order.Supplier = emptyToNil(input.Supplier)
	}
	if input.Status != nil {
		if !ValidStatus(*input.Status) {
			return nil, apperr.ValidationError("Invalid status", apperr.FieldError{Field: "status", Message: "must be non_commence, en_cours or termine"})
		}
		order.Status = *input.Status
	}

	if err := service.repo.Update(context, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (service *Service) Delete(context context.Context, clientID, orderID string) error {
	return service.repo.Delete(context, clientID, orderID)
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
