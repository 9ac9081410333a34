package inventory

import (
	"context"
	"log/slog"
	"strings"

	"github.com/crmlocal/api/internal/platform/apperr"
	"github.com/crmlocal/api/pkg/uuid"
)

type Service struct {
	filters FilterRepository
	belts   BeltRepository
	logger  *slog.Logger
}

func NewService(filters FilterRepository, belts BeltRepository, logger *slog.Logger) *Service {
	return &Service{
		filters: filters,
		belts:   belts,
		logger:  logger,
	}
}

func (service *Service) ListFilterLines(context context.Context) ([]*FilterLine, error) {
	return service.filters.List(context)
}

// FilterLineInput carries a new filter line or a partial update. On update,
// nil fields stay untouched; dimensions are re-normalized against the
// effective filter type.
type FilterLineInput struct {
	Site       *string
	Equipment  *string
	Efficiency *string
	FilterType *string
	Dimensions *string
	Quantity   *int
	OrderWeek  *string
}

func (service *Service) CreateFilterLine(context context.Context, input FilterLineInput) (*FilterLine, error) {
	site := ""
	if input.Site != nil {
		site = strings.TrimSpace(*input.Site)
	}
	if site == "" {
		return nil, apperr.ValidationError("Site is required", apperr.FieldError{Field: "site", Message: "is required"})
	}

	filterType := ""
	if input.FilterType != nil {
		filterType = strings.TrimSpace(*input.FilterType)
	}
	if filterType == "" {
		return nil, apperr.ValidationError("Filter type is required", apperr.FieldError{Field: "filter_type", Message: "is required"})
	}

	quantity := 1
	if input.Quantity != nil {
		if *input.Quantity < 1 {
			return nil, apperr.ValidationError("Invalid quantity", apperr.FieldError{Field: "quantity", Message: "must be at least 1"})
		}
		quantity = *input.Quantity
	}

	line := &FilterLine{
		ID:         uuid.New(),
		Site:       site,
		Equipment:  emptyToNil(input.Equipment),
		Efficiency: emptyToNil(input.Efficiency),
		FilterType: filterType,
		Dimensions: NormalizeFilterDimensions(input.Dimensions, filterType),
		Quantity:   quantity,
		OrderWeek:  NormalizeOrderWeek(input.OrderWeek),
	}
	if err := service.filters.Create(context, line); err != nil {
		return nil, err
	}
	return line, nil
}

func (service *Service) UpdateFilterLine(context context.Context, id string, input FilterLineInput) (*FilterLine, error) {
	line, err := service.filters.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Site != nil {
		site := strings.TrimSpace(*input.Site)
		if site == "" {
			return nil, apperr.ValidationError("Site is required", apperr.FieldError{Field: "site", Message: "is required"})
		}
		line.Site = site
	}
	if input.Equipment != nil {
		line.Equipment = emptyToNil(input.Equipment)
	}
	if input.Efficiency != nil {
		line.Efficiency = emptyToNil(input.Efficiency)
	}
	if input.FilterType != nil {
		filterType := strings.TrimSpace(*input.FilterType)
		if filterType == "" {
			return nil, apperr.ValidationError("Filter type is required", apperr.FieldError{Field: "filter_type", Message: "is required"})
		}
		line.FilterType = filterType
	}
	if input.Dimensions != nil {
		line.Dimensions = NormalizeFilterDimensions(input.Dimensions, line.FilterType)
	}
	if input.Quantity != nil {
		if *input.Quantity < 1 {
			return nil, apperr.ValidationError("Invalid quantity", apperr.FieldError{Field: "quantity", Message: "must be at least 1"})
		}
		line.Quantity = *input.Quantity
	}
	if input.OrderWeek != nil {
		line.OrderWeek = NormalizeOrderWeek(input.OrderWeek)
	}

	if err := service.filters.Update(context, line); err != nil {
		return nil, err
	}
	return line, nil
}

func (service *Service) DeleteFilterLine(context context.Context, id string) error {
	return service.filters.Delete(context, id)
}

func (service *Service) ListBeltLines(context context.Context) ([]*BeltLine, error) {
	return service.belts.List(context)
}

// BeltLineInput carries a new belt line or a partial update.
type BeltLineInput struct {
	Site       *string
	Equipment  *string
	BeltType   *string
	Dimensions *string
	Quantity   *int
	OrderWeek  *string
}

func (service *Service) CreateBeltLine(context context.Context, input BeltLineInput) (*BeltLine, error) {
	site := ""
	if input.Site != nil {
		site = strings.TrimSpace(*input.Site)
	}
	if site == "" {
		return nil, apperr.ValidationError("Site is required", apperr.FieldError{Field: "site", Message: "is required"})
	}

	quantity := 1
	if input.Quantity != nil {
		if *input.Quantity < 1 {
			return nil, apperr.ValidationError("Invalid quantity", apperr.FieldError{Field: "quantity", Message: "must be at least 1"})
		}
		quantity = *input.Quantity
	}

	line := &BeltLine{
		ID:         uuid.New(),
		Site:       site,
		Equipment:  emptyToNil(input.Equipment),
		BeltType:   emptyToNil(input.BeltType),
		Dimensions: emptyToNil(input.Dimensions),
		Quantity:   quantity,
		OrderWeek:  NormalizeOrderWeek(input.OrderWeek),
	}
	if err := service.belts.Create(context, line); err != nil {
		return nil, err
	}
	return line, nil
}

func (service *Service) UpdateBeltLine(context context.Context, id string, input BeltLineInput) (*BeltLine, error) {
	line, err := service.belts.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Site != nil {
		site := strings.TrimSpace(*input.Site)
		if site == "" {
			return nil, apperr.ValidationError("Site is required", apperr.FieldError{Field: "site", Message: "is required"})
		}
		line.Site = site
	}
	if input.Equipment != nil {
		line.Equipment = emptyToNil(input.Equipment)
	}
	if input.BeltType != nil {
		line.BeltType = emptyToNil(input.BeltType)
	}
	if input.Dimensions != nil {
		line.Dimensions = emptyToNil(input.Dimensions)
	}
	if input.Quantity != nil {
		if *input.Quantity < 1 {
			return nil, apperr.ValidationError("Invalid quantity", apperr.FieldError{Field: "quantity", Message: "must be at least 1"})
		}
		line.Quantity = *input.Quantity
	}
	if input.OrderWeek != nil {
		line.OrderWeek = NormalizeOrderWeek(input.OrderWeek)
	}

	if err := service.belts.Update(context, line); err != nil {
		return nil, err
	}
	return line, nil
}

func (service *Service) DeleteBeltLine(context context.Context, id string) error {
	return service.belts.Delete(context, id)
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
