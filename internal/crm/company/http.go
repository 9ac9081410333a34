package company

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/crmlocal/api/internal/platform/request"
	"github.com/crmlocal/api/internal/platform/respond"
	"github.com/crmlocal/api/internal/platform/validate"
	"github.com/crmlocal/api/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listCompanies)
	router.Post("/", handler.createCompany)
	router.Get("/{id}", handler.getCompany)
	router.Patch("/{id}", handler.updateCompany)
}

type companyRequest struct {
	Name           *string `json:"name"`
	BillingAddress *string `json:"billing_address"`
	Tag            *string `json:"tag"`
	IsActive       *bool   `json:"is_active"`
}

func (handler *Handler) listCompanies(writer http.ResponseWriter, request *http.Request) {
	companies, meta, err := handler.service.List(request.Context(), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, companies, meta)
}

func (handler *Handler) getCompany(writer http.ResponseWriter, request *http.Request) {
	c, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, c)
}

func (handler *Handler) createCompany(writer http.ResponseWriter, request *http.Request) {
	var input companyRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Name == nil {
		validator.Required("name", "")
	} else {
		validator.Required("name", *input.Name)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	c, err := handler.service.Create(request.Context(), CreateInput{
		Name:           *input.Name,
		BillingAddress: input.BillingAddress,
		Tag:            input.Tag,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, c)
}

func (handler *Handler) updateCompany(writer http.ResponseWriter, request *http.Request) {
	var input companyRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	c, err := handler.service.Update(request.Context(), requestutil.ID(request, "id"), UpdateInput{
		Name:           input.Name,
		BillingAddress: input.BillingAddress,
		Tag:            input.Tag,
		IsActive:       input.IsActive,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, c)
}
