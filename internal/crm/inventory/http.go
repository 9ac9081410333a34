package inventory

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/crmlocal/api/internal/platform/request"
	"github.com/crmlocal/api/internal/platform/respond"
	"github.com/crmlocal/api/internal/platform/validate"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Route("/filters", func(router chi.Router) {
		router.Get("/", handler.listFilterLines)
		router.Post("/", handler.createFilterLine)
		router.Patch("/{id}", handler.updateFilterLine)
		router.Delete("/{id}", handler.deleteFilterLine)
	})
	router.Route("/belts", func(router chi.Router) {
		router.Get("/", handler.listBeltLines)
		router.Post("/", handler.createBeltLine)
		router.Patch("/{id}", handler.updateBeltLine)
		router.Delete("/{id}", handler.deleteBeltLine)
	})
}

type filterLineRequest struct {
	Site       *string `json:"site"`
	Equipment  *string `json:"equipment"`
	Efficiency *string `json:"efficiency"`
	FilterType *string `json:"filter_type"`
	Dimensions *string `json:"dimensions"`
	Quantity   *int    `json:"quantity"`
	OrderWeek  *string `json:"order_week"`
}

func (request filterLineRequest) input() FilterLineInput {
	return FilterLineInput{
		Site:       request.Site,
		Equipment:  request.Equipment,
		Efficiency: request.Efficiency,
		FilterType: request.FilterType,
		Dimensions: request.Dimensions,
		Quantity:   request.Quantity,
		OrderWeek:  request.OrderWeek,
	}
}

type beltLineRequest struct {
	Site       *string `json:"site"`
	Equipment  *string `json:"equipment"`
	BeltType   *string `json:"belt_type"`
	Dimensions *string `json:"dimensions"`
	Quantity   *int    `json:"quantity"`
	OrderWeek  *string `json:"order_week"`
}

func (request beltLineRequest) input() BeltLineInput {
	return BeltLineInput{
		Site:       request.Site,
		Equipment:  request.Equipment,
		BeltType:   request.BeltType,
		Dimensions: request.Dimensions,
		Quantity:   request.Quantity,
		OrderWeek:  request.OrderWeek,
	}
}

func (handler *Handler) listFilterLines(writer http.ResponseWriter, request *http.Request) {
	lines, err := handler.service.ListFilterLines(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, lines)
}

func (handler *Handler) createFilterLine(writer http.ResponseWriter, request *http.Request) {
	var input filterLineRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	line, err := handler.service.CreateFilterLine(request.Context(), input.input())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, line)
}

func (handler *Handler) updateFilterLine(writer http.ResponseWriter, request *http.Request) {
	var input filterLineRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	line, err := handler.service.UpdateFilterLine(request.Context(), requestutil.ID(request, "id"), input.input())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, line)
}

func (handler *Handler) deleteFilterLine(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteFilterLine(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) listBeltLines(writer http.ResponseWriter, request *http.Request) {
	lines, err := handler.service.ListBeltLines(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, lines)
}

func (handler *Handler) createBeltLine(writer http.ResponseWriter, request *http.Request) {
	var input beltLineRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	line, err := handler.service.CreateBeltLine(request.Context(), input.input())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, line)
}

func (handler *Handler) updateBeltLine(writer http.ResponseWriter, request *http.Request) {
	var input beltLineRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	line, err := handler.service.UpdateBeltLine(request.Context(), requestutil.ID(request, "id"), input.input())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, line)
}

func (handler *Handler) deleteBeltLine(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteBeltLine(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
