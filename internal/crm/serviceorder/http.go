package serviceorder

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/crmlocal/api/internal/platform/request"
	"github.com/crmlocal/api/internal/platform/respond"
	"github.com/crmlocal/api/internal/platform/validate"
	"github.com/crmlocal/api/pkg/convert"
	"github.com/crmlocal/api/pkg/pointer"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the cross-client order list and detail.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listOrders)
	router.Get("/{id}", handler.getOrder)
}

// RegisterClientRoutes mounts the client-scoped order operations; the parent
// router carries the {id} client parameter.
func (handler *Handler) RegisterClientRoutes(router chi.Router) {
	router.Post("/", handler.createOrder)
	router.Patch("/{orderID}", handler.updateOrder)
	router.Delete("/{orderID}", handler.deleteOrder)
}

type orderRequest struct {
	PrestationKey     *string `json:"prestation_key"`
	Frequency         *string `json:"frequency"`
	FrequencyInterval *int    `json:"frequency_interval"`
	FrequencyUnit     *string `json:"frequency_unit"`
	Supplier          *string `json:"supplier"`
	Status            *string `json:"status"`
}

func (handler *Handler) listOrders(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	filter := ListFilter{
		Q:         query.Get("q"),
		Category:  query.Get("category"),
		Frequency: query.Get("frequency"),
		Limit:     convert.ToInt(query.Get("limit")),
	}

	orders, err := handler.service.List(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, orders)
}

func (handler *Handler) getOrder(writer http.ResponseWriter, request *http.Request) {
	order, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, order)
}

func (handler *Handler) createOrder(writer http.ResponseWriter, request *http.Request) {
	var input orderRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	create := CreateInput{
		PrestationKey:     pointer.Val(input.PrestationKey),
		Frequency:         input.Frequency,
		FrequencyInterval: input.FrequencyInterval,
		FrequencyUnit:     input.FrequencyUnit,
		Supplier:          input.Supplier,
		Status:            pointer.Val(input.Status),
	}

	order, err := handler.service.Create(request.Context(), requestutil.ID(request, "id"), create)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, order)
}

func (handler *Handler) updateOrder(writer http.ResponseWriter, request *http.Request) {
	var input orderRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	order, err := handler.service.Update(request.Context(),
		requestutil.ID(request, "id"), requestutil.ID(request, "orderID"), UpdateInput{
			PrestationKey:     input.PrestationKey,
			Frequency:         input.Frequency,
			FrequencyInterval: input.FrequencyInterval,
			FrequencyUnit:     input.FrequencyUnit,
			Supplier:          input.Supplier,
			Status:            input.Status,
		})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, order)
}

func (handler *Handler) deleteOrder(writer http.ResponseWriter, request *http.Request) {
	err := handler.service.Delete(request.Context(),
		requestutil.ID(request, "id"), requestutil.ID(request, "orderID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
