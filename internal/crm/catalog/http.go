package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/crmlocal/api/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/prestations", handler.listPrestations)
}

func (handler *Handler) listPrestations(writer http.ResponseWriter, request *http.Request) {
	groups, err := handler.service.ListGrouped(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, groups)
}
