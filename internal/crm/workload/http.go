package workload

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
	router.Get("/sites", handler.listSites)
	router.Post("/sites", handler.createSite)
	router.Patch("/sites/{id}", handler.updateSite)
	router.Delete("/sites/{id}", handler.deleteSite)
	router.Put("/cells", handler.updateCells)
	router.Put("/plan", handler.replacePlan)
}

func (handler *Handler) listSites(writer http.ResponseWriter, request *http.Request) {
	sites, err := handler.service.ListSites(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, sites)
}

type siteRequest struct {
	Name     *string `json:"name"`
	Position *int    `json:"position"`
}

func (handler *Handler) createSite(writer http.ResponseWriter, request *http.Request) {
	var input siteRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	name := ""
	if input.Name != nil {
		name = *input.Name
	}

	site, err := handler.service.CreateSite(request.Context(), name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, site)
}

func (handler *Handler) updateSite(writer http.ResponseWriter, request *http.Request) {
	var input siteRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	site, err := handler.service.UpdateSite(request.Context(), requestutil.ID(request, "id"), UpdateSiteInput{
		Name:     input.Name,
		Position: input.Position,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, site)
}

func (handler *Handler) deleteSite(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteSite(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

type cellsRequest struct {
	Updates []CellUpdate `json:"updates"`
}

func (handler *Handler) updateCells(writer http.ResponseWriter, request *http.Request) {
	var input cellsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	updated, err := handler.service.UpdateCells(request.Context(), input.Updates)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]int{"updated": updated})
}

type planRequest struct {
	Sites []string            `json:"sites"`
	Cells map[string][]string `json:"cells"`
}

func (handler *Handler) replacePlan(writer http.ResponseWriter, request *http.Request) {
	var input planRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	created, err := handler.service.ReplacePlan(request.Context(), input.Sites, input.Cells)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]int{"sites": created})
}
