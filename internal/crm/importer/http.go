package importer

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/crmlocal/api/internal/platform/apperr"
	"github.com/crmlocal/api/internal/platform/respond"
)

// maxUploadSize caps import uploads at 10 MiB.
const maxUploadSize = 10 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts import/export under the client routes.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/import", handler.importClients)
	router.Get("/export", handler.exportClients)
}

func (handler *Handler) importClients(writer http.ResponseWriter, request *http.Request) {
	request.Body = http.MaxBytesReader(writer, request.Body, maxUploadSize)
	if err := request.ParseMultipartForm(maxUploadSize); err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid upload"))
		return
	}

	file, _, err := request.FormFile("file")
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Missing file field"))
		return
	}
	defer file.Close()

	result, err := handler.service.Import(request.Context(), file)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) exportClients(writer http.ResponseWriter, request *http.Request) {
	writer.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	writer.Header().Set("Content-Disposition", `attachment; filename="clients.xlsx"`)

	if err := handler.service.Export(request.Context(), writer); err != nil {
		// Headers may already be out; log through the standard error path.
		respond.Error(writer, request, err)
	}
}
