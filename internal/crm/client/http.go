package client

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

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listClients)
	router.Post("/", handler.createClient)
	router.Get("/choices", handler.listChoices)
	router.Get("/{id}", handler.getClient)
	router.Patch("/{id}", handler.updateClient)
	router.Delete("/{id}", handler.deleteClient)
	router.Post("/{id}/contacts", handler.addContact)
	router.Delete("/{id}/contacts/{contactID}", handler.deleteContact)
}

type contactRequest struct {
	Name  string  `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

type clientRequest struct {
	CompanyName    *string          `json:"company_name"`
	Name           *string          `json:"name"`
	Email          *string          `json:"email"`
	Phone          *string          `json:"phone"`
	BillingAddress *string          `json:"billing_address"`
	Depannage      *string          `json:"depannage"`
	Astreinte      *string          `json:"astreinte"`
	Tag            *string          `json:"tag"`
	TechnicianName *string          `json:"technician_name"`
	IsActive       *bool            `json:"is_active"`
	Contacts       []contactRequest `json:"contacts"`
}

func (handler *Handler) listClients(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	filter := ListFilter{
		Q:         query.Get("q"),
		Status:    query.Get("status"),
		Depannage: query.Get("depannage"),
		Astreinte: query.Get("astreinte"),
		Limit:     convert.ToInt(query.Get("limit")),
	}

	clients, err := handler.service.List(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, clients)
}

func (handler *Handler) listChoices(writer http.ResponseWriter, request *http.Request) {
	clients, err := handler.service.ListChoices(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, clients)
}

func (handler *Handler) getClient(writer http.ResponseWriter, request *http.Request) {
	c, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, c)
}

func (handler *Handler) createClient(writer http.ResponseWriter, request *http.Request) {
	var input clientRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required("company_name", pointer.Val(input.CompanyName))
	validator.Required("name", pointer.Val(input.Name))
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	create := CreateInput{
		CompanyName:    *input.CompanyName,
		Name:           *input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		BillingAddress: input.BillingAddress,
		Depannage:      pointer.Val(input.Depannage),
		Astreinte:      pointer.Val(input.Astreinte),
		Tag:            input.Tag,
		TechnicianName: input.TechnicianName,
		IsActive:       input.IsActive,
	}
	for _, contact := range input.Contacts {
		create.Contacts = append(create.Contacts, ContactInput{
			Name:  contact.Name,
			Email: contact.Email,
			Phone: contact.Phone,
		})
	}

	c, err := handler.service.Create(request.Context(), create)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, c)
}

func (handler *Handler) updateClient(writer http.ResponseWriter, request *http.Request) {
	var input clientRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	c, err := handler.service.Update(request.Context(), requestutil.ID(request, "id"), UpdateInput{
		CompanyName:    input.CompanyName,
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		BillingAddress: input.BillingAddress,
		Depannage:      input.Depannage,
		Astreinte:      input.Astreinte,
		Tag:            input.Tag,
		TechnicianName: input.TechnicianName,
		IsActive:       input.IsActive,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, c)
}

func (handler *Handler) deleteClient(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) addContact(writer http.ResponseWriter, request *http.Request) {
	var input contactRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	contact, err := handler.service.AddContact(request.Context(), requestutil.ID(request, "id"), ContactInput{
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, contact)
}

func (handler *Handler) deleteContact(writer http.ResponseWriter, request *http.Request) {
	err := handler.service.DeleteContact(request.Context(),
		requestutil.ID(request, "id"), requestutil.ID(request, "contactID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
