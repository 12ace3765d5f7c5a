package source

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/citely/internal/platform/request"
	"github.com/taibuivan/citely/internal/platform/respond"
)

// Handler exposes the source registry to the browser page and API consumers.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router mounted under /api/sources.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/", handler.createSource)
	router.Get("/{id}", handler.getSource)
}

type sourceEnvelope struct {
	Success bool    `json:"success"`
	Source  *Source `json:"source"`
}

func (handler *Handler) createSource(writer http.ResponseWriter, request *http.Request) {
	var input Source
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// The server assigns ids; a client-supplied one is never forwarded.
	input.ID = nil

	created, err := handler.service.CreateSource(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, sourceEnvelope{Success: true, Source: created})
}

func (handler *Handler) getSource(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IDParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.service.GetSource(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, sourceEnvelope{Success: true, Source: found})
}
