package citation

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/citely/internal/platform/apperr"
	requestutil "github.com/taibuivan/citely/internal/platform/request"
	"github.com/taibuivan/citely/internal/platform/respond"
	"github.com/taibuivan/citely/internal/platform/validate"
)

// Handler serves the citation endpoint used by the reading list page.
type Handler struct {
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/generate_citation", handler.generateCitation)
}

// sourceID accepts both `7` and `"7"` from the page script.
type sourceID int64

func (id *sourceID) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*id = 0
		return nil
	}
	parsed, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return err
	}
	*id = sourceID(parsed)
	return nil
}

type generateInput struct {
	SourceID sourceID `json:"source_id"`
	Style    string   `json:"style"`
	Backfill *bool    `json:"backfill"`
}

type generateOutput struct {
	Success  bool   `json:"success"`
	Citation string `json:"citation"`
	Style    Style  `json:"style"`
}

func (handler *Handler) generateCitation(writer http.ResponseWriter, request *http.Request) {
	var input generateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.SourceID == 0 {
		respond.Error(writer, request, validate.RequiredError("source_id", "Source ID is required"))
		return
	}
	if input.SourceID < 0 {
		respond.Error(writer, request, apperr.ValidationError("Source ID must be positive",
			apperr.FieldError{Field: "source_id", Message: "Must be a positive integer"}))
		return
	}

	style := NormalizeStyle(input.Style)
	backfill := DefaultBackfill
	if input.Backfill != nil {
		backfill = *input.Backfill
	}

	citation, err := handler.service.GenerateCitation(request.Context(), int64(input.SourceID), style.String(), backfill)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// An empty citation is not something the page can show.
	if citation == "" {
		respond.Error(writer, request, apperr.UpstreamFailure(FailureMessage(style), nil))
		return
	}

	respond.OK(writer, generateOutput{Success: true, Citation: citation, Style: style})
}

var _ json.Unmarshaler = (*sourceID)(nil)
