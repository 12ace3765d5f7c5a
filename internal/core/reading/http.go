package reading

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/citely/internal/core/citation"
	"github.com/taibuivan/citely/internal/core/source"
	"github.com/taibuivan/citely/internal/platform/respond"
	"github.com/taibuivan/citely/pkg/optional"
	"github.com/taibuivan/citely/pkg/slice"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Handler serves the readings page and the working-set endpoints.
//
// It owns the session's working set. net/http serves requests concurrently,
// so every access goes through mu.
type Handler struct {
	service *Service

	mu         sync.Mutex
	workingSet *WorkingSet
}

func NewHandler(service *Service, workingSet *WorkingSet) *Handler {
	if workingSet == nil {
		workingSet = NewWorkingSet()
	}
	return &Handler{service: service, workingSet: workingSet}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.index)
	router.Get("/api/readings", handler.listReadings)
	router.Post("/refresh_data", handler.refresh)
}

// # Page

type readingView struct {
	ID      int64
	HasID   bool
	Title   string
	Author  string
	Type    string
	Details string
}

type pageData struct {
	Readings      []readingView
	ServiceStatus bool
	Fallback      bool
	Styles        []citation.Style
}

func (handler *Handler) index(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	healthy := handler.service.HealthCheck(ctx)

	handler.mu.Lock()
	handler.service.EnsurePopulated(populationContext(request), handler.workingSet)
	readings := handler.workingSet.Readings()
	state := handler.workingSet.State()
	handler.mu.Unlock()

	respond.HTML(writer, request, pageTemplates, "index.html", pageData{
		Readings:      slice.Map(readings, toView),
		ServiceStatus: healthy,
		Fallback:      state == StatePopulatedFallback,
		Styles:        citation.KnownStyles,
	})
}

func toView(src source.Source) readingView {
	var details []string
	add := func(label, value string) {
		if value != "" {
			details = append(details, label+value)
		}
	}

	switch src.Type {
	case source.TypeBook:
		add("", optional.String(src.Publisher))
		add("", optional.String(src.Year))
		add("ISBN ", optional.String(src.ISBN))
	case source.TypeArticle:
		add("", optional.String(src.Journal))
		add("vol. ", optional.String(src.Volume))
		add("no. ", optional.String(src.Issue))
		add("", optional.String(src.Year))
		add("pp. ", optional.String(src.Pages))
		add("doi:", optional.String(src.DOI))
	case source.TypeVideo:
		add("", optional.String(src.Platform))
		add("", optional.String(src.Year))
		if seconds, ok := optional.Get(src.Duration); ok {
			add("", fmt.Sprintf("%d min", seconds/60))
		}
		add("", optional.String(src.URL))
	}

	return readingView{
		ID:      src.IDValue(),
		HasID:   src.HasID(),
		Title:   src.Title,
		Author:  src.Author,
		Type:    src.Type.String(),
		Details: strings.Join(details, ", "),
	}
}

// # JSON Endpoints

type readingsOutput struct {
	Readings []source.Source `json:"readings"`
	Count    int             `json:"count"`
}

func (handler *Handler) listReadings(writer http.ResponseWriter, request *http.Request) {
	handler.mu.Lock()
	readings := handler.workingSet.Readings()
	handler.mu.Unlock()

	respond.OK(writer, readingsOutput{Readings: readings, Count: len(readings)})
}

type refreshOutput struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	ReadingsCount int    `json:"readings_count"`
}

func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	handler.mu.Lock()
	handler.service.Refresh(populationContext(request), handler.workingSet)
	count := handler.workingSet.Len()
	handler.mu.Unlock()

	respond.OK(writer, refreshOutput{
		Success:       true,
		Message:       fmt.Sprintf("Sample data refreshed. %d readings loaded.", count),
		ReadingsCount: count,
	})
}

// populationContext keeps the request's values (logger, request id) but not
// its cancellation. The working set outlives the request, so a client that
// disconnects mid-refresh must not leave it holding fallback records while
// the service is healthy. Each remote call stays bounded by its own timeout.
func populationContext(request *http.Request) context.Context {
	return context.WithoutCancel(request.Context())
}

// # Shared Access

// Snapshot returns the current readings and state under the handler's lock.
func (handler *Handler) Snapshot() ([]source.Source, State) {
	handler.mu.Lock()
	defer handler.mu.Unlock()
	return handler.workingSet.Readings(), handler.workingSet.State()
}

// Initialize populates the working set if it is still empty. It is called
// once at startup so the first page view does not pay for population.
func (handler *Handler) Initialize(ctx context.Context) {
	handler.mu.Lock()
	defer handler.mu.Unlock()
	handler.service.EnsurePopulated(ctx, handler.workingSet)
}
