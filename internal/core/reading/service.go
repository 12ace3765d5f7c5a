package reading

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/citely/internal/core/source"
	"github.com/taibuivan/citely/internal/platform/constants"
	"github.com/taibuivan/citely/internal/platform/ctxutil"
)

// SourceCreator is the subset of the source registry used to create samples.
type SourceCreator interface {
	CreateBook(ctx context.Context, fields source.BookFields) (*source.Source, error)
	CreateArticle(ctx context.Context, fields source.ArticleFields) (*source.Source, error)
	CreateVideo(ctx context.Context, fields source.VideoFields) (*source.Source, error)
}

// HealthPinger pings the liveness endpoint of the citation service.
type HealthPinger interface {
	Ping(ctx context.Context, path string, timeout time.Duration) error
}

// Service implements availability checks and working-set population.
type Service struct {
	sources       SourceCreator
	pinger        HealthPinger
	healthTimeout time.Duration
	logger        *slog.Logger
}

// NewService constructs a Service. healthTimeout bounds every health check.
func NewService(sources SourceCreator, pinger HealthPinger, healthTimeout time.Duration, logger *slog.Logger) *Service {
	return &Service{
		sources:       sources,
		pinger:        pinger,
		healthTimeout: healthTimeout,
		logger:        logger,
	}
}

/*
HealthCheck reports whether the citation service answers its health endpoint
with a 2xx status within the health timeout.

It has no side effects and never fails: any error is reported as false.
*/
func (service *Service) HealthCheck(ctx context.Context) bool {
	err := service.pinger.Ping(ctx, constants.PathHealth, service.healthTimeout)
	if err != nil {
		ctxutil.LoggerOr(ctx, service.logger).DebugContext(ctx, "citation_service_unhealthy", slog.Any("error", err))
		return false
	}
	return true
}

/*
Populate creates the three sample readings (book, article, video, in that
order) and appends each successful result to ws.

When none could be created in this pass, the static fallback list is
appended instead. A partial success keeps only the created records.
*/
func (service *Service) Populate(ctx context.Context, ws *WorkingSet) {
	logger := ctxutil.LoggerOr(ctx, service.logger)
	ws.setState(StatePopulating)

	attempts := []func() (*source.Source, error){
		func() (*source.Source, error) { return service.sources.CreateBook(ctx, sampleBook()) },
		func() (*source.Source, error) { return service.sources.CreateArticle(ctx, sampleArticle()) },
		func() (*source.Source, error) { return service.sources.CreateVideo(ctx, sampleVideo()) },
	}

	createdCount := 0
	for _, create := range attempts {
		created, err := create()
		if err != nil || created == nil {
			continue
		}
		ws.append(*created)
		createdCount++
	}

	if createdCount == 0 {
		ws.append(Fallback()...)
		ws.setState(StatePopulatedFallback)
		logger.WarnContext(ctx, "working_set_fallback_used", slog.Int("readings_count", ws.Len()))
		return
	}

	ws.setState(StatePopulatedRemote)
	logger.InfoContext(ctx, "working_set_populated", slog.Int("readings_count", ws.Len()))
}

// Refresh clears ws unconditionally and populates it again.
func (service *Service) Refresh(ctx context.Context, ws *WorkingSet) {
	ws.Clear()
	service.Populate(ctx, ws)
}

// EnsurePopulated populates ws only when it is empty.
func (service *Service) EnsurePopulated(ctx context.Context, ws *WorkingSet) {
	if ws.IsEmpty() {
		service.Populate(ctx, ws)
	}
}
