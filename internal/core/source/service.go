package source

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/citely/internal/platform/apperr"
	"github.com/taibuivan/citely/internal/platform/ctxutil"
	"github.com/taibuivan/citely/internal/platform/remote"
	"github.com/taibuivan/citely/internal/platform/validate"
)

// Service implements the source registry use cases.
//
// Every failure is logged here and returned as an error value; nothing
// panics across this boundary. The returned [*apperr.AppError] wraps the
// transport error, so [remote.IsKind] still works on it.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a Service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

/*
CreateSource validates and transmits a record to the creation endpoint.

Returns:
  - *Source: the stored record carrying its server-assigned id
  - error: VALIDATION_ERROR before any call, UPSTREAM_FAILURE on transport errors
*/
func (service *Service) CreateSource(ctx context.Context, src Source) (*Source, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}

	created, err := service.repo.Create(ctx, &src)
	if err != nil {
		ctxutil.LoggerOr(ctx, service.logger).WarnContext(ctx, "source_create_failed",
			slog.String("type", src.Type.String()),
			slog.String("title", src.Title),
			slog.Any("error", err),
		)
		return nil, apperr.UpstreamFailure("Failed to create source. Please check if the Citation Service is running.", err)
	}

	return created, nil
}

/*
GetSource fetches a single record by its server-assigned id.

Returns:
  - *Source: the stored record
  - error: VALIDATION_ERROR for non-positive ids, NOT_FOUND when the service
    answers 404, UPSTREAM_FAILURE otherwise
*/
func (service *Service) GetSource(ctx context.Context, id int64) (*Source, error) {
	if err := (&validate.Validator{}).Positive("id", id).Err(); err != nil {
		return nil, err
	}

	found, err := service.repo.Get(ctx, id)
	if err != nil {
		ctxutil.LoggerOr(ctx, service.logger).WarnContext(ctx, "source_get_failed",
			slog.Int64("source_id", id),
			slog.Any("error", err),
		)

		if remote.StatusCode(err) == http.StatusNotFound {
			notFound := apperr.NotFound("Source")
			notFound.Cause = err
			return nil, notFound
		}
		return nil, apperr.UpstreamFailure("Failed to fetch source. Please check if the Citation Service is running.", err)
	}

	return found, nil
}

// CreateBook registers a BOOK with only the supplied optional fields.
func (service *Service) CreateBook(ctx context.Context, fields BookFields) (*Source, error) {
	return service.CreateSource(ctx, fields.Source())
}

// CreateArticle registers an ARTICLE with only the supplied optional fields.
func (service *Service) CreateArticle(ctx context.Context, fields ArticleFields) (*Source, error) {
	return service.CreateSource(ctx, fields.Source())
}

// CreateVideo registers a VIDEO with only the supplied optional fields.
func (service *Service) CreateVideo(ctx context.Context, fields VideoFields) (*Source, error) {
	return service.CreateSource(ctx, fields.Source())
}
