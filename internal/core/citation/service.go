package citation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/citely/internal/platform/apperr"
	"github.com/taibuivan/citely/internal/platform/ctxutil"
)

// Service turns registered sources into formatted citations through a
// Generator. Failures come back as UPSTREAM_FAILURE errors naming the style.
type Service struct {
	generator Generator
	logger    *slog.Logger
}

// NewService constructs a Service.
func NewService(generator Generator, logger *slog.Logger) *Service {
	return &Service{
		generator: generator,
		logger:    logger,
	}
}

/*
GenerateCitation asks the service to format the source in the given style.

The style is upper-cased before transmission, so "mla" and "MLA" produce the
same outbound request. A success response without a citation field yields ""
and a nil error.

Returns:
  - string: the formatted citation
  - error: UPSTREAM_FAILURE naming the style when the service call fails
*/
func (service *Service) GenerateCitation(ctx context.Context, sourceID int64, style string, backfill bool) (string, error) {
	req := Request{
		SourceID: sourceID,
		Style:    NormalizeStyle(style),
		Backfill: backfill,
	}

	citation, err := service.generator.Generate(ctx, req)
	if err != nil {
		ctxutil.LoggerOr(ctx, service.logger).WarnContext(ctx, "citation_generate_failed",
			slog.Int64("source_id", req.SourceID),
			slog.String("style", req.Style.String()),
			slog.Bool("backfill", req.Backfill),
			slog.Any("error", err),
		)
		return "", apperr.UpstreamFailure(FailureMessage(req.Style), err)
	}

	return citation, nil
}

// FailureMessage is the user-facing text shown when a citation cannot be produced.
func FailureMessage(style Style) string {
	return fmt.Sprintf("Failed to generate %s citation. Please check if the Citation Service is running.", style)
}
