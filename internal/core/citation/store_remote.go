package citation

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/taibuivan/citely/internal/platform/constants"
	"github.com/taibuivan/citely/internal/platform/remote"
	"github.com/taibuivan/citely/pkg/convert"
)

// RemoteGenerator implements Generator against the citation service.
type RemoteGenerator struct {
	client *remote.Client
}

// NewRemoteGenerator creates a Generator backed by the remote service.
func NewRemoteGenerator(client *remote.Client) *RemoteGenerator {
	return &RemoteGenerator{client: client}
}

// Generate posts the request parameters as a query string with no body and
// returns the citation field of the response, or "" when the field is absent.
func (generator *RemoteGenerator) Generate(ctx context.Context, req Request) (string, error) {
	query := url.Values{}
	query.Set(constants.QuerySourceID, convert.FormatID(req.SourceID))
	query.Set(constants.QueryStyle, req.Style.String())
	query.Set(constants.QueryBackfill, convert.FormatBool(req.Backfill))

	var response Response
	err := generator.client.Do(ctx, remote.Request{
		Method: http.MethodPost,
		Path:   constants.PathCitationGenerate,
		Query:  query,
	}, &response)
	if err != nil {
		return "", fmt.Errorf("citation_remote_generate_failed: %w", err)
	}

	return response.Citation, nil
}
