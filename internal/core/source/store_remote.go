package source

import (
	"context"
	"fmt"
	"net/http"

	"github.com/taibuivan/citely/internal/platform/constants"
	"github.com/taibuivan/citely/internal/platform/remote"
	"github.com/taibuivan/citely/pkg/convert"
)

// RemoteRepository implements Repository against the citation service.
type RemoteRepository struct {
	client *remote.Client
}

// NewRemoteRepository creates a Repository backed by the remote service.
func NewRemoteRepository(client *remote.Client) *RemoteRepository {
	return &RemoteRepository{client: client}
}

// Create posts the record to the creation endpoint and returns the stored
// record, including the server-assigned id.
func (repository *RemoteRepository) Create(ctx context.Context, src *Source) (*Source, error) {
	var created Source

	err := repository.client.Do(ctx, remote.Request{
		Method: http.MethodPost,
		Path:   constants.PathSources,
		Body:   src,
	}, &created)
	if err != nil {
		return nil, fmt.Errorf("source_remote_create_failed: %w", err)
	}

	return &created, nil
}

// Get fetches a single record by id.
func (repository *RemoteRepository) Get(ctx context.Context, id int64) (*Source, error) {
	var found Source

	err := repository.client.Do(ctx, remote.Request{
		Method: http.MethodGet,
		Path:   constants.PathSources + "/" + convert.FormatID(id),
	}, &found)
	if err != nil {
		return nil, fmt.Errorf("source_remote_get_failed: %w", err)
	}

	return &found, nil
}
