package source

import "context"

// Repository defines the data access contract for source records.
type Repository interface {
	Create(ctx context.Context, src *Source) (*Source, error)
	Get(ctx context.Context, id int64) (*Source, error)
}
