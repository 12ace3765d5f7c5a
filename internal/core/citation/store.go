package citation

import "context"

// Generator defines the contract for producing a formatted citation.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}
