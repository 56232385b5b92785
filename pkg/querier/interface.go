package querier

import (
	"context"

	"github.com/bdunphy/dictl/pkg/dict"
)

// Querier answers a single word lookup. Implementations classify their
// outcomes with the dict error taxonomy: dict.ErrNotFound (usually as a
// *dict.NotFoundError) when the provider has no definition, and
// dict.ErrUnavailable for transport or provider failures.
type Querier interface {
	Lookup(ctx context.Context, word string) ([]*dict.Entry, error)
	Close(ctx context.Context) error
}
