// Package composition implements the compound-prompt engine: structural
// validation of component lists, cycle detection and depth bounding over the
// prompt reference graph, and recursive resolution of a compound prompt into
// its final display text.
//
// All traversals are sequential depth-first walks over a graph read through a
// Fetcher. The package takes no locks: a single validation or resolution call
// observes the graph as an implicit snapshot built up through its fetches, so
// a concurrent component edit can surface as a transiently inconsistent graph.
// Callers that need stronger guarantees must serialize edits themselves.
package composition

import (
	"context"

	"github.com/tessera-app/tessera/domain"
)

// MaxNestingDepth bounds the longest chain of compound-to-compound references
// a prompt may expand through.
const MaxNestingDepth = 5

// Fetcher loads a prompt and its ordered components by id. Implementations
// return domain.ErrNotFound when the id does not exist. The engine performs
// one Fetch per edge expansion; it never reaches storage any other way.
type Fetcher interface {
	Fetch(ctx context.Context, id string) (*domain.Prompt, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, id string) (*domain.Prompt, error)

func (f FetcherFunc) Fetch(ctx context.Context, id string) (*domain.Prompt, error) {
	return f(ctx, id)
}
