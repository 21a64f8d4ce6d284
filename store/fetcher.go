package store

import (
	"context"

	"github.com/tessera-app/tessera/domain"
)

// Fetch implements composition.Fetcher. Each call loads the prompt row plus
// its ordered components; the composition engine expands deeper levels itself
// with further Fetch calls. There is no snapshot isolation across the calls
// of one traversal, which the engine documents and accepts.
func (s *Store) Fetch(ctx context.Context, id string) (*domain.Prompt, error) {
	return s.GetPrompt(ctx, id)
}
