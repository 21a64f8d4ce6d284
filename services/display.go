package services

import (
	"context"
	"log/slog"

	"github.com/tessera-app/tessera/composition"
	"github.com/tessera-app/tessera/metrics"
)

// ResolveErrorPlaceholder stands in for a prompt whose text could not be
// resolved, so a moderation queue entry is never silently dropped.
const ResolveErrorPlaceholder = "[unresolvable prompt]"

// ResolveForDisplay resolves a prompt for a listing view. Resolution failures
// degrade to a visible placeholder instead of failing the whole listing.
func ResolveForDisplay(ctx context.Context, fetcher composition.Fetcher, promptID string) string {
	text, err := composition.ResolvePrompt(ctx, promptID, fetcher)
	if err != nil {
		slog.Warn("prompt resolution failed for display", "prompt_id", promptID, "error", err)
		metrics.ResolutionsTotal.WithLabelValues("error").Inc()
		return ResolveErrorPlaceholder
	}
	return text
}
