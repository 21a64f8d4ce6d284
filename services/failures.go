package services

import (
	"errors"

	"github.com/tessera-app/tessera/composition"
	"github.com/tessera-app/tessera/metrics"
)

// countValidationFailure buckets a rejected component edit into the
// validation failure counter.
func countValidationFailure(err error) {
	var (
		invalid  *composition.InvalidComponentError
		circular *composition.CircularReferenceError
		tooDeep  *composition.MaxDepthExceededError
	)
	switch {
	case errors.As(err, &circular):
		metrics.ValidationFailuresTotal.WithLabelValues("circular_reference").Inc()
	case errors.As(err, &tooDeep):
		metrics.ValidationFailuresTotal.WithLabelValues("max_depth").Inc()
	case errors.As(err, &invalid):
		metrics.ValidationFailuresTotal.WithLabelValues("invalid_component").Inc()
	default:
		metrics.ValidationFailuresTotal.WithLabelValues("other").Inc()
	}
}
