package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/tessera-app/tessera/composition"
	"github.com/tessera-app/tessera/domain"
)

type contextKey string

const userIDKey contextKey = "user_id"

func UserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok {
		return id
	}
	return ""
}

func SetUserIDInContext(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func respondJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("json encode error", "error", err)
	}
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, map[string]string{"error": message}, status)
}

// respondServiceError maps composition and storage failures onto HTTP
// statuses. Structural and reference failures are the caller's fault and
// carry enough detail to fix the submission.
func respondServiceError(w http.ResponseWriter, err error, fallback string) {
	var (
		invalid  *composition.InvalidComponentError
		circular *composition.CircularReferenceError
		tooDeep  *composition.MaxDepthExceededError
	)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, "not found", http.StatusNotFound)
	case errors.As(err, &circular):
		respondJSON(w, map[string]any{
			"error": circular.Error(),
			"path":  circular.Path,
		}, http.StatusUnprocessableEntity)
	case errors.As(err, &tooDeep):
		respondJSON(w, map[string]any{
			"error":  tooDeep.Error(),
			"limit":  tooDeep.Limit,
			"actual": tooDeep.Actual,
		}, http.StatusUnprocessableEntity)
	case errors.As(err, &invalid):
		respondError(w, invalid.Error(), http.StatusUnprocessableEntity)
	default:
		slog.Error("request failed", "error", err)
		respondError(w, fallback, http.StatusInternalServerError)
	}
}

func parseIntQuery(r *http.Request, name string, defaultValue int) int {
	if v := r.URL.Query().Get(name); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}
