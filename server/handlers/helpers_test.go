package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessera-app/tessera/composition"
	"github.com/tessera-app/tessera/domain"
)

func TestRespondServiceError(t *testing.T) {
	t.Run("not found maps to 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		respondServiceError(rec, domain.ErrNotFound, "failed")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("circular reference maps to 422 with path", func(t *testing.T) {
		rec := httptest.NewRecorder()
		respondServiceError(rec, &composition.CircularReferenceError{
			Path: []string{"prompt_a", "prompt_b", "prompt_a"},
		}, "failed")

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var body struct {
			Error string   `json:"error"`
			Path  []string `json:"path"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, []string{"prompt_a", "prompt_b", "prompt_a"}, body.Path)
	})

	t.Run("depth overflow maps to 422 with limit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		respondServiceError(rec, &composition.MaxDepthExceededError{Limit: 5, Actual: 6}, "failed")

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var body struct {
			Limit  int `json:"limit"`
			Actual int `json:"actual"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, 5, body.Limit)
		assert.Equal(t, 6, body.Actual)
	})

	t.Run("invalid component maps to 422", func(t *testing.T) {
		rec := httptest.NewRecorder()
		respondServiceError(rec, &composition.InvalidComponentError{Reason: "component list is empty"}, "failed")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("unknown error maps to 500", func(t *testing.T) {
		rec := httptest.NewRecorder()
		respondServiceError(rec, errors.New("pool exhausted"), "failed to list prompts")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var body map[string]string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "failed to list prompts", body["error"])
	})
}

func TestUserIDContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, UserIDFromContext(req.Context()))

	ctx := SetUserIDInContext(req.Context(), "user_42")
	assert.Equal(t, "user_42", UserIDFromContext(ctx))
}
