package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tessera-app/tessera/domain"
	"github.com/tessera-app/tessera/protocol"
	"github.com/tessera-app/tessera/services"
)

// EventPublisher pushes moderation feed events to connected subscribers.
type EventPublisher interface {
	BroadcastEvent(eventType protocol.EventType, event *protocol.ModerationEvent)
}

type PromptHandler struct {
	promptSvc *services.PromptService
	publisher EventPublisher
}

func NewPromptHandler(promptSvc *services.PromptService, publisher EventPublisher) *PromptHandler {
	return &PromptHandler{promptSvc: promptSvc, publisher: publisher}
}

func (h *PromptHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	var req services.PromptInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		respondError(w, "title is required", http.StatusBadRequest)
		return
	}

	prompt, err := h.promptSvc.Create(r.Context(), userID, req)
	if err != nil {
		respondServiceError(w, err, "failed to create prompt")
		return
	}

	h.publisher.BroadcastEvent(protocol.EventPromptSubmitted, &protocol.ModerationEvent{
		PromptID: prompt.ID,
		Title:    prompt.Title,
		AuthorID: prompt.AuthorID,
	})

	respondJSON(w, prompt, http.StatusCreated)
}

func (h *PromptHandler) Get(w http.ResponseWriter, r *http.Request) {
	prompt, err := h.promptSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err, "failed to load prompt")
		return
	}
	respondJSON(w, prompt, http.StatusOK)
}

// List handles the public catalogue. Only approved prompts are shown unless
// the caller filters explicitly.
func (h *PromptHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)
	status := r.URL.Query().Get("status")
	if status == "" {
		status = domain.PromptStatusApproved
	}

	entries, total, err := h.promptSvc.List(r.Context(), status, limit, offset)
	if err != nil {
		respondServiceError(w, err, "failed to list prompts")
		return
	}

	respondJSON(w, map[string]any{
		"prompts": entries,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	}, http.StatusOK)
}

func (h *PromptHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())
	promptID := chi.URLParam(r, "id")

	existing, err := h.promptSvc.Get(r.Context(), promptID)
	if err != nil {
		respondServiceError(w, err, "failed to load prompt")
		return
	}
	if existing.AuthorID != userID {
		respondError(w, "only the author may edit a prompt", http.StatusForbidden)
		return
	}

	var req services.PromptInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		respondError(w, "title is required", http.StatusBadRequest)
		return
	}

	prompt, err := h.promptSvc.Update(r.Context(), promptID, req)
	if err != nil {
		respondServiceError(w, err, "failed to update prompt")
		return
	}

	h.publisher.BroadcastEvent(protocol.EventPromptUpdated, &protocol.ModerationEvent{
		PromptID: prompt.ID,
		Title:    prompt.Title,
		AuthorID: prompt.AuthorID,
	})

	respondJSON(w, prompt, http.StatusOK)
}

func (h *PromptHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())
	promptID := chi.URLParam(r, "id")

	existing, err := h.promptSvc.Get(r.Context(), promptID)
	if err != nil {
		respondServiceError(w, err, "failed to load prompt")
		return
	}
	if existing.AuthorID != userID {
		respondError(w, "only the author may delete a prompt", http.StatusForbidden)
		return
	}

	if err := h.promptSvc.Delete(r.Context(), promptID); err != nil {
		respondServiceError(w, err, "failed to delete prompt")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Resolve handles GET /prompts/{id}/resolved and returns the flattened text.
func (h *PromptHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	promptID := chi.URLParam(r, "id")

	text, err := h.promptSvc.Resolve(r.Context(), promptID)
	if err != nil {
		respondServiceError(w, err, "failed to resolve prompt")
		return
	}
	respondJSON(w, map[string]string{"prompt_id": promptID, "text": text}, http.StatusOK)
}

// Preview resolves a component list that has not been saved yet.
func (h *PromptHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Components []services.ComponentInput `json:"components"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	text, err := h.promptSvc.Preview(r.Context(), req.Components)
	if err != nil {
		respondServiceError(w, err, "failed to preview components")
		return
	}
	respondJSON(w, map[string]string{"text": text}, http.StatusOK)
}

func (h *PromptHandler) Tags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.promptSvc.Tags(r.Context())
	if err != nil {
		respondServiceError(w, err, "failed to list tags")
		return
	}
	respondJSON(w, map[string]any{"tags": tags}, http.StatusOK)
}
