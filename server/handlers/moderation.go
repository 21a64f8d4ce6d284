package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tessera-app/tessera/domain"
	"github.com/tessera-app/tessera/protocol"
	"github.com/tessera-app/tessera/services"
)

type ModerationHandler struct {
	modSvc    *services.ModerationService
	publisher EventPublisher
}

func NewModerationHandler(modSvc *services.ModerationService, publisher EventPublisher) *ModerationHandler {
	return &ModerationHandler{modSvc: modSvc, publisher: publisher}
}

// Queue handles GET /moderation/queue, oldest submissions first.
func (h *ModerationHandler) Queue(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	entries, total, err := h.modSvc.Queue(r.Context(), limit, offset)
	if err != nil {
		respondServiceError(w, err, "failed to load moderation queue")
		return
	}

	respondJSON(w, map[string]any{
		"entries": entries,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	}, http.StatusOK)
}

func (h *ModerationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, domain.DecisionApproved)
}

func (h *ModerationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, domain.DecisionRejected)
}

func (h *ModerationHandler) History(w http.ResponseWriter, r *http.Request) {
	decisions, err := h.modSvc.History(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err, "failed to load moderation history")
		return
	}
	respondJSON(w, map[string]any{"decisions": decisions}, http.StatusOK)
}

func (h *ModerationHandler) decide(w http.ResponseWriter, r *http.Request, decision string) {
	moderatorID := UserIDFromContext(r.Context())
	promptID := chi.URLParam(r, "id")

	var req struct {
		Note string `json:"note"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}

	var (
		record *domain.ModerationDecision
		err    error
	)
	if decision == domain.DecisionApproved {
		record, err = h.modSvc.Approve(r.Context(), promptID, moderatorID, req.Note)
	} else {
		record, err = h.modSvc.Reject(r.Context(), promptID, moderatorID, req.Note)
	}
	if err != nil {
		respondServiceError(w, err, "failed to record decision")
		return
	}

	eventType := protocol.EventPromptApproved
	if decision == domain.DecisionRejected {
		eventType = protocol.EventPromptRejected
	}
	h.publisher.BroadcastEvent(eventType, &protocol.ModerationEvent{
		PromptID:    promptID,
		ModeratorID: moderatorID,
		Note:        req.Note,
	})

	respondJSON(w, record, http.StatusOK)
}
