package services

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/tessera-app/tessera/domain"
	"github.com/tessera-app/tessera/metrics"
	"github.com/tessera-app/tessera/shared/id"
	"github.com/tessera-app/tessera/store"
)

// QueueEntry pairs a pending prompt with the text a moderator reviews.
type QueueEntry struct {
	Prompt       *domain.Prompt `json:"prompt"`
	ResolvedText string         `json:"resolved_text"`
}

type ModerationService struct {
	store *store.Store
}

func NewModerationService(s *store.Store) *ModerationService {
	return &ModerationService{store: s}
}

// Queue lists pending prompts oldest-first, each with its resolved text.
func (svc *ModerationService) Queue(ctx context.Context, limit, offset int) ([]*QueueEntry, int, error) {
	ctx, span := tracer.Start(ctx, "moderation.queue")
	defer span.End()

	prompts, total, err := svc.store.ListModerationQueue(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	entries := make([]*QueueEntry, 0, len(prompts))
	for _, p := range prompts {
		entries = append(entries, &QueueEntry{
			Prompt:       p,
			ResolvedText: ResolveForDisplay(ctx, svc.store, p.ID),
		})
	}
	return entries, total, nil
}

func (svc *ModerationService) Approve(ctx context.Context, promptID, moderatorID, note string) (*domain.ModerationDecision, error) {
	return svc.decide(ctx, promptID, moderatorID, note, domain.DecisionApproved, domain.PromptStatusApproved)
}

func (svc *ModerationService) Reject(ctx context.Context, promptID, moderatorID, note string) (*domain.ModerationDecision, error) {
	return svc.decide(ctx, promptID, moderatorID, note, domain.DecisionRejected, domain.PromptStatusRejected)
}

func (svc *ModerationService) History(ctx context.Context, promptID string) ([]*domain.ModerationDecision, error) {
	return svc.store.ListModerationDecisions(ctx, promptID)
}

// decide records the decision and flips the prompt status in one transaction.
func (svc *ModerationService) decide(ctx context.Context, promptID, moderatorID, note, decision, status string) (*domain.ModerationDecision, error) {
	ctx, span := tracer.Start(ctx, "moderation.decide")
	defer span.End()
	span.SetAttributes(
		attribute.String("prompt.id", promptID),
		attribute.String("moderation.decision", decision),
	)

	record := &domain.ModerationDecision{
		ID:          id.NewModeration(),
		PromptID:    promptID,
		ModeratorID: moderatorID,
		Decision:    decision,
		Note:        note,
		CreatedAt:   time.Now().UTC(),
	}

	err := svc.store.WithTx(ctx, func(ctx context.Context) error {
		if err := svc.store.CreateModerationDecision(ctx, record); err != nil {
			return err
		}
		return svc.store.UpdatePromptStatus(ctx, promptID, status)
	})
	if err != nil {
		return nil, err
	}

	metrics.ModerationDecisionsTotal.WithLabelValues(decision).Inc()
	return record, nil
}
