package store

import (
	"context"

	"github.com/tessera-app/tessera/domain"
)

func (s *Store) CreateModerationDecision(ctx context.Context, d *domain.ModerationDecision) error {
	query := `
		INSERT INTO moderation_decisions (id, prompt_id, moderator_id, decision, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.conn(ctx).Exec(ctx, query,
		d.ID, d.PromptID, d.ModeratorID, d.Decision, d.Note, d.CreatedAt)
	if err != nil {
		return WrapError("create moderation decision", err)
	}
	return nil
}

func (s *Store) ListModerationDecisions(ctx context.Context, promptID string) ([]*domain.ModerationDecision, error) {
	query := `
		SELECT id, prompt_id, moderator_id, decision, note, created_at
		FROM moderation_decisions
		WHERE prompt_id = $1
		ORDER BY created_at DESC`

	rows, err := s.conn(ctx).Query(ctx, query, promptID)
	if err != nil {
		return nil, WrapError("list moderation decisions", err)
	}
	defer rows.Close()

	var decisions []*domain.ModerationDecision
	for rows.Next() {
		d := &domain.ModerationDecision{}
		if err := rows.Scan(&d.ID, &d.PromptID, &d.ModeratorID, &d.Decision, &d.Note, &d.CreatedAt); err != nil {
			return nil, WrapError("scan moderation decision", err)
		}
		decisions = append(decisions, d)
	}
	return decisions, nil
}
