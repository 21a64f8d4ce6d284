package store

import (
	"context"

	"github.com/tessera-app/tessera/domain"
)

// GetComponents returns a compound prompt's components in position order.
func (s *Store) GetComponents(ctx context.Context, compoundPromptID string) ([]*domain.PromptComponent, error) {
	query := `
		SELECT id, compound_prompt_id, component_prompt_id, position, custom_text_before, custom_text_after
		FROM prompt_components
		WHERE compound_prompt_id = $1
		ORDER BY position ASC`

	rows, err := s.conn(ctx).Query(ctx, query, compoundPromptID)
	if err != nil {
		return nil, WrapError("get components", err)
	}
	defer rows.Close()

	var components []*domain.PromptComponent
	for rows.Next() {
		c := &domain.PromptComponent{}
		if err := rows.Scan(&c.ID, &c.CompoundPromptID, &c.ComponentPromptID,
			&c.Position, &c.CustomTextBefore, &c.CustomTextAfter); err != nil {
			return nil, WrapError("scan component", err)
		}
		components = append(components, c)
	}
	return components, nil
}

// ReplaceComponents swaps a compound prompt's component set wholesale: the
// previous rows are discarded and the new set inserted, atomically. Component
// sets are never versioned row by row.
func (s *Store) ReplaceComponents(ctx context.Context, compoundPromptID string, components []*domain.PromptComponent) error {
	return s.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.conn(ctx).Exec(ctx,
			`DELETE FROM prompt_components WHERE compound_prompt_id = $1`,
			compoundPromptID); err != nil {
			return WrapError("delete components", err)
		}

		query := `
			INSERT INTO prompt_components (id, compound_prompt_id, component_prompt_id, position, custom_text_before, custom_text_after)
			VALUES ($1, $2, $3, $4, $5, $6)`

		for _, c := range components {
			if _, err := s.conn(ctx).Exec(ctx, query,
				c.ID, compoundPromptID, c.ComponentPromptID,
				c.Position, c.CustomTextBefore, c.CustomTextAfter); err != nil {
				return WrapError("insert component", err)
			}
		}
		return nil
	})
}
