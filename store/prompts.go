package store

import (
	"context"
	"time"

	"github.com/tessera-app/tessera/domain"
)

func (s *Store) CreatePrompt(ctx context.Context, prompt *domain.Prompt) error {
	query := `
		INSERT INTO prompts (id, author_id, title, prompt_text, is_compound, max_depth, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.conn(ctx).Exec(ctx, query,
		prompt.ID, prompt.AuthorID, prompt.Title, prompt.Text, prompt.IsCompound,
		prompt.MaxDepth, prompt.Status, prompt.CreatedAt, prompt.UpdatedAt)
	if err != nil {
		return WrapError("create prompt", err)
	}
	return nil
}

// GetPrompt loads a prompt together with its ordered components and tags.
func (s *Store) GetPrompt(ctx context.Context, id string) (*domain.Prompt, error) {
	query := `
		SELECT id, author_id, title, prompt_text, is_compound, max_depth, status, created_at, updated_at
		FROM prompts
		WHERE id = $1 AND deleted_at IS NULL`

	prompt := &domain.Prompt{}
	err := s.conn(ctx).QueryRow(ctx, query, id).Scan(
		&prompt.ID, &prompt.AuthorID, &prompt.Title, &prompt.Text, &prompt.IsCompound,
		&prompt.MaxDepth, &prompt.Status, &prompt.CreatedAt, &prompt.UpdatedAt)
	if err != nil {
		return nil, WrapNotFound("get prompt", err)
	}

	if prompt.IsCompound {
		components, err := s.GetComponents(ctx, id)
		if err != nil {
			return nil, err
		}
		prompt.Components = components
	}

	tags, err := s.GetPromptTags(ctx, id)
	if err != nil {
		return nil, err
	}
	prompt.Tags = tags

	return prompt, nil
}

// ListPrompts returns a page of prompts plus the total count. An empty status
// matches all statuses. Components are not loaded here.
func (s *Store) ListPrompts(ctx context.Context, status string, limit, offset int) ([]*domain.Prompt, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM prompts
		WHERE deleted_at IS NULL AND ($1 = '' OR status = $1)`

	var total int
	if err := s.conn(ctx).QueryRow(ctx, countQuery, status).Scan(&total); err != nil {
		return nil, 0, WrapError("count prompts", err)
	}

	query := `
		SELECT id, author_id, title, prompt_text, is_compound, max_depth, status, created_at, updated_at
		FROM prompts
		WHERE deleted_at IS NULL AND ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := s.conn(ctx).Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, 0, WrapError("list prompts", err)
	}
	defer rows.Close()

	var prompts []*domain.Prompt
	for rows.Next() {
		prompt := &domain.Prompt{}
		if err := rows.Scan(&prompt.ID, &prompt.AuthorID, &prompt.Title, &prompt.Text,
			&prompt.IsCompound, &prompt.MaxDepth, &prompt.Status,
			&prompt.CreatedAt, &prompt.UpdatedAt); err != nil {
			return nil, 0, WrapError("scan prompt", err)
		}
		prompts = append(prompts, prompt)
	}
	return prompts, total, nil
}

// ListModerationQueue returns pending prompts, oldest submission first.
func (s *Store) ListModerationQueue(ctx context.Context, limit, offset int) ([]*domain.Prompt, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM prompts
		WHERE deleted_at IS NULL AND status = $1`

	var total int
	if err := s.conn(ctx).QueryRow(ctx, countQuery, domain.PromptStatusPending).Scan(&total); err != nil {
		return nil, 0, WrapError("count moderation queue", err)
	}

	query := `
		SELECT id, author_id, title, prompt_text, is_compound, max_depth, status, created_at, updated_at
		FROM prompts
		WHERE deleted_at IS NULL AND status = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3`

	rows, err := s.conn(ctx).Query(ctx, query, domain.PromptStatusPending, limit, offset)
	if err != nil {
		return nil, 0, WrapError("list moderation queue", err)
	}
	defer rows.Close()

	var prompts []*domain.Prompt
	for rows.Next() {
		prompt := &domain.Prompt{}
		if err := rows.Scan(&prompt.ID, &prompt.AuthorID, &prompt.Title, &prompt.Text,
			&prompt.IsCompound, &prompt.MaxDepth, &prompt.Status,
			&prompt.CreatedAt, &prompt.UpdatedAt); err != nil {
			return nil, 0, WrapError("scan prompt", err)
		}
		prompts = append(prompts, prompt)
	}
	return prompts, total, nil
}

func (s *Store) UpdatePrompt(ctx context.Context, prompt *domain.Prompt) error {
	query := `
		UPDATE prompts
		SET title = $1, prompt_text = $2, is_compound = $3, status = $4, updated_at = $5
		WHERE id = $6 AND deleted_at IS NULL`

	tag, err := s.conn(ctx).Exec(ctx, query,
		prompt.Title, prompt.Text, prompt.IsCompound, prompt.Status, prompt.UpdatedAt, prompt.ID)
	if err != nil {
		return WrapError("update prompt", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) UpdatePromptStatus(ctx context.Context, id, status string) error {
	query := `
		UPDATE prompts
		SET status = $1, updated_at = $2
		WHERE id = $3 AND deleted_at IS NULL`

	tag, err := s.conn(ctx).Exec(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return WrapError("update prompt status", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetMaxDepth updates the advisory depth cache.
func (s *Store) SetMaxDepth(ctx context.Context, id string, depth int) error {
	query := `UPDATE prompts SET max_depth = $1 WHERE id = $2 AND deleted_at IS NULL`

	if _, err := s.conn(ctx).Exec(ctx, query, depth, id); err != nil {
		return WrapError("set max depth", err)
	}
	return nil
}

func (s *Store) DeletePrompt(ctx context.Context, id string) error {
	query := `UPDATE prompts SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`

	tag, err := s.conn(ctx).Exec(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return WrapError("delete prompt", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
