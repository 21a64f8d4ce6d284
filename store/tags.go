package store

import (
	"context"
	"time"

	"github.com/tessera-app/tessera/domain"
	"github.com/tessera-app/tessera/shared/id"
)

// UpsertTag returns the id of the named tag, creating it if needed.
func (s *Store) UpsertTag(ctx context.Context, name string) (string, error) {
	query := `
		INSERT INTO tags (id, name, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`

	var tagID string
	err := s.conn(ctx).QueryRow(ctx, query, id.NewTag(), name, time.Now().UTC()).Scan(&tagID)
	if err != nil {
		return "", WrapError("upsert tag", err)
	}
	return tagID, nil
}

// SetPromptTags replaces a prompt's tag set.
func (s *Store) SetPromptTags(ctx context.Context, promptID string, names []string) error {
	return s.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.conn(ctx).Exec(ctx,
			`DELETE FROM prompt_tags WHERE prompt_id = $1`, promptID); err != nil {
			return WrapError("clear prompt tags", err)
		}

		for _, name := range names {
			tagID, err := s.UpsertTag(ctx, name)
			if err != nil {
				return err
			}
			if _, err := s.conn(ctx).Exec(ctx,
				`INSERT INTO prompt_tags (prompt_id, tag_id) VALUES ($1, $2)`,
				promptID, tagID); err != nil {
				return WrapError("attach tag", err)
			}
		}
		return nil
	})
}

func (s *Store) GetPromptTags(ctx context.Context, promptID string) ([]string, error) {
	query := `
		SELECT t.name
		FROM tags t
		JOIN prompt_tags pt ON pt.tag_id = t.id
		WHERE pt.prompt_id = $1
		ORDER BY t.name ASC`

	rows, err := s.conn(ctx).Query(ctx, query, promptID)
	if err != nil {
		return nil, WrapError("get prompt tags", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, WrapError("scan tag", err)
		}
		names = append(names, name)
	}
	return names, nil
}

func (s *Store) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	query := `SELECT id, name, created_at FROM tags ORDER BY name ASC`

	rows, err := s.conn(ctx).Query(ctx, query)
	if err != nil {
		return nil, WrapError("list tags", err)
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		tag := &domain.Tag{}
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.CreatedAt); err != nil {
			return nil, WrapError("scan tag", err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
