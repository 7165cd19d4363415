package store

import (
	"context"
	"database/sql"
	"time"
)

type Prompt struct {
	ID            int64
	Key           string
	Text          string
	Type          string
	LinkedTypeKey string
}

type PromptValue struct {
	ID              int64
	Value           string
	HasValue        bool
	LinkedArticleID *int64
}

// PromptsForArticleType returns the structured-field schema for one
// article type, in catalog order.
func (s *Store) PromptsForArticleType(ctx context.Context, articleTypeID int64) ([]Prompt, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, key, text, type, COALESCE(linked_type_key, '')
		FROM prompts
		WHERE article_type_id=?
		ORDER BY id
	`, articleTypeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Prompt
	for rows.Next() {
		var p Prompt
		if err := rows.Scan(&p.ID, &p.Key, &p.Text, &p.Type, &p.LinkedTypeKey); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// PromptValuesForArticle returns the article's answers keyed by
// prompt key.
func (s *Store) PromptValuesForArticle(ctx context.Context, articleID int64) (map[string]PromptValue, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.key, pv.id, pv.value, pv.linked_article_id
		FROM prompt_values pv
		JOIN prompts p ON p.id = pv.prompt_id
		WHERE pv.article_id=?
	`, articleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]PromptValue{}
	for rows.Next() {
		var key string
		var pv PromptValue
		var value sql.NullString
		var linked sql.NullInt64
		if err := rows.Scan(&key, &pv.ID, &value, &linked); err != nil {
			return nil, err
		}
		if value.Valid {
			pv.Value = value.String
			pv.HasValue = true
		}
		if linked.Valid {
			pv.LinkedArticleID = &linked.Int64
		}
		out[key] = pv
	}
	return out, rows.Err()
}

type LinkedArticle struct {
	ID    int64
	Title string
	Slug  string
}

// LinkedArticles lists a project's articles of the given type, for
// populating select-prompt options.
func (s *Store) LinkedArticles(ctx context.Context, typeKey string, projectID int64) ([]LinkedArticle, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.title, a.slug
		FROM articles a
		JOIN article_types t ON t.id = a.type_id
		WHERE t.key=? AND a.project_id=?
		ORDER BY a.title
	`, typeKey, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LinkedArticle
	for rows.Next() {
		var la LinkedArticle
		if err := rows.Scan(&la.ID, &la.Title, &la.Slug); err != nil {
			return nil, err
		}
		out = append(out, la)
	}
	return out, rows.Err()
}

// SavePromptValue upserts the answer for one (article, prompt) pair.
func (s *Store) SavePromptValue(ctx context.Context, articleID, promptID int64, value *string, linkedArticleID *int64) error {
	now := formatTime(time.Now().UTC())
	var v any
	if value != nil {
		v = *value
	}
	return s.withTx(ctx, "save prompt value", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE prompt_values
			SET value=?, linked_article_id=?, updated_at=?
			WHERE article_id=? AND prompt_id=?
		`, v, nullInt64(linkedArticleID), now, articleID, promptID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO prompt_values(article_id, prompt_id, value, linked_article_id, created_at, updated_at)
			VALUES(?, ?, ?, ?, ?, ?)
		`, articleID, promptID, v, nullInt64(linkedArticleID), now, now)
		return err
	})
}

// CreatePromptValuesForArticle seeds empty answer rows for every
// prompt of the article's type. Existing rows are left alone.
func (s *Store) CreatePromptValuesForArticle(ctx context.Context, articleID, articleTypeID int64) error {
	now := formatTime(time.Now().UTC())
	return s.withTx(ctx, "seed prompt values", func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO prompt_values(article_id, prompt_id, value, linked_article_id, created_at, updated_at)
			SELECT ?, id, NULL, NULL, ?, ?
			FROM prompts WHERE article_type_id=?
		`, articleID, now, now, articleTypeID)
		return err
	})
}
