package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"mythwiki/internal/domain"
	"mythwiki/internal/slug"
)

type ArticleType struct {
	ID   int64
	Key  string
	Name string
}

type Article struct {
	ID            int64
	ProjectID     int64
	FolderID      *int64
	TypeKey       string
	TypeName      string
	Slug          string
	Title         string
	BodyContent   string
	FeaturedImage string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type CreateArticleParams struct {
	ProjectID   int64
	FolderID    *int64
	TypeKey     string
	Title       string
	BodyContent string
}

// CreateArticle inserts an article with a slug unique within its
// project. The UNIQUE(project_id, slug) constraint backs the
// resolution loop, so a concurrent insert of the same title simply
// advances to the next suffix.
func (s *Store) CreateArticle(ctx context.Context, params CreateArticleParams) (*Article, error) {
	params.Title = strings.TrimSpace(params.Title)
	verr := validation.Errors{
		"title":    validation.Validate(params.Title, validation.Required),
		"type_key": validation.Validate(params.TypeKey, validation.Required),
	}.Filter()
	if verr != nil {
		return nil, &domain.ValidationError{Message: "Article title is required."}
	}

	articleType, err := s.GetArticleTypeByKey(ctx, params.TypeKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.ValidationError{Message: "Invalid article type."}
		}
		return nil, err
	}

	base := slug.Make(params.Title, slug.FallbackArticle)
	now := time.Now().UTC()

	var a *Article
	create := func(tx *sql.Tx) error {
		for i := 1; i <= maxSlugAttempts; i++ {
			candidate := base
			if i > 1 {
				candidate = fmt.Sprintf("%s-%d", base, i)
			}
			res, err := tx.ExecContext(ctx, `
				INSERT INTO articles(project_id, folder_id, type_id, slug, title, body_content, created_at, updated_at)
				VALUES(?, ?, ?, ?, ?, ?, ?, ?)
			`, params.ProjectID, nullInt64(params.FolderID), articleType.ID,
				candidate, params.Title, params.BodyContent, formatTime(now), formatTime(now))
			if isUniqueViolation(err) {
				continue
			}
			if err != nil {
				return err
			}
			id, err := res.LastInsertId()
			if err != nil {
				return err
			}
			a = &Article{
				ID:          id,
				ProjectID:   params.ProjectID,
				FolderID:    params.FolderID,
				TypeKey:     articleType.Key,
				TypeName:    articleType.Name,
				Slug:        candidate,
				Title:       params.Title,
				BodyContent: params.BodyContent,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			return nil
		}
		return &domain.DuplicateError{Message: fmt.Sprintf("Could not find a free slug for %q.", params.Title)}
	}
	if err := s.withTx(ctx, "create article", create); err != nil {
		return nil, err
	}
	slog.Info("article created", "id", a.ID, "project_id", a.ProjectID, "slug", a.Slug)
	return a, nil
}

const articleColumns = `
	a.id, a.project_id, a.folder_id, a.slug, a.title,
	COALESCE(a.featured_image, ''), a.created_at, a.updated_at,
	t.key, t.name
`

// GetArticle returns article metadata without the body.
func (s *Store) GetArticle(ctx context.Context, id int64) (*Article, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+articleColumns+`
		FROM articles a
		JOIN article_types t ON t.id = a.type_id
		WHERE a.id=? LIMIT 1
	`, id)
	return scanArticle(row, nil)
}

// GetArticleFull returns the article including its markdown body.
func (s *Store) GetArticleFull(ctx context.Context, id int64) (*Article, error) {
	var body string
	row := s.db.QueryRowContext(ctx, `
		SELECT `+articleColumns+`, a.body_content
		FROM articles a
		JOIN article_types t ON t.id = a.type_id
		WHERE a.id=? LIMIT 1
	`, id)
	return scanArticle(row, &body)
}

func scanArticle(row *sql.Row, body *string) (*Article, error) {
	var a Article
	var folder sql.NullInt64
	var created, updated string
	dest := []any{
		&a.ID, &a.ProjectID, &folder, &a.Slug, &a.Title,
		&a.FeaturedImage, &created, &updated, &a.TypeKey, &a.TypeName,
	}
	if body != nil {
		dest = append(dest, body)
	}
	err := row.Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Message: "Article not found."}
	}
	if err != nil {
		return nil, err
	}
	if folder.Valid {
		a.FolderID = &folder.Int64
	}
	if body != nil {
		a.BodyContent = *body
	}
	a.CreatedAt = parseTime(created)
	a.UpdatedAt = parseTime(updated)
	return &a, nil
}

// UpdateArticleContent rewrites the body and bumps updated_at. The
// slug is never recomputed here.
func (s *Store) UpdateArticleContent(ctx context.Context, id int64, bodyContent string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE articles SET body_content=?, updated_at=? WHERE id=?",
		bodyContent, formatTime(time.Now().UTC()), id)
	if err != nil {
		return err
	}
	return requireRow(res, "Article not found.")
}

// TouchArticle bumps updated_at without changing content.
func (s *Store) TouchArticle(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE articles SET updated_at=? WHERE id=?",
		formatTime(time.Now().UTC()), id)
	if err != nil {
		return err
	}
	return requireRow(res, "Article not found.")
}

// SetFeaturedImage records the media filename shown as the article's
// header image. An empty name clears it.
func (s *Store) SetFeaturedImage(ctx context.Context, id int64, filename string) error {
	var value any
	if filename != "" {
		value = filename
	}
	res, err := s.db.ExecContext(ctx,
		"UPDATE articles SET featured_image=? WHERE id=?", value, id)
	if err != nil {
		return err
	}
	return requireRow(res, "Article not found.")
}

// DeleteArticle removes the article unconditionally; prompt values go
// with it via the FK cascade.
func (s *Store) DeleteArticle(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireRow(res, "Article not found.")
}

// ListArticleTypes returns the type catalog ordered by display name.
func (s *Store) ListArticleTypes(ctx context.Context) ([]ArticleType, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, key, name FROM article_types ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ArticleType
	for rows.Next() {
		var t ArticleType
		if err := rows.Scan(&t.ID, &t.Key, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetArticleTypeByKey resolves a type key or returns a NotFoundError.
func (s *Store) GetArticleTypeByKey(ctx context.Context, key string) (*ArticleType, error) {
	var t ArticleType
	err := s.db.QueryRowContext(ctx,
		"SELECT id, key, name FROM article_types WHERE key=? LIMIT 1", key,
	).Scan(&t.ID, &t.Key, &t.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Message: "Article type not found."}
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ArticleIDBySlug resolves (project slug, article slug) to an article
// id for the link rewriter. The second return reports whether the
// article exists.
func (s *Store) ArticleIDBySlug(ctx context.Context, projectSlug, articleSlug string) (int64, bool, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		SELECT a.id
		FROM articles a
		JOIN projects p ON p.id = a.project_id
		WHERE p.slug=? AND a.slug=? LIMIT 1
	`, projectSlug, articleSlug).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func requireRow(res sql.Result, msg string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &domain.NotFoundError{Message: msg}
	}
	return nil
}
