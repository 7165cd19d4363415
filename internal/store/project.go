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

type Project struct {
	ID          int64
	Slug        string
	Name        string
	Genre       string
	Description string
	CreatedAt   time.Time
}

const maxSlugAttempts = 200

// CreateProject creates a project with a unique slug derived from its
// name. Name uniqueness is checked case- and whitespace-insensitively.
// The check-then-insert runs in one immediate transaction, and a slug
// collision from a concurrent writer is retried with the next suffix.
func (s *Store) CreateProject(ctx context.Context, name, genre string) (*Project, error) {
	name = strings.TrimSpace(name)
	genre = strings.TrimSpace(genre)
	err := validation.Errors{
		"name":  validation.Validate(name, validation.Required),
		"genre": validation.Validate(genre, validation.Required),
	}.Filter()
	if err != nil {
		return nil, &domain.ValidationError{Message: "Project name and genre are required."}
	}

	normalized := normalizeName(name)
	base := slug.Make(name, slug.FallbackProject)
	now := time.Now().UTC()

	var p *Project
	create := func(tx *sql.Tx) error {
		names, err := tx.QueryContext(ctx, "SELECT name FROM projects")
		if err != nil {
			return err
		}
		defer names.Close()
		for names.Next() {
			var existing string
			if err := names.Scan(&existing); err != nil {
				return err
			}
			if normalizeName(existing) == normalized {
				return &domain.DuplicateError{Message: fmt.Sprintf("A project named %q already exists.", name)}
			}
		}
		if err := names.Err(); err != nil {
			return err
		}
		names.Close()

		for i := 1; i <= maxSlugAttempts; i++ {
			candidate := base
			if i > 1 {
				candidate = fmt.Sprintf("%s-%d", base, i)
			}
			res, err := tx.ExecContext(ctx, `
				INSERT INTO projects(slug, name, genre, created_at)
				VALUES(?, ?, ?, ?)
			`, candidate, name, genre, formatTime(now))
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
			p = &Project{ID: id, Slug: candidate, Name: name, Genre: genre, CreatedAt: now}
			return nil
		}
		return &domain.DuplicateError{Message: fmt.Sprintf("Could not find a free slug for %q.", name)}
	}
	if err := s.withTx(ctx, "create project", create); err != nil {
		return nil, err
	}
	slog.Info("project created", "id", p.ID, "slug", p.Slug)
	return p, nil
}

// GetProjectBySlug returns the project or a NotFoundError.
func (s *Store) GetProjectBySlug(ctx context.Context, projectSlug string) (*Project, error) {
	return s.scanProject(s.db.QueryRowContext(ctx, `
		SELECT id, slug, name, genre, description, created_at
		FROM projects WHERE slug=? LIMIT 1
	`, projectSlug))
}

// GetProject returns the project by id or a NotFoundError.
func (s *Store) GetProject(ctx context.Context, id int64) (*Project, error) {
	return s.scanProject(s.db.QueryRowContext(ctx, `
		SELECT id, slug, name, genre, description, created_at
		FROM projects WHERE id=? LIMIT 1
	`, id))
}

func (s *Store) scanProject(row *sql.Row) (*Project, error) {
	var p Project
	var created string
	err := row.Scan(&p.ID, &p.Slug, &p.Name, &p.Genre, &p.Description, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Message: "Project not found."}
	}
	if err != nil {
		return nil, err
	}
	p.CreatedAt = parseTime(created)
	return &p, nil
}

// ListProjects returns all projects, newest first.
func (s *Store) ListProjects(ctx context.Context) ([]Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, slug, name, genre, description, created_at
		FROM projects ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		var p Project
		var created string
		if err := rows.Scan(&p.ID, &p.Slug, &p.Name, &p.Genre, &p.Description, &created); err != nil {
			return nil, err
		}
		p.CreatedAt = parseTime(created)
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateProjectDescription replaces the project's markdown description.
func (s *Store) UpdateProjectDescription(ctx context.Context, id int64, description string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE projects SET description=? WHERE id=?", description, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &domain.NotFoundError{Message: "Project not found."}
	}
	return nil
}

type RecentArticle struct {
	ID              int64
	Title           string
	Slug            string
	TypeName        string
	UpdatedAt       time.Time
	UpdatedDisplay  string
	UpdatedRelative string
}

type ProjectStats struct {
	ArticleCount    int
	FolderCount     int
	TotalWordCount  int
	WordsPerDay     int
	WordsPerArticle int
	MediaFileCount  int
	RecentArticles  []RecentArticle
}

const recentArticleLimit = 5

// ProjectStatistics aggregates per-project counters. mediaFiles is
// supplied by the caller since media lives on the filesystem, outside
// this store.
func (s *Store) ProjectStatistics(ctx context.Context, projectID int64, mediaFiles int) (*ProjectStats, error) {
	p, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	stats := &ProjectStats{MediaFileCount: mediaFiles}
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM folders WHERE project_id=?", projectID,
	).Scan(&stats.FolderCount); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT body_content FROM articles WHERE project_id=?", projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		stats.ArticleCount++
		stats.TotalWordCount += len(strings.Fields(body))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	days := int(time.Since(p.CreatedAt).Hours() / 24)
	if days < 1 {
		days = 1
	}
	stats.WordsPerDay = stats.TotalWordCount / days
	if stats.ArticleCount > 0 {
		stats.WordsPerArticle = stats.TotalWordCount / stats.ArticleCount
	}

	recent, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.title, a.slug, t.name, a.updated_at
		FROM articles a
		JOIN article_types t ON t.id = a.type_id
		WHERE a.project_id=?
		ORDER BY a.updated_at DESC
		LIMIT ?
	`, projectID, recentArticleLimit)
	if err != nil {
		return nil, err
	}
	defer recent.Close()
	for recent.Next() {
		var ra RecentArticle
		var updated string
		if err := recent.Scan(&ra.ID, &ra.Title, &ra.Slug, &ra.TypeName, &updated); err != nil {
			return nil, err
		}
		ra.UpdatedAt = parseTime(updated)
		ra.UpdatedDisplay, ra.UpdatedRelative = formatTimestampWithRelative(ra.UpdatedAt, time.Now())
		stats.RecentArticles = append(stats.RecentArticles, ra)
	}
	return stats, recent.Err()
}

func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
