package store

import (
	"context"
	"strings"
)

type ProjectMatch struct {
	ID          int64
	Name        string
	Slug        string
	Genre       string
	Description string
}

type ArticleMatch struct {
	ID          int64
	Title       string
	Slug        string
	BodyContent string
	ProjectName string
	ProjectSlug string
	TypeName    string
}

// SearchProjects substring-matches projects on name, description and
// genre, ordered by name.
func (s *Store) SearchProjects(ctx context.Context, query string, limit int) ([]ProjectMatch, error) {
	pattern := likePattern(query)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, slug, genre, description
		FROM projects
		WHERE name LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\' OR genre LIKE ? ESCAPE '\'
		ORDER BY name
		LIMIT ?
	`, pattern, pattern, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProjectMatch
	for rows.Next() {
		var m ProjectMatch
		if err := rows.Scan(&m.ID, &m.Name, &m.Slug, &m.Genre, &m.Description); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SearchArticles substring-matches articles on title, body and type
// name, ordered by title.
func (s *Store) SearchArticles(ctx context.Context, query string, limit int) ([]ArticleMatch, error) {
	pattern := likePattern(query)
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.title, a.slug, a.body_content, p.name, p.slug, t.name
		FROM articles a
		JOIN projects p ON p.id = a.project_id
		JOIN article_types t ON t.id = a.type_id
		WHERE a.title LIKE ? ESCAPE '\' OR a.body_content LIKE ? ESCAPE '\' OR t.name LIKE ? ESCAPE '\'
		ORDER BY a.title
		LIMIT ?
	`, pattern, pattern, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ArticleMatch
	for rows.Next() {
		var m ArticleMatch
		if err := rows.Scan(&m.ID, &m.Title, &m.Slug, &m.BodyContent, &m.ProjectName, &m.ProjectSlug, &m.TypeName); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// likePattern wraps the query for case-insensitive substring LIKE and
// escapes the LIKE wildcards themselves.
func likePattern(query string) string {
	query = strings.ReplaceAll(query, `\`, `\\`)
	query = strings.ReplaceAll(query, "%", `\%`)
	query = strings.ReplaceAll(query, "_", `\_`)
	return "%" + query + "%"
}
