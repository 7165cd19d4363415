package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"mythwiki/internal/domain"
	"mythwiki/internal/slug"
)

type Folder struct {
	ID        int64
	ProjectID int64
	ParentID  *int64
	Name      string
	Slug      string
	CreatedAt time.Time
}

// CreateFolder creates a folder under parentID (nil for root) with a
// slug unique among its siblings. Project and parent ownership are
// verified inside the same transaction as the insert.
func (s *Store) CreateFolder(ctx context.Context, projectID int64, parentID *int64, name string) (*Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &domain.ValidationError{Message: "Folder name is required."}
	}

	base := slug.Make(name, slug.FallbackFolder)
	now := time.Now().UTC()

	var f *Folder
	create := func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRowContext(ctx,
			"SELECT id FROM projects WHERE id=? LIMIT 1", projectID,
		).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.NotFoundError{Message: "Project not found."}
		}
		if err != nil {
			return err
		}
		if parentID != nil {
			err := tx.QueryRowContext(ctx,
				"SELECT id FROM folders WHERE id=? AND project_id=? LIMIT 1",
				*parentID, projectID,
			).Scan(&id)
			if errors.Is(err, sql.ErrNoRows) {
				return &domain.NotFoundError{Message: "Parent folder not found or does not belong to this project."}
			}
			if err != nil {
				return err
			}
		}

		candidate, err := s.uniqueFolderSlug(ctx, tx, projectID, parentID, base)
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `
			INSERT INTO folders(project_id, parent_id, name, slug, created_at)
			VALUES(?, ?, ?, ?, ?)
		`, projectID, nullInt64(parentID), name, candidate, formatTime(now))
		if err != nil {
			return err
		}
		folderID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		f = &Folder{ID: folderID, ProjectID: projectID, ParentID: parentID, Name: name, Slug: candidate, CreatedAt: now}
		return nil
	}
	if err := s.withTx(ctx, "create folder", create); err != nil {
		return nil, err
	}
	slog.Info("folder created", "id", f.ID, "project_id", projectID, "slug", f.Slug)
	return f, nil
}

// uniqueFolderSlug resolves base against the folder's siblings. The
// sqlite UNIQUE(project_id, parent_id, slug) constraint treats NULL
// parents as distinct rows, so root-level uniqueness has to be
// enforced here, under the surrounding immediate transaction.
func (s *Store) uniqueFolderSlug(ctx context.Context, tx *sql.Tx, projectID int64, parentID *int64, base string) (string, error) {
	for i := 1; i <= maxSlugAttempts; i++ {
		candidate := base
		if i > 1 {
			candidate = fmt.Sprintf("%s-%d", base, i)
		}
		var one int
		err := tx.QueryRowContext(ctx,
			"SELECT 1 FROM folders WHERE project_id=? AND parent_id IS ? AND slug=? LIMIT 1",
			projectID, nullInt64(parentID), candidate,
		).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", &domain.DuplicateError{Message: "Could not find a free folder slug."}
}

// GetFolder returns the folder or a NotFoundError.
func (s *Store) GetFolder(ctx context.Context, id int64) (*Folder, error) {
	var f Folder
	var parent sql.NullInt64
	var created string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, project_id, parent_id, name, slug, created_at
		FROM folders WHERE id=? LIMIT 1
	`, id).Scan(&f.ID, &f.ProjectID, &parent, &f.Name, &f.Slug, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Message: "Folder not found."}
	}
	if err != nil {
		return nil, err
	}
	if parent.Valid {
		f.ParentID = &parent.Int64
	}
	f.CreatedAt = parseTime(created)
	return &f, nil
}

// DeleteFolder removes a folder only when it has no direct articles
// and no subfolders. Deletion never cascades from here; the schema's
// cascade only fires when a whole project is removed.
func (s *Store) DeleteFolder(ctx context.Context, id int64) error {
	return s.withTx(ctx, "delete folder", func(tx *sql.Tx) error {
		var name string
		err := tx.QueryRowContext(ctx,
			"SELECT name FROM folders WHERE id=? LIMIT 1", id,
		).Scan(&name)
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.NotFoundError{Message: "Folder not found."}
		}
		if err != nil {
			return err
		}

		var articles int
		if err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM articles WHERE folder_id=?", id,
		).Scan(&articles); err != nil {
			return err
		}
		if articles > 0 {
			return &domain.NotEmptyError{Message: fmt.Sprintf(
				"Cannot delete folder %q - it contains %d article(s). Please delete all articles first.",
				name, articles)}
		}

		var subfolders int
		if err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM folders WHERE parent_id=?", id,
		).Scan(&subfolders); err != nil {
			return err
		}
		if subfolders > 0 {
			return &domain.NotEmptyError{Message: fmt.Sprintf(
				"Cannot delete folder %q - it contains %d subfolder(s). Please delete all subfolders first.",
				name, subfolders)}
		}

		_, err = tx.ExecContext(ctx, "DELETE FROM folders WHERE id=?", id)
		return err
	})
}

// RenameFolder changes the display name and re-resolves the slug
// within the folder's existing (project, parent) scope.
func (s *Store) RenameFolder(ctx context.Context, id int64, newName string) (*Folder, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, &domain.ValidationError{Message: "Folder name is required."}
	}
	base := slug.Make(newName, slug.FallbackFolder)

	var f *Folder
	rename := func(tx *sql.Tx) error {
		var projectID int64
		var parent sql.NullInt64
		var created string
		err := tx.QueryRowContext(ctx,
			"SELECT project_id, parent_id, created_at FROM folders WHERE id=? LIMIT 1", id,
		).Scan(&projectID, &parent, &created)
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.NotFoundError{Message: "Folder not found."}
		}
		if err != nil {
			return err
		}

		var parentID *int64
		if parent.Valid {
			parentID = &parent.Int64
		}
		candidate, err := s.uniqueFolderSlug(ctx, tx, projectID, parentID, base)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE folders SET name=?, slug=? WHERE id=?", newName, candidate, id,
		); err != nil {
			return err
		}
		f = &Folder{ID: id, ProjectID: projectID, ParentID: parentID, Name: newName, Slug: candidate, CreatedAt: parseTime(created)}
		return nil
	}
	if err := s.withTx(ctx, "rename folder", rename); err != nil {
		return nil, err
	}
	return f, nil
}
