// Package store owns the relational state: projects, folders,
// articles, article types and prompts, all in one sqlite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the sqlite database at path. The
// connection enables foreign keys and immediate transactions so each
// check-then-insert sequence holds the write lock for its duration.
func Open(path string, busyTimeout time.Duration) (*Store, error) {
	if busyTimeout <= 0 {
		busyTimeout = 5 * time.Second
	}
	dsn := "file:" + path +
		"?_txlock=immediate" +
		"&_pragma=foreign_keys(1)" +
		"&_pragma=busy_timeout(" + strconv.Itoa(int(busyTimeout.Milliseconds())) + ")"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Init creates the schema and seeds the article type and prompt
// catalogs. Safe to run on every startup.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return err
	}
	if err := s.seedArticleTypes(ctx); err != nil {
		return err
	}
	if err := s.seedPrompts(ctx); err != nil {
		return err
	}
	slog.Debug("store initialized")
	return nil
}

func (s *Store) seedArticleTypes(ctx context.Context) error {
	for _, at := range defaultArticleTypes {
		if _, err := s.db.ExecContext(ctx,
			"INSERT OR IGNORE INTO article_types(key, name) VALUES(?, ?)",
			at.key, at.name,
		); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) seedPrompts(ctx context.Context) error {
	for _, p := range defaultPrompts {
		var typeID int64
		err := s.db.QueryRowContext(ctx,
			"SELECT id FROM article_types WHERE key=?", p.typeKey,
		).Scan(&typeID)
		if err != nil {
			return err
		}
		var linked any
		if p.linkedTypeKey != "" {
			linked = p.linkedTypeKey
		}
		if _, err := s.db.ExecContext(ctx, `
			INSERT OR IGNORE INTO prompts(article_type_id, key, text, type, linked_type_key)
			VALUES(?, ?, ?, ?, ?)
		`, typeID, p.key, p.text, p.kind, linked); err != nil {
			return err
		}
	}
	return nil
}

// withTx runs fn inside a transaction, retrying once when sqlite
// reports the database busy.
func (s *Store) withTx(ctx context.Context, name string, fn func(tx *sql.Tx) error) error {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if err := fn(tx); err != nil {
			_ = tx.Rollback()
			if isSQLiteBusy(err) {
				lastErr = err
				time.Sleep(time.Duration(attempt+1) * 40 * time.Millisecond)
				continue
			}
			return err
		}
		if err := tx.Commit(); err != nil {
			_ = tx.Rollback()
			if isSQLiteBusy(err) {
				lastErr = err
				time.Sleep(time.Duration(attempt+1) * 40 * time.Millisecond)
				continue
			}
			return err
		}
		return nil
	}
	slog.Warn("tx gave up after busy retries", "op", name, "err", lastErr)
	return lastErr
}

func isSQLiteBusy(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		code := se.Code()
		return code == sqlite3.SQLITE_BUSY || code == sqlite3.SQLITE_LOCKED
	}
	return false
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		code := se.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}

func nullInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}
