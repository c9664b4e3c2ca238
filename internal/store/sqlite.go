package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/ArturoR1986/roof-report/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite. The default DSN is
// ":memory:", which keeps sessions process-local like MemoryStore while
// exercising the same SQL path a file-backed deployment would use.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	id          TEXT PRIMARY KEY,
	record      TEXT,
	raw_payload TEXT NOT NULL DEFAULT '',
	updated_at  DATETIME NOT NULL
);
`

// NewSQLite opens a SQLite database and creates the schema. An in-memory
// database lives inside a single connection, so the pool is pinned to one.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "sqlite: create schema")
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Put(ctx context.Context, session *model.Session) error {
	var recordJSON sql.NullString
	if session.Record != nil {
		data, err := json.Marshal(session.Record)
		if err != nil {
			return eris.Wrap(err, "sqlite: marshal record")
		}
		recordJSON = sql.NullString{String: string(data), Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, record, raw_payload, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET record = excluded.record,
		   raw_payload = excluded.raw_payload, updated_at = excluded.updated_at`,
		session.ID, recordJSON, session.RawPayload, time.Now().UTC(),
	)
	return eris.Wrapf(err, "sqlite: put session %s", session.ID)
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*model.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, record, raw_payload, updated_at FROM sessions WHERE id = ?`,
		id,
	)

	var sess model.Session
	var recordJSON sql.NullString
	err := row.Scan(&sess.ID, &recordJSON, &sess.RawPayload, &sess.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get session %s", id)
	}

	if recordJSON.Valid {
		sess.Record = &model.Record{}
		if err := json.Unmarshal([]byte(recordJSON.String), sess.Record); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal record")
		}
	}
	return &sess, nil
}

func (s *SQLiteStore) Clear(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: clear session %s", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
