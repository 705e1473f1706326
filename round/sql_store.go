package round

import (
	"cmp"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQL dialects understood by SQLStore.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

const createRecentPlay = `CREATE TABLE IF NOT EXISTS recent_play (
	id        INTEGER PRIMARY KEY,
	play_id   TEXT NOT NULL,
	played_at TEXT NOT NULL,
	payload   TEXT NOT NULL
)`

// upsertRecentPlay writes the single row. ON CONFLICT works in Postgres and SQLite 3.24+.
const upsertRecentPlay = `INSERT INTO recent_play (id, play_id, played_at, payload)
VALUES (1, $1, $2, $3)
ON CONFLICT (id) DO UPDATE SET play_id = EXCLUDED.play_id, played_at = EXCLUDED.played_at, payload = EXCLUDED.payload`

const selectRecentPlay = `SELECT payload FROM recent_play WHERE id = 1`

// SQLStore keeps the latest record in a single-row recent_play table. db may
// be a pgx (Postgres) or modernc (SQLite) connection.
type SQLStore[F cmp.Ordered] struct {
	db     *sql.DB
	upsert string
}

// NewSQLStore creates the recent_play table if needed.
func NewSQLStore[F cmp.Ordered](ctx context.Context, db *sql.DB, dialect string) (*SQLStore[F], error) {
	if db == nil {
		return nil, errors.New("round: nil database")
	}
	upsert := upsertRecentPlay
	switch dialect {
	case DialectPostgres:
	case DialectSQLite:
		// numbered ?NNN parameters bind by position in SQLite
		upsert = strings.ReplaceAll(upsert, "$", "?")
	default:
		return nil, fmt.Errorf("round: unknown sql dialect %q", dialect)
	}
	if _, err := db.ExecContext(ctx, createRecentPlay); err != nil {
		return nil, fmt.Errorf("create recent_play: %w", err)
	}
	return &SQLStore[F]{db: db, upsert: upsert}, nil
}

func (s *SQLStore[F]) Save(ctx context.Context, r *Record[F]) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, s.upsert, r.PlayID, r.PlayedAt.UTC().Format(time.RFC3339Nano), string(payload))
	if err != nil {
		return fmt.Errorf("save recent play: %w", err)
	}
	return nil
}

func (s *SQLStore[F]) Latest(ctx context.Context) (*Record[F], error) {
	var payload string
	err := s.db.QueryRowContext(ctx, selectRecentPlay).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load recent play: %w", err)
	}
	var r Record[F]
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return nil, err
	}
	return &r, nil
}
