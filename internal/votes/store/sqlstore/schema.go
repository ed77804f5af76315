package sqlstore

import (
	"context"
	"fmt"
)

// schema is portable between SQLite and Postgres: TEXT, INTEGER and BIGINT
// columns only, JSON kept as text. Columns holding a uint32 are BIGINT since
// Postgres INTEGER is signed 32-bit.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS ingest_runs (
		run_id          TEXT PRIMARY KEY,
		started_at      TEXT NOT NULL,
		finished_at     TEXT,
		files_seen      INTEGER NOT NULL DEFAULT 0,
		files_processed INTEGER NOT NULL DEFAULT 0,
		files_skipped   INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS votes (
		chamber              TEXT NOT NULL,
		congress             INTEGER NOT NULL,
		session              INTEGER NOT NULL,
		rollcall             BIGINT NOT NULL,
		year                 INTEGER NOT NULL,
		vote_hash            TEXT NOT NULL,
		vote_date            TEXT NOT NULL,
		modify_date          TEXT NOT NULL,
		question             TEXT NOT NULL,
		question_text        TEXT NOT NULL,
		document_text        TEXT NOT NULL,
		result               TEXT NOT NULL,
		title                TEXT NOT NULL,
		majority_requirement TEXT NOT NULL,
		vote_type            TEXT NOT NULL,
		documents            TEXT NOT NULL,
		amendments           TEXT NOT NULL,
		details              TEXT NOT NULL,
		run_id               TEXT NOT NULL,
		PRIMARY KEY (chamber, congress, session, rollcall)
	)`,
	`CREATE INDEX IF NOT EXISTS votes_vote_hash_idx ON votes (vote_hash)`,
	`CREATE TABLE IF NOT EXISTS vote_counts (
		chamber          TEXT NOT NULL,
		congress         INTEGER NOT NULL,
		session          INTEGER NOT NULL,
		rollcall         BIGINT NOT NULL,
		year             INTEGER NOT NULL,
		vote_hash        TEXT NOT NULL,
		yea              BIGINT NOT NULL,
		nay              BIGINT NOT NULL,
		present          BIGINT NOT NULL,
		absent           BIGINT NOT NULL,
		tie_breaker_by   TEXT NOT NULL,
		tie_breaker_vote TEXT NOT NULL,
		PRIMARY KEY (chamber, congress, session, rollcall)
	)`,
	`CREATE TABLE IF NOT EXISTS vote_members (
		chamber      TEXT NOT NULL,
		congress     INTEGER NOT NULL,
		session      INTEGER NOT NULL,
		rollcall     BIGINT NOT NULL,
		ordinal      INTEGER NOT NULL,
		year         INTEGER NOT NULL,
		vote_hash    TEXT NOT NULL,
		member_id    TEXT NOT NULL,
		generated_id TEXT NOT NULL,
		full_name    TEXT NOT NULL,
		last_name    TEXT NOT NULL,
		first_name   TEXT NOT NULL,
		party        TEXT NOT NULL,
		state        TEXT NOT NULL,
		vote_cast    TEXT NOT NULL,
		paired_with  TEXT NOT NULL,
		PRIMARY KEY (chamber, congress, session, rollcall, ordinal)
	)`,
	`CREATE INDEX IF NOT EXISTS vote_members_generated_id_idx ON vote_members (generated_id)`,
	`CREATE TABLE IF NOT EXISTS legislators (
		generated_id TEXT PRIMARY KEY,
		last_name    TEXT NOT NULL,
		party        TEXT NOT NULL,
		state        TEXT NOT NULL
	)`,
}

// Migrate creates the tables when they do not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.execer(ctx).ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
