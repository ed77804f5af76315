// Package sqlstore is the relational sink: one run-scoped transaction holding
// vote metadata, counts and member rows for every file of a run.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"rollcall/internal/platform/database"
	"rollcall/internal/votes/models"
	"rollcall/pkg/platform/sentinel"
	txcontext "rollcall/pkg/platform/tx"
)

// Store writes normalised rollcall rows. Calls made with a context carrying
// a transaction (see InTx) join that transaction.
type Store struct {
	db       *sql.DB
	postgres bool
}

// New returns a Store over db. driver selects the placeholder dialect.
func New(db *sql.DB, driver string) (*Store, error) {
	if db == nil {
		return nil, errors.New("database is required")
	}
	return &Store{db: db, postgres: database.Postgres(driver)}, nil
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// InTx runs fn inside one transaction. Nothing fn wrote survives unless fn
// returns nil and the commit succeeds.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return txcontext.Run(ctx, s.db, fn)
}

// rebind rewrites ? placeholders to $n for Postgres.
func (s *Store) rebind(query string) string {
	if !s.postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 16)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func (s *Store) exec(ctx context.Context, query string, args ...any) error {
	_, err := s.execer(ctx).ExecContext(ctx, s.rebind(query), args...)
	return err
}

const timeLayout = time.RFC3339Nano

// StartRun records the beginning of a run.
func (s *Store) StartRun(ctx context.Context, run models.Run) error {
	err := s.exec(ctx,
		`INSERT INTO ingest_runs (run_id, started_at) VALUES (?, ?)`,
		run.ID, run.StartedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("%w: start run %s: %w", sentinel.ErrInsert, run.ID, err)
	}
	return nil
}

// FinishRun stores the final file tallies of a run.
func (s *Store) FinishRun(ctx context.Context, run models.Run) error {
	err := s.exec(ctx,
		`UPDATE ingest_runs SET finished_at = ?, files_seen = ?, files_processed = ?, files_skipped = ? WHERE run_id = ?`,
		run.FinishedAt.UTC().Format(timeLayout), run.FilesSeen, run.FilesProcessed, run.FilesSkipped, run.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: finish run %s: %w", sentinel.ErrInsert, run.ID, err)
	}
	return nil
}

// WriteRollcall stores the vote, count and member rows of one document.
// Re-ingesting a rollcall replaces its rows.
func (s *Store) WriteRollcall(ctx context.Context, runID string, info models.VoteInfo) error {
	if err := s.InsertVote(ctx, runID, info); err != nil {
		return err
	}
	if err := s.InsertCounts(ctx, info); err != nil {
		return err
	}
	return s.InsertMembers(ctx, info)
}

func (s *Store) InsertVote(ctx context.Context, runID string, info models.VoteInfo) error {
	p := info.Position
	err := s.exec(ctx, `
		INSERT INTO votes (
			chamber, congress, session, rollcall, year, vote_hash, vote_date, modify_date,
			question, question_text, document_text, result, title, majority_requirement,
			vote_type, documents, amendments, details, run_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (chamber, congress, session, rollcall) DO UPDATE SET
			year = excluded.year,
			vote_hash = excluded.vote_hash,
			vote_date = excluded.vote_date,
			modify_date = excluded.modify_date,
			question = excluded.question,
			question_text = excluded.question_text,
			document_text = excluded.document_text,
			result = excluded.result,
			title = excluded.title,
			majority_requirement = excluded.majority_requirement,
			vote_type = excluded.vote_type,
			documents = excluded.documents,
			amendments = excluded.amendments,
			details = excluded.details,
			run_id = excluded.run_id`,
		string(p.Chamber), int64(p.Congress), int64(p.Session), int64(p.Rollcall), int64(p.Year),
		info.VoteHash, info.VoteDate, info.ModifyDate,
		info.Question, info.QuestionText, info.DocumentText, info.Result, info.Title, info.MajorityRequirement,
		info.VoteType, jsonText(info.Documents), jsonText(info.Amendments), jsonText(info.Details), runID,
	)
	if err != nil {
		return fmt.Errorf("%w: vote %s: %w", sentinel.ErrInsert, p.Key(), err)
	}
	return nil
}

func (s *Store) InsertCounts(ctx context.Context, info models.VoteInfo) error {
	p := info.Position
	err := s.exec(ctx, `
		INSERT INTO vote_counts (
			chamber, congress, session, rollcall, year, vote_hash,
			yea, nay, present, absent, tie_breaker_by, tie_breaker_vote
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (chamber, congress, session, rollcall) DO UPDATE SET
			year = excluded.year,
			vote_hash = excluded.vote_hash,
			yea = excluded.yea,
			nay = excluded.nay,
			present = excluded.present,
			absent = excluded.absent,
			tie_breaker_by = excluded.tie_breaker_by,
			tie_breaker_vote = excluded.tie_breaker_vote`,
		string(p.Chamber), int64(p.Congress), int64(p.Session), int64(p.Rollcall), int64(p.Year), info.VoteHash,
		int64(info.Counts.Yea), int64(info.Counts.Nay), int64(info.Counts.Present), int64(info.Counts.Absent),
		info.TieBreaker.ByWhom, info.TieBreaker.Vote,
	)
	if err != nil {
		return fmt.Errorf("%w: counts %s: %w", sentinel.ErrInsert, p.Key(), err)
	}
	return nil
}

// InsertMembers replaces the member rows of the rollcall and records any
// legislator not seen before. The placeholder legislator of a document
// without a member list carries no identity and is not stored.
func (s *Store) InsertMembers(ctx context.Context, info models.VoteInfo) error {
	p := info.Position
	key := p.Key()
	err := s.exec(ctx,
		`DELETE FROM vote_members WHERE chamber = ? AND congress = ? AND session = ? AND rollcall = ?`,
		string(p.Chamber), int64(p.Congress), int64(p.Session), int64(p.Rollcall),
	)
	if err != nil {
		return fmt.Errorf("%w: clear members %s: %w", sentinel.ErrInsert, key, err)
	}

	for i, m := range info.Members {
		err := s.exec(ctx, `
			INSERT INTO vote_members (
				chamber, congress, session, rollcall, ordinal, year, vote_hash, member_id,
				generated_id, full_name, last_name, first_name, party, state, vote_cast, paired_with
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			string(p.Chamber), int64(p.Congress), int64(p.Session), int64(p.Rollcall), int64(i), int64(p.Year),
			info.VoteHash, m.MemberID, m.GeneratedID, m.FullName, m.LastName, m.FirstName,
			m.Party, m.State, m.VoteCast, m.PairedWith,
		)
		if err != nil {
			return fmt.Errorf("%w: member %d of %s: %w", sentinel.ErrInsert, i, key, err)
		}
	}

	for _, l := range info.Legislators {
		if l.GeneratedID == models.SentinelNull {
			continue
		}
		err := s.exec(ctx, `
			INSERT INTO legislators (generated_id, last_name, party, state)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (generated_id) DO NOTHING`,
			l.GeneratedID, l.LastName, l.Party, l.State,
		)
		if err != nil {
			return fmt.Errorf("%w: legislator %s: %w", sentinel.ErrInsert, l.GeneratedID, err)
		}
	}
	return nil
}

func jsonText(raw []byte) string {
	if len(raw) == 0 {
		return "null"
	}
	return string(raw)
}
