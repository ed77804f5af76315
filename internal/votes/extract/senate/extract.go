// Package senate extracts vote events from Senate LIS rollcall documents.
package senate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"rollcall/internal/votes/extract"
	"rollcall/internal/votes/identity"
	"rollcall/internal/votes/models"
	"rollcall/internal/votes/polyvalue"
	"rollcall/pkg/platform/sentinel"
)

type Extractor struct {
	logger *slog.Logger
}

type Option func(*Extractor)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

func New(opts ...Option) *Extractor {
	e := &Extractor{logger: extract.DiscardLogger()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var _ extract.Extractor = (*Extractor)(nil)

// Extract decodes one Senate document. Congress, session and vote number
// stated in the document win over the path-derived position.
func (e *Extractor) Extract(ctx context.Context, pos models.Position, raw []byte) (*models.Extraction, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: senate: %w", sentinel.ErrMalformedDocument, err)
	}
	if len(doc.RollCallVote) == 0 {
		return nil, fmt.Errorf("%w: senate: missing roll_call_vote", sentinel.ErrMalformedDocument)
	}
	var vote rollCallVote
	if err := json.Unmarshal(doc.RollCallVote, &vote); err != nil {
		return nil, fmt.Errorf("%w: senate: %w", sentinel.ErrMalformedDocument, err)
	}

	pos.Congress = uint16(stated(vote.Congress, uint32(pos.Congress), math.MaxUint16))
	pos.Session = uint8(stated(vote.Session, uint32(pos.Session), math.MaxUint8))
	pos.Rollcall = stated(vote.VoteNumber, pos.Rollcall, math.MaxUint32)
	key := pos.Key().String()

	out := &models.Extraction{HasVoteData: vote.Members != nil}
	if vote.Members == nil {
		e.logger.WarnContext(ctx, "no members found", "rollcall", key)
	}

	info, err := e.info(ctx, pos, doc.RollCallVote, &vote, &out.Degraded)
	if err != nil {
		return nil, err
	}

	if vote.Members != nil {
		date := vote.VoteDate.String()
		question := vote.VoteQuestionText.String()
		result := vote.VoteResult.TextOr(models.SentinelNone)

		for _, m := range vote.Members.Member {
			cast, paired := castOf(m.VoteCast)

			out.Votes = append(out.Votes, models.UnifiedVote{
				CongressNumber: pos.Congress,
				Chamber:        models.ChamberSenate,
				SessionNumber:  pos.Session,
				RollcallNumber: pos.Rollcall,
				VoteDate:       date,
				VoteQuestion:   question,
				VoteResult:     result,
				LegislatorID:   extract.StringOr(m.LISMemberID, models.SentinelNone),
				LegislatorName: extract.StringOr(m.MemberFull, models.SentinelNone),
				Party:          extract.StringOr(m.Party, models.SentinelNone),
				State:          extract.StringOr(m.State, models.SentinelNone),
				VoteCast:       fallback(cast, models.SentinelNone),
			})

			lastName := extract.StringOr(m.LastName, models.SentinelNull)
			party := extract.StringOr(m.Party, models.SentinelNull)
			state := extract.StringOr(m.State, models.SentinelNull)
			generated := identity.Legislator(lastName, party, state)

			info.Members = append(info.Members, models.MemberVote{
				MemberID:    extract.StringOr(m.LISMemberID, models.SentinelNull),
				GeneratedID: generated,
				FullName:    extract.StringOr(m.MemberFull, models.SentinelNull),
				LastName:    lastName,
				FirstName:   extract.StringOr(m.FirstName, models.SentinelNull),
				Party:       party,
				State:       state,
				VoteCast:    fallback(cast, models.SentinelNull),
				PairedWith:  fallback(paired, models.SentinelNull),
			})
			info.Legislators = append(info.Legislators, models.CongressionalMember{
				LastName:    lastName,
				Party:       party,
				State:       state,
				GeneratedID: generated,
			})
		}

		if vote.Members.Member == nil {
			e.logger.WarnContext(ctx, "members block without member list", "rollcall", key)
			info.Legislators = append(info.Legislators, models.CongressionalMember{
				LastName:    models.SentinelNull,
				Party:       models.SentinelNull,
				State:       models.SentinelNull,
				GeneratedID: models.SentinelNull,
			})
		}
	}

	out.Info = info
	return out, nil
}

func (e *Extractor) info(ctx context.Context, pos models.Position, raw json.RawMessage, vote *rollCallVote, degraded *[]string) (models.VoteInfo, error) {
	key := pos.Key().String()

	bills, ok := vote.Document.entries()
	if !ok {
		if !vote.Document.IsZero() {
			e.logger.WarnContext(ctx, "unrecognised document field", "rollcall", key, "value", vote.Document.String())
		}
		bills = []bill{{}}
	}
	amendments, ok := vote.Amendment.entries()
	if !ok {
		if !vote.Amendment.IsZero() {
			e.logger.WarnContext(ctx, "unrecognised amendment field", "rollcall", key, "value", vote.Amendment.String())
		}
		amendments = []amendment{{}}
	}

	documentsJSON, err := json.Marshal(bills)
	if err != nil {
		return models.VoteInfo{}, fmt.Errorf("%w: senate: encode documents: %w", sentinel.ErrMalformedDocument, err)
	}
	amendmentsJSON, err := json.Marshal(amendments)
	if err != nil {
		return models.VoteInfo{}, fmt.Errorf("%w: senate: encode amendments: %w", sentinel.ErrMalformedDocument, err)
	}
	detailsJSON, err := json.Marshal(details{
		CongressYear:   vote.CongressYear.TextOr(models.SentinelNull),
		VoteResultText: vote.VoteResultText.TextOr(models.SentinelNull),
	})
	if err != nil {
		return models.VoteInfo{}, fmt.Errorf("%w: senate: encode details: %w", sentinel.ErrMalformedDocument, err)
	}

	var counts models.Counts
	if c := vote.Count; c != nil {
		counts = models.Counts{
			Yea:     extract.Count(ctx, e.logger, pos, "yeas", c.Yeas, degraded),
			Nay:     extract.Count(ctx, e.logger, pos, "nays", c.Nays, degraded),
			Present: extract.Count(ctx, e.logger, pos, "present", c.Present, degraded),
			Absent:  extract.Count(ctx, e.logger, pos, "absent", c.Absent, degraded),
		}
	}

	tie := models.TieBreaker{ByWhom: models.SentinelNull, Vote: models.SentinelNull}
	if t := vote.TieBreaker; t != nil {
		tie.ByWhom = t.ByWhom.TextOr(models.SentinelNull)
		tie.Vote = t.Vote.TextOr(models.SentinelNull)
	}

	return models.VoteInfo{
		Position:            pos,
		VoteHash:            identity.Vote(raw),
		VoteDate:            vote.VoteDate.TextOr(models.SentinelNull),
		ModifyDate:          vote.ModifyDate.TextOr(models.SentinelNull),
		Question:            vote.Question.TextOr(models.SentinelNull),
		QuestionText:        vote.VoteQuestionText.TextOr(models.SentinelNull),
		DocumentText:        vote.VoteDocumentText.TextOr(models.SentinelNull),
		Result:              vote.VoteResult.TextOr(models.SentinelNull),
		Title:               vote.VoteTitle.TextOr(models.SentinelNull),
		MajorityRequirement: vote.MajorityRequirement.TextOr(models.SentinelNull),
		VoteType:            models.SentinelNull,
		Documents:           documentsJSON,
		Amendments:          amendmentsJSON,
		Details:             detailsJSON,
		Counts:              counts,
		TieBreaker:          tie,
	}, nil
}

// castOf resolves a vote_cast field to the cast name and pairing. A bare
// text value is the cast name with no pairing.
func castOf(f castField) (cast, paired string) {
	if vc, ok := polyvalue.As[voteCast](f.Specific); ok {
		return extract.StringOr(vc.Content, ""), extract.StringOr(vc.Pair, "")
	}
	if s, ok := f.Generic().Text(); ok && f.Shape() == "" {
		return s, ""
	}
	return "", ""
}

func fallback(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// stated returns the number the document states for a field, or def when the
// field is missing, unparseable or out of range.
func stated(v polyvalue.Value, def uint32, limit uint32) uint32 {
	n, missing, err := v.Uint32()
	if missing || err != nil || n > limit {
		return def
	}
	return n
}
