// Package house extracts vote events from House clerk rollcall documents.
package house

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"rollcall/internal/votes/extract"
	"rollcall/internal/votes/identity"
	"rollcall/internal/votes/models"
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

// Extract decodes one House document. Recorded votes without a legislator
// sub-record are skipped with a warning; a missing vote-data block yields no
// votes and HasVoteData=false.
func (e *Extractor) Extract(ctx context.Context, pos models.Position, raw []byte) (*models.Extraction, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: house: %w", sentinel.ErrMalformedDocument, err)
	}
	if len(doc.RollcallVote) == 0 {
		return nil, fmt.Errorf("%w: house: missing rollcall-vote", sentinel.ErrMalformedDocument)
	}
	var vote rollcallVote
	if err := json.Unmarshal(doc.RollcallVote, &vote); err != nil {
		return nil, fmt.Errorf("%w: house: %w", sentinel.ErrMalformedDocument, err)
	}
	if vote.Metadata == nil {
		return nil, fmt.Errorf("%w: house: missing vote-metadata", sentinel.ErrMalformedDocument)
	}
	meta := vote.Metadata

	date := meta.ActionDate.TextOr(models.SentinelNull)
	question := meta.VoteQuestion.TextOr(models.SentinelNull)
	result := meta.VoteResult.TextOr(models.SentinelNull)

	out := &models.Extraction{HasVoteData: vote.Data != nil}
	if vote.Data == nil {
		e.logger.WarnContext(ctx, "missing vote data", "rollcall", pos.Key().String())
	}

	var recorded []recordedVote
	if vote.Data != nil {
		recorded = vote.Data.RecordedVote
	}

	for i, rv := range recorded {
		if rv.Legislator == nil {
			e.logger.WarnContext(ctx, "skipping recorded vote without legislator",
				"rollcall", pos.Key().String(),
				"index", i,
			)
			continue
		}
		l := rv.Legislator

		out.Votes = append(out.Votes, models.UnifiedVote{
			CongressNumber: pos.Congress,
			Chamber:        models.ChamberHouse,
			SessionNumber:  pos.Session,
			RollcallNumber: pos.Rollcall,
			VoteDate:       date,
			VoteQuestion:   question,
			VoteResult:     result,
			LegislatorID:   extract.StringOr(l.NameID, models.SentinelNone),
			LegislatorName: extract.StringOr(l.UnaccentedName, models.SentinelUnknown),
			Party:          extract.StringOr(l.Party, models.SentinelNone),
			State:          extract.StringOr(l.State, models.SentinelNone),
			VoteCast:       extract.StringOr(rv.Vote, models.SentinelNone),
		})

		lastName := extract.StringOr(l.UnaccentedName, models.SentinelNull)
		party := extract.StringOr(l.Party, models.SentinelNull)
		state := extract.StringOr(l.State, models.SentinelNull)
		generated := identity.Legislator(lastName, party, state)

		out.Info.Members = append(out.Info.Members, models.MemberVote{
			MemberID:    extract.StringOr(l.NameID, models.SentinelNull),
			GeneratedID: generated,
			FullName:    extract.StringOr(l.Content, lastName),
			LastName:    lastName,
			FirstName:   models.SentinelNull,
			Party:       party,
			State:       state,
			VoteCast:    extract.StringOr(rv.Vote, models.SentinelNull),
			PairedWith:  models.SentinelNull,
		})
		out.Info.Legislators = append(out.Info.Legislators, models.CongressionalMember{
			LastName:    lastName,
			Party:       party,
			State:       state,
			GeneratedID: generated,
		})
	}

	info, err := e.info(ctx, pos, doc.RollcallVote, meta, &out.Degraded)
	if err != nil {
		return nil, err
	}
	info.Members = out.Info.Members
	info.Legislators = out.Info.Legislators
	out.Info = info

	return out, nil
}

func (e *Extractor) info(ctx context.Context, pos models.Position, raw json.RawMessage, meta *metadata, degraded *[]string) (models.VoteInfo, error) {
	d := details{
		Majority:      meta.Majority.TextOr(models.SentinelNull),
		Committee:     meta.Committee.TextOr(models.SentinelNull),
		LegisNum:      meta.LegisNum.TextOr(models.SentinelNull),
		ActionTime:    models.SentinelNull,
		ActionTimeETZ: models.SentinelNull,
		VoteDesc:      meta.VoteDesc.TextOr(models.SentinelNull),
	}
	if meta.ActionTime != nil {
		d.ActionTime = extract.StringOr(meta.ActionTime.Content, models.SentinelNull)
		d.ActionTimeETZ = extract.StringOr(meta.ActionTime.TimeETZ, models.SentinelNull)
	}

	var counts models.Counts
	if totals := meta.VoteTotals; totals != nil {
		d.TotalsByParty = totals.TotalsByParty
		d.TotalsByCandidate = totals.TotalsByCandidate
		if tally := totals.TotalsByVote; tally != nil {
			counts = models.Counts{
				Yea:     extract.Count(ctx, e.logger, pos, "yea-total", tally.YeaTotal, degraded),
				Nay:     extract.Count(ctx, e.logger, pos, "nay-total", tally.NayTotal, degraded),
				Present: extract.Count(ctx, e.logger, pos, "present-total", tally.PresentTotal, degraded),
				Absent:  extract.Count(ctx, e.logger, pos, "not-voting-total", tally.NotVotingTotal, degraded),
			}
		}
	}
	if d.TotalsByParty == nil {
		d.TotalsByParty = []partyTotals{}
	}
	if d.TotalsByCandidate == nil {
		d.TotalsByCandidate = []candidateTally{}
	}

	detailsJSON, err := json.Marshal(d)
	if err != nil {
		return models.VoteInfo{}, fmt.Errorf("%w: house: encode details: %w", sentinel.ErrMalformedDocument, err)
	}

	return models.VoteInfo{
		Position:            pos,
		VoteHash:            identity.Vote(raw),
		VoteDate:            meta.ActionDate.TextOr(models.SentinelNull),
		ModifyDate:          models.SentinelNull,
		Question:            meta.VoteQuestion.TextOr(models.SentinelNull),
		QuestionText:        models.SentinelNull,
		DocumentText:        d.LegisNum,
		Result:              meta.VoteResult.TextOr(models.SentinelNull),
		Title:               d.VoteDesc,
		MajorityRequirement: models.SentinelNull,
		VoteType:            meta.VoteType.TextOr(models.SentinelNull),
		Documents:           json.RawMessage("[]"),
		Amendments:          json.RawMessage("[]"),
		Details:             detailsJSON,
		Counts:              counts,
		TieBreaker:          models.TieBreaker{ByWhom: models.SentinelNull, Vote: models.SentinelNull},
	}, nil
}
