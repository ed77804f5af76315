package house

import (
	"encoding/json"

	"rollcall/internal/votes/polyvalue"
)

// Raw House clerk layout. Only consumed fields are declared; nothing here is
// exported past the extractor.

type document struct {
	RollcallVote json.RawMessage `json:"rollcall-vote"`
}

type rollcallVote struct {
	Metadata *metadata `json:"vote-metadata"`
	Data     *voteData `json:"vote-data"`
}

type metadata struct {
	Majority     polyvalue.Value `json:"majority"`
	Congress     polyvalue.Value `json:"congress"`
	Session      polyvalue.Value `json:"session"`
	Committee    polyvalue.Value `json:"committee"`
	RollcallNum  polyvalue.Value `json:"rollcall-num"`
	LegisNum     polyvalue.Value `json:"legis-num"`
	VoteQuestion polyvalue.Value `json:"vote-question"`
	VoteType     polyvalue.Value `json:"vote-type"`
	VoteResult   polyvalue.Value `json:"vote-result"`
	ActionDate   polyvalue.Value `json:"action-date"`
	ActionTime   *actionTime     `json:"action-time"`
	VoteDesc     polyvalue.Value `json:"vote-desc"`
	VoteTotals   *voteTotals     `json:"vote-totals"`
}

type actionTime struct {
	Content *string `json:"content"`
	TimeETZ *string `json:"time-etz"`
}

type voteTotals struct {
	TotalsByParty     []partyTotals    `json:"totals-by-party"`
	TotalsByVote      *voteTally       `json:"totals-by-vote"`
	TotalsByCandidate []candidateTally `json:"totals-by-candidate"`
}

type voteTally struct {
	TotalStub      polyvalue.Value   `json:"total-stub"`
	YeaTotal       polyvalue.Lenient `json:"yea-total"`
	NayTotal       polyvalue.Lenient `json:"nay-total"`
	PresentTotal   polyvalue.Lenient `json:"present-total"`
	NotVotingTotal polyvalue.Lenient `json:"not-voting-total"`
}

type partyTotals struct {
	Party          polyvalue.Value   `json:"party,omitzero"`
	YeaTotal       polyvalue.Lenient `json:"yea-total,omitzero"`
	NayTotal       polyvalue.Lenient `json:"nay-total,omitzero"`
	PresentTotal   polyvalue.Lenient `json:"present-total,omitzero"`
	NotVotingTotal polyvalue.Lenient `json:"not-voting-total,omitzero"`
}

type candidateTally struct {
	Candidate      polyvalue.Value   `json:"candidate,omitzero"`
	CandidateTotal polyvalue.Lenient `json:"candidate-total,omitzero"`
}

type voteData struct {
	RecordedVote []recordedVote `json:"recorded-vote"`
}

type recordedVote struct {
	Legislator *legislator `json:"legislator"`
	Vote       *string     `json:"vote"`
}

type legislator struct {
	Content        *string `json:"content"`
	NameID         *string `json:"name-id"`
	SortField      *string `json:"sort-field"`
	UnaccentedName *string `json:"unaccented-name"`
	Party          *string `json:"party"`
	State          *string `json:"state"`
	Role           *string `json:"role"`
}

// details is the House-only remainder stored as JSON alongside the common
// vote columns.
type details struct {
	Majority          string           `json:"majority"`
	Committee         string           `json:"committee"`
	LegisNum          string           `json:"legis_num"`
	ActionTime        string           `json:"action_time"`
	ActionTimeETZ     string           `json:"action_time_etz"`
	VoteDesc          string           `json:"vote_desc"`
	TotalsByParty     []partyTotals    `json:"totals_by_party"`
	TotalsByCandidate []candidateTally `json:"totals_by_candidate"`
}
