package models

import "encoding/json"

// CongressionalMember is the chamber-neutral legislator form. GeneratedID is
// the identity hash, distinct from any database or upstream identifier.
type CongressionalMember struct {
	LastName    string `json:"last_name"`
	Party       string `json:"party"`
	State       string `json:"state"`
	GeneratedID string `json:"generated_id"`
}

// MemberVote is one member row as stored relationally: the chamber-specific
// identifier and naming alongside the identity hash.
type MemberVote struct {
	MemberID    string `json:"member_id"`
	GeneratedID string `json:"generated_id"`
	FullName    string `json:"full_name"`
	LastName    string `json:"last_name"`
	FirstName   string `json:"first_name"`
	Party       string `json:"party"`
	State       string `json:"state"`
	VoteCast    string `json:"vote_cast"`
	PairedWith  string `json:"paired_with"`
}

// Counts are the tallies of one rollcall; House "not voting" maps to Absent.
type Counts struct {
	Yea     uint32 `json:"yea"`
	Nay     uint32 `json:"nay"`
	Present uint32 `json:"present"`
	Absent  uint32 `json:"absent"`
}

// TieBreaker records the tie-breaking vote, when one was cast.
type TieBreaker struct {
	ByWhom string `json:"by_whom"`
	Vote   string `json:"vote"`
}

// VoteInfo is the relational form of one rollcall document. Documents,
// Amendments and Details are pre-serialised JSON so chamber-specific layouts
// never leak past extraction.
type VoteInfo struct {
	Position            Position
	VoteHash            string
	VoteDate            string
	ModifyDate          string
	Question            string
	QuestionText        string
	DocumentText        string
	Result              string
	Title               string
	MajorityRequirement string
	VoteType            string
	Documents           json.RawMessage
	Amendments          json.RawMessage
	Details             json.RawMessage
	Counts              Counts
	TieBreaker          TieBreaker
	Members             []MemberVote
	Legislators         []CongressionalMember
}

// Extraction is what a chamber extractor returns for one document.
type Extraction struct {
	Votes []UnifiedVote
	Info  VoteInfo
	// HasVoteData is false when the document carried no member/vote block.
	HasVoteData bool
	// Degraded lists fields whose values were replaced by a default because
	// they could not be parsed.
	Degraded []string
}
