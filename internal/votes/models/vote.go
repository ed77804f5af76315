package models

import (
	"fmt"
	"strings"
)

// Chamber is one of the two legislative bodies, always lowercase.
type Chamber string

const (
	ChamberHouse  Chamber = "house"
	ChamberSenate Chamber = "senate"
)

// ParseChamber folds s to lowercase and validates it.
func ParseChamber(s string) (Chamber, bool) {
	switch c := Chamber(strings.ToLower(strings.TrimSpace(s))); c {
	case ChamberHouse, ChamberSenate:
		return c, true
	default:
		return c, false
	}
}

// Sentinels substituted for missing upstream fields.
const (
	SentinelNone    = "None"
	SentinelNull    = "null"
	SentinelUnknown = "Unknown"
)

// Position is the addressing metadata parsed from a file's storage path.
type Position struct {
	Congress uint16
	Chamber  Chamber
	Session  uint8
	Rollcall uint32
	Year     uint16
}

// Key identifies one rollcall.
func (p Position) Key() RollcallKey {
	return RollcallKey{Chamber: p.Chamber, Congress: p.Congress, Session: p.Session, Rollcall: p.Rollcall}
}

// RollcallKey is the (chamber, congress, session, rollcall) identity enforced
// unique within one aggregation run.
type RollcallKey struct {
	Chamber  Chamber
	Congress uint16
	Session  uint8
	Rollcall uint32
}

func (k RollcallKey) String() string {
	return fmt.Sprintf("%s/%d/%d/%d", k.Chamber, k.Congress, k.Session, k.Rollcall)
}

// UnifiedVote is one legislator's cast on one rollcall, normalised across
// chambers.
type UnifiedVote struct {
	CongressNumber uint16  `json:"congress_number"`
	Chamber        Chamber `json:"chamber"`
	SessionNumber  uint8   `json:"session_number"`
	RollcallNumber uint32  `json:"rollcall_number"`
	VoteDate       string  `json:"vote_date"`
	VoteQuestion   string  `json:"vote_question"`
	VoteResult     string  `json:"vote_result"`
	LegislatorID   string  `json:"legislator_id"`
	LegislatorName string  `json:"legislator_name"`
	Party          string  `json:"party"`
	State          string  `json:"state"`
	VoteCast       string  `json:"vote_cast"`
}

func (v UnifiedVote) Key() RollcallKey {
	return RollcallKey{Chamber: v.Chamber, Congress: v.CongressNumber, Session: v.SessionNumber, Rollcall: v.RollcallNumber}
}

// RollCallRecord groups every UnifiedVote observed for one rollcall.
type RollCallRecord struct {
	RollcallNumber uint32        `json:"rollcall_number"`
	VoteDate       string        `json:"vote_date"`
	VoteQuestion   string        `json:"vote_question"`
	VoteResult     string        `json:"vote_result"`
	VoteCasts      []UnifiedVote `json:"vote_casts"`
}

// Root is the consolidated chamber → congress → session → rollcalls tree of
// one ingestion run.
type Root struct {
	Chambers map[Chamber]*ChamberNode `json:"chambers"`
}

type ChamberNode struct {
	Congresses map[uint16]*CongressNode `json:"congresses"`
}

type CongressNode struct {
	Sessions map[uint8]*SessionNode `json:"sessions"`
}

type SessionNode struct {
	Rollcalls []*RollCallRecord `json:"rollcalls"`
}

// NewRoot returns an empty tree.
func NewRoot() *Root {
	return &Root{Chambers: make(map[Chamber]*ChamberNode)}
}
