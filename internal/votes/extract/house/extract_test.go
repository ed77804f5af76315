package house

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"rollcall/internal/votes/identity"
	"rollcall/internal/votes/models"
	"rollcall/pkg/platform/sentinel"
)

type ExtractSuite struct {
	suite.Suite
	ctx  context.Context
	logs *bytes.Buffer
	ext  *Extractor
	pos  models.Position
}

func TestExtractSuite(t *testing.T) {
	suite.Run(t, new(ExtractSuite))
}

func (s *ExtractSuite) SetupTest() {
	s.ctx = context.Background()
	s.logs = &bytes.Buffer{}
	s.ext = New(WithLogger(slog.New(slog.NewTextHandler(s.logs, nil))))
	s.pos = models.Position{Congress: 116, Chamber: models.ChamberHouse, Session: 2, Rollcall: 1, Year: 2020}
}

const scenarioA = `{
  "rollcall-vote": {
    "vote-metadata": {
      "majority": "D",
      "congress": "116",
      "session": "2nd",
      "rollcall-num": 1,
      "legis-num": "H R 5430",
      "vote-question": "On Passage",
      "vote-type": "YEA-AND-NAY",
      "vote-result": "Passed",
      "action-date": "16-Jan-2020",
      "action-time": {"content": "10:32 AM", "time-etz": "10:32"},
      "vote-desc": "United States-Mexico-Canada Agreement Implementation Act",
      "vote-totals": {
        "totals-by-party": [{"party": "Democratic", "yea-total": "193", "nay-total": 38}],
        "totals-by-vote": {"total-stub": "Totals", "yea-total": "385", "nay-total": 41, "present-total": "0", "not-voting-total": "5"}
      }
    },
    "vote-data": {
      "recorded-vote": [
        {"legislator": {"content": "Adams", "name-id": "A000370", "unaccented-name": "Adams", "party": "D", "state": "NC", "role": "legislator"}, "vote": "Yea"},
        {"vote": "Nay"}
      ]
    }
  }
}`

// =============================================================================
// Recorded votes
// =============================================================================

func (s *ExtractSuite) TestSkipsRecordedVoteWithoutLegislator() {
	out, err := s.ext.Extract(s.ctx, s.pos, []byte(scenarioA))
	s.Require().NoError(err)

	s.True(out.HasVoteData)
	s.Require().Len(out.Votes, 1)
	s.Equal(models.UnifiedVote{
		CongressNumber: 116,
		Chamber:        models.ChamberHouse,
		SessionNumber:  2,
		RollcallNumber: 1,
		VoteDate:       "16-Jan-2020",
		VoteQuestion:   "On Passage",
		VoteResult:     "Passed",
		LegislatorID:   "A000370",
		LegislatorName: "Adams",
		Party:          "D",
		State:          "NC",
		VoteCast:       "Yea",
	}, out.Votes[0])
	s.Contains(s.logs.String(), "skipping recorded vote without legislator")
}

func (s *ExtractSuite) TestLegislatorFallbacks() {
	doc := `{"rollcall-vote": {"vote-metadata": {}, "vote-data": {"recorded-vote": [{"legislator": {}}]}}}`

	out, err := s.ext.Extract(s.ctx, s.pos, []byte(doc))
	s.Require().NoError(err)
	s.Require().Len(out.Votes, 1)

	v := out.Votes[0]
	s.Equal(models.SentinelNone, v.LegislatorID)
	s.Equal(models.SentinelUnknown, v.LegislatorName)
	s.Equal(models.SentinelNone, v.Party)
	s.Equal(models.SentinelNone, v.State)
	s.Equal(models.SentinelNone, v.VoteCast)
	s.Equal(models.SentinelNull, v.VoteDate)
	s.Equal(models.SentinelNull, v.VoteQuestion)
	s.Equal(models.SentinelNull, v.VoteResult)
}

func (s *ExtractSuite) TestNonTextMetadataBecomesNull() {
	doc := `{"rollcall-vote": {"vote-metadata": {"vote-question": 7, "vote-result": {"content": "Passed"}, "action-date": null},
	  "vote-data": {"recorded-vote": [{"legislator": {"name-id": "X"}, "vote": "Aye"}]}}}`

	out, err := s.ext.Extract(s.ctx, s.pos, []byte(doc))
	s.Require().NoError(err)
	s.Require().Len(out.Votes, 1)
	s.Equal(models.SentinelNull, out.Votes[0].VoteQuestion)
	s.Equal(models.SentinelNull, out.Votes[0].VoteResult)
	s.Equal(models.SentinelNull, out.Votes[0].VoteDate)
}

func (s *ExtractSuite) TestMissingVoteDataIsLogged() {
	doc := `{"rollcall-vote": {"vote-metadata": {"vote-question": "Quorum"}}}`

	out, err := s.ext.Extract(s.ctx, s.pos, []byte(doc))
	s.Require().NoError(err)
	s.False(out.HasVoteData)
	s.Empty(out.Votes)
	s.Contains(s.logs.String(), "missing vote data")
}

// =============================================================================
// Relational form
// =============================================================================

func (s *ExtractSuite) TestInfo() {
	out, err := s.ext.Extract(s.ctx, s.pos, []byte(scenarioA))
	s.Require().NoError(err)

	info := out.Info
	s.Equal(s.pos, info.Position)
	s.Len(info.VoteHash, 64)
	s.Equal("H R 5430", info.DocumentText)
	s.Equal("YEA-AND-NAY", info.VoteType)
	s.Equal(models.Counts{Yea: 385, Nay: 41, Present: 0, Absent: 5}, info.Counts)
	s.JSONEq(`[]`, string(info.Documents))
	s.JSONEq(`[]`, string(info.Amendments))
	s.Empty(out.Degraded)

	var details map[string]any
	s.Require().NoError(json.Unmarshal(info.Details, &details))
	s.Equal("D", details["majority"])
	s.Equal("10:32 AM", details["action_time"])
	s.Equal("10:32", details["action_time_etz"])
	s.Len(details["totals_by_party"], 1)

	s.Require().Len(info.Members, 1)
	s.Equal("A000370", info.Members[0].MemberID)
	s.Equal(identity.Legislator("Adams", "D", "NC"), info.Members[0].GeneratedID)
	s.Require().Len(info.Legislators, 1)
	s.Equal(info.Members[0].GeneratedID, info.Legislators[0].GeneratedID)
}

func (s *ExtractSuite) TestVoteHashIgnoresKeyOrder() {
	a := `{"rollcall-vote": {"vote-metadata": {"vote-question": "Q", "vote-result": "R"}}}`
	b := `{"rollcall-vote": {"vote-metadata": {"vote-result": "R", "vote-question": "Q"}}}`

	first, err := s.ext.Extract(s.ctx, s.pos, []byte(a))
	s.Require().NoError(err)
	second, err := s.ext.Extract(s.ctx, s.pos, []byte(b))
	s.Require().NoError(err)
	s.Equal(first.Info.VoteHash, second.Info.VoteHash)
}

func (s *ExtractSuite) TestUnparseableCountDegrades() {
	doc := `{"rollcall-vote": {"vote-metadata": {"vote-totals": {"totals-by-vote": {"yea-total": "lots", "nay-total": 3}}}}}`

	out, err := s.ext.Extract(s.ctx, s.pos, []byte(doc))
	s.Require().NoError(err)
	s.Equal(uint32(0), out.Info.Counts.Yea)
	s.Equal(uint32(3), out.Info.Counts.Nay)
	s.Equal([]string{"yea-total"}, out.Degraded)
	s.Contains(s.logs.String(), "count value degraded to 0")
}

func (s *ExtractSuite) TestOutOfProfileCountDegrades() {
	doc := `{"rollcall-vote": {
	  "vote-metadata": {"vote-totals": {
	    "totals-by-party": [{"party": "Republican", "nay-total": -1}],
	    "totals-by-vote": {"yea-total": 212, "nay-total": -1, "present-total": true}
	  }},
	  "vote-data": {"recorded-vote": [{"legislator": {"content": "Adams", "name-id": "A000370", "party": "D", "state": "NC"}, "vote": "Yea"}]}
	}}`

	out, err := s.ext.Extract(s.ctx, s.pos, []byte(doc))
	s.Require().NoError(err)
	s.Equal(models.Counts{Yea: 212}, out.Info.Counts)
	s.Equal([]string{"nay-total", "present-total"}, out.Degraded)
	s.Len(out.Info.Members, 1)

	var details struct {
		TotalsByParty []map[string]any `json:"totals_by_party"`
	}
	s.Require().NoError(json.Unmarshal(out.Info.Details, &details))
	s.Require().Len(details.TotalsByParty, 1)
	s.Equal(float64(-1), details.TotalsByParty[0]["nay-total"])
}

// =============================================================================
// Malformed documents
// =============================================================================

func (s *ExtractSuite) TestMalformed() {
	cases := map[string]string{
		"invalid json":      `{"rollcall-vote":`,
		"missing root":      `{"roll_call_vote": {}}`,
		"missing metadata":  `{"rollcall-vote": {"vote-data": {}}}`,
		"undecodable field": `{"rollcall-vote": {"vote-metadata": {"congress": 1.5}}}`,
	}
	for name, doc := range cases {
		s.Run(name, func() {
			_, err := s.ext.Extract(s.ctx, s.pos, []byte(doc))
			s.Require().Error(err)
			s.True(sentinel.IsFileLocal(err))
		})
	}
}
