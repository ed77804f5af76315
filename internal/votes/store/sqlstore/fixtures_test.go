package sqlstore

import (
	"encoding/json"

	"rollcall/internal/votes/identity"
	"rollcall/internal/votes/models"
)

func sampleInfo() models.VoteInfo {
	adams := identity.Legislator("Adams", "D", "NC")
	return models.VoteInfo{
		Position:            models.Position{Congress: 116, Chamber: models.ChamberHouse, Session: 2, Rollcall: 1, Year: 2020},
		VoteHash:            identity.Vote([]byte(`{"vote-metadata": {}}`)),
		VoteDate:            "16-Jan-2020",
		ModifyDate:          models.SentinelNull,
		Question:            "On Passage",
		QuestionText:        models.SentinelNull,
		DocumentText:        "H R 5430",
		Result:              "Passed",
		Title:               "USMCA Implementation Act",
		MajorityRequirement: models.SentinelNull,
		VoteType:            "YEA-AND-NAY",
		Documents:           json.RawMessage(`[]`),
		Amendments:          json.RawMessage(`[]`),
		Details:             json.RawMessage(`{"majority": "D"}`),
		Counts:              models.Counts{Yea: 385, Nay: 41, Absent: 5},
		TieBreaker:          models.TieBreaker{ByWhom: models.SentinelNull, Vote: models.SentinelNull},
		Members: []models.MemberVote{{
			MemberID:    "A000370",
			GeneratedID: adams,
			FullName:    "Adams",
			LastName:    "Adams",
			FirstName:   models.SentinelNull,
			Party:       "D",
			State:       "NC",
			VoteCast:    "Yea",
			PairedWith:  models.SentinelNull,
		}},
		Legislators: []models.CongressionalMember{{LastName: "Adams", Party: "D", State: "NC", GeneratedID: adams}},
	}
}
