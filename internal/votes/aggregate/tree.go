// Package aggregate accumulates vote events into the chamber → congress →
// session → rollcall tree of one ingestion run.
package aggregate

import (
	"rollcall/internal/votes/models"
)

// Insert files vote under its rollcall in root, creating any missing level.
// A vote for a rollcall already present is appended to that record; otherwise
// a new record seeded from the vote's date, question and result is appended
// to the session.
func Insert(vote models.UnifiedVote, root *models.Root) {
	chamber, _ := models.ParseChamber(string(vote.Chamber))
	vote.Chamber = chamber

	if root.Chambers == nil {
		root.Chambers = make(map[models.Chamber]*models.ChamberNode)
	}
	cn, ok := root.Chambers[chamber]
	if !ok {
		cn = &models.ChamberNode{Congresses: make(map[uint16]*models.CongressNode)}
		root.Chambers[chamber] = cn
	}
	cg, ok := cn.Congresses[vote.CongressNumber]
	if !ok {
		cg = &models.CongressNode{Sessions: make(map[uint8]*models.SessionNode)}
		cn.Congresses[vote.CongressNumber] = cg
	}
	sn, ok := cg.Sessions[vote.SessionNumber]
	if !ok {
		sn = &models.SessionNode{Rollcalls: []*models.RollCallRecord{}}
		cg.Sessions[vote.SessionNumber] = sn
	}

	for _, rc := range sn.Rollcalls {
		if rc.RollcallNumber == vote.RollcallNumber {
			rc.VoteCasts = append(rc.VoteCasts, vote)
			return
		}
	}
	sn.Rollcalls = append(sn.Rollcalls, &models.RollCallRecord{
		RollcallNumber: vote.RollcallNumber,
		VoteDate:       vote.VoteDate,
		VoteQuestion:   vote.VoteQuestion,
		VoteResult:     vote.VoteResult,
		VoteCasts:      []models.UnifiedVote{vote},
	})
}

// Lookup returns the record for key, if one has been created.
func Lookup(root *models.Root, key models.RollcallKey) (*models.RollCallRecord, bool) {
	cn, ok := root.Chambers[key.Chamber]
	if !ok {
		return nil, false
	}
	cg, ok := cn.Congresses[key.Congress]
	if !ok {
		return nil, false
	}
	sn, ok := cg.Sessions[key.Session]
	if !ok {
		return nil, false
	}
	for _, rc := range sn.Rollcalls {
		if rc.RollcallNumber == key.Rollcall {
			return rc, true
		}
	}
	return nil, false
}

// Walk visits every record in a stable order: chambers, congresses and
// sessions ascending, rollcalls in first-seen order.
func Walk(root *models.Root, fn func(key models.RollcallKey, rc *models.RollCallRecord) error) error {
	for _, chamber := range sortedKeys(root.Chambers) {
		cn := root.Chambers[chamber]
		for _, congress := range sortedKeys(cn.Congresses) {
			cg := cn.Congresses[congress]
			for _, session := range sortedKeys(cg.Sessions) {
				for _, rc := range cg.Sessions[session].Rollcalls {
					key := models.RollcallKey{Chamber: chamber, Congress: congress, Session: session, Rollcall: rc.RollcallNumber}
					if err := fn(key, rc); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// Stats summarises a tree.
type Stats struct {
	Rollcalls int
	Votes     int
}

func Summarize(root *models.Root) Stats {
	var st Stats
	_ = Walk(root, func(_ models.RollcallKey, rc *models.RollCallRecord) error {
		st.Rollcalls++
		st.Votes += len(rc.VoteCasts)
		return nil
	})
	return st
}
