//go:build property
// +build property

package aggregate_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"rollcall/internal/votes/aggregate"
	"rollcall/internal/votes/models"
)

func event(rollcall uint32, legislator string) models.UnifiedVote {
	return models.UnifiedVote{
		CongressNumber: 116,
		Chamber:        models.ChamberHouse,
		SessionNumber:  2,
		RollcallNumber: rollcall,
		LegislatorID:   legislator,
		VoteCast:       "Yea",
	}
}

// Property: N inserts sharing one key leave exactly one record holding N votes in call order
func TestSameKeyAccumulates(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("one record per key with every vote in order", prop.ForAll(
		func(rollcall uint32, legislators []string) bool {
			root := models.NewRoot()
			for _, l := range legislators {
				aggregate.Insert(event(rollcall, l), root)
			}
			rollcalls := root.Chambers[models.ChamberHouse].Congresses[116].Sessions[2].Rollcalls
			if len(rollcalls) != 1 || len(rollcalls[0].VoteCasts) != len(legislators) {
				return false
			}
			for i, l := range legislators {
				if rollcalls[0].VoteCasts[i].LegislatorID != l {
					return false
				}
			}
			return true
		},
		gen.UInt32(),
		gen.SliceOf(gen.AlphaString()).SuchThat(func(s []string) bool { return len(s) > 0 }),
	))

	properties.TestingRun(t)
}

// Property: distinct rollcall numbers under one session never merge
func TestDistinctRollcallsNeverMerge(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("one record per distinct rollcall number", prop.ForAll(
		func(numbers []uint32) bool {
			root := models.NewRoot()
			distinct := make(map[uint32]struct{})
			for _, n := range numbers {
				aggregate.Insert(event(n, "A"), root)
				distinct[n] = struct{}{}
			}
			return aggregate.Summarize(root) == aggregate.Stats{Rollcalls: len(distinct), Votes: len(numbers)}
		},
		gen.SliceOf(gen.UInt32Range(1, 50)),
	))

	properties.TestingRun(t)
}
