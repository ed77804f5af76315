//go:build property
// +build property

package identity_test

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"rollcall/internal/votes/identity"
)

// Property: Legislator(name) == Legislator(pad(case(name))) for any name
func TestLegislatorCaseAndWhitespaceInsensitive(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("last name case and padding do not change the hash", prop.ForAll(
		func(name, party, state string, upper bool, pad int) bool {
			variant := strings.ToLower(name)
			if upper {
				variant = strings.ToUpper(name)
			}
			spaces := strings.Repeat(" ", pad)
			variant = spaces + variant + "\t" + spaces
			return identity.Legislator(name, party, state) == identity.Legislator(variant, party, state)
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.AlphaString(),
		gen.Bool(),
		gen.IntRange(0, 4),
	))

	properties.TestingRun(t)
}

// Property: Vote(doc) is deterministic for any document
func TestVoteDeterministic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("hashing a document twice yields the same digest", prop.ForAll(
		func(question string) bool {
			doc := []byte(`{"question":"` + question + `","vote_number":"00001"}`)
			return identity.Vote(doc) == identity.Vote(doc)
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
