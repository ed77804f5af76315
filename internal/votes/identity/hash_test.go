package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLegislatorNormalisesLastName(t *testing.T) {
	base := Legislator("Smith", "D", "NY")
	assert.Equal(t, base, Legislator("  smith ", "D", "NY"))
	assert.Equal(t, base, Legislator("SMITH\t", "D", "NY"))
	assert.Len(t, base, 64)
}

func TestLegislatorMatchesCompositeKeyDigest(t *testing.T) {
	sum := sha256.Sum256([]byte(`["smith","D","NY"]`))
	assert.Equal(t, hex.EncodeToString(sum[:]), Legislator("Smith", "D", "NY"))
}

func TestLegislatorSeparatesTupleFields(t *testing.T) {
	assert.NotEqual(t, Legislator("Smith", "D", "NY"), Legislator("Smith", "R", "NY"))
	assert.NotEqual(t, Legislator("Smith", "D", "NY"), Legislator("Smith", "D", "NJ"))
	// party and state are not case folded
	assert.NotEqual(t, Legislator("Smith", "D", "NY"), Legislator("Smith", "d", "ny"))
}

// Distinct people sharing last name, party and state share a hash; first names
// are not part of the key.
func TestLegislatorCollisionIsCurrentBehaviour(t *testing.T) {
	assert.Equal(t, Legislator("Udall", "D", "NM"), Legislator("Udall", "D", "NM"))
}

func TestVoteIgnoresKeyOrderAndWhitespace(t *testing.T) {
	a := Vote([]byte(`{"congress":"116","session":"2","members":{"member":[{"last_name":"Smith"}]}}`))
	b := Vote([]byte(`{
		"session": "2",
		"members": {"member": [{"last_name": "Smith"}]},
		"congress": "116"
	}`))
	assert.Equal(t, a, b)
}

func TestVoteChangesWithContent(t *testing.T) {
	a := Vote([]byte(`{"vote_result":"Agreed to"}`))
	b := Vote([]byte(`{"vote_result":"Rejected"}`))
	assert.NotEqual(t, a, b)
}

func TestVoteNeverFails(t *testing.T) {
	assert.Equal(t, HashBytes([]byte("not json")), Vote([]byte("  not json \n")))
}
