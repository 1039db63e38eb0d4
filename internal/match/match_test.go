package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdent(t *testing.T) {
	tests := map[string]string{
		"OwnerID":      "ownerid",
		"owner_id":     "ownerid",
		"owner-id":     "ownerid",
		"aws:owner:id": "ownerid",
		"team/Name":    "teamname",
		"":             "",
	}

	for in, want := range tests {
		assert.Equal(t, want, NormalizeIdent(in), in)
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"Owner", "Onwer", 2},
		{"flaw", "lawn", 2},
		{"same", "same", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b), "%s/%s", tt.a, tt.b)
		assert.Equal(t, tt.want, Levenshtein(tt.b, tt.a), "%s/%s", tt.b, tt.a)
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("OwnerID", "owner_id"), 1e-9)
	assert.InDelta(t, 1.0, Similarity("", "_"), 1e-9)
	assert.InDelta(t, 0.6, Similarity("Owner", "Onwer"), 1e-9)
	assert.Less(t, Similarity("Name", "Environment"), MinScore)
}

func TestSuggest(t *testing.T) {
	fields := []string{"Name", "Owner", "OwnerID", "Environment", "Public"}

	assert.Equal(t, []string{"OwnerID", "Owner"}, Suggest("owner_id", fields, 0))
	assert.Equal(t, []string{"OwnerID"}, Suggest("owner_id", fields, 1))
	assert.Equal(t, []string{"Owner"}, Suggest("Onwer", fields, 3))
	assert.Equal(t, []string{"Environment"}, Suggest("Enviroment", fields, 3))
	assert.Empty(t, Suggest("Zone", fields, 3))
	assert.Empty(t, Suggest("Name", fields, 3))
}
