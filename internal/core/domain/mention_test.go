package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMention_UnmarshalJSON(t *testing.T) {
	payload := `{
		"id": "NL-HaNA_2.21.281.08_1",
		"input": "Philips",
		"controlAccess": true,
		"golden": "7",
		"candidates": [
			{"id": "7", "names": ["Philips", "N.V. Philips"], "distance": 0.125},
			{"id": "9", "names": "Philips Gloeilampenfabrieken", "distance": "0.5"}
		]
	}`

	var m Mention
	require.NoError(t, json.Unmarshal([]byte(payload), &m))

	assert.Equal(t, "NL-HaNA_2.21.281.08_1", m.ContextID)
	assert.Equal(t, "Philips", m.Input)
	assert.True(t, m.ControlAccess)
	assert.True(t, m.Annotated())
	require.Len(t, m.Candidates, 2)
	assert.Equal(t, "Philips, N.V. Philips", m.Candidates[0].Names.String())
	assert.Equal(t, "0.125", m.Candidates[0].Distance.String())
	assert.Equal(t, Names{"Philips Gloeilampenfabrieken"}, m.Candidates[1].Names)
	assert.Equal(t, "0.5", m.Candidates[1].Distance.String())
}

func TestNames_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Names
		wantErr bool
	}{
		{"single string", `"Fokker"`, Names{"Fokker"}, false},
		{"array", `["Fokker", "N.V. Fokker"]`, Names{"Fokker", "N.V. Fokker"}, false},
		{"empty array", `[]`, Names{}, false},
		{"null", `null`, nil, false},
		{"number", `42`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Names
			err := json.Unmarshal([]byte(tt.input), &n)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestDistance_RoundTrip(t *testing.T) {
	var c Candidate
	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","names":"a","distance":0.863636}`), &c))

	f, ok := c.Distance.Float()
	require.True(t, ok)
	assert.InDelta(t, 0.863636, f, 1e-9)

	data, err := json.Marshal(c.Distance)
	require.NoError(t, err)
	assert.Equal(t, "0.863636", string(data))

	data, err = json.Marshal(SentinelCandidate().Distance)
	require.NoError(t, err)
	assert.Equal(t, `"n/a"`, string(data))
}

func TestSentinelCandidate(t *testing.T) {
	c := SentinelCandidate()

	assert.True(t, c.IsSentinel())
	assert.Equal(t, "?", c.ID)
	assert.Equal(t, "not in list", c.Names.String())
	assert.Equal(t, "n/a", c.Distance.String())
}

func TestMention_Candidate(t *testing.T) {
	m := &Mention{Candidates: []Candidate{{ID: "a"}, {ID: "b"}}}

	c, ok := m.Candidate("b")
	assert.True(t, ok)
	assert.Equal(t, "b", c.ID)

	_, ok = m.Candidate("z")
	assert.False(t, ok)
}
