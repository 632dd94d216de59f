package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SentinelID identifies the synthetic "not in list" candidate.
const SentinelID = "?"

// Mention is an extracted reference to a person or corporation together
// with the candidates it may refer to. A Mention is replaced wholesale on
// every resolve and is never edited in place.
type Mention struct {
	// Index is the backend's item index.
	Index int `json:"-"`

	// ContextID identifies the source context the mention was taken from.
	ContextID string `json:"id"`

	// Input is the mention's text span.
	Input string `json:"input"`

	// ControlAccess marks mentions taken from a control-access field.
	ControlAccess bool `json:"controlAccess"`

	// Golden is the decision already stored by the backend, "" if none.
	Golden string `json:"golden,omitempty"`

	Candidates []Candidate `json:"candidates"`
}

// Annotated reports whether the backend already holds a decision.
func (m *Mention) Annotated() bool {
	return m.Golden != ""
}

// Candidate returns the candidate with the given id.
func (m *Mention) Candidate(id string) (Candidate, bool) {
	for _, c := range m.Candidates {
		if c.ID == id {
			return c, true
		}
	}
	return Candidate{}, false
}

// Candidate is a possible authority record match for a mention.
type Candidate struct {
	ID       string   `json:"id"`
	Names    Names    `json:"names"`
	Distance Distance `json:"distance"`
}

// IsSentinel reports whether c is the synthetic "not in list" option.
func (c Candidate) IsSentinel() bool {
	return c.ID == SentinelID
}

// SentinelCandidate returns the synthetic "not in list" candidate.
func SentinelCandidate() Candidate {
	return Candidate{
		ID:       SentinelID,
		Names:    Names{"not in list"},
		Distance: "n/a",
	}
}

// Names holds one or more synonymous names of a candidate. On the wire it
// is either a single string or an array of strings.
type Names []string

// String joins the names for display.
func (n Names) String() string {
	return strings.Join(n, ", ")
}

// UnmarshalJSON accepts a string, an array of strings, or null.
func (n *Names) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Names{s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("names: %w", err)
	}
	*n = list
	return nil
}

// Distance is a candidate's similarity score. The backend sends a number;
// the sentinel carries a textual placeholder.
type Distance string

// String returns the score as text.
func (d Distance) String() string {
	return string(d)
}

// Float returns the numeric score, if there is one.
func (d Distance) Float() (float64, bool) {
	f, err := strconv.ParseFloat(string(d), 64)
	return f, err == nil
}

// UnmarshalJSON accepts a number, a string, or null.
func (d *Distance) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*d = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = Distance(s)
	default:
		var num json.Number
		if err := json.Unmarshal(data, &num); err != nil {
			return fmt.Errorf("distance: %w", err)
		}
		*d = Distance(num.String())
	}
	return nil
}

// MarshalJSON writes numeric distances as numbers and anything else as a string.
func (d Distance) MarshalJSON() ([]byte, error) {
	if _, ok := d.Float(); ok && json.Valid([]byte(d)) {
		return []byte(d), nil
	}
	return json.Marshal(string(d))
}

// Annotation is a decision for one mention.
type Annotation struct {
	MentionIndex int
	CandidateID  string
}
