package fakebackend

import (
	"fmt"

	"github.com/knaw-huc/entity-annotator/internal/core/domain"
)

var sampleInputs = []string{"Amsterdam", "Leiden", "Amsterdam", "Den Haag", "Amsterdam", "Utrecht/Zuid"}

// Sample returns n unannotated items. Inputs repeat so that term listings
// have several occurrences, every third item comes from a control-access
// field, and every item lists its first candidate twice.
func Sample(n int) []domain.Mention {
	items := make([]domain.Mention, n)
	for i := range items {
		items[i] = domain.Mention{
			ContextID:     fmt.Sprintf("ead/%d", i/10),
			Input:         sampleInputs[i%len(sampleInputs)],
			ControlAccess: i%3 == 0,
			Candidates: []domain.Candidate{
				{ID: fmt.Sprintf("Q%d", i), Names: domain.Names{"Name", "Alias"}, Distance: "0.25"},
				{ID: fmt.Sprintf("Q%d", i+1000), Names: domain.Names{"Other"}, Distance: "0.5"},
				{ID: fmt.Sprintf("Q%d", i), Names: domain.Names{"Duplicate"}, Distance: "0.75"},
			},
		}
	}
	return items
}
