package driving

import (
	"context"

	"github.com/knaw-huc/entity-annotator/internal/core/domain"
)

// CandidateResolver fetches a mention ready for display.
type CandidateResolver interface {
	// Resolve fetches the mention at index, de-duplicates its candidates by
	// id and appends the sentinel candidate as the last entry.
	// Failures are *domain.ResolutionError.
	Resolve(ctx context.Context, index int) (*domain.Mention, error)

	// RandomIndex asks the backend for a mention to review.
	RandomIndex(ctx context.Context) (int, error)
}

// AnnotationSubmitter stores decisions.
type AnnotationSubmitter interface {
	// Submit stores candidateID for the mention at index. An empty
	// candidateID is rejected with domain.ErrNoDecision before any network
	// call. Failures are *domain.SubmissionError; nothing is retried.
	Submit(ctx context.Context, index int, candidateID string) error
}
