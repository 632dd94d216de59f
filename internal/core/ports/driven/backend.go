package driven

import (
	"context"
	"io"

	"github.com/knaw-huc/entity-annotator/internal/core/domain"
)

// Backend is the remote store holding mentions, candidates and decisions.
// Every call is independent; implementations keep no per-call state.
type Backend interface {
	// Statistics returns aggregate done/todo counts.
	Statistics(ctx context.Context) (domain.Summary, error)

	// RandomIndex returns the index of a mention chosen by the backend.
	RandomIndex(ctx context.Context) (int, error)

	// Item returns the mention at index with its candidates as stored,
	// without de-duplication or the sentinel candidate.
	Item(ctx context.Context, index int) (*domain.Mention, error)

	// PutAnswer stores candidateID as the decision for the mention at index.
	PutAnswer(ctx context.Context, index int, candidateID string) error

	// Terms returns a page of terms ordered by descending frequency.
	Terms(ctx context.Context, from, size int) (domain.Page[domain.TermFrequency], error)

	// TermOccurrences returns a page of the mentions grouped under term.
	TermOccurrences(ctx context.Context, term string, from, size int) (domain.Page[domain.Occurrence], error)

	// Dump opens the full export document. The caller must close it.
	Dump(ctx context.Context) (io.ReadCloser, error)

	// Save asks the backend to persist its state to disk.
	Save(ctx context.Context) error
}
