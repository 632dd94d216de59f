package driving

import (
	"context"

	"github.com/knaw-huc/entity-annotator/internal/core/domain"
)

// TermService lists terms and the mentions grouped under them.
type TermService interface {
	// Terms returns a page of terms by descending frequency.
	Terms(ctx context.Context, offset, size int) (domain.Page[domain.TermFrequency], error)

	// Occurrences returns a page of the mentions of term.
	Occurrences(ctx context.Context, term string, offset, size int) (domain.Page[domain.Occurrence], error)
}

// StatisticsService reports annotation progress.
type StatisticsService interface {
	// Summary returns done/todo counts. Failures are *domain.SummaryError.
	Summary(ctx context.Context) (domain.Summary, error)
}
