package services

import (
	"context"

	"github.com/knaw-huc/entity-annotator/internal/core/domain"
	"github.com/knaw-huc/entity-annotator/internal/core/ports/driven"
	"github.com/knaw-huc/entity-annotator/internal/core/ports/driving"
)

// Ensure TermService implements the interface.
var _ driving.TermService = (*TermService)(nil)

// termsList names the top-terms listing in errors.
const termsList = "terms"

// TermService lists terms and their occurrences.
type TermService struct {
	backend driven.Backend
}

// NewTermService creates a new term service.
func NewTermService(backend driven.Backend) *TermService {
	return &TermService{backend: backend}
}

// Terms returns a page of terms by descending frequency.
func (s *TermService) Terms(ctx context.Context, offset, size int) (domain.Page[domain.TermFrequency], error) {
	if err := checkWindow(offset, size); err != nil {
		return domain.Page[domain.TermFrequency]{}, &domain.ListError{List: termsList, Offset: offset, Err: err}
	}
	if s.backend == nil {
		return domain.Page[domain.TermFrequency]{}, &domain.ListError{List: termsList, Offset: offset, Err: errNoBackend}
	}

	page, err := s.backend.Terms(ctx, offset, size)
	if err != nil {
		return domain.Page[domain.TermFrequency]{}, &domain.ListError{List: termsList, Offset: offset, Err: err}
	}
	return page, nil
}

// Occurrences returns a page of the mentions of term.
func (s *TermService) Occurrences(
	ctx context.Context, term string, offset, size int,
) (domain.Page[domain.Occurrence], error) {
	list := "occurrences of " + term
	if term == "" {
		return domain.Page[domain.Occurrence]{}, &domain.ListError{List: list, Offset: offset, Err: domain.ErrInvalidInput}
	}
	if err := checkWindow(offset, size); err != nil {
		return domain.Page[domain.Occurrence]{}, &domain.ListError{List: list, Offset: offset, Err: err}
	}
	if s.backend == nil {
		return domain.Page[domain.Occurrence]{}, &domain.ListError{List: list, Offset: offset, Err: errNoBackend}
	}

	page, err := s.backend.TermOccurrences(ctx, term, offset, size)
	if err != nil {
		return domain.Page[domain.Occurrence]{}, &domain.ListError{List: list, Offset: offset, Err: err}
	}
	return page, nil
}

func checkWindow(offset, size int) error {
	if offset < 0 || size <= 0 {
		return domain.ErrInvalidInput
	}
	return nil
}
