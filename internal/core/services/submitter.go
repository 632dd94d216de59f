package services

import (
	"context"

	"github.com/knaw-huc/entity-annotator/internal/core/domain"
	"github.com/knaw-huc/entity-annotator/internal/core/ports/driven"
	"github.com/knaw-huc/entity-annotator/internal/core/ports/driving"
	"github.com/knaw-huc/entity-annotator/internal/logger"
)

// Ensure AnnotationSubmitter implements the interface.
var _ driving.AnnotationSubmitter = (*AnnotationSubmitter)(nil)

// AnnotationSubmitter stores decisions in the backend.
type AnnotationSubmitter struct {
	backend driven.Backend
}

// NewAnnotationSubmitter creates a new annotation submitter.
func NewAnnotationSubmitter(backend driven.Backend) *AnnotationSubmitter {
	return &AnnotationSubmitter{backend: backend}
}

// Submit stores candidateID for the mention at index.
func (s *AnnotationSubmitter) Submit(ctx context.Context, index int, candidateID string) error {
	if candidateID == "" {
		return domain.ErrNoDecision
	}
	if s.backend == nil {
		return &domain.SubmissionError{Index: index, CandidateID: candidateID, Err: errNoBackend}
	}

	if err := s.backend.PutAnswer(ctx, index, candidateID); err != nil {
		logger.Warn("submit item %d failed: %v", index, err)
		return &domain.SubmissionError{Index: index, CandidateID: candidateID, Err: err}
	}

	logger.Debug("submitted item %d = %q", index, candidateID)
	return nil
}
