package services

import (
	"context"

	"github.com/knaw-huc/entity-annotator/internal/core/domain"
	"github.com/knaw-huc/entity-annotator/internal/core/ports/driven"
	"github.com/knaw-huc/entity-annotator/internal/core/ports/driving"
)

// Ensure StatisticsService implements the interface.
var _ driving.StatisticsService = (*StatisticsService)(nil)

// StatisticsService reports annotation progress.
type StatisticsService struct {
	backend driven.Backend
}

// NewStatisticsService creates a new statistics service.
func NewStatisticsService(backend driven.Backend) *StatisticsService {
	return &StatisticsService{backend: backend}
}

// Summary returns done/todo counts.
func (s *StatisticsService) Summary(ctx context.Context) (domain.Summary, error) {
	if s.backend == nil {
		return domain.Summary{}, &domain.SummaryError{Err: errNoBackend}
	}

	summary, err := s.backend.Statistics(ctx)
	if err != nil {
		return domain.Summary{}, &domain.SummaryError{Err: err}
	}
	if summary.Done < 0 || summary.Todo < 0 {
		return domain.Summary{}, &domain.SummaryError{Err: domain.ErrInvalidInput}
	}
	return summary, nil
}
