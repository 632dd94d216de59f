package services

import (
	"context"
	"errors"

	"github.com/knaw-huc/entity-annotator/internal/core/domain"
	"github.com/knaw-huc/entity-annotator/internal/core/ports/driven"
	"github.com/knaw-huc/entity-annotator/internal/core/ports/driving"
	"github.com/knaw-huc/entity-annotator/internal/logger"
)

// Ensure CandidateResolver implements the interface.
var _ driving.CandidateResolver = (*CandidateResolver)(nil)

// errNoBackend is returned by services constructed without a backend.
var errNoBackend = errors.New("backend not configured")

// CandidateResolver fetches mentions and prepares their candidate lists.
type CandidateResolver struct {
	backend driven.Backend
}

// NewCandidateResolver creates a new candidate resolver.
func NewCandidateResolver(backend driven.Backend) *CandidateResolver {
	return &CandidateResolver{backend: backend}
}

// Resolve fetches the mention at index and returns it with de-duplicated
// candidates followed by the sentinel.
func (r *CandidateResolver) Resolve(ctx context.Context, index int) (*domain.Mention, error) {
	if r.backend == nil {
		return nil, &domain.ResolutionError{Index: index, Err: errNoBackend}
	}

	m, err := r.backend.Item(ctx, index)
	if err != nil {
		return nil, &domain.ResolutionError{Index: index, Err: err}
	}
	if m == nil {
		return nil, &domain.ResolutionError{Index: index, Err: domain.ErrNotFound}
	}

	resolved := *m
	resolved.Index = index
	resolved.Candidates = WithSentinel(DedupeCandidates(m.Candidates))

	logger.Debug("resolved item %d: %d candidates (%d from backend)",
		index, len(resolved.Candidates), len(m.Candidates))
	return &resolved, nil
}

// RandomIndex asks the backend for a mention to review.
func (r *CandidateResolver) RandomIndex(ctx context.Context) (int, error) {
	if r.backend == nil {
		return 0, &domain.ResolutionError{Index: -1, Err: errNoBackend}
	}

	index, err := r.backend.RandomIndex(ctx)
	if err != nil {
		return 0, &domain.ResolutionError{Index: -1, Err: err}
	}
	if index < 0 {
		return 0, &domain.ResolutionError{Index: -1, Err: domain.ErrInvalidInput}
	}
	return index, nil
}

// DedupeCandidates keeps the first candidate for every id, in order of
// first appearance. Backend entries using the sentinel id are dropped; the
// sentinel is added by WithSentinel only.
func DedupeCandidates(candidates []domain.Candidate) []domain.Candidate {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.IsSentinel() {
			continue
		}
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}

// WithSentinel returns candidates with the sentinel appended.
func WithSentinel(candidates []domain.Candidate) []domain.Candidate {
	out := make([]domain.Candidate, len(candidates), len(candidates)+1)
	copy(out, candidates)
	return append(out, domain.SentinelCandidate())
}
