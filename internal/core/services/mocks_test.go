package services

import (
	"context"
	"io"
	"strings"

	"github.com/knaw-huc/entity-annotator/internal/core/domain"
	"github.com/knaw-huc/entity-annotator/internal/core/ports/driven"
)

// mockBackend implements driven.Backend for testing. Unset functions
// behave as an empty backend.
type mockBackend struct {
	StatisticsFunc      func(ctx context.Context) (domain.Summary, error)
	RandomIndexFunc     func(ctx context.Context) (int, error)
	ItemFunc            func(ctx context.Context, index int) (*domain.Mention, error)
	PutAnswerFunc       func(ctx context.Context, index int, candidateID string) error
	TermsFunc           func(ctx context.Context, from, size int) (domain.Page[domain.TermFrequency], error)
	TermOccurrencesFunc func(ctx context.Context, term string, from, size int) (domain.Page[domain.Occurrence], error)
	DumpFunc            func(ctx context.Context) (io.ReadCloser, error)
	SaveFunc            func(ctx context.Context) error

	randomCalls int
	itemCalls   []int
	putCalls    []domain.Annotation
	saveCalls   int
}

var _ driven.Backend = (*mockBackend)(nil)

func (m *mockBackend) Statistics(ctx context.Context) (domain.Summary, error) {
	if m.StatisticsFunc != nil {
		return m.StatisticsFunc(ctx)
	}
	return domain.Summary{}, nil
}

func (m *mockBackend) RandomIndex(ctx context.Context) (int, error) {
	m.randomCalls++
	if m.RandomIndexFunc != nil {
		return m.RandomIndexFunc(ctx)
	}
	return 0, nil
}

func (m *mockBackend) Item(ctx context.Context, index int) (*domain.Mention, error) {
	m.itemCalls = append(m.itemCalls, index)
	if m.ItemFunc != nil {
		return m.ItemFunc(ctx, index)
	}
	return nil, domain.ErrNotFound
}

func (m *mockBackend) PutAnswer(ctx context.Context, index int, candidateID string) error {
	m.putCalls = append(m.putCalls, domain.Annotation{MentionIndex: index, CandidateID: candidateID})
	if m.PutAnswerFunc != nil {
		return m.PutAnswerFunc(ctx, index, candidateID)
	}
	return nil
}

func (m *mockBackend) Terms(ctx context.Context, from, size int) (domain.Page[domain.TermFrequency], error) {
	if m.TermsFunc != nil {
		return m.TermsFunc(ctx, from, size)
	}
	return domain.Page[domain.TermFrequency]{}, nil
}

func (m *mockBackend) TermOccurrences(
	ctx context.Context, term string, from, size int,
) (domain.Page[domain.Occurrence], error) {
	if m.TermOccurrencesFunc != nil {
		return m.TermOccurrencesFunc(ctx, term, from, size)
	}
	return domain.Page[domain.Occurrence]{}, nil
}

func (m *mockBackend) Dump(ctx context.Context) (io.ReadCloser, error) {
	if m.DumpFunc != nil {
		return m.DumpFunc(ctx)
	}
	return io.NopCloser(strings.NewReader("")), nil
}

func (m *mockBackend) Save(ctx context.Context) error {
	m.saveCalls++
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx)
	}
	return nil
}

func candidate(id string) domain.Candidate {
	return domain.Candidate{ID: id, Names: domain.Names{"name of " + id}, Distance: "0.5"}
}

func candidateIDs(cs []domain.Candidate) []string {
	ids := make([]string, len(cs))
	for i, c := range cs {
		ids[i] = c.ID
	}
	return ids
}

// itemBackend serves a fixed mention for every index.
func itemBackend(candidates ...domain.Candidate) *mockBackend {
	return &mockBackend{
		ItemFunc: func(_ context.Context, index int) (*domain.Mention, error) {
			return &domain.Mention{
				ContextID:  "ctx-1",
				Input:      "Amsterdam",
				Candidates: candidates,
			}, nil
		},
	}
}
