package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knaw-huc/entity-annotator/internal/core/domain"
)

func TestCandidateResolver_Resolve_DedupesAndAppendsSentinel(t *testing.T) {
	backend := itemBackend(candidate("a"), candidate("b"), candidate("a"))
	resolver := NewCandidateResolver(backend)

	m, err := resolver.Resolve(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, 5, m.Index)
	assert.Equal(t, []string{"a", "b", domain.SentinelID}, candidateIDs(m.Candidates))
	assert.Equal(t, domain.SentinelCandidate(), m.Candidates[2])
	assert.Equal(t, []int{5}, backend.itemCalls)
}

func TestCandidateResolver_Resolve_EmptyCandidates(t *testing.T) {
	resolver := NewCandidateResolver(itemBackend())

	m, err := resolver.Resolve(context.Background(), 0)

	require.NoError(t, err)
	require.Len(t, m.Candidates, 1)
	assert.True(t, m.Candidates[0].IsSentinel())
}

func TestCandidateResolver_Resolve_FirstOccurrenceWins(t *testing.T) {
	first := domain.Candidate{ID: "x", Names: domain.Names{"first"}, Distance: "0.1"}
	second := domain.Candidate{ID: "x", Names: domain.Names{"second"}, Distance: "0.9"}
	resolver := NewCandidateResolver(itemBackend(candidate("c"), first, candidate("d"), second))

	m, err := resolver.Resolve(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, []string{"c", "x", "d", domain.SentinelID}, candidateIDs(m.Candidates))
	assert.Equal(t, "first", m.Candidates[1].Names.String())
}

func TestCandidateResolver_Resolve_BackendSentinelAppearsOnce(t *testing.T) {
	backendSentinel := domain.Candidate{ID: domain.SentinelID, Names: domain.Names{"other"}}
	resolver := NewCandidateResolver(itemBackend(backendSentinel, candidate("a")))

	m, err := resolver.Resolve(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, []string{"a", domain.SentinelID}, candidateIDs(m.Candidates))
	assert.Equal(t, domain.SentinelCandidate(), m.Candidates[1])
}

func TestCandidateResolver_Resolve_DoesNotMutateBackendMention(t *testing.T) {
	stored := &domain.Mention{Candidates: []domain.Candidate{candidate("a"), candidate("a")}}
	backend := &mockBackend{
		ItemFunc: func(context.Context, int) (*domain.Mention, error) { return stored, nil },
	}

	_, err := NewCandidateResolver(backend).Resolve(context.Background(), 3)

	require.NoError(t, err)
	assert.Len(t, stored.Candidates, 2)
	assert.Zero(t, stored.Index)
}

func TestCandidateResolver_Resolve_WrapsErrors(t *testing.T) {
	boom := errors.New("connection refused")
	backend := &mockBackend{
		ItemFunc: func(context.Context, int) (*domain.Mention, error) { return nil, boom },
	}

	_, err := NewCandidateResolver(backend).Resolve(context.Background(), 7)

	var resErr *domain.ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, 7, resErr.Index)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "could not get item 7")
}

func TestCandidateResolver_Resolve_NilMention(t *testing.T) {
	backend := &mockBackend{
		ItemFunc: func(context.Context, int) (*domain.Mention, error) { return nil, nil },
	}

	_, err := NewCandidateResolver(backend).Resolve(context.Background(), 4)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCandidateResolver_NilBackend(t *testing.T) {
	resolver := NewCandidateResolver(nil)

	_, err := resolver.Resolve(context.Background(), 1)
	assert.Error(t, err)

	_, err = resolver.RandomIndex(context.Background())
	assert.Error(t, err)
}

func TestCandidateResolver_RandomIndex(t *testing.T) {
	backend := &mockBackend{
		RandomIndexFunc: func(context.Context) (int, error) { return 42, nil },
	}

	index, err := NewCandidateResolver(backend).RandomIndex(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 42, index)
}

func TestCandidateResolver_RandomIndex_Errors(t *testing.T) {
	tests := []struct {
		name  string
		index int
		err   error
		want  error
	}{
		{name: "backend error", err: domain.ErrNotFound, want: domain.ErrNotFound},
		{name: "negative index", index: -3, want: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &mockBackend{
				RandomIndexFunc: func(context.Context) (int, error) { return tt.index, tt.err },
			}

			_, err := NewCandidateResolver(backend).RandomIndex(context.Background())

			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "could not get new random index")
		})
	}
}

func TestDedupeCandidates_PreservesOrder(t *testing.T) {
	in := []domain.Candidate{candidate("q3"), candidate("q1"), candidate("q2"), candidate("q1"), candidate("q3")}

	out := DedupeCandidates(in)

	assert.Equal(t, []string{"q3", "q1", "q2"}, candidateIDs(out))
	assert.Len(t, in, 5)
}

func TestWithSentinel_DoesNotAliasInput(t *testing.T) {
	in := make([]domain.Candidate, 1, 4)
	in[0] = candidate("a")

	out := WithSentinel(in)

	assert.Len(t, in, 1)
	assert.Equal(t, []string{"a", domain.SentinelID}, candidateIDs(out))
}
