package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knaw-huc/entity-annotator/internal/core/domain"
)

func TestTermService_Terms(t *testing.T) {
	var gotFrom, gotSize int
	backend := &mockBackend{
		TermsFunc: func(_ context.Context, from, size int) (domain.Page[domain.TermFrequency], error) {
			gotFrom, gotSize = from, size
			return domain.Page[domain.TermFrequency]{
				Total: 2,
				Items: []domain.TermFrequency{{Key: "Amsterdam", Freq: 12}, {Key: "Leiden", Freq: 3}},
			}, nil
		},
	}

	page, err := NewTermService(backend).Terms(context.Background(), 10, 5)

	require.NoError(t, err)
	assert.Equal(t, 10, gotFrom)
	assert.Equal(t, 5, gotSize)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, "Amsterdam", page.Items[0].Key)
}

func TestTermService_Occurrences(t *testing.T) {
	var gotTerm string
	backend := &mockBackend{
		TermOccurrencesFunc: func(_ context.Context, term string, _, _ int) (domain.Page[domain.Occurrence], error) {
			gotTerm = term
			return domain.Page[domain.Occurrence]{
				Total: 1,
				Items: []domain.Occurrence{{Index: 4, Source: "a letter", ControlAccess: true}},
			}, nil
		},
	}

	page, err := NewTermService(backend).Occurrences(context.Background(), "Den Haag", 0, 10)

	require.NoError(t, err)
	assert.Equal(t, "Den Haag", gotTerm)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 4, page.Items[0].Index)
}

func TestTermService_InvalidWindow(t *testing.T) {
	svc := NewTermService(&mockBackend{})
	ctx := context.Background()

	_, err := svc.Terms(ctx, -1, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Terms(ctx, 0, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Occurrences(ctx, "x", 0, -5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Occurrences(ctx, "", 0, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTermService_WrapsErrors(t *testing.T) {
	boom := errors.New("bad gateway")
	backend := &mockBackend{
		TermsFunc: func(context.Context, int, int) (domain.Page[domain.TermFrequency], error) {
			return domain.Page[domain.TermFrequency]{}, boom
		},
		TermOccurrencesFunc: func(context.Context, string, int, int) (domain.Page[domain.Occurrence], error) {
			return domain.Page[domain.Occurrence]{}, boom
		},
	}
	svc := NewTermService(backend)

	_, err := svc.Terms(context.Background(), 20, 10)
	var listErr *domain.ListError
	require.ErrorAs(t, err, &listErr)
	assert.Equal(t, "terms", listErr.List)
	assert.Equal(t, 20, listErr.Offset)
	assert.ErrorIs(t, err, boom)

	_, err = svc.Occurrences(context.Background(), "Utrecht", 0, 10)
	require.ErrorAs(t, err, &listErr)
	assert.Equal(t, "occurrences of Utrecht", listErr.List)
}

func TestTermService_FeedsPager(t *testing.T) {
	backend := &mockBackend{
		TermsFunc: func(_ context.Context, from, _ int) (domain.Page[domain.TermFrequency], error) {
			return domain.Page[domain.TermFrequency]{
				Total: 25,
				Items: []domain.TermFrequency{{Key: "t", Freq: from}},
			}, nil
		},
	}
	pager := NewPager(NewTermService(backend).Terms, 10)

	require.NoError(t, pager.Load(context.Background()))
	_, err := pager.Next(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 10, pager.Items()[0].Freq)
	assert.Equal(t, 3, pager.LastPage())
}
