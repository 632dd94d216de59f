package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knaw-huc/entity-annotator/internal/core/domain"
)

func TestStatisticsService_Summary(t *testing.T) {
	backend := &mockBackend{
		StatisticsFunc: func(context.Context) (domain.Summary, error) {
			return domain.Summary{Done: 30, Todo: 70}, nil
		},
	}

	summary, err := NewStatisticsService(backend).Summary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 30, summary.Done)
	assert.Equal(t, 70, summary.Todo)
	assert.Equal(t, 100, summary.Total())
}

func TestStatisticsService_Summary_Errors(t *testing.T) {
	boom := errors.New("connection reset")
	tests := []struct {
		name    string
		summary domain.Summary
		err     error
		want    error
	}{
		{name: "backend error", err: boom, want: boom},
		{name: "negative done", summary: domain.Summary{Done: -1}, want: domain.ErrInvalidInput},
		{name: "negative todo", summary: domain.Summary{Todo: -2}, want: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &mockBackend{
				StatisticsFunc: func(context.Context) (domain.Summary, error) { return tt.summary, tt.err },
			}

			_, err := NewStatisticsService(backend).Summary(context.Background())

			var sumErr *domain.SummaryError
			require.ErrorAs(t, err, &sumErr)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "could not get statistics")
		})
	}
}

func TestStatisticsService_NilBackend(t *testing.T) {
	_, err := NewStatisticsService(nil).Summary(context.Background())

	assert.Error(t, err)
}
