// Package tui provides the interactive terminal interface of the annotator.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/knaw-huc/entity-annotator/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Resolver loads mentions with their de-duplicated candidates.
	Resolver driving.CandidateResolver

	// Submitter records decisions.
	Submitter driving.AnnotationSubmitter

	// Terms lists terms and their occurrences.
	Terms driving.TermService

	// Statistics reports annotation progress.
	Statistics driving.StatisticsService

	// Export dumps and persists annotations. Optional.
	Export driving.ExportService
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(
	resolver driving.CandidateResolver,
	submitter driving.AnnotationSubmitter,
	terms driving.TermService,
	statistics driving.StatisticsService,
) *Ports {
	return &Ports{
		Resolver:   resolver,
		Submitter:  submitter,
		Terms:      terms,
		Statistics: statistics,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Resolver == nil {
		return ErrMissingResolver
	}
	if p.Submitter == nil {
		return ErrMissingSubmitter
	}
	if p.Terms == nil {
		return ErrMissingTermService
	}
	if p.Statistics == nil {
		return ErrMissingStatistics
	}
	return nil
}
