// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/google/uuid"

	"github.com/knaw-huc/entity-annotator/internal/core/domain"
	"github.com/knaw-huc/entity-annotator/internal/core/services"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewHome shows progress and the main menu.
	ViewHome ViewType = iota
	// ViewAnnotate reviews one mention at a time.
	ViewAnnotate
	// ViewTerms lists terms by frequency.
	ViewTerms
	// ViewOccurrences lists the mentions of one term.
	ViewOccurrences
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewHome:
		return "home"
	case ViewAnnotate:
		return "annotate"
	case ViewTerms:
		return "terms"
	case ViewOccurrences:
		return "occurrences"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// Quit signals the application should exit.
type Quit struct{}

// SummaryLoaded carries the annotation progress. Seq matches the home
// screen's request counter.
type SummaryLoaded struct {
	Seq     uint64
	Summary domain.Summary
	Err     error
}

// RandomReviewRequested starts a random-order annotation session.
type RandomReviewRequested struct{}

// TermSelected opens the occurrence listing of a term.
type TermSelected struct {
	Term string
}

// OccurrenceSelected opens one mention of a term for annotation.
type OccurrenceSelected struct {
	Term  string
	Index int
}

// ReturnedToTerm is sent when a term-scoped session ends.
type ReturnedToTerm struct {
	Term string
}

// MentionResolved carries the outcome of a navigator's resolve request.
type MentionResolved struct {
	Result services.ResolveResult
}

// DecisionSubmitted carries the outcome of a navigator's submit request.
type DecisionSubmitted struct {
	Result services.SubmitResult
}

// PageLoaded carries one page of a listing. Owner identifies the listing
// instance that requested it.
type PageLoaded[T any] struct {
	Owner uuid.UUID
	Seq   uint64
	Page  domain.Page[T]
	Err   error
}

// ExportCompleted signals a dump was written.
type ExportCompleted struct {
	Path  string
	Bytes int64
	Err   error
}

// SaveCompleted signals the backend persisted its state.
type SaveCompleted struct {
	Err error
}
