package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoDecision indicates a submission was attempted without a chosen candidate.
	ErrNoDecision = errors.New("no candidate chosen")

	// ErrUnknownCandidate indicates a decision names a candidate the mention does not offer.
	ErrUnknownCandidate = errors.New("unknown candidate")

	// ErrRequestInFlight indicates a session already has an outstanding request.
	ErrRequestInFlight = errors.New("request in flight")

	// ErrInvalidState indicates an operation is not allowed in the current session state.
	ErrInvalidState = errors.New("invalid session state")

	// ErrCapabilityDisabled indicates the backend store does not offer the requested capability.
	ErrCapabilityDisabled = errors.New("capability disabled")
)

// ResolutionError reports that a mention could not be fetched or decoded.
type ResolutionError struct {
	Index int
	Err   error
}

func (e *ResolutionError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("could not get new random index: %v", e.Err)
	}
	return fmt.Sprintf("could not get item %d: %v", e.Index, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// SubmissionError reports that a decision could not be stored.
type SubmissionError struct {
	Index       int
	CandidateID string
	Err         error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("could not save annotation %q for item %d: %v", e.CandidateID, e.Index, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// ListError reports that a listing page could not be fetched.
type ListError struct {
	// List names the listing, e.g. "terms" or a term identifier.
	List   string
	Offset int
	Err    error
}

func (e *ListError) Error() string {
	return fmt.Sprintf("could not get %s (from %d): %v", e.List, e.Offset, e.Err)
}

func (e *ListError) Unwrap() error { return e.Err }

// SummaryError reports that aggregate statistics could not be fetched.
type SummaryError struct {
	Err error
}

func (e *SummaryError) Error() string {
	return fmt.Sprintf("could not get statistics: %v", e.Err)
}

func (e *SummaryError) Unwrap() error { return e.Err }
