package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/knaw-huc/entity-annotator/internal/core/domain"
	"github.com/knaw-huc/entity-annotator/internal/core/ports/driving"
	"github.com/knaw-huc/entity-annotator/internal/logger"
)

// Mode selects how a Navigator picks mentions.
type Mode int

const (
	// ModeRandom reviews backend-chosen mentions until the user leaves.
	ModeRandom Mode = iota
	// ModeTerm reviews one mention picked from a term's occurrence listing.
	ModeTerm
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeRandom:
		return "random"
	case ModeTerm:
		return "term"
	default:
		return "unknown"
	}
}

// Ticket identifies one request issued by a Navigator. Results carrying a
// ticket that is not the navigator's outstanding one are discarded.
type Ticket struct {
	Session uuid.UUID
	Seq     uint64
}

// AdvanceKind says where a session goes after a decision or skip.
type AdvanceKind int

const (
	// AdvanceNone keeps the current mention on screen.
	AdvanceNone AdvanceKind = iota
	// AdvanceReload resolves a new mention in the same session.
	AdvanceReload
	// AdvanceReturn leaves the session for the term's occurrence listing.
	AdvanceReturn
)

// Advance is the navigation that follows a decision or skip.
type Advance struct {
	Kind AdvanceKind
	Term string
}

// ResolveResult is the outcome of a resolve request.
type ResolveResult struct {
	Ticket  Ticket
	Mention *domain.Mention
	Err     error
}

// SubmitResult is the outcome of a submit request.
type SubmitResult struct {
	Ticket     Ticket
	Annotation domain.Annotation
	Err        error
}

// Navigator drives one annotation screen through
// Loading -> Ready -> (submit|skip) -> Loading or back to the listing.
// It allows at most one outstanding request and is not safe for
// concurrent use; Resolve and Submit only read immutable fields and may
// run on another goroutine.
type Navigator struct {
	id        uuid.UUID
	mode      Mode
	term      string
	item      int
	resolver  driving.CandidateResolver
	submitter driving.AnnotationSubmitter

	state   domain.SessionState
	notice  string
	seq     uint64
	pending *Ticket
	closed  bool
}

// NewRandomNavigator creates a navigator for random-order review.
func NewRandomNavigator(resolver driving.CandidateResolver, submitter driving.AnnotationSubmitter) *Navigator {
	return newNavigator(ModeRandom, "", -1, resolver, submitter)
}

// NewTermNavigator creates a navigator for the mention at item, reached
// from the occurrence listing of term.
func NewTermNavigator(
	resolver driving.CandidateResolver,
	submitter driving.AnnotationSubmitter,
	term string,
	item int,
) *Navigator {
	return newNavigator(ModeTerm, term, item, resolver, submitter)
}

func newNavigator(
	mode Mode, term string, item int,
	resolver driving.CandidateResolver, submitter driving.AnnotationSubmitter,
) *Navigator {
	return &Navigator{
		id:        uuid.New(),
		mode:      mode,
		term:      term,
		item:      item,
		resolver:  resolver,
		submitter: submitter,
		state:     domain.Loading(),
	}
}

// ID returns the session identity.
func (n *Navigator) ID() uuid.UUID { return n.id }

// Mode returns the review mode.
func (n *Navigator) Mode() Mode { return n.mode }

// Term returns the originating term in ModeTerm.
func (n *Navigator) Term() string { return n.term }

// Item returns the mention index a ModeTerm session reviews, -1 in ModeRandom.
func (n *Navigator) Item() int { return n.item }

// State returns the current state.
func (n *Navigator) State() domain.SessionState { return n.state }

// Notice returns the last submission failure, "" if none.
func (n *Navigator) Notice() string { return n.notice }

// DismissNotice clears the submission failure notice.
func (n *Navigator) DismissNotice() { n.notice = "" }

// Pending reports whether a request is outstanding.
func (n *Navigator) Pending() bool { return n.pending != nil }

// Closed reports whether the session has been left.
func (n *Navigator) Closed() bool { return n.closed }

// Close marks the session as left. Results still in flight are discarded.
func (n *Navigator) Close() {
	n.closed = true
	n.pending = nil
}

// Owns reports whether t is this session's outstanding request.
func (n *Navigator) Owns(t Ticket) bool {
	return !n.closed && n.pending != nil && *n.pending == t
}

func (n *Navigator) issue() Ticket {
	n.seq++
	t := Ticket{Session: n.id, Seq: n.seq}
	n.pending = &t
	return t
}

// Begin starts resolving a mention and returns the request's ticket.
func (n *Navigator) Begin() (Ticket, error) {
	switch {
	case n.closed:
		return Ticket{}, domain.ErrInvalidState
	case n.pending != nil:
		return Ticket{}, domain.ErrRequestInFlight
	case n.state.Kind != domain.StateLoading:
		return Ticket{}, fmt.Errorf("begin in %s: %w", n.state.Kind, domain.ErrInvalidState)
	}
	return n.issue(), nil
}

// Resolve performs the request reserved by Begin.
func (n *Navigator) Resolve(ctx context.Context, t Ticket) ResolveResult {
	index := n.item
	if n.mode == ModeRandom {
		var err error
		index, err = n.resolver.RandomIndex(ctx)
		if err != nil {
			return ResolveResult{Ticket: t, Err: err}
		}
	}
	m, err := n.resolver.Resolve(ctx, index)
	return ResolveResult{Ticket: t, Mention: m, Err: err}
}

// ApplyResolve installs a resolve result. It returns false and changes
// nothing when the result does not belong to the outstanding request.
func (n *Navigator) ApplyResolve(r ResolveResult) bool {
	if !n.Owns(r.Ticket) {
		logger.Debug("session %s: discarding stale resolve #%d", n.id, r.Ticket.Seq)
		return false
	}
	n.pending = nil
	if r.Err != nil {
		n.state = domain.Failed(r.Err.Error())
		return true
	}
	n.state = domain.Ready(r.Mention, "")
	n.notice = ""
	return true
}

// Choose records id as the decision for the current mention.
func (n *Navigator) Choose(id string) error {
	if n.state.Kind != domain.StateReady {
		return fmt.Errorf("choose in %s: %w", n.state.Kind, domain.ErrInvalidState)
	}
	if n.pending != nil {
		return domain.ErrRequestInFlight
	}
	if _, ok := n.state.Mention.Candidate(id); !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownCandidate, id)
	}
	n.state = domain.Ready(n.state.Mention, id)
	return nil
}

// BeginSubmit reserves a request storing the current decision.
func (n *Navigator) BeginSubmit() (Ticket, domain.Annotation, error) {
	switch {
	case n.closed:
		return Ticket{}, domain.Annotation{}, domain.ErrInvalidState
	case n.state.Kind != domain.StateReady:
		return Ticket{}, domain.Annotation{}, fmt.Errorf("submit in %s: %w", n.state.Kind, domain.ErrInvalidState)
	case !n.state.HasDecision():
		return Ticket{}, domain.Annotation{}, domain.ErrNoDecision
	case n.pending != nil:
		return Ticket{}, domain.Annotation{}, domain.ErrRequestInFlight
	}
	n.notice = ""
	a := domain.Annotation{MentionIndex: n.state.Mention.Index, CandidateID: n.state.Decision}
	return n.issue(), a, nil
}

// Submit performs the request reserved by BeginSubmit.
func (n *Navigator) Submit(ctx context.Context, t Ticket, a domain.Annotation) SubmitResult {
	err := n.submitter.Submit(ctx, a.MentionIndex, a.CandidateID)
	return SubmitResult{Ticket: t, Annotation: a, Err: err}
}

// ApplySubmit installs a submit result. On failure the mention and
// decision stay on screen with a notice. The second return value is false
// when the result does not belong to the outstanding request.
func (n *Navigator) ApplySubmit(r SubmitResult) (Advance, bool) {
	if !n.Owns(r.Ticket) {
		logger.Debug("session %s: discarding stale submit #%d", n.id, r.Ticket.Seq)
		return Advance{}, false
	}
	n.pending = nil
	if r.Err != nil {
		n.notice = r.Err.Error()
		return Advance{Kind: AdvanceNone}, true
	}
	return n.advance(), true
}

// Skip leaves the current mention without storing a decision.
func (n *Navigator) Skip() (Advance, error) {
	if n.state.Kind != domain.StateReady {
		return Advance{}, fmt.Errorf("skip in %s: %w", n.state.Kind, domain.ErrInvalidState)
	}
	if n.pending != nil {
		return Advance{}, domain.ErrRequestInFlight
	}
	return n.advance(), nil
}

func (n *Navigator) advance() Advance {
	n.notice = ""
	if n.mode == ModeRandom {
		n.state = domain.Loading()
		return Advance{Kind: AdvanceReload}
	}
	n.state = domain.Idle()
	n.closed = true
	return Advance{Kind: AdvanceReturn, Term: n.term}
}

// Load resolves a mention synchronously.
func (n *Navigator) Load(ctx context.Context) error {
	t, err := n.Begin()
	if err != nil {
		return err
	}
	r := n.Resolve(ctx, t)
	n.ApplyResolve(r)
	return r.Err
}

// Decide chooses id and submits it synchronously.
func (n *Navigator) Decide(ctx context.Context, id string) (Advance, error) {
	if err := n.Choose(id); err != nil {
		return Advance{}, err
	}
	t, a, err := n.BeginSubmit()
	if err != nil {
		return Advance{}, err
	}
	r := n.Submit(ctx, t, a)
	adv, _ := n.ApplySubmit(r)
	return adv, r.Err
}
