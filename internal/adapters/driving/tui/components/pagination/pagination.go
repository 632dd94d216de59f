// Package pagination drives a server-side listing from the TUI: it issues
// page requests as commands and installs their results.
package pagination

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/knaw-huc/entity-annotator/internal/adapters/driving/tui/messages"
	"github.com/knaw-huc/entity-annotator/internal/adapters/driving/tui/styles"
	"github.com/knaw-huc/entity-annotator/internal/core/domain"
	"github.com/knaw-huc/entity-annotator/internal/core/services"
)

// Model wraps a services.Pager. At most one page request is outstanding;
// navigation while loading is ignored.
type Model[T any] struct {
	styles  *styles.Styles
	ctx     context.Context
	owner   uuid.UUID
	pager   *services.Pager[T]
	seq     uint64
	loading bool
	err     error
}

// New creates a pagination model over fetch.
func New[T any](s *styles.Styles, fetch services.PageFetcher[T], size int) *Model[T] {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Model[T]{
		styles: s,
		ctx:    context.Background(),
		owner:  uuid.New(),
		pager:  services.NewPager(fetch, size),
	}
}

// WithContext sets the context page requests run under.
func (m *Model[T]) WithContext(ctx context.Context) *Model[T] {
	m.ctx = ctx
	return m
}

// Load requests the page at the current offset.
func (m *Model[T]) Load() tea.Cmd {
	if m.loading {
		return nil
	}
	return m.request(m.pager.Offset())
}

// Next requests the following page; nil on the last page or while loading.
func (m *Model[T]) Next() tea.Cmd {
	if m.loading {
		return nil
	}
	offset, ok := m.pager.PlanNext()
	if !ok {
		return nil
	}
	return m.request(offset)
}

// Previous requests the preceding page; nil on the first page or while loading.
func (m *Model[T]) Previous() tea.Cmd {
	if m.loading {
		return nil
	}
	offset, ok := m.pager.PlanPrevious()
	if !ok {
		return nil
	}
	return m.request(offset)
}

func (m *Model[T]) request(offset int) tea.Cmd {
	m.seq++
	m.loading = true
	ctx, owner, seq, pager := m.ctx, m.owner, m.seq, m.pager
	return func() tea.Msg {
		page, err := pager.Fetch(ctx, offset)
		return messages.PageLoaded[T]{Owner: owner, Seq: seq, Page: page, Err: err}
	}
}

// Handle installs msg if it answers the outstanding request and reports
// whether it did. The returned command re-fetches when the listing shrank
// below the requested page.
func (m *Model[T]) Handle(msg messages.PageLoaded[T]) (bool, tea.Cmd) {
	if !m.loading || msg.Owner != m.owner || msg.Seq != m.seq {
		return false, nil
	}
	m.loading = false
	if msg.Err != nil {
		m.err = msg.Err
		return true, nil
	}
	m.err = nil
	if m.pager.Apply(msg.Page) {
		return true, m.request(m.pager.Offset())
	}
	return true, nil
}

// Items returns the rows of the current page.
func (m *Model[T]) Items() []T { return m.pager.Items() }

// Page returns the current page.
func (m *Model[T]) Page() domain.Page[T] { return m.pager.Page() }

// Loading reports whether a request is outstanding.
func (m *Model[T]) Loading() bool { return m.loading }

// Err returns the last fetch failure.
func (m *Model[T]) Err() error { return m.err }

// View renders the page indicator with previous/next controls, disabled
// at the boundaries.
func (m *Model[T]) View() string {
	prev := m.styles.Help.Render("[←] previous")
	if !m.pager.HasPrevious() || m.loading {
		prev = m.styles.Disabled.Render("[←] previous")
	}
	next := m.styles.Help.Render("[→] next")
	if !m.pager.HasNext() || m.loading {
		next = m.styles.Disabled.Render("[→] next")
	}

	page := fmt.Sprintf("Page %d of %d (%d total)",
		m.pager.CurrentPage(), m.pager.LastPage(), m.pager.Total())
	return strings.Join([]string{prev, m.styles.Muted.Render(page), next}, "  ")
}
