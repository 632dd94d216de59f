// Package terms provides the listing of terms by descending frequency.
package terms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/knaw-huc/entity-annotator/internal/adapters/driving/tui/components/list"
	"github.com/knaw-huc/entity-annotator/internal/adapters/driving/tui/components/pagination"
	"github.com/knaw-huc/entity-annotator/internal/adapters/driving/tui/keymap"
	"github.com/knaw-huc/entity-annotator/internal/adapters/driving/tui/messages"
	"github.com/knaw-huc/entity-annotator/internal/adapters/driving/tui/styles"
	"github.com/knaw-huc/entity-annotator/internal/core/domain"
	"github.com/knaw-huc/entity-annotator/internal/core/ports/driving"
	"github.com/knaw-huc/entity-annotator/internal/core/services"
)

// View lists one page of terms at a time.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	service  driving.TermService
	pageSize int
	ctx      context.Context

	list     *pagination.Model[domain.TermFrequency]
	rows     *list.Rows[domain.TermFrequency]
	keyWidth int

	width  int
	height int
}

// NewView creates a new terms view.
func NewView(s *styles.Styles, service driving.TermService, pageSize int) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	v := &View{
		styles:   s,
		keymap:   keymap.DefaultKeyMap(),
		service:  service,
		pageSize: pageSize,
		ctx:      context.Background(),
		width:    80,
		height:   24,
	}
	v.rows = list.NewRows(s, v.renderRow)
	v.SetDimensions(v.width, v.height)
	v.Reset()
	return v
}

// SetContext sets the context page requests run under.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
	v.list.WithContext(ctx)
}

// Reset returns to the first page.
func (v *View) Reset() {
	fetch := services.PageFetcher[domain.TermFrequency](unavailable)
	if v.service != nil {
		fetch = v.service.Terms
	}
	v.list = pagination.New(v.styles, fetch, v.pageSize).WithContext(v.ctx)
	v.rows.SetItems(nil)
	v.rows.Home()
}

// Init loads the current page.
func (v *View) Init() tea.Cmd {
	return v.list.Load()
}

// Update handles messages for the terms view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.PageLoaded[domain.TermFrequency]:
		handled, cmd := v.list.Handle(msg)
		if handled {
			v.rows.SetItems(v.list.Items())
		}
		return v, cmd

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewHome} }
	case keymap.Matches(k, v.keymap.Up):
		v.rows.MoveUp()
	case keymap.Matches(k, v.keymap.Down):
		v.rows.MoveDown()
	case keymap.Matches(k, v.keymap.Select):
		t, ok := v.rows.SelectedItem()
		if v.list.Loading() || !ok {
			return v, nil
		}
		return v, func() tea.Msg { return messages.TermSelected{Term: t.Key} }
	case keymap.Matches(k, v.keymap.NextPage):
		if cmd := v.list.Next(); cmd != nil {
			v.rows.Home()
			return v, cmd
		}
	case keymap.Matches(k, v.keymap.PrevPage):
		if cmd := v.list.Previous(); cmd != nil {
			v.rows.Home()
			return v, cmd
		}
	case keymap.Matches(k, v.keymap.Reload):
		return v, v.list.Load()
	}
	return v, nil
}

// View renders the terms view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Terms"))
	b.WriteString("\n\n")

	items := v.list.Items()
	switch {
	case v.list.Loading() && len(items) == 0:
		b.WriteString(v.styles.Muted.Render("Loading terms..."))
	case v.list.Err() != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.list.Err().Error())))
	default:
		v.keyWidth = 4
		for _, t := range items {
			v.keyWidth = max(v.keyWidth, len([]rune(t.Key)))
		}
		b.WriteString(v.rows.View("No terms."))
	}

	b.WriteString("\n\n")
	b.WriteString(v.list.View())
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] occurrences  [r] reload  [esc] back"))
	return b.String()
}

func (v *View) renderRow(t domain.TermFrequency, selected bool) string {
	line := fmt.Sprintf("%-*s  %6d", v.keyWidth, t.Key, t.Freq)
	if selected {
		return v.styles.Selected.Render("> " + line)
	}
	return v.styles.Normal.Render("  " + line)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.rows.SetDimensions(width, max(height-8, 1))
}

// Items returns the terms on the current page.
func (v *View) Items() []domain.TermFrequency {
	return v.list.Items()
}

// Page returns the current page.
func (v *View) Page() domain.Page[domain.TermFrequency] {
	return v.list.Page()
}

// Selected returns the highlighted row.
func (v *View) Selected() int {
	return v.rows.Selected()
}

// Busy reports whether a page request is outstanding.
func (v *View) Busy() bool {
	return v.list.Loading()
}

// Err returns the last page failure.
func (v *View) Err() error {
	return v.list.Err()
}

var errNoService = errors.New("term service not configured")

func unavailable(context.Context, int, int) (domain.Page[domain.TermFrequency], error) {
	return domain.Page[domain.TermFrequency]{}, errNoService
}
