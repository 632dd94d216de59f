// Package occurrences lists the mentions that resolve to one term.
package occurrences

import (
	"context"
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
)

// View pages through the occurrences of the current term.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	service  driving.TermService
	pageSize int
	ctx      context.Context

	term string
	list *pagination.Model[domain.Occurrence]
	rows *list.Rows[domain.Occurrence]

	width  int
	height int
}

// NewView creates a new occurrences view.
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
	}
	v.rows = list.NewRows(s, v.renderRow)
	v.SetDimensions(80, 24)
	return v
}

// SetContext sets the context page requests run under.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
	if v.list != nil {
		v.list.WithContext(ctx)
	}
}

// SetTerm switches to term starting on its first page and returns the
// command loading it. Results still in flight for the previous term are
// ignored.
func (v *View) SetTerm(term string) tea.Cmd {
	v.term = term
	v.rows.SetItems(nil)
	v.rows.Home()
	v.list = nil
	if v.service == nil {
		return nil
	}
	service := v.service
	v.list = pagination.New(v.styles,
		func(ctx context.Context, offset, size int) (domain.Page[domain.Occurrence], error) {
			return service.Occurrences(ctx, term, offset, size)
		}, v.pageSize).WithContext(v.ctx)
	return v.list.Load()
}

// Term returns the term being listed.
func (v *View) Term() string {
	return v.term
}

// Reload refreshes the current page, keeping the position. Used on return
// from annotating so the annotated marks are current.
func (v *View) Reload() tea.Cmd {
	if v.list == nil {
		return nil
	}
	return v.list.Load()
}

// Update handles messages for the occurrences view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.PageLoaded[domain.Occurrence]:
		if v.list == nil {
			return v, nil
		}
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
	if keymap.Matches(k, v.keymap.Back) {
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewTerms} }
	}
	if v.list == nil {
		return v, nil
	}

	switch {
	case keymap.Matches(k, v.keymap.Up):
		v.rows.MoveUp()
	case keymap.Matches(k, v.keymap.Down):
		v.rows.MoveDown()
	case keymap.Matches(k, v.keymap.Select):
		o, ok := v.rows.SelectedItem()
		if v.list.Loading() || !ok {
			return v, nil
		}
		term := v.term
		return v, func() tea.Msg {
			return messages.OccurrenceSelected{Term: term, Index: o.Index}
		}
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

// View renders the occurrences view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Occurrences of "))
	b.WriteString(v.styles.Mention.Render(v.term))
	b.WriteString("\n\n")

	if v.list == nil {
		b.WriteString(v.styles.Muted.Render("No term selected."))
		b.WriteString("\n")
		return b.String()
	}

	items := v.list.Items()
	switch {
	case v.list.Loading() && len(items) == 0:
		b.WriteString(v.styles.Muted.Render("Loading occurrences..."))
	case v.list.Err() != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.list.Err().Error())))
	default:
		b.WriteString(v.rows.View("No occurrences."))
	}

	b.WriteString("\n\n")
	b.WriteString(v.list.View())
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] annotate  [r] reload  [esc] back"))
	return b.String()
}

func (v *View) renderRow(o domain.Occurrence, selected bool) string {
	mark := " "
	if o.Annotated {
		mark = "✓"
	}
	line := fmt.Sprintf("%s %6d  %s", mark, o.Index, o.Source)
	if o.ControlAccess {
		line += "  " + v.styles.ControlAccess.Render("[control access]")
	}
	if selected {
		return v.styles.Selected.Render("> " + line)
	}
	if o.Annotated {
		return v.styles.Annotated.Render("  " + line)
	}
	return v.styles.Normal.Render("  " + line)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.rows.SetDimensions(width, max(height-8, 1))
}

// Items returns the occurrences on the current page.
func (v *View) Items() []domain.Occurrence {
	if v.list == nil {
		return nil
	}
	return v.list.Items()
}

// Page returns the current page.
func (v *View) Page() domain.Page[domain.Occurrence] {
	if v.list == nil {
		return domain.Page[domain.Occurrence]{}
	}
	return v.list.Page()
}

// Selected returns the highlighted row.
func (v *View) Selected() int {
	return v.rows.Selected()
}

// Busy reports whether a page request is outstanding.
func (v *View) Busy() bool {
	return v.list != nil && v.list.Loading()
}

// Err returns the last page failure.
func (v *View) Err() error {
	if v.list == nil {
		return nil
	}
	return v.list.Err()
}
