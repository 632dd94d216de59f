// Package annotate provides the view that reviews one mention at a time.
package annotate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/knaw-huc/entity-annotator/internal/adapters/driving/tui/keymap"
	"github.com/knaw-huc/entity-annotator/internal/adapters/driving/tui/messages"
	"github.com/knaw-huc/entity-annotator/internal/adapters/driving/tui/styles"
	"github.com/knaw-huc/entity-annotator/internal/core/domain"
	"github.com/knaw-huc/entity-annotator/internal/core/ports/driving"
	"github.com/knaw-huc/entity-annotator/internal/core/services"
	"github.com/knaw-huc/entity-annotator/internal/logger"
)

// View shows the mention of the active session with its candidates as a
// single-choice list.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	resolver  driving.CandidateResolver
	submitter driving.AnnotationSubmitter
	ctx       context.Context

	nav     *services.Navigator
	spinner spinner.Model
	cursor  int

	width  int
	height int
}

// NewView creates a new annotation view.
func NewView(
	s *styles.Styles,
	resolver driving.CandidateResolver,
	submitter driving.AnnotationSubmitter,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = s.Subtitle

	return &View{
		styles:    s,
		keymap:    keymap.DefaultKeyMap(),
		resolver:  resolver,
		submitter: submitter,
		ctx:       context.Background(),
		spinner:   spin,
		width:     80,
		height:    24,
	}
}

// SetContext sets the context backend calls run under.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// StartRandom opens a random-order session, closing any previous one.
func (v *View) StartRandom() tea.Cmd {
	return v.start(services.NewRandomNavigator(v.resolver, v.submitter))
}

// StartTerm opens a session for the mention at index, reached from the
// occurrence listing of term.
func (v *View) StartTerm(term string, index int) tea.Cmd {
	return v.start(services.NewTermNavigator(v.resolver, v.submitter, term, index))
}

func (v *View) start(nav *services.Navigator) tea.Cmd {
	if v.nav != nil {
		v.nav.Close()
	}
	v.nav = nav
	v.cursor = 0
	logger.Debug("session %s: start %s review", nav.ID(), nav.Mode())
	return tea.Batch(v.spinner.Tick, v.resolve())
}

// Close leaves the active session. Results still in flight are dropped.
func (v *View) Close() {
	if v.nav != nil {
		v.nav.Close()
	}
}

func (v *View) resolve() tea.Cmd {
	ctx, nav := v.ctx, v.nav
	t, err := nav.Begin()
	if err != nil {
		logger.Debug("session %s: resolve not started: %v", nav.ID(), err)
		return nil
	}
	return func() tea.Msg {
		return messages.MentionResolved{Result: nav.Resolve(ctx, t)}
	}
}

func (v *View) submit() tea.Cmd {
	ctx, nav := v.ctx, v.nav
	t, a, err := nav.BeginSubmit()
	if err != nil {
		logger.Debug("session %s: submit not started: %v", nav.ID(), err)
		return nil
	}
	return tea.Batch(v.spinner.Tick, func() tea.Msg {
		return messages.DecisionSubmitted{Result: nav.Submit(ctx, t, a)}
	})
}

// Update handles messages for the annotation view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case spinner.TickMsg:
		if !v.Busy() {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case messages.MentionResolved:
		if !v.addressed(msg.Result.Ticket) {
			return v, nil
		}
		if v.nav.ApplyResolve(msg.Result) {
			v.cursor = 0
		}
		return v, nil

	case messages.DecisionSubmitted:
		if !v.addressed(msg.Result.Ticket) {
			return v, nil
		}
		adv, ok := v.nav.ApplySubmit(msg.Result)
		if !ok {
			return v, nil
		}
		return v, v.follow(adv)

	case tea.KeyMsg:
		if v.nav == nil {
			return v, nil
		}
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// addressed reports whether a result belongs to the session on screen.
func (v *View) addressed(t services.Ticket) bool {
	if v.nav == nil || t.Session != v.nav.ID() {
		logger.Debug("dropping result for inactive session %s", t.Session)
		return false
	}
	return true
}

func (v *View) follow(adv services.Advance) tea.Cmd {
	switch adv.Kind {
	case services.AdvanceReload:
		v.cursor = 0
		return tea.Batch(v.spinner.Tick, v.resolve())
	case services.AdvanceReturn:
		term := adv.Term
		return func() tea.Msg { return messages.ReturnedToTerm{Term: term} }
	case services.AdvanceNone:
	}
	return nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	if v.nav == nil {
		if keymap.Matches(k, v.keymap.Back) {
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewHome} }
		}
		return v, nil
	}
	if keymap.Matches(k, v.keymap.Back) {
		return v, v.leave()
	}

	state := v.nav.State()
	if state.Kind == domain.StateError {
		if keymap.Matches(k, v.keymap.Reload) {
			return v, v.restart()
		}
		return v, nil
	}
	if state.Kind != domain.StateReady || v.nav.Pending() {
		return v, nil
	}

	candidates := state.Mention.Candidates
	switch {
	case keymap.Matches(k, v.keymap.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.cursor < len(candidates)-1 {
			v.cursor++
		}
	case keymap.Matches(k, v.keymap.Choose):
		if v.cursor < len(candidates) {
			if err := v.nav.Choose(candidates[v.cursor].ID); err != nil {
				logger.Warn("choose: %v", err)
			}
		}
	case keymap.Matches(k, v.keymap.Save):
		return v, v.submit()
	case keymap.Matches(k, v.keymap.Skip):
		adv, err := v.nav.Skip()
		if err != nil {
			logger.Warn("skip: %v", err)
			return v, nil
		}
		return v, v.follow(adv)
	case keymap.Matches(k, v.keymap.Dismiss):
		v.nav.DismissNotice()
	}
	return v, nil
}

func (v *View) leave() tea.Cmd {
	nav := v.nav
	nav.Close()
	if nav.Mode() == services.ModeTerm {
		term := nav.Term()
		return func() tea.Msg { return messages.ReturnedToTerm{Term: term} }
	}
	return func() tea.Msg { return messages.ViewChanged{View: messages.ViewHome} }
}

func (v *View) restart() tea.Cmd {
	if v.nav.Mode() == services.ModeTerm {
		return v.StartTerm(v.nav.Term(), v.nav.Item())
	}
	return v.StartRandom()
}

// View renders the annotation view.
func (v *View) View() string {
	var b strings.Builder

	title := "Annotate random mentions"
	if v.nav != nil && v.nav.Mode() == services.ModeTerm {
		title = fmt.Sprintf("Annotate: %s", v.nav.Term())
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	if v.nav == nil {
		b.WriteString(v.styles.Muted.Render("No mention selected."))
		return b.String()
	}

	state := v.nav.State()
	switch state.Kind {
	case domain.StateLoading:
		b.WriteString(v.spinner.View() + " " + v.styles.Muted.Render("Loading mention..."))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[esc] back"))
	case domain.StateError:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", state.Message)))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[r] retry  [esc] back"))
	case domain.StateIdle:
		b.WriteString(v.styles.Muted.Render("Session closed."))
	case domain.StateReady:
		b.WriteString(v.renderMention(state))
	}
	return b.String()
}

func (v *View) renderMention(state domain.SessionState) string {
	var b strings.Builder
	m := state.Mention

	b.WriteString(v.styles.Mention.Render(m.Input))
	b.WriteString("  ")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("item %d from %s", m.Index, m.ContextID)))
	if m.ControlAccess {
		b.WriteString("  ")
		b.WriteString(v.styles.ControlAccess.Render("[control access]"))
	}
	b.WriteString("\n")
	if m.Annotated() {
		b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Already annotated as %q", m.Golden)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, c := range m.Candidates {
		chosen := c.ID == state.Decision
		radio := "( )"
		if chosen {
			radio = "(•)"
		}
		names := v.styles.Candidate(c.IsSentinel(), chosen).Render(c.Names.String())
		line := fmt.Sprintf("%s %s  %s", radio, names, v.styles.Muted.Render(c.ID+"  distance "+c.Distance.String()))
		if i == v.cursor {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if notice := v.nav.Notice(); notice != "" {
		b.WriteString(v.styles.Notice.Render(notice + "  [x] dismiss"))
		b.WriteString("\n\n")
	}

	save := v.styles.Disabled.Render("[s] save")
	switch {
	case v.nav.Pending():
		save = v.spinner.View() + " " + v.styles.Muted.Render("Saving...")
	case state.HasDecision():
		save = v.styles.Success.Render("[s] save")
	}
	b.WriteString(save)
	b.WriteString("  ")
	b.WriteString(v.styles.Help.Render("[↑/↓] move  [space] choose  [n] skip  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Navigator returns the active session, nil before the first start.
func (v *View) Navigator() *services.Navigator {
	return v.nav
}

// Cursor returns the highlighted candidate row.
func (v *View) Cursor() int {
	return v.cursor
}

// Busy reports whether a request is outstanding.
func (v *View) Busy() bool {
	return v.nav != nil && v.nav.Pending()
}

// Err returns the resolve failure of the active session, if any.
func (v *View) Err() error {
	if v.nav == nil || v.nav.State().Kind != domain.StateError {
		return nil
	}
	return errors.New(v.nav.State().Message)
}
