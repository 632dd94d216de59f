package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/knaw-huc/entity-annotator/internal/adapters/driving/tui/components/status"
	"github.com/knaw-huc/entity-annotator/internal/adapters/driving/tui/keymap"
	"github.com/knaw-huc/entity-annotator/internal/adapters/driving/tui/messages"
	"github.com/knaw-huc/entity-annotator/internal/adapters/driving/tui/styles"
	"github.com/knaw-huc/entity-annotator/internal/adapters/driving/tui/views/annotate"
	"github.com/knaw-huc/entity-annotator/internal/adapters/driving/tui/views/home"
	"github.com/knaw-huc/entity-annotator/internal/adapters/driving/tui/views/occurrences"
	"github.com/knaw-huc/entity-annotator/internal/adapters/driving/tui/views/terms"
	"github.com/knaw-huc/entity-annotator/internal/core/domain"
	"github.com/knaw-huc/entity-annotator/internal/logger"
)

// DefaultDumpPath is where the home screen exports annotations when no
// path is configured.
const DefaultDumpPath = "annotations.json"

// Config holds presentation settings for the TUI.
type Config struct {
	// PageSize is the number of rows per listing page.
	PageSize int

	// DumpPath is the export target offered on the home screen.
	DumpPath string

	// BackendURL is shown in the status bar.
	BackendURL string
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	homeView        *home.View
	annotateView    *annotate.View
	termsView       *terms.View
	occurrencesView *occurrences.View
	statusBar       *status.Bar

	// currentView tracks which view is active; previousView is restored
	// when the help view closes.
	currentView  messages.ViewType
	previousView messages.ViewType

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports, cfg Config) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = domain.DefaultPageSize
	}
	if cfg.DumpPath == "" {
		cfg.DumpPath = DefaultDumpPath
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	bar := status.NewBar(s, km)
	bar.SetBackend(cfg.BackendURL)

	return &App{
		ports:           ports,
		ctx:             context.Background(),
		styles:          s,
		keymap:          km,
		help:            help.New(),
		homeView:        home.NewView(s, ports.Statistics, ports.Export, cfg.DumpPath),
		annotateView:    annotate.NewView(s, ports.Resolver, ports.Submitter),
		termsView:       terms.NewView(s, ports.Terms, cfg.PageSize),
		occurrencesView: occurrences.NewView(s, ports.Terms, cfg.PageSize),
		statusBar:       bar,
		currentView:     messages.ViewHome,
	}, nil
}

// WithContext sets the context for the app. Backend calls made by the
// views run under it, so cancelling it abandons requests in flight.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.homeView.SetContext(ctx)
	a.annotateView.SetContext(ctx)
	a.termsView.SetContext(ctx)
	a.occurrencesView.SetContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("Entity annotator"),
		a.homeView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.route(msg)
	a.syncStatus()
	return a, cmd
}

//nolint:gocyclo // central message router
func (a *App) route(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.ViewChanged:
		return a.switchTo(msg.View)

	case messages.RandomReviewRequested:
		a.currentView = messages.ViewAnnotate
		return a.annotateView.StartRandom()

	case messages.TermSelected:
		a.currentView = messages.ViewOccurrences
		return a.occurrencesView.SetTerm(msg.Term)

	case messages.OccurrenceSelected:
		logger.Debug("annotating occurrence %d of %q", msg.Index, msg.Term)
		a.currentView = messages.ViewAnnotate
		return a.annotateView.StartTerm(msg.Term, msg.Index)

	case messages.ReturnedToTerm:
		a.currentView = messages.ViewOccurrences
		if a.occurrencesView.Term() != msg.Term {
			return a.occurrencesView.SetTerm(msg.Term)
		}
		return a.occurrencesView.Reload()

	case messages.SummaryLoaded, messages.ExportCompleted, messages.SaveCompleted:
		a.homeView, cmd = a.homeView.Update(msg)
		return cmd

	case messages.MentionResolved, messages.DecisionSubmitted, spinner.TickMsg:
		a.annotateView, cmd = a.annotateView.Update(msg)
		return cmd

	case messages.PageLoaded[domain.TermFrequency]:
		a.termsView, cmd = a.termsView.Update(msg)
		return cmd

	case messages.PageLoaded[domain.Occurrence]:
		a.occurrencesView, cmd = a.occurrencesView.Update(msg)
		return cmd

	case messages.Quit:
		a.annotateView.Close()
		return tea.Quit
	}
	return nil
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd

	if msg.String() == "ctrl+c" {
		a.annotateView.Close()
		return tea.Quit
	}

	switch a.currentView {
	case messages.ViewHome:
		a.homeView, cmd = a.homeView.Update(msg)
	case messages.ViewAnnotate:
		a.annotateView, cmd = a.annotateView.Update(msg)
	case messages.ViewTerms:
		a.termsView, cmd = a.termsView.Update(msg)
	case messages.ViewOccurrences:
		a.occurrencesView, cmd = a.occurrencesView.Update(msg)
	case messages.ViewHelp:
		k := msg.String()
		if keymap.Matches(k, a.keymap.Back) || keymap.Matches(k, a.keymap.Help) {
			a.currentView = a.previousView
		}
	}
	return cmd
}

// switchTo activates view. Entering the terms listing from home starts
// at its first page; coming back from occurrences keeps the position.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	from := a.currentView
	a.currentView = view

	switch view {
	case messages.ViewHome:
		return a.homeView.Init()
	case messages.ViewTerms:
		if from == messages.ViewHome {
			a.termsView.Reset()
			return a.termsView.Init()
		}
	case messages.ViewHelp:
		if from != messages.ViewHelp {
			a.previousView = from
		}
	case messages.ViewAnnotate, messages.ViewOccurrences:
	}
	return nil
}

// syncStatus mirrors the active view's request state into the status bar.
func (a *App) syncStatus() {
	bar := a.statusBar
	bar.SetHints(nil)

	var busy bool
	var err error
	switch a.currentView {
	case messages.ViewHome:
		busy, err = a.homeView.Loading() || a.homeView.Busy(), a.homeView.Err()
	case messages.ViewAnnotate:
		busy, err = a.annotateView.Busy(), a.annotateView.Err()
		bar.SetHints(a.keymap.AnnotateHelp())
		if nav := a.annotateView.Navigator(); busy && nav != nil && nav.State().Kind == domain.StateReady {
			bar.SetState(status.StateSaving, "")
			return
		}
	case messages.ViewTerms:
		busy, err = a.termsView.Busy(), a.termsView.Err()
		bar.SetHints(a.keymap.ListHelp())
	case messages.ViewOccurrences:
		busy, err = a.occurrencesView.Busy(), a.occurrencesView.Err()
		bar.SetHints(a.keymap.ListHelp())
	case messages.ViewHelp:
	}

	switch {
	case busy:
		bar.SetState(status.StateLoading, "")
	case err != nil:
		bar.SetState(status.StateError, err.Error())
	default:
		bar.SetState(status.StateReady, "")
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewAnnotate:
		body = a.annotateView.View()
	case messages.ViewTerms:
		body = a.termsView.View()
	case messages.ViewOccurrences:
		body = a.occurrencesView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.homeView.View()
	}

	gap := a.height - strings.Count(body, "\n") - 2
	if gap < 1 {
		gap = 1
	}
	return body + strings.Repeat("\n", gap) + a.statusBar.View()
}

func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	b.WriteString(a.help.FullHelpView(a.keymap.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Muted.Render("Choosing \"?\" records that none of the candidates is correct."))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Help.Render("[esc] back"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	defer a.annotateView.Close()
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// StatusBar returns the status bar.
func (a *App) StatusBar() *status.Bar {
	return a.statusBar
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.homeView.SetDimensions(width, height)
	a.annotateView.SetDimensions(width, height)
	a.termsView.SetDimensions(width, height)
	a.occurrencesView.SetDimensions(width, height)
	a.statusBar.SetWidth(width)
}
