// Package home provides the start screen: annotation progress and the
// main menu.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/knaw-huc/entity-annotator/internal/adapters/driving/tui/keymap"
	"github.com/knaw-huc/entity-annotator/internal/adapters/driving/tui/messages"
	"github.com/knaw-huc/entity-annotator/internal/adapters/driving/tui/styles"
	"github.com/knaw-huc/entity-annotator/internal/core/domain"
	"github.com/knaw-huc/entity-annotator/internal/core/ports/driving"
)

// Action is what selecting a menu item does.
type Action int

const (
	ActionRandom Action = iota
	ActionTerms
	ActionExport
	ActionSave
	ActionHelp
	ActionQuit
)

// Item represents a single menu option.
type Item struct {
	Label  string
	Action Action
}

// View is the home screen.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	statistics driving.StatisticsService
	export     driving.ExportService
	dumpPath   string
	ctx        context.Context

	items    []Item
	selected int

	summary domain.Summary
	seq     uint64
	loading bool
	err     error

	busy   bool
	notice string
	failed bool

	width  int
	height int
	ready  bool
}

// NewView creates a new home view. export may be nil, which hides the
// export and save items.
func NewView(
	s *styles.Styles,
	statistics driving.StatisticsService,
	export driving.ExportService,
	dumpPath string,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	items := []Item{
		{Label: "Annotate random mentions", Action: ActionRandom},
		{Label: "Browse terms", Action: ActionTerms},
	}
	if export != nil {
		items = append(items, Item{Label: fmt.Sprintf("Export annotations to %s", dumpPath), Action: ActionExport})
		if export.CanSave() {
			items = append(items, Item{Label: "Save backend to disk", Action: ActionSave})
		}
	}
	items = append(items,
		Item{Label: "Help", Action: ActionHelp},
		Item{Label: "Quit", Action: ActionQuit},
	)

	return &View{
		styles:     s,
		keymap:     keymap.DefaultKeyMap(),
		statistics: statistics,
		export:     export,
		dumpPath:   dumpPath,
		ctx:        context.Background(),
		items:      items,
		width:      80,
		height:     24,
	}
}

// SetContext sets the context backend calls run under.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init loads the statistics summary. Replies to earlier loads are ignored.
func (v *View) Init() tea.Cmd {
	v.seq++
	v.loading = true
	return v.loadSummary(v.seq)
}

func (v *View) loadSummary(seq uint64) tea.Cmd {
	ctx, svc := v.ctx, v.statistics
	return func() tea.Msg {
		if svc == nil {
			return messages.SummaryLoaded{Seq: seq, Err: fmt.Errorf("statistics service not available")}
		}
		summary, err := svc.Summary(ctx)
		return messages.SummaryLoaded{Seq: seq, Summary: summary, Err: err}
	}
}

func (v *View) exportDump() tea.Cmd {
	ctx, svc, path := v.ctx, v.export, v.dumpPath
	return func() tea.Msg {
		n, err := svc.DumpToFile(ctx, path)
		return messages.ExportCompleted{Path: path, Bytes: n, Err: err}
	}
}

func (v *View) saveBackend() tea.Cmd {
	ctx, svc := v.ctx, v.export
	return func() tea.Msg {
		return messages.SaveCompleted{Err: svc.Save(ctx)}
	}
}

// Update handles messages for the home view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SummaryLoaded:
		if !v.loading || msg.Seq != v.seq {
			return v, nil
		}
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.summary = msg.Summary
		}
		return v, nil

	case messages.ExportCompleted:
		v.busy = false
		if msg.Err != nil {
			v.setNotice(fmt.Sprintf("Export failed: %v", msg.Err), true)
		} else {
			v.setNotice(fmt.Sprintf("Exported %d bytes to %s", msg.Bytes, msg.Path), false)
		}
		return v, nil

	case messages.SaveCompleted:
		v.busy = false
		if msg.Err != nil {
			v.setNotice(fmt.Sprintf("Save failed: %v", msg.Err), true)
		} else {
			v.setNotice("Backend saved its annotations to disk", false)
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.selected < len(v.items)-1 {
			v.selected++
		}
	case keymap.Matches(k, v.keymap.Select):
		return v.activate(v.items[v.selected])
	case keymap.Matches(k, v.keymap.Reload):
		if !v.loading {
			return v, v.Init()
		}
	case keymap.Matches(k, v.keymap.Dismiss):
		v.notice = ""
	case keymap.Matches(k, v.keymap.Help):
		return v, viewChanged(messages.ViewHelp)
	case k == "q":
		return v, tea.Quit
	}
	return v, nil
}

func (v *View) activate(item Item) (*View, tea.Cmd) {
	switch item.Action {
	case ActionRandom:
		return v, func() tea.Msg { return messages.RandomReviewRequested{} }
	case ActionTerms:
		return v, viewChanged(messages.ViewTerms)
	case ActionExport:
		if v.busy {
			return v, nil
		}
		v.busy = true
		v.notice = ""
		return v, v.exportDump()
	case ActionSave:
		if v.busy {
			return v, nil
		}
		v.busy = true
		v.notice = ""
		return v, v.saveBackend()
	case ActionHelp:
		return v, viewChanged(messages.ViewHelp)
	case ActionQuit:
		return v, tea.Quit
	}
	return v, nil
}

func (v *View) setNotice(text string, failed bool) {
	v.notice = text
	v.failed = failed
}

func viewChanged(view messages.ViewType) tea.Cmd {
	return func() tea.Msg { return messages.ViewChanged{View: view} }
}

// View renders the home screen.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Entity annotator"))
	b.WriteString("\n\n")
	b.WriteString(v.renderSummary())
	b.WriteString("\n\n")

	for i, item := range v.items {
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + item.Label))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + item.Label))
		}
		b.WriteString("\n")
	}

	if v.busy {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Working..."))
	}
	if v.notice != "" {
		b.WriteString("\n")
		style := v.styles.Success
		if v.failed {
			style = v.styles.Notice
		}
		b.WriteString(style.Render(v.notice + "  [x] dismiss"))
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] select  [r] reload  [q] quit"))
	return b.String()
}

func (v *View) renderSummary() string {
	switch {
	case v.loading:
		return v.styles.Muted.Render("Loading statistics...")
	case v.err != nil:
		return v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error()))
	}
	return v.styles.Normal.Render(fmt.Sprintf("%d of %d mentions annotated (%.1f%%), %d to do",
		v.summary.Done, v.summary.Total(), v.summary.Percent(), v.summary.Todo))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Items returns the menu items.
func (v *View) Items() []Item {
	return v.items
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// Summary returns the last loaded statistics.
func (v *View) Summary() domain.Summary {
	return v.summary
}

// Loading reports whether statistics are being fetched.
func (v *View) Loading() bool {
	return v.loading
}

// Busy reports whether an export or save is running.
func (v *View) Busy() bool {
	return v.busy
}

// Err returns the statistics failure, if any.
func (v *View) Err() error {
	return v.err
}

// Notice returns the result of the last export or save.
func (v *View) Notice() string {
	return v.notice
}
