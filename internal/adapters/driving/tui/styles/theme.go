// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette of the annotator. Besides the usual
// accent and feedback colours it assigns a colour to each role a row can
// play in the annotation workflow.
type Theme struct {
	// Accent marks titles and the cursor.
	Accent lipgloss.Color

	// Text is the default text colour.
	Text lipgloss.Color

	// Muted is for secondary details such as ids, sources and distances.
	Muted lipgloss.Color

	// Mention highlights the extracted text under review.
	Mention lipgloss.Color

	// Decision marks the chosen candidate.
	Decision lipgloss.Color

	// Sentinel marks the "not in list" candidate.
	Sentinel lipgloss.Color

	// Annotated marks mentions that already carry a decision.
	Annotated lipgloss.Color

	// ControlAccess tags mentions taken from controlled access headings.
	ControlAccess lipgloss.Color

	// Feedback colours.
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// Bar is the status bar background.
	Bar lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:        lipgloss.Color("#1D4ED8"), // Blue
		Text:          lipgloss.Color("#CDD6F4"), // Light gray
		Muted:         lipgloss.Color("#6C7086"), // Medium gray
		Mention:       lipgloss.Color("#F59E0B"), // Amber
		Decision:      lipgloss.Color("#34D399"), // Emerald
		Sentinel:      lipgloss.Color("#C084FC"), // Violet
		Annotated:     lipgloss.Color("#64748B"), // Slate
		ControlAccess: lipgloss.Color("#38BDF8"), // Sky
		Success:       lipgloss.Color("#A6E3A1"), // Green
		Warning:       lipgloss.Color("#F9E2AF"), // Yellow
		Error:         lipgloss.Color("#F38BA8"), // Red
		Bar:           lipgloss.Color("#181825"), // Near black
		Border:        lipgloss.Color("#45475A"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style

	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style

	// Disabled style for actions that cannot be taken yet.
	Disabled lipgloss.Style

	// Notice style for dismissible messages.
	Notice lipgloss.Style

	// Mention style for the text under review and the listed term.
	Mention lipgloss.Style

	// Decision style for the chosen candidate.
	Decision lipgloss.Style

	// Sentinel style for the "not in list" candidate.
	Sentinel lipgloss.Style

	// Annotated style for rows that already carry a decision.
	Annotated lipgloss.Style

	// ControlAccess style for the control access tag.
	ControlAccess lipgloss.Style

	StatusBar lipgloss.Style
	Help      lipgloss.Style
	Border    lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Mention),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Text),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Text).
			Background(theme.Accent),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		Disabled: lipgloss.NewStyle().
			Foreground(theme.Border).
			Strikethrough(true),

		Notice: lipgloss.NewStyle().
			Foreground(theme.Warning).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(theme.Warning).
			PaddingLeft(1),

		Mention: lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(theme.Mention),

		Decision: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Decision),

		Sentinel: lipgloss.NewStyle().
			Italic(true).
			Foreground(theme.Sentinel),

		Annotated: lipgloss.NewStyle().
			Foreground(theme.Annotated),

		ControlAccess: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ControlAccess),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Bar).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Candidate picks the style for a candidate's names: the sentinel has its
// own, the chosen candidate is marked as the decision.
func (s *Styles) Candidate(sentinel, chosen bool) lipgloss.Style {
	switch {
	case chosen:
		return s.Decision
	case sentinel:
		return s.Sentinel
	}
	return s.Normal
}
