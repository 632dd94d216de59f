// Package list provides list display components for the TUI.
package list

import (
	"strings"

	"github.com/knaw-huc/entity-annotator/internal/adapters/driving/tui/styles"
)

// RenderFunc formats one row. selected marks the highlighted row.
type RenderFunc[T any] func(item T, selected bool) string

// Rows is a navigable list of one-line rows with a highlighted cursor.
// Only as many rows as fit the height are drawn, scrolled to keep the
// cursor visible.
type Rows[T any] struct {
	items    []T
	selected int
	render   RenderFunc[T]
	styles   *styles.Styles
	width    int
	height   int
}

// NewRows creates a list drawing each row with render.
func NewRows[T any](s *styles.Styles, render RenderFunc[T]) *Rows[T] {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Rows[T]{
		render: render,
		styles: s,
		width:  80,
		height: 10,
	}
}

// View renders the visible rows, or empty when there are none.
func (r *Rows[T]) View(empty string) string {
	if len(r.items) == 0 {
		return r.styles.Muted.Render(empty)
	}

	visible := max(r.height, 1)
	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := min(start+visible, len(r.items))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, r.render(r.items[i], i == r.selected))
	}
	return strings.Join(lines, "\n")
}

// SetItems replaces the rows, keeping the cursor within range.
func (r *Rows[T]) SetItems(items []T) {
	r.items = items
	r.selected = min(r.selected, max(len(items)-1, 0))
}

// Items returns the rows.
func (r *Rows[T]) Items() []T {
	return r.items
}

// Selected returns the cursor position.
func (r *Rows[T]) Selected() int {
	return r.selected
}

// SetSelected moves the cursor to index if it is in range.
func (r *Rows[T]) SetSelected(index int) {
	if index >= 0 && index < len(r.items) {
		r.selected = index
	}
}

// SelectedItem returns the row under the cursor.
func (r *Rows[T]) SelectedItem() (T, bool) {
	if r.selected < 0 || r.selected >= len(r.items) {
		var zero T
		return zero, false
	}
	return r.items[r.selected], true
}

// Home moves the cursor to the first row.
func (r *Rows[T]) Home() {
	r.selected = 0
}

// MoveUp moves the cursor up.
func (r *Rows[T]) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves the cursor down.
func (r *Rows[T]) MoveDown() {
	if r.selected < len(r.items)-1 {
		r.selected++
	}
}

// SetDimensions sets the width and the number of visible rows.
func (r *Rows[T]) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Width returns the current width.
func (r *Rows[T]) Width() int {
	return r.width
}

// Height returns the number of visible rows.
func (r *Rows[T]) Height() int {
	return r.height
}

// Count returns the number of rows.
func (r *Rows[T]) Count() int {
	return len(r.items)
}

// IsEmpty returns whether the list is empty.
func (r *Rows[T]) IsEmpty() bool {
	return len(r.items) == 0
}
