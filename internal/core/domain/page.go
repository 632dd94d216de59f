package domain

// DefaultPageSize is the number of items per listing page.
const DefaultPageSize = 10

// Page is one window of a server-side listing. Offsets are zero-based on
// the wire; page numbers are one-based for display.
type Page[T any] struct {
	Offset int
	Size   int
	Total  int
	Items  []T
}

// LastPage returns the one-based number of the final page, at least 1.
func (p Page[T]) LastPage() int {
	if p.Size <= 0 || p.Total <= 0 {
		return 1
	}
	return (p.Total + p.Size - 1) / p.Size
}

// CurrentPage returns the one-based number of this page.
func (p Page[T]) CurrentPage() int {
	if p.Size <= 0 {
		return 1
	}
	return p.Offset/p.Size + 1
}

// TermFrequency is a canonical name and how often it occurs.
type TermFrequency struct {
	Key  string `json:"key"`
	Freq int    `json:"freq"`
}

// Occurrence is one mention associated with a term.
type Occurrence struct {
	Index         int    `json:"id"`
	Source        string `json:"source"`
	ControlAccess bool   `json:"controlAccess"`
	Annotated     bool   `json:"annotated"`
}
