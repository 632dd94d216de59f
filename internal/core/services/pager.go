package services

import (
	"context"

	"github.com/knaw-huc/entity-annotator/internal/core/domain"
)

// PageFetcher fetches the window [offset, offset+size) of a listing.
type PageFetcher[T any] func(ctx context.Context, offset, size int) (domain.Page[T], error)

// Pager keeps a cursor over a server-side listing. Navigation replaces the
// current page wholesale; nothing is cached or merged.
type Pager[T any] struct {
	fetch PageFetcher[T]
	page  domain.Page[T]
}

// NewPager creates a pager positioned at offset 0. A non-positive size
// selects domain.DefaultPageSize.
func NewPager[T any](fetch PageFetcher[T], size int) *Pager[T] {
	if size <= 0 {
		size = domain.DefaultPageSize
	}
	return &Pager[T]{
		fetch: fetch,
		page:  domain.Page[T]{Size: size},
	}
}

// Page returns the current page.
func (p *Pager[T]) Page() domain.Page[T] { return p.page }

// Items returns the items of the current page.
func (p *Pager[T]) Items() []T { return p.page.Items }

// Offset returns the zero-based offset of the current page.
func (p *Pager[T]) Offset() int { return p.page.Offset }

// Size returns the page size.
func (p *Pager[T]) Size() int { return p.page.Size }

// Total returns the listing size reported by the last fetch.
func (p *Pager[T]) Total() int { return p.page.Total }

// CurrentPage returns the one-based page number.
func (p *Pager[T]) CurrentPage() int { return p.page.CurrentPage() }

// LastPage returns the one-based number of the final page.
func (p *Pager[T]) LastPage() int { return p.page.LastPage() }

// HasNext reports whether there is a page after the current one.
func (p *Pager[T]) HasNext() bool { return p.CurrentPage() < p.LastPage() }

// HasPrevious reports whether there is a page before the current one.
func (p *Pager[T]) HasPrevious() bool { return p.CurrentPage() > 1 }

// PlanNext returns the offset of the next page, or false on the last page.
func (p *Pager[T]) PlanNext() (int, bool) {
	if !p.HasNext() {
		return p.page.Offset, false
	}
	return p.page.Offset + p.page.Size, true
}

// PlanPrevious returns the offset of the previous page, or false on the first page.
func (p *Pager[T]) PlanPrevious() (int, bool) {
	if !p.HasPrevious() {
		return p.page.Offset, false
	}
	offset := p.page.Offset - p.page.Size
	if offset < 0 {
		offset = 0
	}
	return offset, true
}

// Fetch retrieves the page at offset without changing the pager.
// It is safe to call from a goroutine other than the one calling Apply.
func (p *Pager[T]) Fetch(ctx context.Context, offset int) (domain.Page[T], error) {
	if offset < 0 {
		offset = 0
	}
	page, err := p.fetch(ctx, offset, p.page.Size)
	if err != nil {
		return domain.Page[T]{}, err
	}
	page.Offset = offset
	page.Size = p.page.Size
	if page.Total < 0 {
		page.Total = 0
	}
	return page, nil
}

// Apply installs a fetched page. The offset is clamped so the page lies
// within [1, LastPage]; Apply reports whether clamping moved it, in which
// case the items belong to a window past the end and should be re-fetched.
func (p *Pager[T]) Apply(page domain.Page[T]) bool {
	page.Size = p.page.Size
	clamped := false
	if page.Offset < 0 {
		page.Offset = 0
		clamped = true
	}
	if maxOffset := (page.LastPage() - 1) * page.Size; page.Offset > maxOffset {
		page.Offset = maxOffset
		clamped = true
	}
	p.page = page
	return clamped
}

// Load fetches the page at the current offset.
func (p *Pager[T]) Load(ctx context.Context) error {
	return p.goTo(ctx, p.page.Offset)
}

// Next moves to the next page. It is a no-op on the last page and
// reports whether it moved.
func (p *Pager[T]) Next(ctx context.Context) (bool, error) {
	offset, ok := p.PlanNext()
	if !ok {
		return false, nil
	}
	return true, p.goTo(ctx, offset)
}

// Previous moves to the previous page. It is a no-op on the first page
// and reports whether it moved.
func (p *Pager[T]) Previous(ctx context.Context) (bool, error) {
	offset, ok := p.PlanPrevious()
	if !ok {
		return false, nil
	}
	return true, p.goTo(ctx, offset)
}

func (p *Pager[T]) goTo(ctx context.Context, offset int) error {
	page, err := p.Fetch(ctx, offset)
	if err != nil {
		return err
	}
	if !p.Apply(page) {
		return nil
	}
	// The listing shrank under us; show the real last page.
	page, err = p.Fetch(ctx, p.page.Offset)
	if err != nil {
		return err
	}
	p.Apply(page)
	return nil
}
