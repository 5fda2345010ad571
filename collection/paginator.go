package collection

import "fmt"

// DefaultPerPage is used when a paginator is built with a non positive page size.
const DefaultPerPage = 15

// Paginator is one page of a result set.
type Paginator struct {
	items       *Collection
	perPage     int
	currentPage int
	total       int
}

// NewPaginator builds the page currentPage (1 based) of a result set of total items split in
// pages of perPage items.
func NewPaginator(items []any, perPage, currentPage, total int) *Paginator {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if currentPage < 1 {
		currentPage = 1
	}
	if total < len(items) {
		total = len(items)
	}
	return &Paginator{
		items:       New(items...),
		perPage:     perPage,
		currentPage: currentPage,
		total:       total,
	}
}

// Items returns the items of the current page.
func (p *Paginator) Items() *Collection {
	return p.items
}

// WithItems returns a copy of the paginator holding items, pagination metadata is kept.
func (p *Paginator) WithItems(items *Collection) *Paginator {
	return &Paginator{
		items:       items,
		perPage:     p.perPage,
		currentPage: p.currentPage,
		total:       p.total,
	}
}

// Count returns the number of items on the current page.
func (p *Paginator) Count() int {
	return p.items.Count()
}

func (p *Paginator) PerPage() int {
	return p.perPage
}

func (p *Paginator) CurrentPage() int {
	return p.currentPage
}

func (p *Paginator) Total() int {
	return p.total
}

// LastPage returns the number of the last page, at least 1.
func (p *Paginator) LastPage() int {
	last := (p.total + p.perPage - 1) / p.perPage
	return max(last, 1)
}

func (p *Paginator) OnFirstPage() bool {
	return p.currentPage <= 1
}

func (p *Paginator) HasMorePages() bool {
	return p.currentPage < p.LastPage()
}

func (p *Paginator) String() string {
	return fmt.Sprintf("Paginator(page=%d/%d, perPage=%d, total=%d, items=%d)", p.currentPage, p.LastPage(), p.perPage, p.total, p.Count())
}
