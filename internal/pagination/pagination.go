// Package pagination slices ordered result sets into fixed-size, 1-numbered
// pages with conventional paginator clamping.
package pagination

import "strconv"

// DefaultPerPage is the page size used by every post listing.
const DefaultPerPage = 10

// Page describes one bounded window of an ordered result set.
type Page struct {
	Number      int  `json:"number"`
	PerPage     int  `json:"per_page"`
	NumPages    int  `json:"num_pages"`
	Total       int  `json:"total"`
	Offset      int  `json:"-"`
	Limit       int  `json:"-"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// Paginator computes page windows for a fixed page size.
type Paginator struct {
	PerPage int
}

// New returns a Paginator with the given page size; sizes below 1 fall back
// to DefaultPerPage.
func New(perPage int) Paginator {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return Paginator{PerPage: perPage}
}

// NumPages returns the number of pages for total items. An empty result set
// still has one (empty) page.
func (p Paginator) NumPages(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + p.PerPage - 1) / p.PerPage
}

// GetPage resolves the raw page query value against total items. A missing,
// non-numeric or sub-1 value yields page 1; a number beyond the last page
// clamps to the last page.
func (p Paginator) GetPage(raw string, total int) Page {
	number, err := strconv.Atoi(raw)
	if err != nil || number < 1 {
		number = 1
	}
	return p.Page(number, total)
}

// Page returns the window for the given page number, clamped into
// [1, NumPages].
func (p Paginator) Page(number, total int) Page {
	numPages := p.NumPages(total)
	if number < 1 {
		number = 1
	}
	if number > numPages {
		number = numPages
	}
	return Page{
		Number:      number,
		PerPage:     p.PerPage,
		NumPages:    numPages,
		Total:       total,
		Offset:      (number - 1) * p.PerPage,
		Limit:       p.PerPage,
		HasNext:     number < numPages,
		HasPrevious: number > 1,
	}
}

// Slice returns the page window of items. It is the in-memory counterpart of
// Page for callers that already hold the full ordered result set.
func Slice[T any](items []T, perPage, number int) []T {
	p := New(perPage)
	page := p.Page(number, len(items))
	if page.Offset >= len(items) {
		return items[len(items):]
	}
	end := page.Offset + page.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[page.Offset:end]
}
