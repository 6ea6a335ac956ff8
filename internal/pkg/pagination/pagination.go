// Package pagination slices an already ordered list into pages.
package pagination

import "strconv"

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

type Params struct {
	Page    int
	PerPage int
}

func NewParams(page, perPage int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return Params{
		Page:    page,
		PerPage: perPage,
	}
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

func (p Params) Limit() int {
	return p.PerPage
}

type Info struct {
	Page       int
	PerPage    int
	TotalItems int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

func NewInfo(page, perPage, totalItems int) *Info {
	totalPages := totalItems / perPage
	if totalItems%perPage > 0 {
		totalPages++
	}
	if totalPages == 0 {
		totalPages = 1
	}

	return &Info{
		Page:       page,
		PerPage:    perPage,
		TotalItems: totalItems,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// Headers renders the info as X-* response headers, leaving the body a plain
// array.
func (i *Info) Headers() map[string]string {
	return map[string]string{
		"X-Page":        strconv.Itoa(i.Page),
		"X-Per-Page":    strconv.Itoa(i.PerPage),
		"X-Total-Count": strconv.Itoa(i.TotalItems),
		"X-Total-Pages": strconv.Itoa(i.TotalPages),
	}
}

// Slice returns the page of items selected by p. A page past the end is
// empty, never nil.
func Slice[T any](items []T, p Params) ([]T, *Info) {
	info := NewInfo(p.Page, p.PerPage, len(items))

	start := min(p.Offset(), len(items))
	end := min(start+p.Limit(), len(items))

	page := make([]T, end-start)
	copy(page, items[start:end])
	return page, info
}
