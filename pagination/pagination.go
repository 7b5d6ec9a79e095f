// Package pagination implements page-number pagination over counted result sets.
package pagination

import (
	"net/url"
	"strconv"
)

// MaxPageSize caps caller-supplied page sizes.
const MaxPageSize = 100

// Page describes one 1-indexed page of a result set of Total items.
type Page struct {
	Number int
	Size   int
	Total  int64
}

// New returns the page for the requested number, clamped into
// [1, NumPages]. A non-positive size is treated as 1.
func New(number, size int, total int64) Page {
	if size < 1 {
		size = 1
	}
	p := Page{Number: number, Size: size, Total: total}
	if p.Number < 1 {
		p.Number = 1
	}
	if last := p.NumPages(); p.Number > last {
		p.Number = last
	}
	return p
}

// Size resolves a caller-supplied page size against the default.
func Size(requested, def int) int {
	if requested < 1 {
		return def
	}
	if requested > MaxPageSize {
		return MaxPageSize
	}
	return requested
}

// NumPages is never less than 1, so an empty result set still has a first page.
func (p Page) NumPages() int {
	if p.Total == 0 {
		return 1
	}
	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

func (p Page) HasNext() bool {
	return p.Number < p.NumPages()
}

func (p Page) HasPrevious() bool {
	return p.Number > 1
}

func (p Page) NextNumber() int {
	return p.Number + 1
}

func (p Page) PreviousNumber() int {
	return p.Number - 1
}

// Link returns base with query rewritten to point at page number. The page
// parameter is dropped for the first page, other parameters are kept.
func Link(base string, query url.Values, number int) string {
	q := url.Values{}
	for k, v := range query {
		q[k] = append([]string(nil), v...)
	}
	if number <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(number))
	}
	if encoded := q.Encode(); encoded != "" {
		return base + "?" + encoded
	}
	return base
}

// Nav is a page plus the links rendered around it. Empty URLs mean there is
// no page in that direction.
type Nav struct {
	Page
	PreviousURL string
	NextURL     string
}

func NewNav(p Page, base string, query url.Values) Nav {
	nav := Nav{Page: p}
	if p.HasPrevious() {
		nav.PreviousURL = Link(base, query, p.PreviousNumber())
	}
	if p.HasNext() {
		nav.NextURL = Link(base, query, p.NextNumber())
	}
	return nav
}
