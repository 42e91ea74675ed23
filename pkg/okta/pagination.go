package okta

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Page is one page of a collection: its items and the server-provided next link.
type Page[T any] struct {
	Items []*T
	next  string
}

// NewPage creates a page. An empty next link marks the last page.
func NewPage[T any](items []*T, next string) *Page[T] {
	if items == nil {
		items = []*T{}
	}

	return &Page[T]{Items: items, next: next}
}

// NextURL returns the next-page link, or "" on the last page.
func (p *Page[T]) NextURL() string { return p.next }

// IsLastPage reports whether the page has no next link. The item count plays no part:
// an empty page with a next link is not last.
func (p *Page[T]) IsLastPage() bool { return p.next == "" }

// PagerState is the state of a Pager.
type PagerState int

const (
	// HasMore means a next link is known and Advance may be called.
	HasMore PagerState = iota
	// LastPage means the current page had no next link.
	LastPage
)

// String returns the state name.
func (s PagerState) String() string {
	if s == HasMore {
		return "HasMore"
	}

	return "LastPage"
}

// FetchFunc issues one list request. An empty cursor requests the first page of the
// base collection; otherwise cursor is a next link to be requested verbatim.
type FetchFunc[T any] func(ctx context.Context, cursor string) (*Page[T], error)

// Pager walks a collection one page at a time by following next links.
// A Pager is not safe for concurrent use.
type Pager[T any] struct {
	fetch FetchFunc[T]
	page  *Page[T]
	calls int
}

// NewPager fetches the first page and returns a pager positioned on it.
func NewPager[T any](ctx context.Context, fetch FetchFunc[T]) (*Pager[T], error) {
	p := &Pager[T]{fetch: fetch}

	page, err := p.load(ctx, "")
	if err != nil {
		return nil, err
	}

	p.page = page

	return p, nil
}

// Page returns the current page.
func (p *Pager[T]) Page() *Page[T] { return p.page }

// Items returns the items of the current page.
func (p *Pager[T]) Items() []*T { return p.page.Items }

// State returns HasMore when the current page has a next link, else LastPage.
func (p *Pager[T]) State() PagerState {
	if p.page.IsLastPage() {
		return LastPage
	}

	return HasMore
}

// HasMore reports whether Advance may be called.
func (p *Pager[T]) HasMore() bool { return p.State() == HasMore }

// Calls returns the number of requests issued so far.
func (p *Pager[T]) Calls() int { return p.calls }

// Advance fetches the page behind the current next link. Calling Advance in LastPage
// is a programming error and panics. On a fetch error the pager stays on the current
// page, so Advance can be retried.
func (p *Pager[T]) Advance(ctx context.Context) error {
	if p.State() == LastPage {
		panic(ErrAdvancePastLastPage)
	}

	page, err := p.load(ctx, p.page.NextURL())
	if err != nil {
		return err
	}

	p.page = page

	return nil
}

func (p *Pager[T]) load(ctx context.Context, cursor string) (*Page[T], error) {
	p.calls++

	page, err := p.fetch(ctx, cursor)
	if err != nil {
		return nil, fmt.Errorf("fetching page %d: %w", p.calls, err)
	}

	if page == nil {
		page = NewPage[T](nil, "")
	}

	return page, nil
}

// PaginationOptions controls how many pages are walked.
type PaginationOptions struct {
	// MaxPages stops after this many pages. Zero means no limit.
	MaxPages int
}

// DefaultPaginationOptions returns options that walk every page.
func DefaultPaginationOptions() *PaginationOptions {
	return &PaginationOptions{}
}

// PaginationIterator yields the items of a collection one at a time, fetching pages
// lazily.
type PaginationIterator[T any] struct {
	ctx   context.Context
	fetch FetchFunc[T]
	pager *Pager[T]
	items []*T
	index int
	err   error
}

// NewPaginationIterator creates an iterator. No request is made until HasNext or Next.
func NewPaginationIterator[T any](ctx context.Context, fetch FetchFunc[T]) *PaginationIterator[T] {
	return &PaginationIterator[T]{ctx: ctx, fetch: fetch}
}

// HasNext reports whether another item is available, fetching pages as needed. Empty
// pages that still carry a next link are skipped.
func (it *PaginationIterator[T]) HasNext() bool {
	if it.err != nil {
		return false
	}

	if it.pager == nil {
		pager, err := NewPager(it.ctx, it.fetch)
		if err != nil {
			it.err = err

			return false
		}

		it.pager = pager
		it.items = pager.Items()
		it.index = 0
	}

	for it.index >= len(it.items) {
		if !it.pager.HasMore() {
			return false
		}

		if err := it.pager.Advance(it.ctx); err != nil {
			it.err = err

			return false
		}

		it.items = it.pager.Items()
		it.index = 0
	}

	return true
}

// Next returns the next item, or ErrNoMoreItems when the collection is exhausted.
func (it *PaginationIterator[T]) Next() (*T, error) {
	if !it.HasNext() {
		if it.err != nil {
			return nil, it.err
		}

		return nil, ErrNoMoreItems
	}

	item := it.items[it.index]
	it.index++

	return item, nil
}

// Err returns the error that stopped iteration, if any.
func (it *PaginationIterator[T]) Err() error { return it.err }

// All drains the iterator.
func (it *PaginationIterator[T]) All() ([]*T, error) {
	var all []*T

	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return nil, err
		}

		all = append(all, item)
	}

	if it.err != nil {
		return nil, it.err
	}

	return all, nil
}

// ForEach calls fn for every item, stopping at the first error.
func (it *PaginationIterator[T]) ForEach(fn func(*T) error) error {
	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return err
		}

		if err := fn(item); err != nil {
			return err
		}
	}

	return it.err
}

// FetchAllPages walks the collection and returns every item, honouring MaxPages.
func FetchAllPages[T any](ctx context.Context, fetch FetchFunc[T], opts *PaginationOptions) ([]*T, error) {
	if opts == nil {
		opts = DefaultPaginationOptions()
	}

	pager, err := NewPager(ctx, fetch)
	if err != nil {
		return nil, err
	}

	all := append([]*T{}, pager.Items()...)

	for pager.HasMore() {
		if opts.MaxPages > 0 && pager.Calls() >= opts.MaxPages {
			break
		}

		if err := pager.Advance(ctx); err != nil {
			return nil, err
		}

		all = append(all, pager.Items()...)
	}

	return all, nil
}

// ParseNextLink returns the target of the rel="next" entry of the Link headers, or ""
// when there is none. Okta sends one Link header per relation; several entries in one
// comma-separated header are handled too.
func ParseNextLink(header http.Header) string {
	for _, value := range header.Values("Link") {
		for _, entry := range splitLinkEntries(value) {
			target, params, ok := strings.Cut(entry, ";")
			if !ok {
				continue
			}

			target = strings.TrimSpace(target)
			if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
				continue
			}

			if hasRel(params, "next") {
				return target[1 : len(target)-1]
			}
		}
	}

	return ""
}

// splitLinkEntries splits a Link header value on commas that are outside <...>.
func splitLinkEntries(value string) []string {
	var (
		entries []string
		depth   int
		start   int
	)

	for i, r := range value {
		switch r {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				entries = append(entries, strings.TrimSpace(value[start:i]))
				start = i + 1
			}
		}
	}

	return append(entries, strings.TrimSpace(value[start:]))
}

func hasRel(params, rel string) bool {
	for _, param := range strings.Split(params, ";") {
		key, val, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "rel") {
			continue
		}

		for _, r := range strings.Fields(strings.Trim(strings.TrimSpace(val), `"`)) {
			if strings.EqualFold(r, rel) {
				return true
			}
		}
	}

	return false
}
