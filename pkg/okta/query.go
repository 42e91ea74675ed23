package okta

import (
	"net/url"
	"strconv"
	"time"

	"github.com/mdwallick/okta-sdk-go/pkg/codec"
)

// ListParams are the query parameters accepted by Okta collection endpoints. Only the
// non-zero fields are sent.
type ListParams struct {
	// Limit is the page size.
	Limit int
	// Query is a free-text search (q) over names and emails.
	Query string
	// Filter is a structured filter expression, e.g. status eq "ACTIVE".
	Filter string
	// Search is an Okta search expression over profile attributes.
	Search string
	// After is the cursor of a page; normally taken from a next link instead.
	After     string
	Since     time.Time
	Until     time.Time
	StartDate time.Time
	SortBy    string
	SortOrder string
	// Extra holds endpoint-specific parameters.
	Extra url.Values
}

// NewListParams creates empty list parameters.
func NewListParams() *ListParams {
	return &ListParams{}
}

// WithLimit sets the page size.
func (p *ListParams) WithLimit(limit int) *ListParams {
	p.Limit = limit

	return p
}

// WithQuery sets the free-text query.
func (p *ListParams) WithQuery(q string) *ListParams {
	p.Query = q

	return p
}

// WithFilter sets the filter expression.
func (p *ListParams) WithFilter(filter string) *ListParams {
	p.Filter = filter

	return p
}

// WithSearch sets the search expression.
func (p *ListParams) WithSearch(search string) *ListParams {
	p.Search = search

	return p
}

// WithStartDate sets the lower bound of an events listing.
func (p *ListParams) WithStartDate(t time.Time) *ListParams {
	p.StartDate = t

	return p
}

// Set adds an endpoint-specific parameter. Repeated keys are all sent.
func (p *ListParams) Set(key, value string) *ListParams {
	if p.Extra == nil {
		p.Extra = url.Values{}
	}

	p.Extra.Add(key, value)

	return p
}

// ToValues converts the parameters to URL values.
func (p *ListParams) ToValues() url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}

	if p.Limit > 0 {
		values.Set("limit", strconv.Itoa(p.Limit))
	}

	setIf(values, "q", p.Query)
	setIf(values, "filter", p.Filter)
	setIf(values, "search", p.Search)
	setIf(values, "after", p.After)
	setTime(values, "since", p.Since)
	setTime(values, "until", p.Until)
	setTime(values, "startDate", p.StartDate)
	setIf(values, "sortBy", p.SortBy)
	setIf(values, "sortOrder", p.SortOrder)

	for key, vals := range p.Extra {
		for _, v := range vals {
			values.Add(key, v)
		}
	}

	return values
}

func setIf(values url.Values, key, value string) {
	if value != "" {
		values.Set(key, value)
	}
}

func setTime(values url.Values, key string, t time.Time) {
	if !t.IsZero() {
		values.Set(key, t.UTC().Format(codec.TimeLayout))
	}
}
