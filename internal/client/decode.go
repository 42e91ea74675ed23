package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/mdwallick/okta-sdk-go/internal/http"
	"github.com/mdwallick/okta-sdk-go/pkg/codec"
	"github.com/mdwallick/okta-sdk-go/pkg/okta"
)

// decodeOne parses a single-object response body.
func decodeOne[T any](resp *http.Response, schema *codec.Schema[T], what string) (*T, error) {
	v, err := codec.DecodeOne(resp.Body, schema)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", what, err)
	}

	return v, nil
}

// decodeMany parses an array response body.
func decodeMany[T any](resp *http.Response, schema *codec.Schema[T], what string) ([]*T, error) {
	items, err := codec.DecodeMany(resp.Body, schema)
	if err != nil {
		return nil, fmt.Errorf("parsing %s list response: %w", what, err)
	}

	return items, nil
}

// pageFetcher returns the fetch function of a paged collection. The first page is
// path+params; later pages follow the next link verbatim.
func pageFetcher[T any](
	httpClient *http.Client, path string, params *okta.ListParams, schema *codec.Schema[T], what string,
) okta.FetchFunc[T] {
	return func(ctx context.Context, cursor string) (*okta.Page[T], error) {
		var (
			resp *http.Response
			err  error
		)

		if cursor == "" {
			resp, err = httpClient.Get(ctx, path, params.ToValues())
		} else {
			resp, err = httpClient.Get(ctx, cursor, nil)
		}

		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", what, err)
		}

		items, err := decodeMany(resp, schema, what)
		if err != nil {
			return nil, err
		}

		return okta.NewPage(items, okta.ParseNextLink(resp.Headers)), nil
	}
}

// boolQuery returns a single boolean query flag.
func boolQuery(key string, value bool) url.Values {
	return url.Values{key: {strconv.FormatBool(value)}}
}

// escape escapes a path segment.
func escape(segment string) string {
	return url.PathEscape(segment)
}
