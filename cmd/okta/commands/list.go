package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mdwallick/okta-sdk-go/internal/constants"
	"github.com/mdwallick/okta-sdk-go/pkg/codec"
	"github.com/mdwallick/okta-sdk-go/pkg/okta"
	"github.com/spf13/cobra"
)

// listOptions are the flags shared by list commands.
type listOptions struct {
	limit    int
	allPages bool
	maxPages int
	query    string
	filter   string
	search   string
	where    string
}

func addListFlags(cmd *cobra.Command, opts *listOptions, withSearch bool) {
	cmd.Flags().IntVar(&opts.limit, "limit", constants.DefaultPageSize, "results per page")
	cmd.Flags().BoolVar(&opts.allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&opts.maxPages, "max-pages", 0, "stop after this many pages when --all is set (0 for no limit)")
	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "free-text search on names and emails")
	cmd.Flags().StringVar(&opts.filter, "filter", "", `server-side filter, e.g. status eq "ACTIVE"`)
	cmd.Flags().StringVar(&opts.where, "where", "", `client-side expression over the entity, e.g. profile.department == "Sales"`)

	if withSearch {
		cmd.Flags().StringVar(&opts.search, "search", "", `search expression, e.g. profile.lastName sw "Sm"`)
	}
}

func (o *listOptions) params() *okta.ListParams {
	params := okta.NewListParams().
		WithLimit(o.limit).
		WithQuery(o.query).
		WithFilter(o.filter).
		WithSearch(o.search)

	return params
}

// listResult is what a list command fetched: the items and whether pages were left
// unread.
type listResult[T any] struct {
	items []*T
	more  bool
}

// collect reads the pager's first page, or every page when allPages is set.
func collect[T any](ctx context.Context, pager *okta.Pager[T], allPages bool, maxPages int) (*listResult[T], error) {
	items := append([]*T(nil), pager.Items()...)

	if !allPages {
		return &listResult[T]{items: items, more: pager.HasMore()}, nil
	}

	for pager.HasMore() {
		if maxPages > 0 && pager.Calls() >= maxPages {
			return &listResult[T]{items: items, more: true}, nil
		}

		if err := pager.Advance(ctx); err != nil {
			return nil, fmt.Errorf("failed to fetch page %d: %w", pager.Calls()+1, err)
		}

		items = append(items, pager.Items()...)
	}

	return &listResult[T]{items: items}, nil
}

// listEntities walks the pager as the flags ask and applies --where.
func listEntities[T any](
	ctx context.Context, opts *listOptions, pager *okta.Pager[T], encode func(*T) map[string]any,
) (*listResult[T], error) {
	where, err := compileWhere(opts.where)
	if err != nil {
		return nil, err
	}

	result, err := collect(ctx, pager, opts.allPages, opts.maxPages)
	if err != nil {
		return nil, err
	}

	result.items, err = filterWhere(result.items, where, encode)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func printMoreHint(w io.Writer, more bool) {
	if more {
		_, _ = io.WriteString(w, "\nMore results are available. Use --all to fetch all pages.\n")
	}
}

// parseTimeFlag accepts RFC3339 timestamps and plain dates.
func parseTimeFlag(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}

	for _, layout := range []string{time.RFC3339, codec.TimeLayout, time.DateOnly} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidTime, value)
}

// parseParams turns KEY=VALUE pairs into list parameters.
func parseParams(pairs []string) (*okta.ListParams, error) {
	params := okta.NewListParams()

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %s", ErrInvalidParam, pair)
		}

		params.Set(key, value)
	}

	return params, nil
}
