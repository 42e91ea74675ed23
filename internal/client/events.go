package client

import (
	"context"

	"github.com/mdwallick/okta-sdk-go/internal/constants"
	"github.com/mdwallick/okta-sdk-go/internal/http"
	"github.com/mdwallick/okta-sdk-go/pkg/okta"
)

// EventsClient implements okta.EventsClient.
type EventsClient struct {
	httpClient *http.Client
}

// NewEventsClient creates a new events client.
func NewEventsClient(httpClient *http.Client) *EventsClient {
	return &EventsClient{
		httpClient: httpClient,
	}
}

func (c *EventsClient) fetcher(params *okta.ListParams) okta.FetchFunc[okta.Event] {
	return pageFetcher(c.httpClient, constants.APIPathEvents, params, okta.EventSchema, "events")
}

// List implements okta.EventsClient.List.
func (c *EventsClient) List(ctx context.Context, params *okta.ListParams) (*okta.Page[okta.Event], error) {
	return c.fetcher(params)(ctx, "")
}

// ListPage implements okta.EventsClient.ListPage.
func (c *EventsClient) ListPage(ctx context.Context, nextURL string) (*okta.Page[okta.Event], error) {
	if nextURL == "" {
		return nil, okta.ErrNextURLRequired
	}

	return c.fetcher(nil)(ctx, nextURL)
}

// Pager implements okta.EventsClient.Pager.
func (c *EventsClient) Pager(ctx context.Context, params *okta.ListParams) (*okta.Pager[okta.Event], error) {
	return okta.NewPager(ctx, c.fetcher(params))
}

// ListAll implements okta.EventsClient.ListAll.
func (c *EventsClient) ListAll(ctx context.Context, params *okta.ListParams, opts *okta.PaginationOptions) ([]*okta.Event, error) {
	return okta.FetchAllPages(ctx, c.fetcher(params), opts)
}
