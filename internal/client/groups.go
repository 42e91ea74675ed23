package client

import (
	"context"
	"fmt"

	"github.com/mdwallick/okta-sdk-go/internal/constants"
	"github.com/mdwallick/okta-sdk-go/internal/http"
	"github.com/mdwallick/okta-sdk-go/pkg/okta"
)

// GroupsClient implements okta.GroupsClient.
type GroupsClient struct {
	httpClient *http.Client
}

// NewGroupsClient creates a new groups client.
func NewGroupsClient(httpClient *http.Client) *GroupsClient {
	return &GroupsClient{
		httpClient: httpClient,
	}
}

func groupPath(id string) string {
	return constants.APIPathGroups + "/" + escape(id)
}

func (c *GroupsClient) fetcher(params *okta.ListParams) okta.FetchFunc[okta.Group] {
	return pageFetcher(c.httpClient, constants.APIPathGroups, params, okta.GroupSchema, "groups")
}

func (c *GroupsClient) membersFetcher(id string, params *okta.ListParams) okta.FetchFunc[okta.User] {
	return pageFetcher(c.httpClient, groupPath(id)+"/users", params, okta.UserSchema, "group members")
}

// List implements okta.GroupsClient.List.
func (c *GroupsClient) List(ctx context.Context, params *okta.ListParams) (*okta.Page[okta.Group], error) {
	return c.fetcher(params)(ctx, "")
}

// ListPage implements okta.GroupsClient.ListPage.
func (c *GroupsClient) ListPage(ctx context.Context, nextURL string) (*okta.Page[okta.Group], error) {
	if nextURL == "" {
		return nil, okta.ErrNextURLRequired
	}

	return c.fetcher(nil)(ctx, nextURL)
}

// Pager implements okta.GroupsClient.Pager.
func (c *GroupsClient) Pager(ctx context.Context, params *okta.ListParams) (*okta.Pager[okta.Group], error) {
	return okta.NewPager(ctx, c.fetcher(params))
}

// ListAll implements okta.GroupsClient.ListAll.
func (c *GroupsClient) ListAll(ctx context.Context, params *okta.ListParams, opts *okta.PaginationOptions) ([]*okta.Group, error) {
	return okta.FetchAllPages(ctx, c.fetcher(params), opts)
}

// Get implements okta.GroupsClient.Get.
func (c *GroupsClient) Get(ctx context.Context, id string) (*okta.Group, error) {
	if id == "" {
		return nil, okta.ErrGroupIDRequired
	}

	resp, err := c.httpClient.Get(ctx, groupPath(id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting group: %w", err)
	}

	return decodeOne(resp, okta.GroupSchema, "group")
}

// Create implements okta.GroupsClient.Create.
func (c *GroupsClient) Create(ctx context.Context, group *okta.Group) (*okta.Group, error) {
	if group == nil {
		return nil, okta.ErrNilRequest
	}

	resp, err := c.httpClient.Post(ctx, constants.APIPathGroups, group)
	if err != nil {
		return nil, fmt.Errorf("creating group: %w", err)
	}

	return decodeOne(resp, okta.GroupSchema, "group")
}

// Update implements okta.GroupsClient.Update.
func (c *GroupsClient) Update(ctx context.Context, id string, group *okta.Group) (*okta.Group, error) {
	if id == "" {
		return nil, okta.ErrGroupIDRequired
	}

	if group == nil {
		return nil, okta.ErrNilRequest
	}

	resp, err := c.httpClient.Put(ctx, groupPath(id), group)
	if err != nil {
		return nil, fmt.Errorf("updating group: %w", err)
	}

	return decodeOne(resp, okta.GroupSchema, "group")
}

// Delete implements okta.GroupsClient.Delete.
func (c *GroupsClient) Delete(ctx context.Context, id string) error {
	if id == "" {
		return okta.ErrGroupIDRequired
	}

	_, err := c.httpClient.Delete(ctx, groupPath(id))
	if err != nil {
		return fmt.Errorf("deleting group: %w", err)
	}

	return nil
}

// ListUsers implements okta.GroupsClient.ListUsers.
func (c *GroupsClient) ListUsers(ctx context.Context, id string, params *okta.ListParams) (*okta.Page[okta.User], error) {
	if id == "" {
		return nil, okta.ErrGroupIDRequired
	}

	return c.membersFetcher(id, params)(ctx, "")
}

// UsersPager implements okta.GroupsClient.UsersPager.
func (c *GroupsClient) UsersPager(ctx context.Context, id string, params *okta.ListParams) (*okta.Pager[okta.User], error) {
	if id == "" {
		return nil, okta.ErrGroupIDRequired
	}

	return okta.NewPager(ctx, c.membersFetcher(id, params))
}

// AddUser implements okta.GroupsClient.AddUser.
func (c *GroupsClient) AddUser(ctx context.Context, groupID, userID string) error {
	if groupID == "" {
		return okta.ErrGroupIDRequired
	}

	if userID == "" {
		return okta.ErrUserIDRequired
	}

	_, err := c.httpClient.Put(ctx, groupPath(groupID)+"/users/"+escape(userID), nil)
	if err != nil {
		return fmt.Errorf("adding user to group: %w", err)
	}

	return nil
}

// RemoveUser implements okta.GroupsClient.RemoveUser.
func (c *GroupsClient) RemoveUser(ctx context.Context, groupID, userID string) error {
	if groupID == "" {
		return okta.ErrGroupIDRequired
	}

	if userID == "" {
		return okta.ErrUserIDRequired
	}

	_, err := c.httpClient.Delete(ctx, groupPath(groupID)+"/users/"+escape(userID))
	if err != nil {
		return fmt.Errorf("removing user from group: %w", err)
	}

	return nil
}
