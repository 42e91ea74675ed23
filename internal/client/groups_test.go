package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/mdwallick/okta-sdk-go/pkg/okta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const groupBody = `{
	"id": "00g1",
	"type": "OKTA_GROUP",
	"objectClass": ["okta:user_group"],
	"profile": {"name": "Engineering", "description": "All engineers"}
}`

func TestGroupsClient_Calls(t *testing.T) {
	t.Parallel()

	tests := []TestCallOperation{
		{
			Name: "list",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Groups().List(ctx, okta.NewListParams().WithQuery("Eng"))
			},
			Response:      "[" + groupBody + "]",
			ExpectedVerb:  "GET",
			ExpectedPath:  "/api/v1/groups",
			ExpectedQuery: "q=Eng",
			Check: func(t *testing.T, result any) {
				t.Helper()

				page, ok := result.(*okta.Page[okta.Group])
				require.True(t, ok)
				require.Len(t, page.Items, 1)
				assert.True(t, page.IsLastPage())
				assert.Equal(t, []string{okta.ObjectClassOkta}, page.Items[0].ObjectClass)
			},
		},
		{
			Name: "get",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Groups().Get(ctx, "00g1")
			},
			Response:     groupBody,
			ExpectedVerb: "GET",
			ExpectedPath: "/api/v1/groups/00g1",
			Check: func(t *testing.T, result any) {
				t.Helper()

				group, ok := result.(*okta.Group)
				require.True(t, ok)
				assert.Equal(t, okta.GroupTypeOkta, group.Type)
				assert.Equal(t, "Engineering", group.Profile.Name)
			},
		},
		{
			Name: "create",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Groups().Create(ctx, okta.NewGroup("Engineering", "All engineers"))
			},
			Response:     groupBody,
			ExpectedVerb: "POST",
			ExpectedPath: "/api/v1/groups",
			ExpectedBody: `{"profile": {"name": "Engineering", "description": "All engineers"}}`,
		},
		{
			Name: "update",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Groups().Update(ctx, "00g1", okta.NewGroup("Eng", ""))
			},
			Response:     groupBody,
			ExpectedVerb: "PUT",
			ExpectedPath: "/api/v1/groups/00g1",
			ExpectedBody: `{"profile": {"name": "Eng"}}`,
		},
		{
			Name: "delete",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return nil, c.Groups().Delete(ctx, "00g1")
			},
			Status:       http.StatusNoContent,
			ExpectedVerb: "DELETE",
			ExpectedPath: "/api/v1/groups/00g1",
		},
		{
			Name: "list members",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Groups().ListUsers(ctx, "00g1", nil)
			},
			Response:     `[` + userBody + `]`,
			ExpectedVerb: "GET",
			ExpectedPath: "/api/v1/groups/00g1/users",
		},
		{
			Name: "add user",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return nil, c.Groups().AddUser(ctx, "00g1", "00u1")
			},
			Status:       http.StatusNoContent,
			ExpectedVerb: "PUT",
			ExpectedPath: "/api/v1/groups/00g1/users/00u1",
		},
		{
			Name: "remove user",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return nil, c.Groups().RemoveUser(ctx, "00g1", "00u1")
			},
			Status:       http.StatusNoContent,
			ExpectedVerb: "DELETE",
			ExpectedPath: "/api/v1/groups/00g1/users/00u1",
		},
		{
			Name: "get forbidden",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Groups().Get(ctx, "00g1")
			},
			Status:       http.StatusForbidden,
			Response:     `{"errorCode": "E0000006", "errorSummary": "You do not have permission"}`,
			ExpectedVerb: "GET",
			ExpectedPath: "/api/v1/groups/00g1",
			WantErr:      true,
		},
	}

	RunCallTests(t, tests)
}

func TestGroupsClient_RequiresIDs(t *testing.T) {
	t.Parallel()

	client := NewTestClient(t, "https://example.okta.com")
	ctx := context.Background()
	groups := client.Groups()

	_, err := groups.Get(ctx, "")
	require.ErrorIs(t, err, okta.ErrGroupIDRequired)

	_, err = groups.Create(ctx, nil)
	require.ErrorIs(t, err, okta.ErrNilRequest)

	_, err = groups.Update(ctx, "00g1", nil)
	require.ErrorIs(t, err, okta.ErrNilRequest)

	_, err = groups.UsersPager(ctx, "", nil)
	require.ErrorIs(t, err, okta.ErrGroupIDRequired)

	require.ErrorIs(t, groups.AddUser(ctx, "", "00u1"), okta.ErrGroupIDRequired)
	require.ErrorIs(t, groups.AddUser(ctx, "00g1", ""), okta.ErrUserIDRequired)
	require.ErrorIs(t, groups.RemoveUser(ctx, "00g1", ""), okta.ErrUserIDRequired)
}

func TestGroupsClient_UsersPagerFollowsNextLink(t *testing.T) {
	t.Parallel()

	var serverURL string

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/groups/00g1/users", func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Query().Get("after") == "" {
			writer.Header().Set("Link", "<"+serverURL+"/api/v1/groups/00g1/users?after=00u1>; rel=\"next\"")
			_, _ = writer.Write([]byte(`[{"id": "00u1"}]`))

			return
		}

		_, _ = writer.Write([]byte(`[{"id": "00u2"}]`))
	})

	server := newMuxServer(t, mux)
	serverURL = server.URL
	client := NewTestClient(t, server.URL)
	ctx := context.Background()

	pager, err := client.Groups().UsersPager(ctx, "00g1", nil)
	require.NoError(t, err)

	var ids []string

	for {
		for _, user := range pager.Items() {
			ids = append(ids, user.ID)
		}

		if !pager.HasMore() {
			break
		}

		require.NoError(t, pager.Advance(ctx))
	}

	assert.Equal(t, []string{"00u1", "00u2"}, ids)
	assert.Equal(t, 2, pager.Calls())
}
