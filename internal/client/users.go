package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/mdwallick/okta-sdk-go/internal/constants"
	"github.com/mdwallick/okta-sdk-go/internal/http"
	"github.com/mdwallick/okta-sdk-go/pkg/okta"
)

// UsersClient implements okta.UsersClient.
type UsersClient struct {
	httpClient *http.Client
}

// NewUsersClient creates a new users client.
func NewUsersClient(httpClient *http.Client) *UsersClient {
	return &UsersClient{
		httpClient: httpClient,
	}
}

func userPath(id string, parts ...string) string {
	path := constants.APIPathUsers + "/" + escape(id)
	for _, part := range parts {
		path += "/" + part
	}

	return path
}

func (c *UsersClient) fetcher(params *okta.ListParams) okta.FetchFunc[okta.User] {
	return pageFetcher(c.httpClient, constants.APIPathUsers, params, okta.UserSchema, "users")
}

// List implements okta.UsersClient.List.
func (c *UsersClient) List(ctx context.Context, params *okta.ListParams) (*okta.Page[okta.User], error) {
	return c.fetcher(params)(ctx, "")
}

// ListPage implements okta.UsersClient.ListPage.
func (c *UsersClient) ListPage(ctx context.Context, nextURL string) (*okta.Page[okta.User], error) {
	if nextURL == "" {
		return nil, okta.ErrNextURLRequired
	}

	return c.fetcher(nil)(ctx, nextURL)
}

// Pager implements okta.UsersClient.Pager.
func (c *UsersClient) Pager(ctx context.Context, params *okta.ListParams) (*okta.Pager[okta.User], error) {
	return okta.NewPager(ctx, c.fetcher(params))
}

// ListAll implements okta.UsersClient.ListAll.
func (c *UsersClient) ListAll(ctx context.Context, params *okta.ListParams, opts *okta.PaginationOptions) ([]*okta.User, error) {
	return okta.FetchAllPages(ctx, c.fetcher(params), opts)
}

// Get implements okta.UsersClient.Get. idOrLogin may be a user ID, a login or "me".
func (c *UsersClient) Get(ctx context.Context, idOrLogin string) (*okta.User, error) {
	if idOrLogin == "" {
		return nil, okta.ErrUserIDRequired
	}

	resp, err := c.httpClient.Get(ctx, userPath(idOrLogin), nil)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	return decodeOne(resp, okta.UserSchema, "user")
}

// Create implements okta.UsersClient.Create.
func (c *UsersClient) Create(ctx context.Context, user *okta.User, opts *okta.CreateUserOptions) (*okta.User, error) {
	if user == nil {
		return nil, okta.ErrNilRequest
	}

	query := url.Values{}

	if opts != nil {
		if opts.Activate != nil {
			query.Set("activate", strconv.FormatBool(*opts.Activate))
		}

		if opts.Provider {
			query.Set("provider", constants.BooleanTrue)
		}

		if opts.NextLogin != "" {
			query.Set("nextLogin", opts.NextLogin)
		}
	}

	resp, err := c.httpClient.PostWithQuery(ctx, constants.APIPathUsers, query, user)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return decodeOne(resp, okta.UserSchema, "user")
}

// Update implements okta.UsersClient.Update. A partial update (POST) only changes the
// attributes that are set; a full update (PUT) replaces the profile.
func (c *UsersClient) Update(ctx context.Context, id string, user *okta.User, partial bool) (*okta.User, error) {
	if id == "" {
		return nil, okta.ErrUserIDRequired
	}

	if user == nil {
		return nil, okta.ErrNilRequest
	}

	var (
		resp *http.Response
		err  error
	)

	if partial {
		resp, err = c.httpClient.Post(ctx, userPath(id), user)
	} else {
		resp, err = c.httpClient.Put(ctx, userPath(id), user)
	}

	if err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	return decodeOne(resp, okta.UserSchema, "user")
}

// Delete implements okta.UsersClient.Delete. Okta only deletes deprovisioned users, so
// opts.Deactivate issues the deactivation first.
func (c *UsersClient) Delete(ctx context.Context, id string, opts *okta.DeleteUserOptions) error {
	if id == "" {
		return okta.ErrUserIDRequired
	}

	sendEmail := false

	if opts != nil {
		sendEmail = opts.SendEmail

		if opts.Deactivate {
			err := c.Deactivate(ctx, id, sendEmail)
			if err != nil {
				return err
			}
		}
	}

	_, err := c.httpClient.DeleteWithQuery(ctx, userPath(id), boolQuery("sendEmail", sendEmail))
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	return nil
}

// ListGroups implements okta.UsersClient.ListGroups.
func (c *UsersClient) ListGroups(ctx context.Context, id string) ([]*okta.Group, error) {
	if id == "" {
		return nil, okta.ErrUserIDRequired
	}

	resp, err := c.httpClient.Get(ctx, userPath(id, "groups"), nil)
	if err != nil {
		return nil, fmt.Errorf("listing user groups: %w", err)
	}

	return decodeMany(resp, okta.GroupSchema, "group")
}

// lifecycle posts to a lifecycle operation of a user.
func (c *UsersClient) lifecycle(ctx context.Context, id, operation string, query url.Values) (*http.Response, error) {
	if id == "" {
		return nil, okta.ErrUserIDRequired
	}

	resp, err := c.httpClient.PostWithQuery(ctx, userPath(id, "lifecycle", operation), query, nil)
	if err != nil {
		return nil, fmt.Errorf("running %s on user: %w", operation, err)
	}

	return resp, nil
}

// Activate implements okta.UsersClient.Activate. The activation token is only returned
// when sendEmail is false.
func (c *UsersClient) Activate(ctx context.Context, id string, sendEmail bool) (*okta.ActivationToken, error) {
	resp, err := c.lifecycle(ctx, id, "activate", boolQuery("sendEmail", sendEmail))
	if err != nil {
		return nil, err
	}

	return decodeOne(resp, okta.ActivationTokenSchema, "activation token")
}

// Reactivate implements okta.UsersClient.Reactivate.
func (c *UsersClient) Reactivate(ctx context.Context, id string, sendEmail bool) (*okta.ActivationToken, error) {
	resp, err := c.lifecycle(ctx, id, "reactivate", boolQuery("sendEmail", sendEmail))
	if err != nil {
		return nil, err
	}

	return decodeOne(resp, okta.ActivationTokenSchema, "activation token")
}

// Deactivate implements okta.UsersClient.Deactivate.
func (c *UsersClient) Deactivate(ctx context.Context, id string, sendEmail bool) error {
	_, err := c.lifecycle(ctx, id, "deactivate", boolQuery("sendEmail", sendEmail))

	return err
}

// Suspend implements okta.UsersClient.Suspend.
func (c *UsersClient) Suspend(ctx context.Context, id string) error {
	_, err := c.lifecycle(ctx, id, "suspend", nil)

	return err
}

// Unsuspend implements okta.UsersClient.Unsuspend.
func (c *UsersClient) Unsuspend(ctx context.Context, id string) error {
	_, err := c.lifecycle(ctx, id, "unsuspend", nil)

	return err
}

// Unlock implements okta.UsersClient.Unlock.
func (c *UsersClient) Unlock(ctx context.Context, id string) error {
	_, err := c.lifecycle(ctx, id, "unlock", nil)

	return err
}

// ResetPassword implements okta.UsersClient.ResetPassword.
func (c *UsersClient) ResetPassword(ctx context.Context, id string, sendEmail bool) (*okta.ResetPasswordToken, error) {
	resp, err := c.lifecycle(ctx, id, "reset_password", boolQuery("sendEmail", sendEmail))
	if err != nil {
		return nil, err
	}

	return decodeOne(resp, okta.ResetPasswordTokenSchema, "reset password")
}

// ExpirePassword implements okta.UsersClient.ExpirePassword.
func (c *UsersClient) ExpirePassword(ctx context.Context, id string) (*okta.User, error) {
	resp, err := c.lifecycle(ctx, id, "expire_password", boolQuery("tempPassword", false))
	if err != nil {
		return nil, err
	}

	return decodeOne(resp, okta.UserSchema, "user")
}

// ExpirePasswordWithTempPassword implements okta.UsersClient.ExpirePasswordWithTempPassword.
func (c *UsersClient) ExpirePasswordWithTempPassword(ctx context.Context, id string) (*okta.TempPassword, error) {
	resp, err := c.lifecycle(ctx, id, "expire_password", boolQuery("tempPassword", true))
	if err != nil {
		return nil, err
	}

	return decodeOne(resp, okta.TempPasswordSchema, "temporary password")
}

// ResetFactors implements okta.UsersClient.ResetFactors.
func (c *UsersClient) ResetFactors(ctx context.Context, id string) error {
	_, err := c.lifecycle(ctx, id, "reset_factors", nil)

	return err
}

// ClearSessions implements okta.UsersClient.ClearSessions.
func (c *UsersClient) ClearSessions(ctx context.Context, id string) error {
	if id == "" {
		return okta.ErrUserIDRequired
	}

	_, err := c.httpClient.Delete(ctx, userPath(id, "sessions"))
	if err != nil {
		return fmt.Errorf("clearing user sessions: %w", err)
	}

	return nil
}

// ChangePassword implements okta.UsersClient.ChangePassword.
func (c *UsersClient) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) (*okta.LoginCredentials, error) {
	if id == "" {
		return nil, okta.ErrUserIDRequired
	}

	request := &okta.ChangePasswordRequest{
		OldPassword: &okta.Password{Value: oldPassword},
		NewPassword: &okta.Password{Value: newPassword},
	}

	resp, err := c.httpClient.Post(ctx, userPath(id, "credentials", "change_password"),
		okta.ChangePasswordRequestSchema.Encode(request))
	if err != nil {
		return nil, fmt.Errorf("changing password: %w", err)
	}

	return decodeOne(resp, okta.LoginCredentialsSchema, "credentials")
}

// ChangeRecoveryQuestion implements okta.UsersClient.ChangeRecoveryQuestion.
func (c *UsersClient) ChangeRecoveryQuestion(
	ctx context.Context, id, password, question, answer string,
) (*okta.LoginCredentials, error) {
	if id == "" {
		return nil, okta.ErrUserIDRequired
	}

	request := &okta.LoginCredentials{
		Password:         &okta.Password{Value: password},
		RecoveryQuestion: &okta.RecoveryQuestion{Question: question, Answer: answer},
	}

	resp, err := c.httpClient.Post(ctx, userPath(id, "credentials", "change_recovery_question"), request)
	if err != nil {
		return nil, fmt.Errorf("changing recovery question: %w", err)
	}

	return decodeOne(resp, okta.LoginCredentialsSchema, "credentials")
}
