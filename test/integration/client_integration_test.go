//go:build integration

package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mdwallick/okta-sdk-go/pkg/okta"
	"github.com/stretchr/testify/suite"
)

// ClientIntegrationTestSuite exercises the SDK directly against a live org.
type ClientIntegrationTestSuite struct {
	suite.Suite

	client okta.Client
	ctx    context.Context
	cancel context.CancelFunc

	user  *okta.User
	group *okta.Group
}

// SetupSuite builds the client and the shared user and group.
func (s *ClientIntegrationTestSuite) SetupSuite() {
	config := LoadTestConfig()
	config.SkipIfMissingOrg(s.T())

	s.ctx, s.cancel = context.WithTimeout(context.Background(), 5*time.Minute)

	client, err := config.NewClient(s.ctx)
	s.Require().NoError(err)
	s.client = client

	activate := true
	login := GenerateTestLogin("sdk-user")
	user := okta.NewUser(login, login, "Suite", "User")
	user.Credentials = &okta.LoginCredentials{Password: &okta.Password{Value: testPassword}}

	s.user, err = s.client.Users().Create(s.ctx, user, &okta.CreateUserOptions{Activate: &activate})
	s.Require().NoError(err)

	s.group, err = s.client.Groups().Create(s.ctx, okta.NewGroup(GenerateTestName("sdk-group"), "SDK suite group"))
	s.Require().NoError(err)
}

// TearDownSuite removes the shared user and group.
func (s *ClientIntegrationTestSuite) TearDownSuite() {
	if s.client == nil {
		return
	}

	if s.user != nil {
		err := s.client.Users().Delete(s.ctx, s.user.ID, &okta.DeleteUserOptions{Deactivate: true})
		if err != nil {
			s.T().Logf("cleanup of user %s failed: %v", s.user.ID, err)
		}
	}

	if s.group != nil {
		err := s.client.Groups().Delete(s.ctx, s.group.ID)
		if err != nil {
			s.T().Logf("cleanup of group %s failed: %v", s.group.ID, err)
		}
	}

	s.cancel()
}

func (s *ClientIntegrationTestSuite) TestGetByLogin() {
	user, err := s.client.Users().Get(s.ctx, s.user.Profile.Login)
	s.Require().NoError(err)
	s.Equal(s.user.ID, user.ID)
	s.False(user.Created.IsZero())
}

func (s *ClientIntegrationTestSuite) TestPartialUpdateKeepsProfile() {
	patch := &okta.User{Profile: &okta.UserProfile{Title: "Tester"}}

	user, err := s.client.Users().Update(s.ctx, s.user.ID, patch, true)
	s.Require().NoError(err)
	s.Equal("Tester", user.Profile.Title)
	s.Equal(s.user.Profile.Login, user.Profile.Login)
}

func (s *ClientIntegrationTestSuite) TestGroupMembership() {
	groups := s.client.Groups()

	s.Require().NoError(groups.AddUser(s.ctx, s.group.ID, s.user.ID))

	page, err := groups.ListUsers(s.ctx, s.group.ID, nil)
	s.Require().NoError(err)
	s.Require().Len(page.Items, 1)
	s.Equal(s.user.ID, page.Items[0].ID)

	memberOf, err := s.client.Users().ListGroups(s.ctx, s.user.ID)
	s.Require().NoError(err)

	ids := make([]string, 0, len(memberOf))
	for _, group := range memberOf {
		ids = append(ids, group.ID)
	}

	s.Contains(ids, s.group.ID)
	s.Require().NoError(groups.RemoveUser(s.ctx, s.group.ID, s.user.ID))
}

func (s *ClientIntegrationTestSuite) TestPagerVisitsEveryPage() {
	pager, err := s.client.Groups().Pager(s.ctx, okta.NewListParams().WithLimit(1))
	s.Require().NoError(err)

	seen := map[string]bool{}

	for {
		for _, group := range pager.Items() {
			s.False(seen[group.ID], "group %s returned twice", group.ID)
			seen[group.ID] = true
		}

		if !pager.HasMore() || pager.Calls() >= 5 {
			break
		}

		s.Require().NoError(pager.Advance(s.ctx))
	}

	s.NotEmpty(seen)
}

func (s *ClientIntegrationTestSuite) TestSuspendAndUnsuspend() {
	users := s.client.Users()

	s.Require().NoError(users.Suspend(s.ctx, s.user.ID))

	user, err := users.Get(s.ctx, s.user.ID)
	s.Require().NoError(err)
	s.Equal(okta.UserStatusSuspended, user.Status)

	s.Require().NoError(users.Unsuspend(s.ctx, s.user.ID))
}

func (s *ClientIntegrationTestSuite) TestFactorCatalog() {
	catalog, err := s.client.Factors().Catalog(s.ctx, s.user.ID)
	s.Require().NoError(err)
	s.NotEmpty(catalog)
}

func (s *ClientIntegrationTestSuite) TestPrimaryAuthenticationAndSession() {
	result, err := s.client.Authn().Authenticate(s.ctx, &okta.AuthRequest{
		Username: s.user.Profile.Login,
		Password: testPassword,
	})
	s.Require().NoError(err)

	if result.Status != okta.AuthStatusSuccess {
		s.T().Skipf("org policy requires %s after primary authentication", result.Status)
	}

	session, err := s.client.Sessions().Create(s.ctx, result.SessionToken)
	s.Require().NoError(err)
	s.Equal(s.user.ID, session.UserID)

	s.Require().NoError(s.client.Sessions().Close(s.ctx, session.ID))

	_, err = s.client.Sessions().Get(s.ctx, session.ID)
	s.True(okta.IsNotFound(err), "closed session should be gone, got %v", err)
}

func (s *ClientIntegrationTestSuite) TestMissingUser() {
	_, err := s.client.Users().Get(s.ctx, "00u-does-not-exist")
	s.Require().Error(err)
	s.True(okta.IsNotFound(err))

	var apiErr *okta.Error
	s.Require().True(errors.As(err, &apiErr))
	s.Equal(okta.ErrorCodeNotFound, apiErr.ErrorCode)
}

func TestClientIntegrationSuite(t *testing.T) {
	suite.Run(t, new(ClientIntegrationTestSuite))
}
