package okta

import (
	"context"
	"net/url"
	"time"
)

// UsersClient manages users and their lifecycle.
type UsersClient interface {
	List(ctx context.Context, params *ListParams) (*Page[User], error)
	// ListPage fetches the page at a next link returned by an earlier page.
	ListPage(ctx context.Context, nextURL string) (*Page[User], error)
	Pager(ctx context.Context, params *ListParams) (*Pager[User], error)
	ListAll(ctx context.Context, params *ListParams, opts *PaginationOptions) ([]*User, error)
	Get(ctx context.Context, idOrLogin string) (*User, error)
	Create(ctx context.Context, user *User, opts *CreateUserOptions) (*User, error)
	Update(ctx context.Context, id string, user *User, partial bool) (*User, error)
	Delete(ctx context.Context, id string, opts *DeleteUserOptions) error
	ListGroups(ctx context.Context, id string) ([]*Group, error)

	Activate(ctx context.Context, id string, sendEmail bool) (*ActivationToken, error)
	Reactivate(ctx context.Context, id string, sendEmail bool) (*ActivationToken, error)
	Deactivate(ctx context.Context, id string, sendEmail bool) error
	Suspend(ctx context.Context, id string) error
	Unsuspend(ctx context.Context, id string) error
	Unlock(ctx context.Context, id string) error
	ResetPassword(ctx context.Context, id string, sendEmail bool) (*ResetPasswordToken, error)
	ExpirePassword(ctx context.Context, id string) (*User, error)
	ExpirePasswordWithTempPassword(ctx context.Context, id string) (*TempPassword, error)
	ResetFactors(ctx context.Context, id string) error
	ClearSessions(ctx context.Context, id string) error

	ChangePassword(ctx context.Context, id, oldPassword, newPassword string) (*LoginCredentials, error)
	ChangeRecoveryQuestion(ctx context.Context, id, password, question, answer string) (*LoginCredentials, error)
}

// GroupsClient manages groups and their membership.
type GroupsClient interface {
	List(ctx context.Context, params *ListParams) (*Page[Group], error)
	// ListPage fetches the page at a next link returned by an earlier page.
	ListPage(ctx context.Context, nextURL string) (*Page[Group], error)
	Pager(ctx context.Context, params *ListParams) (*Pager[Group], error)
	ListAll(ctx context.Context, params *ListParams, opts *PaginationOptions) ([]*Group, error)
	Get(ctx context.Context, id string) (*Group, error)
	Create(ctx context.Context, group *Group) (*Group, error)
	Update(ctx context.Context, id string, group *Group) (*Group, error)
	Delete(ctx context.Context, id string) error
	ListUsers(ctx context.Context, id string, params *ListParams) (*Page[User], error)
	UsersPager(ctx context.Context, id string, params *ListParams) (*Pager[User], error)
	AddUser(ctx context.Context, groupID, userID string) error
	RemoveUser(ctx context.Context, groupID, userID string) error
}

// FactorsClient manages a user's MFA factors and the org-level factor settings.
type FactorsClient interface {
	Catalog(ctx context.Context, userID string) ([]*FactorCatalogEntry, error)
	List(ctx context.Context, userID string) ([]*Factor, error)
	Questions(ctx context.Context, userID string) ([]*Question, error)
	Get(ctx context.Context, userID, factorID string) (*Factor, error)

	Enroll(ctx context.Context, userID string, factor *Factor, opts *EnrollFactorOptions) (*Factor, error)
	EnrollEmail(ctx context.Context, userID, email string) (*Factor, error)
	EnrollSMS(ctx context.Context, userID, phoneNumber string, opts *EnrollFactorOptions) (*Factor, error)
	EnrollCall(ctx context.Context, userID, phoneNumber string, opts *EnrollFactorOptions) (*Factor, error)
	EnrollQuestion(ctx context.Context, userID, question, answer string) (*Factor, error)
	EnrollGoogleTOTP(ctx context.Context, userID string) (*Factor, error)
	EnrollOktaTOTP(ctx context.Context, userID string) (*Factor, error)
	EnrollOktaPush(ctx context.Context, userID string) (*Factor, error)

	Activate(ctx context.Context, userID, factorID, passCode string) (*Factor, error)
	Resend(ctx context.Context, userID, factorID string) (*Factor, error)
	Reset(ctx context.Context, userID, factorID string) error
	Verify(ctx context.Context, userID, factorID string, req *VerifyFactorRequest) (*FactorVerification, error)
	PollPushActivation(ctx context.Context, pollURL string) (*Factor, error)
	PollPushVerification(ctx context.Context, pollURL string) (*FactorVerification, error)

	ListOrgFactors(ctx context.Context) ([]*Factor, error)
	ActivateOrgFactor(ctx context.Context, factorID string) (*Factor, error)
	DeactivateOrgFactor(ctx context.Context, factorID string) (*Factor, error)
}

// EventsClient reads the system events feed.
type EventsClient interface {
	List(ctx context.Context, params *ListParams) (*Page[Event], error)
	// ListPage fetches the page at a next link returned by an earlier page.
	ListPage(ctx context.Context, nextURL string) (*Page[Event], error)
	Pager(ctx context.Context, params *ListParams) (*Pager[Event], error)
	ListAll(ctx context.Context, params *ListParams, opts *PaginationOptions) ([]*Event, error)
}

// SessionsClient manages browser sessions.
type SessionsClient interface {
	Create(ctx context.Context, sessionToken string) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Refresh(ctx context.Context, id string) (*Session, error)
	Close(ctx context.Context, id string) error
}

// AuthnClient drives primary authentication transactions.
type AuthnClient interface {
	Authenticate(ctx context.Context, req *AuthRequest) (*AuthResult, error)
	VerifyFactor(ctx context.Context, factorID string, req *VerifyFactorRequest) (*AuthResult, error)
	Cancel(ctx context.Context, stateToken string) (*AuthResult, error)
}

// RawClient issues GET requests without decoding, for generic tooling.
type RawClient interface {
	// GetRaw returns the classified response body and the next-page link.
	GetRaw(ctx context.Context, path string, query url.Values) (body []byte, next string, err error)
}

// Client is the Okta management API client.
type Client interface {
	Users() UsersClient
	Groups() GroupsClient
	Factors() FactorsClient
	Events() EventsClient
	Sessions() SessionsClient
	Authn() AuthnClient
	RawClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building an okta.Client.
//
// # Authentication
//
// Exactly one credential is required. APIToken is sent as "Authorization: SSWS <token>";
// AccessToken (an OAuth 2.0 token with okta.* scopes) is sent as a Bearer token.
//
// # Timeouts and retries
//
// Per-request deadlines come from the context passed to client methods; HTTPTimeout is
// the transport-level ceiling. The client never retries unless RetryMax is above zero,
// in which case 429 and 5xx responses and connection errors are retried with backoff
// between RetryWaitMin and RetryWaitMax.
type Config struct {
	// OrgURL is the base URL of the Okta org, e.g. "https://dev-123456.okta.com".
	// oktaclient.New trims a trailing slash and adds "https://" if no scheme is present.
	OrgURL string

	// APIToken is an Okta API token (SSWS).
	APIToken string
	// AccessToken is an OAuth 2.0 access token.
	AccessToken string

	// HTTPTimeout bounds a single HTTP exchange. Zero uses the default.
	HTTPTimeout time.Duration
	// RetryMax is the number of retries for transient failures. Zero disables retries.
	RetryMax int
	// RetryWaitMin is the minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between retries.
	RetryWaitMax time.Duration
	// Debug enables request/response logging when a Logger is provided.
	Debug bool
	// Logger is an optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Interceptors run around every request.
	Interceptors *InterceptorChain
}
