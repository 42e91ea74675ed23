package client

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/mdwallick/okta-sdk-go/internal/auth"
	"github.com/mdwallick/okta-sdk-go/internal/constants"
	"github.com/mdwallick/okta-sdk-go/internal/http"
	"github.com/mdwallick/okta-sdk-go/pkg/okta"
)

// Client implements the okta.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	baseURL      string
	logger       okta.Logger

	// Resource clients
	users    okta.UsersClient
	groups   okta.GroupsClient
	factors  okta.FactorsClient
	events   okta.EventsClient
	sessions okta.SessionsClient
	authn    okta.AuthnClient
}

// validateConfig checks the fields New cannot do without.
func validateConfig(config *okta.Config) error {
	if config == nil {
		return okta.ErrConfigRequired
	}

	if config.OrgURL == "" {
		return okta.ErrOrgURLRequired
	}

	if config.APIToken != "" && config.AccessToken != "" {
		return okta.ErrConflictingTokens
	}

	if config.APIToken == "" && config.AccessToken == "" {
		return okta.ErrCredentialsRequired
	}

	return nil
}

// createTokenManager creates the token manager matching the configured credential.
func createTokenManager(config *okta.Config) auth.TokenManager {
	if config.AccessToken != "" {
		return auth.NewAccessTokenManager(config.AccessToken, time.Time{})
	}

	return auth.NewAPITokenManager(config.APIToken)
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *okta.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.Interceptors != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(config.Interceptors))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// New creates a new Okta API client. The org URL is used as given; callers are
// expected to normalise it first (see oktaclient.New).
func New(ctx context.Context, config *okta.Config) (*Client, error) {
	err := validateConfig(config)
	if err != nil {
		return nil, err
	}

	return NewWithTokenManager(config, createTokenManager(config))
}

// NewWithTokenManager creates a new Okta API client with a custom token manager. The
// credential fields of config are ignored.
func NewWithTokenManager(config *okta.Config, tokenManager auth.TokenManager) (*Client, error) {
	if config == nil {
		return nil, okta.ErrConfigRequired
	}

	if config.OrgURL == "" {
		return nil, okta.ErrOrgURLRequired
	}

	httpClient := http.NewClient(config.OrgURL, tokenManager, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      httpClient.BaseURL(),
		logger:       config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

func (c *Client) initializeResourceClients() {
	c.users = NewUsersClient(c.httpClient)
	c.groups = NewGroupsClient(c.httpClient)
	c.factors = NewFactorsClient(c.httpClient)
	c.events = NewEventsClient(c.httpClient)
	c.sessions = NewSessionsClient(c.httpClient)
	c.authn = NewAuthnClient(c.httpClient)
}

// GetTokenManager returns the token manager for this client.
func (c *Client) GetTokenManager() auth.TokenManager {
	return c.tokenManager
}

// BaseURL returns the org URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetRaw implements okta.RawClient.GetRaw.
func (c *Client) GetRaw(ctx context.Context, path string, query url.Values) ([]byte, string, error) {
	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, "", fmt.Errorf("getting %s: %w", path, err)
	}

	return resp.Body, okta.ParseNextLink(resp.Headers), nil
}

// Resource client accessors

// Users implements okta.Client.Users.
func (c *Client) Users() okta.UsersClient {
	return c.users
}

// Groups implements okta.Client.Groups.
func (c *Client) Groups() okta.GroupsClient {
	return c.groups
}

// Factors implements okta.Client.Factors.
func (c *Client) Factors() okta.FactorsClient {
	return c.factors
}

// Events implements okta.Client.Events.
func (c *Client) Events() okta.EventsClient {
	return c.events
}

// Sessions implements okta.Client.Sessions.
func (c *Client) Sessions() okta.SessionsClient {
	return c.sessions
}

// Authn implements okta.Client.Authn.
func (c *Client) Authn() okta.AuthnClient {
	return c.authn
}

// loggerAdapter adapts okta.Logger to http.Logger.
type loggerAdapter struct {
	logger okta.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}

var _ okta.Client = (*Client)(nil)
