package client

import (
	"context"
	"fmt"

	"github.com/mdwallick/okta-sdk-go/internal/constants"
	"github.com/mdwallick/okta-sdk-go/internal/http"
	"github.com/mdwallick/okta-sdk-go/pkg/okta"
)

// SessionsClient implements okta.SessionsClient.
type SessionsClient struct {
	httpClient *http.Client
}

// NewSessionsClient creates a new sessions client.
func NewSessionsClient(httpClient *http.Client) *SessionsClient {
	return &SessionsClient{
		httpClient: httpClient,
	}
}

func sessionPath(id string) string {
	return constants.APIPathSessions + "/" + escape(id)
}

// Create implements okta.SessionsClient.Create.
func (c *SessionsClient) Create(ctx context.Context, sessionToken string) (*okta.Session, error) {
	if sessionToken == "" {
		return nil, okta.ErrNilRequest
	}

	request := &okta.CreateSessionRequest{SessionToken: sessionToken}

	resp, err := c.httpClient.Post(ctx, constants.APIPathSessions, request)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	return decodeOne(resp, okta.SessionSchema, "session")
}

// Get implements okta.SessionsClient.Get.
func (c *SessionsClient) Get(ctx context.Context, id string) (*okta.Session, error) {
	if id == "" {
		return nil, okta.ErrSessionIDRequired
	}

	resp, err := c.httpClient.Get(ctx, sessionPath(id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", err)
	}

	return decodeOne(resp, okta.SessionSchema, "session")
}

// Refresh implements okta.SessionsClient.Refresh.
func (c *SessionsClient) Refresh(ctx context.Context, id string) (*okta.Session, error) {
	if id == "" {
		return nil, okta.ErrSessionIDRequired
	}

	resp, err := c.httpClient.Post(ctx, sessionPath(id)+"/lifecycle/refresh", nil)
	if err != nil {
		return nil, fmt.Errorf("refreshing session: %w", err)
	}

	return decodeOne(resp, okta.SessionSchema, "session")
}

// Close implements okta.SessionsClient.Close.
func (c *SessionsClient) Close(ctx context.Context, id string) error {
	if id == "" {
		return okta.ErrSessionIDRequired
	}

	_, err := c.httpClient.Delete(ctx, sessionPath(id))
	if err != nil {
		return fmt.Errorf("closing session: %w", err)
	}

	return nil
}
