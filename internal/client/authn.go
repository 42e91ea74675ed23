package client

import (
	"context"
	"fmt"

	"github.com/mdwallick/okta-sdk-go/internal/constants"
	"github.com/mdwallick/okta-sdk-go/internal/http"
	"github.com/mdwallick/okta-sdk-go/pkg/okta"
)

// AuthnClient implements okta.AuthnClient.
type AuthnClient struct {
	httpClient *http.Client
}

// NewAuthnClient creates a new authentication client.
func NewAuthnClient(httpClient *http.Client) *AuthnClient {
	return &AuthnClient{
		httpClient: httpClient,
	}
}

// Authenticate implements okta.AuthnClient.Authenticate.
func (c *AuthnClient) Authenticate(ctx context.Context, req *okta.AuthRequest) (*okta.AuthResult, error) {
	if req == nil {
		return nil, okta.ErrNilRequest
	}

	resp, err := c.httpClient.Post(ctx, constants.APIPathAuthn, req)
	if err != nil {
		return nil, fmt.Errorf("authenticating: %w", err)
	}

	return decodeOne(resp, okta.AuthResultSchema, "authentication")
}

// VerifyFactor implements okta.AuthnClient.VerifyFactor.
func (c *AuthnClient) VerifyFactor(
	ctx context.Context, factorID string, req *okta.VerifyFactorRequest,
) (*okta.AuthResult, error) {
	if factorID == "" {
		return nil, okta.ErrFactorIDRequired
	}

	if req == nil || req.StateToken == "" {
		return nil, okta.ErrStateTokenRequired
	}

	path := constants.APIPathAuthn + "/factors/" + escape(factorID) + "/verify"

	resp, err := c.httpClient.Post(ctx, path, req)
	if err != nil {
		return nil, fmt.Errorf("verifying factor: %w", err)
	}

	return decodeOne(resp, okta.AuthResultSchema, "authentication")
}

// Cancel implements okta.AuthnClient.Cancel.
func (c *AuthnClient) Cancel(ctx context.Context, stateToken string) (*okta.AuthResult, error) {
	if stateToken == "" {
		return nil, okta.ErrStateTokenRequired
	}

	resp, err := c.httpClient.Post(ctx, constants.APIPathAuthn+"/cancel", okta.NewStateTokenRequest(stateToken))
	if err != nil {
		return nil, fmt.Errorf("cancelling authentication: %w", err)
	}

	return decodeOne(resp, okta.AuthResultSchema, "authentication")
}
