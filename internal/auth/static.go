package auth

import (
	"context"
	"errors"
	"time"

	"github.com/mdwallick/okta-sdk-go/internal/constants"
)

// ErrTokenExpired is returned when an access token has passed its expiry.
var ErrTokenExpired = errors.New("access token has expired")

// StaticTokenManager serves a fixed credential: an Okta API token (SSWS) or an OAuth 2.0
// access token (Bearer). Neither can be refreshed by the client.
type StaticTokenManager struct {
	store     *TokenStore
	tokenType string
}

// NewAPITokenManager returns a manager for an Okta API token.
func NewAPITokenManager(token string) *StaticTokenManager {
	return newStaticTokenManager(token, TokenTypeSSWS, time.Time{})
}

// NewAccessTokenManager returns a manager for an OAuth 2.0 access token. A zero
// expiresAt means the expiry is unknown.
func NewAccessTokenManager(token string, expiresAt time.Time) *StaticTokenManager {
	return newStaticTokenManager(token, TokenTypeBearer, expiresAt)
}

func newStaticTokenManager(token, tokenType string, expiresAt time.Time) *StaticTokenManager {
	m := &StaticTokenManager{store: NewTokenStore(), tokenType: tokenType}
	m.SetToken(token, expiresAt)

	return m
}

// GetToken returns the credential.
func (m *StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if token == nil || token.AccessToken == "" {
		return "", constants.ErrEmptyToken
	}

	if !token.Valid() {
		return "", ErrTokenExpired
	}

	return token.AccessToken, nil
}

// RefreshToken always fails: a static credential has no refresh grant.
func (m *StaticTokenManager) RefreshToken(ctx context.Context) error {
	return constants.ErrStaticTokenCannotRefresh
}

// SetToken replaces the credential.
func (m *StaticTokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{AccessToken: token, TokenType: m.tokenType, ExpiresAt: expiresAt})
}

// TokenType returns the authorization scheme, SSWS or Bearer.
func (m *StaticTokenManager) TokenType() string {
	return m.tokenType
}

// Token returns the current token.
func (m *StaticTokenManager) Token() *Token {
	return m.store.Get()
}
