package auth

import (
	"context"
	"sync"
	"time"
)

// Authorization schemes understood by Okta.
const (
	TokenTypeSSWS   = "SSWS"
	TokenTypeBearer = "Bearer"
)

// expiryBuffer treats a token as expired slightly before it really is.
const expiryBuffer = 30 * time.Second

// TokenManager supplies the credential attached to each request.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) error
	SetToken(token string, expiresAt time.Time)
}

// SchemeProvider is implemented by token managers whose tokens are not sent with the
// Bearer scheme.
type SchemeProvider interface {
	TokenType() string
}

// Token is a credential plus its scheme and optional expiry.
type Token struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

// Valid reports whether the token is present and not about to expire. API tokens carry
// no expiry and stay valid until revoked server-side.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return time.Now().Add(expiryBuffer).Before(t.ExpiresAt)
}

// Authorization returns the Authorization header value for the token.
func (t *Token) Authorization() string {
	scheme := t.TokenType
	if scheme == "" {
		scheme = TokenTypeBearer
	}

	return scheme + " " + t.AccessToken
}

// TokenStore holds the current token and is safe for concurrent use.
type TokenStore struct {
	mu    sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the current token, or nil.
func (s *TokenStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// Set replaces the current token.
func (s *TokenStore) Set(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

// Clear removes the current token.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
}
