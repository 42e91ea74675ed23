package okta

import (
	"time"

	"github.com/mdwallick/okta-sdk-go/pkg/codec"
)

// Session is an Okta browser session.
type Session struct {
	ID                       string
	Login                    string
	UserID                   string
	Status                   string
	CreatedAt                time.Time
	ExpiresAt                time.Time
	LastPasswordVerification time.Time
	LastFactorVerification   time.Time
	AMR                      []string
	IDP                      *SessionIdentityProvider
	MFAActive                *bool
	Links                    Links
}

// SessionIdentityProvider identifies where a session was authenticated.
type SessionIdentityProvider struct {
	ID   string
	Type string
}

// CreateSessionRequest exchanges a session token for a session.
type CreateSessionRequest struct {
	SessionToken string
}

var (
	// SessionIdentityProviderSchema describes SessionIdentityProvider.
	SessionIdentityProviderSchema = codec.NewSchema("SessionIdentityProvider", nil,
		codec.Str("id", func(p *SessionIdentityProvider) *string { return &p.ID }),
		codec.Str("type", func(p *SessionIdentityProvider) *string { return &p.Type }),
	)

	// SessionSchema describes Session.
	SessionSchema = codec.NewSchema("Session", wireRenames(),
		codec.Str("id", func(s *Session) *string { return &s.ID }),
		codec.Str("login", func(s *Session) *string { return &s.Login }),
		codec.Str("userId", func(s *Session) *string { return &s.UserID }),
		codec.Str("status", func(s *Session) *string { return &s.Status }),
		codec.Time("createdAt", func(s *Session) *time.Time { return &s.CreatedAt }),
		codec.Time("expiresAt", func(s *Session) *time.Time { return &s.ExpiresAt }),
		codec.Time("lastPasswordVerification", func(s *Session) *time.Time { return &s.LastPasswordVerification }),
		codec.Time("lastFactorVerification", func(s *Session) *time.Time { return &s.LastFactorVerification }),
		codec.Strings("amr", func(s *Session) *[]string { return &s.AMR }),
		codec.Ref("idp", SessionIdentityProviderSchema,
			func(s *Session) **SessionIdentityProvider { return &s.IDP }),
		codec.Bool("mfaActive", func(s *Session) **bool { return &s.MFAActive }),
		linksField(func(s *Session) *Links { return &s.Links }),
	)

	// CreateSessionRequestSchema describes CreateSessionRequest.
	CreateSessionRequestSchema = codec.NewSchema("CreateSessionRequest", nil,
		codec.Str("sessionToken", func(r *CreateSessionRequest) *string { return &r.SessionToken }),
	)
)

// MarshalJSON implements json.Marshaler.
func (s *Session) MarshalJSON() ([]byte, error) { return codec.Marshal(s, SessionSchema) }

// UnmarshalJSON implements json.Unmarshaler.
func (s *Session) UnmarshalJSON(data []byte) error { return codec.Unmarshal(data, SessionSchema, s) }

// MarshalJSON implements json.Marshaler.
func (r *CreateSessionRequest) MarshalJSON() ([]byte, error) {
	return codec.Marshal(r, CreateSessionRequestSchema)
}
