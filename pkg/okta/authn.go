package okta

import (
	"time"

	"github.com/mdwallick/okta-sdk-go/pkg/codec"
)

// Authentication transaction states.
const (
	AuthStatusSuccess           = "SUCCESS"
	AuthStatusMFARequired       = "MFA_REQUIRED"
	AuthStatusMFAEnroll         = "MFA_ENROLL"
	AuthStatusMFAChallenge      = "MFA_CHALLENGE"
	AuthStatusPasswordExpired   = "PASSWORD_EXPIRED"
	AuthStatusLockedOut         = "LOCKED_OUT"
	AuthStatusRecovery          = "RECOVERY"
	AuthStatusUnauthenticated   = "UNAUTHENTICATED"
	AuthStatusPasswordWarn      = "PASSWORD_WARN"
	AuthStatusRecoveryChallenge = "RECOVERY_CHALLENGE"
)

// AuthRequest starts a primary authentication transaction.
type AuthRequest struct {
	Username   string
	Password   string
	RelayState string
	Options    *AuthOptions
}

// AuthOptions are the transaction options of a primary authentication.
type AuthOptions struct {
	MultiOptionalFactorEnroll *bool
	WarnBeforePasswordExpired *bool
}

// AuthResult is the state of an authentication transaction.
type AuthResult struct {
	StateToken   string
	SessionToken string
	ExpiresAt    time.Time
	Status       string
	FactorResult string
	RelayState   string
	Embedded     *AuthEmbedded
	Links        Links
}

// AuthEmbedded holds the resources embedded in an authentication transaction.
type AuthEmbedded struct {
	User    *User
	Factors []*Factor
}

// stateTokenRequest is the body of calls that only carry a state token.
type stateTokenRequest struct {
	StateToken string
}

var (
	// AuthOptionsSchema describes AuthOptions.
	AuthOptionsSchema = codec.NewSchema("AuthOptions", nil,
		codec.Bool("multiOptionalFactorEnroll", func(o *AuthOptions) **bool { return &o.MultiOptionalFactorEnroll }),
		codec.Bool("warnBeforePasswordExpired", func(o *AuthOptions) **bool { return &o.WarnBeforePasswordExpired }),
	)

	// AuthRequestSchema describes AuthRequest.
	AuthRequestSchema = codec.NewSchema("AuthRequest", nil,
		codec.Str("username", func(r *AuthRequest) *string { return &r.Username }),
		codec.Str("password", func(r *AuthRequest) *string { return &r.Password }),
		codec.Str("relayState", func(r *AuthRequest) *string { return &r.RelayState }),
		codec.Ref("options", AuthOptionsSchema, func(r *AuthRequest) **AuthOptions { return &r.Options }),
	)

	// AuthEmbeddedSchema describes AuthEmbedded.
	AuthEmbeddedSchema = codec.NewSchema("AuthEmbedded", nil,
		codec.Ref("user", UserSchema, func(e *AuthEmbedded) **User { return &e.User }),
		codec.List("factors", FactorSchema, func(e *AuthEmbedded) *[]*Factor { return &e.Factors }),
	)

	// AuthResultSchema describes AuthResult.
	AuthResultSchema = codec.NewSchema("AuthResult", wireRenames(),
		codec.Str("stateToken", func(r *AuthResult) *string { return &r.StateToken }),
		codec.Str("sessionToken", func(r *AuthResult) *string { return &r.SessionToken }),
		codec.Time("expiresAt", func(r *AuthResult) *time.Time { return &r.ExpiresAt }),
		codec.Str("status", func(r *AuthResult) *string { return &r.Status }),
		codec.Str("factorResult", func(r *AuthResult) *string { return &r.FactorResult }),
		codec.Str("relayState", func(r *AuthResult) *string { return &r.RelayState }),
		codec.Ref("embedded", AuthEmbeddedSchema, func(r *AuthResult) **AuthEmbedded { return &r.Embedded }),
		linksField(func(r *AuthResult) *Links { return &r.Links }),
	)

	stateTokenRequestSchema = codec.NewSchema("StateTokenRequest", nil,
		codec.Str("stateToken", func(r *stateTokenRequest) *string { return &r.StateToken }),
	)
)

// NewStateTokenRequest returns the body of a call that only carries a state token.
func NewStateTokenRequest(stateToken string) map[string]any {
	return stateTokenRequestSchema.Encode(&stateTokenRequest{StateToken: stateToken})
}

// MarshalJSON implements json.Marshaler.
func (r *AuthRequest) MarshalJSON() ([]byte, error) { return codec.Marshal(r, AuthRequestSchema) }

// MarshalJSON implements json.Marshaler.
func (r *AuthResult) MarshalJSON() ([]byte, error) { return codec.Marshal(r, AuthResultSchema) }

// UnmarshalJSON implements json.Unmarshaler.
func (r *AuthResult) UnmarshalJSON(data []byte) error {
	return codec.Unmarshal(data, AuthResultSchema, r)
}
