package okta

import (
	"time"

	"github.com/mdwallick/okta-sdk-go/pkg/codec"
)

// Factor types.
const (
	FactorTypeEmail    = "email"
	FactorTypeSMS      = "sms"
	FactorTypeCall     = "call"
	FactorTypeQuestion = "question"
	FactorTypeTOTP     = "token:software:totp"
	FactorTypePush     = "push"
)

// Factor providers.
const (
	FactorProviderOkta   = "OKTA"
	FactorProviderGoogle = "GOOGLE"
)

// Factor statuses.
const (
	FactorStatusNotSetup          = "NOT_SETUP"
	FactorStatusPendingActivation = "PENDING_ACTIVATION"
	FactorStatusEnrolled          = "ENROLLED"
	FactorStatusActive            = "ACTIVE"
	FactorStatusInactive          = "INACTIVE"
	FactorStatusExpired           = "EXPIRED"
)

// Factor verification results.
const (
	FactorResultWaiting   = "WAITING"
	FactorResultSuccess   = "SUCCESS"
	FactorResultRejected  = "REJECTED"
	FactorResultTimeout   = "TIMEOUT"
	FactorResultChallenge = "CHALLENGE"
)

const embeddedActivation = "activation"

// Factor is a multifactor authentication factor enrolled for a user, or an org-level
// factor definition.
type Factor struct {
	ID          string
	FactorType  string
	Provider    string
	VendorName  string
	Status      string
	Created     time.Time
	LastUpdated time.Time
	Profile     *FactorProfile
	Links       Links
	Embedded    map[string]*FactorActivation
}

// Activation returns the activation details embedded in an enrollment response.
func (f *Factor) Activation() *FactorActivation {
	if f == nil {
		return nil
	}

	return f.Embedded[embeddedActivation]
}

// FactorProfile holds the type-specific attributes of a factor.
type FactorProfile struct {
	CredentialID   string
	Email          string
	PhoneNumber    string
	PhoneExtension string
	Question       string
	QuestionText   string
	Answer         string
	DeviceType     string
	Name           string
	Platform       string
	Version        string
}

// FactorActivation carries the data needed to finish activating a factor: the TOTP
// shared secret, or push polling links and a QR code.
type FactorActivation struct {
	TimeStep     int
	SharedSecret string
	Encoding     string
	KeyLength    int
	FactorResult string
	ExpiresAt    time.Time
	Links        Links
}

// QRCodeHref returns the QR code link of a TOTP or push activation.
func (a *FactorActivation) QRCodeHref() string {
	if a == nil {
		return ""
	}

	return a.Links.Href("qrcode")
}

// FactorCatalogEntry is a factor a user may enroll in.
type FactorCatalogEntry struct {
	FactorType string
	Provider   string
	Enrollment string
	Status     string
	Links      Links
}

// Question is a security question available to the question factor.
type Question struct {
	Question     string
	QuestionText string
}

// FactorVerification is the result of verifying a factor.
type FactorVerification struct {
	FactorResult        string
	FactorResultMessage string
	ExpiresAt           time.Time
	Links               Links
}

// VerifyFactorRequest carries the credential used to verify a factor. StateToken is only
// used by the authentication API.
type VerifyFactorRequest struct {
	StateToken      string
	PassCode        string
	NextPassCode    string
	Answer          string
	ActivationToken string
}

// EnrollFactorOptions are the query flags of a factor enrollment.
type EnrollFactorOptions struct {
	UpdatePhone bool
	Activate    bool
}

var (
	// FactorProfileSchema describes FactorProfile.
	FactorProfileSchema = codec.NewSchema("FactorProfile", nil,
		codec.Str("credentialId", func(p *FactorProfile) *string { return &p.CredentialID }),
		codec.Str("email", func(p *FactorProfile) *string { return &p.Email }),
		codec.Str("phoneNumber", func(p *FactorProfile) *string { return &p.PhoneNumber }),
		codec.Str("phoneExtension", func(p *FactorProfile) *string { return &p.PhoneExtension }),
		codec.Str("question", func(p *FactorProfile) *string { return &p.Question }),
		codec.Str("questionText", func(p *FactorProfile) *string { return &p.QuestionText }),
		codec.Str("answer", func(p *FactorProfile) *string { return &p.Answer }),
		codec.Str("deviceType", func(p *FactorProfile) *string { return &p.DeviceType }),
		codec.Str("name", func(p *FactorProfile) *string { return &p.Name }),
		codec.Str("platform", func(p *FactorProfile) *string { return &p.Platform }),
		codec.Str("version", func(p *FactorProfile) *string { return &p.Version }),
	)

	// FactorActivationSchema describes FactorActivation.
	FactorActivationSchema = codec.NewSchema("FactorActivation", wireRenames(),
		codec.Int("timeStep", func(a *FactorActivation) *int { return &a.TimeStep }),
		codec.Str("sharedSecret", func(a *FactorActivation) *string { return &a.SharedSecret }),
		codec.Str("encoding", func(a *FactorActivation) *string { return &a.Encoding }),
		codec.Int("keyLength", func(a *FactorActivation) *int { return &a.KeyLength }),
		codec.Str("factorResult", func(a *FactorActivation) *string { return &a.FactorResult }),
		codec.Time("expiresAt", func(a *FactorActivation) *time.Time { return &a.ExpiresAt }),
		linksField(func(a *FactorActivation) *Links { return &a.Links }),
	)

	// FactorSchema describes Factor.
	FactorSchema = codec.NewSchema("Factor", wireRenames(),
		codec.Str("id", func(f *Factor) *string { return &f.ID }),
		codec.Str("factorType", func(f *Factor) *string { return &f.FactorType }),
		codec.Str("provider", func(f *Factor) *string { return &f.Provider }),
		codec.Str("vendorName", func(f *Factor) *string { return &f.VendorName }),
		codec.Str("status", func(f *Factor) *string { return &f.Status }),
		codec.Time("created", func(f *Factor) *time.Time { return &f.Created }),
		codec.Time("lastUpdated", func(f *Factor) *time.Time { return &f.LastUpdated }),
		codec.Ref("profile", FactorProfileSchema, func(f *Factor) **FactorProfile { return &f.Profile }),
		linksField(func(f *Factor) *Links { return &f.Links }),
		codec.Dict("embedded", FactorActivationSchema,
			func(f *Factor) *map[string]*FactorActivation { return &f.Embedded }),
	)

	// FactorCatalogEntrySchema describes FactorCatalogEntry.
	FactorCatalogEntrySchema = codec.NewSchema("FactorCatalogEntry", wireRenames(),
		codec.Str("factorType", func(e *FactorCatalogEntry) *string { return &e.FactorType }),
		codec.Str("provider", func(e *FactorCatalogEntry) *string { return &e.Provider }),
		codec.Str("enrollment", func(e *FactorCatalogEntry) *string { return &e.Enrollment }),
		codec.Str("status", func(e *FactorCatalogEntry) *string { return &e.Status }),
		linksField(func(e *FactorCatalogEntry) *Links { return &e.Links }),
	)

	// QuestionSchema describes Question.
	QuestionSchema = codec.NewSchema("Question", nil,
		codec.Str("question", func(q *Question) *string { return &q.Question }),
		codec.Str("questionText", func(q *Question) *string { return &q.QuestionText }),
	)

	// FactorVerificationSchema describes FactorVerification.
	FactorVerificationSchema = codec.NewSchema("FactorVerification", wireRenames(),
		codec.Str("factorResult", func(v *FactorVerification) *string { return &v.FactorResult }),
		codec.Str("factorResultMessage", func(v *FactorVerification) *string { return &v.FactorResultMessage }),
		codec.Time("expiresAt", func(v *FactorVerification) *time.Time { return &v.ExpiresAt }),
		linksField(func(v *FactorVerification) *Links { return &v.Links }),
	)

	// VerifyFactorRequestSchema describes VerifyFactorRequest.
	VerifyFactorRequestSchema = codec.NewSchema("VerifyFactorRequest", nil,
		codec.Str("stateToken", func(r *VerifyFactorRequest) *string { return &r.StateToken }),
		codec.Str("passCode", func(r *VerifyFactorRequest) *string { return &r.PassCode }),
		codec.Str("nextPassCode", func(r *VerifyFactorRequest) *string { return &r.NextPassCode }),
		codec.Str("answer", func(r *VerifyFactorRequest) *string { return &r.Answer }),
		codec.Str("activationToken", func(r *VerifyFactorRequest) *string { return &r.ActivationToken }),
	)
)

// MarshalJSON implements json.Marshaler.
func (f *Factor) MarshalJSON() ([]byte, error) { return codec.Marshal(f, FactorSchema) }

// UnmarshalJSON implements json.Unmarshaler.
func (f *Factor) UnmarshalJSON(data []byte) error { return codec.Unmarshal(data, FactorSchema, f) }

// MarshalJSON implements json.Marshaler.
func (e *FactorCatalogEntry) MarshalJSON() ([]byte, error) {
	return codec.Marshal(e, FactorCatalogEntrySchema)
}

// MarshalJSON implements json.Marshaler.
func (q *Question) MarshalJSON() ([]byte, error) { return codec.Marshal(q, QuestionSchema) }

// MarshalJSON implements json.Marshaler.
func (v *FactorVerification) MarshalJSON() ([]byte, error) {
	return codec.Marshal(v, FactorVerificationSchema)
}

// MarshalJSON implements json.Marshaler.
func (r *VerifyFactorRequest) MarshalJSON() ([]byte, error) {
	return codec.Marshal(r, VerifyFactorRequestSchema)
}

// NewEmailFactor returns an enrollment request for the Okta email factor.
func NewEmailFactor(email string) *Factor {
	return &Factor{
		FactorType: FactorTypeEmail,
		Provider:   FactorProviderOkta,
		Profile:    &FactorProfile{Email: email},
	}
}

// NewSMSFactor returns an enrollment request for the Okta SMS factor.
func NewSMSFactor(phoneNumber string) *Factor {
	return &Factor{
		FactorType: FactorTypeSMS,
		Provider:   FactorProviderOkta,
		Profile:    &FactorProfile{PhoneNumber: phoneNumber},
	}
}

// NewCallFactor returns an enrollment request for the Okta voice call factor.
func NewCallFactor(phoneNumber string) *Factor {
	return &Factor{
		FactorType: FactorTypeCall,
		Provider:   FactorProviderOkta,
		Profile:    &FactorProfile{PhoneNumber: phoneNumber},
	}
}

// NewQuestionFactor returns an enrollment request for the security question factor.
func NewQuestionFactor(question, answer string) *Factor {
	return &Factor{
		FactorType: FactorTypeQuestion,
		Provider:   FactorProviderOkta,
		Profile:    &FactorProfile{Question: question, Answer: answer},
	}
}

// NewTOTPFactor returns an enrollment request for a software TOTP factor from provider.
func NewTOTPFactor(provider string) *Factor {
	return &Factor{FactorType: FactorTypeTOTP, Provider: provider}
}

// NewPushFactor returns an enrollment request for the Okta Verify push factor.
func NewPushFactor() *Factor {
	return &Factor{FactorType: FactorTypePush, Provider: FactorProviderOkta}
}
