package okta

import (
	"time"

	"github.com/mdwallick/okta-sdk-go/pkg/codec"
)

// User statuses.
const (
	UserStatusStaged          = "STAGED"
	UserStatusProvisioned     = "PROVISIONED"
	UserStatusActive          = "ACTIVE"
	UserStatusRecovery        = "RECOVERY"
	UserStatusPasswordExpired = "PASSWORD_EXPIRED"
	UserStatusLockedOut       = "LOCKED_OUT"
	UserStatusSuspended       = "SUSPENDED"
	UserStatusDeprovisioned   = "DEPROVISIONED"
)

// User is an Okta user.
type User struct {
	ID                    string
	Status                string
	TransitioningToStatus string
	Created               time.Time
	Activated             time.Time
	StatusChanged         time.Time
	LastLogin             time.Time
	LastUpdated           time.Time
	PasswordChanged       time.Time
	Profile               *UserProfile
	Credentials           *LoginCredentials
	Links                 Links
}

// UserProfile holds the base Okta user profile attributes.
type UserProfile struct {
	Login             string
	Email             string
	SecondEmail       string
	FirstName         string
	LastName          string
	MiddleName        string
	DisplayName       string
	NickName          string
	Title             string
	PrimaryPhone      string
	MobilePhone       string
	City              string
	State             string
	ZipCode           string
	CountryCode       string
	Locale            string
	Timezone          string
	UserType          string
	EmployeeNumber    string
	Organization      string
	Department        string
	ManagerID         string
	PreferredLanguage string
}

// LoginCredentials are a user's primary authentication and recovery credentials.
type LoginCredentials struct {
	Password         *Password
	RecoveryQuestion *RecoveryQuestion
	Provider         *AuthProvider
}

// Password holds a password value. Okta never returns the value.
type Password struct {
	Value string
}

// RecoveryQuestion is a user's forgotten-password question.
type RecoveryQuestion struct {
	Question string
	Answer   string
}

// AuthProvider identifies the credential provider of a user.
type AuthProvider struct {
	Type string
	Name string
}

// ActivationToken is returned when activating a user without sending email.
type ActivationToken struct {
	ActivationURL   string
	ActivationToken string
}

// ResetPasswordToken is returned when resetting a password without sending email.
type ResetPasswordToken struct {
	ResetPasswordURL string
}

// TempPassword is returned when expiring a password with a temporary replacement.
type TempPassword struct {
	TempPassword string
}

// ChangePasswordRequest changes a user's password given the current one.
type ChangePasswordRequest struct {
	OldPassword *Password
	NewPassword *Password
}

// CreateUserOptions are the query flags of a create user call.
type CreateUserOptions struct {
	Activate  *bool
	Provider  bool
	NextLogin string
}

// DeleteUserOptions are the options of a delete user call.
type DeleteUserOptions struct {
	// Deactivate issues the deactivate call first; Okta only deletes deprovisioned users.
	Deactivate bool
	SendEmail  bool
}

var (
	// PasswordSchema describes Password.
	PasswordSchema = codec.NewSchema("Password", nil,
		codec.Str("value", func(p *Password) *string { return &p.Value }),
	)

	// RecoveryQuestionSchema describes RecoveryQuestion.
	RecoveryQuestionSchema = codec.NewSchema("RecoveryQuestion", nil,
		codec.Str("question", func(q *RecoveryQuestion) *string { return &q.Question }),
		codec.Str("answer", func(q *RecoveryQuestion) *string { return &q.Answer }),
	)

	// AuthProviderSchema describes AuthProvider.
	AuthProviderSchema = codec.NewSchema("AuthProvider", nil,
		codec.Str("type", func(p *AuthProvider) *string { return &p.Type }),
		codec.Str("name", func(p *AuthProvider) *string { return &p.Name }),
	)

	// LoginCredentialsSchema describes LoginCredentials.
	LoginCredentialsSchema = codec.NewSchema("LoginCredentials",
		map[string]string{"recovery_question": "recoveryQuestion"},
		codec.Ref("password", PasswordSchema, func(c *LoginCredentials) **Password { return &c.Password }),
		codec.Ref("recoveryQuestion", RecoveryQuestionSchema,
			func(c *LoginCredentials) **RecoveryQuestion { return &c.RecoveryQuestion }),
		codec.Ref("provider", AuthProviderSchema, func(c *LoginCredentials) **AuthProvider { return &c.Provider }),
	)

	// UserProfileSchema describes UserProfile.
	UserProfileSchema = codec.NewSchema("UserProfile", nil,
		codec.Str("login", func(p *UserProfile) *string { return &p.Login }),
		codec.Str("email", func(p *UserProfile) *string { return &p.Email }),
		codec.Str("secondEmail", func(p *UserProfile) *string { return &p.SecondEmail }),
		codec.Str("firstName", func(p *UserProfile) *string { return &p.FirstName }),
		codec.Str("lastName", func(p *UserProfile) *string { return &p.LastName }),
		codec.Str("middleName", func(p *UserProfile) *string { return &p.MiddleName }),
		codec.Str("displayName", func(p *UserProfile) *string { return &p.DisplayName }),
		codec.Str("nickName", func(p *UserProfile) *string { return &p.NickName }),
		codec.Str("title", func(p *UserProfile) *string { return &p.Title }),
		codec.Str("primaryPhone", func(p *UserProfile) *string { return &p.PrimaryPhone }),
		codec.Str("mobilePhone", func(p *UserProfile) *string { return &p.MobilePhone }),
		codec.Str("city", func(p *UserProfile) *string { return &p.City }),
		codec.Str("state", func(p *UserProfile) *string { return &p.State }),
		codec.Str("zipCode", func(p *UserProfile) *string { return &p.ZipCode }),
		codec.Str("countryCode", func(p *UserProfile) *string { return &p.CountryCode }),
		codec.Str("locale", func(p *UserProfile) *string { return &p.Locale }),
		codec.Str("timezone", func(p *UserProfile) *string { return &p.Timezone }),
		codec.Str("userType", func(p *UserProfile) *string { return &p.UserType }),
		codec.Str("employeeNumber", func(p *UserProfile) *string { return &p.EmployeeNumber }),
		codec.Str("organization", func(p *UserProfile) *string { return &p.Organization }),
		codec.Str("department", func(p *UserProfile) *string { return &p.Department }),
		codec.Str("managerId", func(p *UserProfile) *string { return &p.ManagerID }),
		codec.Str("preferredLanguage", func(p *UserProfile) *string { return &p.PreferredLanguage }),
	)

	// UserSchema describes User.
	UserSchema = codec.NewSchema("User", wireRenames(),
		codec.Str("id", func(u *User) *string { return &u.ID }),
		codec.Str("status", func(u *User) *string { return &u.Status }),
		codec.Str("transitioningToStatus", func(u *User) *string { return &u.TransitioningToStatus }),
		codec.Time("created", func(u *User) *time.Time { return &u.Created }),
		codec.Time("activated", func(u *User) *time.Time { return &u.Activated }),
		codec.Time("statusChanged", func(u *User) *time.Time { return &u.StatusChanged }),
		codec.Time("lastLogin", func(u *User) *time.Time { return &u.LastLogin }),
		codec.Time("lastUpdated", func(u *User) *time.Time { return &u.LastUpdated }),
		codec.Time("passwordChanged", func(u *User) *time.Time { return &u.PasswordChanged }),
		codec.Ref("profile", UserProfileSchema, func(u *User) **UserProfile { return &u.Profile }),
		codec.Ref("credentials", LoginCredentialsSchema, func(u *User) **LoginCredentials { return &u.Credentials }),
		linksField(func(u *User) *Links { return &u.Links }),
	)

	// ActivationTokenSchema describes ActivationToken.
	ActivationTokenSchema = codec.NewSchema("ActivationToken", nil,
		codec.Str("activationUrl", func(a *ActivationToken) *string { return &a.ActivationURL }),
		codec.Str("activationToken", func(a *ActivationToken) *string { return &a.ActivationToken }),
	)

	// ResetPasswordTokenSchema describes ResetPasswordToken.
	ResetPasswordTokenSchema = codec.NewSchema("ResetPasswordToken", nil,
		codec.Str("resetPasswordUrl", func(r *ResetPasswordToken) *string { return &r.ResetPasswordURL }),
	)

	// TempPasswordSchema describes TempPassword.
	TempPasswordSchema = codec.NewSchema("TempPassword", nil,
		codec.Str("tempPassword", func(t *TempPassword) *string { return &t.TempPassword }),
	)

	// ChangePasswordRequestSchema describes ChangePasswordRequest.
	ChangePasswordRequestSchema = codec.NewSchema("ChangePasswordRequest", nil,
		codec.Ref("oldPassword", PasswordSchema, func(r *ChangePasswordRequest) **Password { return &r.OldPassword }),
		codec.Ref("newPassword", PasswordSchema, func(r *ChangePasswordRequest) **Password { return &r.NewPassword }),
	)
)

// MarshalJSON implements json.Marshaler.
func (u *User) MarshalJSON() ([]byte, error) { return codec.Marshal(u, UserSchema) }

// UnmarshalJSON implements json.Unmarshaler.
func (u *User) UnmarshalJSON(data []byte) error { return codec.Unmarshal(data, UserSchema, u) }

// MarshalJSON implements json.Marshaler.
func (p *UserProfile) MarshalJSON() ([]byte, error) { return codec.Marshal(p, UserProfileSchema) }

// UnmarshalJSON implements json.Unmarshaler.
func (p *UserProfile) UnmarshalJSON(data []byte) error {
	return codec.Unmarshal(data, UserProfileSchema, p)
}

// MarshalJSON implements json.Marshaler.
func (c *LoginCredentials) MarshalJSON() ([]byte, error) {
	return codec.Marshal(c, LoginCredentialsSchema)
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *LoginCredentials) UnmarshalJSON(data []byte) error {
	return codec.Unmarshal(data, LoginCredentialsSchema, c)
}

// MarshalJSON implements json.Marshaler.
func (a *ActivationToken) MarshalJSON() ([]byte, error) {
	return codec.Marshal(a, ActivationTokenSchema)
}

// MarshalJSON implements json.Marshaler.
func (r *ResetPasswordToken) MarshalJSON() ([]byte, error) {
	return codec.Marshal(r, ResetPasswordTokenSchema)
}

// MarshalJSON implements json.Marshaler.
func (t *TempPassword) MarshalJSON() ([]byte, error) {
	return codec.Marshal(t, TempPasswordSchema)
}

// NewUser returns a user with a profile populated from the common attributes.
func NewUser(login, email, firstName, lastName string) *User {
	return &User{
		Profile: &UserProfile{
			Login:     login,
			Email:     email,
			FirstName: firstName,
			LastName:  lastName,
		},
	}
}

// WithPassword sets the user's password credential.
func (u *User) WithPassword(password string) *User {
	if u.Credentials == nil {
		u.Credentials = &LoginCredentials{}
	}

	u.Credentials.Password = &Password{Value: password}

	return u
}

// WithRecoveryQuestion sets the user's recovery question credential.
func (u *User) WithRecoveryQuestion(question, answer string) *User {
	if u.Credentials == nil {
		u.Credentials = &LoginCredentials{}
	}

	u.Credentials.RecoveryQuestion = &RecoveryQuestion{Question: question, Answer: answer}

	return u
}
