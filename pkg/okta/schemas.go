package okta

import "github.com/mdwallick/okta-sdk-go/pkg/codec"

// Schemas is the registry of every entity in this package, keyed by schema name.
var Schemas = codec.MustRegistry(
	LinkSchema,
	LinkHintsSchema,
	UserSchema,
	UserProfileSchema,
	LoginCredentialsSchema,
	PasswordSchema,
	RecoveryQuestionSchema,
	AuthProviderSchema,
	ActivationTokenSchema,
	ResetPasswordTokenSchema,
	TempPasswordSchema,
	ChangePasswordRequestSchema,
	GroupSchema,
	GroupProfileSchema,
	FactorSchema,
	FactorProfileSchema,
	FactorActivationSchema,
	FactorCatalogEntrySchema,
	QuestionSchema,
	FactorVerificationSchema,
	VerifyFactorRequestSchema,
	EventSchema,
	EventActionSchema,
	EventActorSchema,
	EventTargetSchema,
	SessionSchema,
	SessionIdentityProviderSchema,
	CreateSessionRequestSchema,
	AuthRequestSchema,
	AuthOptionsSchema,
	AuthResultSchema,
	AuthEmbeddedSchema,
	ErrorSchema,
	ErrorCauseSchema,
)
