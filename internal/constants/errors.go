package constants

import "errors"

// Configuration errors.
var (
	ErrNoOrgURL        = errors.New("no Okta org URL configured, set OKTA_ORG_URL or run 'okta configure'")
	ErrNoAPIToken      = errors.New("no API token configured, set OKTA_API_TOKEN or run 'okta configure'")
	ErrUnknownFormat   = errors.New("unknown output format")
	ErrUnknownLogLevel = errors.New("unknown log level")
)

// Validation errors.
var (
	ErrLoginRequired       = errors.New("--login is required")
	ErrGroupNameRequired   = errors.New("--name is required")
	ErrFactorTypeRequired  = errors.New("--type is required")
	ErrUnsupportedFactor   = errors.New("unsupported factor type")
	ErrPassCodeRequired    = errors.New("--passcode is required")
	ErrInvalidWhereClause  = errors.New("--where expression must evaluate to a boolean")
	ErrNATSURLRequired     = errors.New("--nats-url is required")
	ErrPasswordsMismatched = errors.New("passwords do not match")
)

// Token errors.
var (
	ErrStaticTokenCannotRefresh = errors.New("static token cannot be refreshed")
	ErrEmptyToken               = errors.New("token is empty")
)
