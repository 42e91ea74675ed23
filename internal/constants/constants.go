package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as session lookups.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits. The library itself never retries unless RetryMax is set.
const (
	// DefaultRetryMax is the retry count used by the CLI.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// API paths.
const (
	APIPathUsers      = "/api/v1/users"
	APIPathGroups     = "/api/v1/groups"
	APIPathEvents     = "/api/v1/events"
	APIPathSessions   = "/api/v1/sessions"
	APIPathAuthn      = "/api/v1/authn"
	APIPathOrgFactors = "/api/v1/org/factors"
)

// Time intervals and delays.
const (
	// DefaultPollInterval is used when polling a push factor.
	DefaultPollInterval = 2 * time.Second

	// DefaultPollTimeout bounds push factor polling.
	DefaultPollTimeout = 2 * time.Minute
)

// Pagination and display limits.
const (
	// DefaultPageSize is the page size used by the CLI when --limit is not set.
	DefaultPageSize = 200

	// SmallPageSize is used for demonstrations.
	SmallPageSize = 5

	// DemoDisplayLimit limits items shown in examples.
	DemoDisplayLimit = 3
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2

	// StringTruncationLength is the default length for truncating strings.
	StringTruncationLength = 60

	// MinimumTokenLengthForMask is the shortest token that is partially shown.
	MinimumTokenLengthForMask = 8
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// BooleanTrue is the string form of true.
const BooleanTrue = "true"

// Confirmation constants.
const (
	// ConfirmationYes for positive confirmations.
	ConfirmationYes = "yes"
)

// Event export.
const (
	// DefaultEventSubject is the NATS subject prefix for exported events.
	DefaultEventSubject = "okta.events"

	// NATSConnectTimeout bounds the initial NATS connection.
	NATSConnectTimeout = 5 * time.Second

	// NATSFlushTimeout bounds the final flush after publishing.
	NATSFlushTimeout = 10 * time.Second
)
