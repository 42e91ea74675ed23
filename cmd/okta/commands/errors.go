package commands

import "errors"

// Static errors for err113 compliance.
var (
	ErrUnknownConfigKey = errors.New("unknown configuration key")
	ErrUnknownSchema    = errors.New("unknown schema")
	ErrOrgURLRequired   = errors.New("org URL is required")
	ErrTokenRequired    = errors.New("API token is required")
	ErrInvalidParam     = errors.New("query parameters must be KEY=VALUE")
	ErrInvalidTime      = errors.New("invalid time, use RFC3339 (2024-01-02T15:04:05Z) or a date (2024-01-02)")
	ErrPushLinkMissing  = errors.New("response has no poll link")
)
