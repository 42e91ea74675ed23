package okta

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mdwallick/okta-sdk-go/pkg/codec"
)

// Error is a failed Okta API call: the HTTP status plus the parsed error body.
type Error struct {
	StatusCode   int
	ErrorCode    string
	ErrorSummary string
	ErrorLink    string
	ErrorID      string
	ErrorCauses  []*ErrorCause
}

// ErrorCause is one detail message of an Error.
type ErrorCause struct {
	ErrorSummary string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	if e.ErrorCode != "" {
		fmt.Fprintf(&b, "%s: ", e.ErrorCode)
	}

	fmt.Fprintf(&b, "%s (status: %d)", e.ErrorSummary, e.StatusCode)

	if len(e.ErrorCauses) > 0 {
		causes := make([]string, 0, len(e.ErrorCauses))
		for _, c := range e.ErrorCauses {
			causes = append(causes, c.ErrorSummary)
		}

		fmt.Fprintf(&b, ": %s", strings.Join(causes, "; "))
	}

	return b.String()
}

// Okta error codes.
const (
	ErrorCodeValidation    = "E0000001"
	ErrorCodeForbidden     = "E0000006"
	ErrorCodeNotFound      = "E0000007"
	ErrorCodeInvalidToken  = "E0000011"
	ErrorCodeAlreadyActive = "E0000016"
	ErrorCodeRateLimit     = "E0000047"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired       = errors.New("config is required")
	ErrOrgURLRequired       = errors.New("org URL is required")
	ErrCredentialsRequired  = errors.New("an API token or access token is required")
	ErrConflictingTokens    = errors.New("set either an API token or an access token, not both")
	ErrNoMoreItems          = errors.New("no more items")
	ErrAdvancePastLastPage  = errors.New("advance called on the last page")
	ErrUserIDRequired       = errors.New("user ID is required")
	ErrGroupIDRequired      = errors.New("group ID is required")
	ErrFactorIDRequired     = errors.New("factor ID is required")
	ErrSessionIDRequired    = errors.New("session ID is required")
	ErrStateTokenRequired   = errors.New("state token is required")
	ErrPollURLRequired      = errors.New("poll URL is required")
	ErrNextURLRequired      = errors.New("next page URL is required")
	ErrNilRequest           = errors.New("request body is required")
	ErrPollTimedOut         = errors.New("factor polling timed out")
	ErrUnexpectedPollResult = errors.New("unexpected factor result")
)

var (
	// ErrorCauseSchema describes ErrorCause.
	ErrorCauseSchema = codec.NewSchema("ErrorCause", nil,
		codec.Str("errorSummary", func(c *ErrorCause) *string { return &c.ErrorSummary }),
	)

	// ErrorSchema describes the error body of a failed call. StatusCode is not on the wire.
	ErrorSchema = codec.NewSchema("Error", nil,
		codec.Str("errorCode", func(e *Error) *string { return &e.ErrorCode }),
		codec.Str("errorSummary", func(e *Error) *string { return &e.ErrorSummary }),
		codec.Str("errorLink", func(e *Error) *string { return &e.ErrorLink }),
		codec.Str("errorId", func(e *Error) *string { return &e.ErrorID }),
		codec.List("errorCauses", ErrorCauseSchema, func(e *Error) *[]*ErrorCause { return &e.ErrorCauses }),
	)
)

// CheckResponse classifies an HTTP response. Statuses 200-299 are success and return
// nil. Any other status returns an *Error built from the body. A body that is not a
// JSON object yields an error wrapping both the *Error and the codec error.
func CheckResponse(statusCode int, body []byte) error {
	if statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices {
		return nil
	}

	apiErr := &Error{StatusCode: statusCode}

	if len(strings.TrimSpace(string(body))) == 0 {
		apiErr.ErrorSummary = http.StatusText(statusCode)

		return apiErr
	}

	parsed, err := decodeErrorBody(body)
	if err != nil {
		apiErr.ErrorSummary = http.StatusText(statusCode)

		return fmt.Errorf("%w: %w", apiErr, err)
	}

	parsed.StatusCode = statusCode
	if parsed.ErrorCauses == nil {
		parsed.ErrorCauses = []*ErrorCause{}
	}

	return parsed
}

// decodeErrorBody builds an *Error from a JSON object body. Causes that are not objects
// are dropped so the code and summary survive a malformed cause list.
func decodeErrorBody(body []byte) (*Error, error) {
	root, err := codec.Parse(body)
	if err != nil {
		return nil, err
	}

	obj, ok := root.(map[string]any)
	if !ok {
		return codec.DecodeOne(body, ErrorSchema)
	}

	switch causes := obj["errorCauses"].(type) {
	case []any:
		kept := make([]any, 0, len(causes))

		for _, cause := range causes {
			if _, isObject := cause.(map[string]any); isObject {
				kept = append(kept, cause)
			}
		}

		obj["errorCauses"] = kept
	case map[string]any:
	default:
		delete(obj, "errorCauses")
	}

	return ErrorSchema.Build(obj)
}

// AsError extracts the *Error from err.
func AsError(err error) (*Error, bool) {
	apiErr := &Error{}
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}

// HasErrorCode reports whether err is an Okta error with the given code.
func HasErrorCode(err error, code string) bool {
	apiErr, ok := AsError(err)

	return ok && apiErr.ErrorCode == code
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return hasStatusOrCode(err, http.StatusNotFound, ErrorCodeNotFound)
}

// IsUnauthorized checks if the error is an invalid or missing token error.
func IsUnauthorized(err error) bool {
	return hasStatusOrCode(err, http.StatusUnauthorized, ErrorCodeInvalidToken)
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return hasStatusOrCode(err, http.StatusForbidden, ErrorCodeForbidden)
}

// IsRateLimited checks if the error is a rate limit error.
func IsRateLimited(err error) bool {
	return hasStatusOrCode(err, http.StatusTooManyRequests, ErrorCodeRateLimit)
}

func hasStatusOrCode(err error, status int, code string) bool {
	apiErr, ok := AsError(err)
	if !ok {
		return false
	}

	return apiErr.StatusCode == status || apiErr.ErrorCode == code
}
