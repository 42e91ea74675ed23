package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/mdwallick/okta-sdk-go/pkg/okta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const notFoundBody = `{"errorCode":"E0000007","errorSummary":"Not found: Resource not found: missing (User)",` +
	`"errorLink":"E0000007","errorId":"oaeXXX","errorCauses":[]}`

// recordedRequest is what a test server saw.
type recordedRequest struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	Body          string
}

// newTestServer serves status and body for every call. The returned func lists the
// requests seen so far.
func newTestServer(t *testing.T, status int, body string, headers map[string]string) (*httptest.Server, func() []recordedRequest) {
	t.Helper()

	var (
		mu   sync.Mutex
		seen []recordedRequest
	)

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		buf, _ := io.ReadAll(request.Body)

		mu.Lock()
		seen = append(seen, recordedRequest{
			Method:        request.Method,
			Path:          request.URL.Path,
			RawQuery:      request.URL.RawQuery,
			Authorization: request.Header.Get("Authorization"),
			Body:          string(buf),
		})
		mu.Unlock()

		for key, value := range headers {
			writer.Header().Set(key, value)
		}

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)
		_, _ = writer.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()

		return append([]recordedRequest(nil), seen...)
	}
}

// newMuxServer starts a server for handlers that need per-path behavior.
func newMuxServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return server
}

// NewTestClient creates a new test client with the given base URL.
func NewTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	client, err := New(context.Background(), &okta.Config{OrgURL: baseURL, APIToken: "00test"})
	require.NoError(t, err)

	return client
}

// TestCallOperation is a generic single-call test case.
type TestCallOperation struct {
	Name          string
	Call          func(ctx context.Context, c *Client) (any, error)
	Status        int
	Response      string
	ExpectedVerb  string
	ExpectedPath  string
	ExpectedQuery string
	ExpectedBody  string
	WantErr       bool
	WantNotFound  bool
	Check         func(t *testing.T, result any)
}

// RunCallTests runs a series of single-call tests against fresh servers.
func RunCallTests(t *testing.T, tests []TestCallOperation) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			status := testCase.Status
			if status == 0 {
				status = http.StatusOK
			}

			server, seen := newTestServer(t, status, testCase.Response, nil)
			client := NewTestClient(t, server.URL)

			result, err := testCase.Call(context.Background(), client)

			require.Len(t, seen(), 1)
			request := seen()[0]
			assert.Equal(t, testCase.ExpectedVerb, request.Method)
			assert.Equal(t, testCase.ExpectedPath, request.Path)
			assert.Equal(t, "SSWS 00test", request.Authorization)

			if testCase.ExpectedQuery != "" {
				assert.Equal(t, testCase.ExpectedQuery, request.RawQuery)
			}

			if testCase.ExpectedBody != "" {
				assert.JSONEq(t, testCase.ExpectedBody, request.Body)
			}

			if testCase.WantErr || testCase.WantNotFound {
				require.Error(t, err)

				if testCase.WantNotFound {
					assert.True(t, okta.IsNotFound(err), "expected not found, got %v", err)
				}

				return
			}

			require.NoError(t, err)

			if testCase.Check != nil {
				testCase.Check(t, result)
			}
		})
	}
}
