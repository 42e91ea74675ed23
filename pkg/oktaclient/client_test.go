package oktaclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mdwallick/okta-sdk-go/pkg/okta"
	"github.com/mdwallick/okta-sdk-go/pkg/oktaclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("creates client with config", func(t *testing.T) {
		t.Parallel()

		client, err := oktaclient.New(context.Background(), &okta.Config{
			OrgURL:   "https://example.okta.com",
			APIToken: "00abc",
		})
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		_, err := oktaclient.New(context.Background(), nil)
		require.ErrorIs(t, err, okta.ErrConfigRequired)
	})

	t.Run("missing org url", func(t *testing.T) {
		t.Parallel()

		_, err := oktaclient.New(context.Background(), &okta.Config{APIToken: "00abc"})
		require.ErrorIs(t, err, okta.ErrOrgURLRequired)
	})

	t.Run("missing credentials", func(t *testing.T) {
		t.Parallel()

		_, err := oktaclient.New(context.Background(), &okta.Config{OrgURL: "example.okta.com"})
		require.ErrorIs(t, err, okta.ErrCredentialsRequired)
	})

	t.Run("normalises org url", func(t *testing.T) {
		t.Parallel()

		config := &okta.Config{OrgURL: "example.okta.com/", APIToken: "00abc"}

		_, err := oktaclient.New(context.Background(), config)
		require.NoError(t, err)
		assert.Equal(t, "https://example.okta.com", config.OrgURL)
	})
}

func TestNormalizeOrgURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"example.okta.com", "https://example.okta.com"},
		{"https://example.okta.com/", "https://example.okta.com"},
		{"http://localhost:8080", "http://localhost:8080"},
		{" https://example.okta.com// ", "https://example.okta.com"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, oktaclient.NormalizeOrgURL(tt.in))
		})
	}
}

func TestNewWithAPIToken(t *testing.T) {
	t.Parallel()

	client, err := oktaclient.NewWithAPIToken(context.Background(), "https://example.okta.com", "00abc")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewWithAccessToken(t *testing.T) {
	t.Parallel()

	client, err := oktaclient.NewWithAccessToken(context.Background(), "https://example.okta.com", "eyJ")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestClientIntegration(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/api/v1/users/me":
			assert.Equal(t, "SSWS 00abc", request.Header.Get("Authorization"))
			_, _ = writer.Write([]byte(`{"id": "00u1", "status": "ACTIVE", "profile": {"login": "jane@example.com"}}`))
		default:
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"errorCode": "E0000007", "errorSummary": "Not found"}`))
		}
	}))
	defer server.Close()

	client, err := oktaclient.NewWithAPIToken(context.Background(), server.URL+"/", "00abc")
	require.NoError(t, err)

	user, err := client.Users().Get(context.Background(), "me")
	require.NoError(t, err)
	assert.Equal(t, "00u1", user.ID)
	assert.Equal(t, "jane@example.com", user.Profile.Login)

	_, err = client.Groups().Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, okta.IsNotFound(err))
}
