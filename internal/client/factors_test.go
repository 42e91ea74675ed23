package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/mdwallick/okta-sdk-go/pkg/okta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const totpFactorBody = `{
	"id": "ostf1",
	"factorType": "token:software:totp",
	"provider": "GOOGLE",
	"status": "PENDING_ACTIVATION",
	"_embedded": {
		"activation": {"timeStep": 30, "sharedSecret": "JBSWY3DPEHPK3PXP", "encoding": "base32", "keyLength": 16}
	}
}`

const pushFactorBody = `{
	"id": "opf1",
	"factorType": "push",
	"provider": "OKTA",
	"status": "PENDING_ACTIVATION",
	"_embedded": {
		"activation": {
			"factorResult": "WAITING",
			"expiresAt": "2024-01-02T03:09:05.000Z",
			"_links": {"qrcode": {"href": "https://example.okta.com/qr"}}
		}
	},
	"_links": {"poll": {"href": "https://example.okta.com/api/v1/users/00u1/factors/opf1/lifecycle/activate/poll"}}
}`

func TestFactorsClient_Calls(t *testing.T) {
	t.Parallel()

	tests := []TestCallOperation{
		{
			Name: "catalog",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Factors().Catalog(ctx, "00u1")
			},
			Response:     `[{"factorType": "sms", "provider": "OKTA", "status": "NOT_SETUP", "enrollment": "OPTIONAL"}]`,
			ExpectedVerb: "GET",
			ExpectedPath: "/api/v1/users/00u1/factors/catalog",
			Check: func(t *testing.T, result any) {
				t.Helper()

				entries, ok := result.([]*okta.FactorCatalogEntry)
				require.True(t, ok)
				require.Len(t, entries, 1)
				assert.Equal(t, okta.FactorTypeSMS, entries[0].FactorType)
				assert.Equal(t, "OPTIONAL", entries[0].Enrollment)
			},
		},
		{
			Name: "list",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Factors().List(ctx, "00u1")
			},
			Response:     "[" + totpFactorBody + "]",
			ExpectedVerb: "GET",
			ExpectedPath: "/api/v1/users/00u1/factors",
		},
		{
			Name: "questions",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Factors().Questions(ctx, "00u1")
			},
			Response:     `[{"question": "disliked_food", "questionText": "What is the food you least liked as a child?"}]`,
			ExpectedVerb: "GET",
			ExpectedPath: "/api/v1/users/00u1/factors/questions",
			Check: func(t *testing.T, result any) {
				t.Helper()

				questions, ok := result.([]*okta.Question)
				require.True(t, ok)
				require.Len(t, questions, 1)
				assert.Equal(t, "disliked_food", questions[0].Question)
			},
		},
		{
			Name: "get",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Factors().Get(ctx, "00u1", "ostf1")
			},
			Response:     totpFactorBody,
			ExpectedVerb: "GET",
			ExpectedPath: "/api/v1/users/00u1/factors/ostf1",
		},
		{
			Name: "enroll sms sends flags",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Factors().EnrollSMS(ctx, "00u1", "+1-555-415-1337", &okta.EnrollFactorOptions{UpdatePhone: true})
			},
			Response:      `{"id": "mbl1", "factorType": "sms", "provider": "OKTA", "status": "PENDING_ACTIVATION"}`,
			ExpectedVerb:  "POST",
			ExpectedPath:  "/api/v1/users/00u1/factors",
			ExpectedQuery: "activate=false&updatePhone=true",
			ExpectedBody:  `{"factorType": "sms", "provider": "OKTA", "profile": {"phoneNumber": "+1-555-415-1337"}}`,
		},
		{
			Name: "enroll email",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Factors().EnrollEmail(ctx, "00u1", "jane@example.com")
			},
			Response:      `{"id": "emf1", "factorType": "email"}`,
			ExpectedVerb:  "POST",
			ExpectedPath:  "/api/v1/users/00u1/factors",
			ExpectedQuery: "activate=false&updatePhone=false",
			ExpectedBody:  `{"factorType": "email", "provider": "OKTA", "profile": {"email": "jane@example.com"}}`,
		},
		{
			Name: "enroll question",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Factors().EnrollQuestion(ctx, "00u1", "disliked_food", "mayonnaise")
			},
			Response:     `{"id": "ufs1", "factorType": "question", "status": "ACTIVE"}`,
			ExpectedVerb: "POST",
			ExpectedPath: "/api/v1/users/00u1/factors",
			ExpectedBody: `{"factorType": "question", "provider": "OKTA",
				"profile": {"question": "disliked_food", "answer": "mayonnaise"}}`,
		},
		{
			Name: "enroll google totp exposes shared secret",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Factors().EnrollGoogleTOTP(ctx, "00u1")
			},
			Response:     totpFactorBody,
			ExpectedVerb: "POST",
			ExpectedPath: "/api/v1/users/00u1/factors",
			ExpectedBody: `{"factorType": "token:software:totp", "provider": "GOOGLE"}`,
			Check: func(t *testing.T, result any) {
				t.Helper()

				factor, ok := result.(*okta.Factor)
				require.True(t, ok)
				require.Contains(t, factor.Embedded, "activation")
				activation := factor.Embedded["activation"]
				assert.Equal(t, 30, activation.TimeStep)
				assert.Equal(t, "JBSWY3DPEHPK3PXP", activation.SharedSecret)
			},
		},
		{
			Name: "enroll okta push returns poll link",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Factors().EnrollOktaPush(ctx, "00u1")
			},
			Response:     pushFactorBody,
			ExpectedVerb: "POST",
			ExpectedPath: "/api/v1/users/00u1/factors",
			ExpectedBody: `{"factorType": "push", "provider": "OKTA"}`,
			Check: func(t *testing.T, result any) {
				t.Helper()

				factor, ok := result.(*okta.Factor)
				require.True(t, ok)
				assert.True(t, factor.Links.Has("poll"))
				assert.Equal(t, okta.FactorResultWaiting, factor.Embedded["activation"].FactorResult)
				assert.Equal(t, "https://example.okta.com/qr", factor.Embedded["activation"].Links.Href("qrcode"))
			},
		},
		{
			Name: "activate with pass code",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Factors().Activate(ctx, "00u1", "ostf1", "123456")
			},
			Response:     `{"id": "ostf1", "status": "ACTIVE"}`,
			ExpectedVerb: "POST",
			ExpectedPath: "/api/v1/users/00u1/factors/ostf1/lifecycle/activate",
			ExpectedBody: `{"passCode": "123456"}`,
		},
		{
			Name: "resend",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Factors().Resend(ctx, "00u1", "mbl1")
			},
			Response:     `{"id": "mbl1"}`,
			ExpectedVerb: "POST",
			ExpectedPath: "/api/v1/users/00u1/factors/mbl1/resend",
		},
		{
			Name: "reset",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return nil, c.Factors().Reset(ctx, "00u1", "mbl1")
			},
			Status:       http.StatusNoContent,
			ExpectedVerb: "DELETE",
			ExpectedPath: "/api/v1/users/00u1/factors/mbl1",
		},
		{
			Name: "verify",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Factors().Verify(ctx, "00u1", "ostf1", &okta.VerifyFactorRequest{PassCode: "654321"})
			},
			Response:     `{"factorResult": "SUCCESS"}`,
			ExpectedVerb: "POST",
			ExpectedPath: "/api/v1/users/00u1/factors/ostf1/verify",
			ExpectedBody: `{"passCode": "654321"}`,
			Check: func(t *testing.T, result any) {
				t.Helper()

				verification, ok := result.(*okta.FactorVerification)
				require.True(t, ok)
				assert.Equal(t, okta.FactorResultSuccess, verification.FactorResult)
			},
		},
		{
			Name: "verify rejected",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Factors().Verify(ctx, "00u1", "ostf1", nil)
			},
			Status: http.StatusForbidden,
			Response: `{"errorCode": "E0000068", "errorSummary": "Invalid Passcode/Answer",
				"errorCauses": [{"errorSummary": "Your passcode doesn't match our records. Please try again."}]}`,
			ExpectedVerb: "POST",
			ExpectedPath: "/api/v1/users/00u1/factors/ostf1/verify",
			WantErr:      true,
		},
		{
			Name: "list org factors",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Factors().ListOrgFactors(ctx)
			},
			Response:     `[{"id": "ufs1", "factorType": "question", "status": "ACTIVE"}]`,
			ExpectedVerb: "GET",
			ExpectedPath: "/api/v1/org/factors",
		},
		{
			Name: "activate org factor",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Factors().ActivateOrgFactor(ctx, "ufs1")
			},
			Response:     `{"id": "ufs1", "status": "ACTIVE"}`,
			ExpectedVerb: "POST",
			ExpectedPath: "/api/v1/org/factors/ufs1/lifecycle/activate",
		},
		{
			Name: "deactivate org factor",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Factors().DeactivateOrgFactor(ctx, "ufs1")
			},
			Response:     `{"id": "ufs1", "status": "INACTIVE"}`,
			ExpectedVerb: "POST",
			ExpectedPath: "/api/v1/org/factors/ufs1/lifecycle/deactivate",
		},
	}

	RunCallTests(t, tests)
}

func TestFactorsClient_Polling(t *testing.T) {
	t.Parallel()

	t.Run("activation poll posts to the link", func(t *testing.T) {
		t.Parallel()

		server, seen := newTestServer(t, http.StatusOK, `{"id": "opf1", "status": "ACTIVE"}`, nil)
		client := NewTestClient(t, server.URL)

		pollURL := server.URL + "/api/v1/users/00u1/factors/opf1/lifecycle/activate/poll"

		factor, err := client.Factors().PollPushActivation(context.Background(), pollURL)
		require.NoError(t, err)
		assert.Equal(t, okta.FactorStatusActive, factor.Status)

		require.Len(t, seen(), 1)
		assert.Equal(t, "POST", seen()[0].Method)
		assert.Equal(t, "/api/v1/users/00u1/factors/opf1/lifecycle/activate/poll", seen()[0].Path)
	})

	t.Run("verification poll gets the link", func(t *testing.T) {
		t.Parallel()

		server, seen := newTestServer(t, http.StatusOK, `{"factorResult": "WAITING"}`, nil)
		client := NewTestClient(t, server.URL)

		pollURL := server.URL + "/api/v1/users/00u1/factors/opf1/transactions/v2mst1"

		verification, err := client.Factors().PollPushVerification(context.Background(), pollURL)
		require.NoError(t, err)
		assert.Equal(t, okta.FactorResultWaiting, verification.FactorResult)

		require.Len(t, seen(), 1)
		assert.Equal(t, "GET", seen()[0].Method)
		assert.Equal(t, "/api/v1/users/00u1/factors/opf1/transactions/v2mst1", seen()[0].Path)
	})

	t.Run("empty poll url", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient(t, "https://example.okta.com")

		_, err := client.Factors().PollPushActivation(context.Background(), "")
		require.ErrorIs(t, err, okta.ErrPollURLRequired)

		_, err = client.Factors().PollPushVerification(context.Background(), "")
		require.ErrorIs(t, err, okta.ErrPollURLRequired)
	})
}

func TestFactorsClient_RequiresIDs(t *testing.T) {
	t.Parallel()

	client := NewTestClient(t, "https://example.okta.com")
	ctx := context.Background()
	factors := client.Factors()

	_, err := factors.Get(ctx, "", "f1")
	require.ErrorIs(t, err, okta.ErrUserIDRequired)

	_, err = factors.Get(ctx, "00u1", "")
	require.ErrorIs(t, err, okta.ErrFactorIDRequired)

	_, err = factors.Enroll(ctx, "00u1", nil, nil)
	require.ErrorIs(t, err, okta.ErrNilRequest)

	_, err = factors.ActivateOrgFactor(ctx, "")
	require.ErrorIs(t, err, okta.ErrFactorIDRequired)

	require.ErrorIs(t, factors.Reset(ctx, "00u1", ""), okta.ErrFactorIDRequired)
}
