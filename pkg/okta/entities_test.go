package okta_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/mdwallick/okta-sdk-go/pkg/codec"
	"github.com/mdwallick/okta-sdk-go/pkg/okta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userJSON = `{
  "id": "00ub0oNGTSWTBKOLGLNR",
  "status": "ACTIVE",
  "created": "2013-06-24T16:39:18.000Z",
  "activated": "2013-06-24T16:39:19.000Z",
  "statusChanged": "2013-06-24T16:39:19.000Z",
  "lastLogin": "2013-06-24T17:39:19.000Z",
  "lastUpdated": "2013-06-27T16:35:28.000Z",
  "passwordChanged": "2013-06-24T16:39:19.000Z",
  "profile": {
    "firstName": "Isaac",
    "lastName": "Brock",
    "email": "isaac.brock@example.com",
    "login": "isaac.brock@example.com",
    "mobilePhone": "555-415-1337",
    "customAttribute": "ignored"
  },
  "credentials": {
    "password": {},
    "recovery_question": {"question": "Who's a major player in the cowboy scene?"},
    "provider": {"type": "OKTA", "name": "OKTA"}
  },
  "_links": {
    "resetPassword": {"href": "https://org.okta.com/api/v1/users/00ub0oNGTSWTBKOLGLNR/lifecycle/reset_password", "method": "POST"},
    "self": {"href": "https://org.okta.com/api/v1/users/00ub0oNGTSWTBKOLGLNR"}
  }
}`

func TestUser_Decode(t *testing.T) {
	t.Parallel()

	user, err := codec.DecodeOne([]byte(userJSON), okta.UserSchema)
	require.NoError(t, err)

	assert.Equal(t, "00ub0oNGTSWTBKOLGLNR", user.ID)
	assert.Equal(t, okta.UserStatusActive, user.Status)
	assert.Equal(t, time.Date(2013, 6, 24, 16, 39, 18, 0, time.UTC), user.Created)
	require.NotNil(t, user.Profile)
	assert.Equal(t, "Isaac", user.Profile.FirstName)
	assert.Equal(t, "555-415-1337", user.Profile.MobilePhone)

	require.NotNil(t, user.Credentials)
	require.NotNil(t, user.Credentials.RecoveryQuestion)
	assert.Equal(t, "Who's a major player in the cowboy scene?", user.Credentials.RecoveryQuestion.Question)
	assert.Equal(t, "OKTA", user.Credentials.Provider.Type)

	assert.True(t, user.Links.Has("self"))
	assert.Equal(t, "POST", user.Links.Get("resetPassword").Method)
	assert.Empty(t, user.Links.Href("deactivate"))
}

func TestUser_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	var user okta.User
	require.NoError(t, json.Unmarshal([]byte(userJSON), &user))

	data, err := json.Marshal(&user)
	require.NoError(t, err)

	var again okta.User
	require.NoError(t, json.Unmarshal(data, &again))
	assert.Equal(t, user, again)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "_links")
	assert.Contains(t, raw["credentials"], "recovery_question")
	assert.Equal(t, "2013-06-24T16:39:18Z", raw["created"])
}

func TestNewUser_EncodesOnlySetFields(t *testing.T) {
	t.Parallel()

	user := okta.NewUser("a@example.com", "a@example.com", "Ada", "Lovelace").
		WithPassword("Sup3rS3cret!").
		WithRecoveryQuestion("Favourite engine?", "Analytical")

	got := okta.UserSchema.Encode(user)

	assert.Equal(t, map[string]any{
		"profile": map[string]any{
			"login":     "a@example.com",
			"email":     "a@example.com",
			"firstName": "Ada",
			"lastName":  "Lovelace",
		},
		"credentials": map[string]any{
			"password":          map[string]any{"value": "Sup3rS3cret!"},
			"recovery_question": map[string]any{"question": "Favourite engine?", "answer": "Analytical"},
		},
	}, got)
}

func TestGroup_Decode(t *testing.T) {
	t.Parallel()

	data := []byte(`[{
	  "id": "00g1emaKYZTWRYYRRTSK",
	  "type": "OKTA_GROUP",
	  "objectClass": ["okta:user_group"],
	  "created": "2015-02-06T10:11:28.000Z",
	  "profile": {"name": "West Coast Users", "description": "All Users West of The Rockies"},
	  "_links": {"users": {"href": "https://org.okta.com/api/v1/groups/00g1emaKYZTWRYYRRTSK/users"}}
	}]`)

	groups, err := codec.DecodeMany(data, okta.GroupSchema)
	require.NoError(t, err)
	require.Len(t, groups, 1)

	group := groups[0]
	assert.Equal(t, okta.GroupTypeOkta, group.Type)
	assert.Equal(t, []string{"okta:user_group"}, group.ObjectClass)
	assert.Equal(t, "West Coast Users", group.Profile.Name)
	assert.Contains(t, group.Links.Href("users"), "/users")
}

func TestFactor_DecodeEmbeddedActivation(t *testing.T) {
	t.Parallel()

	data := []byte(`{
	  "id": "ostf2xjtDKWFPZIKYDZV",
	  "factorType": "token:software:totp",
	  "provider": "GOOGLE",
	  "status": "PENDING_ACTIVATION",
	  "profile": {"credentialId": "dade.murphy@example.com"},
	  "_links": {
	    "activate": {"href": "https://org.okta.com/api/v1/users/u1/factors/f1/lifecycle/activate", "hints": {"allow": ["POST"]}},
	    "resend": [{"name": "sms", "href": "https://org.okta.com/resend/sms"}, {"name": "call", "href": "https://org.okta.com/resend/call"}]
	  },
	  "_embedded": {
	    "activation": {
	      "timeStep": 30,
	      "sharedSecret": "KBMTM32UJZSXQ2DW",
	      "encoding": "base32",
	      "keyLength": 16,
	      "_links": {"qrcode": {"href": "https://org.okta.com/qr.png", "type": "image/png"}}
	    }
	  }
	}`)

	factor, err := codec.DecodeOne(data, okta.FactorSchema)
	require.NoError(t, err)

	assert.Equal(t, okta.FactorTypeTOTP, factor.FactorType)
	assert.Equal(t, okta.FactorStatusPendingActivation, factor.Status)
	assert.Equal(t, []string{"POST"}, factor.Links.Get("activate").Hints.Allow)
	assert.Len(t, factor.Links["resend"], 2)

	activation := factor.Activation()
	require.NotNil(t, activation)
	assert.Equal(t, 30, activation.TimeStep)
	assert.Equal(t, "KBMTM32UJZSXQ2DW", activation.SharedSecret)
	assert.Equal(t, 16, activation.KeyLength)
	assert.Equal(t, "https://org.okta.com/qr.png", activation.QRCodeHref())
}

func TestFactor_ActivationAbsent(t *testing.T) {
	t.Parallel()

	var nilFactor *okta.Factor

	assert.Nil(t, nilFactor.Activation())
	assert.Nil(t, okta.NewPushFactor().Activation())
	assert.Empty(t, nilFactor.Activation().QRCodeHref())
}

func TestFactorConstructors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		factor   *okta.Factor
		expected map[string]any
	}{
		{
			name:   "sms",
			factor: okta.NewSMSFactor("+1-555-415-1337"),
			expected: map[string]any{
				"factorType": "sms",
				"provider":   "OKTA",
				"profile":    map[string]any{"phoneNumber": "+1-555-415-1337"},
			},
		},
		{
			name:   "question",
			factor: okta.NewQuestionFactor("disliked_food", "mayonnaise"),
			expected: map[string]any{
				"factorType": "question",
				"provider":   "OKTA",
				"profile":    map[string]any{"question": "disliked_food", "answer": "mayonnaise"},
			},
		},
		{
			name:     "google totp",
			factor:   okta.NewTOTPFactor(okta.FactorProviderGoogle),
			expected: map[string]any{"factorType": "token:software:totp", "provider": "GOOGLE"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, okta.FactorSchema.Encode(tt.factor))
		})
	}
}

func TestAuthResult_Decode(t *testing.T) {
	t.Parallel()

	data := []byte(`{
	  "stateToken": "007ucIX7PATyn94hsHfOLVaXAmOBkKHWnOOLG43bsb",
	  "expiresAt": "2015-11-03T10:15:57.000Z",
	  "status": "MFA_REQUIRED",
	  "_embedded": {
	    "user": {"id": "00ub0oNGTSWTBKOLGLNR", "profile": {"login": "dade.murphy@example.com"}},
	    "factors": [
	      {"id": "rsalhpMQVYKHZKXZJQEW", "factorType": "token", "provider": "RSA"},
	      {"id": "ostfm3hPNYSOIOIVTQWY", "factorType": "token:software:totp", "provider": "OKTA"}
	    ]
	  },
	  "_links": {"cancel": {"href": "https://org.okta.com/api/v1/authn/cancel"}}
	}`)

	result, err := codec.DecodeOne(data, okta.AuthResultSchema)
	require.NoError(t, err)

	assert.Equal(t, okta.AuthStatusMFARequired, result.Status)
	require.NotNil(t, result.Embedded)
	assert.Equal(t, "dade.murphy@example.com", result.Embedded.User.Profile.Login)
	require.Len(t, result.Embedded.Factors, 2)
	assert.Equal(t, "RSA", result.Embedded.Factors[0].Provider)
	assert.True(t, result.Links.Has("cancel"))
}

func TestNewStateTokenRequest(t *testing.T) {
	t.Parallel()

	assert.Equal(t, map[string]any{"stateToken": "st1"}, okta.NewStateTokenRequest("st1"))
}

func TestEvent_Decode(t *testing.T) {
	t.Parallel()

	data := []byte(`[{
	  "eventId": "tevZnUGy6MrQ5a-xs-20-tt5g1370526680000",
	  "published": "2013-06-06T13:24:40.000Z",
	  "requestId": "reqsxh8M4wvRkeVYTKGd2BAJw",
	  "action": {
	    "message": "User performed single sign on to app",
	    "categories": ["Sign-in Success"],
	    "objectType": "app.auth.sso",
	    "requestUri": "/app/salesforce/k3wbwxhpKTAFNNQZWJNE/sso/saml"
	  },
	  "actors": [
	    {"id": "00u1", "displayName": "Jane Doe", "login": "jane@example.com", "objectType": "User"},
	    {"id": "Mozilla/5.0", "displayName": "CHROME", "ipAddress": "10.0.0.1", "objectType": "Client"}
	  ],
	  "targets": {"id": "0oa1", "displayName": "Salesforce", "objectType": "AppInstance"}
	}]`)

	events, err := codec.DecodeMany(data, okta.EventSchema)
	require.NoError(t, err)
	require.Len(t, events, 1)

	event := events[0]
	assert.Equal(t, "app.auth.sso", event.Action.ObjectType)
	assert.Equal(t, []string{"Sign-in Success"}, event.Action.Categories)
	require.Len(t, event.Actors, 2)
	assert.Equal(t, "10.0.0.1", event.Actors[1].IPAddress)
	require.Len(t, event.Targets, 1)
	assert.Equal(t, "Salesforce", event.Targets[0].DisplayName)
}

func TestSession_Decode(t *testing.T) {
	t.Parallel()

	data := []byte(`{
	  "id": "101W_juydrDRByB7fUdRyE2JQ",
	  "login": "user@example.com",
	  "userId": "00ubgaSARVOQDIOXMORI",
	  "expiresAt": "2016-01-03T09:13:17.000Z",
	  "status": "ACTIVE",
	  "amr": ["pwd"],
	  "mfaActive": false,
	  "idp": {"id": "00ok65EFNMCKJNQTUQBV", "type": "OKTA"}
	}`)

	session, err := codec.DecodeOne(data, okta.SessionSchema)
	require.NoError(t, err)

	assert.Equal(t, "00ubgaSARVOQDIOXMORI", session.UserID)
	assert.Equal(t, []string{"pwd"}, session.AMR)
	require.NotNil(t, session.MFAActive)
	assert.False(t, *session.MFAActive)
	assert.Equal(t, "OKTA", session.IDP.Type)
}

func TestSchemasRegistry(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"User", "Group", "Factor", "Event", "Session", "AuthResult", "Error"} {
		desc, ok := okta.Schemas.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, name, desc.Name())
	}

	value, err := okta.Schemas.DecodeNamed([]byte(`{"id":"00g1","profile":{"name":"Everyone"}}`), "Group")
	require.NoError(t, err)

	group, ok := value.(*okta.Group)
	require.True(t, ok)
	assert.Equal(t, "Everyone", group.Profile.Name)
}
