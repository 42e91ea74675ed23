package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mdwallick/okta-sdk-go/internal/auth"
	"github.com/mdwallick/okta-sdk-go/internal/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticTokenManager_GetToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		manager   *auth.StaticTokenManager
		wantToken string
		wantType  string
		wantErr   error
	}{
		{
			name:      "api token",
			manager:   auth.NewAPITokenManager("00abc"),
			wantToken: "00abc",
			wantType:  auth.TokenTypeSSWS,
		},
		{
			name:      "access token without expiry",
			manager:   auth.NewAccessTokenManager("eyJ0", time.Time{}),
			wantToken: "eyJ0",
			wantType:  auth.TokenTypeBearer,
		},
		{
			name:    "expired access token",
			manager: auth.NewAccessTokenManager("eyJ0", time.Now().Add(-time.Minute)),
			wantErr: auth.ErrTokenExpired,
		},
		{
			name:    "empty token",
			manager: auth.NewAPITokenManager(""),
			wantErr: constants.ErrEmptyToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			token, err := tt.manager.GetToken(context.Background())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
			assert.Equal(t, tt.wantType, tt.manager.TokenType())
		})
	}
}

func TestStaticTokenManager_RefreshToken(t *testing.T) {
	t.Parallel()

	err := auth.NewAPITokenManager("00abc").RefreshToken(context.Background())
	require.ErrorIs(t, err, constants.ErrStaticTokenCannotRefresh)
}

func TestStaticTokenManager_SetToken(t *testing.T) {
	t.Parallel()

	manager := auth.NewAPITokenManager("old")
	manager.SetToken("new", time.Time{})

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new", token)
	assert.Equal(t, "SSWS new", manager.Token().Authorization())
}

type fakePersister struct {
	orgURL string
	token  string
	err    error
}

func (p *fakePersister) UpdateAPIToken(orgURL, token string, expiresAt time.Time) error {
	p.orgURL = orgURL
	p.token = token

	return p.err
}

func TestConfigTokenManager_SaveToken(t *testing.T) {
	t.Parallel()

	persister := &fakePersister{}
	manager := auth.NewConfigTokenManager(auth.NewAPITokenManager(""), persister, "https://dev-1.okta.com")

	require.NoError(t, manager.SaveToken("00new", time.Time{}))
	assert.Equal(t, "https://dev-1.okta.com", persister.orgURL)
	assert.Equal(t, "00new", persister.token)

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "00new", token)
	assert.Equal(t, auth.TokenTypeSSWS, manager.TokenType())
}

func TestConfigTokenManager_PersistFailure(t *testing.T) {
	t.Parallel()

	errDisk := errors.New("disk full")
	manager := auth.NewConfigTokenManager(auth.NewAPITokenManager(""), &fakePersister{err: errDisk}, "https://o")

	err := manager.SaveToken("00new", time.Time{})
	require.ErrorIs(t, err, errDisk)

	noPersister := auth.NewConfigTokenManager(auth.NewAPITokenManager(""), nil, "https://o")
	require.ErrorIs(t, noPersister.SaveToken("00new", time.Time{}), auth.ErrNoConfigPersister)
}
