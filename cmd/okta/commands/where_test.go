//nolint:testpackage // Need access to internal types
package commands

import (
	"testing"
	"time"

	"github.com/mdwallick/okta-sdk-go/internal/constants"
	"github.com/mdwallick/okta-sdk-go/pkg/okta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileWhere_Empty(t *testing.T) {
	t.Parallel()

	where, err := compileWhere("   ")
	require.NoError(t, err)
	assert.Nil(t, where)

	matched, err := where.Match(map[string]any{"status": "ACTIVE"})
	require.NoError(t, err)
	assert.True(t, matched)
}

func TestCompileWhere_Invalid(t *testing.T) {
	t.Parallel()

	_, err := compileWhere(`status ==`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compiling --where expression")
}

func TestWherePredicate_Match(t *testing.T) {
	t.Parallel()

	fields := map[string]any{
		"status":  "ACTIVE",
		"created": time.Now().UTC().AddDate(0, 0, -40).Format(time.RFC3339),
		"profile": map[string]any{"login": "Jane@Example.com", "department": "Engineering"},
	}

	tests := []struct {
		expression string
		want       bool
	}{
		{`status == "ACTIVE"`, true},
		{`status == "SUSPENDED"`, false},
		{`lower(profile.login) == "jane@example.com"`, true},
		{`hasText(profile.department, "engineer")`, true},
		{`daysSince(created) > 30`, true},
		{`daysSince(created) > 60`, false},
		{`created < daysAgo(30)`, true},
		{`lastLogin == nil`, true},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			t.Parallel()

			where, err := compileWhere(tt.expression)
			require.NoError(t, err)

			matched, err := where.Match(fields)
			require.NoError(t, err)
			assert.Equal(t, tt.want, matched)
		})
	}
}

func TestFilterWhere(t *testing.T) {
	t.Parallel()

	users := []*okta.User{
		{ID: "00u1", Status: okta.UserStatusActive, Profile: &okta.UserProfile{Login: "a@example.com"}},
		{ID: "00u2", Status: okta.UserStatusSuspended, Profile: &okta.UserProfile{Login: "b@example.com"}},
		{ID: "00u3", Status: okta.UserStatusActive, Profile: &okta.UserProfile{Login: "c@corp.example"}},
	}

	where, err := compileWhere(`status == "ACTIVE" && profile.login endsWith "@example.com"`)
	require.NoError(t, err)

	kept, err := filterWhere(users, where, okta.UserSchema.Encode)
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, "00u1", kept[0].ID)

	all, err := filterWhere(users, nil, okta.UserSchema.Encode)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestParseTimeFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{input: "", want: time.Time{}},
		{input: "2024-01-02", want: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{input: "2024-01-02T15:04:05Z", want: time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)},
		{input: "2024-01-02T17:04:05+02:00", want: time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)},
		{input: "last week", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := parseTimeFlag(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTime)

				return
			}

			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestParseParams(t *testing.T) {
	t.Parallel()

	params, err := parseParams([]string{"limit=5", "expand=blocks", "search=profile.lastName eq \"Doe\""})
	require.NoError(t, err)

	values := params.ToValues()
	assert.Equal(t, "5", values.Get("limit"))
	assert.Equal(t, "blocks", values.Get("expand"))
	assert.Equal(t, `profile.lastName eq "Doe"`, values.Get("search"))

	_, err = parseParams([]string{"=value"})
	require.ErrorIs(t, err, ErrInvalidParam)
}

func TestMaskSecret(t *testing.T) {
	t.Parallel()

	assert.Empty(t, maskSecret(""))
	assert.Equal(t, constants.MaskedSecret, maskSecret("short"))
	assert.Equal(t, "00ab"+constants.MaskedSecret, maskSecret("00abcdefgh"))
}

func TestFormatStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Password Expired", formatStatus("PASSWORD_EXPIRED"))
	assert.Equal(t, "Active", formatStatus("ACTIVE"))
}
