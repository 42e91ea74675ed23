package codec_test

import (
	"testing"

	"github.com/mdwallick/okta-sdk-go/pkg/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg, err := codec.NewRegistry(testUserSchema, testProfileSchema, testLinkSchema)
	require.NoError(t, err)

	assert.Equal(t, []string{"Link", "Profile", "User"}, reg.Names())

	d, ok := reg.Lookup("Profile")
	require.True(t, ok)
	assert.Equal(t, []string{"firstName", "lastName", "login"}, d.Fields())

	_, ok = reg.Lookup("Nope")
	assert.False(t, ok)
}

func TestRegistry_Duplicate(t *testing.T) {
	t.Parallel()

	_, err := codec.NewRegistry(testUserSchema, testUserSchema)
	require.ErrorIs(t, err, codec.ErrDuplicateSchema)

	assert.Panics(t, func() { codec.MustRegistry(testLinkSchema, testLinkSchema) })
}

func TestRegistry_CoerceNamed(t *testing.T) {
	t.Parallel()

	reg := codec.MustRegistry(testProfileSchema)

	v, err := reg.CoerceNamed(map[string]any{"firstName": "Gordon"}, "Profile")
	require.NoError(t, err)
	assert.Equal(t, &testProfile{FirstName: "Gordon"}, v)

	v, err = reg.CoerceNamed(map[string]any{"firstName": "Gordon"}, "Unknown")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"firstName": "Gordon"}, v)
}

func TestRegistry_DecodeNamed(t *testing.T) {
	t.Parallel()

	reg := codec.MustRegistry(testProfileSchema)

	v, err := reg.DecodeNamed([]byte(`[{"firstName":"a"},{"firstName":"b"}]`), "Profile")
	require.NoError(t, err)

	list, ok := v.([]any)
	require.True(t, ok)
	require.Len(t, list, 2)
	assert.Equal(t, &testProfile{FirstName: "b"}, list[1])

	_, err = reg.DecodeNamed([]byte(`true`), "Profile")
	assert.ErrorIs(t, err, codec.ErrUnexpectedShape)

	_, err = reg.DecodeNamed([]byte(`{`), "Profile")
	assert.ErrorIs(t, err, codec.ErrMalformedResponse)
}
