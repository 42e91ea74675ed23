package commands_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/mdwallick/okta-sdk-go/cmd/okta/commands"
	"github.com/mdwallick/okta-sdk-go/internal/constants"
	"github.com/mdwallick/okta-sdk-go/pkg/okta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeSchema(t *testing.T) {
	t.Parallel()

	fields, err := commands.DescribeSchema(okta.Schemas, "Group")
	require.NoError(t, err)

	byName := make(map[string]commands.SchemaField, len(fields))
	for _, field := range fields {
		byName[field.Name] = field
	}

	assert.Equal(t, commands.SchemaField{Name: "id", WireName: "id", Type: "string"}, byName["id"])
	assert.Equal(t, "datetime", byName["created"].Type)
	assert.Equal(t, commands.SchemaField{Name: "profile", WireName: "profile", Type: "GroupProfile", Entity: true},
		byName["profile"])
	assert.Equal(t, "_links", byName["links"].WireName)

	_, err = commands.DescribeSchema(okta.Schemas, "Nope")
	require.ErrorIs(t, err, commands.ErrUnknownSchema)
}

func TestSchemaSummaries(t *testing.T) {
	t.Parallel()

	summaries := commands.SchemaSummaries(okta.Schemas)
	require.Len(t, summaries, len(okta.Schemas.Names()))

	for i := 1; i < len(summaries); i++ {
		assert.Less(t, summaries[i-1].Name, summaries[i].Name)
	}

	for _, summary := range summaries {
		assert.Positive(t, summary.Fields, summary.Name)
	}
}

//nolint:paralleltest // mutates global viper state
func TestSchemaShowCommand(t *testing.T) {
	setViper(t, map[string]any{"output": constants.FormatJSON})

	out, err := executeCommand(t, commands.NewSchemaCommand(), "", "show", "User")
	require.NoError(t, err)

	var fields []commands.SchemaField
	require.NoError(t, json.Unmarshal([]byte(out), &fields))
	assert.Contains(t, fields, commands.SchemaField{Name: "status", WireName: "status", Type: "string"})
}

//nolint:paralleltest // mutates global viper state
func TestGetCommand(t *testing.T) {
	rec := &recorder{}

	useOrg(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		_, _ = w.Write([]byte(userJSON("00u1", "ACTIVE", "me@example.com")))
	}), map[string]any{"output": constants.FormatJSON})

	out, err := executeCommand(t, commands.NewGetCommand(), "", "api/v1/users/me", "--as", "User", "--param", "expand=blocks")
	require.NoError(t, err)

	var user map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &user))
	assert.Equal(t, "00u1", user["id"])
	assert.Equal(t, "2024-01-02T03:04:05Z", user["created"])
	assert.Equal(t, []string{"GET /api/v1/users/me?expand=blocks"}, rec.all())
}

//nolint:paralleltest // mutates global viper state
func TestGetCommand_Validation(t *testing.T) {
	setViper(t, nil)

	_, err := executeCommand(t, commands.NewGetCommand(), "", "/api/v1/users", "--as", "Widget")
	require.ErrorIs(t, err, commands.ErrUnknownSchema)

	_, err = executeCommand(t, commands.NewGetCommand(), "", "/api/v1/users", "--param", "novalue")
	require.ErrorIs(t, err, commands.ErrInvalidParam)
}
