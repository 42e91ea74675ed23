package commands_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// subcommandNames returns the names of the direct subcommands of cmd.
func subcommandNames(cmd *cobra.Command) []string {
	names := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}

	return names
}

// executeCommand runs cmd with args and input, returning what it wrote to stdout.
func executeCommand(t *testing.T, cmd *cobra.Command, input string, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	// cobra falls back to os.Args when args is nil.
	if args == nil {
		args = []string{}
	}

	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()

	return stdout.String(), err
}

// setViper sets global viper keys for the duration of the test. Tests using it must
// not run in parallel.
func setViper(t *testing.T, values map[string]any) {
	t.Helper()

	viper.Reset()

	for key, value := range values {
		viper.Set(key, value)
	}

	t.Cleanup(viper.Reset)
}

// recorder collects the method and path of every request a test server receives.
type recorder struct {
	mu       sync.Mutex
	requests []string
}

func (r *recorder) record(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := req.Method + " " + req.URL.Path
	if req.URL.RawQuery != "" {
		entry += "?" + req.URL.RawQuery
	}

	r.requests = append(r.requests, entry)
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.requests...)
}

// useOrg starts a test server for handler and points the CLI configuration at it.
func useOrg(t *testing.T, handler http.Handler, extra map[string]any) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	values := map[string]any{
		"org_url":   server.URL,
		"api_token": "00test",
		"log_level": "error",
	}

	for key, value := range extra {
		values[key] = value
	}

	setViper(t, values)

	return server
}
