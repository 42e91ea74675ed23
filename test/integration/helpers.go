//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/mdwallick/okta-sdk-go/pkg/okta"
	"github.com/mdwallick/okta-sdk-go/pkg/oktaclient"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	OrgURL     string
	APIToken   string
	BinaryPath string
	Verbose    bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		OrgURL:     os.Getenv("OKTA_ORG_URL"),
		APIToken:   os.Getenv("OKTA_API_TOKEN"),
		BinaryPath: getBinaryPath(),
		Verbose:    os.Getenv("OKTA_VERBOSE") == "true",
	}
}

// getBinaryPath determines the path to the okta binary
func getBinaryPath() string {
	if path := os.Getenv("OKTA_BINARY_PATH"); path != "" {
		return path
	}

	for _, candidate := range []string{"../../okta", "./okta", "../okta"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "okta"
}

// SkipIfMissingOrg skips the test unless an org and token are configured.
func (config *TestConfig) SkipIfMissingOrg(t *testing.T) {
	t.Helper()

	if config.OrgURL == "" || config.APIToken == "" {
		t.Skip("OKTA_ORG_URL or OKTA_API_TOKEN not set, skipping integration test")
	}
}

// SkipIfMissingBinary also requires a built okta binary.
func (config *TestConfig) SkipIfMissingBinary(t *testing.T) {
	t.Helper()

	config.SkipIfMissingOrg(t)

	if _, err := exec.LookPath(config.BinaryPath); err != nil {
		t.Skipf("okta binary not found at %s, skipping integration test", config.BinaryPath)
	}
}

// NewClient builds an SDK client for the configured org.
func (config *TestConfig) NewClient(ctx context.Context) (okta.Client, error) {
	return oktaclient.New(ctx, &okta.Config{
		OrgURL:   config.OrgURL,
		APIToken: config.APIToken,
		RetryMax: 3,
	})
}

// CommandRunner runs the okta binary against the configured org
type CommandRunner struct {
	config    *TestConfig
	t         *testing.T
	configDir string
}

// NewCommandRunner creates a runner with an isolated config file.
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	t.Helper()

	return &CommandRunner{
		config:    config,
		t:         t,
		configDir: t.TempDir(),
	}
}

// Run executes an okta command and returns its output
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	return runner.RunWithInput("", args...)
}

// RunWithInput executes an okta command with stdin input
func (runner *CommandRunner) RunWithInput(input string, args ...string) (stdout, stderr string, err error) {
	args = append([]string{"--config", runner.configDir + "/okta.yaml"}, args...)

	cmd := exec.Command(runner.config.BinaryPath, args...) // #nosec G204 -- test binary
	cmd.Env = append(os.Environ(),
		"OKTA_ORG_URL="+runner.config.OrgURL,
		"OKTA_API_TOKEN="+runner.config.APIToken,
	)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	cmd.Stdin = strings.NewReader(input)

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.BinaryPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// RunJSON executes an okta command with JSON output and decodes the result into v.
func (runner *CommandRunner) RunJSON(v any, args ...string) error {
	stdout, stderr, err := runner.Run(append(args, "--output", "json")...)
	if err != nil {
		return fmt.Errorf("%w: %s", err, stderr)
	}

	return json.Unmarshal([]byte(stdout), v)
}

// CleanupResource deletes a test resource, logging failures
func (runner *CommandRunner) CleanupResource(resourceType, id string) {
	if id == "" {
		return
	}

	var args []string

	switch resourceType {
	case "user":
		args = []string{"users", "delete", id, "--force"}
	case "group":
		args = []string{"groups", "delete", id, "--force"}
	default:
		runner.t.Logf("Unknown resource type for cleanup: %s", resourceType)

		return
	}

	stdout, stderr, err := runner.Run(args...)
	if err != nil && runner.config.Verbose {
		runner.t.Logf("Cleanup warning for %s %s: %s\nStderr: %s", resourceType, id, stdout, stderr)
	}
}

// GenerateTestName creates a unique test resource name
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// GenerateTestLogin creates a unique login in a reserved test domain
func GenerateTestLogin(prefix string) string {
	return GenerateTestName(prefix) + "@example.com"
}

// WaitForCondition waits for a condition to be met with timeout
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration, message string) {
	t.Helper()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	timeoutChan := time.After(timeout)

	for {
		select {
		case <-ticker.C:
			if condition() {
				return
			}
		case <-timeoutChan:
			t.Fatalf("Timeout waiting for condition: %s", message)
		}
	}
}
