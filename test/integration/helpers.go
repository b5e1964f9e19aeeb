//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/fivetwenty-io/minds/pkg/minds"
	"github.com/fivetwenty-io/minds/pkg/mindsclient"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	APIKey         string
	BaseURL        string
	Project        string
	Engine         string
	ConnectionData string
	ModelName      string
	MindsPath      string
	Verbose        bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIKey:         os.Getenv("MINDS_API_KEY"),
		BaseURL:        os.Getenv("MINDS_BASE_URL"),
		Project:        os.Getenv("MINDS_PROJECT"),
		Engine:         envOrDefault("MINDS_TEST_ENGINE", "postgres"),
		ConnectionData: os.Getenv("MINDS_TEST_CONNECTION_DATA"),
		ModelName:      envOrDefault("MINDS_TEST_MODEL", "gpt-4o"),
		MindsPath:      getMindsPath(),
		Verbose:        os.Getenv("MINDS_VERBOSE") == "true",
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

// getMindsPath determines the path to the minds binary
func getMindsPath() string {
	if path := os.Getenv("MINDS_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../minds",
		"./minds",
		"../minds",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "minds"
}

// SkipIfMissingConfig skips test if the API key or a test datasource is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.APIKey == "" {
		t.Skip("MINDS_API_KEY not set, skipping integration test")
	}

	if config.ConnectionData == "" {
		t.Skip("MINDS_TEST_CONNECTION_DATA not set, skipping integration test")
	}
}

// SkipIfMissingBinary skips test if the minds binary cannot be found
func (config *TestConfig) SkipIfMissingBinary(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath(config.MindsPath); err != nil {
		t.Skipf("minds binary not found at %s, skipping integration test", config.MindsPath)
	}
}

// ConnectionDataMap parses MINDS_TEST_CONNECTION_DATA.
func (config *TestConfig) ConnectionDataMap(t *testing.T) map[string]any {
	t.Helper()

	var data map[string]any
	if err := json.Unmarshal([]byte(config.ConnectionData), &data); err != nil {
		t.Fatalf("MINDS_TEST_CONNECTION_DATA is not a JSON object: %v", err)
	}

	return data
}

// NewClient builds an SDK client for the configured account
func (config *TestConfig) NewClient(t *testing.T) minds.Client {
	t.Helper()

	client, err := mindsclient.New(&minds.Config{
		APIKey:      config.APIKey,
		BaseURL:     config.BaseURL,
		Project:     config.Project,
		HTTPTimeout: time.Minute,
		RetryMax:    2,
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	return client
}

// CommandRunner provides utilities for running minds commands
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// Run executes a minds command against an isolated config file
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	configFile := runner.t.TempDir() + "/config.yml"
	args = append([]string{"--config", configFile}, args...)

	cmd := exec.Command(runner.config.MindsPath, args...)
	cmd.Env = append(os.Environ(),
		"MINDS_API_KEY="+runner.config.APIKey,
		"MINDS_BASE_URL="+runner.config.BaseURL,
		"MINDS_PROJECT="+runner.config.Project,
	)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.MindsPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// GenerateTestName creates a unique resource name. Names only use
// characters the API accepts in identifiers.
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

// CleanupResource attempts to drop a test resource
func (runner *CommandRunner) CleanupResource(resourceType, name string) {
	var args []string

	switch resourceType {
	case "datasource":
		args = []string{"datasources", "drop", name}
	case "mind":
		args = []string{"minds", "drop", name}
	default:
		runner.t.Logf("Unknown resource type for cleanup: %s", resourceType)

		return
	}

	stdout, stderr, err := runner.Run(args...)
	if err != nil && runner.config.Verbose {
		runner.t.Logf("Cleanup warning for %s %s: %s\nStderr: %s", resourceType, name, stdout, stderr)
	}
}

// AssertJSONOutput verifies command output is valid JSON
func AssertJSONOutput(t *testing.T, output string) {
	t.Helper()

	if !json.Valid([]byte(strings.TrimSpace(output))) {
		t.Errorf("Output is not valid JSON: %s", output)
	}
}
