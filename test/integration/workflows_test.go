//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/minds/pkg/minds"
)

// TestWorkflow_DatasourceAndMind creates a datasource and a mind over it,
// replaces both, and drops them again.
func TestWorkflow_DatasourceAndMind(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	client := config.NewClient(t)
	ctx := context.Background()

	datasourceName := GenerateTestName("it_ds")
	mindName := GenerateTestName("it_mind")

	defer func() {
		_ = client.Minds().Drop(ctx, mindName)
		_ = client.Datasources().Drop(ctx, datasourceName)
	}()

	datasourceConfig := &minds.DatasourceConfig{
		Name:           datasourceName,
		Engine:         config.Engine,
		Description:    "integration test datasource",
		ConnectionData: config.ConnectionDataMap(t),
	}

	// 1. Create the datasource
	datasource, err := client.Datasources().Create(ctx, datasourceConfig, false)
	require.NoError(t, err)
	assert.Equal(t, datasourceName, datasource.Name)
	assert.Equal(t, config.Engine, datasource.Engine)

	// 2. Creating again without replace fails
	_, err = client.Datasources().Create(ctx, datasourceConfig, false)
	require.Error(t, err)

	// 3. Replace succeeds
	datasource, err = client.Datasources().Create(ctx, datasourceConfig, true)
	require.NoError(t, err)
	assert.Equal(t, datasourceName, datasource.Name)

	// 4. The datasource is listed
	datasources, err := client.Datasources().List(ctx)
	require.NoError(t, err)

	var names []string
	for _, ds := range datasources {
		names = append(names, ds.Name)
	}

	assert.Contains(t, names, datasourceName)

	// 5. Create a mind over it
	mind, err := client.Minds().Create(ctx, mindName, &minds.MindConfig{
		ModelName:      config.ModelName,
		PromptTemplate: "Answer using the data: {{question}}",
		Datasources:    []string{datasourceName},
	}, true)
	require.NoError(t, err)
	assert.Equal(t, mindName, mind.Name)
	assert.Contains(t, mind.Datasources, datasourceName)

	// 6. Drop the mind and confirm it is gone
	require.NoError(t, client.Minds().Drop(ctx, mindName))

	_, err = client.Minds().Get(ctx, mindName)
	require.Error(t, err)
	assert.True(t, minds.IsNotFound(err))

	// 7. Drop the datasource
	require.NoError(t, client.Datasources().Drop(ctx, datasourceName))

	_, err = client.Datasources().Get(ctx, datasourceName)
	assert.True(t, minds.IsNotFound(err))
}

func TestWorkflow_InvalidAPIKey(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	config.APIKey = "invalid-" + config.APIKey

	_, err := config.NewClient(t).Minds().List(context.Background())
	require.Error(t, err)
	assert.True(t, minds.IsUnauthorized(err) || minds.IsForbidden(err))
}

// TestWorkflow_CLI drives the same lifecycle through the minds binary.
func TestWorkflow_CLI(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)
	config.SkipIfMissingBinary(t)

	runner := NewCommandRunner(config, t)

	datasourceName := GenerateTestName("it_cli_ds")
	mindName := GenerateTestName("it_cli_mind")

	defer func() {
		runner.CleanupResource("mind", mindName)
		runner.CleanupResource("datasource", datasourceName)
	}()

	stdout, stderr, err := runner.Run("datasources", "create",
		"--name", datasourceName,
		"--engine", config.Engine,
		"--connection-data", config.ConnectionData,
		"--replace")
	require.NoError(t, err, "Failed to create datasource: %s", stderr)
	assert.Contains(t, stdout, datasourceName)

	stdout, stderr, err = runner.Run("minds", "create", mindName,
		"--model-name", config.ModelName,
		"--datasources", datasourceName,
		"--replace")
	require.NoError(t, err, "Failed to create mind: %s", stderr)
	assert.Contains(t, stdout, mindName)

	stdout, stderr, err = runner.Run("minds", "get", mindName, "--output", "json")
	require.NoError(t, err, "Failed to get mind: %s", stderr)
	AssertJSONOutput(t, stdout)

	var mind minds.Mind
	require.NoError(t, json.Unmarshal([]byte(stdout), &mind))
	assert.Equal(t, mindName, mind.Name)

	_, stderr, err = runner.Run("minds", "drop", mindName)
	require.NoError(t, err, "Failed to drop mind: %s", stderr)

	_, stderr, err = runner.Run("minds", "get", mindName)
	require.Error(t, err)
	assert.Contains(t, stderr, "Error (not_found)")
}
