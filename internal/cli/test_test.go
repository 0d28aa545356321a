package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const harnessScenarios = "../harness/testdata/scenarios"
const harnessGolden = "../harness/testdata/golden"

const passingScenario = `name: single_category
description: "One category is created"
drafts:
  categories:
    - {key: a, name: {en: A}, slug: {en: a}}
assertions:
  - type: statistics
    resource: categories
    created: 1
`

func TestTestCommand_HarnessScenarios(t *testing.T) {
	stdout, _, err := execute(t, "test", harnessScenarios, "--golden-dir", harnessGolden)
	require.NoError(t, err, stdout)
	assert.Contains(t, stdout, "✓ category_tree")
	assert.Contains(t, stdout, "✓ inventory_ensure_channels")
	assert.Contains(t, stdout, "Test Summary: 3 passed, 0 failed, 3 total")
}

func TestTestCommand_JSON(t *testing.T) {
	stdout, _, err := execute(t, "--format", "json", "test", harnessScenarios,
		"--golden-dir", harnessGolden, "--filter", "category_*")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data.Scenarios, 1)
	assert.Equal(t, ScenarioResult{Name: "category_tree", Pass: true, Golden: "match"}, resp.Data.Scenarios[0])
}

func TestTestCommand_UpdateThenMatch(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "single.yaml", passingScenario)

	stdout, _, err := execute(t, "test", file, "--update")
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ single_category (golden updated)")

	golden := filepath.Join(dir, "golden", "single_category.golden")
	data, err := os.ReadFile(golden)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"scenario_name":"single_category"`)

	_, _, err = execute(t, "test", file)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(golden, []byte("{}"), 0o644))
	stdout, _, err = execute(t, "test", file)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "snapshot does not match golden file")
}

func TestTestCommand_FailingScenario(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "failing.yaml", `name: failing
description: "Expects a failure that never happens"
drafts:
  categories:
    - {key: a, name: {en: A}, slug: {en: a}}
assertions:
  - type: error_count
    count: 1
`)
	writeFile(t, dir, "broken.yaml", "name: broken\n")

	stdout, _, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "✗ failing")
	assert.Contains(t, stdout, "Expected: 1 failures")
	assert.Contains(t, stdout, "✗ broken.yaml")
	assert.Contains(t, stdout, "failed to load scenario")
	assert.Contains(t, stdout, "Test Summary: 0 passed, 2 failed, 2 total")
}

func TestTestCommand_Errors(t *testing.T) {
	_, _, err := execute(t, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")

	stdout, _, err := execute(t, "test", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "scenario path not readable")

	stdout, _, err = execute(t, "test", t.TempDir(), "--filter", "[")
	require.Error(t, err)
	assert.Contains(t, stdout, "invalid filter pattern")
}

func TestTestCommand_EmptyDir(t *testing.T) {
	stdout, _, err := execute(t, "test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, stdout, "No scenarios found.")
}
