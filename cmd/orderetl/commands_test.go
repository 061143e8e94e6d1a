package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitCommands(t *testing.T) {
	env := setupCLITestEnv(t)
	writeTestFile(t, env.path("src", "update_config", "transit_times.csv"), "Country,Ship Q,Transit Time\nGermany,Standard,3-5\nGermany,Premium,1-2\n")

	out, _, err := runCLI(t, []string{"transit", "update"}, env.configPath, "")
	require.NoError(t, err)
	requireContains(t, out, "Wrote 1 countries (2 ship queues)")
	assert.FileExists(t, env.path("config", "transit_times.json"))

	out, _, err = runCLI(t, []string{"transit", "lookup", "GERMANY", " premium "}, env.configPath, "")
	require.NoError(t, err)
	assert.Equal(t, "1-2\n", out)

	_, _, err = runCLI(t, []string{"transit", "lookup", "france", "standard"}, env.configPath, "")
	require.Error(t, err)
}

func TestTransitUpdate_MissingColumn(t *testing.T) {
	env := setupCLITestEnv(t)
	csvPath := env.path("custom.csv")
	writeTestFile(t, csvPath, "Country,Ship Q\nGermany,Standard\n")

	_, _, err := runCLI(t, []string{"transit", "update", "--csv", csvPath}, env.configPath, "")
	require.Error(t, err)
	requireContains(t, err.Error(), "missing required headers")
	assert.NoFileExists(t, env.path("config", "transit_times.json"))
}

func TestHeadersMergeCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	writeTestFile(t, env.path("config", "data_types.json"), `{
    "on_hold": {
        "Ship To": "ship_to_address_full",
        "Unknown": "ignored"
    },
    "other": {
        "X": "y"
    }
}`)

	out, _, err := runCLI(t, []string{"headers", "merge"}, env.configPath, "")
	require.NoError(t, err)
	requireContains(t, out, "Updated 1 column targets")

	data, err := os.ReadFile(env.path("config", "headers2.json"))
	require.NoError(t, err)
	expected := "\xEF\xBB\xBF" + `{
    "on_hold": {
        "Order Number": "order_number",
        "Ship To": "ship_to_address_full"
    },
    "dataextract": {
        "ORDER_NO": "order_number",
        "SHIP_VIA": "ship_via"
    }
}
`
	assert.Equal(t, expected, string(data))
}

func TestHeadersShowCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"headers", "show"}, env.configPath, "")
	require.NoError(t, err)
	requireContains(t, out, "on_hold")
	requireContains(t, out, "order_number, ship_to_address")
	requireContains(t, out, "dtx")

	out, _, err = runCLI(t, []string{"headers", "show", "on_hold"}, env.configPath, "")
	require.NoError(t, err)
	requireContains(t, out, "Ship To")

	_, _, err = runCLI(t, []string{"headers", "show", "missing"}, env.configPath, "")
	require.Error(t, err)
}

func TestMetaShowCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"meta", "show"}, env.configPath, "")
	require.Error(t, err)

	writeTestFile(t, env.path("program_data", "meta_data.json"), `{"on_hold": {"a.csv": 4}, "empty": {}, "last_input_date": "2024-02-03 04:05:06"}`)

	out, _, err := runCLI(t, []string{"meta", "show"}, env.configPath, "")
	require.NoError(t, err)
	requireContains(t, out, "a.csv")
	requireContains(t, out, "empty")
	requireContains(t, out, "Last input date: 2024-02-03 04:05:06")
}

func TestRootCommand_BadConfig(t *testing.T) {
	env := setupCLITestEnv(t)
	writeTestFile(t, env.configPath, "pipeline:\n  workers: 0\n")

	_, _, err := runCLI(t, []string{"meta", "show"}, env.configPath, "")
	require.Error(t, err)
	requireContains(t, err.Error(), "workers")
}

func TestVersionCommand(t *testing.T) {
	// config is not loaded, so a broken config file does not matter
	env := setupCLITestEnv(t)
	writeTestFile(t, env.configPath, "pipeline:\n  workers: 0\n")

	out, _, err := runCLI(t, []string{"version"}, env.configPath, "")
	require.NoError(t, err)
	requireContains(t, out, "orderetl v")
}
