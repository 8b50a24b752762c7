package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "stockroom", cmd.Use)
	assert.Contains(t, cmd.Long, "catalog")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"add", "remove", "adjust", "get", "list", "low", "export", "import", "history", "test"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "stockroom.yaml", configFlag.DefValue)

	fileFlag := cmd.PersistentFlags().Lookup("file")
	require.NotNil(t, fileFlag)
	assert.Equal(t, "f", fileFlag.Shorthand)

	for _, name := range []string{"backend", "db", "redis-addr", "redis-key"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "flag %s", name)
	}
}

func TestCommandFlags(t *testing.T) {
	cmd := NewRootCommand()

	addCmd, _, err := cmd.Find([]string{"add"})
	require.NoError(t, err)
	priceFlag := addCmd.Flags().Lookup("price")
	require.NotNil(t, priceFlag)
	assert.Equal(t, "p", priceFlag.Shorthand)
	assert.Equal(t, "0", priceFlag.DefValue)

	lowCmd, _, err := cmd.Find([]string{"low"})
	require.NoError(t, err)
	assert.NotNil(t, lowCmd.Flags().Lookup("threshold"))

	testCmd, _, err := cmd.Find([]string{"test"})
	require.NoError(t, err)
	updateFlag := testCmd.Flags().Lookup("update")
	require.NotNil(t, updateFlag)
	assert.Equal(t, "false", updateFlag.DefValue)
	assert.NotNil(t, testCmd.Flags().Lookup("filter"))
}

func TestFormatValidation(t *testing.T) {
	// Test valid formats
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	// Test invalid formats
	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	_, _, err := execute(t, "--format", "invalid", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestConfigFileApplied(t *testing.T) {
	dir := t.TempDir()
	catalogPath := writeFile(t, dir, "parts.csv", "sku,quantity,unit_price\nGEAR,2,12\nBOLT,50,0.05\n")
	configPath := writeFile(t, dir, "stockroom.yaml", "file: "+catalogPath+"\nlow_stock_threshold: 2\n")

	out, _, err := execute(t, "--config", configPath, "low")
	require.NoError(t, err)
	assert.Contains(t, out, "GEAR")
	assert.NotContains(t, out, "BOLT")
	assert.Contains(t, out, "1 item(s) at or below 2")
}

func TestFlagOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", "ALPHA,1,1\n")
	other := writeFile(t, dir, "b.csv", "BRAVO,1,1\n")
	configPath := writeFile(t, dir, "stockroom.yaml", "file: "+filepath.Join(dir, "a.csv")+"\n")

	out, _, err := execute(t, "--config", configPath, "--file", other, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "BRAVO")
	assert.NotContains(t, out, "ALPHA")
}

func TestExplicitConfigMustExist(t *testing.T) {
	_, _, err := execute(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"), "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestInvalidConfigValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		match   string
	}{
		{"unknown key", "fiel: x.csv\n", "field fiel not found"},
		{"bad backend", "backend: postgres\n", "backend \"postgres\""},
		{"bad level", "log_level: loud\n", "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := writeFile(t, t.TempDir(), "stockroom.yaml", tt.content)
			_, _, err := execute(t, "--config", configPath, "list")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.match)
		})
	}
}

func TestInvalidBackendFlag(t *testing.T) {
	_, _, err := execute(t, "--backend", "memcached", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid settings")
}

func TestVerboseLogsToStderr(t *testing.T) {
	path := writeFile(t, t.TempDir(), "inv.csv", "A,1,1\n")

	out, errOut, err := execute(t, "--verbose", "--format", "json", "--file", path, "list")
	require.NoError(t, err)
	assert.Contains(t, errOut, "catalog loaded")
	assert.Equal(t, "ok", decodeResponse(t, out).Status)
}
