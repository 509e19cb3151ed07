package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntpmcp/ntpmcp/config"
)

func ensureFiles(t *testing.T, rootDir string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(rootDir, f)
		_, err := os.Stat(p)
		assert.NoError(t, err, p)
	}
}

func TestEnsureRoot(t *testing.T) {
	require := require.New(t)

	tmpDir := t.TempDir()

	// create root dir
	config.EnsureRoot(tmpDir)

	// make sure config is set properly
	data, err := os.ReadFile(filepath.Join(tmpDir, config.DefaultConfigDir, config.DefaultConfigFileName))
	require.NoError(err)

	assertValidConfig(t, string(data))

	ensureFiles(t, tmpDir, config.DefaultConfigDir)
}

func TestEnsureRootKeepsExistingConfig(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.NTP.Server = "time.google.com"
	config.EnsureRoot(tmpDir)

	path := filepath.Join(tmpDir, config.DefaultConfigDir, config.DefaultConfigFileName)
	config.WriteConfigFile(path, cfg)

	// a second EnsureRoot must not overwrite the customized file
	config.EnsureRoot(tmpDir)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `server = "time.google.com"`)
}

func TestWriteConfigFileRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")

	cfg := config.DefaultConfig()
	cfg.NTP.Timezone = "America/New_York"
	cfg.MCP.Transport = config.TransportTCP
	config.WriteConfigFile(path, cfg)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `timezone = "America/New_York"`)
	assert.Contains(t, text, `transport = "tcp"`)
	assert.Contains(t, text, `cache_ttl = "30s"`)
}

func assertValidConfig(t *testing.T, configFile string) {
	t.Helper()
	// list of words we expect in the config
	elems := []string{
		"log_level",
		"log_format",
		"server",
		"timezone",
		"query_timeout",
		"max_attempts",
		"transport",
		"cache_ttl",
		"rate_limit",
		"prometheus",
		"namespace",
	}
	for _, e := range elems {
		assert.True(t, strings.Contains(configFile, e), "config file missing %q", e)
	}
}
