package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntpmcp/ntpmcp/config"
)

func TestDefaultConfig(t *testing.T) {
	assert := assert.New(t)

	// set up some defaults
	cfg := config.DefaultConfig()
	assert.NotNil(cfg.NTP)
	assert.NotNil(cfg.MCP)
	assert.NotNil(cfg.Instrumentation)

	assert.Equal("pool.ntp.org", cfg.NTP.Server)
	assert.Equal("", cfg.NTP.Timezone)
	assert.Equal(30*time.Second, cfg.MCP.CacheTTL)
	assert.Equal(60, cfg.MCP.RateLimit)

	// check the root dir stuff...
	cfg.SetRoot("/foo")
	assert.Equal("/foo/config/config.toml", cfg.ConfigFilePath())
}

func TestConfigValidateBasic(t *testing.T) {
	cfg := config.DefaultConfig()
	require.NoError(t, cfg.ValidateBasic())

	// tamper with query_timeout
	cfg.NTP.QueryTimeout = -5 * time.Second
	require.Error(t, cfg.ValidateBasic())
	cfg.NTP.QueryTimeout = 5 * time.Second

	cfg.MCP.Transport = "websocket"
	require.Error(t, cfg.ValidateBasic())
}

func TestBaseConfigValidateBasic(t *testing.T) {
	cfg := config.TestBaseConfig()
	require.NoError(t, cfg.ValidateBasic())

	// tamper with log format
	cfg.LogFormat = "invalid"
	require.Error(t, cfg.ValidateBasic())
}

func TestNTPConfigValidateBasic(t *testing.T) {
	testcases := map[string]struct {
		modify    func(*config.NTPConfig)
		expectErr bool
	}{
		"default":                     {func(*config.NTPConfig) {}, false},
		"empty server":                {func(c *config.NTPConfig) { c.Server = "" }, true},
		"zero timeout":                {func(c *config.NTPConfig) { c.QueryTimeout = 0 }, true},
		"negative timeout":            {func(c *config.NTPConfig) { c.QueryTimeout = -1 }, true},
		"zero attempts":               {func(c *config.NTPConfig) { c.MaxAttempts = 0 }, true},
		"single attempt":              {func(c *config.NTPConfig) { c.MaxAttempts = 1 }, false},
		"zero initial wait":           {func(c *config.NTPConfig) { c.RetryInitialWait = 0 }, true},
		"max wait below initial wait": {func(c *config.NTPConfig) { c.RetryMaxWait = 500 * time.Millisecond }, true},
		"known timezone":              {func(c *config.NTPConfig) { c.Timezone = "America/New_York" }, false},
		"utc timezone":                {func(c *config.NTPConfig) { c.Timezone = "UTC" }, false},
		"unknown timezone":            {func(c *config.NTPConfig) { c.Timezone = "Mars/Olympus_Mons" }, true},
	}
	for desc, tc := range testcases {
		t.Run(desc, func(t *testing.T) {
			cfg := config.DefaultNTPConfig()
			tc.modify(cfg)

			err := cfg.ValidateBasic()
			if tc.expectErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNTPConfigTimeLocation(t *testing.T) {
	cfg := config.DefaultNTPConfig()

	// empty means the host zone
	loc, err := cfg.TimeLocation()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	cfg.Timezone = "UTC"
	loc, err = cfg.TimeLocation()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	cfg.Timezone = "Not/AZone"
	_, err = cfg.TimeLocation()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown time zone")
}

func TestMCPConfigValidateBasic(t *testing.T) {
	cfg := config.TestMCPConfig()
	require.NoError(t, cfg.ValidateBasic())

	// tamper with transport
	cfg.Transport = "invalid"
	require.Error(t, cfg.ValidateBasic())
	cfg.Transport = config.TransportTCP

	cfg.TCPListenAddress = ""
	require.Error(t, cfg.ValidateBasic())
	cfg.TCPListenAddress = "127.0.0.1:0"

	fields2values := []struct {
		set     func(*config.MCPConfig, int64)
		valid   []int64
		invalid []int64
	}{
		{func(c *config.MCPConfig, v int64) { c.MaxOpenConnections = int(v) }, []int64{0, 1}, []int64{-1}},
		{func(c *config.MCPConfig, v int64) { c.CacheTTL = time.Duration(v) }, []int64{0, 1}, []int64{-1}},
		{func(c *config.MCPConfig, v int64) { c.RateLimit = int(v) }, []int64{1}, []int64{-1, 0}},
		{func(c *config.MCPConfig, v int64) { c.RateWindow = time.Duration(v) }, []int64{1}, []int64{-1, 0}},
	}
	for _, field := range fields2values {
		for _, value := range field.valid {
			cfg := config.TestMCPConfig()
			field.set(cfg, value)
			require.NoError(t, cfg.ValidateBasic())
		}
		for _, value := range field.invalid {
			cfg := config.TestMCPConfig()
			field.set(cfg, value)
			require.Error(t, cfg.ValidateBasic())
		}
	}
}

func TestInstrumentationConfigValidateBasic(t *testing.T) {
	cfg := config.TestInstrumentationConfig()
	require.NoError(t, cfg.ValidateBasic())

	// tamper with maximum open connections
	cfg.MaxOpenConnections = -1
	require.Error(t, cfg.ValidateBasic())
}

func TestConfigErrInSection(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.MCP.RateLimit = 0

	err := cfg.ValidateBasic()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[mcp] section")
}
