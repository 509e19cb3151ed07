package config

import (
	"path/filepath"
	"time"
)

const (
	// DefaultNTPMCPDir is the default directory under $HOME holding the
	// server's configuration.
	DefaultNTPMCPDir = ".ntpmcp"

	// DefaultConfigDir is the configuration directory under the root.
	DefaultConfigDir = "config"

	// DefaultConfigFileName is the name of the rendered TOML file.
	DefaultConfigFileName = "config.toml"

	// LogFormatPlain defines colored plain text log format.
	LogFormatPlain = "plain"
	// LogFormatJSON defines structured JSON log format.
	LogFormatJSON = "json"

	// DefaultLogLevel is the default log filtering level.
	DefaultLogLevel = "info"

	// TransportStdio serves MCP over stdin/stdout.
	TransportStdio = "stdio"
	// TransportTCP serves MCP over a TCP listener.
	TransportTCP = "tcp"
)

var defaultConfigFilePath = filepath.Join(DefaultConfigDir, DefaultConfigFileName)

// Config defines the top level configuration for ntpmcp.
type Config struct {
	// Top level options use an anonymous struct
	BaseConfig `mapstructure:",squash"`

	// Options for services
	NTP             *NTPConfig             `mapstructure:"ntp"`
	MCP             *MCPConfig             `mapstructure:"mcp"`
	Instrumentation *InstrumentationConfig `mapstructure:"instrumentation"`
}

// DefaultConfig returns a default configuration for ntpmcp.
func DefaultConfig() *Config {
	return &Config{
		BaseConfig:      DefaultBaseConfig(),
		NTP:             DefaultNTPConfig(),
		MCP:             DefaultMCPConfig(),
		Instrumentation: DefaultInstrumentationConfig(),
	}
}

// TestConfig returns a configuration that can be used for testing.
func TestConfig() *Config {
	return &Config{
		BaseConfig:      TestBaseConfig(),
		NTP:             TestNTPConfig(),
		MCP:             TestMCPConfig(),
		Instrumentation: TestInstrumentationConfig(),
	}
}

// SetRoot sets the RootDir for all Config structs.
func (cfg *Config) SetRoot(root string) *Config {
	cfg.BaseConfig.RootDir = root
	return cfg
}

// ValidateBasic performs basic validation (checking param bounds, etc.) and
// returns an error if any check fails.
func (cfg *Config) ValidateBasic() error {
	if err := cfg.BaseConfig.ValidateBasic(); err != nil {
		return err
	}
	if err := cfg.NTP.ValidateBasic(); err != nil {
		return ErrInSection{Err: err, Section: "ntp"}
	}
	if err := cfg.MCP.ValidateBasic(); err != nil {
		return ErrInSection{Err: err, Section: "mcp"}
	}
	if err := cfg.Instrumentation.ValidateBasic(); err != nil {
		return ErrInSection{Err: err, Section: "instrumentation"}
	}
	return nil
}

// -----------------------------------------------------------------------------
// BaseConfig

// BaseConfig defines the base configuration for ntpmcp.
type BaseConfig struct {
	// The root directory for all config.
	// This should be set in viper so it can unmarshal into this struct.
	RootDir string `mapstructure:"home"`

	// Output level for logging
	LogLevel string `mapstructure:"log_level"`

	// Output format: 'plain' (colored text) or 'json'
	LogFormat string `mapstructure:"log_format"`

	// Colorful log output when using the plain format
	LogColors bool `mapstructure:"log_colors"`
}

// DefaultBaseConfig returns a default base configuration for ntpmcp.
func DefaultBaseConfig() BaseConfig {
	return BaseConfig{
		LogLevel:  DefaultLogLevel,
		LogFormat: LogFormatPlain,
		LogColors: true,
	}
}

// TestBaseConfig returns a base configuration for testing.
func TestBaseConfig() BaseConfig {
	cfg := DefaultBaseConfig()
	cfg.LogColors = false
	return cfg
}

// ConfigFilePath returns the full path of the rendered TOML file.
func (cfg BaseConfig) ConfigFilePath() string {
	return filepath.Join(cfg.RootDir, defaultConfigFilePath)
}

// ValidateBasic performs basic validation (checking param bounds, etc.) and
// returns an error if any check fails.
func (cfg BaseConfig) ValidateBasic() error {
	switch cfg.LogFormat {
	case LogFormatPlain, LogFormatJSON:
	default:
		return ErrUnknownLogFormat
	}
	return nil
}

// -----------------------------------------------------------------------------
// NTPConfig

// NTPConfig defines the configuration of the NTP acquisition pipeline: which
// server to query, in which time zone to render readings, and how the query
// is bounded and retried.
type NTPConfig struct {
	// Time server to query. Validated against the whitelist on every
	// acquisition; fixed for the process lifetime.
	Server string `mapstructure:"server"`

	// IANA time zone name readings are rendered in. Empty means the host
	// system time zone.
	Timezone string `mapstructure:"timezone"`

	// How long a single NTP exchange may take
	QueryTimeout time.Duration `mapstructure:"query_timeout"`

	// How many times a query is attempted before falling back to the
	// local clock
	MaxAttempts int `mapstructure:"max_attempts"`

	// First wait between attempts; doubles up to retry_max_wait
	RetryInitialWait time.Duration `mapstructure:"retry_initial_wait"`

	// Upper bound on the wait between attempts
	RetryMaxWait time.Duration `mapstructure:"retry_max_wait"`
}

// DefaultNTPConfig returns a default configuration for the NTP pipeline.
func DefaultNTPConfig() *NTPConfig {
	return &NTPConfig{
		Server:           "pool.ntp.org",
		Timezone:         "",
		QueryTimeout:     5 * time.Second,
		MaxAttempts:      3,
		RetryInitialWait: 1 * time.Second,
		RetryMaxWait:     10 * time.Second,
	}
}

// TestNTPConfig returns a configuration for testing the NTP pipeline.
func TestNTPConfig() *NTPConfig {
	cfg := DefaultNTPConfig()
	cfg.QueryTimeout = 100 * time.Millisecond
	cfg.RetryInitialWait = 1 * time.Millisecond
	cfg.RetryMaxWait = 10 * time.Millisecond
	return cfg
}

// TimeLocation resolves the configured time zone. An empty Timezone means
// the host system time zone.
func (cfg *NTPConfig) TimeLocation() (*time.Location, error) {
	if cfg.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, ErrUnknownTimeZone{Zone: cfg.Timezone, Err: err}
	}
	return loc, nil
}

// ValidateBasic performs basic validation (checking param bounds, etc.) and
// returns an error if any check fails.
func (cfg *NTPConfig) ValidateBasic() error {
	if cfg.Server == "" {
		return ErrEmptyServerName
	}
	if cfg.QueryTimeout <= 0 {
		return ErrNonPositive{Field: "query_timeout"}
	}
	if cfg.MaxAttempts < 1 {
		return ErrNonPositive{Field: "max_attempts"}
	}
	if cfg.RetryInitialWait <= 0 {
		return ErrNonPositive{Field: "retry_initial_wait"}
	}
	if cfg.RetryMaxWait < cfg.RetryInitialWait {
		return ErrRetryWaitOrder
	}
	if _, err := cfg.TimeLocation(); err != nil {
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------
// MCPConfig

// MCPConfig defines the configuration of the MCP surface: the transport the
// tools are served over, the response cache, and the admission window.
type MCPConfig struct {
	// Transport to serve tools over: "stdio" or "tcp"
	Transport string `mapstructure:"transport"`

	// TCP address to listen on when transport is "tcp"
	TCPListenAddress string `mapstructure:"tcp_laddr"`

	// Maximum number of simultaneous TCP connections
	MaxOpenConnections int `mapstructure:"max_open_connections"`

	// How long a successful response stays fresh. 0 disables the cache.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`

	// How many calls are admitted per rate window
	RateLimit int `mapstructure:"rate_limit"`

	// Length of the sliding admission window
	RateWindow time.Duration `mapstructure:"rate_window"`
}

// DefaultMCPConfig returns a default configuration for the MCP surface.
func DefaultMCPConfig() *MCPConfig {
	return &MCPConfig{
		Transport:          TransportStdio,
		TCPListenAddress:   "127.0.0.1:26680",
		MaxOpenConnections: 3,
		CacheTTL:           30 * time.Second,
		RateLimit:          60,
		RateWindow:         60 * time.Second,
	}
}

// TestMCPConfig returns a configuration for testing the MCP surface.
func TestMCPConfig() *MCPConfig {
	cfg := DefaultMCPConfig()
	cfg.TCPListenAddress = "127.0.0.1:0"
	return cfg
}

// ValidateBasic performs basic validation (checking param bounds, etc.) and
// returns an error if any check fails.
func (cfg *MCPConfig) ValidateBasic() error {
	switch cfg.Transport {
	case TransportStdio, TransportTCP:
	default:
		return ErrUnknownTransport{Transport: cfg.Transport}
	}
	if cfg.Transport == TransportTCP && cfg.TCPListenAddress == "" {
		return ErrEmptyTCPAddress
	}
	if cfg.MaxOpenConnections < 0 {
		return ErrNegative{Field: "max_open_connections"}
	}
	if cfg.CacheTTL < 0 {
		return ErrNegative{Field: "cache_ttl"}
	}
	if cfg.RateLimit < 1 {
		return ErrNonPositive{Field: "rate_limit"}
	}
	if cfg.RateWindow <= 0 {
		return ErrNonPositive{Field: "rate_window"}
	}
	return nil
}

// -----------------------------------------------------------------------------
// InstrumentationConfig

// InstrumentationConfig defines the configuration for metrics reporting.
type InstrumentationConfig struct {
	// When true, Prometheus metrics are served under /metrics on
	// PrometheusListenAddr.
	Prometheus bool `mapstructure:"prometheus"`

	// Address to listen for Prometheus collector(s) connections.
	PrometheusListenAddr string `mapstructure:"prometheus_listen_addr"`

	// Maximum number of simultaneous connections.
	MaxOpenConnections int `mapstructure:"max_open_connections"`

	// Instrumentation namespace.
	Namespace string `mapstructure:"namespace"`
}

// DefaultInstrumentationConfig returns a default configuration for metrics
// reporting.
func DefaultInstrumentationConfig() *InstrumentationConfig {
	return &InstrumentationConfig{
		Prometheus:           false,
		PrometheusListenAddr: ":26660",
		MaxOpenConnections:   3,
		Namespace:            "ntpmcp",
	}
}

// TestInstrumentationConfig returns a default configuration for metrics
// reporting.
func TestInstrumentationConfig() *InstrumentationConfig {
	return DefaultInstrumentationConfig()
}

// ValidateBasic performs basic validation (checking param bounds, etc.) and
// returns an error if any check fails.
func (cfg *InstrumentationConfig) ValidateBasic() error {
	if cfg.MaxOpenConnections < 0 {
		return ErrNegative{Field: "max_open_connections"}
	}
	return nil
}

// IsPrometheusEnabled reports whether Prometheus metrics are configured to
// be served.
func (cfg *InstrumentationConfig) IsPrometheusEnabled() bool {
	return cfg.Prometheus && cfg.PrometheusListenAddr != ""
}
