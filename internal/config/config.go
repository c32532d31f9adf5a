package config

import (
	"encoding/json"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bardasz/etp/pkg/etperr"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "etp.json"

	// DefaultLogLevel is used when logLevel is empty.
	DefaultLogLevel = "info"

	// DefaultTimeout bounds dialing and the session handshake.
	DefaultTimeout = "30s"
)

// Environment overrides.
const (
	EnvURL      = "ETP_URL"
	EnvUser     = "ETP_USER"
	EnvPassword = "ETP_PASSWORD"
)

// Config represents etp.json.
type Config struct {
	// URL is the ETP endpoint (ws:// or wss://).
	URL string `json:"url,omitempty"`

	// User and Password are sent as Basic credentials. Both may be empty.
	User     string `json:"user,omitempty"`
	Password string `json:"password,omitempty"`

	// CompressAll compresses every message once gzip is negotiated.
	// Default: true.
	CompressAll *bool `json:"compressAll,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"logLevel,omitempty"`

	// Timeout bounds dialing and the handshake (e.g., "30s").
	Timeout string `json:"timeout,omitempty"`

	// Capture is a transcript target: a file path or s3://bucket/prefix.
	Capture string `json:"capture,omitempty"`

	// MetricsAddr serves Prometheus metrics when set (e.g., ":9464").
	MetricsAddr string `json:"metricsAddr,omitempty"`

	// Protocols requested in RequestSession. Empty uses the client default.
	Protocols []ProtocolConfig `json:"protocols,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ProtocolConfig is one requested protocol and the role asked of the server.
type ProtocolConfig struct {
	Protocol int32  `json:"protocol"`
	Role     string `json:"role"`
}

// New creates a new Config with default values.
func New() *Config {
	all := true
	return &Config{
		CompressAll: &all,
		LogLevel:    DefaultLogLevel,
		Timeout:     DefaultTimeout,
	}
}

// Load reads configuration from the specified directory.
// It looks for etp.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path and applies
// the environment overrides.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, etperr.New("E401").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path))
		}
		return nil, etperr.New("E401").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, etperr.New("E401").
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error())
	}

	cfg.configPath = path
	cfg.applyDefaults()
	cfg.ApplyEnv()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return etperr.Newf(etperr.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
// The password is never written.
func (c *Config) SaveTo(path string) error {
	out := *c
	out.Password = ""
	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return etperr.New("E401").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0600); err != nil {
		return etperr.New("E401").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.CompressAll == nil {
		all := true
		c.CompressAll = &all
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Timeout == "" {
		c.Timeout = DefaultTimeout
	}
}

// ApplyEnv overrides the endpoint and credentials from the environment.
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv(EnvURL); ok {
		c.URL = v
	}
	if v, ok := os.LookupEnv(EnvUser); ok {
		c.User = v
	}
	if v, ok := os.LookupEnv(EnvPassword); ok {
		c.Password = v
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.URL != "" {
		u, err := url.Parse(c.URL)
		if err != nil {
			return etperr.New("E400").WithDetail(c.URL).Wrap(err)
		}
		if u.Scheme != "ws" && u.Scheme != "wss" {
			return etperr.New("E400").
				WithDetailf("url %q: scheme must be ws or wss", c.URL)
		}
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return etperr.New("E401").
			WithDetailf("timeout %q is not a duration", c.Timeout)
	}
	for _, p := range c.Protocols {
		if p.Protocol < 0 || p.Role == "" {
			return etperr.New("E401").
				WithDetailf("protocol %d: role is required", p.Protocol)
		}
	}
	return nil
}

// Compress reports the compressAll setting.
func (c *Config) Compress() bool {
	return c.CompressAll == nil || *c.CompressAll
}

// TimeoutDuration returns the parsed timeout, or the default when invalid.
func (c *Config) TimeoutDuration() time.Duration {
	if d, err := time.ParseDuration(c.Timeout); err == nil && d > 0 {
		return d
	}
	d, _ := time.ParseDuration(DefaultTimeout)
	return d
}

// SlogLevel returns the log level, or Info when invalid.
func (c *Config) SlogLevel() slog.Level {
	l, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, etperr.New("E401").WithDetailf("log level %q: want debug, info, warn or error", s)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindConfigDir walks up directories to find one holding etp.json.
func FindConfigDir(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", etperr.New("E401").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads etp.json from the working directory or a parent.
// Without a file it returns the defaults with the environment applied.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindConfigDir(wd)
	if err != nil {
		cfg := New()
		cfg.ApplyEnv()
		return cfg, nil
	}

	return Load(root)
}
