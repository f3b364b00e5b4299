// Package config loads the commandbar.toml file used by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// DefaultPath is looked up when --config is not given.
const DefaultPath = "commandbar.toml"

// Config is the root of commandbar.toml.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Server ServerConfig `toml:"server"`
	MCP    MCPConfig    `toml:"mcp"`
	Store  StoreConfig  `toml:"store"`
	Sink   SinkConfig   `toml:"sink"`

	// Host is written into host.current of new sessions (e.g. "EXCEL").
	Host string `toml:"host"`
}

// LogConfig controls the stderr logger.
type LogConfig struct {
	Level string `toml:"level" validate:"oneof=debug info warn error"`
}

// ServerConfig configures `commandbar serve`.
type ServerConfig struct {
	Addr    string `toml:"addr" validate:"required,hostname_port"`
	Metrics bool   `toml:"metrics"`
}

// MCPConfig configures `commandbar mcp`.
type MCPConfig struct {
	Transport string `toml:"transport" validate:"oneof=stdio sse"`
	Addr      string `toml:"addr" validate:"omitempty,hostname_port"`
	BaseURL   string `toml:"base_url" validate:"omitempty,url"`
}

// StoreConfig selects where session trees live.
type StoreConfig struct {
	Backend string      `toml:"backend" validate:"oneof=memory file redis"`
	Dir     string      `toml:"dir" validate:"required_if=Backend file"`
	Redis   RedisConfig `toml:"redis"`

	// EncryptionKey (base64, 32 bytes) seals github.token before it is stored.
	// FallbackKeys still open tokens sealed with a previous key.
	EncryptionKey string   `toml:"encryption_key" validate:"omitempty,base64"`
	FallbackKeys  []string `toml:"fallback_keys" validate:"dive,base64"`
	// RedactToken drops github.token on save; restored sessions come back logged out.
	RedactToken bool `toml:"redact_token"`
}

// RedisConfig is used by the redis store, locker and sink.
type RedisConfig struct {
	Addr     string   `toml:"addr" validate:"required,hostname_port"`
	Password string   `toml:"password"`
	DB       int      `toml:"db" validate:"gte=0,lte=15"`
	Prefix   string   `toml:"prefix"`
	TTL      Duration `toml:"ttl"`
	LockTTL  Duration `toml:"lock_ttl"`
}

// SinkConfig selects where dispatched intents go after the reducer ran.
type SinkConfig struct {
	// Kind is "log" (intents are only logged) or "redis" (pushed onto Queue).
	Kind  string `toml:"kind" validate:"oneof=log redis"`
	Queue string `toml:"queue" validate:"required_if=Kind redis"`
}

// Duration is a wrapper for time.Duration that supports TOML marshaling.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for Duration.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler for Duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Log:    LogConfig{Level: "info"},
		Server: ServerConfig{Addr: "localhost:8080", Metrics: true},
		MCP:    MCPConfig{Transport: "stdio", Addr: "localhost:8081"},
		Store: StoreConfig{
			Backend: "memory",
			Dir:     ".commandbar/sessions",
			Redis: RedisConfig{
				Addr:    "localhost:6379",
				Prefix:  "commandbar:session:",
				LockTTL: Duration{30 * time.Second},
			},
		},
		Sink: SinkConfig{Kind: "log", Queue: "commandbar:intents"},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads path on top of Default. An empty path tries DefaultPath and falls back to the
// defaults when it does not exist; an explicit path must exist. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, cfg.Validate()
		}
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := Decode(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Decode parses TOML text into cfg, keeping the values already set for absent keys.
func Decode(text string, cfg *Config) error {
	meta, err := toml.Decode(text, cfg)
	if err != nil {
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
