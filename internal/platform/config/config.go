package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "LOCKEDIN"
	FileName  = "lockedin"
)

type Config struct {
	DataDir       string
	DBPath        string
	NotesDir      string
	SessionLength time.Duration
	LogLevel      string
	LogFormat     string
	Assistant     AssistantConfig
	Gateway       GatewayConfig
	// ConfigFile is the file that was read, empty when running on defaults.
	ConfigFile string
}

// AssistantConfig points the client at a chat endpoint.
type AssistantConfig struct {
	URL     string
	Timeout time.Duration
}

// GatewayConfig drives `lockedin serve`.
type GatewayConfig struct {
	Addr            string
	RateLimit       int
	RateWindow      time.Duration
	UpstreamURL     string
	UpstreamTimeout time.Duration
}

// ResolveDataDir picks the data directory: explicit flag, then
// LOCKEDIN_DATA_DIR, then the XDG data home.
func ResolveDataDir(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if env := os.Getenv(EnvPrefix + "_DATA_DIR"); env != "" {
		return env, nil
	}
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "lockedin"), nil
}

// Load layers defaults, lockedin.{yaml,toml} in dataDir, a .env file and
// LOCKEDIN_* environment variables, in increasing priority.
func Load(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	for _, envFile := range []string{filepath.Join(dataDir, ".env"), ".env"} {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := newViper(dataDir)
	v.SetConfigName(FileName)
	v.AddConfigPath(dataDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		DataDir:       dataDir,
		DBPath:        v.GetString("db_path"),
		NotesDir:      v.GetString("notes_dir"),
		SessionLength: v.GetDuration("session_length"),
		LogLevel:      v.GetString("log.level"),
		LogFormat:     v.GetString("log.format"),
		Assistant: AssistantConfig{
			URL:     v.GetString("assistant.url"),
			Timeout: v.GetDuration("assistant.timeout"),
		},
		Gateway: GatewayConfig{
			Addr:            v.GetString("gateway.addr"),
			RateLimit:       v.GetInt("gateway.rate_limit"),
			RateWindow:      v.GetDuration("gateway.rate_window"),
			UpstreamURL:     v.GetString("gateway.upstream_url"),
			UpstreamTimeout: v.GetDuration("gateway.upstream_timeout"),
		},
		ConfigFile: v.ConfigFileUsed(),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WriteDefaults writes a config file holding the defaults. The format is
// taken from the extension. Existing files are left alone.
func WriteDefaults(dataDir, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := newViper(dataDir).SafeWriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func newViper(dataDir string) *viper.Viper {
	v := viper.New()
	v.SetDefault("db_path", filepath.Join(dataDir, "lockedin.db"))
	v.SetDefault("notes_dir", filepath.Join(dataDir, "notes"))
	v.SetDefault("session_length", 25*time.Minute)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("assistant.url", "http://127.0.0.1:8787/api/chat")
	v.SetDefault("assistant.timeout", 30*time.Second)
	v.SetDefault("gateway.addr", "127.0.0.1:8787")
	v.SetDefault("gateway.rate_limit", 60)
	v.SetDefault("gateway.rate_window", time.Minute)
	v.SetDefault("gateway.upstream_url", "")
	v.SetDefault("gateway.upstream_timeout", 30*time.Second)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func (c Config) Validate() error {
	var errs []error
	if c.DBPath == "" {
		errs = append(errs, fmt.Errorf("db_path is required"))
	}
	if c.SessionLength <= 0 {
		errs = append(errs, fmt.Errorf("session_length must be positive, got %s", c.SessionLength))
	}
	if c.Assistant.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("assistant.timeout must be positive"))
	}
	if c.Gateway.RateLimit <= 0 {
		errs = append(errs, fmt.Errorf("gateway.rate_limit must be positive, got %d", c.Gateway.RateLimit))
	}
	if c.Gateway.RateWindow <= 0 {
		errs = append(errs, fmt.Errorf("gateway.rate_window must be positive"))
	}
	if c.Gateway.UpstreamTimeout <= 0 {
		errs = append(errs, fmt.Errorf("gateway.upstream_timeout must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
