package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Output    OutputConfig    `yaml:"output"`
}

type ServerConfig struct {
	Host        string   `yaml:"host"`
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// OutputConfig holds the defaults for the markdown log the CLI writes.
type OutputConfig struct {
	File       string   `yaml:"file"`
	Languages  []string `yaml:"languages"`
	HistoryDir string   `yaml:"history_dir"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Load reads server config from a YAML file, applies environment variable
// overrides and validates the result. Env vars use the WOD_ prefix:
//
//	WOD_SERVER_HOST, WOD_SERVER_PORT, WOD_SERVER_CORS_ORIGINS,
//	WOD_DB_HOST, WOD_DB_PORT, WOD_DB_NAME,
//	WOD_DB_USER, WOD_DB_PASSWORD, WOD_DB_SSLMODE,
//	WOD_AUTH_API_KEY,
//	WOD_TAILSCALE_ENABLED, WOD_TAILSCALE_HOSTNAME, WOD_TAILSCALE_STATE_DIR,
//	WOD_OUTPUT_FILE, WOD_OUTPUT_LANGUAGES, WOD_OUTPUT_HISTORY_DIR
func Load(path string) (*Config, error) {
	cfg, err := read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// LoadClient is Load without the server requirements, for the CLI.
func LoadClient(path string) (*Config, error) {
	return read(path)
}

func read(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WOD_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("WOD_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("WOD_SERVER_CORS_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("WOD_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("WOD_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("WOD_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("WOD_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("WOD_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("WOD_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("WOD_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("WOD_TAILSCALE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = b
		}
	}
	if v := os.Getenv("WOD_TAILSCALE_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
	if v := os.Getenv("WOD_TAILSCALE_STATE_DIR"); v != "" {
		cfg.Tailscale.StateDir = v
	}
	if v := os.Getenv("WOD_OUTPUT_FILE"); v != "" {
		cfg.Output.File = v
	}
	if v := os.Getenv("WOD_OUTPUT_LANGUAGES"); v != "" {
		cfg.Output.Languages = splitList(v)
	}
	if v := os.Getenv("WOD_OUTPUT_HISTORY_DIR"); v != "" {
		cfg.Output.HistoryDir = v
	}
}

// splitList splits a comma separated env value, dropping empty items.
func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func applyDefaults(cfg *Config) {
	if cfg.Tailscale.Hostname == "" {
		cfg.Tailscale.Hostname = "wodlog"
	}
	if cfg.Output.File == "" {
		cfg.Output.File = "workouts.md"
	}
	if len(cfg.Output.Languages) == 0 {
		cfg.Output.Languages = []string{"en"}
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	if c.Tailscale.Enabled && c.Tailscale.StateDir == "" {
		return fmt.Errorf("tailscale.state_dir is required when tailscale is enabled")
	}
	return nil
}
