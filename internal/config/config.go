package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Source kinds.
const (
	SourceFile    = "file"
	SourceHTTP    = "http"
	SourceArchive = "archive"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Source    SourceConfig    `yaml:"source"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Page      PageConfig      `yaml:"page"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// SourceConfig selects where the current week's document comes from.
// Path is used by kind file, URL by kind http, Week by kind archive (empty
// means the latest published week).
type SourceConfig struct {
	Kind string `yaml:"kind"`
	Path string `yaml:"path"`
	URL  string `yaml:"url"`
	Week string `yaml:"week"`
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

type PageConfig struct {
	Lang         string            `yaml:"lang"`
	Stylesheet   string            `yaml:"stylesheet"`
	StaticDir    string            `yaml:"static_dir"`
	HideFilters  bool              `yaml:"hide_filters"`
	FilterLabels map[string]string `yaml:"filter_labels"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// Enabled reports whether a database is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
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

// Load reads config from a YAML file, then applies environment variable overrides.
// A .env file next to the config file, if present, is loaded into the
// environment first. Env vars use the prefix WODBOARD_:
//
//	WODBOARD_SERVER_HOST, WODBOARD_SERVER_PORT,
//	WODBOARD_SOURCE_KIND, WODBOARD_SOURCE_PATH, WODBOARD_SOURCE_URL, WODBOARD_SOURCE_WEEK,
//	WODBOARD_DB_HOST, WODBOARD_DB_PORT, WODBOARD_DB_NAME,
//	WODBOARD_DB_USER, WODBOARD_DB_PASSWORD, WODBOARD_DB_SSLMODE,
//	WODBOARD_AUTH_API_KEY
func Load(path string) (*Config, error) {
	envPath := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env file: %w", err)
	}

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

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WODBOARD_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("WODBOARD_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("WODBOARD_SOURCE_KIND"); v != "" {
		cfg.Source.Kind = v
	}
	if v := os.Getenv("WODBOARD_SOURCE_PATH"); v != "" {
		cfg.Source.Path = v
	}
	if v := os.Getenv("WODBOARD_SOURCE_URL"); v != "" {
		cfg.Source.URL = v
	}
	if v := os.Getenv("WODBOARD_SOURCE_WEEK"); v != "" {
		cfg.Source.Week = v
	}
	if v := os.Getenv("WODBOARD_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("WODBOARD_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("WODBOARD_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("WODBOARD_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("WODBOARD_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("WODBOARD_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("WODBOARD_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Source.Kind == "" {
		cfg.Source.Kind = SourceFile
	}
	if cfg.Page.Lang == "" {
		cfg.Page.Lang = "es"
	}
	if cfg.Tailscale.Hostname == "" {
		cfg.Tailscale.Hostname = "wodboard"
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 && !c.Tailscale.Enabled {
		return fmt.Errorf("server.port is required")
	}
	switch c.Source.Kind {
	case SourceFile:
		if c.Source.Path == "" {
			return fmt.Errorf("source.path is required for kind %q", SourceFile)
		}
	case SourceHTTP:
		if c.Source.URL == "" {
			return fmt.Errorf("source.url is required for kind %q", SourceHTTP)
		}
	case SourceArchive:
		if !c.Database.Enabled() {
			return fmt.Errorf("database.host is required for kind %q", SourceArchive)
		}
	default:
		return fmt.Errorf("unsupported source.kind: %s", c.Source.Kind)
	}
	if c.Database.Enabled() {
		if c.Database.Port == 0 {
			return fmt.Errorf("database.port is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("database.name is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database.user is required")
		}
	}
	return nil
}
