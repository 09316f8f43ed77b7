package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	ForumStoragePostgres = "postgres"
	ForumStorageLocal    = "local"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	ListenAddr         string        `yaml:"listen_addr"`
	LogLevel           string        `yaml:"log_level"`
	LogJSON            bool          `yaml:"log_json"`
	SecureCookies      bool          `yaml:"secure_cookies"`
	CORSAllowedOrigins []string      `yaml:"cors_allowed_origins"`
	SessionTTL         time.Duration `yaml:"session_ttl"`
	Forum              Forum         `yaml:"forum"`
}

type Forum struct {
	// Storage selects exactly one persistence strategy for the whole
	// deployment: "postgres" (shared table + change feed) or "local"
	// (single-device JSON document). The two are never mixed.
	Storage     string `yaml:"storage"`
	DataDir     string `yaml:"data_dir"`
	TitleMaxLen int    `yaml:"title_max_len"`
	BodyMaxLen  int    `yaml:"body_max_len"`
	ReplyMaxLen int    `yaml:"reply_max_len"`
}

type Private struct {
	Pg        Pg        `yaml:"pg"`
	JwtKey    string    `yaml:"jwt_key"`
	Assertion Assertion `yaml:"assertion"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// Assertion configures verification of the identity provider's tokens.
type Assertion struct {
	Issuer   string `yaml:"issuer"`
	Audience string `yaml:"audience"`
	Key      string `yaml:"key"`
}

// URL builds the connection string used by both database/sql and migrate.
func (p Pg) URL() string {
	sslmode := p.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.Dbname, sslmode)
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	if c.Public.SessionTTL == 0 {
		return 24 * time.Hour
	}
	return c.Public.SessionTTL
}

func (c *Config) applyDefaults() {
	if c.Public.ListenAddr == "" {
		c.Public.ListenAddr = ":8080"
	}
	if c.Public.Forum.Storage == "" {
		c.Public.Forum.Storage = ForumStorageLocal
	}
	if c.Public.Forum.DataDir == "" {
		c.Public.Forum.DataDir = "data"
	}
	if c.Public.Forum.TitleMaxLen == 0 {
		c.Public.Forum.TitleMaxLen = 200
	}
	if c.Public.Forum.BodyMaxLen == 0 {
		c.Public.Forum.BodyMaxLen = 10000
	}
	if c.Public.Forum.ReplyMaxLen == 0 {
		c.Public.Forum.ReplyMaxLen = 5000
	}
}

// Validate rejects configurations that would otherwise fail at first use.
func (c *Config) Validate() error {
	switch c.Public.Forum.Storage {
	case ForumStoragePostgres, ForumStorageLocal:
	default:
		return fmt.Errorf("forum.storage must be %q or %q, got %q",
			ForumStoragePostgres, ForumStorageLocal, c.Public.Forum.Storage)
	}
	if c.Private.JwtKey == "" {
		return fmt.Errorf("jwt_key must be set")
	}
	if c.Private.Assertion.Key == "" {
		return fmt.Errorf("assertion.key must be set")
	}
	return nil
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}
	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file: " + configPath)
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{Public: public, Private: private}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		panic("invalid config: " + err.Error())
	}
	return cfg
}
