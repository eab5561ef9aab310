package config

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Driver  string `mapstructure:"driver"` // sqlite / postgres
	Path    string `mapstructure:"path"`   // sqlite file path
	DSN     string `mapstructure:"dsn"`    // postgres connection string
	LogMode bool   `mapstructure:"log_mode"`
}

type SessionConfig struct {
	Secret      string `mapstructure:"secret"`
	Store       string `mapstructure:"store"` // database / memory / redis
	ExpireHours int    `mapstructure:"expire_hours"`
	RedisAddr   string `mapstructure:"redis_addr"`
	CookieName  string `mapstructure:"cookie_name"`
}

type SecurityConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type AdminConfig struct {
	Email           string   `mapstructure:"email"`
	Password        string   `mapstructure:"password"`
	BootstrapEmails []string `mapstructure:"bootstrap_emails"` // signup with these emails gets ADMIN
}

type UploadConfig struct {
	Dir string `mapstructure:"dir"`
}

type NewsConfig struct {
	FeedLimit int `mapstructure:"feed_limit"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Session  SessionConfig  `mapstructure:"session"`
	Security SecurityConfig `mapstructure:"security"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Upload   UploadConfig   `mapstructure:"upload"`
	News     NewsConfig     `mapstructure:"news"`
}

var (
	appConfig *Config
	once      sync.Once
)

// Load loads configuration from given file path (e.g. "config.yaml").
// If path is empty, it defaults to "config.yaml" in current working directory.
func Load(path string) (*Config, error) {
	var err error
	once.Do(func() {
		v := viper.New()

		if path == "" {
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			v.AddConfigPath(".")
		} else {
			v.SetConfigFile(path)
		}

		// environment overrides, e.g. SP_SESSION_SECRET, SP_DATABASE_DSN
		v.SetEnvPrefix("SP") // student portal
		v.AutomaticEnv()

		if err = v.ReadInConfig(); err != nil {
			err = fmt.Errorf("read config: %w", err)
			return
		}

		var c Config
		if err = v.Unmarshal(&c); err != nil {
			err = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		ApplyDefaults(&c)
		appConfig = &c
	})

	if err != nil {
		return nil, err
	}
	return appConfig, nil
}

// ApplyDefaults fills in the fields the config file may omit.
func ApplyDefaults(c *Config) {
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Session.Store == "" {
		c.Session.Store = "database"
	}
	if c.Session.ExpireHours <= 0 {
		c.Session.ExpireHours = 24
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "sp_session"
	}
	if c.Security.BcryptCost <= 0 {
		c.Security.BcryptCost = 12
	}
	if c.Admin.Email == "" {
		c.Admin.Email = "admin@studentportal.local"
	}
	if c.Admin.Password == "" {
		c.Admin.Password = "ChangeMe_Admin1"
	}
	if c.News.FeedLimit <= 0 {
		c.News.FeedLimit = 50
	}
}

// Get returns the loaded global configuration.
// Call Load() once at application startup.
func Get() *Config {
	return appConfig
}
