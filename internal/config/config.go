package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/viper"
)

// EnvDevelopment is the environment the service runs in when none is set.
const EnvDevelopment = "development"

// Config holds all service configuration. Values come from
// <dir>/default.json, then <dir>/<env>.json, then environment variables.
type Config struct {
	Name      string    `mapstructure:"name"`      // Application name, logged at startup
	DB        DBConfig  `mapstructure:"db"`        // Database settings, informational only
	Port      int       `mapstructure:"port"`      // HTTP listen port
	Env       string    `mapstructure:"env"`       // Runtime environment (development, production, ...)
	PublicDir string    `mapstructure:"publicDir"` // Directory served for static files
	Log       LogConfig `mapstructure:"log"`
}

// DBConfig names the database server. No connection is ever made.
type DBConfig struct {
	Host string `mapstructure:"host"`
}

// LogConfig controls the root logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// ListenAddr returns the address the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return ":" + strconv.Itoa(c.Port)
}

// IsDevelopment reports whether development-only features are enabled.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// New returns a viper instance with defaults and environment bindings
// applied. Callers may bind flags on it before passing it to Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("name", "usuarios-api")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("port", 4000)
	v.SetDefault("env", EnvDevelopment)
	v.SetDefault("publicDir", "public")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	bindEnv(v, "port", "PORT")
	bindEnv(v, "env", "APP_ENV")
	bindEnv(v, "name", "APP_NAME")
	bindEnv(v, "db.host", "DB_HOST")
	bindEnv(v, "log.level", "LOG_LEVEL")
	bindEnv(v, "publicDir", "PUBLIC_DIR")
	return v
}

func bindEnv(v *viper.Viper, key, env string) {
	// BindEnv only fails when called without a key.
	_ = v.BindEnv(key, env)
}

// Load reads default.json and <env>.json from dir into v and unmarshals the
// result. Missing files are not an error; malformed ones are.
func Load(v *viper.Viper, dir string) (*Config, error) {
	v.SetConfigType("json")
	v.AddConfigPath(dir)

	v.SetConfigName("default")
	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("read default config: %w", err)
	}

	env := v.GetString("env")
	if env != "" {
		v.SetConfigName(env)
		if err := v.MergeInConfig(); err != nil && !isNotFound(err) {
			return nil, fmt.Errorf("read %s config: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration can be served.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return &Error{Field: "port", Message: fmt.Sprintf("must be between 1 and 65535, got %d", c.Port)}
	}
	if c.PublicDir == "" {
		return &Error{Field: "publicDir", Message: "must not be empty"}
	}
	return nil
}

// Error represents an invalid configuration value.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}

func isNotFound(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf)
}
