// Package config loads the application configuration from an optional YAML
// file and RAIL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const envPrefix = "RAIL"

// ReservationGatewayCalls is the most gateway round trips one reservation
// with payment makes: login, search, re-query, reserve, list, pay, logout.
const ReservationGatewayCalls = 7

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Provider ProviderConfig `mapstructure:"provider"`
	Booking  BookingConfig  `mapstructure:"booking"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnectRetries  int           `mapstructure:"connect_retries"`
	RetryInterval   time.Duration `mapstructure:"retry_interval"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

type ProviderConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
	Username  string        `mapstructure:"username"`
	Password  string        `mapstructure:"password"`
}

type BookingConfig struct {
	PaymentWindow   time.Duration `mapstructure:"payment_window"`
	LockTTL         time.Duration `mapstructure:"lock_ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 120*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "rail_ticket")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 25)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	v.SetDefault("database.connect_retries", 10)
	v.SetDefault("database.retry_interval", 2*time.Second)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("provider.base_url", "http://localhost:9090")
	v.SetDefault("provider.timeout", 15*time.Second)
	v.SetDefault("provider.user_agent", "railbook/1.0")
	v.SetDefault("provider.username", "")
	v.SetDefault("provider.password", "")

	v.SetDefault("booking.payment_window", 10*time.Minute)
	v.SetDefault("booking.lock_ttl", 2*time.Minute)
	v.SetDefault("booking.cleanup_interval", 30*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads path when given, otherwise config.yaml from ./config if present.
// An explicit path that cannot be read is an error; a missing default file is
// not.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("./config")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if !c.WriteTimeoutCoversReservation() {
		logrus.WithFields(logrus.Fields{
			"write_timeout":    c.Server.WriteTimeout,
			"provider_timeout": c.Provider.Timeout,
		}).Warn("server.write_timeout is shorter than a worst-case reservation; slow responses may be cut off after the provider reserved")
	}

	return &c, nil
}

// WriteTimeoutCoversReservation reports whether an HTTP response can outlive
// every gateway call of one reservation timing out in turn. A zero write
// timeout means no limit.
func (c *Config) WriteTimeoutCoversReservation() bool {
	if c.Server.WriteTimeout <= 0 {
		return true
	}
	return c.Server.WriteTimeout > ReservationGatewayCalls*c.Provider.Timeout
}
