package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Session  Session
	Log      Log
	Admin    Admin
}

type Server struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	RateLimit    float64
	RateBurst    int
}

type Database struct {
	DSN string
}

type Session struct {
	Secret string
	MaxAge int
}

type Log struct {
	Level string
}

// Admin holds the seed credentials for the moderation account created on
// first startup.
type Admin struct {
	Email    string
	Password string
}

func Load(filename string) (*viper.Viper, error) {
	v := viper.New()

	v.SetConfigName(filename)
	v.SetConfigType("yaml")
	v.AddConfigPath("config")
	v.AddConfigPath(".")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readtimeout", 10*time.Second)
	v.SetDefault("server.writetimeout", 10*time.Second)
	v.SetDefault("server.ratelimit", 25.0)
	v.SetDefault("server.rateburst", 50)
	v.SetDefault("database.dsn", "mingle.db")
	v.SetDefault("session.maxage", 86400*7)
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("MINGLE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}
	return v, nil
}

func Parse(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	if c.Session.Secret == "" {
		c.Session.Secret = v.GetString("SESSION_SECRET")
	}
	if c.Session.Secret == "" {
		return nil, errors.New("session secret is required")
	}
	return &c, nil
}
