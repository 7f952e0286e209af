package config

import (
	"log/slog"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	Server     Server
	Bun        BunConfig
	JWT        JWT
	LoggerMode LoggerMode
	Realtime   Realtime
}

type Server struct {
	Port        string
	Environment string
}

type BunConfig struct {
	DSN string
}

type LoggerMode struct {
	Development bool
	Prod        bool
	Level       string
}

type JWT struct {
	Secret    string
	ExpiredIn int
}

type Realtime struct {
	// SendBuffer is the per-session outbound queue length; a full queue
	// drops the payload for that session rather than blocking fanout.
	SendBuffer   int
	WriteWaitSec int
	PongWaitSec  int
}

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()

	v.SetConfigName(filename)
	v.SetConfigType("yaml")
	v.AddConfigPath("config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, errors.New("config file not found")
		}
		return nil, errors.Wrap(err, "config.LoadConfig.ReadInConfig: ")
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	err := v.Unmarshal(&c)
	if err != nil {
		slog.Error("Unable to unmarshal config", "err", err)
		return nil, errors.Wrap(err, "config.ParseConfig.Unmarshal: ")
	}
	return &c, nil
}
