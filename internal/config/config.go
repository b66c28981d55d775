package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel      string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	BoardSize     int    `yaml:"board-size" env:"BOARD_SIZE" env-default:"3" validate:"min=1,max=3"`
	StatsMode     string `yaml:"stats-mode" env:"STATS_MODE" env-default:"zero" validate:"oneof=zero random"`
	Seed          uint64 `yaml:"seed" env:"SEED" env-default:"0"`
	TrainingGames int    `yaml:"training-games" env:"TRAINING_GAMES" env-default:"1000" validate:"min=0"`
	HTTP          HTTP   `yaml:"http"`
	Redis         Redis  `yaml:"redis"`
}

type HTTP struct {
	Enabled bool   `yaml:"enabled" env:"HTTP_ENABLED" env-default:"false"`
	Port    string `yaml:"port" env:"HTTP_PORT" env-default:"9090" validate:"required_if=Enabled true"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file. A missing file
// falls back to environment variables and defaults.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read env: %w", err)
		}
	} else if err = cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
