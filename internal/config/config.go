package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/xo-engine/internal/entity"
	"github.com/rocketscienceinc/xo-engine/internal/usecase"
)

var ErrNegativeBotDelay = errors.New("bot delay must not be negative")

type Config struct {
	LogLevel string `yaml:"log-level" env:"XO_LOG_LEVEL" env-default:"info"`
	Game     Game   `yaml:"game"`
}

type Game struct {
	Mode       string        `yaml:"mode" env:"XO_GAME_MODE" env-default:"player_vs_player"`
	Difficulty string        `yaml:"difficulty" env:"XO_GAME_DIFFICULTY" env-default:"medium"`
	BotDelay   time.Duration `yaml:"bot-delay" env:"XO_GAME_BOT_DELAY" env-default:"500ms"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads the yaml file at path; environment variables override it.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

// LoadFromEnv - reads the configuration from environment variables and defaults only.
func LoadFromEnv() (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("unable to read environment: %w", err)
	}

	return config, nil
}

// Settings - validates the game section into session settings.
func (that *Config) Settings() (usecase.Settings, error) {
	mode, err := entity.ParseMode(that.Game.Mode)
	if err != nil {
		return usecase.Settings{}, fmt.Errorf("invalid game config: %w", err)
	}

	difficulty, err := entity.ParseDifficulty(that.Game.Difficulty)
	if err != nil {
		return usecase.Settings{}, fmt.Errorf("invalid game config: %w", err)
	}

	if that.Game.BotDelay < 0 {
		return usecase.Settings{}, fmt.Errorf("%w: %s", ErrNegativeBotDelay, that.Game.BotDelay)
	}

	return usecase.Settings{
		Mode:       mode,
		Difficulty: difficulty,
		BotDelay:   that.Game.BotDelay,
	}, nil
}
