package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Esports  EsportsConfig  `yaml:"esports"`
	NLU      NLUConfig      `yaml:"nlu"`
	News     NewsConfig     `yaml:"news"`
	Stats    StatsConfig    `yaml:"stats"`
	Logging  LoggingConfig  `yaml:"logging"`
	Health   HealthConfig   `yaml:"health"`
}

type TelegramConfig struct {
	Token         string `yaml:"token" validate:"required"`
	UpdateTimeout int    `yaml:"update_timeout"`
}

type EsportsConfig struct {
	BaseURL  string        `yaml:"base_url" validate:"required,url"`
	Token    string        `yaml:"token" validate:"required"`
	TeamID   int64         `yaml:"team_id" validate:"required,gt=0"`
	PageSize int           `yaml:"page_size"`
	Timeout  time.Duration `yaml:"timeout"`
	Timezone string        `yaml:"timezone"` // display timezone, default America/Sao_Paulo
}

type NLUConfig struct {
	BaseURL string        `yaml:"base_url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

type NewsConfig struct {
	Feeds    []string      `yaml:"feeds"`
	Keywords []string      `yaml:"keywords"`
	MaxItems int           `yaml:"max_items"`
	Timeout  time.Duration `yaml:"timeout"`
	Workers  int           `yaml:"workers"` // feed parse worker pool size
}

type StatsConfig struct {
	MinYear int `yaml:"min_year"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

type HealthConfig struct {
	Enabled           bool          `yaml:"enabled"`
	Port              int           `yaml:"port"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
}

func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyEnv()
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// applyEnv lets secrets come from the environment instead of the YAML file.
func (c *Config) applyEnv() {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.Token = v
	}
	if v := os.Getenv("PANDASCORE_TOKEN"); v != "" {
		c.Esports.Token = v
	}
	if v := os.Getenv("NLU_TOKEN"); v != "" {
		c.NLU.Token = v
	}
}

func (c *Config) applyDefaults() {
	if c.Telegram.UpdateTimeout == 0 {
		c.Telegram.UpdateTimeout = 60
	}
	if c.Esports.PageSize == 0 {
		c.Esports.PageSize = 50
	}
	if c.Esports.Timeout == 0 {
		c.Esports.Timeout = 10 * time.Second
	}
	if c.Esports.Timezone == "" {
		c.Esports.Timezone = "America/Sao_Paulo"
	}
	if c.NLU.Timeout == 0 {
		c.NLU.Timeout = 5 * time.Second
	}
	if c.News.MaxItems == 0 {
		c.News.MaxItems = 5
	}
	if c.News.Timeout == 0 {
		c.News.Timeout = 10 * time.Second
	}
	if c.News.Workers == 0 {
		c.News.Workers = 4
	}
	if c.Stats.MinYear == 0 {
		c.Stats.MinYear = 2017
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Health.Port == 0 {
		c.Health.Port = 8081
	}
	if c.Health.ReadHeaderTimeout == 0 {
		c.Health.ReadHeaderTimeout = 5 * time.Second
	}
}

// Validate checks the required fields. A missing credential or team id is a
// startup failure, not something to discover on the first request.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := time.LoadLocation(c.Esports.Timezone); err != nil {
		return fmt.Errorf("invalid config: timezone %q: %w", c.Esports.Timezone, err)
	}
	return nil
}
