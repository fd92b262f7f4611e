package configs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gitlab.com/BIC_Dev/pokedex-interactions/utils/logging"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// DefaultPokeAPIURL is used when POKE_API.url is not set
const DefaultPokeAPIURL = "https://pokeapi.co/api/v2"

// DefaultPlaceholderImage is shown for a pokemon without any sprite
const DefaultPlaceholderImage = "https://static.wikia.nocookie.net/pokemon-fano/images/6/6f/Poke_Ball.png"

// Config struct that contians the structure of the config
type Config struct {
	Bot struct {
		LogLevel string `yaml:"log_level"`
	} `yaml:"BOT"`
	Server struct {
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"SERVER"`
	PokeAPI struct {
		URL              string        `yaml:"url"`
		Timeout          time.Duration `yaml:"timeout"`
		PlaceholderImage string        `yaml:"placeholder_image"`
	} `yaml:"POKE_API"`
	Commands struct {
		PruneStale bool `yaml:"prune_stale"`
		Workers    int  `yaml:"workers"`
	} `yaml:"COMMANDS"`
	Redis struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Pool int    `yaml:"pool"`
	} `yaml:"REDIS"`
	CacheSettings struct {
		InteractionReplay CacheSetting `yaml:"interaction_replay"`
	} `yaml:"CACHE_SETTINGS"`
}

// CacheSetting struct
type CacheSetting struct {
	Base    string `yaml:"base"`
	TTL     string `yaml:"ttl"`
	Enabled bool   `yaml:"enabled"`
}

// Error struct
type Error struct {
	Message string `json:"message"`
	Err     error  `json:"error"`
}

// Error func
func (e *Error) Error() string {
	return e.Err.Error()
}

// Unwrap func
func (e *Error) Unwrap() error {
	return e.Err
}

// GetConfig loads ./<dir>/conf-<env>.yml and exits the process on failure
func GetConfig(ctx context.Context, dir string, env string) *Config {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	config, err := LoadConfig(filepath.Join(dir, "conf-"+env+".yml"))
	if err != nil {
		ctx = logging.AddValues(ctx, zap.NamedError("error", err.Err), zap.String("error_message", err.Message))
		logger := logging.Logger(ctx)
		logger.Fatal("error_log")
	}

	return config
}

// LoadConfig reads and decodes a config file, filling in defaults
func LoadConfig(configFile string) (*Config, *Error) {
	f, err := os.Open(configFile)
	if err != nil {
		return nil, &Error{
			Message: fmt.Sprintf("Unable to open config file: %s", configFile),
			Err:     err,
		}
	}

	defer f.Close()

	var config Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil {
		return nil, &Error{
			Message: fmt.Sprintf("Unable to decode config file: %s", configFile),
			Err:     err,
		}
	}

	config.setDefaults()

	return &config, nil
}

func (c *Config) setDefaults() {
	if c.Bot.LogLevel == "" {
		c.Bot.LogLevel = "info"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.PokeAPI.URL == "" {
		c.PokeAPI.URL = DefaultPokeAPIURL
	}
	if c.PokeAPI.Timeout == 0 {
		c.PokeAPI.Timeout = 10 * time.Second
	}
	if c.PokeAPI.PlaceholderImage == "" {
		c.PokeAPI.PlaceholderImage = DefaultPlaceholderImage
	}
	if c.Commands.Workers <= 0 {
		c.Commands.Workers = 1
	}
	if c.Redis.Pool <= 0 {
		c.Redis.Pool = 1
	}
	if c.CacheSettings.InteractionReplay.Base == "" {
		c.CacheSettings.InteractionReplay.Base = "interaction"
	}
}
