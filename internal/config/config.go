package config

import (
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
	"os"
	"slotpoker-server/internal/util"
	"slotpoker-server/pkg/game"
)

// store backends
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config provides configuration for the slot poker server
type Config struct {
	loaded            bool
	PGDSN             string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath    string `yaml:"migrationsPath" envconfig:"migrations_path"`
	Store             string `yaml:"store" envconfig:"store"`
	PlayerCreateDelay int    `yaml:"playerCreateDelay" envconfig:"player_create_delay"`
	JWT               struct {
		Secret string `yaml:"secret" envconfig:"secret"`
		TTL    int    `yaml:"ttl" envconfig:"ttl"`
	} `yaml:"jwt"`
	Log struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	Game game.Config `yaml:"game" ignored:"true"`
}

var config Config

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	cfg := Config{
		PGDSN:             "postgres://postgres@localhost:5432/postgres?sslmode=disable",
		MigrationsPath:    "./sql",
		Store:             StoreMemory,
		PlayerCreateDelay: 5,
		Game:              game.DefaultConfig(),
	}

	cfg.JWT.Secret = "change-me"
	cfg.JWT.TTL = 86400
	cfg.Log.Level = "info"
	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing config file is not an error, the defaults and environment are used instead
func Load() error {
	config = DefaultConfig()

	configFile := util.Getenv("SLOTPOKER_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	} else {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	}

	if err := envconfig.Process("slotpoker", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
