package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/Ashenafi-pixel/montecarlo-dice/errs"
)

// Store backends for the most recent play.
const (
	StoreFile     = "file"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

type Config struct {
	Port        int
	DataDir     string
	DiceFile    string // YAML dice set (see LoadDiceSet)
	Rolls       int    // default roll count for a play
	Seed        uint64 // 0 means CSPRNG, anything else a reproducible seeded source
	Store       string // file, sqlite or postgres
	SQLitePath  string
	DatabaseURL string
	LogConfig   string // YAML logging config path
}

// NewViper returns a viper instance with defaults and environment bindings.
// Environment variables use the MC_ prefix (MC_ROLLS, MC_STORE, ...); PORT
// and DATABASE_URL are read unprefixed, the way hosting platforms set them.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("MC")
	v.AutomaticEnv()
	v.SetDefault("port", 8081)
	v.SetDefault("data_dir", "data")
	v.SetDefault("dice_file", "dice.yaml")
	v.SetDefault("rolls", 1000)
	v.SetDefault("seed", 0)
	v.SetDefault("store", StoreFile)
	v.SetDefault("sqlite_path", "")
	v.SetDefault("log_config", "")
	// Prefer PORT (Render, Fly.io, Railway, etc.) then MC_PORT
	_ = v.BindEnv("port", "PORT", "MC_PORT")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	return v
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	return FromViper(NewViper())
}

// FromViper builds a Config from v, which may carry bound CLI flags. An
// unknown store is an error. The roll count is passed through as given and
// checked when the game is played.
func FromViper(v *viper.Viper) (*Config, error) {
	port := v.GetInt("port")
	if port <= 0 {
		port = 8081
	}
	store := v.GetString("store")
	switch store {
	case StoreFile, StoreSQLite, StorePostgres:
	default:
		return nil, fmt.Errorf("store %q (want %s, %s or %s): %w", store, StoreFile, StoreSQLite, StorePostgres, errs.ErrInvalidInput)
	}
	dataDir := v.GetString("data_dir")
	if dataDir == "" {
		dataDir = "data"
	}
	return &Config{
		Port:        port,
		DataDir:     dataDir,
		DiceFile:    v.GetString("dice_file"),
		Rolls:       v.GetInt("rolls"),
		Seed:        v.GetUint64("seed"),
		Store:       store,
		SQLitePath:  v.GetString("sqlite_path"),
		DatabaseURL: v.GetString("database_url"),
		LogConfig:   v.GetString("log_config"),
	}, nil
}
