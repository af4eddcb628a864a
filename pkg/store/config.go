package store

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config carries the per-installation settings: cache location, relay
// endpoint, pull cadence, merge policy, and an optional catalog override.
type Config struct {
	Path         string
	Endpoint     string
	PullInterval time.Duration
	MergePolicy  string
	CatalogPath  string
}

// LoadConfig reads settings from a .senryoku config file, the
// environment (SENRYOKU_ prefix), and an optional .env file in the
// working directory. A missing config file is not an error.
func LoadConfig() (*Config, error) {
	// Best effort; the relay endpoint historically lives in a .env file.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("path", "~/.senryoku.db")
	v.SetDefault("pull-interval", "60s")
	v.SetDefault("merge-policy", "guarded")
	v.SetConfigName(".senryoku") // .yaml is implicit
	v.SetEnvPrefix("SENRYOKU")
	v.AutomaticEnv()

	if override := os.Getenv("SENRYOKU_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	v.AddConfigPath("$HOME")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, err
	}

	endpoint := v.GetString("endpoint")
	if endpoint == "" {
		endpoint = os.Getenv("GAS_URL")
	}

	return &Config{
		Path:         path,
		Endpoint:     endpoint,
		PullInterval: v.GetDuration("pull-interval"),
		MergePolicy:  v.GetString("merge-policy"),
		CatalogPath:  v.GetString("catalog"),
	}, nil
}
