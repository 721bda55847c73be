package store

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config carries the store settings the rest of the app needs: where
// entries live and which day starts the week.
type Config interface {
	BasePath() string
	// WeekStart is the first day of the week, 0=Sunday through 6=Saturday.
	WeekStart() int
}

// LoadConfig reads .anno.yaml from ANNO_CONFIG_PATH or the working
// directory, with ANNO_* environment overrides.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.anno.db")
	viper.SetDefault("weekstart", 0)
	viper.SetConfigName(".anno") // .yaml is implicit
	viper.SetEnvPrefix("ANNO")
	viper.AutomaticEnv()

	if override := os.Getenv("ANNO_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	ws := viper.GetInt("weekstart")
	if ws < 0 || ws > 6 {
		return nil, fmt.Errorf("store: weekstart %d out of range 0..6", ws)
	}

	return &fileConfig{Path: path, Week: ws}, nil
}

type fileConfig struct {
	Path string `json:"path"`
	Week int    `json:"weekstart"`
}

func (f *fileConfig) BasePath() string { return f.Path }

func (f *fileConfig) WeekStart() int { return f.Week }

// StaticConfig builds a Config from literal values. Intended for tests.
func StaticConfig(path string, weekStart int) Config {
	return &fileConfig{Path: path, Week: weekStart}
}
