package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "cityscape.json"

// EnvPrefix prefixes environment overrides: window.width is read from
// CITYSCAPE_WINDOW_WIDTH.
const EnvPrefix = "CITYSCAPE"

// WindowConfig holds the viewer window settings.
type WindowConfig struct {
	Width  int    `json:"width" mapstructure:"width"`
	Height int    `json:"height" mapstructure:"height"`
	Title  string `json:"title" mapstructure:"title"`
}

// Load sets defaults, then layers a .env file, the environment and an
// optional JSON config file from configDir on top.
// A missing config file is fine; an unreadable or malformed one is an error.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFormat", "console")

	viper.SetDefault("city.file", "city.xml")
	viper.SetDefault("city.name", "default")

	viper.SetDefault("window.width", 1280)
	viper.SetDefault("window.height", 720)
	viper.SetDefault("window.title", "Cityscape")

	viper.SetDefault("sim.ticksPerSecond", 60)
	viper.SetDefault("sim.seconds", 10)

	viper.SetDefault("storage.path", "cityscape.db")

	viper.SetDefault("snapshot.file", "city.png")
	viper.SetDefault("snapshot.scale", 1.0)

	if err := godotenv.Load(filepath.Join(configDir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error reading .env file: %w", err)
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// Window returns the viewer window settings.
func Window() WindowConfig {
	return WindowConfig{
		Width:  viper.GetInt("window.width"),
		Height: viper.GetInt("window.height"),
		Title:  viper.GetString("window.title"),
	}
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetFloat returns a float config value.
func GetFloat(key string) float64 {
	return viper.GetFloat64(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
