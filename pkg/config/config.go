package config

import (
	"github.com/spf13/viper"
)

// Settings holds all configuration values
type Settings struct {
	// Backend server configuration
	Server struct {
		URL     string
		Timeout int
	}

	// Logging configuration
	Logging struct {
		LogFile string
		Persist bool
		Level   string
	}

	// Chat display configuration
	Chat struct {
		ToolGraceMS int
	}

	// Map viewport configuration
	Map struct {
		DefaultLevel     int
		SinglePlaceLevel int
	}

	// ConfigFile stores the path to the config file used
	ConfigFile string
}

// Global settings instance
var Global *Settings

// Init initializes the configuration system
func Init(cfgFile string) error {
	Global = &Settings{}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		Global.ConfigFile = cfgFile
	} else {
		viper.AddConfigPath("./.matzip")
		viper.SetConfigType("yaml")
		viper.SetConfigName("settings")
		Global.ConfigFile = ".matzip/settings.yaml"
	}

	setDefaults()

	// Enable environment variable support
	viper.AutomaticEnv()
	viper.BindEnv("server.url", "MATZIP_SERVER_URL")
	viper.BindEnv("server.timeout", "MATZIP_SERVER_TIMEOUT")
	viper.BindEnv("logging.level", "MATZIP_LOG_LEVEL")

	// Read config file if it exists; a missing file just means defaults
	viper.ReadInConfig()

	return Load()
}

// setDefaults sets all default configuration values
func setDefaults() {
	viper.SetDefault("server.url", "http://localhost:8000")
	viper.SetDefault("server.timeout", 120)

	viper.SetDefault("logging.log_file", "system.log")
	viper.SetDefault("logging.persist", false)
	viper.SetDefault("logging.level", "info")

	viper.SetDefault("chat.tool_grace_ms", 1500)

	// Zoom levels follow the Kakao convention: larger means farther out.
	viper.SetDefault("map.default_level", 4)
	viper.SetDefault("map.single_place_level", 3)
}

// Load loads configuration from viper into the Settings struct
func Load() error {
	Global.Server.URL = viper.GetString("server.url")
	Global.Server.Timeout = viper.GetInt("server.timeout")

	Global.Logging.LogFile = viper.GetString("logging.log_file")
	Global.Logging.Persist = viper.GetBool("logging.persist")
	Global.Logging.Level = viper.GetString("logging.level")

	Global.Chat.ToolGraceMS = viper.GetInt("chat.tool_grace_ms")

	Global.Map.DefaultLevel = viper.GetInt("map.default_level")
	Global.Map.SinglePlaceLevel = viper.GetInt("map.single_place_level")

	return nil
}

// Get returns the global settings, initializing with defaults if needed
func Get() *Settings {
	if Global == nil {
		Init("")
	}
	return Global
}
