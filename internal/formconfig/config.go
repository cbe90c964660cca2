// Package formconfig loads the formctl CLI's configuration: where the
// script catalog lives, where to log, and at what level. The core
// engine never reads configuration itself (SPEC_FULL.md §2) — this
// exists only for the demo consumer, grounded on
// ArkLabsHQ-introspector's use of github.com/spf13/viper for service
// configuration, the only config library present anywhere in the
// example pack.
package formconfig

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything formctl needs to start up.
type Config struct {
	CatalogPath string
	ScriptDir   string
	LogFile     string
	LogLevel    string
}

// Load reads configuration from (in ascending priority) defaults, the
// config file at configPath if one is given, and finally
// BIROCRAT_-prefixed environment variables.
func Load(configPath string) (Config, error) {
	v := viper.New()
	v.SetDefault("catalog_path", "birocrat.db")
	v.SetDefault("script_dir", "./scripts")
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("birocrat")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %q: %w", configPath, err)
		}
	}

	return Config{
		CatalogPath: v.GetString("catalog_path"),
		ScriptDir:   v.GetString("script_dir"),
		LogFile:     v.GetString("log_file"),
		LogLevel:    v.GetString("log_level"),
	}, nil
}
