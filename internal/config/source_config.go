package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type SourceConfig struct {
	RapidAPIKey           string `mapstructure:"rapid_api_key"`
	CacheDir              string `mapstructure:"cache_dir"`
	DebugDir              string `mapstructure:"debug_dir"`
	ResultsDir            string `mapstructure:"results_dir"`
	OfflineDataset        string `mapstructure:"offline_dataset"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds"`
	NumPages              int    `mapstructure:"num_pages"`
}

func (config SourceConfig) validate() error {

	var missingFields []string

	if config.CacheDir == "" {
		missingFields = append(missingFields, "cache_dir")
	}

	if config.DebugDir == "" {
		missingFields = append(missingFields, "debug_dir")
	}

	if config.OfflineDataset == "" {
		missingFields = append(missingFields, "offline_dataset")
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing required variables: %s", strings.Join(missingFields, ", "))
	}

	if config.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("request_timeout_seconds must be positive")
	}

	if config.NumPages <= 0 {
		return fmt.Errorf("num_pages must be positive")
	}

	return nil
}

func (config SourceConfig) bindEnvironmentVariables() error {
	return viper.BindEnv("source.rapid_api_key", "RAPID_API_KEY")
}
