package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger"`
	Search   SearchConfig   `mapstructure:"search"`
	Source   SourceConfig   `mapstructure:"source"`
	Runner   RunnerConfig   `mapstructure:"runner"`
	DB       DBConfig       `mapstructure:"db"`
	Notifier NotifierConfig `mapstructure:"notifier"`
}

var configFile = "./configs/config.yaml"

func Get() *Config {

	if value, _ := os.LookupEnv("MODE"); value == "test" {
		configFile = "../../configs/config.yaml"
	}

	config, err := loadConfig(configFile)
	if err != nil {
		log.Fatal(err)
	}

	return config
}

func loadConfig(file string) (*Config, error) {

	// Secrets may live in a local .env, as an alternative to real env vars.
	_ = godotenv.Load()

	viper.SetConfigFile(file)
	viper.AutomaticEnv()

	setDefaults()

	err := bindEnvironmentVariables()
	if err != nil {
		return nil, err
	}

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file, %s", err)
	}

	config := Config{}
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	err = config.validate()
	if err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("logger.log_level", "INFO")
	viper.SetDefault("logger.output_file", "./logs/errors.log")
	viper.SetDefault("logger.app_name", "job-hunter")
	viper.SetDefault("search.role", "Android Developer")
	viper.SetDefault("search.date_posted", "all")
	viper.SetDefault("search.language_filter", "en")
	viper.SetDefault("search.output", []string{"json"})
	viper.SetDefault("source.cache_dir", "./debug/cache")
	viper.SetDefault("source.debug_dir", "./debug/api-response")
	viper.SetDefault("source.results_dir", "./results")
	viper.SetDefault("source.offline_dataset", "./docs/RapidAPIResponse.txt")
	viper.SetDefault("source.request_timeout_seconds", 30)
	viper.SetDefault("source.num_pages", 1)
	viper.SetDefault("runner.run_retention_days", 30)
	viper.SetDefault("db.connection_string", "./data/job-hunter.db")
}

func bindEnvironmentVariables() error {
	var errs []error

	source, db, logger, notifier := SourceConfig{}, DBConfig{}, LoggerConfig{}, NotifierConfig{}

	if err := source.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("SourceConfig: %w", err))
	}

	if err := db.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("DBConfig: %w", err))
	}

	if err := logger.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if err := notifier.bindEnvironmentVariables(); err != nil {
		errs = append(errs, fmt.Errorf("NotifierConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config Config) validate() error {
	var errs []error

	if err := config.Search.validate(); err != nil {
		errs = append(errs, fmt.Errorf("SearchConfig: %w", err))
	}

	if err := config.Source.validate(); err != nil {
		errs = append(errs, fmt.Errorf("SourceConfig: %w", err))
	}

	if err := config.DB.validate(); err != nil {
		errs = append(errs, fmt.Errorf("DBConfig: %w", err))
	}

	if err := config.Logger.validate(); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}
