package config

// RunnerConfig controls the optional watch mode. With an empty WatchCron
// the pipeline runs once and the process exits.
type RunnerConfig struct {
	WatchCron        string `mapstructure:"watch_cron"`
	RunRetentionDays int    `mapstructure:"run_retention_days"`
	MetricsPort      int    `mapstructure:"metrics_port"`
}
