package config

import "github.com/spf13/viper"

// NotifierConfig enables the Telegram digest when both fields are set.
type NotifierConfig struct {
	TelegramToken  string `mapstructure:"telegram_token"`
	TelegramChatID int64  `mapstructure:"telegram_chat_id"`
}

func (config NotifierConfig) Enabled() bool {
	return config.TelegramToken != "" && config.TelegramChatID != 0
}

func (config NotifierConfig) bindEnvironmentVariables() error {
	if err := viper.BindEnv("notifier.telegram_token", "TELEGRAM_TOKEN"); err != nil {
		return err
	}
	return viper.BindEnv("notifier.telegram_chat_id", "TELEGRAM_CHAT_ID")
}
