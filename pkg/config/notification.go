package config

import "time"

type NotificationsConfig struct {
	// SkipValid suppresses the report of runs without violations.
	SkipValid bool          `yaml:"skip_valid" koanf:"skip_valid"`
	MaxFields int           `yaml:"max_fields" koanf:"max_fields"`
	Timeout   time.Duration `yaml:"timeout" koanf:"timeout"`
	Discord   DiscordConfig `yaml:"discord" koanf:"discord"`
}

type DiscordConfig struct {
	WebhookURL string `yaml:"webhook_url" koanf:"webhook_url"`
	Username   string `yaml:"username" koanf:"username"`
	AvatarURL  string `yaml:"avatar_url" koanf:"avatar_url"`
}
