package preferences

import (
	"roundbell/internal/core/model"
	"roundbell/internal/media"
)

// Settings defines editable user preferences.
type Settings struct {
	Timer model.TimerConfig

	AssetsDir     string
	PlayerCommand string
	KeepAwake     bool

	LogLevel string
}

// DefaultSettings returns default settings for Roundbell.
func DefaultSettings() Settings {
	return Settings{
		Timer:         model.DefaultTimerConfig(),
		PlayerCommand: media.DefaultPlayerConfig().Command,
		KeepAwake:     true,
		LogLevel:      "info",
	}
}

// PlayerConfig converts settings to the external player configuration.
func (settings Settings) PlayerConfig() media.PlayerConfig {
	config := media.DefaultPlayerConfig()
	if settings.PlayerCommand != "" {
		config.Command = settings.PlayerCommand
	}
	return config
}
