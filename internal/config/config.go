// Package config provides configuration management for pomo.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/xvierd/pomo-cli/internal/domain"
)

// EnvPrefix prefixes every environment variable pomo reads.
const EnvPrefix = "POMO"

// Config holds all configuration for the pomo application.
type Config struct {
	Timer         TimerConfig        `mapstructure:"timer"`
	Tasks         TasksConfig        `mapstructure:"tasks"`
	Display       DisplayConfig      `mapstructure:"display"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Log           LogConfig          `mapstructure:"log"`
	Theme         ThemeConfig        `mapstructure:"theme"`
}

// TimerConfig holds the length of each timer mode in minutes.
type TimerConfig struct {
	Pomodoro   int `mapstructure:"pomodoro"`
	ShortBreak int `mapstructure:"short_break"`
	LongBreak  int `mapstructure:"long_break"`
}

// TasksConfig holds task storage settings.
type TasksConfig struct {
	File string `mapstructure:"file"`
}

// DisplayConfig holds interface settings.
type DisplayConfig struct {
	FocusMode  string `mapstructure:"focus_mode"`
	ShowBranch bool   `mapstructure:"show_branch"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
}

// LogConfig holds logging settings. An empty File discards logs.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// ThemeConfig holds colour settings for the interface.
type ThemeConfig struct {
	ColorWork      string `mapstructure:"color_work"`
	ColorBreak     string `mapstructure:"color_break"`
	ColorPaused    string `mapstructure:"color_paused"`
	ColorTitle     string `mapstructure:"color_title"`
	ColorSelected  string `mapstructure:"color_selected"`
	ColorHelp      string `mapstructure:"color_help"`
	GaugeGradientA string `mapstructure:"gauge_gradient_start"`
	GaugeGradientB string `mapstructure:"gauge_gradient_end"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorWork:      "#7C6FE0",
		ColorBreak:     "#4ECDC4",
		ColorPaused:    "#6B7280",
		ColorTitle:     "#A0AEC0",
		ColorSelected:  "#90EE90",
		ColorHelp:      "#95A5A6",
		GaugeGradientA: "#7C6FE0",
		GaugeGradientB: "#A78BFA",
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Timer: TimerConfig{
			Pomodoro:   25,
			ShortBreak: 5,
			LongBreak:  15,
		},
		Tasks: TasksConfig{
			File: "tasks",
		},
		Display: DisplayConfig{
			FocusMode:  "false",
			ShowBranch: true,
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   false,
		},
		Log: LogConfig{
			Level: "info",
		},
		Theme: DefaultThemeConfig(),
	}
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults registers every default value on v.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("timer.pomodoro", d.Timer.Pomodoro)
	v.SetDefault("timer.short_break", d.Timer.ShortBreak)
	v.SetDefault("timer.long_break", d.Timer.LongBreak)
	v.SetDefault("tasks.file", d.Tasks.File)
	v.SetDefault("display.focus_mode", d.Display.FocusMode)
	v.SetDefault("display.show_branch", d.Display.ShowBranch)
	v.SetDefault("notifications.enabled", d.Notifications.Enabled)
	v.SetDefault("notifications.sound", d.Notifications.Sound)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)

	v.SetDefault("theme.color_work", d.Theme.ColorWork)
	v.SetDefault("theme.color_break", d.Theme.ColorBreak)
	v.SetDefault("theme.color_paused", d.Theme.ColorPaused)
	v.SetDefault("theme.color_title", d.Theme.ColorTitle)
	v.SetDefault("theme.color_selected", d.Theme.ColorSelected)
	v.SetDefault("theme.color_help", d.Theme.ColorHelp)
	v.SetDefault("theme.gauge_gradient_start", d.Theme.GaugeGradientA)
	v.SetDefault("theme.gauge_gradient_end", d.Theme.GaugeGradientB)
}

// Load reads the optional config file into v and decodes the result.
// An empty configPath falls back to GetConfigPath; a missing file there is
// not an error, but a missing explicit file is.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	return load(v, configPath, configPath != "")
}

// LoadOptional is Load for callers about to create the file: a missing
// file is never an error, even when configPath is explicit.
func LoadOptional(v *viper.Viper, configPath string) (*Config, error) {
	return load(v, configPath, false)
}

func load(v *viper.Viper, configPath string, required bool) (*Config, error) {
	if configPath == "" {
		if p, err := GetConfigPath(); err == nil {
			configPath = p
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
			if required || !missing {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MaxMinutes is the longest configurable timer, one day.
const MaxMinutes = 24 * 60

// Validate checks that the timer lengths are usable.
func (c *Config) Validate() error {
	for _, minutes := range []int{c.Timer.Pomodoro, c.Timer.ShortBreak, c.Timer.LongBreak} {
		if minutes > MaxMinutes {
			return fmt.Errorf("config: timer lengths must be at most %d minutes, got %d: %w", MaxMinutes, minutes, domain.ErrInvalidDuration)
		}
	}
	if err := c.Durations().Validate(); err != nil {
		return fmt.Errorf("config: timer lengths must not be negative: %w", err)
	}
	if c.Tasks.File == "" {
		return fmt.Errorf("config: task file path must not be empty")
	}
	return nil
}

// Durations converts the configured minutes to timer durations.
func (c *Config) Durations() domain.Durations {
	return domain.Durations{
		Pomodoro:   time.Duration(c.Timer.Pomodoro) * time.Minute,
		ShortBreak: time.Duration(c.Timer.ShortBreak) * time.Minute,
		LongBreak:  time.Duration(c.Timer.LongBreak) * time.Minute,
	}
}

// StudyMode returns the initial study mode selected by the focus setting.
func (c *Config) StudyMode() domain.StudyMode {
	return domain.ParseStudyMode(c.Display.FocusMode)
}

// GetConfigPath returns the default path of the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".pomo", "config.toml"), nil
}
