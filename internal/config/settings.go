package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Settings holds user preferences that are not secrets.
type Settings struct {
	IssueKeyPrefix string               `yaml:"issue_key_prefix" mapstructure:"issue_key_prefix"`
	Tasks          []string             `yaml:"tasks" mapstructure:"tasks"`
	Reminder       ReminderSettings     `yaml:"reminder" mapstructure:"reminder"`
	Notifications  NotificationSettings `yaml:"notifications" mapstructure:"notifications"`
}

// ReminderSettings drives the idle reminder sent while no timer runs.
type ReminderSettings struct {
	Enabled  bool          `yaml:"enabled" mapstructure:"enabled"`
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

type NotificationSettings struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// Running timers are announced every PeriodicInterval until
	// LongRunningAfter, then every LongRunningInterval.
	PeriodicInterval    time.Duration `yaml:"periodic_interval" mapstructure:"periodic_interval"`
	LongRunningAfter    time.Duration `yaml:"long_running_after" mapstructure:"long_running_after"`
	LongRunningInterval time.Duration `yaml:"long_running_interval" mapstructure:"long_running_interval"`
	CompletionThreshold time.Duration `yaml:"completion_threshold" mapstructure:"completion_threshold"`
	TimeoutSeconds      int           `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
}

func DefaultSettings() *Settings {
	return &Settings{
		Tasks: []string{"Development", "Code review", "Meetings", "Support"},
		Reminder: ReminderSettings{
			Enabled:  true,
			Interval: time.Minute,
		},
		Notifications: NotificationSettings{
			Enabled:             true,
			PeriodicInterval:    15 * time.Minute,
			LongRunningAfter:    time.Hour,
			LongRunningInterval: 30 * time.Minute,
			CompletionThreshold: time.Minute,
			TimeoutSeconds:      10,
		},
	}
}

// LoadSettings returns the defaults overlaid with the YAML file at path.
// A missing file is not an error.
func LoadSettings(path string) (*Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		return settings, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return settings, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return settings, fmt.Errorf("read settings %s: %w", path, err)
	}
	// A list in the file replaces the default catalog instead of being
	// merged into it element by element.
	if v.IsSet("tasks") {
		settings.Tasks = nil
	}
	if err := v.Unmarshal(settings); err != nil {
		return settings, fmt.Errorf("decode settings %s: %w", path, err)
	}

	return settings, nil
}

func SaveSettings(path string, settings *Settings) error {
	content, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	return os.WriteFile(path, content, 0o644)
}
