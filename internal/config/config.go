package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/wppstatus/internal/activity"
)

// DefaultPresenceTimeout is how long a participant stays active without a
// fresh presence update.
const DefaultPresenceTimeout = 25 * time.Second

// Config represents the global ~/.wppstatus/config.toml.
type Config struct {
	DefaultSession  string        `toml:"default_session"`
	Locale          string        `toml:"locale"`
	PresenceTimeout time.Duration `toml:"presence_timeout"`
	MetricsAddr     string        `toml:"metrics_addr"`
	Theme           Theme         `toml:"theme"`
}

// Theme overrides the activity theme. Empty fields keep the defaults.
type Theme struct {
	TextColor         string        `toml:"text_color,omitempty"`
	BackgroundColor   string        `toml:"background_color,omitempty"`
	TextFrames        []string      `toml:"text_frames,omitempty"`
	RecordingFrames   []string      `toml:"recording_frames,omitempty"`
	UploadingFrames   []string      `toml:"uploading_frames,omitempty"`
	TextDuration      time.Duration `toml:"text_duration,omitempty"`
	RecordingDuration time.Duration `toml:"recording_duration,omitempty"`
	UploadingDuration time.Duration `toml:"uploading_duration,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Locale:          "en",
		PresenceTimeout: DefaultPresenceTimeout,
	}
}

// Load reads config from the given path. Returns zero config and error if file missing.
// Unset fields are filled from Default.
func Load(path string) (*Config, error) {
	cfg := Default()
	_, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.PresenceTimeout <= 0 {
		cfg.PresenceTimeout = DefaultPresenceTimeout
	}
	return cfg, nil
}

// LoadOrDefault reads config from path, falling back to Default when the
// file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}

// ActivityTheme applies the configured overrides to the default activity theme.
// Unknown color names are ignored.
func (c *Config) ActivityTheme() activity.Theme {
	th := activity.DefaultTheme()
	t := c.Theme

	if col := tcell.GetColor(t.TextColor); t.TextColor != "" && col != tcell.ColorDefault {
		th.Text = col
	}
	if col := tcell.GetColor(t.BackgroundColor); t.BackgroundColor != "" && col != tcell.ColorDefault {
		th.Background = col
	}
	if len(t.TextFrames) > 0 {
		th.TextFrames = t.TextFrames
	}
	if len(t.RecordingFrames) > 0 {
		th.RecordingFrames = t.RecordingFrames
	}
	if len(t.UploadingFrames) > 0 {
		th.UploadingFrames = t.UploadingFrames
	}
	if t.TextDuration > 0 {
		th.TextDuration = t.TextDuration
	}
	if t.RecordingDuration > 0 {
		th.RecordingDuration = t.RecordingDuration
	}
	if t.UploadingDuration > 0 {
		th.UploadingDuration = t.UploadingDuration
	}
	return th
}
