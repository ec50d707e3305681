package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/wppstatus/internal/activity"
)

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")

	cfg := &Config{DefaultSession: "work", Locale: "pt", MetricsAddr: "127.0.0.1:9464"}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.DefaultSession != "work" {
		t.Errorf("DefaultSession = %q, want %q", loaded.DefaultSession, "work")
	}
	if loaded.Locale != "pt" {
		t.Errorf("Locale = %q, want %q", loaded.Locale, "pt")
	}
	if loaded.MetricsAddr != "127.0.0.1:9464" {
		t.Errorf("MetricsAddr = %q", loaded.MetricsAddr)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load("/nonexistent/config.toml")
	if err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoadOrDefaultMissing(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.PresenceTimeout != DefaultPresenceTimeout {
		t.Errorf("PresenceTimeout = %v, want default", cfg.PresenceTimeout)
	}
	if cfg.Locale != "en" {
		t.Errorf("Locale = %q, want en", cfg.Locale)
	}
}

func TestLoadDurationsAndTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
locale = "es"
presence_timeout = "10s"

[theme]
text_color = "yellow"
background_color = "navy"
recording_frames = ["o", "O"]
uploading_duration = "2s"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.PresenceTimeout != 10*time.Second {
		t.Errorf("PresenceTimeout = %v, want 10s", cfg.PresenceTimeout)
	}

	th := cfg.ActivityTheme()
	if th.Text != tcell.ColorYellow {
		t.Errorf("Text = %v, want yellow", th.Text)
	}
	if th.Background != tcell.ColorNavy {
		t.Errorf("Background = %v, want navy", th.Background)
	}
	if len(th.RecordingFrames) != 2 || th.RecordingFrames[1] != "O" {
		t.Errorf("RecordingFrames = %v", th.RecordingFrames)
	}
	if th.UploadingDuration != 2*time.Second {
		t.Errorf("UploadingDuration = %v, want 2s", th.UploadingDuration)
	}

	def := activity.DefaultTheme()
	if th.TextDuration != def.TextDuration {
		t.Errorf("TextDuration = %v, want default %v", th.TextDuration, def.TextDuration)
	}
}

func TestActivityThemeIgnoresUnknownColor(t *testing.T) {
	cfg := Default()
	cfg.Theme.TextColor = "not-a-color"
	if got := cfg.ActivityTheme().Text; got != activity.DefaultTheme().Text {
		t.Errorf("Text = %v, want default", got)
	}
}

func TestSavePermissions(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")

	if err := Save(path, &Config{DefaultSession: "main"}); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	perm := info.Mode().Perm()
	if perm != 0600 {
		t.Errorf("file permission = %o, want 0600", perm)
	}
}
