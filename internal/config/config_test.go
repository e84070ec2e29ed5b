package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rhyrak/go-pick/pkg/model"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Data.SessionsFile != "course_offerings.csv" || cfg.Server.Addr != ":3001" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	prefs, err := cfg.ScoringPreferences()
	if err != nil {
		t.Fatal(err)
	}
	if prefs != model.DefaultPreferences() {
		t.Fatalf("prefs = %+v", prefs)
	}
}

func TestLoadPreferences(t *testing.T) {
	path := writeConfig(t, `
[data]
sessions_file = "fall.csv"
delimiter = ";"
term = "75"

[preferences]
no_before = true
before_cutoff = "9:30 AM"
avoid_friday = true
minimize_days = true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Data.SessionsFile != "fall.csv" || cfg.DelimiterRune() != ';' || cfg.Data.Term != "75" {
		t.Fatalf("unexpected data section %+v", cfg.Data)
	}
	if cfg.Server.Addr != ":3001" {
		t.Fatalf("defaults lost for unset sections: %+v", cfg.Server)
	}

	prefs, err := cfg.ScoringPreferences()
	if err != nil {
		t.Fatal(err)
	}
	want := model.Preferences{NoBefore: true, BeforeCutoff: 9.5, AfterCutoff: 17, AvoidFriday: true, MinimizeDays: true}
	if prefs != want {
		t.Fatalf("prefs = %+v, want %+v", prefs, want)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "[preferences]\navoid_mondays = true\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown preference key")
	}
}

func TestBadCutoff(t *testing.T) {
	path := writeConfig(t, "[preferences]\nno_after = true\nafter_cutoff = \"late\"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cfg.ScoringPreferences(); !errors.Is(err, model.ErrInvalidPreferences) {
		t.Fatalf("err = %v, want ErrInvalidPreferences", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GOPICK_SESSIONS_FILE", "env.csv")
	t.Setenv("GOPICK_TERM", "76")
	t.Setenv("GOPICK_DATABASE", "/tmp/x.db")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Data.SessionsFile != "env.csv" || cfg.Data.Term != "76" {
		t.Fatalf("env overrides not applied: %+v", cfg.Data)
	}
	if p, _ := cfg.DatabasePath(); p != "/tmp/x.db" {
		t.Fatalf("DatabasePath = %q", p)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Preferences.AvoidBackToBack = true
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	if err := Save(&cfg, path); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	prefs, err := loaded.ScoringPreferences()
	if err != nil {
		t.Fatal(err)
	}
	if !prefs.AvoidBackToBack {
		t.Fatal("avoid_back_to_back lost on save")
	}
}

func TestIdleTimeout(t *testing.T) {
	tests := []struct {
		value   string
		want    time.Duration
		wantErr bool
	}{
		{"30m", 30 * time.Minute, false},
		{"", 0, false},
		{"0", 0, false},
		{"-1m", 0, true},
		{"soon", 0, true},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Server.IdleTimeout = tt.value
		got, err := cfg.IdleTimeout()
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("IdleTimeout(%q) = %v, %v", tt.value, got, err)
		}
	}
}
