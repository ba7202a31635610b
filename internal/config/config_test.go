package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Playback.FPS != 30 || cfg.Render.Width != 1920 {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadExplicitMissingFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing explicit config")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "cueshift", "config.toml")
	content := `[playback]
fps = 24
start_time = 22

[render]
font_size = 36
primary_color = "#FFCC00"

[ffmpeg]
ffmpeg_path = "/opt/ffmpeg"
`
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Playback.FPS != 24 || cfg.Playback.StartTime != 22 {
		t.Errorf("unexpected playback config %+v", cfg.Playback)
	}
	if cfg.Render.FontSize != 36 || cfg.Render.Font != "Arial" {
		t.Errorf("unexpected render config %+v", cfg.Render)
	}
	if cfg.FFmpeg.FFmpegPath != "/opt/ffmpeg" {
		t.Errorf("unexpected ffmpeg path %q", cfg.FFmpeg.FFmpegPath)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown key", "[playback]\nspeed = 2\n", "unknown key"},
		{"zero fps", "[playback]\nfps = 0\n", "fps"},
		{"bad color", "[render]\nprimary_color = \"white\"\n", "primary_color"},
		{"syntax", "[playback\n", "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := DefaultConfig()
	cfg.Playback.DropEvery = 5

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Playback.DropEvery != 5 {
		t.Errorf("expected drop_every 5, got %d", loaded.Playback.DropEvery)
	}
}

func TestEncodeUsesTomlKeys(t *testing.T) {
	var buf bytes.Buffer
	if err := DefaultConfig().Encode(&buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.Contains(buf.String(), "font_size = 48") {
		t.Errorf("expected snake_case keys, got:\n%s", buf.String())
	}
}

func TestASSColor(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"#FFFFFF", "&H00FFFFFF", false},
		{"#ff8000", "&H000080FF", false},
		{"#80112233", "&H80332211", false},
		{"white", "", true},
		{"#GG0000", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ASSColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ASSColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ASSColor(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
