package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dhvcc/github-contribution-treemap-generator/pkg/errors"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/render/treemap/sink"
)

func TestParseTheme(t *testing.T) {
	want := sink.Config{Width: 800, HeatMax: "#ff7b72", FontFamily: "monospace"}

	tests := []struct {
		name string
		ext  string
		data string
	}{
		{"toml", ".toml", "width = 800\nheat_max = \"#ff7b72\"\nfont_family = \"monospace\"\n"},
		{"yaml", ".yaml", "width: 800\nheat_max: \"#ff7b72\"\nfont_family: monospace\n"},
		{"yml", ".YML", "width: 800\nheat_max: \"#ff7b72\"\nfont_family: monospace\n"},
		{"json", ".json", `{"width": 800, "heat_max": "#ff7b72", "font_family": "monospace"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTheme(tt.ext, []byte(tt.data))
			if err != nil {
				t.Fatalf("parseTheme: %v", err)
			}
			if got != want {
				t.Errorf("got %+v, want %+v", got, want)
			}
		})
	}
}

func TestParseThemeEmptyYAML(t *testing.T) {
	got, err := parseTheme(".yaml", nil)
	if err != nil {
		t.Fatalf("empty yaml should be an empty theme: %v", err)
	}
	if got != (sink.Config{}) {
		t.Errorf("got %+v", got)
	}
}

func TestParseThemeErrors(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		data string
	}{
		{"unknown toml key", ".toml", "heat_maximum = \"#ffffff\"\n"},
		{"unknown yaml key", ".yaml", "colour: red\n"},
		{"unknown json key", ".json", `{"colour": "red"}`},
		{"bad toml", ".toml", "width = \n"},
		{"bad heat color", ".toml", "heat_min = \"red\"\n"},
		{"short heat color", ".json", `{"heat_max": "#fff"}`},
		{"negative size", ".yaml", "height: -1\n"},
		{"unsupported extension", ".ini", "width=1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseTheme(tt.ext, []byte(tt.data)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.json")
	if err := os.WriteFile(path, []byte(`{"background": "#000000"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadTheme(path)
	if err != nil {
		t.Fatalf("loadTheme: %v", err)
	}
	if cfg.Background != "#000000" {
		t.Errorf("Background = %q", cfg.Background)
	}

	if _, err := loadTheme(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("missing file: %v, want INVALID_CONFIG", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(bad, []byte("nope = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadTheme(bad); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("unknown key: %v, want INVALID_CONFIG", err)
	}
}
