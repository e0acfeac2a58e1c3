package cli

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dhvcc/github-contribution-treemap-generator/pkg/errors"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/render/treemap/sink"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/render/treemap/styles"
)

// loadTheme reads a theme file. The format follows the extension: .toml,
// .yaml/.yml or .json. Unknown keys are rejected so that typos surface.
func loadTheme(path string) (sink.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return sink.Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read theme %s", path)
	}
	cfg, err := parseTheme(filepath.Ext(path), data)
	if err != nil {
		return sink.Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse theme %s", path)
	}
	return cfg, nil
}

func parseTheme(ext string, data []byte) (sink.Config, error) {
	var cfg sink.Config

	switch strings.ToLower(ext) {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return cfg, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !stderrors.Is(err, io.EOF) {
			return cfg, err
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unsupported theme format %q (want .toml, .yaml, .yml or .json)", ext)
	}

	if err := validateTheme(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// validateTheme checks that the heat colors parse, since the renderer
// silently falls back to black for bad input.
func validateTheme(cfg sink.Config) error {
	for name, v := range map[string]string{"heat_min": cfg.HeatMin, "heat_max": cfg.HeatMax} {
		if v == "" {
			continue
		}
		if !styles.ValidHex(v) {
			return errors.New(errors.ErrCodeInvalidConfig, "%s: %q is not a #rrggbb color", name, v)
		}
	}
	if cfg.Width < 0 || cfg.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "width and height must not be negative")
	}
	return nil
}
