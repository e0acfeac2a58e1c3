package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/dhvcc/github-contribution-treemap-generator/pkg/cache"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/contrib"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/render/treemap/layout"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/render/treemap/sink"
)

// Render generates output artifacts in the requested formats.
func Render(leaves []layout.Rect, opts Options) (map[string][]byte, error) {
	cfg := opts.RenderConfig()
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		if _, ok := artifacts[format]; ok {
			continue
		}

		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(leaves, cfg)
		case FormatPNG:
			data, err = sink.RenderPNG(leaves, cfg, sink.WithScale(opts.Scale))
		case FormatJSON:
			data, err = sink.RenderJSON(leaves, cfg)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// themeKey identifies the colors and font of a theme. Canvas size is keyed
// separately.
func themeKey(cfg sink.Config) string {
	cfg.Width, cfg.Height = 0, 0
	if cfg == (sink.Config{}) {
		return ""
	}
	data, _ := json.Marshal(cfg)
	return cache.Hash(data)[:16]
}

// reposHash is the content hash of the repositories that were laid out.
func reposHash(repos []contrib.Repo) string {
	data, _ := json.Marshal(repos)
	return cache.Hash(data)
}
