package sink

// Config is the canvas size and theme of a rendered treemap.
type Config struct {
	Width         int    `toml:"width" yaml:"width" json:"width,omitempty"`
	Height        int    `toml:"height" yaml:"height" json:"height,omitempty"`
	Background    string `toml:"background" yaml:"background" json:"background,omitempty"`
	HeatMin       string `toml:"heat_min" yaml:"heat_min" json:"heat_min,omitempty"`
	HeatMax       string `toml:"heat_max" yaml:"heat_max" json:"heat_max,omitempty"`
	TextPrimary   string `toml:"text_primary" yaml:"text_primary" json:"text_primary,omitempty"`
	TextSecondary string `toml:"text_secondary" yaml:"text_secondary" json:"text_secondary,omitempty"`
	FontFamily    string `toml:"font_family" yaml:"font_family" json:"font_family,omitempty"`
}

// Default theme values.
const (
	DefaultWidth         = 465
	DefaultHeight        = 165
	DefaultBackground    = "#21232A"
	DefaultHeatMin       = "#31343C"
	DefaultHeatMax       = "#58BCDA"
	DefaultTextPrimary   = "#FFFFFF"
	DefaultTextSecondary = "rgba(255,255,255,0.75)"
	DefaultFontFamily    = "-apple-system, BlinkMacSystemFont, 'Segoe UI', Helvetica, Arial, sans-serif"
)

// DefaultConfig returns a fresh copy of the default theme.
func DefaultConfig() Config {
	return Config{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		Background:    DefaultBackground,
		HeatMin:       DefaultHeatMin,
		HeatMax:       DefaultHeatMax,
		TextPrimary:   DefaultTextPrimary,
		TextSecondary: DefaultTextSecondary,
		FontFamily:    DefaultFontFamily,
	}
}

// Merge returns c with every set field of o applied on top. Strings are set
// when non-empty and sizes when positive. Neither c nor o is modified.
func (c Config) Merge(o Config) Config {
	if o.Width > 0 {
		c.Width = o.Width
	}
	if o.Height > 0 {
		c.Height = o.Height
	}
	c.Background = pick(c.Background, o.Background)
	c.HeatMin = pick(c.HeatMin, o.HeatMin)
	c.HeatMax = pick(c.HeatMax, o.HeatMax)
	c.TextPrimary = pick(c.TextPrimary, o.TextPrimary)
	c.TextSecondary = pick(c.TextSecondary, o.TextSecondary)
	c.FontFamily = pick(c.FontFamily, o.FontFamily)
	return c
}

func pick(base, override string) string {
	if override != "" {
		return override
	}
	return base
}

// resolve fills every unset field of c from the defaults.
func resolve(c Config) Config {
	return DefaultConfig().Merge(c)
}
