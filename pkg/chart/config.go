package chart

import (
	"bytes"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/minid3/pkg/errors"
)

// Default configuration values.
const (
	DefaultTemplate   = "bar"
	DefaultWidth      = 960.0
	DefaultHeight     = 500.0
	DefaultPadding    = 0.1
	DefaultLabelField = "name"
	DefaultValueField = "value"
	DefaultFill       = "steelblue"
	DefaultSelector   = "#chart"
	DefaultText       = "hello world"
)

// DefaultMargin is the plot margin used when none is configured.
var DefaultMargin = Margin{Top: 20, Right: 20, Bottom: 30, Left: 40}

// Margin is the space between the svg border and the plot area.
type Margin struct {
	Top    float64 `toml:"top" json:"top"`
	Right  float64 `toml:"right" json:"right"`
	Bottom float64 `toml:"bottom" json:"bottom"`
	Left   float64 `toml:"left" json:"left"`
}

// Config describes one chart.
type Config struct {
	Template string  `toml:"template" json:"template"`
	Title    string  `toml:"title,omitempty" json:"title,omitempty"`
	Width    float64 `toml:"width" json:"width"`
	Height   float64 `toml:"height" json:"height"`
	Margin   Margin  `toml:"margin" json:"margin"`

	// Padding is the band scale padding, in [0, 1].
	Padding    float64 `toml:"padding" json:"padding"`
	LabelField string  `toml:"label_field" json:"label_field"`
	ValueField string  `toml:"value_field" json:"value_field"`
	Fill       string  `toml:"fill" json:"fill"`

	// Selector locates the mount element in the page.
	Selector string `toml:"selector" json:"selector"`

	// YMax fixes the top of the y domain. Zero means the dataset maximum.
	YMax float64 `toml:"y_max,omitempty" json:"y_max,omitempty"`
	// YTickStep is the spacing of y axis ticks. Zero means scale.DefaultTickStep.
	YTickStep float64 `toml:"y_tick_step,omitempty" json:"y_tick_step,omitempty"`

	// Data is the dataset path or URL.
	Data string `toml:"data,omitempty" json:"data,omitempty"`
	// Text is the content written by the hello template.
	Text string `toml:"text,omitempty" json:"text,omitempty"`
}

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() Config {
	return Config{
		Template:   DefaultTemplate,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Margin:     DefaultMargin,
		Padding:    DefaultPadding,
		LabelField: DefaultLabelField,
		ValueField: DefaultValueField,
		Fill:       DefaultFill,
		Selector:   DefaultSelector,
		Text:       DefaultText,
	}
}

// ParseConfig decodes TOML over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode chart config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a TOML config file.
func LoadConfig(path string) (Config, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "read config %s", path)
	}
	return ParseConfig(data)
}

// SetDefaults fills empty string fields and non-positive dimensions.
// Padding, YMax and YTickStep are left alone since zero is meaningful for them.
func (c *Config) SetDefaults() {
	if c.Template == "" {
		c.Template = DefaultTemplate
	}
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.LabelField == "" {
		c.LabelField = DefaultLabelField
	}
	if c.ValueField == "" {
		c.ValueField = DefaultValueField
	}
	if c.Fill == "" {
		c.Fill = DefaultFill
	}
	if c.Selector == "" {
		c.Selector = DefaultSelector
	}
	if c.Text == "" {
		c.Text = DefaultText
	}
}

// Validate reports the first configuration problem as an INVALID_CONFIG error.
func (c Config) Validate() error {
	if _, err := Lookup(c.Template); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "template")
	}
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "width and height must be positive, got %vx%v", c.Width, c.Height)
	case c.Margin.Top < 0 || c.Margin.Right < 0 || c.Margin.Bottom < 0 || c.Margin.Left < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "margins must not be negative")
	case c.InnerWidth() <= 0 || c.InnerHeight() <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "margins leave no plot area in %vx%v", c.Width, c.Height)
	case c.Padding < 0 || c.Padding > 1:
		return errors.New(errors.ErrCodeInvalidConfig, "padding must be in [0, 1], got %v", c.Padding)
	case c.YMax < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "y_max must not be negative, got %v", c.YMax)
	case c.YTickStep < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "y_tick_step must not be negative, got %v", c.YTickStep)
	case c.Selector == "":
		return errors.New(errors.ErrCodeInvalidConfig, "selector is required")
	}
	if c.Data != "" && errors.IsRemote(c.Data) {
		if err := errors.ValidateURL(c.Data); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "data")
		}
	}
	return nil
}

// InnerWidth is the plot width inside the margins.
func (c Config) InnerWidth() float64 { return c.Width - c.Margin.Left - c.Margin.Right }

// InnerHeight is the plot height inside the margins.
func (c Config) InnerHeight() float64 { return c.Height - c.Margin.Top - c.Margin.Bottom }

// Encode returns the canonical TOML form of c.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode chart config")
	}
	return buf.Bytes(), nil
}
