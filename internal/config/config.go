// Package config layers the run settings: defaults, a YAML file, .env and
// POOLSIM_* environment variables, command-line flags, then key=value overrides.
package config

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sort"

	"mad-pool/internal/core"
	"mad-pool/internal/field"
	"mad-pool/internal/sim"
	"mad-pool/internal/table"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the complete set of tunables for one run.
type Config struct {
	// Image is the table outline file. When empty, Outline is generated.
	Image      string `yaml:"image"`
	Outline    string `yaml:"outline"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Seed       int64  `yaml:"seed"`
	Background string `yaml:"background"`

	Channel   string  `yaml:"channel"`
	Smooth    bool    `yaml:"smooth"`
	Threshold float64 `yaml:"threshold"`
	XSamples  int     `yaml:"samples_x"`
	YSamples  int     `yaml:"samples_y"`
	Tolerance float64 `yaml:"tolerance"`

	Segment table.Material `yaml:"segment"`
	Sim     sim.Config     `yaml:"sim"`

	Scale int `yaml:"scale"`
	TPS   int `yaml:"tps"`
}

// Default returns the reference table settings.
func Default() Config {
	opt := table.DefaultOptions()
	return Config{
		Outline:   "pool",
		Width:     800,
		Height:    450,
		Seed:      1,
		Channel:   string(field.ChannelLightness),
		Threshold: opt.Threshold,
		XSamples:  opt.XSamples,
		YSamples:  opt.YSamples,
		Tolerance: opt.Tolerance,
		Segment:   opt.Material,
		Sim:       sim.DefaultConfig(),
		Scale:     1,
		TPS:       60,
	}
}

// Validate checks the config as a whole.
func (c Config) Validate() error {
	if _, err := field.ParseChannel(c.Channel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	switch {
	case !(c.Threshold > field.Empty) || c.Threshold > 1:
		return fmt.Errorf("%w: threshold must be in (0, 1], got %v", ErrInvalid, c.Threshold)
	case c.XSamples == 1 || c.XSamples < 0 || c.YSamples == 1 || c.YSamples < 0:
		return fmt.Errorf("%w: samples must be 0 or at least 2, got %dx%d", ErrInvalid, c.XSamples, c.YSamples)
	case !(c.Tolerance >= 0) || math.IsInf(c.Tolerance, 0):
		return fmt.Errorf("%w: tolerance must be a non-negative number, got %v", ErrInvalid, c.Tolerance)
	case !finiteNonNegative(c.Segment.Radius):
		return fmt.Errorf("%w: segment radius must be a finite non-negative number, got %v", ErrInvalid, c.Segment.Radius)
	case !finiteNonNegative(c.Segment.Friction) || !finiteNonNegative(c.Segment.Elasticity):
		return fmt.Errorf("%w: segment friction and elasticity must be finite and non-negative, got %v/%v",
			ErrInvalid, c.Segment.Friction, c.Segment.Elasticity)
	case c.Image == "" && (c.Width <= 0 || c.Height <= 0):
		return fmt.Errorf("%w: generated outline needs a positive size, got %dx%d", ErrInvalid, c.Width, c.Height)
	case c.Scale < 1:
		return fmt.Errorf("%w: scale must be at least 1", ErrInvalid)
	case c.TPS < 1:
		return fmt.Errorf("%w: tps must be at least 1", ErrInvalid)
	}
	if c.Image == "" {
		if _, ok := core.Outlines()[c.Outline]; !ok {
			return fmt.Errorf("%w: unknown outline %q (have %v)", ErrInvalid, c.Outline, core.OutlineNames())
		}
	}
	if err := c.Sim.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

func finiteNonNegative(v float64) bool { return v >= 0 && !math.IsInf(v, 1) }

// TableImage loads Image, or generates Outline when no file is configured.
func (c Config) TableImage() (image.Image, error) {
	if c.Image != "" {
		return field.Load(c.Image)
	}
	gen, ok := core.Outlines()[c.Outline]
	if !ok {
		return nil, fmt.Errorf("unknown outline %q", c.Outline)
	}
	return gen(core.Size{W: c.Width, H: c.Height}, c.Seed), nil
}

// BackgroundImage loads Background, or returns nil when none is set.
func (c Config) BackgroundImage() (image.Image, error) {
	if c.Background == "" {
		return nil, nil
	}
	return field.Load(c.Background)
}

// Table runs the startup pipeline: load or generate the outline, sample it and
// extract the static geometry.
func (c Config) Table() (image.Image, table.Geometry, error) {
	img, err := c.TableImage()
	if err != nil {
		return nil, table.Geometry{}, err
	}
	geo, err := table.Extract(c.Field(img), c.TableOptions())
	if err != nil {
		return nil, table.Geometry{}, err
	}
	return img, geo, nil
}

// TableOptions returns the geometry pipeline settings.
func (c Config) TableOptions() table.Options {
	return table.Options{
		Threshold: c.Threshold,
		XSamples:  c.XSamples,
		YSamples:  c.YSamples,
		Tolerance: c.Tolerance,
		Material:  c.Segment,
	}
}

// Field wraps img in the configured sampler.
func (c Config) Field(img image.Image) *field.Image {
	ch, _ := field.ParseChannel(c.Channel)
	return field.NewImage(img, ch, c.Smooth)
}

// SimConfig returns the simulation settings for a screen of the given height.
func (c Config) SimConfig(screenHeight int) sim.Config {
	sc := c.Sim
	sc.ScreenHeight = float64(screenHeight)
	return sc
}

// Parameters lists the table settings for overlays.
func (c Config) Parameters() core.ParameterSnapshot {
	source := c.Image
	if source == "" {
		source = "outline:" + c.Outline
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Table",
		Params: []core.Parameter{
			core.StringParam("image", "Source", source),
			core.StringParam("channel", "Channel", c.Channel),
			core.FloatParam("threshold", "Threshold", c.Threshold),
			core.IntParam("samples_x", "Samples X", c.XSamples),
			core.IntParam("samples_y", "Samples Y", c.YSamples),
			core.FloatParam("tolerance", "Tolerance", c.Tolerance),
		},
	}}}
}

// Keys returns every settable key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
