package config

import (
	"fmt"
	"sort"
	"strconv"

	"mad-pool/internal/sim"
)

type setter struct {
	usage string
	set   func(c *Config, v string) error
}

func str(dst func(*Config) *string) func(*Config, string) error {
	return func(c *Config, v string) error { *dst(c) = v; return nil }
}

func integer(dst func(*Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*dst(c) = parsed
		return nil
	}
}

func float(dst func(*Config) *float64) func(*Config, string) error {
	return func(c *Config, v string) error {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		*dst(c) = parsed
		return nil
	}
}

var setters = map[string]setter{
	"image":      {"table outline image (png, jpeg, gif, bmp)", str(func(c *Config) *string { return &c.Image })},
	"outline":    {"procedural outline used when no image is set", str(func(c *Config) *string { return &c.Outline })},
	"background": {"image drawn under the table geometry", str(func(c *Config) *string { return &c.Background })},
	"channel":    {"pixel channel: lightness, luminance or alpha", str(func(c *Config) *string { return &c.Channel })},
	"width":      {"generated outline width", integer(func(c *Config) *int { return &c.Width })},
	"height":     {"generated outline height", integer(func(c *Config) *int { return &c.Height })},
	"seed": {"seed for generated outlines", func(c *Config, v string) error {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return err
		}
		c.Seed = parsed
		return nil
	}},
	"smooth": {"bilinear field sampling", func(c *Config, v string) error {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		c.Smooth = parsed
		return nil
	}},
	"threshold":          {"field threshold in (0,1]", float(func(c *Config) *float64 { return &c.Threshold })},
	"samples_x":          {"lattice points along x, 0 for one per pixel", integer(func(c *Config) *int { return &c.XSamples })},
	"samples_y":          {"lattice points along y, 0 for one per pixel", integer(func(c *Config) *int { return &c.YSamples })},
	"tolerance":          {"polyline simplification tolerance", float(func(c *Config) *float64 { return &c.Tolerance })},
	"segment.friction":   {"cushion friction", float(func(c *Config) *float64 { return &c.Segment.Friction })},
	"segment.elasticity": {"cushion restitution", float(func(c *Config) *float64 { return &c.Segment.Elasticity })},
	"segment.radius":     {"cushion segment thickness", float(func(c *Config) *float64 { return &c.Segment.Radius })},
	"dt":                 {"fixed physics timestep in seconds", float(func(c *Config) *float64 { return &c.Sim.Dt })},
	"steps_per_frame":    {"physics steps per frame", integer(func(c *Config) *int { return &c.Sim.StepsPerFrame })},
	"iterations":         {"constraint solver iterations per step", integer(func(c *Config) *int { return &c.Sim.Iterations })},
	"gravity.x":          {"gravity x component", float(func(c *Config) *float64 { return &c.Sim.Gravity.X })},
	"gravity.y":          {"gravity y component", float(func(c *Config) *float64 { return &c.Sim.Gravity.Y })},
	"despawn_y":          {"balls below this world y are removed", float(func(c *Config) *float64 { return &c.Sim.DespawnY })},
	"ball.radius":        {"ball radius", float(func(c *Config) *float64 { return &c.Sim.Ball.Radius })},
	"ball.mass":          {"ball mass", float(func(c *Config) *float64 { return &c.Sim.Ball.Mass })},
	"ball.friction":      {"ball friction", float(func(c *Config) *float64 { return &c.Sim.Ball.Friction })},
	"ball.elasticity":    {"ball restitution", float(func(c *Config) *float64 { return &c.Sim.Ball.Elasticity })},
	"max_balls":          {"live ball cap, 0 for none", integer(func(c *Config) *int { return &c.Sim.MaxBalls })},
	"limit": {"policy at the cap: unbounded, reject or evict-oldest", func(c *Config, v string) error {
		c.Sim.Limit = sim.LimitPolicy(v)
		return nil
	}},
	"scale": {"window pixel scale", integer(func(c *Config) *int { return &c.Scale })},
	"tps":   {"frames per second", integer(func(c *Config) *int { return &c.TPS })},
}

// Set assigns one value by key.
func (c *Config) Set(key, value string) error {
	s, ok := setters[key]
	if !ok {
		return fmt.Errorf("unknown config key %q", key)
	}
	if err := s.set(c, value); err != nil {
		return fmt.Errorf("config key %s=%q: %w", key, value, err)
	}
	return nil
}

// FromMap applies every entry of m, stopping at the first bad one.
func (c *Config) FromMap(m map[string]string) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := c.Set(k, m[k]); err != nil {
			return err
		}
	}
	return nil
}
