package wormhole4d

import (
	"encoding/json"
	"fmt"
	"os"
)

type TracerCfg struct {
	WScale   Real `json:"wScale"`
	Radius   Real `json:"radius"`
	Infinity Real `json:"infinity"`
	// StepSize is a fixed step length; 0 selects adaptive stepping.
	StepSize Real `json:"stepSize,omitempty"`
}

type Config struct {
	Canvas   CanvasConfig `json:"canvas"`
	Camera   Camera       `json:"camera"`
	Tracer   TracerCfg    `json:"tracer"`
	EnvPos   string       `json:"envPos"`
	EnvNeg   string       `json:"envNeg"`
	Out      string       `json:"out"`
	RawOut   string       `json:"rawOut,omitempty"`
	GIFOut   string       `json:"gifOut,omitempty"`
	Frames   int          `json:"frames,omitempty"`
	GIFDelay int          `json:"gifDelay,omitempty"`
	Workers  int          `json:"workers,omitempty"`
}

// ConfigError reports a configuration value outside its documented range.
type ConfigError struct {
	Field  string
	Value  Real
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s=%g: %s", e.Field, e.Value, e.Reason)
}

// DefaultConfig is the CLI renderer's view: 1024x768, 90 degrees, looking
// down the wormhole with adaptive stepping.
func DefaultConfig() Config {
	cfg := Config{Tracer: TracerCfg{WScale: WScale, Radius: Radius}}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults replaces non-positive values that have no meaning. WScale,
// Radius and StepSize are left alone: zero is valid for all three.
func (c *Config) applyDefaults() {
	if c.Canvas.Width <= 0 {
		c.Canvas.Width = Width
	}
	if c.Canvas.Height <= 0 {
		c.Canvas.Height = Height
	}
	if c.Canvas.Aspect <= 0 {
		c.Canvas.Aspect = Aspect
	}
	if c.Canvas.FOV <= 0 {
		c.Canvas.FOV = FOV
	}
	if c.Tracer.Infinity <= 0 {
		c.Tracer.Infinity = Infinity
	}
	if c.Out == "" {
		c.Out = PNGOut
	}
	if c.GIFOut == "" {
		c.GIFOut = GIFOut
	}
	if c.Frames <= 0 {
		c.Frames = Frames
	}
	if c.GIFDelay <= 0 {
		c.GIFDelay = GIFDelay
	}
}

// Validate checks every value against its documented range. The tracer
// itself does not defend against out-of-range input.
func (c *Config) Validate() error {
	checks := []struct {
		field     string
		v, lo, hi Real
	}{
		{"canvas.aspect", c.Canvas.Aspect, 0.1, 10},
		{"canvas.fov", c.Canvas.FOV, 20, 160},
		{"camera.tilt", c.Camera.Tilt, -90, 90},
		{"camera.turn", c.Camera.Turn, -180, 180},
		{"camera.pan", c.Camera.Pan, -180, 180},
		{"tracer.wScale", c.Tracer.WScale, -1, 1},
		{"tracer.radius", c.Tracer.Radius, -1, 1},
		{"tracer.infinity", c.Tracer.Infinity, 1, 10},
	}
	for _, ch := range checks {
		if !(ch.v >= ch.lo && ch.v <= ch.hi) {
			return &ConfigError{Field: ch.field, Value: ch.v, Reason: fmt.Sprintf("must be in [%g, %g]", ch.lo, ch.hi)}
		}
	}
	if c.Canvas.Width <= 0 {
		return &ConfigError{Field: "canvas.width", Value: Real(c.Canvas.Width), Reason: "must be positive"}
	}
	if c.Canvas.Height <= 0 {
		return &ConfigError{Field: "canvas.height", Value: Real(c.Canvas.Height), Reason: "must be positive"}
	}
	if s := c.Tracer.StepSize; s != 0 && !(s >= MinStep && s <= MaxStep) {
		return &ConfigError{Field: "tracer.stepSize", Value: s, Reason: fmt.Sprintf("must be 0 (adaptive) or in [%g, %g]", MinStep, MaxStep)}
	}
	if c.Frames < 1 {
		return &ConfigError{Field: "frames", Value: Real(c.Frames), Reason: "must be positive"}
	}
	return nil
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	// Fields missing from the file keep their defaults.
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	logger.Debugf("Loaded config from %s: canvas=%+v, camera=%+v, tracer=%+v", path, cfg.Canvas, cfg.Camera, cfg.Tracer)
	return &cfg, nil
}

// LoadConfig reads a JSON config, fills defaults and validates it.
func LoadConfig(path string) (*Config, error) {
	cfg, err := loadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RenderOptions returns the per-render options the config selects.
func (c *Config) RenderOptions() RenderOptions {
	return RenderOptions{StepSize: c.Tracer.StepSize, Workers: c.Workers}
}

// NewTracer builds a tracer with the configured surface and env maps. Env
// map directories left empty get a uniform map: mid grey for positive w,
// black for negative.
func (c *Config) NewTracer() (*Tracer, error) {
	pos, err := c.envMap(c.EnvPos, 128)
	if err != nil {
		return nil, err
	}
	neg, err := c.envMap(c.EnvNeg, 0)
	if err != nil {
		return nil, err
	}
	return &Tracer{
		Surface:  Surface{WScale: c.Tracer.WScale, Radius: c.Tracer.Radius},
		EnvPos:   pos,
		EnvNeg:   neg,
		Infinity: c.Tracer.Infinity,
	}, nil
}
