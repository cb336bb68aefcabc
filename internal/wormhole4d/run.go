package wormhole4d

import (
	"image/color"
)

func (c *Config) envMap(dir string, grey uint8) (*EnvMap, error) {
	if dir == "" {
		logger.Warningf("No env map directory configured, using uniform grey %d", grey)
		return UniformEnvMap(color.RGBA{grey, grey, grey, 255}), nil
	}
	return LoadEnvMap(dir)
}

// Run renders the configured view and writes the PNG (and the raw buffer
// when rawOut is set).
func Run(cfg *Config) (RenderStats, error) {
	t, err := cfg.NewTracer()
	if err != nil {
		return RenderStats{}, err
	}
	buf, stats, err := t.Render(cfg.Canvas, cfg.Camera, cfg.RenderOptions())
	if err != nil {
		return stats, err
	}
	if err := SavePNG(cfg.Out, buf, cfg.Canvas.Width, cfg.Canvas.Height); err != nil {
		return stats, err
	}
	logger.Infof("Saved PNG: %s", cfg.Out)
	if cfg.RawOut != "" {
		if err := SaveRaw(cfg.RawOut, buf, cfg.Canvas.Width, cfg.Canvas.Height); err != nil {
			return stats, err
		}
		logger.Infof("Saved raw buffer: %s", cfg.RawOut)
	}
	return stats, nil
}

// RunOrbit renders the configured orbit animation to gifOut.
func RunOrbit(cfg *Config) error {
	t, err := cfg.NewTracer()
	if err != nil {
		return err
	}
	frames, err := t.RenderOrbit(cfg.Canvas, cfg.Camera, cfg.RenderOptions(), cfg.Frames)
	if err != nil {
		return err
	}
	if err := SaveAnimatedGIF(cfg.GIFOut, frames, cfg.Canvas.Width, cfg.Canvas.Height, cfg.GIFDelay); err != nil {
		return err
	}
	logger.Infof("Saved animated GIF: %s", cfg.GIFOut)
	return nil
}
