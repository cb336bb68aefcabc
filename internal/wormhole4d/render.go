package wormhole4d

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// CanvasConfig describes the screen a render fills.
type CanvasConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	// Aspect is the height of a pixel over its width.
	Aspect Real `json:"aspect"`
	FOV    Real `json:"fov"` // degrees
}

// RenderOptions selects the stepping policy and the parallelism of a render.
type RenderOptions struct {
	StepSize Real // fixed step length; zero selects adaptive stepping
	Workers  int  // rows traced concurrently; zero means one per CPU
}

// RenderStats summarises one render.
type RenderStats struct {
	Width, Height int
	Workers       int
	Steps         int64
	Halvings      int64
	RenderTime    time.Duration
}

// grid is the centred, evenly spaced set of local ray offsets. Steps are
// negative: pixel 0 is at +range/2.
type grid struct {
	xStart, xStep Real
	yStart, yStep Real
}

func newGrid(conf CanvasConfig) grid {
	fov := math.Tan(conf.FOV * degToRad * 0.5)
	// Invariant: start + step*(size-1)/2 = 0.
	xRange := fov * 2
	xStep := -xRange / Real(conf.Width)
	yRange := xRange * conf.Aspect * Real(conf.Height) / Real(conf.Width)
	yStep := -yRange / Real(conf.Height)
	return grid{
		xStart: -0.5 * xStep * Real(conf.Width-1),
		xStep:  xStep,
		yStart: -0.5 * yStep * Real(conf.Height-1),
		yStep:  yStep,
	}
}

// rowY is the y offset of row j.
func (g grid) rowY(j int) Real { return g.yStart + Real(j)*g.yStep }

// rowYs returns the y offsets of n rows by repeated addition, the order the
// diagnostics walk them in.
func (g grid) rowYs(n int) []Real {
	ys := make([]Real, n)
	y := g.yStart
	for j := range ys {
		ys[j] = y
		y += g.yStep
	}
	return ys
}

// forEachRow runs fn for rows 0..n-1 on up to workers goroutines. Rows are
// independent; the first error stops rows not yet started.
func forEachRow(n, workers int, fn func(j int) error) error {
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(workers)

	var done int64
	nextPrint := int64(imax(n/100, 1))
	for j := 0; j < n; j++ {
		if ctx.Err() != nil {
			break
		}
		j := j
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			if err := fn(j); err != nil {
				return err
			}
			if d := atomic.AddInt64(&done, 1); d%nextPrint == 0 {
				logger.Debugf("[PROGRESS] %.2f%%", Real(d)*100/Real(n))
			}
			return nil
		})
	}
	return g.Wait()
}

// Render traces every pixel of the canvas and returns RGBA8 bytes, row-major.
// Row 0 is the top of the view in the renderer's convention, which is the
// bottom row of a top-down image; callers flip as needed. A root-finding
// failure on any pixel fails the whole render.
func (t *Tracer) Render(conf CanvasConfig, cam Camera, opts RenderOptions) ([]byte, RenderStats, error) {
	start := time.Now()
	g := newGrid(conf)
	rig := newCameraRig(cam)
	workers := workerCount(opts.Workers)
	buf := make([]byte, conf.Width*conf.Height*4)

	var steps, halvings int64
	err := forEachRow(conf.Height, workers, func(j int) error {
		var ctr traceCounters
		row := buf[j*conf.Width*4 : (j+1)*conf.Width*4]
		y := g.rowY(j)
		x := g.xStart
		for i := 0; i < conf.Width; i++ {
			c, err := t.trace(rig.origin, rig.direction(x, y), opts.StepSize, &ctr)
			if err != nil {
				return err
			}
			row[i*4+0], row[i*4+1], row[i*4+2], row[i*4+3] = c.R, c.G, c.B, c.A
			x += g.xStep
		}
		atomic.AddInt64(&steps, ctr.steps)
		atomic.AddInt64(&halvings, ctr.halvings)
		return nil
	})
	stats := RenderStats{
		Width:      conf.Width,
		Height:     conf.Height,
		Workers:    workers,
		Steps:      steps,
		Halvings:   halvings,
		RenderTime: time.Since(start),
	}
	if err != nil {
		return nil, stats, err
	}
	logger.Debugf("Rendered %dx%d, steps: %d, halvings: %d, time: %s", conf.Width, conf.Height, steps, halvings, stats.RenderTime)
	return buf, stats, nil
}

// RenderOrbit renders frames views with the pan angle spread evenly over a
// full turn, starting from cam.Pan.
func (t *Tracer) RenderOrbit(conf CanvasConfig, cam Camera, opts RenderOptions, frames int) ([][]byte, error) {
	out := make([][]byte, 0, frames)
	for k := 0; k < frames; k++ {
		c := cam
		c.Pan = cam.Pan + 360*Real(k)/Real(frames)
		if c.Pan > 180 {
			c.Pan -= 360
		}
		buf, _, err := t.Render(conf, c, opts)
		if err != nil {
			return nil, err
		}
		logger.Debugf("Orbit frame %d/%d, pan: %.2f", k+1, frames, c.Pan)
		out = append(out, buf)
	}
	return out, nil
}
