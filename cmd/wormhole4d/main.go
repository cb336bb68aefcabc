package main

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/lukaszgryglicki/wormhole4d/internal/log"
	w4d "github.com/lukaszgryglicki/wormhole4d/internal/wormhole4d"
	"github.com/urfave/cli"
)

var (
	logger  = log.New("wormhole4d")
	profile *os.File
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "wormhole4d"
	app.Usage = "render curved 4D space by tracing light paths along an implicit hypersurface"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging and trace event recording",
		},
		cli.BoolFlag{
			Name:  "profile",
			Usage: "write a CPU profile to cpu.out",
		},
	}
	app.Before = setup
	app.After = teardown

	viewFlags := []cli.Flag{
		cli.IntFlag{Name: "width", Usage: "frame width (overrides config)"},
		cli.IntFlag{Name: "height", Usage: "frame height (overrides config)"},
		cli.Float64Flag{Name: "fov", Usage: "field of view in degrees, 20..160"},
		cli.Float64Flag{Name: "tilt", Usage: "camera tilt in degrees, -90..90"},
		cli.Float64Flag{Name: "turn", Usage: "camera turn in degrees, -180..180"},
		cli.Float64Flag{Name: "pan", Usage: "camera orbit in degrees, -180..180"},
		cli.Float64Flag{Name: "step", Usage: "fixed step size 0.001..0.1 (default adaptive)"},
		cli.IntFlag{Name: "workers", Usage: "rows traced in parallel (default one per CPU)"},
		cli.StringFlag{Name: "out, o", Usage: "output file"},
	}

	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame to PNG",
			Description: `
Load the JSON config (all fields optional), the positive-w and negative-w cube
maps, trace every pixel and write the frame as a PNG. Flags override the config.`,
			ArgsUsage: "[config.json]",
			Flags:     viewFlags,
			Action:    renderFrame,
		},
		{
			Name:      "orbit",
			Usage:     "render an orbit around the wormhole to an animated GIF",
			ArgsUsage: "[config.json]",
			Flags: append(viewFlags,
				cli.IntFlag{Name: "frames", Usage: "number of frames in a full turn"},
			),
			Action: renderOrbit,
		},
		{
			Name:  "path",
			Usage: "path-level convergence analysis over step sizes 0.001 * 2^0..2^6",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "output-mode, m", Value: "errors", Usage: "errors or ratios"},
				cli.StringFlag{Name: "value", Value: "step-dir", Usage: "step-dir, deriv-dir or point"},
				cli.IntFlag{Name: "workers", Usage: "rows traced in parallel (default one per CPU)"},
			},
			Action: pathStats,
		},
		{
			Name:  "step",
			Usage: "step-level convergence analysis",
			Flags: []cli.Flag{
				cli.Float64Flag{Name: "step-size, s", Value: w4d.RayStep, Usage: "step size, 0.001..0.1"},
				cli.IntFlag{Name: "workers", Usage: "rows traced in parallel (default one per CPU)"},
			},
			Action: stepStats,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func setup(ctx *cli.Context) error {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}
	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
	// Trace events are recorded whenever the tracer logs at debug level.
	w4d.Debug = log.IsEnabled(log.Debug, "wormhole4d")
	if ctx.GlobalBool("profile") {
		f, err := os.Create("cpu.out")
		if err != nil {
			return err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return err
		}
		profile = f
	}
	return nil
}

func teardown(ctx *cli.Context) error {
	if w4d.Debug {
		if events := w4d.TraceEventStats(); len(events) > 0 {
			logger.Noticef("trace events\n%s", w4d.FormatEventStats(events))
		}
	}
	if profile != nil {
		pprof.StopCPUProfile()
		return profile.Close()
	}
	return nil
}

// loadConfig reads the optional config argument and applies flag overrides.
func loadConfig(ctx *cli.Context) (*w4d.Config, error) {
	cfg := w4d.DefaultConfig()
	if ctx.NArg() > 0 {
		c, err := w4d.LoadConfig(ctx.Args().First())
		if err != nil {
			return nil, err
		}
		cfg = *c
	}
	if ctx.IsSet("width") {
		cfg.Canvas.Width = ctx.Int("width")
	}
	if ctx.IsSet("height") {
		cfg.Canvas.Height = ctx.Int("height")
	}
	if ctx.IsSet("fov") {
		cfg.Canvas.FOV = ctx.Float64("fov")
	}
	if ctx.IsSet("tilt") {
		cfg.Camera.Tilt = ctx.Float64("tilt")
	}
	if ctx.IsSet("turn") {
		cfg.Camera.Turn = ctx.Float64("turn")
	}
	if ctx.IsSet("pan") {
		cfg.Camera.Pan = ctx.Float64("pan")
	}
	if ctx.IsSet("step") {
		cfg.Tracer.StepSize = ctx.Float64("step")
	}
	if ctx.IsSet("workers") {
		cfg.Workers = ctx.Int("workers")
	}
	if ctx.IsSet("frames") {
		cfg.Frames = ctx.Int("frames")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func renderFrame(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if ctx.IsSet("out") {
		cfg.Out = ctx.String("out")
	}
	stats, err := w4d.Run(cfg)
	if err != nil {
		return err
	}
	logger.Noticef("frame statistics\n%s", w4d.FormatRenderStats(stats))
	return nil
}

func renderOrbit(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if ctx.IsSet("out") {
		cfg.GIFOut = ctx.String("out")
	}
	return w4d.RunOrbit(cfg)
}

func pathStats(ctx *cli.Context) error {
	value, err := w4d.ParseStatValue(ctx.String("value"))
	if err != nil {
		return err
	}
	mode := ctx.String("output-mode")
	if mode != "errors" && mode != "ratios" {
		return fmt.Errorf("unknown output mode %q (want errors or ratios)", mode)
	}

	sweep := w4d.DefaultSweep
	paths, err := w4d.DiagnosticTracer().PathSweep(w4d.DiagnosticCanvas(), sweep, ctx.Int("workers"))
	if err != nil {
		return err
	}
	rows := w4d.PathErrors(paths, value)
	sizes := sweep.Sizes()
	var headers []string
	for k := 1; k < len(sizes); k++ {
		headers = append(headers, fmt.Sprintf("%g vs %g", sizes[k], sizes[0]))
	}
	if mode == "ratios" {
		rows = w4d.ErrorRatios(rows)
		headers = headers[:0]
		for k := 2; k < len(sizes); k++ {
			headers = append(headers, fmt.Sprintf("%g / %g", sizes[k], sizes[k-1]))
		}
	}
	logger.Noticef("summary\n%s", w4d.FormatColumnSummary(mode, headers, w4d.ColumnMedians(rows)))
	return w4d.WriteCSV(os.Stdout, rows)
}

func stepStats(ctx *cli.Context) error {
	size := ctx.Float64("step-size")
	if !(size >= w4d.MinStep && size <= w4d.MaxStep) {
		return fmt.Errorf("step size %g outside [%g, %g]", size, w4d.MinStep, w4d.MaxStep)
	}
	stats, err := w4d.DiagnosticTracer().RenderStepStats(w4d.DiagnosticCanvas(), size, ctx.Int("workers"))
	if err != nil {
		return err
	}
	return w4d.WriteStepStatsCSV(os.Stdout, stats)
}
