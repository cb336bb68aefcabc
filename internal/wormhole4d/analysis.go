package wormhole4d

import (
	"encoding/csv"
	"fmt"
	"image/color"
	"io"
	"sort"
	"strconv"
)

// StatValue selects which RayStats vector a convergence sweep compares.
type StatValue int

const (
	StepDir  StatValue = iota // direction from the previous to the last point
	DerivDir                  // direction with the normal component removed
	EndPoint                  // end point clipped to the Infinity radius
)

// ParseStatValue accepts step-dir, deriv-dir and point.
func ParseStatValue(s string) (StatValue, error) {
	switch s {
	case "step-dir":
		return StepDir, nil
	case "deriv-dir":
		return DerivDir, nil
	case "point":
		return EndPoint, nil
	}
	return 0, fmt.Errorf("unknown stat value %q (want step-dir, deriv-dir or point)", s)
}

func (v StatValue) of(rs RayStats) Vector4 {
	switch v {
	case DerivDir:
		return rs.DerivDir
	case EndPoint:
		return rs.Point
	}
	return rs.StepDir
}

// Sweep describes the step sizes of a convergence run: MinSize, then
// repeatedly multiplied by Scale, Steps sizes in all.
type Sweep struct {
	MinSize Real
	Scale   Real
	Steps   int
}

// DefaultSweep covers 0.001 * 2^0 .. 0.001 * 2^6.
var DefaultSweep = Sweep{MinSize: 0.001, Scale: 2, Steps: 7}

// Sizes lists the step sizes in increasing order.
func (s Sweep) Sizes() []Real {
	out := make([]Real, s.Steps)
	size := s.MinSize
	for k := range out {
		out[k] = size
		size *= s.Scale
	}
	return out
}

// DiagnosticTracer is the tracer the convergence tooling uses: only the
// path geometry matters, so the environment is a single colour.
func DiagnosticTracer() *Tracer {
	em := UniformEnvMap(color.RGBA{A: 255})
	return &Tracer{
		Surface:  Surface{WScale: 0.25, Radius: 0.25},
		EnvPos:   em,
		EnvNeg:   em,
		Infinity: 4,
	}
}

// DiagnosticCanvas is the 64x64, 90 degree canvas of the convergence tooling.
func DiagnosticCanvas() CanvasConfig {
	return CanvasConfig{Width: 64, Height: 64, Aspect: 1, FOV: 90}
}

// PathSweep renders ray statistics at every size of the sweep and groups
// them by path: out[pixel][k] is the pixel's result at the k-th size.
func (t *Tracer) PathSweep(conf CanvasConfig, sw Sweep, workers int) ([][]RayStats, error) {
	out := make([][]RayStats, conf.Width*conf.Height)
	for _, size := range sw.Sizes() {
		logger.Infof("Step size: %g", size)
		res, err := t.RenderRayStats(conf, size, workers)
		if err != nil {
			return nil, fmt.Errorf("step size %g: %w", size, err)
		}
		for i, rs := range res {
			out[i] = append(out[i], rs)
		}
	}
	return out, nil
}

// PathErrors returns, per path, the distance between each result's
// normalised value and the first (finest) one's. Each row has one entry
// fewer than the sweep.
func PathErrors(paths [][]RayStats, v StatValue) [][]Real {
	out := make([][]Real, len(paths))
	for i, results := range paths {
		if len(results) == 0 {
			continue
		}
		base := v.of(results[0]).Norm()
		errs := make([]Real, 0, len(results)-1)
		for _, r := range results[1:] {
			errs = append(errs, v.of(r).Norm().Sub(base).Len())
		}
		out[i] = errs
	}
	return out
}

// ErrorRatios divides each error by the one before it. For a first-order
// method under step doubling the ratios approach 2.
func ErrorRatios(errors [][]Real) [][]Real {
	out := make([][]Real, len(errors))
	for i, errs := range errors {
		var ratios []Real
		for k := 1; k < len(errs); k++ {
			ratios = append(ratios, errs[k]/errs[k-1])
		}
		out[i] = ratios
	}
	return out
}

// ColumnMedians returns the median of every column, ignoring non-finite
// entries. Rows may be ragged.
func ColumnMedians(rows [][]Real) []Real {
	cols := 0
	for _, r := range rows {
		cols = imax(cols, len(r))
	}
	out := make([]Real, cols)
	for c := range out {
		var vals []Real
		for _, r := range rows {
			if c < len(r) && isFinite(r[c]) {
				vals = append(vals, r[c])
			}
		}
		out[c] = median(vals)
	}
	return out
}

func median(vals []Real) Real {
	if len(vals) == 0 {
		return 0
	}
	sort.Float64s(vals)
	n := len(vals)
	if n%2 == 1 {
		return vals[n/2]
	}
	return 0.5 * (vals[n/2-1] + vals[n/2])
}

func formatReal(v Real) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// WriteCSV writes one comma-separated line per row.
func WriteCSV(w io.Writer, rows [][]Real) error {
	cw := csv.NewWriter(w)
	for _, r := range rows {
		rec := make([]string, len(r))
		for i, v := range r {
			rec[i] = formatReal(v)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteStepStatsCSV writes step statistics with a header row.
func WriteStepStatsCSV(w io.Writer, stats []StepStats) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"step", "len", "error", "curvature", "dcurve", "normal_mvmt"}); err != nil {
		return err
	}
	for _, s := range stats {
		rec := []string{
			strconv.Itoa(s.StepNum),
			formatReal(s.Len),
			formatReal(s.Error),
			formatReal(s.Curvature),
			formatReal(s.DCurve),
			formatReal(s.NormDiff),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
