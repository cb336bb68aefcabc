package wormhole4d

import (
	"errors"
	"fmt"
)

// ErrClipDiverged is returned when the radius clip produces a non-finite iterate.
var ErrClipDiverged = errors.New("radius clip diverged")

// RayStats describes how one fixed-step path ended.
type RayStats struct {
	StepDir  Dir4   // last step, previous point to end point
	DerivDir Dir4   // StepDir with its component along the end normal removed
	Point    Point4 // end point clipped to exactly the Infinity radius
	Len      Real   // accumulated path length
}

// StepStats describes one step of a fixed-step path.
type StepStats struct {
	StepNum   int
	Len       Real
	Error     Real // distance to a 10x finer reference step, per unit length
	Curvature Real
	DCurve    Real // change of the scaled normal over the step, per unit length
	NormDiff  Real // landing point vs. extrapolation along the pre-step normal, per unit length
}

// statsCamera is the fixed diagnostic view: on the z axis, looking at the
// origin, no rotation.
var statsCamera = Point4{X: 0, Y: 0, Z: -1, W: 1}

// RenderRayStats traces every pixel with a fixed step and returns one
// RayStats per pixel in row-major order.
func (t *Tracer) RenderRayStats(conf CanvasConfig, stepSize Real, workers int) ([]RayStats, error) {
	g := newGrid(conf)
	ys := g.rowYs(conf.Height)
	out := make([]RayStats, conf.Width*conf.Height)
	err := forEachRow(conf.Height, workerCount(workers), func(j int) error {
		x := g.xStart
		for i := 0; i < conf.Width; i++ {
			rs, err := t.TraceRayStats(statsCamera, Dir4{X: x, Y: ys[j], Z: 1}, stepSize)
			if err != nil {
				return err
			}
			out[j*conf.Width+i] = rs
			x += g.xStep
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// TraceRayStats runs the fixed-step loop for one ray and reports its ending.
func (t *Tracer) TraceRayStats(origin Point4, dir Dir4, stepSize Real) (RayStats, error) {
	length := 0.0
	p, old, err := t.integrate(origin, dir, &fixedStepper{s: t.Surface, size: stepSize}, nil, func(p, old Point4) {
		length += p.Sub(old).Len()
	})
	if err != nil {
		return RayStats{}, err
	}

	stepDir := p.Sub(old)
	norm := t.NormalAt(p).Norm()
	point, err := t.clipToRadius(p, old)
	if err != nil {
		return RayStats{}, err
	}
	return RayStats{
		StepDir:  stepDir,
		DerivDir: stepDir.Sub(norm.Mul(stepDir.Dot(norm))),
		Point:    point,
		Len:      length,
	}, nil
}

// clipToRadius finds where the segment prev->p crosses the Infinity radius,
// precisely enough that clipping does not distort error measurements.
// Newton-Raphson on |guess|² - Infinity² with no iteration cap; only a
// non-finite iterate stops it early.
func (t *Tracer) clipToRadius(p, prev Point4) (Point4, error) {
	delta := p.Sub(prev)
	r2 := t.Infinity * t.Infinity
	lambda := 0.0
	for {
		guess := prev.Add(delta.Mul(lambda))
		diff := guess.Dot(guess) - r2
		if diff < Epsilon && diff > -Epsilon {
			return guess, nil
		}
		lambda -= diff / (2 * guess.Dot(delta))
		if !isFinite(lambda) {
			if Debug {
				logTrace("clip_diverged", ClipFailure, prev, delta, 0)
			}
			return Point4{}, fmt.Errorf("clip %+v -> %+v: %w", prev, p, ErrClipDiverged)
		}
	}
}

// RenderStepStats traces every pixel with a fixed step and returns the
// statistics of every step, grouped by pixel in row-major order.
func (t *Tracer) RenderStepStats(conf CanvasConfig, stepSize Real, workers int) ([]StepStats, error) {
	g := newGrid(conf)
	ys := g.rowYs(conf.Height)
	rows := make([][]StepStats, conf.Height)
	err := forEachRow(conf.Height, workerCount(workers), func(j int) error {
		var row []StepStats
		x := g.xStart
		for i := 0; i < conf.Width; i++ {
			ss, err := t.TraceStepStats(statsCamera, Dir4{X: x, Y: ys[j], Z: 1}, stepSize)
			if err != nil {
				return err
			}
			row = append(row, ss...)
			x += g.xStep
		}
		rows[j] = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	var out []StepStats
	for _, row := range rows {
		out = append(out, row...)
	}
	return out, nil
}

// TraceStepStats runs the fixed-step loop for one ray, comparing every step
// against traceStepMult finer steps over the same interval.
func (t *Tracer) TraceStepStats(origin Point4, dir Dir4, stepSize Real) ([]StepStats, error) {
	var stats []StepStats
	p, err := t.ProjectVertical(origin)
	if err != nil {
		return nil, err
	}
	old, err := t.ProjectVertical(p.Sub(dir.Norm().Mul(stepSize)))
	if err != nil {
		return nil, err
	}
	// Normals scaled back to gradient magnitude.
	oldNorm := t.NormalAt(old).Mul(1 / Epsilon)

	for n := 0; p.Len() < t.Infinity; n++ {
		delta := p.Sub(old).Norm().Mul(stepSize)
		norm := t.NormalAt(p).Mul(1 / Epsilon)
		nnorm := norm.Norm()
		savedP, savedOld := p, old

		next, err := t.constrainedStep(p, delta, nnorm, nil)
		if err != nil {
			return nil, err
		}
		p, old = next, p
		length := p.Sub(old).Len()

		ref, err := t.referenceStep(savedP, savedOld, stepSize/traceStepMult)
		if err != nil {
			return nil, err
		}

		newNorm := t.NormalAt(p).Norm()
		predictedBase := old.Add(delta)
		projection := nnorm.Dot(p.Sub(predictedBase))
		predicted := predictedBase.Add(newNorm.Mul(projection))

		stats = append(stats, StepStats{
			StepNum:   n,
			Len:       length,
			Error:     p.Sub(ref).Len() / length,
			Curvature: p.Sub(old).Norm().Dot(norm) / length,
			DCurve:    oldNorm.Sub(norm).Len() / length,
			NormDiff:  p.Sub(predicted).Len() / length,
		})
		oldNorm = norm
	}
	return stats, nil
}

// referenceStep repeats one step as traceStepMult sub-steps of size sub.
func (t *Tracer) referenceStep(p, old Point4, sub Real) (Point4, error) {
	st := &fixedStepper{s: t.Surface, size: sub}
	for k := 0; k < traceStepMult; k++ {
		next, err := st.advance(p, old, nil)
		if err != nil {
			return Point4{}, fmt.Errorf("reference step: %w", err)
		}
		p, old = next, p
	}
	return p, nil
}
