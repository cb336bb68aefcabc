package wormhole4d

import "image/color"

// Tracer holds everything a render reads: the surface, the two environment
// maps (chosen by the sign of the final direction's w) and the radius
// beyond which space is treated as flat. It is never mutated while tracing
// and is shared by all workers.
type Tracer struct {
	Surface
	EnvPos   *EnvMap
	EnvNeg   *EnvMap
	Infinity Real
}

// newStepper picks the stepping policy: a positive stepSize is a fixed
// step, anything else is adaptive.
func (t *Tracer) newStepper(stepSize Real) stepper {
	if stepSize > 0 {
		return &fixedStepper{s: t.Surface, size: stepSize}
	}
	return newAdaptiveStepper(t.Surface)
}

// Trace follows one ray from origin and returns the environment colour
// seen along its final direction.
func (t *Tracer) Trace(origin Point4, dir Dir4, stepSize Real) (color.RGBA, error) {
	return t.trace(origin, dir, stepSize, nil)
}

func (t *Tracer) trace(origin Point4, dir Dir4, stepSize Real, ctr *traceCounters) (color.RGBA, error) {
	p, old, err := t.integrate(origin, dir, t.newStepper(stepSize), ctr, nil)
	if err != nil {
		return color.RGBA{}, err
	}
	return t.colour(p.Sub(old)), nil
}

func (t *Tracer) colour(final Dir4) color.RGBA {
	if final.W > 0 {
		return t.EnvPos.Colour(final)
	}
	return t.EnvNeg.Colour(final)
}
