package wormhole4d

// traceCounters accumulates per-row work figures; a nil pointer disables counting.
type traceCounters struct {
	steps    int64
	halvings int64
}

// stepper is a step-size policy plugged into the shared integration loop.
type stepper interface {
	// seed is the length of the backward step that forms the initial tangent.
	seed() Real
	// start sees the projected start point before the loop begins.
	start(p Point4)
	// advance returns the next surface point after p, continuing the tangent
	// observed from old to p.
	advance(p, old Point4, ctr *traceCounters) (Point4, error)
}

// integrate walks a path across the surface from p0, initially along dir,
// until it leaves the Infinity radius, and returns the last two points.
// visit, when set, sees every accepted step.
func (t *Tracer) integrate(p0 Point4, dir Dir4, st stepper, ctr *traceCounters, visit func(p, old Point4)) (Point4, Point4, error) {
	p, err := t.ProjectVertical(p0)
	if err != nil {
		return Point4{}, Point4{}, err
	}
	st.start(p)
	old, err := t.ProjectVertical(p.Sub(dir.Norm().Mul(st.seed())))
	if err != nil {
		return Point4{}, Point4{}, err
	}

	for p.Len() < t.Infinity {
		next, err := st.advance(p, old, ctr)
		if err != nil {
			return Point4{}, Point4{}, err
		}
		p, old = next, p
		if ctr != nil {
			ctr.steps++
		}
		if visit != nil {
			visit(p, old)
		}
	}
	return p, old, nil
}

// fixedStepper advances by a constant length and recovers from solver
// failures by halving the step.
type fixedStepper struct {
	s    Surface
	size Real
}

func (f *fixedStepper) seed() Real     { return f.size }
func (f *fixedStepper) start(p Point4) {}

func (f *fixedStepper) advance(p, old Point4, ctr *traceCounters) (Point4, error) {
	delta := p.Sub(old).Norm().Mul(f.size)
	norm := f.s.NormalAt(p).Norm()
	return f.s.constrainedStep(p, delta, norm, ctr)
}

// constrainedStep moves from p by delta and pulls the result back onto the
// surface along norm. Under extreme curvature (wScale near 0.01) the line
// along norm can miss the surface entirely, so the step is halved and
// retried.
func (s Surface) constrainedStep(p Point4, delta, norm Dir4, ctr *traceCounters) (Point4, error) {
	for i := 0; i < maxHalvings; i++ {
		if _, q, ok := s.solveLine(p.Add(delta), norm, stepIters); ok {
			if i > 0 {
				if ctr != nil {
					ctr.halvings += int64(i)
				}
				if Debug {
					logTrace("halved", Halved, p, delta, i)
				}
			}
			return q, nil
		}
		delta = delta.Mul(0.5)
	}
	if Debug {
		logTrace("step_failed", RootFailure, p, delta, maxHalvings)
	}
	return Point4{}, &RootFindingError{Op: "constrained step", Point: p, Iters: maxHalvings * stepIters}
}

// adaptiveStepper resizes each step from how far the landing point strays
// from a prediction made with the previous normal. It never retries: a
// failed solve ends the path.
type adaptiveStepper struct {
	s    Surface
	size Real
	norm Dir4
}

func newAdaptiveStepper(s Surface) *adaptiveStepper {
	return &adaptiveStepper{s: s, size: baseAdaptiveStep}
}

func (a *adaptiveStepper) seed() Real { return a.size }

func (a *adaptiveStepper) start(p Point4) { a.norm = a.s.NormalAt(p).Norm() }

func (a *adaptiveStepper) advance(p, old Point4, ctr *traceCounters) (Point4, error) {
	base := p.Add(p.Sub(old).Norm().Mul(a.size))
	lambda, q, ok := a.s.solveLine(base, a.norm, stepIters)
	if !ok {
		if Debug {
			logTrace("adaptive_failed", RootFailure, p, a.norm, stepIters)
		}
		return Point4{}, &RootFindingError{Op: "adaptive step", Point: p, Iters: stepIters}
	}

	newNorm := a.s.NormalAt(q).Norm()
	predicted := base.Add(newNorm.Mul(lambda))
	deviation := q.Sub(predicted).Len() / a.size
	next := a.size * targetNormDiff / deviation
	// Also catches NaN from a zero deviation over a zero step.
	if !(next < maxAdaptiveStep) {
		next = maxAdaptiveStep
	}
	a.size, a.norm = next, newNorm
	return q, nil
}
