package wormhole4d

import (
	"errors"
	"fmt"
)

// ErrRootFinding is matched by every *RootFindingError.
var ErrRootFinding = errors.New("root finding failed")

// RootFindingError reports a Newton-Raphson solve that did not converge.
type RootFindingError struct {
	Op    string
	Point Point4
	Iters int
}

func (e *RootFindingError) Error() string {
	return fmt.Sprintf("%s: no convergence from %+v after %d iterations", e.Op, e.Point, e.Iters)
}

func (e *RootFindingError) Is(target error) bool { return target == ErrRootFinding }

// solveLine runs Newton-Raphson on dist(point + lambda*dir) and returns the
// converged lambda and point. No bisection fallback: where a root exists
// the solve converges within two or three iterations.
func (s Surface) solveLine(point Point4, dir Dir4, maxIters int) (Real, Point4, bool) {
	along := func(lambda Real) Real { return s.Dist(point.Add(dir.Mul(lambda))) }
	lambda := 0.0
	for i := 0; i < maxIters; i++ {
		guess := point.Add(dir.Mul(lambda))
		val := s.Dist(guess)
		if val < Epsilon && val > -Epsilon {
			return lambda, guess, true
		}
		deriv := forwardDiff(along, lambda, val) / Epsilon
		lambda -= val / deriv
	}
	return lambda, Point4{}, false
}

// IntersectLine finds the point where the line through point along dir
// meets the surface.
func (s Surface) IntersectLine(point Point4, dir Dir4, maxIters int) (Point4, error) {
	_, p, ok := s.solveLine(point, dir, maxIters)
	if !ok {
		return Point4{}, &RootFindingError{Op: "intersect line", Point: point, Iters: maxIters}
	}
	return p, nil
}

// ProjectVertical drops point onto the surface along the w axis. The start
// may be far from the surface, so the budget is generous.
func (s Surface) ProjectVertical(point Point4) (Point4, error) {
	p, err := s.IntersectLine(point, vertical, projectIters)
	if err != nil {
		return Point4{}, fmt.Errorf("project vertical: %w", err)
	}
	return p, nil
}
