package wormhole4d

import "math"

// Surface is the implicit hypersurface x²+y²+z² - (w/WScale)² = Radius.
// WScale sets the depth of the wormhole, Radius its throat.
type Surface struct {
	WScale Real `json:"wScale"`
	Radius Real `json:"radius"`
}

// Dist is not a true distance but the implicit function whose zero set is
// the surface.
func (s Surface) Dist(p Point4) Real {
	// The flat case has to be special-cased, the general form divides by WScale.
	if math.Abs(s.WScale) <= Epsilon {
		return p.W
	}
	// Below the floor the surface folds back on itself and the solver finds
	// several close roots.
	ws := math.Copysign(math.Max(math.Abs(s.WScale), minWScale), s.WScale)
	x, y, z, w := p.X, p.Y, p.Z, p.W/ws
	return x*x + y*y + z*z - w*w - s.Radius
}

// NormalAt is the unnormalised forward-difference gradient of Dist. Its
// magnitude is Epsilon times the gradient.
func (s Surface) NormalAt(p Point4) Dir4 {
	base := s.Dist(p)
	return Dir4{
		X: forwardDiff(func(t Real) Real { q := p; q.X = t; return s.Dist(q) }, p.X, base),
		Y: forwardDiff(func(t Real) Real { q := p; q.Y = t; return s.Dist(q) }, p.Y, base),
		Z: forwardDiff(func(t Real) Real { q := p; q.Z = t; return s.Dist(q) }, p.Z, base),
		W: forwardDiff(func(t Real) Real { q := p; q.W = t; return s.Dist(q) }, p.W, base),
	}
}
