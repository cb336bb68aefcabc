package wormhole4d

import (
	"math"
	"testing"
)

func TestDist_FlatWhenWScaleNearZero(t *testing.T) {
	for _, ws := range []Real{0, 1e-8, -1e-8, Epsilon, -Epsilon} {
		s := Surface{WScale: ws, Radius: 0.3}
		for x := -2.0; x <= 2; x += 0.5 {
			for w := -1.5; w <= 1.5; w += 0.25 {
				p := Point4{x, x * 0.5, -x, w}
				if got := s.Dist(p); got != p.W {
					t.Fatalf("wScale %g: Dist(%+v) = %g, want %g", ws, p, got, p.W)
				}
			}
		}
	}
}

func TestDist_Equation(t *testing.T) {
	s := Surface{WScale: 0.5, Radius: 0.1}
	p := Point4{1, 2, 3, 0.5}
	want := 1.0 + 4 + 9 - 1 - 0.1
	if got := s.Dist(p); math.Abs(got-want) > 1e-12 {
		t.Fatalf("Dist = %.15g, want %.15g", got, want)
	}
}

func TestDist_WScaleFloor(t *testing.T) {
	p := Point4{0.3, -0.2, 0.1, 0.004}
	floor := Surface{WScale: minWScale, Radius: 0.1}.Dist(p)
	for _, ws := range []Real{0.001, 0.01, 0.019, -0.001, -0.01} {
		if got := (Surface{WScale: ws, Radius: 0.1}).Dist(p); got != floor {
			t.Fatalf("wScale %g: Dist = %g, want floored %g", ws, got, floor)
		}
	}
	if got := (Surface{WScale: 0.05, Radius: 0.1}).Dist(p); got == floor {
		t.Fatal("wScale above the floor must not be clamped")
	}
}

func TestNormalAt_ApproximatesGradient(t *testing.T) {
	s := Surface{WScale: 0.25, Radius: 0.1}
	for _, p := range []Point4{{1, 0, 0, 0.1}, {0.3, -0.7, 0.2, 0.4}, {-2, 1, 0.5, -0.3}} {
		n := s.NormalAt(p).Mul(1 / Epsilon)
		grad := Dir4{2 * p.X, 2 * p.Y, 2 * p.Z, -2 * p.W / (s.WScale * s.WScale)}
		if !nearVec(n, grad, 1e-4) {
			t.Fatalf("NormalAt(%+v)/eps = %+v, want ~%+v", p, n, grad)
		}
	}
}

func TestForwardDiff(t *testing.T) {
	f := func(t Real) Real { return 3 * t }
	if d := forwardDiff(f, 2, f(2)) / Epsilon; math.Abs(d-3) > 1e-6 {
		t.Fatalf("derivative of 3t: %g", d)
	}
}
