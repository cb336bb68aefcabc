package wormhole4d

import (
	"math"
	"testing"
)

func near(a, b, eps Real) bool { return math.Abs(a-b) <= eps }

func nearVec(a, b Vector4, eps Real) bool {
	return near(a.X, b.X, eps) && near(a.Y, b.Y, eps) && near(a.Z, b.Z, eps) && near(a.W, b.W, eps)
}

func TestI4MulVec(t *testing.T) {
	v := Vector4{1, 2, 3, 4}
	if out := I4().MulVec(v); out != v {
		t.Fatalf("I*v != v: %+v", out)
	}
}

func TestPlaneRotations_AreOrthonormal(t *testing.T) {
	basis := []Vector4{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
	for _, R := range []Mat4{rotXZ(math.Pi / 7), rotYZ(math.Pi / 5), rotXZ(-math.Pi / 3)} {
		cols := make([]Vector4, len(basis))
		for i, e := range basis {
			cols[i] = R.MulVec(e)
		}
		for i := range cols {
			for j := range cols {
				want := 0.0
				if i == j {
					want = 1
				}
				if d := cols[i].Dot(cols[j]); !near(d, want, 1e-12) {
					t.Fatalf("columns %d,%d: dot %g, want %g", i, j, d, want)
				}
			}
		}
		// Plane rotations leave w alone.
		if R.MulVec(basis[3]) != basis[3] {
			t.Fatalf("w axis moved: %+v", R.MulVec(basis[3]))
		}
	}
}

func TestCameraRig_NoRotation(t *testing.T) {
	rig := newCameraRig(Camera{})
	if rig.origin != (Point4{0, 0, -1, 1}) {
		t.Fatalf("origin: %+v", rig.origin)
	}
	d := rig.direction(0.3, -0.2)
	if d != (Dir4{0.3, -0.2, 1, 0}) {
		t.Fatalf("direction: %+v", d)
	}
}

func TestCameraRig_MatchesExplicitRotations(t *testing.T) {
	cam := Camera{Tilt: 20, Turn: -35, Pan: 60}
	rig := newCameraRig(cam)
	x, y, z := 0.4, -0.3, 1.0

	// tilt about the horizontal axis, then turn about the vertical axis,
	// then the orbit, written out by hand.
	a := -cam.Tilt * math.Pi / 180
	tx, ty, tz := x, y*math.Cos(a)+z*math.Sin(a), -y*math.Sin(a)+z*math.Cos(a)
	b := -cam.Turn * math.Pi / 180
	ux, uy, uz := tx*math.Cos(b)+tz*math.Sin(b), ty, -tx*math.Sin(b)+tz*math.Cos(b)
	c := cam.Pan * math.Pi / 180
	want := Dir4{ux*math.Cos(c) - uz*math.Sin(c), uy, ux*math.Sin(c) + uz*math.Cos(c), 0}

	if got := rig.direction(x, y); !nearVec(got, want, 1e-12) {
		t.Fatalf("direction: got %+v want %+v", got, want)
	}
	wantOrigin := Point4{math.Sin(c), 0, -math.Cos(c), 1}
	if !nearVec(rig.origin, wantOrigin, 1e-12) {
		t.Fatalf("origin: got %+v want %+v", rig.origin, wantOrigin)
	}
}

func TestCameraRig_PanKeepsLookingInward(t *testing.T) {
	for _, pan := range []Real{-180, -90, -30, 0, 45, 90, 180} {
		rig := newCameraRig(Camera{Pan: pan})
		d := rig.direction(0, 0)
		// The centre ray points from the origin of the orbit at the embedding origin.
		toCentre := Point4{}.Sub(rig.origin)
		toCentre.W = 0
		if !nearVec(d, toCentre, 1e-12) {
			t.Fatalf("pan %g: centre ray %+v, want %+v", pan, d, toCentre)
		}
	}
}
