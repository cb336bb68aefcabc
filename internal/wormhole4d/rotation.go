package wormhole4d

import "math"

const degToRad = math.Pi / 180

// Mat4 is a row-major 4x4 matrix; only plane rotations are built from it.
type Mat4 struct {
	M [4][4]Real
}

func I4() Mat4 {
	return Mat4{M: [4][4]Real{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}}
}

func rotXZ(a Real) Mat4 {
	c, s := math.Cos(a), math.Sin(a)
	M := I4()
	M.M[0][0], M.M[0][2] = c, -s
	M.M[2][0], M.M[2][2] = s, c
	return M
}

func rotYZ(a Real) Mat4 {
	c, s := math.Cos(a), math.Sin(a)
	M := I4()
	M.M[1][1], M.M[1][2] = c, -s
	M.M[2][1], M.M[2][2] = s, c
	return M
}

// Camera holds the viewing angles in degrees. Tilt looks up and down, turn
// looks left and right, pan orbits the viewer around the embedding origin.
type Camera struct {
	Tilt Real `json:"tilt"`
	Turn Real `json:"turn"`
	Pan  Real `json:"pan"`
}

// cameraRig is the per-render precomputation of a Camera: three plane
// rotations and the orbit origin.
type cameraRig struct {
	tilt, turn, pan Mat4
	origin          Point4
}

func newCameraRig(cam Camera) cameraRig {
	pan := cam.Pan * degToRad
	return cameraRig{
		tilt:   rotYZ(cam.Tilt * degToRad),
		turn:   rotXZ(cam.Turn * degToRad),
		pan:    rotXZ(pan),
		origin: Point4{X: math.Sin(pan), Y: 0, Z: -math.Cos(pan), W: 1},
	}
}

// direction maps the local per-pixel ray (x, y, 1) to world space: tilt and
// turn first, then the orbit rotation so the viewer keeps looking inward.
func (r cameraRig) direction(x, y Real) Dir4 {
	d := Dir4{X: x, Y: y, Z: 1}
	d = r.tilt.MulVec(d)
	d = r.turn.MulVec(d)
	return r.pan.MulVec(d)
}
