package wormhole4d

// Point4 and Dir4 name the two ways a Vector4 is used: a position in 4D
// and a displacement. They are interchangeable.
type (
	Point4 = Vector4
	Dir4   = Vector4
)

// vertical is the pure-w direction used to drop points onto the surface.
var vertical = Dir4{0, 0, 0, 1}
