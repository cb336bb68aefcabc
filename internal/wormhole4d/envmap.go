package wormhole4d

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// FacePair holds the two images of one cube axis. Pos is sampled when the
// face coordinate is positive. The vertical pair normalises its texture
// coordinates differently so its edges meet the side faces.
type FacePair struct {
	Pos, Neg *image.RGBA
	Vertical bool
}

// EnvMap is a cube map. Each pair is named for the axis whose image set
// it was loaded from; see Colour for which direction axis selects it.
type EnvMap struct {
	xmap, ymap, zmap FacePair
}

// CubeFaces are the six decoded faces of an image set, named as on disk.
type CubeFaces struct {
	NegX, PosX, NegY, PosY, NegZ, PosZ *image.RGBA
}

// NewEnvMap builds an EnvMap from decoded faces. The slot order follows the
// image sets' naming: a positive face coordinate samples the neg* file.
func NewEnvMap(f CubeFaces) (*EnvMap, error) {
	faces := []struct {
		name string
		img  *image.RGBA
	}{
		{"negx", f.NegX}, {"posx", f.PosX},
		{"negy", f.NegY}, {"posy", f.PosY},
		{"negz", f.NegZ}, {"posz", f.PosZ},
	}
	for _, fc := range faces {
		if fc.img == nil {
			return nil, fmt.Errorf("env map face %s is missing", fc.name)
		}
		if fc.img.Bounds().Empty() {
			return nil, fmt.Errorf("env map face %s is empty", fc.name)
		}
	}
	for i := 0; i < len(faces); i += 2 {
		a, b := faces[i].img.Bounds().Size(), faces[i+1].img.Bounds().Size()
		if a != b {
			logger.Warningf("env map faces %s (%v) and %s (%v) differ in size", faces[i].name, a, faces[i+1].name, b)
		}
	}
	return &EnvMap{
		xmap: FacePair{Pos: f.NegX, Neg: f.PosX},
		ymap: FacePair{Pos: f.NegY, Neg: f.PosY, Vertical: true},
		zmap: FacePair{Pos: f.NegZ, Neg: f.PosZ},
	}, nil
}

// UniformEnvMap is a 1x1 map of a single colour, used when only path
// geometry matters.
func UniformEnvMap(c color.RGBA) *EnvMap {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, c)
	em, _ := NewEnvMap(CubeFaces{img, img, img, img, img, img})
	return em
}

// Colour looks up the colour seen along dir; w is ignored. The axis
// permutations keep neighbouring faces continuous across their seams.
func (e *EnvMap) Colour(dir Dir4) color.RGBA {
	ax, ay, az := math.Abs(dir.X), math.Abs(dir.Y), math.Abs(dir.Z)
	if az > ax && az > ay {
		return e.xmap.sample(dir.X, dir.Y, dir.Z)
	} else if ax > ay {
		return e.zmap.sample(dir.Z, dir.Y, -dir.X)
	}
	return e.ymap.sample(-dir.Z, -dir.X, dir.Y)
}

// sample expects coordinates with the dominant component in z.
func (fp FacePair) sample(x, y, z Real) color.RGBA {
	img := fp.Neg
	if z > 0 {
		img = fp.Pos
	}
	if fp.Vertical {
		x, y = x/math.Abs(z), y/z
	} else {
		x, y = x/z, y/math.Abs(z)
	}
	b := img.Bounds()
	ix := texel(x, b.Dx())
	iy := texel(y, b.Dy())
	return img.RGBAAt(b.Min.X+ix, b.Min.Y+iy)
}

// texel maps a face coordinate in [-1,1] to a pixel index in [0,size).
func texel(v Real, size int) int {
	f := math.Floor(0.5 * (v + 1) * Real(size))
	if !(f > 0) {
		return 0
	}
	if f > Real(size-1) {
		return size - 1
	}
	return int(f)
}
