package wormhole4d

import (
	"image"
	"image/color"
	"testing"
)

// Face ids used by fixture cube maps.
const (
	idNegX = 1 + iota
	idPosX
	idNegY
	idPosY
	idNegZ
	idPosZ
)

// faceImage encodes the face id and pixel coordinates in the colour:
// R = id*10 + x, G = y.
func faceImage(id, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(id*10 + x), uint8(y), 0, 255})
		}
	}
	return img
}

func testFaces(size int) CubeFaces {
	return CubeFaces{
		NegX: faceImage(idNegX, size), PosX: faceImage(idPosX, size),
		NegY: faceImage(idNegY, size), PosY: faceImage(idPosY, size),
		NegZ: faceImage(idNegZ, size), PosZ: faceImage(idPosZ, size),
	}
}

func testEnvMap(t *testing.T, size int) *EnvMap {
	t.Helper()
	em, err := NewEnvMap(testFaces(size))
	if err != nil {
		t.Fatal(err)
	}
	return em
}

// wormhole is the standard scene: wScale 0.25, radius 0.1, infinity 4.
func wormhole(t *testing.T) *Tracer {
	t.Helper()
	em := testEnvMap(t, 4)
	return &Tracer{
		Surface:  Surface{WScale: 0.25, Radius: 0.1},
		EnvPos:   em,
		EnvNeg:   em,
		Infinity: 4,
	}
}
