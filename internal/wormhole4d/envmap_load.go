package wormhole4d

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// faceExts are tried in order for every face name.
var faceExts = []string{".jpg", ".jpeg", ".png", ".bmp", ".tif", ".tiff", ".webp"}

// LoadEnvMap reads negx, posx, negy, posy, negz and posz from dir.
func LoadEnvMap(dir string) (*EnvMap, error) {
	var f CubeFaces
	slots := []struct {
		name string
		dst  **image.RGBA
	}{
		{"negx", &f.NegX}, {"posx", &f.PosX},
		{"negy", &f.NegY}, {"posy", &f.PosY},
		{"negz", &f.NegZ}, {"posz", &f.PosZ},
	}
	for _, s := range slots {
		img, err := loadFace(dir, s.name)
		if err != nil {
			return nil, err
		}
		*s.dst = img
	}
	em, err := NewEnvMap(f)
	if err != nil {
		return nil, fmt.Errorf("env map %s: %w", dir, err)
	}
	logger.Debugf("Loaded env map from %s: %v per face", dir, f.NegX.Bounds().Size())
	return em, nil
}

func loadFace(dir, name string) (*image.RGBA, error) {
	for _, ext := range faceExts {
		path := filepath.Join(dir, name+ext)
		fh, err := os.Open(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		img, _, err := image.Decode(fh)
		_ = fh.Close()
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return toRGBA(img), nil
	}
	return nil, fmt.Errorf("env map face %s not found in %s", name, dir)
}

// toRGBA converts any decoded image to *image.RGBA anchored at (0,0).
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return dst
}
