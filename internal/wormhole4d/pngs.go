package wormhole4d

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// toImage wraps a render buffer as an image, flipping rows so up is up.
func toImage(buf []byte, w, h int) (*image.RGBA, error) {
	if len(buf) != w*h*4 {
		return nil, fmt.Errorf("buffer length mismatch: got %d, expected %d (w*h*4)", len(buf), w*h*4)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for j := 0; j < h; j++ {
		y := h - 1 - j
		copy(img.Pix[y*img.Stride:y*img.Stride+w*4], buf[j*w*4:(j+1)*w*4])
	}
	return img, nil
}

// SavePNG writes a render buffer as a lossless RGBA PNG.
func SavePNG(path string, buf []byte, w, h int) error {
	img, err := toImage(buf, w, h)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
