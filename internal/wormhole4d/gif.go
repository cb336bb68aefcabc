package wormhole4d

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
)

// SaveAnimatedGIF writes one frame per render buffer.
// delay is in 100ths of a second (e.g., 5 => 20 fps).
func SaveAnimatedGIF(path string, frames [][]byte, w, h, delay int) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to write")
	}
	out := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(frames)),
		Delay:     make([]int, 0, len(frames)),
		LoopCount: 0,
	}
	for k, buf := range frames {
		if k%imax(1, len(frames)/10) == 0 {
			logger.Debugf("[GIF] %.2f%%", Real(k+1)*100/Real(len(frames)))
		}
		rgba, err := toImage(buf, w, h)
		if err != nil {
			return fmt.Errorf("frame %d: %w", k, err)
		}
		// Quantize to paletted for GIF
		pimg := image.NewPaletted(rgba.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(pimg, pimg.Bounds(), rgba, image.Point{})

		out.Image = append(out.Image, pimg)
		out.Delay = append(out.Delay, delay)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, out)
}
