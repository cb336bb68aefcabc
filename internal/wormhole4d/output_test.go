package wormhole4d

import (
	"bufio"
	"encoding/binary"
	"image/color"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// tinyFrame is a 2x3 buffer whose row j is filled with grey 10*(j+1).
func tinyFrame() []byte {
	w, h := 2, 3
	buf := make([]byte, w*h*4)
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			off := (j*w + i) * 4
			g := byte(10 * (j + 1))
			buf[off], buf[off+1], buf[off+2], buf[off+3] = g, g, g, 255
		}
	}
	return buf
}

func TestSavePNG_FlipsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := SavePNG(path, tinyFrame(), 2, 3); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 3 {
		t.Fatalf("bounds %v", b)
	}
	// Buffer row 0 ends up at the bottom of the image.
	for y, want := range []uint8{30, 20, 10} {
		c := color.RGBAModel.Convert(img.At(1, y)).(color.RGBA)
		if c != (color.RGBA{want, want, want, 255}) {
			t.Fatalf("row %d = %+v, want grey %d", y, c, want)
		}
	}
}

func TestSavePNG_LengthMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	if err := SavePNG(path, make([]byte, 7), 2, 3); err == nil {
		t.Fatal("expected error for buffer length mismatch")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("nothing should be written on error")
	}
}

func TestSaveAnimatedGIF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gif")
	frames := [][]byte{tinyFrame(), tinyFrame(), tinyFrame()}
	if err := SaveAnimatedGIF(path, frames, 2, 3, 5); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	g, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Image) != 3 {
		t.Fatalf("%d frames", len(g.Image))
	}
	for k, d := range g.Delay {
		if d != 5 {
			t.Fatalf("frame %d delay %d", k, d)
		}
	}
}

func TestSaveAnimatedGIF_Errors(t *testing.T) {
	dir := t.TempDir()
	if err := SaveAnimatedGIF(filepath.Join(dir, "none.gif"), nil, 2, 3, 5); err == nil {
		t.Fatal("expected error for no frames")
	}
	if err := SaveAnimatedGIF(filepath.Join(dir, "bad.gif"), [][]byte{tinyFrame(), {1}}, 2, 3, 5); err == nil {
		t.Fatal("expected error for a short frame")
	}
}

func TestSaveRaw(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "out.raw")
	buf := tinyFrame()
	if err := SaveRaw(path, buf, 2, 3); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	r := bufio.NewReader(f)
	var w, h int32
	if err := binary.Read(r, binary.LittleEndian, &w); err != nil {
		t.Fatal(err)
	}
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		t.Fatal(err)
	}
	if w != 2 || h != 3 {
		t.Fatalf("header %dx%d", w, h)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	// Raw output keeps the renderer's row order.
	if string(body) != string(buf) {
		t.Fatal("body differs from the buffer")
	}
}

func TestSaveRaw_Errors(t *testing.T) {
	dir := t.TempDir()
	if err := SaveRaw(filepath.Join(dir, "neg.raw"), nil, -1, 1); err == nil {
		t.Fatal("expected error for negative dims")
	}
	if err := SaveRaw(filepath.Join(dir, "short.raw"), make([]byte, 3), 1, 1); err == nil {
		t.Fatal("expected error for buffer length mismatch")
	}
}

func TestRun_WritesOutputs(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Canvas = CanvasConfig{Width: 4, Height: 3, Aspect: 1, FOV: 90}
	cfg.Tracer.StepSize = 0.02
	cfg.Out = filepath.Join(dir, "out.png")
	cfg.RawOut = filepath.Join(dir, "out.raw")
	stats, err := Run(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Width != 4 || stats.Height != 3 {
		t.Fatalf("stats %+v", stats)
	}
	for _, p := range []string{cfg.Out, cfg.RawOut} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("%s not written: %v", p, err)
		}
	}
}

func TestRunOrbit_WritesGIF(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Canvas = CanvasConfig{Width: 3, Height: 3, Aspect: 1, FOV: 90}
	cfg.Tracer.StepSize = 0.02
	cfg.Frames = 2
	cfg.GIFOut = filepath.Join(t.TempDir(), "orbit.gif")
	if err := RunOrbit(&cfg); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(cfg.GIFOut)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	g, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Image) != 2 {
		t.Fatalf("%d frames", len(g.Image))
	}
}
