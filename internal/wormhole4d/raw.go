package wormhole4d

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

// SaveRaw writes a render buffer unflipped: width and height as
// little-endian int32, then the RGBA8 bytes.
func SaveRaw(path string, buf []byte, w, h int) error {
	if w < 0 || h < 0 {
		return fmt.Errorf("negative dimensions: w=%d h=%d", w, h)
	}
	exp64 := int64(w) * int64(h) * 4
	if int64(len(buf)) != exp64 {
		return fmt.Errorf("buffer length mismatch: got %d, expected %d (w*h*4)", len(buf), exp64)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := binary.Write(bw, binary.LittleEndian, int32(w)); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, int32(h)); err != nil {
		return err
	}
	if _, err := bw.Write(buf); err != nil {
		return err
	}
	return bw.Flush()
}
