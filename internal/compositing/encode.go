package compositing

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
)

// Encoder serializes composited frames to their output format.
type Encoder struct {
	format      string // "png" or "jpeg"
	jpegQuality int
}

// NewEncoder creates an encoder for the given output format.
func NewEncoder(format string, jpegQuality int) *Encoder {
	return &Encoder{
		format:      format,
		jpegQuality: jpegQuality,
	}
}

// Encode serializes a frame using a pooled buffer and returns a fresh byte
// slice the caller owns.
func (e *Encoder) Encode(frame *image.NRGBA) ([]byte, error) {
	buf := BufferPool.Get().(*bytes.Buffer)
	defer BufferPool.Put(buf)
	buf.Reset()

	switch e.format {
	case "png":
		if err := png.Encode(buf, frame); err != nil {
			return nil, fmt.Errorf("PNG encoding failed: %w", err)
		}
	case "jpeg":
		opts := &jpeg.Options{Quality: e.jpegQuality}
		if err := jpeg.Encode(buf, frame, opts); err != nil {
			return nil, fmt.Errorf("JPEG encoding failed: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported output format %q", e.format)
	}

	// Copy out (buf goes back to the pool)
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())

	return result, nil
}
