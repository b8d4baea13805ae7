package compositing

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Resize scales src into a new NRGBA buffer of the given dimensions using
// Catmull-Rom interpolation. The result is always a fresh allocation, never
// a view into src.
func Resize(src *image.NRGBA, width, height int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
