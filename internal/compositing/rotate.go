package compositing

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Rotate rotates src about its center by the given angle in degrees,
// producing a new NRGBA buffer sized to the rotated bounding box so no
// corner content is cropped. The regions outside the rotated extent are
// left fully transparent. A positive angle rotates clockwise on screen
// (image coordinates, y down), matching geometry.Angle.
//
// Color and alpha are interpolated together, so anti-aliased asset edges
// stay fringe-free. Rotate(src, 0) returns a pixel-identical copy.
func Rotate(src *image.NRGBA, angleDegrees float64) *image.NRGBA {
	b := src.Bounds()

	// Whole turns need no resampling. The interpolator works in
	// premultiplied space, which rounds semi-transparent pixels even for
	// an identity transform, so copy the pixels straight across.
	if math.Mod(angleDegrees, 360) == 0 {
		dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		rowBytes := b.Dx() * 4
		for y := 0; y < b.Dy(); y++ {
			srow := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+rowBytes], srow[:rowBytes])
		}
		return dst
	}

	w := float64(b.Dx())
	h := float64(b.Dy())

	theta := angleDegrees * math.Pi / 180
	cos := snap(math.Cos(theta))
	sin := snap(math.Sin(theta))

	// Bounding box of the rotated extent.
	dw := int(math.Ceil(math.Abs(w*cos) + math.Abs(h*sin)))
	dh := int(math.Ceil(math.Abs(w*sin) + math.Abs(h*cos)))

	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))

	// Source-to-destination affine: rotate about the source center, then
	// translate the center onto the destination center.
	cx := float64(b.Min.X) + w/2
	cy := float64(b.Min.Y) + h/2
	tx := float64(dw)/2 - (cos*cx - sin*cy)
	ty := float64(dh)/2 - (sin*cx + cos*cy)

	m := f64.Aff3{
		cos, -sin, tx,
		sin, cos, ty,
	}
	xdraw.BiLinear.Transform(dst, m, src, b, xdraw.Src, nil)

	return dst
}

// snap clears the floating-point residue of right-angle rotations, so a
// 90-degree rotation maps pixels exactly and the bounding box does not
// grow by a stray pixel.
func snap(v float64) float64 {
	if math.Abs(v) < 1e-12 {
		return 0
	}
	if math.Abs(v) > 1-1e-12 {
		return math.Copysign(1, v)
	}
	return v
}
