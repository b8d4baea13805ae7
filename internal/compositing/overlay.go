package compositing

import "image"

// Overlay alpha-blends src onto dst in place with src's top-left corner at
// (x, y) in dst coordinates. Blending is straight-alpha per channel:
//
//	dst = src*α + dst*(1−α)
//
// Source pixels with alpha 0 are skipped entirely (no write), and source
// pixels mapping outside dst bounds are silently dropped. Partial overlays
// at frame edges are a normal, supported case. This is the engine's only
// mutating operation.
func Overlay(dst, src *image.NRGBA, x, y int) {
	db := dst.Bounds()
	sb := src.Bounds()
	sw := sb.Dx()
	sh := sb.Dy()

	// Clip the source region to dst bounds up front so the inner loop is
	// branch-free on coordinates.
	sx0, sy0 := 0, 0
	if x < db.Min.X {
		sx0 = db.Min.X - x
	}
	if y < db.Min.Y {
		sy0 = db.Min.Y - y
	}
	sx1, sy1 := sw, sh
	if x+sw > db.Max.X {
		sx1 = db.Max.X - x
	}
	if y+sh > db.Max.Y {
		sy1 = db.Max.Y - y
	}
	if sx0 >= sx1 || sy0 >= sy1 {
		return
	}

	for sy := sy0; sy < sy1; sy++ {
		srow := src.Pix[src.PixOffset(sb.Min.X+sx0, sb.Min.Y+sy):]
		drow := dst.Pix[dst.PixOffset(x+sx0, y+sy):]
		for sx := 0; sx < sx1-sx0; sx++ {
			si := sx * 4
			a := srow[si+3]
			if a == 0 {
				continue
			}
			di := sx * 4
			if a == 0xff {
				drow[di+0] = srow[si+0]
				drow[di+1] = srow[si+1]
				drow[di+2] = srow[si+2]
				drow[di+3] = 0xff
				continue
			}
			alpha := uint32(a)
			inv := 255 - alpha
			drow[di+0] = uint8((uint32(srow[si+0])*alpha + uint32(drow[di+0])*inv) / 255)
			drow[di+1] = uint8((uint32(srow[si+1])*alpha + uint32(drow[di+1])*inv) / 255)
			drow[di+2] = uint8((uint32(srow[si+2])*alpha + uint32(drow[di+2])*inv) / 255)
			da := uint32(drow[di+3])
			drow[di+3] = uint8(alpha + da*inv/255)
		}
	}
}
