package compositing

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"testing"
)

// testAsset builds a small opaque asset with distinct pixel values and a
// one-pixel transparent border, roughly what a decoded filter PNG looks
// like.
func testAsset(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 13),
				G: uint8(y * 29),
				B: uint8((x + y) * 7),
				A: 255,
			})
		}
	}
	return img
}

func TestRotateIdentity(t *testing.T) {
	src := testAsset(20, 12)
	// Anti-aliased asset edges carry low-alpha pixels; the identity case
	// must preserve them exactly, not round them through resampling.
	src.SetNRGBA(5, 5, color.NRGBA{R: 200, G: 50, B: 10, A: 10})
	src.SetNRGBA(6, 5, color.NRGBA{R: 255, G: 255, B: 255, A: 1})
	src.SetNRGBA(7, 5, color.NRGBA{R: 31, G: 97, B: 203, A: 127})

	for _, angle := range []float64{0, 360, -360, 720} {
		got := Rotate(src, angle)

		if got == src {
			t.Fatalf("Rotate(src, %v) returned the source buffer, want a fresh allocation", angle)
		}
		if got.Bounds() != src.Bounds() {
			t.Fatalf("Rotate(src, %v) bounds = %v, want %v", angle, got.Bounds(), src.Bounds())
		}
		if !bytes.Equal(got.Pix, src.Pix) {
			for y := 0; y < 12; y++ {
				for x := 0; x < 20; x++ {
					if g, w := got.NRGBAAt(x, y), src.NRGBAAt(x, y); g != w {
						t.Fatalf("Rotate(src, %v) changed pixel (%d,%d): got %v, want %v", angle, x, y, g, w)
					}
				}
			}
		}
	}
}

func TestRotateBounds(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		angle   float64
		wantW   int
		wantH   int
	}{
		{"Zero keeps size", 20, 12, 0, 20, 12},
		{"Quarter turn swaps dimensions", 20, 12, 90, 12, 20},
		{"Negative quarter turn swaps dimensions", 20, 12, -90, 12, 20},
		{"Half turn keeps size", 20, 12, 180, 20, 12},
		{"45 degrees expands", 20, 20, 45, 29, 29}, // ceil(20*√2/... ) = ceil(28.28)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rotate(testAsset(tt.w, tt.h), tt.angle)
			size := got.Bounds().Size()
			if size.X != tt.wantW || size.Y != tt.wantH {
				t.Errorf("Rotate(%dx%d, %v°) size = %dx%d, want %dx%d",
					tt.w, tt.h, tt.angle, size.X, size.Y, tt.wantW, tt.wantH)
			}
		})
	}
}

// The corner regions introduced by a diagonal rotation must stay fully
// transparent, or the compositor would stamp opaque rectangles onto the
// frame.
func TestRotateCornersTransparent(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	got := Rotate(src, 45)
	b := got.Bounds()
	corners := []image.Point{
		{b.Min.X, b.Min.Y},
		{b.Max.X - 1, b.Min.Y},
		{b.Min.X, b.Max.Y - 1},
		{b.Max.X - 1, b.Max.Y - 1},
	}
	for _, c := range corners {
		px := got.NRGBAAt(c.X, c.Y)
		if px.A != 0 {
			t.Errorf("corner %v has alpha %d, want 0", c, px.A)
		}
	}
}

// Rotating by θ then -θ must reproduce the original content within a
// resampling tolerance, comparing the center region where no border
// effects apply.
func TestRotateRoundTrip(t *testing.T) {
	src := testAsset(41, 41)

	rotated := Rotate(src, 30)
	back := Rotate(rotated, -30)

	// The round trip grows the canvas; compare the centered region of the
	// original size.
	bb := back.Bounds()
	offX := (bb.Dx() - 41) / 2
	offY := (bb.Dy() - 41) / 2

	const tolerance = 40 // per channel, resampling softens edges
	worst := 0
	for y := 8; y < 33; y++ {
		for x := 8; x < 33; x++ {
			want := src.NRGBAAt(x, y)
			got := back.NRGBAAt(x+offX, y+offY)
			for _, d := range []int{
				int(want.R) - int(got.R),
				int(want.G) - int(got.G),
				int(want.B) - int(got.B),
				int(want.A) - int(got.A),
			} {
				if d < 0 {
					d = -d
				}
				if d > worst {
					worst = d
				}
			}
		}
	}
	if worst > tolerance {
		t.Errorf("round-trip worst channel delta = %d, want <= %d", worst, tolerance)
	}
}

func TestRotateDoesNotAliasSource(t *testing.T) {
	src := testAsset(16, 16)
	got := Rotate(src, 90)

	for i := range got.Pix {
		got.Pix[i] = 0xee
	}
	// Source must be untouched by writes to the rotated buffer.
	want := testAsset(16, 16)
	if !bytes.Equal(src.Pix, want.Pix) {
		t.Error("mutating the rotated buffer changed the source asset")
	}
}

func TestRotateQuarterTurnExact(t *testing.T) {
	src := testAsset(10, 6)
	got := Rotate(src, 90)

	// Clockwise on screen: source pixel (x, y) lands at (h-1-y, x).
	h := src.Bounds().Dy()
	mismatches := 0
	for y := 0; y < 6; y++ {
		for x := 0; x < 10; x++ {
			want := src.NRGBAAt(x, y)
			if p := got.NRGBAAt(h-1-y, x); p != want {
				mismatches++
			}
		}
	}
	if mismatches > 0 {
		t.Errorf("90° rotation misplaced %d of %d pixels", mismatches, 60)
	}
}

func TestResize(t *testing.T) {
	src := testAsset(20, 10)
	got := Resize(src, 40, 20)

	size := got.Bounds().Size()
	if size.X != 40 || size.Y != 20 {
		t.Fatalf("Resize size = %v, want 40x20", size)
	}
	if got == src {
		t.Fatal("Resize returned the source buffer")
	}
}

func TestResizeUniformColor(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 120, G: 60, B: 30, A: 255})
		}
	}

	got := Resize(src, 17, 5)
	for y := 0; y < 5; y++ {
		for x := 0; x < 17; x++ {
			px := got.NRGBAAt(x, y)
			if math.Abs(float64(px.R)-120) > 1 || math.Abs(float64(px.G)-60) > 1 ||
				math.Abs(float64(px.B)-30) > 1 || px.A != 255 {
				t.Fatalf("pixel (%d,%d) = %v, want uniform color preserved", x, y, px)
			}
		}
	}
}
