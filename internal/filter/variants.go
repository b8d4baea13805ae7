package filter

import (
	"image"
	"math"

	"go-facefilter/internal/geometry"
	"go-facefilter/internal/landmark"
)

// Stock variants. Each one is stateless: the per-filter state (the asset
// cursor) lives in the Filter's store, not in the variant.

// centeredPosition anchors the rotated asset with its center on the
// midpoint of the reference line.
func centeredPosition(rotated *image.NRGBA, lms landmark.Set, i, j int) (int, int) {
	mid := geometry.Midpoint(lms[i], lms[j])
	size := rotated.Bounds().Size()
	return int(math.Round(mid.X)) - size.X/2, int(math.Round(mid.Y)) - size.Y/2
}

// Hat sits on the temple-to-temple line, anchored so its bottom edge rests
// on the line's midpoint.
type Hat struct{}

func (Hat) LandmarkIndices() (int, int) {
	return landmark.RightTemple, landmark.LeftTemple
}

func (Hat) Params() geometry.Params {
	return geometry.Params{
		MinDistance:    40,
		MaxDistance:    300,
		WidthFactor:    2.2,
		MinClampWidth:  80,
		MaxClampWidth:  600,
		HeightFactor:   1.6,
		MinClampHeight: 60,
		MaxClampHeight: 450,
	}
}

func (h Hat) Position(rotated *image.NRGBA, lms landmark.Set) (int, int) {
	i, j := h.LandmarkIndices()
	mid := geometry.Midpoint(lms[i], lms[j])
	size := rotated.Bounds().Size()
	return int(math.Round(mid.X)) - size.X/2, int(math.Round(mid.Y)) - size.Y
}

// Glasses are centered on the eye-to-eye line.
type Glasses struct{}

func (Glasses) LandmarkIndices() (int, int) {
	return landmark.RightEyeOuter, landmark.LeftEyeOuter
}

func (Glasses) Params() geometry.Params {
	return geometry.Params{
		MinDistance:    30,
		MaxDistance:    250,
		WidthFactor:    1.8,
		MinClampWidth:  50,
		MaxClampWidth:  450,
		HeightFactor:   0.8,
		MinClampHeight: 20,
		MaxClampHeight: 220,
	}
}

func (g Glasses) Position(rotated *image.NRGBA, lms landmark.Set) (int, int) {
	i, j := g.LandmarkIndices()
	return centeredPosition(rotated, lms, i, j)
}

// Nose is centered on the nostril-to-nostril line.
type Nose struct{}

func (Nose) LandmarkIndices() (int, int) {
	return landmark.RightNostril, landmark.LeftNostril
}

func (Nose) Params() geometry.Params {
	return geometry.Params{
		MinDistance:    10,
		MaxDistance:    120,
		WidthFactor:    2.0,
		MinClampWidth:  30,
		MaxClampWidth:  200,
		HeightFactor:   2.0,
		MinClampHeight: 30,
		MaxClampHeight: 200,
	}
}

func (n Nose) Position(rotated *image.NRGBA, lms landmark.Set) (int, int) {
	i, j := n.LandmarkIndices()
	return centeredPosition(rotated, lms, i, j)
}

// Mouth is centered on the mouth-corner line.
type Mouth struct{}

func (Mouth) LandmarkIndices() (int, int) {
	return landmark.MouthRight, landmark.MouthLeft
}

func (Mouth) Params() geometry.Params {
	return geometry.Params{
		MinDistance:    20,
		MaxDistance:    200,
		WidthFactor:    1.6,
		MinClampWidth:  40,
		MaxClampWidth:  300,
		HeightFactor:   1.0,
		MinClampHeight: 20,
		MaxClampHeight: 180,
	}
}

func (m Mouth) Position(rotated *image.NRGBA, lms landmark.Set) (int, int) {
	i, j := m.LandmarkIndices()
	return centeredPosition(rotated, lms, i, j)
}

// FaceMask covers the whole face, centered on the face-oval line.
type FaceMask struct{}

func (FaceMask) LandmarkIndices() (int, int) {
	return landmark.FaceOvalRight, landmark.FaceOvalLeft
}

func (FaceMask) Params() geometry.Params {
	return geometry.Params{
		MinDistance:    60,
		MaxDistance:    400,
		WidthFactor:    1.1,
		MinClampWidth:  100,
		MaxClampWidth:  700,
		HeightFactor:   1.4,
		MinClampHeight: 120,
		MaxClampHeight: 800,
	}
}

func (f FaceMask) Position(rotated *image.NRGBA, lms landmark.Set) (int, int) {
	i, j := f.LandmarkIndices()
	return centeredPosition(rotated, lms, i, j)
}

// NewVariant returns the stock variant registered under name, or false if
// the name is unknown.
func NewVariant(name string) (Variant, bool) {
	switch name {
	case "hat":
		return Hat{}, true
	case "glasses":
		return Glasses{}, true
	case "nose":
		return Nose{}, true
	case "mouth":
		return Mouth{}, true
	case "facemask":
		return FaceMask{}, true
	}
	return nil, false
}
