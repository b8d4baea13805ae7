// Package geometry computes the placement of an asset from two reference
// landmarks: rotation angle, target size and placement sanity checks.
package geometry

import (
	"fmt"
	"image"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Params controls how the raw inter-landmark distance is converted into
// asset dimensions. The distance is clamped to [MinDistance, MaxDistance]
// before scaling, and each computed dimension is clamped again to its
// absolute pixel bounds. The double clamp keeps noisy or extreme detections
// from producing near-zero or runaway overlay sizes.
type Params struct {
	MinDistance    float64 `yaml:"min_distance"`
	MaxDistance    float64 `yaml:"max_distance"`
	WidthFactor    float64 `yaml:"width_factor"`
	MinClampWidth  int     `yaml:"min_clamp_width"`
	MaxClampWidth  int     `yaml:"max_clamp_width"`
	HeightFactor   float64 `yaml:"height_factor"`
	MinClampHeight int     `yaml:"min_clamp_height"`
	MaxClampHeight int     `yaml:"max_clamp_height"`
}

// Validate checks the Params invariants: ordered bounds, nothing negative.
func (p Params) Validate() error {
	if p.MinDistance < 0 || p.MaxDistance < 0 {
		return fmt.Errorf("distance bounds must be non-negative, got [%v, %v]", p.MinDistance, p.MaxDistance)
	}
	if p.MinDistance > p.MaxDistance {
		return fmt.Errorf("min_distance %v exceeds max_distance %v", p.MinDistance, p.MaxDistance)
	}
	if p.MinClampWidth < 0 || p.MinClampHeight < 0 {
		return fmt.Errorf("clamp bounds must be non-negative")
	}
	if p.MinClampWidth > p.MaxClampWidth {
		return fmt.Errorf("min_clamp_width %d exceeds max_clamp_width %d", p.MinClampWidth, p.MaxClampWidth)
	}
	if p.MinClampHeight > p.MaxClampHeight {
		return fmt.Errorf("min_clamp_height %d exceeds max_clamp_height %d", p.MinClampHeight, p.MaxClampHeight)
	}
	return nil
}

// Distance returns the Euclidean distance between two landmarks.
func Distance(p1, p2 r2.Vec) float64 {
	return r2.Norm(r2.Sub(p2, p1))
}

// Angle returns the angle in degrees of the line from p1 to p2 relative to
// the horizontal axis, in image coordinates (y grows downward). A positive
// angle means the line is rotated clockwise on screen from the +x axis.
// Rotate applies the same convention, so rotating a horizontally authored
// asset by Angle(p1, p2) aligns it with the landmark line.
func Angle(p1, p2 r2.Vec) float64 {
	return math.Atan2(p2.Y-p1.Y, p2.X-p1.X) * 180 / math.Pi
}

// TargetSize converts an inter-landmark distance into asset dimensions.
// The distance is clamped (not rejected) to the params' distance window,
// scaled by the width/height factors, and each result is clamped to its
// absolute pixel bounds.
func TargetSize(distance float64, p Params) (width, height int) {
	d := clampFloat(distance, p.MinDistance, p.MaxDistance)
	width = clampInt(int(math.Round(d*p.WidthFactor)), p.MinClampWidth, p.MaxClampWidth)
	height = clampInt(int(math.Round(d*p.HeightFactor)), p.MinClampHeight, p.MaxClampHeight)
	return width, height
}

// validMargin is the fraction of a frame dimension a landmark may lie
// outside the frame and still be accepted. Detectors legitimately place
// points slightly past frame edges; anything further out is garbage.
const validMargin = 0.5

// ValidLandmark reports whether a landmark has finite coordinates and lies
// within a generous margin of the frame. Used to reject corrupt detector
// output before committing to placement math.
func ValidLandmark(p r2.Vec, frame image.Point) bool {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
		return false
	}
	mx := validMargin * float64(frame.X)
	my := validMargin * float64(frame.Y)
	return p.X >= -mx && p.X <= float64(frame.X)+mx &&
		p.Y >= -my && p.Y <= float64(frame.Y)+my
}

// ValidPosition reports whether placing an asset of the given size with its
// top-left corner at (x, y) is sane: the asset rectangle must intersect the
// frame expanded by the asset size in every direction. Partial off-frame
// placement is valid and expected; this only rejects placements thrown
// wildly off by landmark glitches or overflow.
func ValidPosition(x, y int, assetSize, frame image.Point) bool {
	if assetSize.X <= 0 || assetSize.Y <= 0 {
		return false
	}
	return x > -2*assetSize.X && x < frame.X+assetSize.X &&
		y > -2*assetSize.Y && y < frame.Y+assetSize.Y
}

// Midpoint returns the midpoint of the segment p1-p2.
func Midpoint(p1, p2 r2.Vec) r2.Vec {
	return r2.Scale(0.5, r2.Add(p1, p2))
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
