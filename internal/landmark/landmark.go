// Package landmark defines the landmark set consumed by the filter engine
// and the MediaPipe face-mesh index constants used by the stock filters.
package landmark

import (
	"encoding/json"
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r2"
)

// Face-mesh landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/face_landmarker
const (
	RightEyeOuter = 33
	LeftEyeOuter  = 263
	RightTemple   = 127
	LeftTemple    = 356
	RightNostril  = 64
	LeftNostril   = 294
	MouthRight    = 61
	MouthLeft     = 291
	FaceOvalRight = 234
	FaceOvalLeft  = 454

	// MeshLandmarkCount is the number of points produced by the face-mesh
	// detector without iris refinement.
	MeshLandmarkCount = 468
)

// Set is an ordered sequence of 2D landmark points in frame pixel
// coordinates. The indexing scheme is fixed by the external detector;
// the engine only reads it.
type Set []r2.Vec

// In reports whether index i addresses a point in the set.
func (s Set) In(i int) bool {
	return i >= 0 && i < len(s)
}

// LoadJSON reads a landmark set from a JSON file of [x, y] pairs.
// Used by the file-based harness; a live pipeline receives sets directly
// from the detector.
func LoadJSON(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read landmarks file: %w", err)
	}

	var pairs [][2]float64
	if err := json.Unmarshal(data, &pairs); err != nil {
		return nil, fmt.Errorf("failed to parse landmarks JSON: %w", err)
	}

	set := make(Set, len(pairs))
	for i, p := range pairs {
		set[i] = r2.Vec{X: p[0], Y: p[1]}
	}
	return set, nil
}
