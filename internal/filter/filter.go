// Package filter implements the per-frame placement pipeline shared by all
// filter variants: landmark validation, sizing, rotation and compositing.
package filter

import (
	"image"

	"go-facefilter/internal/assets"
	"go-facefilter/internal/compositing"
	"go-facefilter/internal/geometry"
	"go-facefilter/internal/landmark"
	"go-facefilter/logger"
)

// Variant supplies the three things that legitimately vary per filter
// type: which landmark pair defines the reference line, the sizing
// parameters, and the anchor rule for the rotated asset.
type Variant interface {
	// LandmarkIndices returns the two landmark indices defining the
	// reference line for this filter type.
	LandmarkIndices() (int, int)

	// Params returns the built-in sizing configuration.
	Params() geometry.Params

	// Position returns the top-left anchor at which the rotated asset is
	// composited. It is only called with landmarks that passed validation.
	Position(rotated *image.NRGBA, lms landmark.Set) (x, y int)
}

// Applier is an optional Variant capability: a variant whose placement
// strategy is incompatible with the shared pipeline may take over the
// whole per-frame orchestration. ApplyShared remains available to it.
type Applier interface {
	Apply(f *Filter, frame *image.NRGBA, lms landmark.Set, fl *logger.FrameLogger) *image.NRGBA
}

// Filter binds an asset store to a variant and runs the per-frame
// pipeline. The store's cursor is the only cross-frame state.
type Filter struct {
	name    string
	store   *assets.Store
	variant Variant
	params  geometry.Params
}

// New creates a filter from a loaded store and a variant. A non-nil
// override replaces the variant's built-in sizing parameters.
func New(name string, store *assets.Store, variant Variant, override *geometry.Params) *Filter {
	params := variant.Params()
	if override != nil {
		params = *override
	}
	return &Filter{
		name:    name,
		store:   store,
		variant: variant,
		params:  params,
	}
}

// Name returns the filter's configured name.
func (f *Filter) Name() string {
	return f.name
}

// Store returns the filter's asset store, for asset cycling.
func (f *Filter) Store() *assets.Store {
	return f.store
}

// Params returns the effective sizing parameters.
func (f *Filter) Params() geometry.Params {
	return f.params
}

// Apply overlays the filter's current asset onto frame, placed by the
// given landmark set, and returns the frame. The frame is mutated in
// place. Variants implementing Applier take over the orchestration.
func (f *Filter) Apply(frame *image.NRGBA, lms landmark.Set, fl *logger.FrameLogger) *image.NRGBA {
	if a, ok := f.variant.(Applier); ok {
		return a.Apply(f, frame, lms, fl)
	}
	return f.ApplyShared(frame, lms, fl)
}

// ApplyShared is the default per-frame orchestration. Any validation
// failure is a soft skip: the frame is returned unmodified so a transient
// detector glitch never crashes or corrupts the stream.
func (f *Filter) ApplyShared(frame *image.NRGBA, lms landmark.Set, fl *logger.FrameLogger) *image.NRGBA {
	frameSize := frame.Bounds().Size()

	i, j := f.variant.LandmarkIndices()
	if !lms.In(i) || !lms.In(j) {
		fl.Printf("%s: landmark index out of range (%d, %d vs %d points), skipping", f.name, i, j, len(lms))
		return frame
	}
	p1, p2 := lms[i], lms[j]
	if !geometry.ValidLandmark(p1, frameSize) || !geometry.ValidLandmark(p2, frameSize) {
		fl.Printf("%s: invalid landmark coordinates, skipping", f.name)
		return frame
	}

	angle := geometry.Angle(p1, p2)
	width, height := geometry.TargetSize(geometry.Distance(p1, p2), f.params)

	resized := compositing.Resize(f.store.Current(), width, height)
	rotated := compositing.Rotate(resized, angle)

	x, y := f.variant.Position(rotated, lms)
	if !geometry.ValidPosition(x, y, rotated.Bounds().Size(), frameSize) {
		fl.Printf("%s: degenerate placement (%d, %d), skipping", f.name, x, y)
		return frame
	}

	compositing.Overlay(frame, rotated, x, y)
	return frame
}
