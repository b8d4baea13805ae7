// Package pipeline composes the configured filters into the per-frame
// processing path and owns the asset-cycling controls.
package pipeline

import (
	"fmt"
	"image"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-facefilter/config"
	"go-facefilter/internal/assets"
	"go-facefilter/internal/filter"
	"go-facefilter/internal/landmark"
	"go-facefilter/logger"
)

// Pipeline applies an ordered set of filters to each frame. Frame
// processing is synchronous; concurrent callers must own their own
// destination frame buffers. The asset cursors and the mask-mode switch
// are the only mutable cross-frame state, guarded for use from a separate
// control goroutine.
type Pipeline struct {
	id       uuid.UUID
	log      *logger.BufferedLogger
	logSkips bool

	mu       sync.Mutex
	filters  map[string]*filter.Filter
	order    []string
	maskMode bool

	frames    uint64
	totalTime time.Duration
}

// Stats is a snapshot of pipeline counters.
type Stats struct {
	Frames       uint64
	AvgFrameTime time.Duration
	AssetCounts  map[string]int
	AssetMemory  map[string]int64
	AssetsLoaded map[string]time.Time
}

// New builds a pipeline from the configured filters. Asset loading
// happens here; a filter whose directory cannot be loaded fails
// construction.
func New(cfg *config.Config, log *logger.BufferedLogger) (*Pipeline, error) {
	p := &Pipeline{
		id:       uuid.New(),
		log:      log,
		logSkips: cfg.Logging.LogSkips,
		filters:  make(map[string]*filter.Filter, len(cfg.Filters)),
	}

	for name, filterCfg := range cfg.Filters {
		variant, ok := filter.NewVariant(name)
		if !ok {
			return nil, fmt.Errorf("unknown filter '%s'", name)
		}
		store, err := assets.Load(filterCfg.AssetsDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load assets for filter '%s': %w", name, err)
		}
		p.filters[name] = filter.New(name, store, variant, filterCfg.Params)
		p.order = append(p.order, name)
	}

	// Deterministic application order regardless of yaml map iteration.
	sort.Strings(p.order)

	return p, nil
}

// ID returns the pipeline instance identifier, used to correlate log
// output when several pipelines run in one process.
func (p *Pipeline) ID() uuid.UUID {
	return p.id
}

// Process applies every active filter for every detected face, in order,
// mutating frame in place. The frame is returned for convenience. Frames
// with no detected faces pass through untouched.
func (p *Pipeline) Process(frame *image.NRGBA, faces []landmark.Set) *image.NRGBA {
	start := time.Now()
	fl := p.log.StartFrame()

	// Soft skips (invalid landmarks, degenerate placements) are only
	// reported through the filter logger when log_skips is on; the
	// per-frame summary below is logged either way.
	filterLog := fl
	if !p.logSkips {
		filterLog = nil
	}

	active := p.activeFilters()
	for _, face := range faces {
		for _, f := range active {
			frame = f.Apply(frame, face, filterLog)
		}
	}

	elapsed := time.Since(start)
	p.mu.Lock()
	p.frames++
	p.totalTime += elapsed
	p.mu.Unlock()

	fl.Printf("pipeline %s: %d face(s), %d filter(s), %v", p.id, len(faces), len(active), elapsed)
	fl.Commit()

	return frame
}

// activeFilters returns the filters to run this frame in application
// order: the face mask alone in mask mode, everything else otherwise.
func (p *Pipeline) activeFilters() []*filter.Filter {
	p.mu.Lock()
	defer p.mu.Unlock()

	active := make([]*filter.Filter, 0, len(p.order))
	for _, name := range p.order {
		isMask := name == "facemask"
		if p.maskMode && !isMask {
			continue
		}
		if !p.maskMode && isMask {
			continue
		}
		active = append(active, p.filters[name])
	}
	return active
}

// Cycle advances the named filter's asset cursor by delta (negative for
// previous). Unknown names are rejected; cycling is a control-plane
// operation and a typo should surface, unlike per-frame glitches.
func (p *Pipeline) Cycle(name string, delta int) error {
	p.mu.Lock()
	f, ok := p.filters[name]
	p.mu.Unlock()
	if !ok {
		return fmt.Errorf("unknown filter '%s'", name)
	}
	store := f.Store()
	store.SetIndex(store.CurrentIndex() + delta)
	return nil
}

// SetMaskMode switches between the regular filter set and the face mask.
// A no-op if no facemask filter is configured and maskMode is requested.
func (p *Pipeline) SetMaskMode(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if on {
		if _, ok := p.filters["facemask"]; !ok {
			return
		}
	}
	p.maskMode = on
}

// MaskMode reports whether the pipeline is in mask mode.
func (p *Pipeline) MaskMode() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.maskMode
}

// Stats returns a snapshot of the pipeline counters.
func (p *Pipeline) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := Stats{
		Frames:       p.frames,
		AssetCounts:  make(map[string]int, len(p.filters)),
		AssetMemory:  make(map[string]int64, len(p.filters)),
		AssetsLoaded: make(map[string]time.Time, len(p.filters)),
	}
	if p.frames > 0 {
		s.AvgFrameTime = p.totalTime / time.Duration(p.frames)
	}
	for name, f := range p.filters {
		store := f.Store()
		s.AssetCounts[name] = store.Count()
		s.AssetMemory[name] = store.MemoryBytes()
		s.AssetsLoaded[name] = store.LoadedAt()
	}
	return s
}
