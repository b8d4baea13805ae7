// Package assets loads and holds the transparency-bearing images a filter
// cycles through, with a mutexed current-index cursor.
package assets

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// ErrNoAssets indicates a directory yielded no decodable images.
var ErrNoAssets = errors.New("no decodable assets in directory")

// Store holds the decoded assets for one filter and the index of the
// currently selected one. The asset buffers are immutable after load and
// safe to share read-only across goroutines; the index cursor is guarded
// by a mutex so cycling from a control goroutine is safe.
type Store struct {
	assets []*image.NRGBA

	mu      sync.Mutex
	current int

	memoryBytes int64
	loadedAt    time.Time
}

// Load decodes every image file in dir into a Store, in lexicographic
// filename order. Sources without an alpha channel (JPEG) get a fully
// opaque one synthesized by the NRGBA conversion.
//
// Load policy: files that fail to decode are logged and skipped; the load
// only fails if the directory is missing or unreadable, or if zero files
// decode successfully. A transient bad file must not take down a filter
// whose other assets are fine.
func Load(dir string) (*Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read assets directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".png", ".jpg", ".jpeg":
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	store := &Store{loadedAt: time.Now()}
	for _, name := range names {
		path := filepath.Join(dir, name)
		img, err := decodeNRGBA(path)
		if err != nil {
			log.Printf("⚠️  Skipping asset %s: %v", path, err)
			continue
		}
		store.assets = append(store.assets, img)
		store.memoryBytes += int64(len(img.Pix))
	}

	if len(store.assets) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoAssets, dir)
	}

	return store, nil
}

func decodeNRGBA(path string) (*image.NRGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode: %w", err)
	}

	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Bounds().Min == (image.Point{}) {
		return nrgba, nil
	}
	b := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	return nrgba, nil
}

// Count returns the number of loaded assets.
func (s *Store) Count() int {
	return len(s.assets)
}

// MemoryBytes returns the total decoded size of the loaded assets.
func (s *Store) MemoryBytes() int64 {
	return s.memoryBytes
}

// LoadedAt returns the time the store's assets were loaded.
func (s *Store) LoadedAt() time.Time {
	return s.loadedAt
}

// Current returns the currently selected asset. The returned buffer is
// owned by the store and must not be mutated; derive a fresh buffer
// (resize, rotate) before drawing on it.
func (s *Store) Current() *image.NRGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assets[s.current]
}

// CurrentIndex returns the index of the currently selected asset.
func (s *Store) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SetIndex selects asset k, normalized modulo Count. Any integer is valid:
// SetIndex(k) is equivalent to SetIndex(k mod Count) for negative k too.
func (s *Store) SetIndex(k int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = normalize(k, len(s.assets))
}

// Next advances the cursor to the next asset, wrapping around.
func (s *Store) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = normalize(s.current+1, len(s.assets))
}

// Prev moves the cursor to the previous asset, wrapping around.
func (s *Store) Prev() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = normalize(s.current-1, len(s.assets))
}

// normalize maps any integer onto [0, n). An empty store cannot be built
// through Load, so n == 0 here is a programmer error and fails loudly.
func normalize(k, n int) int {
	if n == 0 {
		panic("assets: index operation on empty store")
	}
	return ((k % n) + n) % n
}
