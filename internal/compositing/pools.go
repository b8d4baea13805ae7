package compositing

import (
	"bytes"
	"sync"
)

// BufferPool provides reusable byte buffers for frame encoding, so the
// per-frame encode path does not allocate a fresh buffer every tick.
var BufferPool = sync.Pool{
	New: func() interface{} {
		return new(bytes.Buffer)
	},
}
