package logger

import (
	"bytes"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// BufferedLogger accumulates log entries in memory and flushes them
// asynchronously, so per-frame logging never stalls the compositing path.
type BufferedLogger struct {
	buffer     bytes.Buffer
	mu         sync.Mutex
	autoFlush  bool
	flushChan  chan struct{}
	stopChan   chan struct{}
	enabled    atomic.Bool
	frameNum   atomic.Uint64
	sampleRate int // 0 = log all, N = log 1 in N frames
}

// NewBufferedLogger creates a new buffered logger.
func NewBufferedLogger(autoFlush bool, sampleRate int) *BufferedLogger {
	bl := &BufferedLogger{
		autoFlush:  autoFlush,
		flushChan:  make(chan struct{}, 100),
		stopChan:   make(chan struct{}),
		sampleRate: sampleRate,
	}
	bl.enabled.Store(true)

	if autoFlush {
		go bl.flusher()
	}

	return bl
}

// FrameLogger provides a per-frame logging context.
type FrameLogger struct {
	parent    *BufferedLogger
	buffer    bytes.Buffer
	shouldLog bool
	frameNum  uint64
}

// StartFrame creates a new frame logger. Returns nil if this frame should
// not be logged (based on sampling); a nil FrameLogger is safe to use.
func (bl *BufferedLogger) StartFrame() *FrameLogger {
	if bl == nil || !bl.enabled.Load() {
		return nil
	}

	frameNum := bl.frameNum.Add(1)

	shouldLog := bl.sampleRate == 0 || (frameNum%uint64(bl.sampleRate) == 0)
	if !shouldLog {
		return nil
	}

	return &FrameLogger{
		parent:    bl,
		shouldLog: shouldLog,
		frameNum:  frameNum,
	}
}

// Printf adds a formatted log entry to the frame buffer.
func (fl *FrameLogger) Printf(format string, args ...interface{}) {
	if fl == nil || !fl.shouldLog {
		return
	}

	timestamp := time.Now().Format("2006/01/02 15:04:05")
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(&fl.buffer, "[%s] [Frame#%d] %s\n", timestamp, fl.frameNum, msg)
}

// Commit flushes the frame logs to the parent buffer.
// Call this AFTER the frame has been handed back to the caller.
func (fl *FrameLogger) Commit() {
	if fl == nil || !fl.shouldLog || fl.buffer.Len() == 0 {
		return
	}

	fl.parent.mu.Lock()
	fl.parent.buffer.Write(fl.buffer.Bytes())
	fl.parent.mu.Unlock()

	if fl.parent.autoFlush {
		select {
		case fl.parent.flushChan <- struct{}{}:
		default:
			// Channel full, flush will happen soon anyway
		}
	}
}

// Flush immediately writes all buffered logs to stdout.
func (bl *BufferedLogger) Flush() {
	bl.mu.Lock()
	defer bl.mu.Unlock()

	if bl.buffer.Len() > 0 {
		log.Print(bl.buffer.String())
		bl.buffer.Reset()
	}
}

// flusher runs in background and periodically flushes logs.
func (bl *BufferedLogger) flusher() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-bl.flushChan:
			bl.Flush()
		case <-ticker.C:
			bl.Flush()
		case <-bl.stopChan:
			bl.Flush() // Final flush
			return
		}
	}
}

// Stop stops the background flusher.
func (bl *BufferedLogger) Stop() {
	close(bl.stopChan)
}

// SetEnabled enables or disables logging.
func (bl *BufferedLogger) SetEnabled(enabled bool) {
	bl.enabled.Store(enabled)
}

func (bl *BufferedLogger) IsEnabled() bool {
	return bl.enabled.Load()
}

// GetStats returns current logging statistics.
func (bl *BufferedLogger) GetStats() map[string]interface{} {
	bl.mu.Lock()
	bufferSize := bl.buffer.Len()
	bl.mu.Unlock()

	return map[string]interface{}{
		"total_frames": bl.frameNum.Load(),
		"buffer_size":  bufferSize,
		"sample_rate":  bl.sampleRate,
		"enabled":      bl.enabled.Load(),
	}
}
