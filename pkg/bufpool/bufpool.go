// Package bufpool provides a tiered buffer pool for efficient memory reuse.
//
// The pool supplies the backing storage for the opaque key/handle copies
// embedded in upcall task descriptors. Each task takes one buffer at
// packaging time and returns it from the worker after the completion
// callback, so a hot dispatch path recycles a small set of buffers instead
// of allocating per call.
//
// Three size tiers balance memory efficiency with reuse:
//   - Small buffers (256B): typical object keys and file handles
//   - Medium buffers (4KB): oversized handles and composite keys
//   - Large buffers (64KB): pathological callers
//
// Buffers larger than the large tier are allocated directly and not pooled.
//
// All operations are thread-safe via sync.Pool.
package bufpool

import (
	"sync"
)

// Default buffer size classes.
const (
	// DefaultSmallSize covers typical keys and handles (256B)
	DefaultSmallSize = 256

	// DefaultMediumSize covers oversized handles (4KB)
	DefaultMediumSize = 4 << 10

	// DefaultLargeSize is the largest pooled class (64KB)
	DefaultLargeSize = 64 << 10
)

// Pool manages byte slice pools organized by size class. It selects the
// appropriate class for a requested size and falls back to direct
// allocation for oversized requests.
type Pool struct {
	small      sync.Pool
	medium     sync.Pool
	large      sync.Pool
	smallSize  int
	mediumSize int
	largeSize  int
}

// Config holds configuration for creating a custom buffer pool.
type Config struct {
	SmallSize  int
	MediumSize int
	LargeSize  int
}

// NewPool creates a new buffer pool. Zero or missing config values fall
// back to the defaults.
func NewPool(cfg *Config) *Pool {
	p := &Pool{
		smallSize:  DefaultSmallSize,
		mediumSize: DefaultMediumSize,
		largeSize:  DefaultLargeSize,
	}
	if cfg != nil {
		if cfg.SmallSize > 0 {
			p.smallSize = cfg.SmallSize
		}
		if cfg.MediumSize > 0 {
			p.mediumSize = cfg.MediumSize
		}
		if cfg.LargeSize > 0 {
			p.largeSize = cfg.LargeSize
		}
	}

	p.small = sync.Pool{
		New: func() any {
			buf := make([]byte, p.smallSize)
			return &buf
		},
	}
	p.medium = sync.Pool{
		New: func() any {
			buf := make([]byte, p.mediumSize)
			return &buf
		},
	}
	p.large = sync.Pool{
		New: func() any {
			buf := make([]byte, p.largeSize)
			return &buf
		},
	}

	return p
}

// Get returns a byte slice of exactly the requested length, backed by a
// pooled buffer whose capacity may exceed it. The caller must call Put when
// finished. Sizes above the large tier are allocated directly and will not
// be pooled.
func (p *Pool) Get(size int) []byte {
	var bufPtr *[]byte

	switch {
	case size <= p.smallSize:
		bufPtr = p.small.Get().(*[]byte)
	case size <= p.mediumSize:
		bufPtr = p.medium.Get().(*[]byte)
	case size <= p.largeSize:
		bufPtr = p.large.Get().(*[]byte)
	default:
		return make([]byte, size)
	}

	buf := *bufPtr
	return buf[:size]
}

// Put returns a buffer to the pool for reuse. The buffer must have come
// from Get and must not be used after Put. Buffers whose capacity matches
// no size class are left to the garbage collector.
func (p *Pool) Put(buf []byte) {
	if buf == nil {
		return
	}

	switch cap(buf) {
	case p.smallSize:
		fullBuf := buf[:cap(buf)]
		p.small.Put(&fullBuf)
	case p.mediumSize:
		fullBuf := buf[:cap(buf)]
		p.medium.Put(&fullBuf)
	case p.largeSize:
		fullBuf := buf[:cap(buf)]
		p.large.Put(&fullBuf)
	}
}

// globalPool is the package-level pool shared by all task packaging.
var globalPool = NewPool(nil)

// Get returns a byte slice of the requested length from the global pool.
//
//	buf := bufpool.Get(size)
//	defer bufpool.Put(buf)
func Get(size int) []byte {
	return globalPool.Get(size)
}

// Put returns a buffer to the global pool.
func Put(buf []byte) {
	globalPool.Put(buf)
}
