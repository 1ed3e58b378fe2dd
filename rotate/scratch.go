package rotate

import (
	"errors"
	"fmt"
)

// MaxScratchSize is the largest scratch buffer HeapAllocator hands out (64 MiB).
// An 8K Planar420 frame needs about 50 MiB.
const MaxScratchSize = 64 * 1024 * 1024

// Allocator provides the memory for a stream's scratch buffer.
type Allocator interface {
	// Allocate returns a zeroed buffer of exactly size bytes.
	Allocate(size int) ([]byte, error)
}

// HeapAllocator allocates scratch buffers on the Go heap.
type HeapAllocator struct {
	// Limit caps the allocation size. Zero means MaxScratchSize.
	Limit int
}

// Allocate returns a new buffer of size bytes.
func (h HeapAllocator) Allocate(size int) ([]byte, error) {
	limit := h.Limit
	if limit <= 0 {
		limit = MaxScratchSize
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: non-positive size %d", ErrScratchAllocation, size)
	}
	if size > limit {
		return nil, fmt.Errorf("%w: size %d exceeds limit %d", ErrScratchAllocation, size, limit)
	}
	return make([]byte, size), nil
}

// acquire obtains the scratch buffer for g, or nil when g needs none.
func acquire(alloc Allocator, g Geometry) ([]byte, error) {
	if !g.NeedsScratch() {
		return nil, nil
	}

	buf, err := alloc.Allocate(g.ScratchSize)
	if err != nil {
		if !errors.Is(err, ErrScratchAllocation) {
			err = fmt.Errorf("%w: %v", ErrScratchAllocation, err)
		}
		return nil, err
	}
	if len(buf) != g.ScratchSize {
		return nil, fmt.Errorf("%w: allocator returned %d bytes, want %d",
			ErrScratchAllocation, len(buf), g.ScratchSize)
	}
	return buf, nil
}

// Release frees the scratch buffer. It is safe to call more than once and
// on a State that never owned a buffer.
func (s *State) Release() {
	if s == nil {
		return
	}
	s.scratch = nil
	s.released = true
}

// HasScratch reports whether the State currently owns a scratch buffer.
func (s *State) HasScratch() bool {
	return s != nil && s.scratch != nil
}
