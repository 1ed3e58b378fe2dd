package rotate

import "errors"

// Sentinel errors for rotate package operations.
// These errors enable reliable error classification using errors.Is().

// Setup errors.
var (
	// ErrScratchAllocation indicates the scratch buffer for a quarter-turn
	// stream could not be allocated. The stream cannot be started.
	ErrScratchAllocation = errors.New("scratch buffer allocation failed")
)

// Transform errors.
var (
	// ErrExtentSize indicates an extent whose length does not match the
	// geometry handed to a transform.
	ErrExtentSize = errors.New("invalid extent size")

	// ErrAliasedExtents indicates that source and destination extents share memory.
	ErrAliasedExtents = errors.New("source and destination extents overlap")
)

// Dispatch errors.
var (
	// ErrNilState indicates a frame was dispatched without a rotation state.
	ErrNilState = errors.New("rotation state is nil")

	// ErrInvalidAngle indicates a state whose angle is outside {0, 90, 180, 270}.
	// The resolver never produces one, so this signals corruption upstream.
	ErrInvalidAngle = errors.New("invalid rotation angle")

	// ErrFrameSize indicates a frame buffer smaller than the stream's frame size.
	ErrFrameSize = errors.New("frame buffer too small")

	// ErrScratchReleased indicates a quarter-turn dispatched after teardown.
	ErrScratchReleased = errors.New("scratch buffer already released")
)
