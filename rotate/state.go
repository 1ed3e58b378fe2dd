package rotate

import (
	"github.com/sirupsen/logrus"
)

// State is the per-stream rotation record.
//
// It is created once when a stream starts and torn down once when it stops.
// Apart from the contents of its scratch buffer, which are overwritten on
// every quarter-turn frame, it never changes. A State must not be shared
// between streams.
type State struct {
	geometry Geometry
	scratch  []byte
	released bool
}

// Initialize resolves the geometry for a stream and allocates its scratch
// buffer on the heap. See InitializeWithAllocator.
func Initialize(requestedAngle int, format PixelFormat, captureWidth, captureHeight int) (*State, error) {
	return InitializeWithAllocator(HeapAllocator{}, requestedAngle, format, captureWidth, captureHeight)
}

// InitializeWithAllocator resolves the geometry for a stream and obtains its
// scratch buffer from alloc.
//
// Configuration problems (angle not a multiple of 90, unsupported format)
// disable rotation and are only logged. The returned error is non-nil only
// when the scratch buffer could not be allocated; it wraps
// ErrScratchAllocation and no State is returned.
func InitializeWithAllocator(alloc Allocator, requestedAngle int, format PixelFormat, captureWidth, captureHeight int) (*State, error) {
	g := Resolve(requestedAngle, captureWidth, captureHeight, format)

	scratch, err := acquire(alloc, g)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function":     "InitializeWithAllocator",
			"angle":        int(g.Angle),
			"scratch_size": g.ScratchSize,
			"error":        err.Error(),
		}).Error("Failed to allocate rotation scratch buffer")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function":      "InitializeWithAllocator",
		"angle":         int(g.Angle),
		"pixel_format":  g.Format.String(),
		"output_width":  g.OutputWidth,
		"output_height": g.OutputHeight,
		"scratch_size":  g.ScratchSize,
	}).Info("Rotation state initialized")

	return &State{geometry: g, scratch: scratch}, nil
}

// Teardown releases the scratch buffer of state. It is safe to call on a nil
// State, on a State without a buffer, and more than once.
func Teardown(state *State) {
	if state == nil {
		return
	}

	logrus.WithFields(logrus.Fields{
		"function":    "Teardown",
		"angle":       int(state.geometry.Angle),
		"had_scratch": state.scratch != nil,
	}).Debug("Releasing rotation state")

	state.Release()
}

// ProcessFrame rotates one captured frame in place. See Apply.
func ProcessFrame(state *State, frame []byte) error {
	return Apply(state, frame)
}

// Geometry returns the resolved geometry.
func (s *State) Geometry() Geometry {
	return s.geometry
}

// Angle returns the normalized rotation angle. Zero means disabled.
func (s *State) Angle() Angle {
	return s.geometry.Angle
}

// Format returns the pixel format of the stream.
func (s *State) Format() PixelFormat {
	return s.geometry.Format
}

// Enabled reports whether frames are actually rotated.
func (s *State) Enabled() bool {
	return s.geometry.Angle != Angle0
}

// GetCaptureSize returns the dimensions of frames as captured.
func (s *State) GetCaptureSize() (width, height int) {
	return s.geometry.CaptureWidth, s.geometry.CaptureHeight
}

// GetOutputSize returns the dimensions of frames after rotation.
func (s *State) GetOutputSize() (width, height int) {
	return s.geometry.OutputWidth, s.geometry.OutputHeight
}

// FrameSize returns the number of bytes in one frame.
func (s *State) FrameSize() int {
	return s.geometry.FrameSize()
}
