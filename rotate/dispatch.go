package rotate

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// planes describes the plane layout of one frame in capture geometry.
type planes struct {
	lumaSize   int
	width      int
	height     int
	chromaSize int // 0 for greyscale
	chromaW    int
	chromaH    int
	total      int
}

func layoutOf(g Geometry) planes {
	p := planes{
		lumaSize: g.CaptureWidth * g.CaptureHeight,
		width:    g.CaptureWidth,
		height:   g.CaptureHeight,
	}
	if g.Format == FormatPlanar420 {
		p.chromaSize = p.lumaSize / 4
		p.chromaW = g.CaptureWidth / 2
		p.chromaH = g.CaptureHeight / 2
	}
	p.total = p.lumaSize + 2*p.chromaSize
	return p
}

// quarterTurn is the signature shared by RotateClockwise and RotateCounterClockwise.
type quarterTurn func(src, dst []byte, width, height int) error

// Apply rotates frame in place according to state.
//
// Angle 0 is a successful no-op. Angle 180 reverses each plane in place.
// Angles 90 and 270 rotate each plane into the scratch buffer at the same
// offset and copy the whole scratch buffer back over frame. Planes are sliced
// with the capture dimensions; after the call the frame holds a raster with
// the output dimensions. Bytes in frame beyond FrameSize are left untouched.
//
// Returns:
//   - ErrNilState if state is nil
//   - ErrFrameSize if frame is shorter than state.FrameSize()
//   - ErrScratchReleased if a quarter-turn is requested after teardown
//   - ErrInvalidAngle if the angle is not one of 0, 90, 180, 270
func Apply(state *State, frame []byte) error {
	if state == nil {
		return ErrNilState
	}

	g := state.geometry
	switch g.Angle {
	case Angle0:
		return nil
	case Angle90, Angle180, Angle270:
	default:
		logrus.WithFields(logrus.Fields{
			"function": "Apply",
			"angle":    int(g.Angle),
		}).Error("Rotation state holds an invalid angle")
		return fmt.Errorf("%w: %d", ErrInvalidAngle, int(g.Angle))
	}

	p := layoutOf(g)
	if len(frame) < p.total {
		return fmt.Errorf("%w: got %d bytes, need %d", ErrFrameSize, len(frame), p.total)
	}

	logrus.WithFields(logrus.Fields{
		"function":   "Apply",
		"angle":      int(g.Angle),
		"frame_size": p.total,
	}).Debug("Rotating frame")

	switch g.Angle {
	case Angle180:
		return reversePlanes(frame, p)
	case Angle90:
		return state.turnPlanes(frame, p, RotateClockwise)
	default:
		return state.turnPlanes(frame, p, RotateCounterClockwise)
	}
}

func reversePlanes(frame []byte, p planes) error {
	if err := ReverseInPlace(frame[:p.lumaSize]); err != nil {
		return fmt.Errorf("luma plane: %w", err)
	}
	if p.chromaSize == 0 {
		return nil
	}

	u := frame[p.lumaSize : p.lumaSize+p.chromaSize]
	v := frame[p.lumaSize+p.chromaSize : p.total]
	if err := ReverseInPlace(u); err != nil {
		return fmt.Errorf("first chroma plane: %w", err)
	}
	if err := ReverseInPlace(v); err != nil {
		return fmt.Errorf("second chroma plane: %w", err)
	}
	return nil
}

func (s *State) turnPlanes(frame []byte, p planes, turn quarterTurn) error {
	if s.scratch == nil {
		if s.released {
			return ErrScratchReleased
		}
		return fmt.Errorf("%w: no scratch buffer for %d degree rotation", ErrScratchAllocation, int(s.geometry.Angle))
	}

	// Slice both buffers to the frame size so a short scratch fails loudly.
	src := frame[:p.total]
	if len(s.scratch) < p.total {
		return fmt.Errorf("%w: scratch is %d bytes, frame needs %d", ErrExtentSize, len(s.scratch), p.total)
	}
	dst := s.scratch[:p.total]

	if err := turn(src[:p.lumaSize], dst[:p.lumaSize], p.width, p.height); err != nil {
		return fmt.Errorf("luma plane: %w", err)
	}
	if p.chromaSize > 0 {
		uEnd := p.lumaSize + p.chromaSize
		if err := turn(src[p.lumaSize:uEnd], dst[p.lumaSize:uEnd], p.chromaW, p.chromaH); err != nil {
			return fmt.Errorf("first chroma plane: %w", err)
		}
		if err := turn(src[uEnd:p.total], dst[uEnd:p.total], p.chromaW, p.chromaH); err != nil {
			return fmt.Errorf("second chroma plane: %w", err)
		}
	}

	// Output frame size equals capture frame size; only the arrangement changed.
	copy(src, dst)
	return nil
}
