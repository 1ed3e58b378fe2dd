package video

import (
	"fmt"

	"github.com/opd-ai/toxrotate/rotate"
)

// VideoFrame represents a video frame with separate Y, U and V planes.
//
// Greyscale frames carry only the Y plane; U and V are nil.
type VideoFrame struct {
	Width   uint16
	Height  uint16
	Y       []byte // Luminance plane
	U       []byte // Chrominance U plane
	V       []byte // Chrominance V plane
	YStride int    // Stride for Y plane
	UStride int    // Stride for U plane
	VStride int    // Stride for V plane
}

// NewVideoFrame allocates a zeroed frame of the given format.
func NewVideoFrame(width, height uint16, format rotate.PixelFormat) *VideoFrame {
	ySize := int(width) * int(height)
	frame := &VideoFrame{
		Width:   width,
		Height:  height,
		Y:       make([]byte, ySize),
		YStride: int(width),
	}
	if format == rotate.FormatPlanar420 {
		uvWidth := int(width) / 2
		uvSize := uvWidth * (int(height) / 2)
		frame.U = make([]byte, uvSize)
		frame.V = make([]byte, uvSize)
		frame.UStride = uvWidth
		frame.VStride = uvWidth
	}
	return frame
}

// validateFrame checks that frame has tightly packed planes large enough for
// its dimensions in the given format.
func validateFrame(frame *VideoFrame, format rotate.PixelFormat) error {
	if frame == nil {
		return fmt.Errorf("video frame cannot be nil")
	}

	if frame.Width == 0 || frame.Height == 0 {
		return fmt.Errorf("invalid frame dimensions: %dx%d", frame.Width, frame.Height)
	}

	expectedYSize := int(frame.Width) * int(frame.Height)
	if len(frame.Y) < expectedYSize {
		return fmt.Errorf("Y plane too small: got %d, expected %d", len(frame.Y), expectedYSize)
	}
	if frame.YStride != 0 && frame.YStride != int(frame.Width) {
		return fmt.Errorf("padded Y plane not supported: stride %d, width %d", frame.YStride, frame.Width)
	}

	if format != rotate.FormatPlanar420 {
		return nil
	}

	expectedUVSize := int(frame.Width/2) * int(frame.Height/2)
	if len(frame.U) < expectedUVSize {
		return fmt.Errorf("U plane too small: got %d, expected %d", len(frame.U), expectedUVSize)
	}
	if len(frame.V) < expectedUVSize {
		return fmt.Errorf("V plane too small: got %d, expected %d", len(frame.V), expectedUVSize)
	}
	return nil
}

// PackFrame writes the planes of frame contiguously into dst in the layout
// the rotate package expects: Y, then U and V for Planar420.
//
// dst is reused when its capacity suffices, otherwise a new buffer is
// allocated. The packed buffer is returned.
func PackFrame(frame *VideoFrame, format rotate.PixelFormat, dst []byte) ([]byte, error) {
	if err := validateFrame(frame, format); err != nil {
		return nil, err
	}

	ySize := int(frame.Width) * int(frame.Height)
	uvSize := 0
	if format == rotate.FormatPlanar420 {
		uvSize = int(frame.Width/2) * int(frame.Height/2)
	}

	total := ySize + 2*uvSize
	if cap(dst) < total {
		dst = make([]byte, total)
	}
	dst = dst[:total]

	offset := copy(dst, frame.Y[:ySize])
	if uvSize > 0 {
		offset += copy(dst[offset:], frame.U[:uvSize])
		copy(dst[offset:], frame.V[:uvSize])
	}
	return dst, nil
}

// UnpackFrame splits a contiguous buffer back into a new VideoFrame with the
// given dimensions. The planes are copies; buf may be reused afterwards.
func UnpackFrame(buf []byte, width, height uint16, format rotate.PixelFormat) (*VideoFrame, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("invalid frame dimensions: %dx%d", width, height)
	}

	expected := format.FrameSize(int(width), int(height))
	if expected == 0 {
		return nil, fmt.Errorf("cannot unpack pixel format %s", format)
	}
	if len(buf) != expected {
		return nil, fmt.Errorf("invalid data size: expected %d, got %d", expected, len(buf))
	}

	frame := NewVideoFrame(width, height, format)
	offset := copy(frame.Y, buf)
	if format == rotate.FormatPlanar420 {
		offset += copy(frame.U, buf[offset:])
		copy(frame.V, buf[offset:])
	}
	return frame, nil
}

// copyFrame creates a deep copy of a video frame.
func copyFrame(frame *VideoFrame) *VideoFrame {
	return &VideoFrame{
		Width:   frame.Width,
		Height:  frame.Height,
		YStride: frame.YStride,
		UStride: frame.UStride,
		VStride: frame.VStride,
		Y:       append([]byte(nil), frame.Y...),
		U:       append([]byte(nil), frame.U...),
		V:       append([]byte(nil), frame.V...),
	}
}
