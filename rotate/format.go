package rotate

import "fmt"

// PixelFormat identifies the memory layout of a capture frame.
type PixelFormat int

const (
	// FormatUnknown is an unrecognized format identifier.
	FormatUnknown PixelFormat = iota
	// FormatGreyscale is a single 8-bit luma plane.
	FormatGreyscale
	// FormatPlanar420 is a full-resolution luma plane followed by two
	// half-width, half-height chroma planes.
	FormatPlanar420
	// FormatRGB24 is packed 24-bit RGB. Not rotatable.
	FormatRGB24
	// FormatYUYV is packed 4:2:2. Not rotatable.
	FormatYUYV
	// FormatMJPEG is a compressed stream. Not rotatable.
	FormatMJPEG
)

// String returns the format name used in logs and configuration.
func (f PixelFormat) String() string {
	switch f {
	case FormatGreyscale:
		return "grey"
	case FormatPlanar420:
		return "yuv420p"
	case FormatRGB24:
		return "rgb24"
	case FormatYUYV:
		return "yuyv"
	case FormatMJPEG:
		return "mjpeg"
	default:
		return fmt.Sprintf("unknown(%d)", int(f))
	}
}

// Supported reports whether frames in this format can be rotated.
func (f PixelFormat) Supported() bool {
	return f == FormatGreyscale || f == FormatPlanar420
}

// FrameSize returns the size in bytes of one width x height frame.
// It returns 0 for formats that cannot be rotated.
func (f PixelFormat) FrameSize(width, height int) int {
	switch f {
	case FormatGreyscale:
		return width * height
	case FormatPlanar420:
		return width * height * 3 / 2
	default:
		return 0
	}
}

// Angle is a rotation in degrees, clockwise.
type Angle int

const (
	// Angle0 disables rotation.
	Angle0   Angle = 0
	// Angle90 turns the frame a quarter clockwise, swapping width and height.
	Angle90  Angle = 90
	// Angle180 turns the frame upside down in place.
	Angle180 Angle = 180
	// Angle270 turns the frame a quarter counterclockwise, swapping width
	// and height.
	Angle270 Angle = 270
)

// IsQuarterTurn reports whether the angle transposes width and height.
func (a Angle) IsQuarterTurn() bool {
	return a == Angle90 || a == Angle270
}
