package rotate

import (
	"github.com/sirupsen/logrus"
)

// Geometry is the resolved frame geometry of a stream.
//
// It separates the capture dimensions, which describe the frames the source
// delivers, from the output dimensions, which every downstream stage must
// use. A Geometry with Angle 0 means rotation is disabled.
type Geometry struct {
	Angle         Angle
	Format        PixelFormat
	CaptureWidth  int
	CaptureHeight int
	OutputWidth   int
	OutputHeight  int
	// ScratchSize is the scratch buffer size in bytes, 0 when none is needed.
	ScratchSize int
}

// FrameSize returns the number of bytes in one frame.
// Rotation never changes it, only the way the bytes are arranged.
func (g Geometry) FrameSize() int {
	return g.Format.FrameSize(g.CaptureWidth, g.CaptureHeight)
}

// NeedsScratch reports whether the geometry requires a scratch buffer.
func (g Geometry) NeedsScratch() bool {
	return g.ScratchSize > 0
}

// normalizeAngle maps a multiple of 90 into [0, 360).
func normalizeAngle(degrees int) Angle {
	a := degrees % 360
	if a < 0 {
		a += 360
	}
	return Angle(a)
}

// Resolve computes the rotation geometry for a stream.
//
// The requested angle may have any sign or magnitude. Angles that are not a
// multiple of 90, non-positive capture dimensions and unsupported pixel
// formats disable rotation: a warning is logged and the returned Geometry has Angle 0 and output dimensions equal to
// the capture dimensions.
//
// Parameters:
//   - requestedAngle: Raw angle from configuration, in degrees
//   - captureWidth, captureHeight: Dimensions delivered by the capture source
//   - format: Pixel layout of captured frames
//
// Returns:
//   - Geometry: Normalized angle, output dimensions and scratch size
func Resolve(requestedAngle, captureWidth, captureHeight int, format PixelFormat) Geometry {
	g := Geometry{
		Format:        format,
		CaptureWidth:  captureWidth,
		CaptureHeight: captureHeight,
		OutputWidth:   captureWidth,
		OutputHeight:  captureHeight,
	}

	if requestedAngle%90 != 0 {
		logrus.WithFields(logrus.Fields{
			"function":        "Resolve",
			"requested_angle": requestedAngle,
		}).Warn("Config option \"rotate\" not a multiple of 90, rotation is disabled")
		return g
	}

	g.Angle = normalizeAngle(requestedAngle)
	if g.Angle.IsQuarterTurn() {
		g.OutputWidth, g.OutputHeight = captureHeight, captureWidth
	}

	if g.Angle == Angle0 {
		return g
	}

	if captureWidth <= 0 || captureHeight <= 0 {
		logrus.WithFields(logrus.Fields{
			"function":       "Resolve",
			"capture_width":  captureWidth,
			"capture_height": captureHeight,
		}).Warn("Capture dimensions must be positive, rotation is disabled")
		g.Angle = Angle0
		g.OutputWidth, g.OutputHeight = captureWidth, captureHeight
		return g
	}

	if !format.Supported() {
		logrus.WithFields(logrus.Fields{
			"function":        "Resolve",
			"requested_angle": requestedAngle,
			"pixel_format":    format.String(),
		}).Warn("Unsupported pixel format, rotation is disabled")
		g.Angle = Angle0
		g.OutputWidth, g.OutputHeight = captureWidth, captureHeight
		return g
	}

	if g.Angle.IsQuarterTurn() {
		g.ScratchSize = format.FrameSize(g.OutputWidth, g.OutputHeight)
	}

	logrus.WithFields(logrus.Fields{
		"function":       "Resolve",
		"angle":          int(g.Angle),
		"pixel_format":   format.String(),
		"capture_width":  captureWidth,
		"capture_height": captureHeight,
		"output_width":   g.OutputWidth,
		"output_height":  g.OutputHeight,
		"scratch_size":   g.ScratchSize,
	}).Debug("Rotation geometry resolved")

	return g
}
