// Package rotate implements fixed-angle rotation of raw capture frames.
//
// Cameras mounted sideways or upside-down deliver frames that must be turned
// by a multiple of 90 degrees before they reach the rest of the pipeline.
// This package performs that rotation on contiguous planar buffers without
// resampling and with a single scratch allocation per stream.
//
// # Supported Layouts
//
// Two pixel layouts are rotated:
//
//	Greyscale: [Y: w*h]
//	Planar420: [Y: w*h][U: w/2*h/2][V: w/2*h/2]
//
// All other formats are recognized only so they can be rejected. Capture
// dimensions are expected to be multiples of 16, which keeps every plane a
// multiple of 4 bytes long.
//
// # Lifecycle
//
// A stream resolves its geometry once, processes frames, and tears down:
//
//	state, err := rotate.Initialize(90, rotate.FormatPlanar420, 640, 480)
//	if err != nil {
//	    return fmt.Errorf("rotation setup failed: %w", err)
//	}
//	defer rotate.Teardown(state)
//
//	// Downstream stages must use the rotated dimensions (480x640 here).
//	outW, outH := state.GetOutputSize()
//
//	for frame := range frames {
//	    if err := rotate.ProcessFrame(state, frame); err != nil {
//	        return err
//	    }
//	}
//
// # Configuration Errors
//
// A requested angle that is not a multiple of 90, or a pixel format other
// than Greyscale and Planar420, disables rotation. The resolver logs a
// warning and returns a State whose angle is 0; ProcessFrame on such a State
// is a successful no-op. These conditions never surface as errors.
//
// # Transforms
//
// The three primitives work on plain byte extents and know nothing about
// planes or formats:
//
//   - RotateClockwise: quarter-turn into a separate destination
//   - RotateCounterClockwise: quarter-turn into a separate destination
//   - ReverseInPlace: half-turn, word-at-a-time in place
//
// Quarter-turns cannot run in place, so 90 and 270 degree streams rotate each
// plane into the scratch buffer and copy the result back over the frame.
//
// # Thread Safety
//
// A State belongs to exactly one stream and is driven by one goroutine. It
// holds no locks; sharing a State between streams races on the scratch
// buffer. The frame passed to ProcessFrame is mutated in place.
package rotate
