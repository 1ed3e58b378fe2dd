// Package video connects capture frames to the rotate package.
//
// The rotate package works on contiguous byte buffers. Capture code in this
// repository handles frames as separate planes:
//
//	frame := &video.VideoFrame{
//	    Width:  640,
//	    Height: 480,
//	    Y:      yPlane,  // Luminance plane (full resolution)
//	    U:      uPlane,  // Chrominance U (half resolution)
//	    V:      vPlane,  // Chrominance V (half resolution)
//	}
//
// PackFrame and UnpackFrame convert between the two representations.
//
// # Rotation Streams
//
// A RotationStream owns the rotation state of one camera. It is created when
// the stream starts and closed when it stops:
//
//	stream, err := video.NewRotationStream(video.StreamConfig{
//	    Angle:  90,
//	    Format: rotate.FormatPlanar420,
//	    Width:  640,
//	    Height: 480,
//	})
//	if err != nil {
//	    return err
//	}
//	defer stream.Close()
//
//	// Encoders and sinks must be sized for the rotated frame.
//	outW, outH := stream.GetOutputSize()
//
//	rotated, err := stream.ProcessFrame(frame)
//
// ProcessRaw rotates a contiguous buffer in place when the capture source
// already delivers packed frames.
//
// # Effect Chains
//
// RotationEffect lets a stream take part in an EffectChain:
//
//	chain := video.NewEffectChain()
//	chain.AddEffect(video.NewRotationEffect(stream))
//	processed, err := chain.Apply(frame)
//
// # Statistics
//
// Each stream counts processed, skipped and failed frames and records
// rotation time. Inject a TimeProvider for deterministic tests:
//
//	stream, err := video.NewRotationStreamWithTimeProvider(cfg, mockTime)
//
// # Thread Safety
//
// Frames for one stream must be submitted from a single goroutine. Stats is
// safe to call from any goroutine. Streams for different cameras are fully
// independent and may run concurrently.
package video
