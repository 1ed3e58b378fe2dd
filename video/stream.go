package video

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/toxrotate/config"
	"github.com/opd-ai/toxrotate/rotate"
)

var (
	// ErrStreamClosed indicates a frame submitted after Close.
	ErrStreamClosed = errors.New("rotation stream is closed")

	// ErrFrameMismatch indicates a frame whose dimensions differ from the
	// stream's capture dimensions.
	ErrFrameMismatch = errors.New("frame does not match capture geometry")
)

// StreamConfig describes one capture stream.
type StreamConfig struct {
	// Angle is the raw requested rotation in degrees.
	Angle  int
	Format rotate.PixelFormat
	Width  uint16
	Height uint16
}

// StreamConfigFromCamera converts a loaded camera configuration.
func StreamConfigFromCamera(cam config.Camera) (StreamConfig, error) {
	if cam.Width <= 0 || cam.Width > math.MaxUint16 || cam.Height <= 0 || cam.Height > math.MaxUint16 {
		return StreamConfig{}, fmt.Errorf("%w: %dx%d", config.ErrInvalidDimensions, cam.Width, cam.Height)
	}
	return StreamConfig{
		Angle:  cam.Rotate,
		Format: cam.PixelFormat(),
		Width:  uint16(cam.Width),
		Height: uint16(cam.Height),
	}, nil
}

// StreamStats contains per-stream processing statistics.
type StreamStats struct {
	FramesProcessed uint64 // Frames rotated successfully
	FramesSkipped   uint64 // Frames passed through because rotation is disabled
	FramesFailed    uint64
	LastDuration    time.Duration
	TotalDuration   time.Duration
	LastFrameTime   time.Time
}

// AverageDuration returns the mean rotation time of processed frames.
func (s StreamStats) AverageDuration() time.Duration {
	if s.FramesProcessed == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.FramesProcessed)
}

// RotationStream owns the rotation state of one capture stream.
//
// Frames must be submitted from a single goroutine. Stats may be read
// concurrently.
type RotationStream struct {
	cfg          StreamConfig
	state        *rotate.State
	packed       []byte // Contiguous frame buffer reused across frames
	timeProvider TimeProvider
	closed       bool

	statsMu sync.RWMutex
	stats   StreamStats
}

// NewRotationStream creates a stream and resolves its rotation geometry.
//
// An unusable angle or pixel format yields a stream that passes frames
// through unchanged. An error is returned only if the scratch buffer cannot
// be allocated.
func NewRotationStream(cfg StreamConfig) (*RotationStream, error) {
	return NewRotationStreamWithTimeProvider(cfg, DefaultTimeProvider{})
}

// NewRotationStreamWithTimeProvider creates a stream with a custom time
// source for its statistics.
func NewRotationStreamWithTimeProvider(cfg StreamConfig, tp TimeProvider) (*RotationStream, error) {
	if tp == nil {
		tp = DefaultTimeProvider{}
	}

	state, err := rotate.Initialize(cfg.Angle, cfg.Format, int(cfg.Width), int(cfg.Height))
	if err != nil {
		return nil, fmt.Errorf("rotation stream setup failed: %w", err)
	}

	s := &RotationStream{
		cfg:          cfg,
		state:        state,
		timeProvider: tp,
	}
	if state.Enabled() {
		s.packed = make([]byte, state.FrameSize())
	}

	outW, outH := s.GetOutputSize()
	logrus.WithFields(logrus.Fields{
		"function":      "NewRotationStream",
		"angle":         int(state.Angle()),
		"pixel_format":  cfg.Format.String(),
		"width":         cfg.Width,
		"height":        cfg.Height,
		"output_width":  outW,
		"output_height": outH,
	}).Info("Rotation stream created")

	return s, nil
}

// GetOutputSize returns the frame dimensions downstream stages receive.
func (s *RotationStream) GetOutputSize() (width, height uint16) {
	w, h := s.state.GetOutputSize()
	return uint16(w), uint16(h)
}

// Angle returns the effective rotation angle; 0 when rotation is disabled.
func (s *RotationStream) Angle() rotate.Angle {
	return s.state.Angle()
}

// Enabled reports whether the stream rotates frames.
func (s *RotationStream) Enabled() bool {
	return s.state.Enabled()
}

// ProcessFrame rotates frame and returns the result as a new frame with the
// output dimensions. The input frame is not modified. When rotation is
// disabled the input frame itself is returned.
func (s *RotationStream) ProcessFrame(frame *VideoFrame) (*VideoFrame, error) {
	if s.closed {
		return nil, ErrStreamClosed
	}
	if err := validateFrame(frame, s.cfg.Format); err != nil {
		s.recordFailure()
		return nil, err
	}
	if frame.Width != s.cfg.Width || frame.Height != s.cfg.Height {
		s.recordFailure()
		return nil, fmt.Errorf("%w: expected %dx%d, got %dx%d",
			ErrFrameMismatch, s.cfg.Width, s.cfg.Height, frame.Width, frame.Height)
	}

	if !s.state.Enabled() {
		s.recordSkip()
		return frame, nil
	}

	start := s.timeProvider.Now()

	packed, err := PackFrame(frame, s.cfg.Format, s.packed)
	if err != nil {
		s.recordFailure()
		return nil, err
	}
	s.packed = packed

	if err := rotate.ProcessFrame(s.state, s.packed); err != nil {
		s.logFailure("ProcessFrame", err)
		s.recordFailure()
		return nil, fmt.Errorf("frame rotation failed: %w", err)
	}

	outW, outH := s.GetOutputSize()
	result, err := UnpackFrame(s.packed, outW, outH, s.cfg.Format)
	if err != nil {
		s.recordFailure()
		return nil, err
	}

	s.recordSuccess(start)
	return result, nil
}

// ProcessRaw rotates a contiguous frame buffer in place.
func (s *RotationStream) ProcessRaw(buf []byte) error {
	if s.closed {
		return ErrStreamClosed
	}
	if !s.state.Enabled() {
		s.recordSkip()
		return nil
	}

	start := s.timeProvider.Now()
	if err := rotate.ProcessFrame(s.state, buf); err != nil {
		s.logFailure("ProcessRaw", err)
		s.recordFailure()
		return fmt.Errorf("frame rotation failed: %w", err)
	}
	s.recordSuccess(start)
	return nil
}

// Stats returns a snapshot of the stream statistics.
func (s *RotationStream) Stats() StreamStats {
	s.statsMu.RLock()
	defer s.statsMu.RUnlock()
	return s.stats
}

// Close tears down the rotation state. It is safe to call more than once.
func (s *RotationStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	rotate.Teardown(s.state)
	s.packed = nil

	stats := s.Stats()
	logrus.WithFields(logrus.Fields{
		"function":         "RotationStream.Close",
		"frames_processed": stats.FramesProcessed,
		"frames_skipped":   stats.FramesSkipped,
		"frames_failed":    stats.FramesFailed,
		"average_duration": stats.AverageDuration(),
	}).Info("Rotation stream closed")

	return nil
}

func (s *RotationStream) logFailure(function string, err error) {
	logrus.WithFields(logrus.Fields{
		"function": "RotationStream." + function,
		"angle":    int(s.state.Angle()),
		"error":    err.Error(),
	}).Error("Frame rotation failed")
}

func (s *RotationStream) recordSuccess(start time.Time) {
	elapsed := s.timeProvider.Since(start)

	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	s.stats.FramesProcessed++
	s.stats.LastDuration = elapsed
	s.stats.TotalDuration += elapsed
	s.stats.LastFrameTime = start
}

func (s *RotationStream) recordSkip() {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	s.stats.FramesSkipped++
}

func (s *RotationStream) recordFailure() {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	s.stats.FramesFailed++
}
