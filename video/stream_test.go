package video

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/toxrotate/config"
	"github.com/opd-ai/toxrotate/rotate"
)

// MockTimeProvider advances by a fixed step on every Since call.
type MockTimeProvider struct {
	mu      sync.Mutex
	current time.Time
	step    time.Duration
}

func NewMockTimeProvider(step time.Duration) *MockTimeProvider {
	return &MockTimeProvider{
		current: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		step:    step,
	}
}

func (m *MockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

func (m *MockTimeProvider) Since(t time.Time) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.current.Add(m.step)
	return m.current.Sub(t)
}

func newTestStream(t *testing.T, angle int, format rotate.PixelFormat, width, height uint16) *RotationStream {
	t.Helper()
	stream, err := NewRotationStream(StreamConfig{Angle: angle, Format: format, Width: width, Height: height})
	require.NoError(t, err)
	t.Cleanup(func() { _ = stream.Close() })
	return stream
}

func TestNewRotationStream_OutputSize(t *testing.T) {
	tests := []struct {
		angle   int
		outW    uint16
		outH    uint16
		enabled bool
	}{
		{0, 64, 32, false},
		{90, 32, 64, true},
		{180, 64, 32, true},
		{270, 32, 64, true},
		{-90, 32, 64, true},
		{30, 64, 32, false},
	}

	for _, tt := range tests {
		stream := newTestStream(t, tt.angle, rotate.FormatPlanar420, 64, 32)
		w, h := stream.GetOutputSize()
		assert.Equal(t, tt.outW, w, "angle %d", tt.angle)
		assert.Equal(t, tt.outH, h, "angle %d", tt.angle)
		assert.Equal(t, tt.enabled, stream.Enabled(), "angle %d", tt.angle)
	}
}

func TestRotationStream_ProcessFrame_MatchesRaw(t *testing.T) {
	for _, angle := range []int{90, 180, 270} {
		planeStream := newTestStream(t, angle, rotate.FormatPlanar420, 64, 32)
		rawStream := newTestStream(t, angle, rotate.FormatPlanar420, 64, 32)

		frame := createTestFrame(64, 32)
		original := copyFrame(frame)

		raw, err := PackFrame(frame, rotate.FormatPlanar420, nil)
		require.NoError(t, err)
		require.NoError(t, rawStream.ProcessRaw(raw))

		rotated, err := planeStream.ProcessFrame(frame)
		require.NoError(t, err)

		outW, outH := planeStream.GetOutputSize()
		assert.Equal(t, outW, rotated.Width)
		assert.Equal(t, outH, rotated.Height)

		packed, err := PackFrame(rotated, rotate.FormatPlanar420, nil)
		require.NoError(t, err)
		assert.Equal(t, raw, packed, "angle %d", angle)

		// Input frame untouched.
		assert.Equal(t, original, frame)
	}
}

func TestRotationStream_ProcessFrame_RoundTrip(t *testing.T) {
	cw := newTestStream(t, 90, rotate.FormatPlanar420, 64, 32)
	outW, outH := cw.GetOutputSize()
	ccw := newTestStream(t, 270, rotate.FormatPlanar420, outW, outH)

	frame := createTestFrame(64, 32)
	turned, err := cw.ProcessFrame(frame)
	require.NoError(t, err)
	back, err := ccw.ProcessFrame(turned)
	require.NoError(t, err)

	assert.Equal(t, frame.Y, back.Y)
	assert.Equal(t, frame.U, back.U)
	assert.Equal(t, frame.V, back.V)
}

func TestRotationStream_Greyscale(t *testing.T) {
	stream := newTestStream(t, 90, rotate.FormatGreyscale, 32, 16)

	frame := NewVideoFrame(32, 16, rotate.FormatGreyscale)
	for i := range frame.Y {
		frame.Y[i] = byte(i % 256)
	}

	rotated, err := stream.ProcessFrame(frame)
	require.NoError(t, err)
	assert.Equal(t, uint16(16), rotated.Width)
	assert.Equal(t, uint16(32), rotated.Height)
	assert.Equal(t, byte((15*32)%256), rotated.Y[0])
	assert.Nil(t, rotated.U)
}

func TestRotationStream_DisabledPassesThrough(t *testing.T) {
	stream := newTestStream(t, 45, rotate.FormatPlanar420, 32, 16)
	frame := createTestFrame(32, 16)

	result, err := stream.ProcessFrame(frame)
	require.NoError(t, err)
	assert.Same(t, frame, result)

	raw := make([]byte, 3)
	assert.NoError(t, stream.ProcessRaw(raw))

	stats := stream.Stats()
	assert.Equal(t, uint64(2), stats.FramesSkipped)
	assert.Zero(t, stats.FramesProcessed)
}

func TestRotationStream_ErrorCases(t *testing.T) {
	stream := newTestStream(t, 90, rotate.FormatPlanar420, 32, 16)

	_, err := stream.ProcessFrame(nil)
	assert.ErrorContains(t, err, "video frame cannot be nil")

	_, err = stream.ProcessFrame(createTestFrame(64, 32))
	assert.ErrorIs(t, err, ErrFrameMismatch)

	err = stream.ProcessRaw(make([]byte, 10))
	assert.ErrorIs(t, err, rotate.ErrFrameSize)

	assert.Equal(t, uint64(3), stream.Stats().FramesFailed)
}

func TestRotationStream_Close(t *testing.T) {
	stream, err := NewRotationStream(StreamConfig{Angle: 270, Format: rotate.FormatGreyscale, Width: 16, Height: 16})
	require.NoError(t, err)

	require.NoError(t, stream.Close())
	require.NoError(t, stream.Close())

	_, err = stream.ProcessFrame(NewVideoFrame(16, 16, rotate.FormatGreyscale))
	assert.ErrorIs(t, err, ErrStreamClosed)
	assert.ErrorIs(t, stream.ProcessRaw(make([]byte, 256)), ErrStreamClosed)
}

func TestRotationStream_SetupFailure(t *testing.T) {
	// 8192x8192 Planar420 needs 96 MiB, above rotate.MaxScratchSize.
	stream, err := NewRotationStream(StreamConfig{Angle: 90, Format: rotate.FormatPlanar420, Width: 8192, Height: 8192})
	assert.Nil(t, stream)
	assert.ErrorIs(t, err, rotate.ErrScratchAllocation)
}

func TestRotationStream_Stats(t *testing.T) {
	tp := NewMockTimeProvider(5 * time.Millisecond)
	stream, err := NewRotationStreamWithTimeProvider(
		StreamConfig{Angle: 180, Format: rotate.FormatPlanar420, Width: 32, Height: 16}, tp)
	require.NoError(t, err)
	defer stream.Close()

	frame := createTestFrame(32, 16)
	for i := 0; i < 3; i++ {
		_, err := stream.ProcessFrame(frame)
		require.NoError(t, err)
	}

	stats := stream.Stats()
	assert.Equal(t, uint64(3), stats.FramesProcessed)
	assert.Equal(t, 5*time.Millisecond, stats.LastDuration)
	assert.Equal(t, 15*time.Millisecond, stats.TotalDuration)
	assert.Equal(t, 5*time.Millisecond, stats.AverageDuration())
	assert.False(t, stats.LastFrameTime.IsZero())
}

func TestStreamStats_AverageDurationEmpty(t *testing.T) {
	assert.Zero(t, StreamStats{}.AverageDuration())
}

func TestStreamConfigFromCamera(t *testing.T) {
	cam := config.Camera{Width: 640, Height: 480, Format: "grey", Rotate: 270}

	cfg, err := StreamConfigFromCamera(cam)
	require.NoError(t, err)
	assert.Equal(t, StreamConfig{Angle: 270, Format: rotate.FormatGreyscale, Width: 640, Height: 480}, cfg)

	_, err = StreamConfigFromCamera(config.Camera{Width: 70000, Height: 480})
	assert.ErrorIs(t, err, config.ErrInvalidDimensions)
}

func TestRotationStream_IndependentStreams(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(angle int) {
			defer wg.Done()
			stream, err := NewRotationStream(StreamConfig{Angle: angle, Format: rotate.FormatPlanar420, Width: 64, Height: 32})
			if !assert.NoError(t, err) {
				return
			}
			defer stream.Close()

			frame := createTestFrame(64, 32)
			for j := 0; j < 10; j++ {
				_, err := stream.ProcessFrame(frame)
				assert.NoError(t, err)
			}
		}(90 * i)
	}
	wg.Wait()
}
