package video

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/toxrotate/rotate"
)

// failingEffect always returns an error.
type failingEffect struct{}

func (failingEffect) Apply(*VideoFrame) (*VideoFrame, error) {
	return nil, fmt.Errorf("boom")
}

func (failingEffect) GetName() string { return "Failing" }

func TestEffectChain_Empty(t *testing.T) {
	chain := NewEffectChain()
	frame := createTestFrame(32, 16)

	result, err := chain.Apply(frame)
	require.NoError(t, err)
	assert.Equal(t, frame, result)
	assert.NotSame(t, frame, result)
	assert.Equal(t, 0, chain.GetEffectCount())
}

func TestEffectChain_NilFrame(t *testing.T) {
	result, err := NewEffectChain().Apply(nil)
	assert.Nil(t, result)
	assert.ErrorContains(t, err, "input frame cannot be nil")
}

func TestEffectChain_TwoHalfTurnsRestoreFrame(t *testing.T) {
	stream := newTestStream(t, 180, rotate.FormatPlanar420, 32, 16)

	chain := NewEffectChain(NewRotationEffect(stream))
	chain.AddEffect(NewRotationEffect(stream))
	assert.Equal(t, 2, chain.GetEffectCount())
	assert.Equal(t, []string{"Rotation(180)", "Rotation(180)"}, chain.Names())

	frame := createTestFrame(32, 16)
	result, err := chain.Apply(frame)
	require.NoError(t, err)
	assert.Equal(t, frame.Y, result.Y)
	assert.Equal(t, frame.U, result.U)
	assert.Equal(t, frame.V, result.V)
}

func TestEffectChain_OutputNeverAliasesInput(t *testing.T) {
	for _, angle := range []int{0, 45, 90, 180} {
		stream := newTestStream(t, angle, rotate.FormatPlanar420, 32, 16)
		chain := NewEffectChain(NewRotationEffect(stream))

		frame := createTestFrame(32, 16)
		original := copyFrame(frame)

		result, err := chain.Apply(frame)
		require.NoError(t, err)
		assert.NotSame(t, frame, result, "angle %d", angle)

		result.Y[0] ^= 0xFF
		result.U[0] ^= 0xFF
		result.V[0] ^= 0xFF
		assert.Equal(t, original, frame, "angle %d", angle)
	}
}

func TestEffectChain_ErrorIncludesEffectName(t *testing.T) {
	chain := NewEffectChain()
	chain.AddEffect(failingEffect{})

	_, err := chain.Apply(createTestFrame(32, 16))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "effect 0 (Failing) failed")
}

func TestRotationEffect_GetName(t *testing.T) {
	assert.Equal(t, "Rotation(90)", NewRotationEffect(newTestStream(t, 90, rotate.FormatGreyscale, 16, 16)).GetName())
	assert.Equal(t, "Rotation(270)", NewRotationEffect(newTestStream(t, -90, rotate.FormatGreyscale, 16, 16)).GetName())
	assert.Equal(t, "Rotation(Disabled)", NewRotationEffect(newTestStream(t, 10, rotate.FormatGreyscale, 16, 16)).GetName())
}

func TestRotationEffect_NilFrame(t *testing.T) {
	effect := NewRotationEffect(newTestStream(t, 90, rotate.FormatGreyscale, 16, 16))
	result, err := effect.Apply(nil)
	assert.Nil(t, result)
	assert.ErrorContains(t, err, "input frame cannot be nil")
}
