package video

import (
	"fmt"
)

// Effect transforms one frame into another.
type Effect interface {
	// Apply returns the processed frame. It may reuse the input's planes.
	Apply(frame *VideoFrame) (*VideoFrame, error)
	// GetName identifies the effect in errors and logs.
	GetName() string
}

// EffectChain runs frames through effects in the order they were added.
//
// Apply always starts from a private copy of the input, so the result never
// shares planes with the caller's frame, whatever the effects do.
type EffectChain struct {
	effects []Effect
}

// NewEffectChain creates a chain holding effects.
func NewEffectChain(effects ...Effect) *EffectChain {
	return &EffectChain{effects: effects}
}

// AddEffect appends effect to the chain.
func (ec *EffectChain) AddEffect(effect Effect) {
	ec.effects = append(ec.effects, effect)
}

// Apply processes frame through every effect.
func (ec *EffectChain) Apply(frame *VideoFrame) (*VideoFrame, error) {
	if frame == nil {
		return nil, fmt.Errorf("input frame cannot be nil")
	}

	current := copyFrame(frame)
	for i, effect := range ec.effects {
		next, err := effect.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("effect %d (%s) failed: %w", i, effect.GetName(), err)
		}
		current = next
	}
	return current, nil
}

// GetEffectCount returns the number of effects in the chain.
func (ec *EffectChain) GetEffectCount() int {
	return len(ec.effects)
}

// Names returns the effect names in application order.
func (ec *EffectChain) Names() []string {
	names := make([]string, len(ec.effects))
	for i, effect := range ec.effects {
		names[i] = effect.GetName()
	}
	return names
}

// RotationEffect runs frames through a RotationStream as part of a chain.
//
// The effect does not own the stream; the caller closes it.
type RotationEffect struct {
	stream *RotationStream
}

// NewRotationEffect wraps stream as an Effect.
func NewRotationEffect(stream *RotationStream) *RotationEffect {
	return &RotationEffect{stream: stream}
}

// Apply rotates the frame.
func (re *RotationEffect) Apply(frame *VideoFrame) (*VideoFrame, error) {
	if frame == nil {
		return nil, fmt.Errorf("input frame cannot be nil")
	}
	return re.stream.ProcessFrame(frame)
}

// GetName returns the effect name.
func (re *RotationEffect) GetName() string {
	if !re.stream.Enabled() {
		return "Rotation(Disabled)"
	}
	return fmt.Sprintf("Rotation(%d)", int(re.stream.Angle()))
}
