// Package clip provides keyframed animation clips: time-ordered bone
// poses with easing and loop semantics, sampled at arbitrary times.
//
// Clips are authored once (procedurally or from JSON files) and then
// treated as read-only by playback; sampling never mutates a clip.
package clip

import (
	"fmt"

	"github.com/BlackRoad-Interactive/blackroad-animation-controller/pkg/rig"
)

// Pose maps bone ids to angles in radians.
type Pose map[rig.BoneID]float64

// Easing selects the interpolation curve applied from a keyframe to the
// next one in time order.
type Easing int

const (
	// EasingLinear interpolates at a constant rate.
	EasingLinear Easing = iota

	// EasingStep holds the earlier keyframe's values until the next
	// keyframe's time is reached.
	EasingStep

	// EasingCubic applies smoothstep easing.
	EasingCubic
)

// String returns the wire name of the easing curve.
func (e Easing) String() string {
	switch e {
	case EasingLinear:
		return "linear"
	case EasingStep:
		return "step"
	case EasingCubic:
		return "cubic"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (e Easing) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Easing) UnmarshalText(text []byte) error {
	parsed, err := ParseEasing(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// ParseEasing converts a wire name to an Easing.
func ParseEasing(s string) (Easing, error) {
	switch s {
	case "linear":
		return EasingLinear, nil
	case "step":
		return EasingStep, nil
	case "cubic":
		return EasingCubic, nil
	default:
		return EasingLinear, fmt.Errorf("%w: unknown easing %q", ErrInvalidClip, s)
	}
}

// LoopMode describes how sample times outside the clip's duration are
// mapped back into it.
type LoopMode int

const (
	// ModeOnce clamps time to the clip's duration.
	ModeOnce LoopMode = iota

	// ModeLoop wraps time around the duration.
	ModeLoop

	// ModePingPong alternates playback direction every pass.
	ModePingPong
)

// String returns the wire name of the loop mode.
func (m LoopMode) String() string {
	switch m {
	case ModeOnce:
		return "once"
	case ModeLoop:
		return "loop"
	case ModePingPong:
		return "ping_pong"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m LoopMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *LoopMode) UnmarshalText(text []byte) error {
	parsed, err := ParseLoopMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseLoopMode converts a wire name to a LoopMode.
func ParseLoopMode(s string) (LoopMode, error) {
	switch s {
	case "once":
		return ModeOnce, nil
	case "loop":
		return ModeLoop, nil
	case "ping_pong":
		return ModePingPong, nil
	default:
		return ModeLoop, fmt.Errorf("%w: unknown loop mode %q", ErrInvalidClip, s)
	}
}

// Keyframe is a single authored pose at a point in time.
type Keyframe struct {
	// Time is the keyframe's position in seconds. Must be non-negative
	// and unique within a clip.
	Time float64

	// Angles maps bone ids to authored angles in radians.
	Angles Pose

	// Easing describes how to interpolate from this keyframe to the
	// next one in time order.
	Easing Easing
}
