// Package animator orchestrates clip playback on a skeleton: time
// advancement, pose sampling, blending between clips, and timed
// cross-fade transitions, with the resulting pose propagated through
// forward kinematics every update.
//
// An animator exclusively owns the skeleton it drives. All operations
// run synchronously on the caller's goroutine; the caller invokes
// Update once per logical frame.
package animator

import "fmt"

// PlaybackState represents the current state of clip playback.
type PlaybackState int

const (
	// StateStopped means no clip is advancing.
	StateStopped PlaybackState = iota

	// StatePlaying means one clip is actively advancing.
	StatePlaying

	// StatePaused means playback is frozen and resumable.
	StatePaused

	// StateBlending means two clips advance in lockstep, mixed by the
	// blend alpha.
	StateBlending
)

// String returns a human-readable state name.
func (s PlaybackState) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateBlending:
		return "blending"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s PlaybackState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *PlaybackState) UnmarshalText(text []byte) error {
	parsed, err := ParsePlaybackState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParsePlaybackState converts a state name back into a PlaybackState.
func ParsePlaybackState(name string) (PlaybackState, error) {
	switch name {
	case "stopped":
		return StateStopped, nil
	case "playing":
		return StatePlaying, nil
	case "paused":
		return StatePaused, nil
	case "blending":
		return StateBlending, nil
	default:
		return StateStopped, fmt.Errorf("unknown playback state %q", name)
	}
}

// PlayOptions configures clip playback.
type PlayOptions struct {
	// ResetTime restarts the clip from its beginning. When false, the
	// previous elapsed time carries over for seamless clip swaps.
	ResetTime bool

	// Speed multiplies update deltas (1.0 = authored rate). Zero means
	// default (1.0).
	Speed float64
}

// DefaultPlayOptions returns the playback defaults.
func DefaultPlayOptions() PlayOptions {
	return PlayOptions{
		ResetTime: true,
		Speed:     1.0,
	}
}

// DefaultTransitionDuration is the cross-fade length used by
// TransitionTo when the caller has no opinion.
const DefaultTransitionDuration = 0.3
