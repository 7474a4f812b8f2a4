package clip

import (
	"fmt"
	"math"
	"sort"
)

// Clip is an ordered sequence of keyframes. Keyframes stay sorted by
// time no matter the insertion order; temporal order is canonical.
type Clip struct {
	name      string
	keyframes []Keyframe

	// FPS is the authored playback rate hint. It does not affect
	// sampling.
	FPS float64

	// Loop is an authoring hint describing whether the clip is meant to
	// repeat. Sampling consults Mode, not this flag.
	Loop bool

	// Mode maps sample times outside the duration back into the clip.
	Mode LoopMode
}

// New creates an empty clip with the authoring defaults: 24 fps,
// looping.
func New(name string) *Clip {
	return &Clip{
		name: name,
		FPS:  24.0,
		Loop: true,
		Mode: ModeLoop,
	}
}

// Name returns the clip's name.
func (c *Clip) Name() string { return c.name }

// Len returns the number of keyframes.
func (c *Clip) Len() int { return len(c.keyframes) }

// Duration returns the time of the last keyframe, or 0 when the clip
// has fewer than two keyframes and thus nothing to interpolate.
func (c *Clip) Duration() float64 {
	if len(c.keyframes) < 2 {
		return 0
	}
	return c.keyframes[len(c.keyframes)-1].Time
}

// Keyframes returns a copy of the keyframes in time order. The angle
// maps are shared with the clip and must not be mutated.
func (c *Clip) Keyframes() []Keyframe {
	out := make([]Keyframe, len(c.keyframes))
	copy(out, c.keyframes)
	return out
}

// AddKeyframe inserts a keyframe, keeping time order. The keyframe's
// angle map is copied. Negative times and times already present in the
// clip are rejected.
func (c *Clip) AddKeyframe(kf Keyframe) error {
	if kf.Time < 0 {
		return fmt.Errorf("%w: negative time %v in clip %q", ErrInvalidKeyframe, kf.Time, c.name)
	}

	i := sort.Search(len(c.keyframes), func(j int) bool {
		return c.keyframes[j].Time >= kf.Time
	})
	if i < len(c.keyframes) && c.keyframes[i].Time == kf.Time {
		return fmt.Errorf("%w: t=%v in clip %q", ErrDuplicateKeyframe, kf.Time, c.name)
	}

	kf.Angles = clonePose(kf.Angles)
	c.keyframes = append(c.keyframes, Keyframe{})
	copy(c.keyframes[i+1:], c.keyframes[i:])
	c.keyframes[i] = kf
	return nil
}

// Sample interpolates the clip at time t and returns the resulting
// pose. The time is first normalized per the clip's loop mode, then the
// bracketing keyframe pair is interpolated using the earlier keyframe's
// easing. Sampling an empty clip yields an empty pose. A bone present
// in only one of the bracketing keyframes is an authoring error and is
// reported rather than silently defaulted.
func (c *Clip) Sample(t float64) (Pose, error) {
	if len(c.keyframes) == 0 {
		return Pose{}, nil
	}

	t = c.normalize(t)

	kfs := c.keyframes
	if t <= kfs[0].Time {
		return clonePose(kfs[0].Angles), nil
	}
	if t >= kfs[len(kfs)-1].Time {
		return clonePose(kfs[len(kfs)-1].Angles), nil
	}

	// Last keyframe with Time <= t; the guards above keep i in range.
	i := sort.Search(len(kfs), func(j int) bool { return kfs[j].Time > t }) - 1
	k0, k1 := kfs[i], kfs[i+1]

	span := k1.Time - k0.Time
	f := 0.0
	if span > 0 {
		f = (t - k0.Time) / span
	}
	switch k0.Easing {
	case EasingCubic:
		f = f * f * (3 - 2*f)
	case EasingStep:
		f = 0
	case EasingLinear:
	}

	pose := make(Pose, len(k0.Angles))
	for id, a0 := range k0.Angles {
		a1, ok := k1.Angles[id]
		if !ok {
			return nil, fmt.Errorf("%w: clip %q bone %d present at t=%v but not at t=%v",
				ErrMissingBone, c.name, id, k0.Time, k1.Time)
		}
		pose[id] = lerp(a0, a1, f)
	}
	for id := range k1.Angles {
		if _, ok := k0.Angles[id]; !ok {
			return nil, fmt.Errorf("%w: clip %q bone %d present at t=%v but not at t=%v",
				ErrMissingBone, c.name, id, k1.Time, k0.Time)
		}
	}
	return pose, nil
}

// normalize maps t into the clip's playable range per the loop mode.
// Zero-duration clips pass t through; the bracketing guards in Sample
// handle them.
func (c *Clip) normalize(t float64) float64 {
	d := c.Duration()
	if d <= 0 {
		return t
	}

	switch c.Mode {
	case ModeLoop:
		w := math.Mod(t, d)
		if w < 0 {
			w += d
		}
		return w
	case ModePingPong:
		cycle := math.Mod(t, 2*d)
		if cycle < 0 {
			cycle += 2 * d
		}
		if cycle <= d {
			return cycle
		}
		return 2*d - cycle
	default: // ModeOnce
		if t > d {
			return d
		}
		return t
	}
}
