package animator

import (
	"fmt"
	"math"
	"sort"

	"github.com/BlackRoad-Interactive/blackroad-animation-controller/pkg/clip"
	"github.com/BlackRoad-Interactive/blackroad-animation-controller/pkg/rig"
)

// Animator drives clip playback on a single skeleton.
//
// The current clip and the blend clip keep independent elapsed timers;
// both advance by speed-scaled update deltas while blending, so a
// cross-fade mixes two clips that each run at their own phase.
type Animator struct {
	skeleton *rig.Skeleton
	clips    map[string]*clip.Clip

	state       PlaybackState
	currentClip string
	blendClip   string
	blendAlpha  float64

	elapsed      float64
	blendElapsed float64
	speed        float64

	transitionActive   bool
	transitionElapsed  float64
	transitionDuration float64

	prePauseState PlaybackState
}

// New creates an animator that owns the given skeleton. Any clips
// passed in are registered immediately.
func New(skeleton *rig.Skeleton, clips ...*clip.Clip) *Animator {
	a := &Animator{
		skeleton: skeleton,
		clips:    make(map[string]*clip.Clip, len(clips)),
		state:    StateStopped,
		speed:    1.0,
	}
	for _, c := range clips {
		a.AddClip(c)
	}
	return a
}

// AddClip registers a clip under its name, replacing any clip already
// registered under that name.
func (a *Animator) AddClip(c *clip.Clip) {
	a.clips[c.Name()] = c
}

// Play starts the named clip from its beginning at normal speed.
func (a *Animator) Play(name string) error {
	return a.PlayWithOptions(name, DefaultPlayOptions())
}

// PlayWithOptions starts the named clip. Any blend or transition in
// progress is discarded.
func (a *Animator) PlayWithOptions(name string, opts PlayOptions) error {
	if _, ok := a.clips[name]; !ok {
		return fmt.Errorf("%w: %q", ErrClipNotFound, name)
	}
	if opts.Speed == 0 {
		opts.Speed = 1.0
	}

	a.currentClip = name
	a.state = StatePlaying
	a.speed = opts.Speed
	a.clearBlend()
	if opts.ResetTime {
		a.elapsed = 0
	}
	return nil
}

// Stop halts playback and rewinds to time zero. The clip selection is
// retained so a later Resume-less Play or ExportFrame still knows what
// was last playing.
func (a *Animator) Stop() {
	a.state = StateStopped
	a.elapsed = 0
	a.clearBlend()
}

// Pause freezes playback. It only acts when a clip is playing or
// blending; pausing a stopped animator does nothing.
func (a *Animator) Pause() {
	if a.state != StatePlaying && a.state != StateBlending {
		return
	}
	a.prePauseState = a.state
	a.state = StatePaused
}

// Resume continues playback from where Pause froze it, restoring the
// playing or blending state that was active before the pause.
func (a *Animator) Resume() {
	if a.state != StatePaused {
		return
	}
	a.state = a.prePauseState
}

// Blend mixes two clips at a fixed weight: alpha 0 plays only the
// first clip, alpha 1 only the second. Alpha is clamped to [0, 1].
// A clip already active in either role keeps its elapsed time; a clip
// entering the mix starts from zero.
func (a *Animator) Blend(first, second string, alpha float64) error {
	if _, ok := a.clips[first]; !ok {
		return fmt.Errorf("%w: %q", ErrClipNotFound, first)
	}
	if _, ok := a.clips[second]; !ok {
		return fmt.Errorf("%w: %q", ErrClipNotFound, second)
	}

	a.elapsed, a.blendElapsed = a.carriedElapsed(first), a.carriedElapsed(second)
	a.currentClip = first
	a.blendClip = second
	a.blendAlpha = clamp01(alpha)
	a.state = StateBlending
	a.transitionActive = false
	a.transitionElapsed = 0
	a.transitionDuration = 0
	return nil
}

// TransitionTo cross-fades from whatever is currently active into the
// named clip over the given duration in seconds. The fade ramp runs on
// raw update time, unscaled by playback speed. A non-positive duration
// completes the switch on the next Update. With nothing active the
// call is equivalent to Play.
func (a *Animator) TransitionTo(name string, duration float64) error {
	if _, ok := a.clips[name]; !ok {
		return fmt.Errorf("%w: %q", ErrClipNotFound, name)
	}
	if a.currentClip == "" || a.state == StateStopped {
		return a.Play(name)
	}

	a.blendElapsed = a.carriedElapsed(name)
	a.blendClip = name
	a.blendAlpha = 0
	a.transitionActive = true
	a.transitionElapsed = 0
	a.transitionDuration = duration
	a.state = StateBlending
	return nil
}

// Update advances playback by dt seconds, samples the active clip or
// blend, writes the resulting angles into the skeleton, and recomputes
// world transforms. It does nothing while stopped or paused.
func (a *Animator) Update(dt float64) error {
	if a.state == StateStopped || a.state == StatePaused {
		return nil
	}

	a.elapsed += dt * a.speed
	if a.state == StateBlending {
		a.blendElapsed += dt * a.speed

		if a.transitionActive {
			// The fade ramp runs on wall-clock update time so a
			// 0.3s transition takes 0.3s regardless of clip speed.
			a.transitionElapsed += dt
			if a.transitionDuration > 0 {
				a.blendAlpha = math.Min(1.0, a.transitionElapsed/a.transitionDuration)
			} else {
				a.blendAlpha = 1.0
			}
			if a.blendAlpha >= 1.0 {
				// Hand over before sampling: this frame already
				// plays the target clip on its own timer.
				a.currentClip = a.blendClip
				a.elapsed = a.blendElapsed
				a.clearBlend()
				a.state = StatePlaying
			}
		}
	}

	pose, err := a.samplePose()
	if err != nil {
		return err
	}
	a.applyPose(pose)
	return rig.ForwardKinematics(a.skeleton)
}

// samplePose evaluates the active clip, mixing in the blend clip when
// one is set.
func (a *Animator) samplePose() (clip.Pose, error) {
	current, ok := a.clips[a.currentClip]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrClipNotFound, a.currentClip)
	}
	pose, err := current.Sample(a.elapsed)
	if err != nil {
		return nil, fmt.Errorf("sampling %q: %w", a.currentClip, err)
	}

	if a.state != StateBlending || a.blendClip == "" {
		return pose, nil
	}

	target, ok := a.clips[a.blendClip]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrClipNotFound, a.blendClip)
	}
	targetPose, err := target.Sample(a.blendElapsed)
	if err != nil {
		return nil, fmt.Errorf("sampling %q: %w", a.blendClip, err)
	}
	return blendPoses(pose, targetPose, a.blendAlpha), nil
}

// applyPose writes angles into the skeleton. Bone ids absent from the
// skeleton are skipped, so clips authored for a richer rig still play
// on a reduced one.
func (a *Animator) applyPose(pose clip.Pose) {
	for id, angle := range pose {
		if bone, ok := a.skeleton.Bone(id); ok {
			bone.CurrentAngle = angle
		}
	}
}

// blendPoses mixes two poses over the union of their bones. A bone
// missing from one side contributes a zero angle on that side, the
// same convention clips use for unanimated bones.
func blendPoses(from, to clip.Pose, alpha float64) clip.Pose {
	out := make(clip.Pose, len(from)+len(to))
	for id, angle := range from {
		out[id] = lerp(angle, to[id], alpha)
	}
	for id, angle := range to {
		if _, ok := from[id]; !ok {
			out[id] = lerp(0, angle, alpha)
		}
	}
	return out
}

// carriedElapsed returns the elapsed time a clip keeps when it is
// already active in either playback role, or zero for a clip entering
// fresh.
func (a *Animator) carriedElapsed(name string) float64 {
	switch name {
	case a.currentClip:
		return a.elapsed
	case a.blendClip:
		return a.blendElapsed
	default:
		return 0
	}
}

// clearBlend discards all blend and transition bookkeeping.
func (a *Animator) clearBlend() {
	a.blendClip = ""
	a.blendAlpha = 0
	a.blendElapsed = 0
	a.transitionActive = false
	a.transitionElapsed = 0
	a.transitionDuration = 0
}

// Skeleton returns the skeleton this animator drives.
func (a *Animator) Skeleton() *rig.Skeleton {
	return a.skeleton
}

// State returns the current playback state.
func (a *Animator) State() PlaybackState {
	return a.state
}

// CurrentClip returns the name of the active clip, or "" when none has
// ever been selected.
func (a *Animator) CurrentClip() string {
	return a.currentClip
}

// BlendClip returns the name of the blend target, or "" when no blend
// is active.
func (a *Animator) BlendClip() string {
	return a.blendClip
}

// BlendAlpha returns the current blend weight in [0, 1].
func (a *Animator) BlendAlpha() float64 {
	return a.blendAlpha
}

// Elapsed returns the active clip's elapsed time in seconds.
func (a *Animator) Elapsed() float64 {
	return a.elapsed
}

// BlendElapsed returns the blend clip's elapsed time in seconds. It is
// zero when no blend is active.
func (a *Animator) BlendElapsed() float64 {
	return a.blendElapsed
}

// Speed returns the playback speed multiplier.
func (a *Animator) Speed() float64 {
	return a.speed
}

// Clip returns a registered clip by name.
func (a *Animator) Clip(name string) (*clip.Clip, bool) {
	c, ok := a.clips[name]
	return c, ok
}

// ClipNames returns the registered clip names in sorted order.
func (a *Animator) ClipNames() []string {
	names := make([]string, 0, len(a.clips))
	for name := range a.clips {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
