package clip

import (
	"errors"
	"math"
	"testing"

	"github.com/BlackRoad-Interactive/blackroad-animation-controller/pkg/rig"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// rampClip has angle 0 at t=0 and angle pi at t=1 for bone 1.
func rampClip(t *testing.T, easing Easing, mode LoopMode) *Clip {
	t.Helper()
	c := New("ramp")
	c.Mode = mode
	if err := c.AddKeyframe(Keyframe{Time: 0, Angles: Pose{1: 0}, Easing: easing}); err != nil {
		t.Fatalf("AddKeyframe failed: %v", err)
	}
	if err := c.AddKeyframe(Keyframe{Time: 1, Angles: Pose{1: math.Pi}, Easing: easing}); err != nil {
		t.Fatalf("AddKeyframe failed: %v", err)
	}
	return c
}

func sampleBone(t *testing.T, c *Clip, at float64, id rig.BoneID) float64 {
	t.Helper()
	pose, err := c.Sample(at)
	if err != nil {
		t.Fatalf("Sample(%v) failed: %v", at, err)
	}
	angle, ok := pose[id]
	if !ok {
		t.Fatalf("Sample(%v) missing bone %d", at, id)
	}
	return angle
}

func TestNewDefaults(t *testing.T) {
	c := New("test")
	if c.Name() != "test" {
		t.Errorf("Expected name test, got %s", c.Name())
	}
	if c.FPS != 24.0 {
		t.Errorf("Expected fps 24, got %v", c.FPS)
	}
	if !c.Loop {
		t.Error("Expected loop to default true")
	}
	if c.Mode != ModeLoop {
		t.Errorf("Expected loop mode, got %v", c.Mode)
	}
}

func TestAddKeyframeKeepsTimeOrder(t *testing.T) {
	c := New("test")
	for _, at := range []float64{0.5, 0.0, 1.0, 0.25} {
		if err := c.AddKeyframe(Keyframe{Time: at, Angles: Pose{0: at}}); err != nil {
			t.Fatalf("AddKeyframe(%v) failed: %v", at, err)
		}
	}

	kfs := c.Keyframes()
	want := []float64{0.0, 0.25, 0.5, 1.0}
	for i, kf := range kfs {
		if kf.Time != want[i] {
			t.Errorf("Expected keyframe %d at t=%v, got %v", i, want[i], kf.Time)
		}
	}
}

func TestAddKeyframeDuplicateTime(t *testing.T) {
	c := New("test")
	if err := c.AddKeyframe(Keyframe{Time: 0.5, Angles: Pose{0: 1}}); err != nil {
		t.Fatalf("AddKeyframe failed: %v", err)
	}

	err := c.AddKeyframe(Keyframe{Time: 0.5, Angles: Pose{0: 2}})
	if !errors.Is(err, ErrDuplicateKeyframe) {
		t.Errorf("Expected ErrDuplicateKeyframe, got %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("Expected rejected keyframe to leave clip unchanged, got %d keyframes", c.Len())
	}
}

func TestAddKeyframeNegativeTime(t *testing.T) {
	c := New("test")
	err := c.AddKeyframe(Keyframe{Time: -0.1, Angles: Pose{0: 1}})
	if !errors.Is(err, ErrInvalidKeyframe) {
		t.Errorf("Expected ErrInvalidKeyframe, got %v", err)
	}
}

func TestDuration(t *testing.T) {
	c := New("test")
	if c.Duration() != 0 {
		t.Errorf("Expected empty clip duration 0, got %v", c.Duration())
	}

	if err := c.AddKeyframe(Keyframe{Time: 5, Angles: Pose{0: 1}}); err != nil {
		t.Fatalf("AddKeyframe failed: %v", err)
	}
	if c.Duration() != 0 {
		t.Errorf("Expected single-keyframe duration 0, got %v", c.Duration())
	}

	if err := c.AddKeyframe(Keyframe{Time: 7, Angles: Pose{0: 2}}); err != nil {
		t.Fatalf("AddKeyframe failed: %v", err)
	}
	if c.Duration() != 7 {
		t.Errorf("Expected duration 7, got %v", c.Duration())
	}
}

func TestSampleEmptyClip(t *testing.T) {
	c := New("empty")
	pose, err := c.Sample(1.0)
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	if len(pose) != 0 {
		t.Errorf("Expected empty pose, got %d entries", len(pose))
	}
}

func TestSampleSingleKeyframe(t *testing.T) {
	c := New("single")
	if err := c.AddKeyframe(Keyframe{Time: 2, Angles: Pose{4: 0.5}}); err != nil {
		t.Fatalf("AddKeyframe failed: %v", err)
	}

	for _, at := range []float64{-1, 0, 2, 99} {
		if got := sampleBone(t, c, at, 4); got != 0.5 {
			t.Errorf("Expected verbatim keyframe at t=%v, got %v", at, got)
		}
	}
}

func TestSampleLinearMidpoint(t *testing.T) {
	c := rampClip(t, EasingLinear, ModeOnce)
	got := sampleBone(t, c, 0.5, 1)
	if !almostEqual(got, math.Pi/2, 1e-12) {
		t.Errorf("Expected pi/2 at midpoint, got %v", got)
	}
}

func TestSampleCubic(t *testing.T) {
	c := rampClip(t, EasingCubic, ModeOnce)

	// smoothstep(0.25) = 0.15625
	got := sampleBone(t, c, 0.25, 1)
	want := 0.15625 * math.Pi
	if !almostEqual(got, want, 1e-12) {
		t.Errorf("Expected %v with cubic easing, got %v", want, got)
	}

	// Endpoints are exact regardless of easing.
	if got := sampleBone(t, c, 0, 1); got != 0 {
		t.Errorf("Expected 0 at start, got %v", got)
	}
	if got := sampleBone(t, c, 1, 1); got != math.Pi {
		t.Errorf("Expected pi at end, got %v", got)
	}
}

func TestSampleStepHolds(t *testing.T) {
	c := rampClip(t, EasingStep, ModeOnce)

	// Strictly before the next keyframe the earlier value holds.
	for _, at := range []float64{0.01, 0.5, 0.999} {
		if got := sampleBone(t, c, at, 1); got != 0 {
			t.Errorf("Expected step hold of 0 at t=%v, got %v", at, got)
		}
	}

	// Exactly at the next keyframe's time it switches.
	if got := sampleBone(t, c, 1.0, 1); got != math.Pi {
		t.Errorf("Expected pi exactly at next keyframe, got %v", got)
	}
}

func TestSampleOnceClamps(t *testing.T) {
	c := rampClip(t, EasingLinear, ModeOnce)

	if got := sampleBone(t, c, 5.0, 1); got != math.Pi {
		t.Errorf("Expected clamp to final keyframe, got %v", got)
	}
	if got := sampleBone(t, c, -5.0, 1); got != 0 {
		t.Errorf("Expected clamp to first keyframe, got %v", got)
	}
}

func TestSampleLoopWraps(t *testing.T) {
	c := rampClip(t, EasingLinear, ModeLoop)

	eps := 0.125
	wrapped := sampleBone(t, c, 1.0+eps, 1)
	direct := sampleBone(t, c, eps, 1)
	if !almostEqual(wrapped, direct, 1e-12) {
		t.Errorf("Expected sample(duration+eps) == sample(eps), got %v vs %v", wrapped, direct)
	}

	// Wrapping lands on the start of the cycle at exact multiples.
	if got := sampleBone(t, c, 2.0, 1); got != 0 {
		t.Errorf("Expected wrap to start at t=2.0, got %v", got)
	}

	// Negative times wrap backwards into the cycle.
	back := sampleBone(t, c, -0.25, 1)
	fwd := sampleBone(t, c, 0.75, 1)
	if !almostEqual(back, fwd, 1e-12) {
		t.Errorf("Expected sample(-0.25) == sample(0.75), got %v vs %v", back, fwd)
	}
}

func TestSamplePingPongMirrors(t *testing.T) {
	c := rampClip(t, EasingLinear, ModePingPong)

	delta := 0.3
	after := sampleBone(t, c, 1.0+delta, 1)
	before := sampleBone(t, c, 1.0-delta, 1)
	if !almostEqual(after, before, 1e-12) {
		t.Errorf("Expected mirrored samples around the turnaround, got %v vs %v", after, before)
	}

	// A full cycle returns to the start.
	if got := sampleBone(t, c, 2.0, 1); !almostEqual(got, 0, 1e-12) {
		t.Errorf("Expected full ping-pong cycle to return to start, got %v", got)
	}
}

func TestSampleMissingBone(t *testing.T) {
	c := New("broken")
	if err := c.AddKeyframe(Keyframe{Time: 0, Angles: Pose{1: 0, 2: 0}}); err != nil {
		t.Fatalf("AddKeyframe failed: %v", err)
	}
	if err := c.AddKeyframe(Keyframe{Time: 1, Angles: Pose{1: 1}}); err != nil {
		t.Fatalf("AddKeyframe failed: %v", err)
	}

	_, err := c.Sample(0.5)
	if !errors.Is(err, ErrMissingBone) {
		t.Errorf("Expected ErrMissingBone, got %v", err)
	}

	// The verbatim edges do not interpolate and stay usable.
	if _, err := c.Sample(0); err != nil {
		t.Errorf("Expected edge sample to succeed, got %v", err)
	}
}

func TestSampleMissingBoneReverse(t *testing.T) {
	c := New("broken")
	if err := c.AddKeyframe(Keyframe{Time: 0, Angles: Pose{1: 0}}); err != nil {
		t.Fatalf("AddKeyframe failed: %v", err)
	}
	if err := c.AddKeyframe(Keyframe{Time: 1, Angles: Pose{1: 1, 2: 1}}); err != nil {
		t.Fatalf("AddKeyframe failed: %v", err)
	}

	_, err := c.Sample(0.5)
	if !errors.Is(err, ErrMissingBone) {
		t.Errorf("Expected ErrMissingBone for bone only in later keyframe, got %v", err)
	}
}

func TestSampleDoesNotMutateClip(t *testing.T) {
	c := rampClip(t, EasingLinear, ModeLoop)

	pose, err := c.Sample(0.5)
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	pose[1] = 99

	again := sampleBone(t, c, 0.5, 1)
	if !almostEqual(again, math.Pi/2, 1e-12) {
		t.Errorf("Expected clip unchanged by mutating a sampled pose, got %v", again)
	}
}

func TestAddKeyframeCopiesAngles(t *testing.T) {
	c := New("test")
	angles := Pose{1: 0.5}
	if err := c.AddKeyframe(Keyframe{Time: 0, Angles: angles}); err != nil {
		t.Fatalf("AddKeyframe failed: %v", err)
	}
	angles[1] = 42

	kfs := c.Keyframes()
	if kfs[0].Angles[1] != 0.5 {
		t.Errorf("Expected clip to copy angle maps on insert, got %v", kfs[0].Angles[1])
	}
}

func TestEasingNames(t *testing.T) {
	cases := []struct {
		easing Easing
		name   string
	}{
		{EasingLinear, "linear"},
		{EasingStep, "step"},
		{EasingCubic, "cubic"},
	}
	for _, tc := range cases {
		if tc.easing.String() != tc.name {
			t.Errorf("Expected %s, got %s", tc.name, tc.easing.String())
		}
		parsed, err := ParseEasing(tc.name)
		if err != nil {
			t.Errorf("ParseEasing(%s) failed: %v", tc.name, err)
		}
		if parsed != tc.easing {
			t.Errorf("Expected %v, got %v", tc.easing, parsed)
		}
	}

	if _, err := ParseEasing("bounce"); !errors.Is(err, ErrInvalidClip) {
		t.Errorf("Expected ErrInvalidClip for unknown easing, got %v", err)
	}
}

func TestLoopModeNames(t *testing.T) {
	cases := []struct {
		mode LoopMode
		name string
	}{
		{ModeOnce, "once"},
		{ModeLoop, "loop"},
		{ModePingPong, "ping_pong"},
	}
	for _, tc := range cases {
		if tc.mode.String() != tc.name {
			t.Errorf("Expected %s, got %s", tc.name, tc.mode.String())
		}
		parsed, err := ParseLoopMode(tc.name)
		if err != nil {
			t.Errorf("ParseLoopMode(%s) failed: %v", tc.name, err)
		}
		if parsed != tc.mode {
			t.Errorf("Expected %v, got %v", tc.mode, parsed)
		}
	}

	if _, err := ParseLoopMode("forever"); !errors.Is(err, ErrInvalidClip) {
		t.Errorf("Expected ErrInvalidClip for unknown loop mode, got %v", err)
	}
}

func TestClipSnapshot(t *testing.T) {
	c := rampClip(t, EasingCubic, ModePingPong)
	c.Loop = false

	snap := c.Snapshot()
	if snap.Name != "ramp" {
		t.Errorf("Expected name ramp, got %s", snap.Name)
	}
	if snap.Duration != 1 {
		t.Errorf("Expected duration 1, got %v", snap.Duration)
	}
	if snap.Loop {
		t.Error("Expected loop false in snapshot")
	}
	if snap.LoopMode != ModePingPong {
		t.Errorf("Expected ping_pong mode, got %v", snap.LoopMode)
	}
	if len(snap.Keyframes) != 2 {
		t.Fatalf("Expected 2 keyframes, got %d", len(snap.Keyframes))
	}
	if snap.Keyframes[1].BoneAngles["1"] != round4(math.Pi) {
		t.Errorf("Expected rounded angle %v, got %v", round4(math.Pi), snap.Keyframes[1].BoneAngles["1"])
	}
	if snap.Keyframes[0].Easing != EasingCubic {
		t.Errorf("Expected cubic easing in snapshot, got %v", snap.Keyframes[0].Easing)
	}
}
