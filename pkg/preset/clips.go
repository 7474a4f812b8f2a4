package preset

import (
	"math"

	"github.com/BlackRoad-Interactive/blackroad-animation-controller/pkg/clip"
)

// WalkClip generates a one-second bipedal walk cycle: legs swing in
// opposite phase with knee lift on the trailing leg, arms counter-swing
// against the legs, and the spine sways slightly.
func WalkClip() *clip.Clip {
	c := clip.New("walk")
	const amplitude = 0.4
	for frame := 0; frame < 24; frame++ {
		t := float64(frame) / 24.0
		phase := 2 * math.Pi * t
		swing := math.Sin(phase)
		counter := math.Sin(phase + math.Pi)
		mustAddKeyframe(c, clip.Keyframe{
			Time: t,
			Angles: clip.Pose{
				Spine:         swing * 0.05,
				LeftUpperLeg:  swing * amplitude,
				LeftLowerLeg:  math.Max(0, -swing) * amplitude * 0.5,
				RightUpperLeg: counter * amplitude,
				RightLowerLeg: math.Max(0, swing) * amplitude * 0.5,
				LeftUpperArm:  counter * amplitude * 0.5,
				RightUpperArm: swing * amplitude * 0.5,
			},
			Easing: clip.EasingCubic,
		})
	}
	return c
}

// IdleClip generates a two-second breathing loop on the spine and head.
func IdleClip() *clip.Clip {
	c := clip.New("idle")
	for frame := 0; frame < 48; frame++ {
		t := float64(frame) / 24.0
		breathe := math.Sin(2*math.Pi*t/2.0) * 0.03
		mustAddKeyframe(c, clip.Keyframe{
			Time:   t,
			Angles: clip.Pose{Spine: breathe, Head: breathe * 0.5},
			Easing: clip.EasingCubic,
		})
	}
	return c
}

// JumpClip generates a one-second, play-once jump: crouch, launch,
// peak, fall, land, stand.
func JumpClip() *clip.Clip {
	c := clip.New("jump")
	c.Loop = false
	c.Mode = clip.ModeOnce

	stages := []struct {
		time   float64
		angles clip.Pose
	}{
		{0.0, clip.Pose{LeftUpperLeg: -0.6, LeftLowerLeg: 1.0, RightUpperLeg: -0.6, RightLowerLeg: 1.0, Spine: -0.3}},
		{0.15, clip.Pose{LeftUpperLeg: 0.3, LeftLowerLeg: 0.0, RightUpperLeg: 0.3, RightLowerLeg: 0.0, Spine: 0.2}},
		{0.4, clip.Pose{LeftUpperLeg: 0.5, LeftLowerLeg: 0.2, RightUpperLeg: 0.5, RightLowerLeg: 0.2, Spine: 0.3}},
		{0.7, clip.Pose{LeftUpperLeg: -0.4, LeftLowerLeg: 0.8, RightUpperLeg: -0.4, RightLowerLeg: 0.8, Spine: -0.1}},
		{0.9, clip.Pose{LeftUpperLeg: -0.5, LeftLowerLeg: 1.0, RightUpperLeg: -0.5, RightLowerLeg: 1.0, Spine: -0.2}},
		{1.0, clip.Pose{LeftUpperLeg: 0.0, LeftLowerLeg: 0.0, RightUpperLeg: 0.0, RightLowerLeg: 0.0, Spine: 0.0}},
	}
	for _, stage := range stages {
		mustAddKeyframe(c, clip.Keyframe{Time: stage.time, Angles: stage.angles, Easing: clip.EasingCubic})
	}
	return c
}

// Clips returns the full set of generated clips.
func Clips() []*clip.Clip {
	return []*clip.Clip{WalkClip(), IdleClip(), JumpClip()}
}

// mustAddKeyframe inserts a generated keyframe. Generated times are
// strictly increasing and non-negative, so insertion cannot fail.
func mustAddKeyframe(c *clip.Clip, kf clip.Keyframe) {
	if err := c.AddKeyframe(kf); err != nil {
		panic(err)
	}
}
