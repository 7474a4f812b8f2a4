package clip

import (
	"math"
	"strconv"
)

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// KeyframeSnapshot is the serialized form of a keyframe, with bone ids
// stringified for structured interchange and angles rounded to 4
// decimals.
type KeyframeSnapshot struct {
	Time       float64            `json:"time"`
	BoneAngles map[string]float64 `json:"bone_angles"`
	Easing     Easing             `json:"easing"`
}

// Snapshot captures the keyframe's authored data.
func (k Keyframe) Snapshot() KeyframeSnapshot {
	snap := KeyframeSnapshot{
		Time:       k.Time,
		BoneAngles: make(map[string]float64, len(k.Angles)),
		Easing:     k.Easing,
	}
	for id, angle := range k.Angles {
		snap.BoneAngles[strconv.Itoa(int(id))] = round4(angle)
	}
	return snap
}

// ClipSnapshot is the serialized form of a whole clip.
type ClipSnapshot struct {
	Name      string             `json:"name"`
	Duration  float64            `json:"duration"`
	FPS       float64            `json:"fps"`
	Loop      bool               `json:"loop"`
	LoopMode  LoopMode           `json:"loop_mode"`
	Keyframes []KeyframeSnapshot `json:"keyframes"`
}

// Snapshot captures the clip's authored data in time order. It is
// read-only and has no side effects.
func (c *Clip) Snapshot() ClipSnapshot {
	snap := ClipSnapshot{
		Name:      c.name,
		Duration:  c.Duration(),
		FPS:       c.FPS,
		Loop:      c.Loop,
		LoopMode:  c.Mode,
		Keyframes: make([]KeyframeSnapshot, len(c.keyframes)),
	}
	for i, kf := range c.keyframes {
		snap.Keyframes[i] = kf.Snapshot()
	}
	return snap
}
