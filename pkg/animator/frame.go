package animator

import (
	"math"

	"github.com/BlackRoad-Interactive/blackroad-animation-controller/pkg/rig"
)

// Frame is a wire-friendly snapshot of the animator and its skeleton,
// suitable for streaming to renderers one update at a time.
type Frame struct {
	Time       float64              `json:"time"`
	State      PlaybackState        `json:"state"`
	Clip       string               `json:"clip"`
	BlendClip  string               `json:"blend_clip"`
	BlendAlpha float64              `json:"blend_alpha"`
	Skeleton   rig.SkeletonSnapshot `json:"skeleton"`
}

// ExportFrame captures the animator's current state without advancing
// or mutating anything. World transforms are whatever the last Update
// (or explicit forward kinematics pass) produced.
func (a *Animator) ExportFrame() Frame {
	return Frame{
		Time:       round4(a.elapsed),
		State:      a.state,
		Clip:       a.currentClip,
		BlendClip:  a.blendClip,
		BlendAlpha: round4(a.blendAlpha),
		Skeleton:   a.skeleton.Snapshot(),
	}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
