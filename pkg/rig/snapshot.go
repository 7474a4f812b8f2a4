package rig

import (
	"math"
	"strconv"
)

// round4 matches the 4-decimal rounding used across snapshot exports.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// BoneSnapshot is the serialized form of a bone for structured
// interchange. Angles and world coordinates are rounded to 4 decimals.
type BoneSnapshot struct {
	ID           BoneID  `json:"id"`
	Name         string  `json:"name"`
	ParentID     *BoneID `json:"parent_id"`
	Length       float64 `json:"length"`
	RestAngle    float64 `json:"rest_angle"`
	CurrentAngle float64 `json:"current_angle"`
	WorldX       float64 `json:"world_x"`
	WorldY       float64 `json:"world_y"`
	WorldAngle   float64 `json:"world_angle"`
	TipX         float64 `json:"tip_x"`
	TipY         float64 `json:"tip_y"`
	Weight       float64 `json:"weight"`
}

// Snapshot captures the bone's current state. ParentID is nil for root
// bones. World values reflect the last ForwardKinematics pass.
func (b *Bone) Snapshot() BoneSnapshot {
	snap := BoneSnapshot{
		ID:           b.id,
		Name:         b.name,
		Length:       b.length,
		RestAngle:    round4(b.restAngle),
		CurrentAngle: round4(b.CurrentAngle),
		WorldX:       round4(b.worldX),
		WorldY:       round4(b.worldY),
		WorldAngle:   round4(b.worldAngle),
		Weight:       b.Weight,
	}
	tipX, tipY := b.Tip()
	snap.TipX = round4(tipX)
	snap.TipY = round4(tipY)
	if !b.IsRoot() {
		parent := b.parent
		snap.ParentID = &parent
	}
	return snap
}

// SkeletonSnapshot is the serialized form of a whole skeleton, with
// bones keyed by decimal id.
type SkeletonSnapshot struct {
	RootX float64                 `json:"root_x"`
	RootY float64                 `json:"root_y"`
	Bones map[string]BoneSnapshot `json:"bones"`
}

// Snapshot captures every bone of the skeleton. It is read-only and has
// no side effects.
func (s *Skeleton) Snapshot() SkeletonSnapshot {
	snap := SkeletonSnapshot{
		RootX: s.RootX,
		RootY: s.RootY,
		Bones: make(map[string]BoneSnapshot, len(s.bones)),
	}
	for id, b := range s.bones {
		snap.Bones[strconv.Itoa(int(id))] = b.Snapshot()
	}
	return snap
}
