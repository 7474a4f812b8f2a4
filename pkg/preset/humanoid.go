// Package preset bundles ready-made rigs and clips: a humanoid
// skeleton, procedurally generated walk/idle/jump cycles, and a small
// pack of embedded JSON clips. It exists so demos, tests, and the
// daemon can start animating without authoring data first.
package preset

import (
	"math"

	"github.com/BlackRoad-Interactive/blackroad-animation-controller/pkg/rig"
)

// Bone ids of the humanoid rig.
const (
	Root rig.BoneID = iota
	Spine
	Head
	LeftUpperArm
	LeftLowerArm
	RightUpperArm
	RightLowerArm
	LeftUpperLeg
	LeftLowerLeg
	RightUpperLeg
	RightLowerLeg
)

// Humanoid builds an 11-bone biped: a short root segment with a spine
// and head stacked above it, two-segment arms hanging off the spine,
// and two-segment legs hanging off the root. World transforms for the
// rest pose are computed before the skeleton is returned.
func Humanoid() (*rig.Skeleton, error) {
	s, err := rig.New(
		rig.Def{ID: Root, Name: "root", Parent: rig.NoParent, Length: 0.1},
		rig.Def{ID: Spine, Name: "spine", Parent: Root, Length: 0.5, RestAngle: math.Pi / 2},
		rig.Def{ID: Head, Name: "head", Parent: Spine, Length: 0.3, RestAngle: math.Pi / 2},
		rig.Def{ID: LeftUpperArm, Name: "l_upper_arm", Parent: Spine, Length: 0.4, RestAngle: math.Pi},
		rig.Def{ID: LeftLowerArm, Name: "l_lower_arm", Parent: LeftUpperArm, Length: 0.35},
		rig.Def{ID: RightUpperArm, Name: "r_upper_arm", Parent: Spine, Length: 0.4},
		rig.Def{ID: RightLowerArm, Name: "r_lower_arm", Parent: RightUpperArm, Length: 0.35},
		rig.Def{ID: LeftUpperLeg, Name: "l_upper_leg", Parent: Root, Length: 0.45, RestAngle: -math.Pi / 2},
		rig.Def{ID: LeftLowerLeg, Name: "l_lower_leg", Parent: LeftUpperLeg, Length: 0.4},
		rig.Def{ID: RightUpperLeg, Name: "r_upper_leg", Parent: Root, Length: 0.45, RestAngle: -math.Pi / 2},
		rig.Def{ID: RightLowerLeg, Name: "r_lower_leg", Parent: RightUpperLeg, Length: 0.4},
	)
	if err != nil {
		return nil, err
	}
	if err := rig.ForwardKinematics(s); err != nil {
		return nil, err
	}
	return s, nil
}
