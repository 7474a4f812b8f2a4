package rig

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// IKOptions configures the FABRIK solver.
type IKOptions struct {
	// Iterations caps the number of backward/forward passes.
	Iterations int

	// Tolerance is the end-effector distance to the target below which
	// the solve counts as converged.
	Tolerance float64
}

// DefaultIKOptions returns the solver defaults.
func DefaultIKOptions() IKOptions {
	return IKOptions{
		Iterations: 20,
		Tolerance:  0.01,
	}
}

// SolveIK adjusts the bone chain ending at end so the chain's tip
// approaches the target point, using DefaultIKOptions.
func SolveIK(s *Skeleton, end BoneID, targetX, targetY float64) (bool, error) {
	return SolveIKWithOptions(s, end, targetX, targetY, DefaultIKOptions())
}

// SolveIKWithOptions runs FABRIK (Forward And Backward Reaching Inverse
// Kinematics) on the chain from the lineage root down to end.
//
// Only CurrentAngle is written, and only along the chain. World
// transforms are left untouched; run ForwardKinematics afterwards to
// propagate the solved pose. The boolean reports whether the end
// effector finished within opts.Tolerance of the target, regardless of
// whether the target was geometrically reachable.
func SolveIKWithOptions(s *Skeleton, end BoneID, targetX, targetY float64, opts IKOptions) (bool, error) {
	chain, err := s.Chain(end)
	if err != nil {
		return false, err
	}

	target := r2.Vec{X: targetX, Y: targetY}
	joints := chainJoints(s, chain)

	if len(chain) < 2 {
		// Nothing to solve. Report whether the tip already rests on the
		// target.
		tip := joints[len(joints)-1]
		return r2.Norm(r2.Sub(tip, target)) < opts.Tolerance, nil
	}

	lengths := make([]float64, len(chain))
	total := 0.0
	for i, b := range chain {
		lengths[i] = b.length
		total += b.length
	}

	root := joints[0]

	if r2.Norm(r2.Sub(target, root)) > total {
		// Unreachable: stretch the chain straight toward the target. The
		// end effector lands short of the target by exactly the length
		// deficit.
		for i := 0; i < len(joints)-1; i++ {
			joints[i+1] = reach(joints[i], target, lengths[i])
		}
	} else {
		for iter := 0; iter < opts.Iterations; iter++ {
			// Backward pass: pin the tip to the target, walk to the root.
			joints[len(joints)-1] = target
			for i := len(joints) - 2; i >= 0; i-- {
				joints[i] = reach(joints[i+1], joints[i], lengths[i])
			}

			// Forward pass: re-anchor the root, walk back out.
			joints[0] = root
			for i := 0; i < len(joints)-1; i++ {
				joints[i+1] = reach(joints[i], joints[i+1], lengths[i])
			}

			if r2.Norm(r2.Sub(joints[len(joints)-1], target)) < opts.Tolerance {
				break
			}
		}
	}

	applyJointAngles(chain, joints)

	return r2.Norm(r2.Sub(joints[len(joints)-1], target)) < opts.Tolerance, nil
}

// chainJoints lays out the chain's joint positions from its local
// angles: the lineage root anchored at the skeleton origin, each
// following joint at the previous bone's tip. This equals the chain's
// world positions after a ForwardKinematics pass without requiring one,
// so the solver never reads a stale world cache.
func chainJoints(s *Skeleton, chain []*Bone) []r2.Vec {
	joints := make([]r2.Vec, len(chain)+1)
	pos := r2.Vec{X: s.RootX, Y: s.RootY}
	angle := 0.0
	for i, b := range chain {
		joints[i] = pos
		angle += b.restAngle + b.CurrentAngle
		pos = r2.Add(pos, r2.Scale(b.length, r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)}))
	}
	joints[len(chain)] = pos
	return joints
}

// reach returns the point at the given distance from anchor in the
// direction of toward. Coincident points are guarded so the segment
// collapses to the anchor instead of dividing by zero.
func reach(anchor, toward r2.Vec, length float64) r2.Vec {
	d := r2.Sub(toward, anchor)
	r := r2.Norm(d)
	if r <= 0 {
		r = 1e-9
	}
	return r2.Add(anchor, r2.Scale(length/r, d))
}

// applyJointAngles converts solved joint positions back into local
// angles. The parent orientation accumulates down the chain exactly as
// ForwardKinematics composes it, so a following FK pass reproduces the
// solved joints within floating tolerance. The chain starts at a lineage
// root, whose parent contribution is zero.
func applyJointAngles(chain []*Bone, joints []r2.Vec) {
	parentAngle := 0.0
	for i, b := range chain {
		seg := r2.Sub(joints[i+1], joints[i])
		world := math.Atan2(seg.Y, seg.X)
		b.CurrentAngle = world - parentAngle - b.restAngle
		parentAngle = world
	}
}
