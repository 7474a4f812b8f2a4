package rig

import "fmt"

// pending carries the parent transform for one bone awaiting traversal.
type pending struct {
	id    BoneID
	x, y  float64
	angle float64
}

// ForwardKinematics recomputes the world transform of every bone from
// the local angles. Root bones originate at the skeleton origin with a
// parent orientation of zero; every other bone originates at its
// parent's tip, with world angle = parent world angle + rest angle +
// current angle.
//
// Traversal is an explicit stack walk over the parent/child adjacency
// built at construction, so deep rigs cannot overflow the call stack and
// sibling order does not affect the result. A bone left unvisited means
// the hierarchy is malformed, which is reported rather than silently
// skipped; skeletons built through New or AddBone cannot trigger it.
func ForwardKinematics(s *Skeleton) error {
	stack := make([]pending, 0, s.Len())
	for _, root := range s.Roots() {
		stack = append(stack, pending{id: root.id, x: s.RootX, y: s.RootY})
	}

	visited := 0
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		b := s.bones[p.id]
		b.worldX = p.x
		b.worldY = p.y
		b.worldAngle = p.angle + b.restAngle + b.CurrentAngle
		visited++

		tipX, tipY := b.Tip()
		kids := s.children[b.id]
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, pending{id: kids[i], x: tipX, y: tipY, angle: b.worldAngle})
		}
	}

	if visited != s.Len() {
		return fmt.Errorf("%w: visited %d of %d bones", ErrCyclicHierarchy, visited, s.Len())
	}
	return nil
}
