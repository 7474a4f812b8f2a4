package rig

import (
	"math"
	"testing"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestForwardKinematicsSingleBone(t *testing.T) {
	s, err := New(Def{ID: 0, Name: "only", Parent: NoParent, Length: 2.0})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := ForwardKinematics(s); err != nil {
		t.Fatalf("ForwardKinematics failed: %v", err)
	}

	b, _ := s.Bone(0)
	if b.WorldX() != 0 || b.WorldY() != 0 {
		t.Errorf("Expected origin at (0,0), got (%v,%v)", b.WorldX(), b.WorldY())
	}

	tipX, tipY := b.Tip()
	dist := math.Hypot(tipX-b.WorldX(), tipY-b.WorldY())
	if !almostEqual(dist, 2.0, 1e-12) {
		t.Errorf("Expected tip at distance 2.0 from origin, got %v", dist)
	}
	if !almostEqual(tipX, 2.0, 1e-12) || !almostEqual(tipY, 0, 1e-12) {
		t.Errorf("Expected tip (2,0), got (%v,%v)", tipX, tipY)
	}
}

func TestForwardKinematicsRootOffset(t *testing.T) {
	s, err := New(Def{ID: 0, Name: "only", Parent: NoParent, Length: 1.0})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	s.RootX = 1.5
	s.RootY = -2.0

	if err := ForwardKinematics(s); err != nil {
		t.Fatalf("ForwardKinematics failed: %v", err)
	}

	b, _ := s.Bone(0)
	if b.WorldX() != 1.5 || b.WorldY() != -2.0 {
		t.Errorf("Expected origin at (1.5,-2), got (%v,%v)", b.WorldX(), b.WorldY())
	}
	tipX, tipY := b.Tip()
	if !almostEqual(tipX, 2.5, 1e-12) || !almostEqual(tipY, -2.0, 1e-12) {
		t.Errorf("Expected tip (2.5,-2), got (%v,%v)", tipX, tipY)
	}
}

func TestForwardKinematicsAngleComposition(t *testing.T) {
	s, err := New(
		Def{ID: 0, Name: "lower", Parent: NoParent, Length: 1.0},
		Def{ID: 1, Name: "upper", Parent: 0, Length: 1.0},
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	lower, _ := s.Bone(0)
	upper, _ := s.Bone(1)
	lower.CurrentAngle = math.Pi / 2
	upper.CurrentAngle = math.Pi / 2

	if err := ForwardKinematics(s); err != nil {
		t.Fatalf("ForwardKinematics failed: %v", err)
	}

	// Lower points straight up, upper folds back along -x.
	if !almostEqual(lower.WorldAngle(), math.Pi/2, 1e-12) {
		t.Errorf("Expected lower world angle pi/2, got %v", lower.WorldAngle())
	}
	if !almostEqual(upper.WorldAngle(), math.Pi, 1e-12) {
		t.Errorf("Expected upper world angle pi, got %v", upper.WorldAngle())
	}

	tipX, tipY := upper.Tip()
	if !almostEqual(tipX, -1.0, 1e-12) || !almostEqual(tipY, 1.0, 1e-12) {
		t.Errorf("Expected upper tip (-1,1), got (%v,%v)", tipX, tipY)
	}
}

func TestForwardKinematicsRestAngle(t *testing.T) {
	s, err := New(
		Def{ID: 0, Name: "a", Parent: NoParent, Length: 1.0, RestAngle: math.Pi / 2},
		Def{ID: 1, Name: "b", Parent: 0, Length: 1.0, RestAngle: -math.Pi / 2},
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := ForwardKinematics(s); err != nil {
		t.Fatalf("ForwardKinematics failed: %v", err)
	}

	// Rest angles compose: the child cancels the parent's quarter turn.
	b, _ := s.Bone(1)
	if !almostEqual(b.WorldAngle(), 0, 1e-12) {
		t.Errorf("Expected child world angle 0, got %v", b.WorldAngle())
	}
	if !almostEqual(b.WorldX(), 0, 1e-12) || !almostEqual(b.WorldY(), 1.0, 1e-12) {
		t.Errorf("Expected child origin (0,1), got (%v,%v)", b.WorldX(), b.WorldY())
	}
}

func TestForwardKinematicsChainContinuity(t *testing.T) {
	s, err := New(
		Def{ID: 0, Name: "root", Parent: NoParent, Length: 0.1},
		Def{ID: 1, Name: "spine", Parent: 0, Length: 0.5, RestAngle: math.Pi / 2},
		Def{ID: 2, Name: "l_arm", Parent: 1, Length: 0.4, RestAngle: math.Pi},
		Def{ID: 3, Name: "r_arm", Parent: 1, Length: 0.4},
		Def{ID: 4, Name: "leg", Parent: 0, Length: 0.45, RestAngle: -math.Pi / 2},
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for i, b := range s.Bones() {
		b.CurrentAngle = 0.3 * float64(i)
	}

	if err := ForwardKinematics(s); err != nil {
		t.Fatalf("ForwardKinematics failed: %v", err)
	}

	// Every non-root bone originates exactly at its parent's tip.
	for _, b := range s.Bones() {
		if b.IsRoot() {
			continue
		}
		parent, _ := s.Bone(b.ParentID())
		tipX, tipY := parent.Tip()
		if b.WorldX() != tipX || b.WorldY() != tipY {
			t.Errorf("Bone %d origin (%v,%v) does not match parent tip (%v,%v)",
				b.ID(), b.WorldX(), b.WorldY(), tipX, tipY)
		}
	}
}

func TestForwardKinematicsDeterministic(t *testing.T) {
	build := func() *Skeleton {
		s, err := New(
			Def{ID: 0, Name: "root", Parent: NoParent, Length: 0.1},
			Def{ID: 1, Name: "a", Parent: 0, Length: 0.5},
			Def{ID: 2, Name: "b", Parent: 0, Length: 0.4},
			Def{ID: 3, Name: "c", Parent: 1, Length: 0.3},
		)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		for i, b := range s.Bones() {
			b.CurrentAngle = 0.1 * float64(i+1)
		}
		return s
	}

	s1 := build()
	s2 := build()
	if err := ForwardKinematics(s1); err != nil {
		t.Fatalf("ForwardKinematics failed: %v", err)
	}
	// Second skeleton gets two passes; results must be identical to one.
	if err := ForwardKinematics(s2); err != nil {
		t.Fatalf("ForwardKinematics failed: %v", err)
	}
	if err := ForwardKinematics(s2); err != nil {
		t.Fatalf("ForwardKinematics failed: %v", err)
	}

	for _, b1 := range s1.Bones() {
		b2, _ := s2.Bone(b1.ID())
		if b1.WorldX() != b2.WorldX() || b1.WorldY() != b2.WorldY() || b1.WorldAngle() != b2.WorldAngle() {
			t.Errorf("Bone %d transforms differ between identical skeletons", b1.ID())
		}
	}
}

func TestForwardKinematicsMalformedHierarchy(t *testing.T) {
	// Assembled by hand to bypass construction validation: bone 1 claims
	// parent 0 but is missing from the adjacency, so traversal never
	// reaches it.
	s := &Skeleton{
		bones: map[BoneID]*Bone{
			0: {id: 0, name: "root", parent: NoParent, length: 1, Weight: 1},
			1: {id: 1, name: "lost", parent: 0, length: 1, Weight: 1},
		},
		order:    []BoneID{0, 1},
		children: map[BoneID][]BoneID{},
		byName:   map[string]BoneID{"root": 0, "lost": 1},
	}

	if err := ForwardKinematics(s); err == nil {
		t.Error("Expected error for unreachable bone, got nil")
	}
}
