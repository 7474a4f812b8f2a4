package rig

import (
	"fmt"
	"sort"
)

// Skeleton is a tree (or forest) of bones addressed by id.
//
// The hierarchy is fixed once built; only bone angles and the world
// origin change at runtime. Parent links are validated at construction,
// so every bone is reachable from a root and no cycles exist.
type Skeleton struct {
	// RootX, RootY anchor every root bone in world space.
	RootX float64
	RootY float64

	bones    map[BoneID]*Bone
	byName   map[string]BoneID
	order    []BoneID
	children map[BoneID][]BoneID
}

// New builds a skeleton from bone definitions. Definitions may arrive in
// any order; parents are resolved across the whole set. It fails if an
// id repeats, a length is not positive, a parent id is unknown, or the
// parent links form a cycle.
func New(defs ...Def) (*Skeleton, error) {
	s := &Skeleton{
		bones:    make(map[BoneID]*Bone, len(defs)),
		byName:   make(map[string]BoneID, len(defs)),
		children: make(map[BoneID][]BoneID),
	}

	for _, def := range defs {
		if err := validateDef(def); err != nil {
			return nil, err
		}
		if _, exists := s.bones[def.ID]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateBone, def.ID)
		}
		s.insert(def)
	}

	for _, id := range s.order {
		b := s.bones[id]
		if b.parent == NoParent {
			continue
		}
		if _, ok := s.bones[b.parent]; !ok {
			return nil, fmt.Errorf("%w: bone %d references parent %d", ErrUnknownParent, b.id, b.parent)
		}
	}

	if err := s.checkAcyclic(); err != nil {
		return nil, err
	}

	return s, nil
}

// AddBone appends a single bone to an existing skeleton. Unlike New, the
// parent must already be present, which keeps the hierarchy acyclic by
// construction.
func (s *Skeleton) AddBone(def Def) error {
	if err := validateDef(def); err != nil {
		return err
	}
	if _, exists := s.bones[def.ID]; exists {
		return fmt.Errorf("%w: %d", ErrDuplicateBone, def.ID)
	}
	if def.Parent != NoParent {
		if _, ok := s.bones[def.Parent]; !ok {
			return fmt.Errorf("%w: bone %d references parent %d", ErrUnknownParent, def.ID, def.Parent)
		}
	}
	s.insert(def)
	return nil
}

func validateDef(def Def) error {
	if def.ID < 0 {
		return fmt.Errorf("%w: negative id %d", ErrInvalidBone, def.ID)
	}
	if def.Length <= 0 {
		return fmt.Errorf("%w: bone %d has non-positive length %v", ErrInvalidBone, def.ID, def.Length)
	}
	if def.Parent == def.ID {
		return fmt.Errorf("%w: bone %d is its own parent", ErrCyclicHierarchy, def.ID)
	}
	return nil
}

func (s *Skeleton) insert(def Def) {
	b := &Bone{
		id:        def.ID,
		name:      def.Name,
		parent:    def.Parent,
		length:    def.Length,
		restAngle: def.RestAngle,
		Weight:    def.Weight,
	}
	if b.Weight == 0 {
		b.Weight = 1.0
	}

	s.bones[def.ID] = b
	s.order = append(s.order, def.ID)
	if _, taken := s.byName[def.Name]; !taken {
		s.byName[def.Name] = def.ID
	}
	if def.Parent != NoParent {
		s.children[def.Parent] = append(s.children[def.Parent], def.ID)
	}
}

// checkAcyclic walks every bone up to its root. The step budget bounds
// the walk so a cycle cannot spin forever.
func (s *Skeleton) checkAcyclic() error {
	for _, id := range s.order {
		steps := 0
		for cur := s.bones[id].parent; cur != NoParent; cur = s.bones[cur].parent {
			steps++
			if steps > len(s.bones) {
				return fmt.Errorf("%w: reached from bone %d", ErrCyclicHierarchy, id)
			}
		}
	}
	return nil
}

// Bone returns the bone with the given id.
func (s *Skeleton) Bone(id BoneID) (*Bone, bool) {
	b, ok := s.bones[id]
	return b, ok
}

// BoneByName returns the first bone added with the given name.
func (s *Skeleton) BoneByName(name string) (*Bone, bool) {
	id, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return s.bones[id], true
}

// Children returns the direct children of a bone in insertion order.
func (s *Skeleton) Children(id BoneID) []*Bone {
	ids := s.children[id]
	out := make([]*Bone, len(ids))
	for i, cid := range ids {
		out[i] = s.bones[cid]
	}
	return out
}

// Roots returns the root bones in insertion order.
func (s *Skeleton) Roots() []*Bone {
	var roots []*Bone
	for _, id := range s.order {
		if b := s.bones[id]; b.IsRoot() {
			roots = append(roots, b)
		}
	}
	return roots
}

// Bones returns every bone sorted by id.
func (s *Skeleton) Bones() []*Bone {
	out := make([]*Bone, 0, len(s.bones))
	for _, b := range s.bones {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Len returns the number of bones.
func (s *Skeleton) Len() int { return len(s.bones) }

// Chain returns the bones from the skeletal root of end's lineage down
// to end itself, following parent links. The result is ordered root
// first.
func (s *Skeleton) Chain(end BoneID) ([]*Bone, error) {
	b, ok := s.bones[end]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrBoneNotFound, end)
	}

	var chain []*Bone
	visited := make(map[BoneID]bool)
	for {
		if visited[b.id] {
			return nil, fmt.Errorf("%w: reached from bone %d", ErrCyclicHierarchy, end)
		}
		visited[b.id] = true
		chain = append(chain, b)
		if b.parent == NoParent {
			break
		}
		next, ok := s.bones[b.parent]
		if !ok {
			return nil, fmt.Errorf("%w: bone %d references parent %d", ErrUnknownParent, b.id, b.parent)
		}
		b = next
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}
