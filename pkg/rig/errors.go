package rig

import "errors"

var (
	// ErrBoneNotFound is returned when a bone id does not exist in the
	// skeleton.
	ErrBoneNotFound = errors.New("bone not found")

	// ErrDuplicateBone is returned when adding a bone whose id is
	// already taken.
	ErrDuplicateBone = errors.New("duplicate bone id")

	// ErrUnknownParent is returned when a bone references a parent id
	// that is not part of the skeleton.
	ErrUnknownParent = errors.New("unknown parent bone")

	// ErrInvalidBone is returned for malformed bone definitions.
	ErrInvalidBone = errors.New("invalid bone definition")

	// ErrCyclicHierarchy is returned when parent links form a cycle.
	ErrCyclicHierarchy = errors.New("cyclic bone hierarchy")
)
