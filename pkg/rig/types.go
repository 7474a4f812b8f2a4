// Package rig implements a 2D skeletal rig: bones arranged in a tree,
// forward kinematics to place them in world space, and a FABRIK inverse
// kinematics solver for end-effector targeting.
//
// A skeleton is built once from bone definitions and then mutated in place
// every frame: clip playback or IK writes bone angles, and a forward
// kinematics pass refreshes the cached world transforms. World transforms
// are valid only immediately after that pass.
//
// The package is single-threaded by contract: a skeleton must be driven
// from one goroutine at a time.
package rig

import "math"

// BoneID identifies a bone within a skeleton.
type BoneID int

// NoParent marks a bone definition as a root bone.
const NoParent BoneID = -1

// Def describes one bone when constructing a skeleton.
type Def struct {
	// ID must be unique within the skeleton and non-negative.
	ID BoneID

	// Name is a human-readable label used for lookup, not identity.
	Name string

	// Parent is the id of the parent bone, or NoParent for a root.
	Parent BoneID

	// Length is the fixed segment length. Must be > 0.
	Length float64

	// RestAngle is the author-time neutral angle in radians, composed
	// with the parent's world orientation before CurrentAngle.
	RestAngle float64

	// Weight is the blending influence factor. Zero means default (1.0).
	Weight float64
}

// Bone is a single rigid segment of a skeleton.
//
// Structural fields (id, name, parent, length, rest angle) are fixed at
// construction. CurrentAngle and Weight are the mutable pose inputs. The
// world transform is a cache written by ForwardKinematics; it is stale
// after any angle change until the next pass.
type Bone struct {
	id        BoneID
	name      string
	parent    BoneID
	length    float64
	restAngle float64

	// CurrentAngle is the animated angle in radians, relative to the
	// parent's world orientation after RestAngle.
	CurrentAngle float64

	// Weight is a scalar influence factor for blending consumers.
	// It does not affect FK or IK.
	Weight float64

	// World transform cache
	worldX     float64
	worldY     float64
	worldAngle float64
}

// ID returns the bone's unique id.
func (b *Bone) ID() BoneID { return b.id }

// Name returns the bone's human-readable name.
func (b *Bone) Name() string { return b.name }

// ParentID returns the parent bone id, or NoParent for a root bone.
func (b *Bone) ParentID() BoneID { return b.parent }

// IsRoot reports whether the bone has no parent.
func (b *Bone) IsRoot() bool { return b.parent == NoParent }

// Length returns the fixed segment length.
func (b *Bone) Length() float64 { return b.length }

// RestAngle returns the author-time neutral angle in radians.
func (b *Bone) RestAngle() float64 { return b.restAngle }

// WorldX returns the x coordinate of the bone's origin end in world
// space, as of the last ForwardKinematics pass.
func (b *Bone) WorldX() float64 { return b.worldX }

// WorldY returns the y coordinate of the bone's origin end in world
// space, as of the last ForwardKinematics pass.
func (b *Bone) WorldY() float64 { return b.worldY }

// WorldAngle returns the bone's absolute orientation in radians, as of
// the last ForwardKinematics pass.
func (b *Bone) WorldAngle() float64 { return b.worldAngle }

// Tip returns the bone's distal end in world space, derived from the
// cached world transform.
func (b *Bone) Tip() (x, y float64) {
	return b.worldX + b.length*math.Cos(b.worldAngle),
		b.worldY + b.length*math.Sin(b.worldAngle)
}
