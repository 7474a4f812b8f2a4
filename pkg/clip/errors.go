package clip

import "errors"

var (
	// ErrInvalidKeyframe is returned for malformed keyframes, such as a
	// negative timestamp.
	ErrInvalidKeyframe = errors.New("invalid keyframe")

	// ErrDuplicateKeyframe is returned when a keyframe's time collides
	// with one already in the clip.
	ErrDuplicateKeyframe = errors.New("duplicate keyframe time")

	// ErrMissingBone is returned when a bone appears in only one of the
	// two keyframes bracketing a sample time.
	ErrMissingBone = errors.New("bone missing from keyframe")

	// ErrInvalidClip is returned when clip data is malformed.
	ErrInvalidClip = errors.New("invalid clip data")
)
