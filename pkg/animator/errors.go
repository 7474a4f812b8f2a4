package animator

import "errors"

// ErrClipNotFound is returned when a playback operation names a clip
// that was never registered with the animator.
var ErrClipNotFound = errors.New("clip not found")
