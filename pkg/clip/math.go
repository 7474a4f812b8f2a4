package clip

// lerp performs linear interpolation between two values.
func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// clonePose copies a pose so callers cannot mutate clip internals.
func clonePose(p Pose) Pose {
	out := make(Pose, len(p))
	for id, angle := range p {
		out[id] = angle
	}
	return out
}
