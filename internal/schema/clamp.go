package schema

// Clamp forces v into [lo, hi]. A value already inside the range comes back
// unchanged; a value at a boundary returns the boundary.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampUnit clamps into [0, 1], the range of intensity, arousal, stability
// and confidence.
func ClampUnit(v float64) float64 {
	return Clamp(v, 0.0, 1.0)
}

// ClampSigned clamps into [-1, 1], the range of valence.
func ClampSigned(v float64) float64 {
	return Clamp(v, -1.0, 1.0)
}

// Normalize clamps every present numeric field into its declared range.
// Reconstruction tiers call this so out-of-range values never leave the
// package.
func (e *EmotionalState) Normalize() {
	e.Intensity = ClampUnit(e.Intensity)
	e.Valence = ClampSigned(e.Valence)
	e.Arousal = ClampUnit(e.Arousal)
	if e.Stability != nil {
		clamped := ClampUnit(*e.Stability)
		e.Stability = &clamped
	}
}
