package game

import "math"

// Point is a position in world coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// distSq returns the squared distance between two points. Collision code
// compares squared distances against squared radii to avoid sqrt in the
// per-tick hot path.
func distSq(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// angleDiff returns the shortest signed angular residual from `from` to
// `to`, wrapped into (-π, π].
func angleDiff(from, to float64) float64 {
	d := math.Mod(to-from, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	}
	if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// clamp limits v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
