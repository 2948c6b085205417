package sample

import "math"

const (
	pi  = float32(math.Pi)
	tau = float32(2 * math.Pi)
)

// CleanAngle wraps angle in radians into range [-Pi, Pi].
func CleanAngle(angle float32) float32 {
	a := float32(math.Mod(float64(angle), float64(tau)))
	a = float32(math.Mod(float64(a+tau), float64(tau)))
	if a > pi {
		return a - tau
	}
	return a
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float32) float32 {
	return (1-t)*a + t*b
}
