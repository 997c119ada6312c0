// Package chaos implements the three deterministic keystream generators the
// coefficient cipher draws on: the 1-D logistic map, the 4-D Jia system
// integrated with RK4, and the discrete 3-D Arnold map.
package chaos

// fixedPointNudge is added whenever the logistic iterate lands exactly on one
// of its short-cycle fixed points, so the stream never degenerates.
const fixedPointNudge = 1e-14

// LogisticParams bundles the seed and control parameter for the logistic map.
// Valid ranges are x0 in (0,1) and r in (3.57, 4.0]; out-of-range parameters
// are the caller's responsibility per the parameter-domain error policy.
type LogisticParams struct {
	X0     float64
	R      float64
	BurnIn int
}

// Logistic generates length values of the logistic map x <- r*x*(1-x),
// discarding BurnIn iterations first. The anti-fixed-point nudge is applied
// after every iteration, burn-in included, so the burned-in state can never
// leave the stream in a degenerate cycle.
func Logistic(p LogisticParams, length int) []float64 {
	if length <= 0 {
		return nil
	}
	x := p.X0
	for i := 0; i < p.BurnIn; i++ {
		x = iterateLogistic(x, p.R)
	}
	out := make([]float64, length)
	for i := 0; i < length; i++ {
		x = iterateLogistic(x, p.R)
		out[i] = x
	}
	return out
}

func iterateLogistic(x, r float64) float64 {
	x = r * x * (1 - x)
	if x == 0.5 || x == 0.75 {
		x += fixedPointNudge
	}
	return x
}
