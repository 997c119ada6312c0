package chaos

// The Jia system constants and the RK4 step jiaH are fixed by the system's
// definition, not configurable per key.
const (
	jiaA = 10.0
	jiaB = 8.0 / 3.0
	jiaC = 28.0
	jiaD = 1.0
	jiaE = 1.0
	jiaH = 0.001 // RK4 integration step
)

// jiaState is the 4-D state of the Jia continuous chaotic system.
type jiaState struct {
	x, y, z, w float64
}

// JiaParams bundles the four seed coordinates for the Jia system.
type JiaParams struct {
	X0, Y0, Z0, W0 float64
	BurnIn         int
}

// Jia generates length real values by RK4-integrating the Jia system and
// emitting |x|, |y|, |z|, |w| after every step, once burn-in has elapsed.
// Because each step yields four values, the final contributing step may be
// only partially consumed; the returned slice is truncated to exactly length.
func Jia(p JiaParams, length int) []float64 {
	if length <= 0 {
		return nil
	}
	s := jiaState{p.X0, p.Y0, p.Z0, p.W0}
	for i := 0; i < p.BurnIn; i++ {
		s = jiaRK4Step(s)
	}
	out := make([]float64, 0, length+4)
	for len(out) < length {
		s = jiaRK4Step(s)
		out = append(out, abs(s.x), abs(s.y), abs(s.z), abs(s.w))
	}
	return out[:length]
}

func jiaDeriv(s jiaState) jiaState {
	return jiaState{
		x: -jiaA*(s.x-s.y) + s.w,
		y: -s.x*s.z + jiaC*s.y - s.x,
		z: s.x*s.y - jiaB*s.z,
		w: -jiaD*s.x + jiaE*s.y,
	}
}

func jiaRK4Step(s jiaState) jiaState {
	k1 := jiaDeriv(s)

	s2 := jiaState{
		s.x + 0.5*jiaH*k1.x, s.y + 0.5*jiaH*k1.y,
		s.z + 0.5*jiaH*k1.z, s.w + 0.5*jiaH*k1.w,
	}
	k2 := jiaDeriv(s2)

	s3 := jiaState{
		s.x + 0.5*jiaH*k2.x, s.y + 0.5*jiaH*k2.y,
		s.z + 0.5*jiaH*k2.z, s.w + 0.5*jiaH*k2.w,
	}
	k3 := jiaDeriv(s3)

	s4 := jiaState{
		s.x + jiaH*k3.x, s.y + jiaH*k3.y,
		s.z + jiaH*k3.z, s.w + jiaH*k3.w,
	}
	k4 := jiaDeriv(s4)

	return jiaState{
		x: s.x + (jiaH/6)*(k1.x+2*k2.x+2*k3.x+k4.x),
		y: s.y + (jiaH/6)*(k1.y+2*k2.y+2*k3.y+k4.y),
		z: s.z + (jiaH/6)*(k1.z+2*k2.z+2*k3.z+k4.z),
		w: s.w + (jiaH/6)*(k1.w+2*k2.w+2*k3.w+k4.w),
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
