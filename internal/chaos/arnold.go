package chaos

// ArnoldParams bundles the discrete 3-D Arnold cat map's integer state,
// coefficients and modulus. Defaults per spec.md are a=2, b=1, c=1, d=1,
// modN=256.
type ArnoldParams struct {
	X0, Y0, Z0     int
	A, B, C, D     int
	ModN           int
	BurnIn         int
}

// Arnold generates length steps of the discrete 3-D Arnold map, after BurnIn
// steps are discarded, emitting x/modN, y/modN, z/modN as reals in [0,1) for
// every step. The returned slice therefore has length 3*length.
func Arnold(p ArnoldParams, length int) []float64 {
	if length <= 0 {
		return nil
	}
	x, y, z := p.X0, p.Y0, p.Z0
	for i := 0; i < p.BurnIn; i++ {
		x, y, z = arnoldStep(x, y, z, p)
	}
	out := make([]float64, 0, 3*length)
	modN := float64(p.ModN)
	for i := 0; i < length; i++ {
		x, y, z = arnoldStep(x, y, z, p)
		out = append(out, float64(x)/modN, float64(y)/modN, float64(z)/modN)
	}
	return out
}

func arnoldStep(x, y, z int, p ArnoldParams) (int, int, int) {
	a, b, c, d, n := p.A, p.B, p.C, p.D, p.ModN

	nx := mod(x+a*z, n)
	ny := mod(b*c*x+y+a*b*c*z+c*z, n)
	nz := mod(b*c*d*x+b*d+d*y+a*b*c*d*z+a*b*z+c*d*z+z, n)
	return nx, ny, nz
}

func mod(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
