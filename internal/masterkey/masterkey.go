// Package masterkey implements the typed seed bundle that drives every
// keystream in the cipher, its plain-text file format, and the
// keystream-generation facades that hide which chaotic map backs which role
// from the pipelines that consume it.
package masterkey

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"

	"github.com/jrm-1535/jpegcrypt/internal/chaos"
)

// Default burn-in and logistic parameters, mirroring the values the original
// tool shipped with (original_source/src/master_key.hpp).
const (
	DefaultLogisticX0 = 0.678
	DefaultLogisticR  = 4.0
	DefaultAlpha      = 15
	DefaultBurnIn     = 200
)

// arnoldA..arnoldModN are the Arnold map coefficients and modulus; spec.md §4.4.1 derives
// the Arnold seeds from the Jia seeds rather than storing them separately.
const (
	arnoldA    = 2
	arnoldB    = 1
	arnoldC    = 1
	arnoldD    = 1
	arnoldModN = 256
)

// Key is the immutable bundle of chaotic-map seeds and parameters that
// identifies one encryption session. It is safe for concurrent read-only use
// by the four channel pipelines.
type Key struct {
	LogisticX0 float64
	LogisticR  float64

	JiaX0, JiaY0, JiaZ0, JiaW0 float64

	Alpha  int
	BurnIn int
}

// Validate checks the seed domains spec.md §3 requires. It never mutates the
// key; callers decide whether to reject or proceed on a degenerate key.
func (k *Key) Validate() error {
	if k.LogisticX0 <= 0 || k.LogisticX0 >= 1 {
		return errors.Errorf("logistic_x0 %v out of (0,1)", k.LogisticX0)
	}
	if k.LogisticR <= 3.57 || k.LogisticR > 4.0 {
		return errors.Errorf("logistic_r %v out of (3.57,4.0]", k.LogisticR)
	}
	if k.Alpha < 1 || k.Alpha > digitsMaxAlpha {
		return errors.Errorf("alpha %d out of [1,%d]", k.Alpha, digitsMaxAlpha)
	}
	return nil
}

const digitsMaxAlpha = 17

// Logistic returns length values of the logistic keystream for this key.
func (k *Key) Logistic(length int) []float64 {
	return chaos.Logistic(chaos.LogisticParams{
		X0: k.LogisticX0, R: k.LogisticR, BurnIn: k.BurnIn,
	}, length)
}

// Jia returns length values of the raw Jia keystream for this key.
func (k *Key) Jia(length int) []float64 {
	return chaos.Jia(chaos.JiaParams{
		X0: k.JiaX0, Y0: k.JiaY0, Z0: k.JiaZ0, W0: k.JiaW0, BurnIn: k.BurnIn,
	}, length)
}

// Arnold returns length steps (3*length reals) of the Arnold keystream, with
// the Arnold integer seeds derived from the Jia seeds per spec.md §4.4.1:
// x0 = floor(jia_x0*1000) mod 256, likewise y0, z0.
func (k *Key) Arnold(length int) []float64 {
	return chaos.Arnold(chaos.ArnoldParams{
		X0: arnoldSeed(k.JiaX0), Y0: arnoldSeed(k.JiaY0), Z0: arnoldSeed(k.JiaZ0),
		A: arnoldA, B: arnoldB, C: arnoldC, D: arnoldD, ModN: arnoldModN,
		BurnIn: k.BurnIn,
	}, length)
}

// ArnoldValues returns exactly n Arnold output values (not steps), rounding
// the step request up so at least n values are produced before truncating.
// This is the reading spec.md §4.5.3 uses for the intra-block shuffle's
// keystream request ("producing |NZ|-1 values"), distinct from §4.4.1's DC
// permutation request which sizes the step count directly.
func (k *Key) ArnoldValues(n int) []float64 {
	if n <= 0 {
		return nil
	}
	steps := (n + 2) / 3
	full := k.Arnold(steps)
	if len(full) > n {
		full = full[:n]
	}
	return full
}

func arnoldSeed(jiaSeed float64) int {
	v := int(math.Floor(jiaSeed*1000)) % arnoldModN
	if v < 0 {
		v += arnoldModN
	}
	return v
}

// Load reads a master key from its three-line plain-text file format:
//
//	logistic_x0 logistic_r
//	jia_x0 jia_y0 jia_z0 jia_w0
//	alpha burn_in
func Load(path string) (*Key, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "masterkey: open")
	}
	defer f.Close()
	return Read(f)
}

// Read parses a master key from r, using the same three-line format as Load.
func Read(r io.Reader) (*Key, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 256), 4096)
	sc.Split(bufio.ScanWords)

	var k Key
	fields := []*float64{&k.LogisticX0, &k.LogisticR, &k.JiaX0, &k.JiaY0, &k.JiaZ0, &k.JiaW0}
	for i, f := range fields {
		if !sc.Scan() {
			return nil, errors.Errorf("masterkey: missing field %d", i)
		}
		if _, err := fmt.Sscanf(sc.Text(), "%g", f); err != nil {
			return nil, errors.Wrapf(err, "masterkey: field %d", i)
		}
	}
	ints := []*int{&k.Alpha, &k.BurnIn}
	for i, f := range ints {
		if !sc.Scan() {
			return nil, errors.Errorf("masterkey: missing integer field %d", i)
		}
		if _, err := fmt.Sscanf(sc.Text(), "%d", f); err != nil {
			return nil, errors.Wrapf(err, "masterkey: integer field %d", i)
		}
	}
	return &k, nil
}

// Save writes the master key to path in the format Load expects, with at
// least 17 significant decimal digits per double, per spec.md §6.
func (k *Key) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "masterkey: create")
	}
	defer f.Close()
	return k.Write(f)
}

// Write serializes the master key to w in the format Save/Load use.
func (k *Key) Write(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%.17g %.17g\n%.17g %.17g %.17g %.17g\n%d %d\n",
		k.LogisticX0, k.LogisticR,
		k.JiaX0, k.JiaY0, k.JiaZ0, k.JiaW0,
		k.Alpha, k.BurnIn)
	if err != nil {
		return errors.Wrap(err, "masterkey: write")
	}
	return nil
}
