package masterkey

import (
	"crypto/rand"
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// Generate produces a fresh master key from crypto/rand seed material. It is
// the "source of randomness for fresh-key generation" spec.md §1(d) names as
// an external collaborator: the core cipher never calls this itself, only the
// CLI does, when asked to mint a new key.
func Generate() (*Key, error) {
	var buf [8 * 5]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return nil, errors.Wrap(err, "masterkey: generate")
	}

	k := &Key{
		LogisticX0: 0.01 + 0.98*unitFloat(buf[0:8]),       // (0,1)
		LogisticR:  3.58 + (4.0-3.58)*unitFloat(buf[8:16]), // (3.57,4.0]
		JiaX0:      0.1 + unitFloat(buf[16:24]),
		JiaY0:      0.1 + unitFloat(buf[24:32]),
		JiaZ0:      0.1 + unitFloat(buf[32:40]),
		Alpha:      DefaultAlpha,
		BurnIn:     DefaultBurnIn,
	}
	var w [8]byte
	if _, err := rand.Read(w[:]); err != nil {
		return nil, errors.Wrap(err, "masterkey: generate")
	}
	k.JiaW0 = 0.1 + unitFloat(w[:])
	return k, nil
}

// unitFloat maps 8 random bytes onto [0,1).
func unitFloat(b []byte) float64 {
	u := binary.BigEndian.Uint64(b)
	return math.Float64frombits(0x3ff<<52|u>>12) - 1.0
}
