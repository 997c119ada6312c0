package orchestrator

import (
	"github.com/jrm-1535/jpegcrypt/internal/cipher"
	"github.com/jrm-1535/jpegcrypt/internal/coeff"
	"github.com/jrm-1535/jpegcrypt/internal/masterkey"
)

// runDC runs the DC pipeline (permutation + substitution) for one channel,
// extracting once and applying once per spec.md §9's "extract once, compute
// in-memory, apply once" design note.
func runDC(img coeff.Image, ch coeff.Channel, key *masterkey.Key, dir Direction) error {
	dc := coeff.ExtractDC(img, ch)
	l := len(dc)
	if l == 0 {
		return nil
	}

	var permKey []int
	if l >= 3 {
		arnoldKS := key.Arnold(l - 1)
		permKey = cipher.DCPermutationKey(arnoldKS, l, key.Alpha)
	}

	logisticKS := key.Logistic(eligibleDCCount(dc))

	switch dir {
	case Encrypt:
		if permKey != nil {
			cipher.PermuteDCForward(dc, permKey)
		}
		dc = cipher.SubstituteDCEncrypt(dc, logisticKS, key.Alpha)
	case Decrypt:
		dc = cipher.SubstituteDCDecrypt(dc, logisticKS, key.Alpha)
		if permKey != nil {
			cipher.PermuteDCReverse(dc, permKey)
		}
	}

	coeff.ApplyDC(img, ch, dc)
	return nil
}

// eligibleDCCount counts the DC values the substitution stage will actually
// advance the keystream cursor for: every value except the pinned 0 and
// -1024, per spec.md §9's keystream length discipline.
func eligibleDCCount(dc []int) int {
	n := 0
	for _, v := range dc {
		if v != 0 && v != -1024 {
			n++
		}
	}
	return n
}
