package cipher

import (
	"math"

	"github.com/jrm-1535/jpegcrypt/internal/digits"
)

// pinnedDC reports whether v is a DC value the substitution must pass
// through unchanged: spec.md §3's pinned values, 0 and -1024.
func pinnedDC(v int) bool {
	return v == 0 || v == -1024
}

// DCPermutationKey derives the length-(L-2) swap-key for the DC permutation
// from an Arnold keystream of length L-1, per spec.md §4.4.1. keys are built
// from Arnold because DC needs a distinct, independent permutation source
// from the logistic-driven substitution that follows it.
func DCPermutationKey(arnoldKS []float64, l, alpha int) []int {
	if l < 3 {
		return nil
	}
	return buildSwapKey(arnoldKS, l, l-2, alpha)
}

// PermuteDCForward applies the forward partial Fisher-Yates shuffle to dc in
// place, per spec.md §4.4.2.
func PermuteDCForward(dc []int, key []int) { permuteForward(dc, key) }

// PermuteDCReverse undoes PermuteDCForward, per spec.md §4.4.3.
func PermuteDCReverse(dc []int, key []int) { permuteReverse(dc, key) }

// SubstituteDCEncrypt applies the forward DC modular substitution with sign
// and magnitude feedback chaining, per spec.md §4.4.4. Pinned values (0,
// -1024) pass through untouched and never advance the keystream cursor.
func SubstituteDCEncrypt(dc []int, logisticKS []float64, alpha int) []int {
	out := make([]int, len(dc))
	prevSign, prevMag := 0, 0
	k := 0
	for i, v := range dc {
		if pinnedDC(v) {
			out[i] = v
			continue
		}
		sig := digits.ExtractSignificant(logisticKS[k], alpha)
		ksBit := int(sig % 2)
		signN := 0
		if v < 0 {
			signN = 1
		}
		signC := ksBit ^ signN ^ prevSign
		prevSign = signC

		mag := v
		if mag < 0 {
			mag = -mag
		}
		d := bitLen(mag)
		msb := 1 << (d - 1)
		mask := msb - 1

		km := int(sig) & mask
		sum := (mag + km) & mask
		sub := (km ^ sum ^ prevMag) & mask
		sub |= msb
		prevMag = sub

		if signC == 1 {
			out[i] = -sub
		} else {
			out[i] = sub
		}
		k++
	}
	return out
}

// SubstituteDCDecrypt inverts SubstituteDCEncrypt, per spec.md §4.4.5.
func SubstituteDCDecrypt(dcCipher []int, logisticKS []float64, alpha int) []int {
	out := make([]int, len(dcCipher))
	prevSign, prevMag := 0, 0
	k := 0
	for i, vc := range dcCipher {
		if pinnedDC(vc) {
			out[i] = vc
			continue
		}
		signC := 0
		if vc < 0 {
			signC = 1
		}
		magC := vc
		if magC < 0 {
			magC = -magC
		}
		d := bitLen(magC)
		msb := 1 << (d - 1)
		mask := msb - 1

		sig := digits.ExtractSignificant(logisticKS[k], alpha)
		ksBit := int(sig % 2)
		km := int(sig) & mask

		signP := ksBit ^ prevSign ^ signC
		prevSign = signC

		masked := magC & mask
		unmasked := masked ^ km ^ prevMag
		mag := ((unmasked - km) & mask) | msb
		prevMag = magC

		if signP == 1 {
			out[i] = -mag
		} else {
			out[i] = mag
		}
		k++
	}
	return out
}

// bitLen returns floor(log2(mag))+1 for mag>=1, the JPEG coefficient
// category/bit-length spec.md's substitution preserves.
func bitLen(mag int) int {
	return int(math.Floor(math.Log2(float64(mag)))) + 1
}

