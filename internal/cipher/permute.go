// Package cipher implements the DC and AC coefficient pipelines: the
// permutation + modular substitution-with-feedback transforms that form the
// core of the format-preserving cipher.
package cipher

import "github.com/jrm-1535/jpegcrypt/internal/digits"

// buildSwapKey builds a swap-key of swaps swap entries from a keystream of
// at least swaps values, per spec.md §4.4.1/§4.5.2:
// key[m] = m + (extract_sig(|ks[m]|, alpha) mod (totalLen-m)), for
// m = 0..swaps-1, so key[m] in [m, totalLen-1]. A full Fisher-Yates shuffle
// of a totalLen-length sequence uses swaps = totalLen-1; spec.md's DC
// permutation instead stops two short (swaps = totalLen-2), leaving the
// shuffle partial.
func buildSwapKey(ks []float64, totalLen, swaps, alpha int) []int {
	if swaps < 1 {
		return nil
	}
	key := make([]int, swaps)
	for m := 0; m < swaps; m++ {
		sig := digits.ExtractSignificant(absf(ks[m]), alpha)
		offset := int(sig % uint64(totalLen-m))
		key[m] = m + offset
	}
	return key
}

// permuteForward applies a partial Fisher-Yates shuffle to s in place, using
// key[m] in [m, len(s)-1], for m = 0..len(key)-1.
func permuteForward[T any](s []T, key []int) {
	for m := 0; m < len(key); m++ {
		s[m], s[key[m]] = s[key[m]], s[m]
	}
}

// permuteReverse undoes permuteForward by replaying the same swaps in
// descending order.
func permuteReverse[T any](s []T, key []int) {
	for m := len(key) - 1; m >= 0; m-- {
		s[m], s[key[m]] = s[key[m]], s[m]
	}
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
