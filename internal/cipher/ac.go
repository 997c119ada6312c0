package cipher

import "github.com/jrm-1535/jpegcrypt/internal/digits"

// ACInterBlockKey derives the length-(N-1) swap-key permuting whole AC
// blocks, from a logistic keystream of length N-1, per spec.md §4.5.2.
func ACInterBlockKey(logisticKS []float64, n, alpha int) []int {
	if n < 2 {
		return nil
	}
	return buildSwapKey(logisticKS, n, n-1, alpha)
}

// PermuteBlocksForward swaps whole AC blocks in place per the inter-block
// key, per spec.md §4.5.2.
func PermuteBlocksForward(blocks [][]int, key []int) { permuteForward(blocks, key) }

// PermuteBlocksReverse undoes PermuteBlocksForward.
func PermuteBlocksReverse(blocks [][]int, key []int) { permuteReverse(blocks, key) }

// intraKey builds the two-round intra-block shuffle key from an Arnold
// keystream of length nz-1, per spec.md §4.5.3. Unlike buildSwapKey, this
// formula scales the raw Arnold fraction directly rather than extracting
// significant digits first: intra_key[i] = i + floor(|ks[i]|*(nz-i)) mod
// (nz-i).
func intraKey(arnoldKS []float64, nz int) []int {
	if nz < 2 {
		return nil
	}
	key := make([]int, nz-1)
	for i := 0; i < nz-1; i++ {
		span := nz - i
		offset := int(absf(arnoldKS[i])*float64(span)) % span
		key[i] = i + offset
	}
	return key
}

// intraShuffleRound applies one round of the intra-block shuffle to a
// 63-length AC vector in place conceptually (a new slice is returned),
// re-decomposing into groups, shuffling only the non-zero-terminated groups
// with key, and reinserting the zero groups at their (possibly new) slot
// positions, per spec.md §4.5.3.
//
// If the non-zero group count does not match len(key)+1, the round is
// skipped (the offending shuffle is an index-out-of-range hazard per
// spec.md §7 kind 3) and ac is returned unchanged.
func intraShuffleRound(ac []int, key []int, reverse bool) []int {
	groups := decomposeGroups(ac)
	nz, zeroSlots := splitNonZero(groups)
	if len(nz) != len(key)+1 {
		return ac
	}
	zeroValues := make([]acGroup, len(zeroSlots))
	for i, slot := range zeroSlots {
		zeroValues[i] = groups[slot]
	}
	if reverse {
		permuteReverse(nz, key)
	} else {
		permuteForward(nz, key)
	}
	return flattenGroups(reinsertZero(nz, zeroSlots, zeroValues))
}

// IntraBlockShuffleForward runs the two-round forward intra-block shuffle on
// a single block's AC vector, per spec.md §4.5.3. arnoldKS must carry enough
// values for the first decomposition's non-zero-group count; fewer than 2
// non-zero groups means no shuffle is needed and ac is returned unchanged.
func IntraBlockShuffleForward(ac []int, arnoldKS []float64) []int {
	groups := decomposeGroups(ac)
	nz, _ := splitNonZero(groups)
	if len(nz) < 2 {
		return append([]int{}, ac...)
	}
	key := intraKey(arnoldKS, len(nz))
	round1 := intraShuffleRound(ac, key, false)
	round2 := intraShuffleRound(round1, key, false)
	return round2
}

// IntraBlockShuffleReverse undoes IntraBlockShuffleForward: two rounds of
// unshuffle with the same key, in reverse round order, per spec.md §4.5.3.
func IntraBlockShuffleReverse(ac []int, arnoldKS []float64) []int {
	groups := decomposeGroups(ac)
	nz, _ := splitNonZero(groups)
	if len(nz) < 2 {
		return append([]int{}, ac...)
	}
	key := intraKey(arnoldKS, len(nz))
	// The forward pass applied round1 then round2 using the decomposition
	// of the *input* block for round1's group boundaries and the
	// round1-output decomposition for round2's. Reversing must therefore
	// undo round2 first, against the still-round2-shaped vector.
	unround2 := intraShuffleRound(ac, key, true)
	unround1 := intraShuffleRound(unround2, key, true)
	return unround1
}

// NonZeroGroupCount returns the number of non-zero-terminated groups a
// 63-length AC vector decomposes into, the count the intra-block shuffle
// needs to size its Arnold keystream request, per spec.md §4.5.3.
func NonZeroGroupCount(ac []int) int {
	nz, _ := splitNonZero(decomposeGroups(ac))
	return len(nz)
}

// NonZeroCount returns how many of the 63 AC coefficients in ac are
// non-zero; the exact eligible count the inter-block substitution keystream
// must be sized to, per spec.md §9's keystream length discipline.
func NonZeroCount(ac []int) int {
	n := 0
	for _, v := range ac {
		if v != 0 {
			n++
		}
	}
	return n
}

// SubstituteACEncrypt applies the forward inter-block AC substitution with
// feedback chaining over the concatenation of every non-zero AC coefficient
// across all blocks, per spec.md §4.5.4. nonZero is mutated in place and
// also returned.
func SubstituteACEncrypt(nonZero []int, logisticKS []float64) []int {
	prevSign, prevMag := 0, 0
	for i, v := range nonZero {
		signN := 0
		if v < 0 {
			signN = 1
		}
		mag := v
		if mag < 0 {
			mag = -mag
		}

		if mag == 1 {
			sig := digits.ExtractSignificant(logisticKS[i], 1)
			ksBit := int(sig & 1)
			signC := ksBit ^ prevSign ^ signN
			prevSign, prevMag = signC, 1
			nonZero[i] = signed(1, signC)
			continue
		}

		d := bitLen(mag)
		msb := 1 << (d - 1)
		mask := msb - 1
		sig := digits.ExtractSignificant(logisticKS[i], maxInt(1, d))
		ksBit := int(sig & 1)
		km := int(sig) & mask

		signC := ksBit ^ prevSign ^ signN
		sum := (mag + i) & mask
		newMag := ((km ^ sum ^ prevMag) & mask) | msb

		prevSign, prevMag = signC, newMag
		nonZero[i] = signed(newMag, signC)
	}
	return nonZero
}

// SubstituteACDecrypt inverts SubstituteACEncrypt, per spec.md §4.5.4.
func SubstituteACDecrypt(nonZero []int, logisticKS []float64) []int {
	prevSign, prevMag := 0, 0
	for i, vc := range nonZero {
		signC := 0
		if vc < 0 {
			signC = 1
		}
		magC := vc
		if magC < 0 {
			magC = -magC
		}

		if magC == 1 {
			sig := digits.ExtractSignificant(logisticKS[i], 1)
			ksBit := int(sig & 1)
			signP := ksBit ^ prevSign ^ signC
			prevSign, prevMag = signC, 1
			nonZero[i] = signed(1, signP)
			continue
		}

		d := bitLen(magC)
		msb := 1 << (d - 1)
		mask := msb - 1
		sig := digits.ExtractSignificant(logisticKS[i], maxInt(1, d))
		ksBit := int(sig & 1)
		km := int(sig) & mask

		signP := ksBit ^ prevSign ^ signC
		cipherLow := magC & mask
		unmasked := (cipherLow ^ km ^ prevMag) - i
		mag := (unmasked & mask) | msb

		prevSign, prevMag = signC, magC
		nonZero[i] = signed(mag, signP)
	}
	return nonZero
}

func signed(mag, sign int) int {
	if sign == 1 {
		return -mag
	}
	return mag
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
