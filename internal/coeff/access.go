package coeff

// ExtractDC returns the concatenated DC sequence for ch, in canonical order:
// components ascending, rows top-to-bottom, columns left-to-right (the order
// Blocks already returns blocks in).
func ExtractDC(img Image, ch Channel) []int {
	var out []int
	for _, c := range componentsFor(img, ch) {
		for _, b := range img.Blocks(c) {
			out = append(out, int(b[0]))
		}
	}
	return out
}

// ApplyDC writes dc back into the DC slot (index 0) of every block in ch, in
// the same canonical order ExtractDC produced it in. len(dc) must equal the
// length ExtractDC(img, ch) returned; a mismatch is an index-out-of-range
// hazard the caller must avoid by caching lengths (spec.md §7 kind 3).
func ApplyDC(img Image, ch Channel, dc []int) {
	i := 0
	for _, c := range componentsFor(img, ch) {
		blocks := img.Blocks(c)
		for bi := range blocks {
			if i >= len(dc) {
				return
			}
			blocks[bi][0] = int32(dc[i])
			i++
		}
		img.SetBlocks(c, blocks)
	}
}

// ExtractAC returns the AC vectors (indices 1..63 of every block, in
// canonical order) for ch, outer length = block count, inner length 63.
func ExtractAC(img Image, ch Channel) [][]int {
	var out [][]int
	for _, c := range componentsFor(img, ch) {
		for _, b := range img.Blocks(c) {
			v := make([]int, 63)
			for i := 1; i < 64; i++ {
				v[i-1] = int(b[i])
			}
			out = append(out, v)
		}
	}
	return out
}

// ApplyAC writes ac back into indices 1..63 of every block in ch, in the same
// canonical order ExtractAC produced it in.
func ApplyAC(img Image, ch Channel, ac [][]int) {
	i := 0
	for _, c := range componentsFor(img, ch) {
		blocks := img.Blocks(c)
		for bi := range blocks {
			if i >= len(ac) {
				return
			}
			for k := 1; k < 64; k++ {
				blocks[bi][k] = int32(ac[i][k-1])
			}
			i++
		}
		img.SetBlocks(c, blocks)
	}
}
