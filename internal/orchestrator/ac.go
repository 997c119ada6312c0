package orchestrator

import (
	"github.com/jrm-1535/jpegcrypt/internal/cipher"
	"github.com/jrm-1535/jpegcrypt/internal/coeff"
	"github.com/jrm-1535/jpegcrypt/internal/masterkey"
)

// runAC runs the AC pipeline (inter-block permutation, two-round intra-block
// shuffle, inter-block substitution) for one channel, per spec.md §4.5.5.
func runAC(img coeff.Image, ch coeff.Channel, key *masterkey.Key, dir Direction) error {
	blocks := coeff.ExtractAC(img, ch)
	n := len(blocks)
	if n == 0 {
		return nil
	}

	var interKey []int
	if n >= 2 {
		logisticInter := key.Logistic(n - 1)
		interKey = cipher.ACInterBlockKey(logisticInter, n, key.Alpha)
	}

	switch dir {
	case Encrypt:
		if interKey != nil {
			cipher.PermuteBlocksForward(blocks, interKey)
		}
		shuffleIntraBlocks(blocks, key, false)
		substituteAC(blocks, key, false)
	case Decrypt:
		substituteAC(blocks, key, true)
		shuffleIntraBlocks(blocks, key, true)
		if interKey != nil {
			cipher.PermuteBlocksReverse(blocks, interKey)
		}
	}

	coeff.ApplyAC(img, ch, blocks)
	return nil
}

// shuffleIntraBlocks runs the two-round intra-block shuffle over every block
// in blocks, in their current physical order. The Arnold keystream is drawn
// from one continuing cursor across the whole channel pass (rather than
// restarting per block), so that blocks with equal non-zero-group counts do
// not receive identical shuffle patterns; see DESIGN.md.
func shuffleIntraBlocks(blocks [][]int, key *masterkey.Key, reverse bool) {
	total := 0
	nzCounts := make([]int, len(blocks))
	for i, b := range blocks {
		nz := cipher.NonZeroGroupCount(b)
		nzCounts[i] = nz
		if nz >= 2 {
			total += nz - 1
		}
	}
	arnoldKS := key.ArnoldValues(total)

	cursor := 0
	for i, b := range blocks {
		nz := nzCounts[i]
		if nz < 2 {
			continue
		}
		need := nz - 1
		ks := arnoldKS[cursor : cursor+need]
		cursor += need
		if reverse {
			blocks[i] = cipher.IntraBlockShuffleReverse(b, ks)
		} else {
			blocks[i] = cipher.IntraBlockShuffleForward(b, ks)
		}
	}
}

// substituteAC gathers every non-zero AC coefficient across all blocks, runs
// the feedback substitution over the concatenation, and scatters the result
// back, per spec.md §4.5.4.
func substituteAC(blocks [][]int, key *masterkey.Key, reverse bool) {
	var nonZero []int
	type pos struct{ block, idx int }
	var positions []pos
	for bi, b := range blocks {
		for i, v := range b {
			if v != 0 {
				nonZero = append(nonZero, v)
				positions = append(positions, pos{bi, i})
			}
		}
	}
	if len(nonZero) == 0 {
		return
	}

	logisticKS := key.Logistic(len(nonZero))
	if reverse {
		cipher.SubstituteACDecrypt(nonZero, logisticKS)
	} else {
		cipher.SubstituteACEncrypt(nonZero, logisticKS)
	}

	for i, p := range positions {
		blocks[p.block][p.idx] = nonZero[i]
	}
}
