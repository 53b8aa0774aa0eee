package basen

import (
	"math"
	"math/big"
	"slices"
)

// chunk is the largest power of a base that stays under a limit, and its
// exponent. Working a chunk at a time keeps most of the arithmetic in
// machine words.
type chunk struct {
	pow    uint64
	digits int
}

var (
	// Remainders of the division by pow are split into digits.
	encodeChunks [MaxBase + 1]chunk
	// Digit groups may hold values up to MaxBase-1 whatever the base,
	// so leave room for them.
	decodeChunks [MaxBase + 1]chunk
)

func init() {
	for base := 2; base <= MaxBase; base++ {
		encodeChunks[base] = newChunk(base, math.MaxUint64)
		decodeChunks[base] = newChunk(base, math.MaxUint64/MaxBase)
	}
}

func newChunk(base int, limit uint64) chunk {
	b := uint64(base)
	c := chunk{pow: b, digits: 1}
	for c.pow <= limit/b {
		c.pow *= b
		c.digits++
	}
	return c
}

func fromLittleEndian(data []byte) *big.Int {
	be := slices.Clone(data)
	slices.Reverse(be)
	return new(big.Int).SetBytes(be)
}

func toLittleEndian(n *big.Int) []byte {
	b := n.Bytes()
	if len(b) == 0 {
		return []byte{}
	}
	slices.Reverse(b)
	return b
}

// EncodedLen is an upper bound on the length of the encoding of n bytes in
// the given base.
func EncodedLen(n, base int) int {
	if base < 2 || base > MaxBase {
		panic(&BaseError{Base: base, Max: MaxBase})
	}
	return int(math.Ceil(float64(n) * 8 / math.Log2(float64(base))))
}
