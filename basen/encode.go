package basen

import (
	"math/big"
)

// Encode encodes data in the given base with the default alphabet.
func Encode(data []byte, base int) string {
	return Default.Encode(data, base)
}

// Encode writes data, read as a little-endian unsigned integer, in the given
// base, least significant digit first. A zero value, including empty data,
// encodes to the empty string.
//
// Encode panics with a *BaseError if base is not in [2, a.Len()].
func (a *Alphabet) Encode(data []byte, base int) string {
	a.mustBase(base)

	n := fromLittleEndian(data)
	if n.Sign() == 0 {
		return ""
	}

	var (
		c   = encodeChunks[base]
		b   = uint64(base)
		div = new(big.Int).SetUint64(c.pow)
		rem = new(big.Int)
		out = make([]byte, 0, EncodedLen(len(data), base))
	)

	for n.Sign() > 0 {
		n.QuoRem(n, div, rem)
		r := rem.Uint64()

		// Top chunk: stop at the most significant non-zero digit.
		if n.Sign() == 0 {
			for r > 0 {
				out = append(out, a.encode[r%b])
				r /= b
			}
			break
		}

		for range c.digits {
			out = append(out, a.encode[r%b])
			r /= b
		}
	}

	return string(out)
}
