package basen

import (
	"math/big"
	"unicode/utf8"
)

// Decode decodes s in the given base with the default alphabet.
func Decode(s string, base int) ([]byte, error) {
	return Default.Decode(s, base)
}

// Decode reverses Encode. Every character must be a symbol of the
// alphabet; the first one that is not is reported as an
// *InvalidCharacterError and nothing is decoded. Symbols whose value is not
// below base are accepted and weighted like any other digit.
//
// The result is the minimal little-endian representation of the decoded
// value, so a zero value gives an empty slice.
//
// Decode panics with a *BaseError if base is not in [2, a.Len()].
func (a *Alphabet) Decode(s string, base int) ([]byte, error) {
	a.mustBase(base)

	digits := make([]byte, 0, len(s))
	pos := 0
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				r = rune(s[i])
			}
		}

		d, ok := a.Index(r)
		if !ok {
			return nil, &InvalidCharacterError{Char: r, Pos: pos}
		}
		digits = append(digits, byte(d))
		pos++
	}

	var (
		c    = decodeChunks[base]
		b    = uint64(base)
		n    = new(big.Int)
		mul  = new(big.Int)
		word = new(big.Int)
	)

	// Horner's rule, most significant chunk first.
	for hi := len(digits); hi > 0; {
		lo := max(hi-c.digits, 0)

		v, p := uint64(0), uint64(1)
		for i := hi - 1; i >= lo; i-- {
			v = v*b + uint64(digits[i])
			p *= b
		}

		n.Mul(n, mul.SetUint64(p))
		n.Add(n, word.SetUint64(v))
		hi = lo
	}

	return toLittleEndian(n), nil
}
