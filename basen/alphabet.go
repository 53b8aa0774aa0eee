package basen

import (
	"fmt"
)

// MaxBase is the largest base supported by any alphabet.
const MaxBase = 94

// DefaultSymbols are the 94 printable, non-whitespace ASCII characters in
// digit order.
const DefaultSymbols = "0123456789" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"abcdefghijklmnopqrstuvwxyz" +
	"!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Default is the alphabet used by the package level Encode and Decode.
var Default = MustAlphabet(DefaultSymbols)

// Alphabet maps digit values to symbols and back. It is immutable and safe
// for concurrent use.
type Alphabet struct {
	encode []byte
	decode [256]int8
}

// NewAlphabet builds an alphabet from 2 to 94 distinct printable ASCII
// symbols. The position of a symbol is its digit value.
func NewAlphabet(symbols string) (*Alphabet, error) {
	if len(symbols) < 2 || len(symbols) > MaxBase {
		return nil, fmt.Errorf("%w: %d symbols, want 2 to %d", ErrInvalidAlphabet, len(symbols), MaxBase)
	}

	a := &Alphabet{
		encode: []byte(symbols),
	}
	for i := range a.decode {
		a.decode[i] = -1
	}

	for i, c := range a.encode {
		if c <= ' ' || c > '~' {
			return nil, fmt.Errorf("%w: symbol %q at %d is not printable ASCII", ErrInvalidAlphabet, c, i)
		}
		if a.decode[c] != -1 {
			return nil, fmt.Errorf("%w: duplicate symbol %q at %d", ErrInvalidAlphabet, c, i)
		}
		a.decode[c] = int8(i)
	}

	return a, nil
}

// MustAlphabet is like NewAlphabet but panics on error.
func MustAlphabet(symbols string) *Alphabet {
	a, err := NewAlphabet(symbols)
	if err != nil {
		panic(fmt.Errorf("basen: %w", err))
	}
	return a
}

// Len is the number of symbols, which is also the largest usable base.
func (a *Alphabet) Len() int {
	return len(a.encode)
}

// Symbol returns the glyph for digit value i. It panics if i is out of range.
func (a *Alphabet) Symbol(i int) byte {
	return a.encode[i]
}

// Index returns the digit value of c, or false if c is not a symbol.
func (a *Alphabet) Index(c rune) (int, bool) {
	if c < 0 || c > 0xff {
		return 0, false
	}
	i := a.decode[c]
	if i < 0 {
		return 0, false
	}
	return int(i), true
}

func (a *Alphabet) String() string {
	return string(a.encode)
}

// CheckBase reports whether base can be used with this alphabet.
func (a *Alphabet) CheckBase(base int) error {
	if base < 2 || base > len(a.encode) {
		return &BaseError{Base: base, Max: len(a.encode)}
	}
	return nil
}

// CheckBase reports whether base can be used with the default alphabet.
func CheckBase(base int) error {
	return Default.CheckBase(base)
}

func (a *Alphabet) mustBase(base int) {
	if err := a.CheckBase(base); err != nil {
		panic(err)
	}
}
