package basen

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidBase      = errors.New("invalid base")
	ErrInvalidCharacter = errors.New("invalid character")
	ErrInvalidAlphabet  = errors.New("invalid alphabet")
)

// BaseError is the panic value of Encode and Decode when called with a base
// the alphabet cannot represent.
type BaseError struct {
	Base int
	Max  int
}

func (e *BaseError) Error() string {
	return fmt.Sprintf("base must be between 2 and %d (inclusive), got %d", e.Max, e.Base)
}

func (e *BaseError) Is(target error) bool {
	return target == ErrInvalidBase
}

// InvalidCharacterError reports the first character of a decode input that
// is not in the alphabet. Pos counts characters, not bytes. Bytes that are
// not valid UTF-8 are reported by their raw value.
type InvalidCharacterError struct {
	Char rune
	Pos  int
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("invalid character %q at position %d", e.Char, e.Pos)
}

func (e *InvalidCharacterError) Is(target error) bool {
	return target == ErrInvalidCharacter
}
