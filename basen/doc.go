// Package basen converts binary data to and from text in any radix
// between 2 and 94.
//
// The input bytes are read as one unsigned little-endian integer (the first
// byte is the least significant) and written out least significant digit
// first, using the symbols of an Alphabet as digit glyphs:
//
//	s := basen.Encode([]byte("Hello"), 94)
//	data, err := basen.Decode(s, 94)
//
// The encoding carries magnitude only. Zero bytes at the end of the input
// do not change the integer, so they are lost: any buffer made only of zero
// bytes encodes to the empty string and decodes to an empty buffer.
//
// Decode cannot detect that it was given a different base than the one used
// to encode. Doing so yields wrong bytes, not an error.
//
// A base outside [2, Alphabet.Len()] is a programming error and both Encode
// and Decode panic with a *BaseError. Use CheckBase to validate untrusted
// input first.
package basen
