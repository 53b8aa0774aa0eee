package cache

import (
	"encoding/binary"
	"encoding/hex"
	"strconv"

	"github.com/dgryski/go-farm"
)

// Key identifies one transcoding result.
type Key [16]byte

// NewKey fingerprints an operation on payload. Results depend on the base
// and on the exact alphabet, so both are part of the key.
func NewKey(op string, base int, alphabet string, payload []byte) Key {
	plo, phi := farm.Fingerprint128(payload)

	b := make([]byte, 0, len(op)+len(alphabet)+40)
	b = append(b, op...)
	b = append(b, 0)
	b = strconv.AppendInt(b, int64(base), 10)
	b = append(b, 0)
	b = append(b, alphabet...)
	b = append(b, 0)
	b = binary.BigEndian.AppendUint64(b, plo)
	b = binary.BigEndian.AppendUint64(b, phi)

	lo, hi := farm.Fingerprint128(b)

	var k Key
	binary.BigEndian.PutUint64(k[:8], lo)
	binary.BigEndian.PutUint64(k[8:], hi)
	return k
}

func (k Key) String() string {
	return hex.EncodeToString(k[:])
}
