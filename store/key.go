package store

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Key identifies one conversion: the input bytes together with every
// option that changes the output.
type Key [32]byte

// DeriveKey hashes input and params with BLAKE2b-256.
func DeriveKey(input []byte, params ...string) Key {
	h, _ := blake2b.New256(nil)
	h.Write(input)
	h.Write([]byte{0x00})
	h.Write([]byte(strings.Join(params, "\x00")))
	var out Key
	copy(out[:], h.Sum(nil))
	return out
}

func (k Key) String() string {
	return hex.EncodeToString(k[:])
}
