// Package crackhash implements H(word, salt), the opaque deterministic
// hash primitive of spec.md §3. The spec explicitly puts the identity of
// the real cryptographic hash function out of scope (§1) and only
// constrains its shape: a 2-byte salt drawn from a fixed alphabet, a
// 13-byte ciphertext with that salt as its prefix, and truncation of the
// plaintext to its first 8 bytes.
//
// This is a from-scratch workalike of the classic Unix crypt(3): it keys a
// DES block cipher from the word, perturbs the key schedule with the
// salt, runs 25 rounds the way crypt(3) does, and encodes the result with
// an itoa64-style alphabet to the traditional 11 output characters. It is
// not bit-compatible with glibc's crypt(3) and isn't meant to be — only
// the wire-visible shape (§3/§4.5) and the round-trip property (spec.md
// §8) are load-bearing.
package crackhash

import (
	"crypto/des"
	"errors"
	"fmt"
	"strings"
)

const (
	// SaltLen is the length of the salt prefix.
	SaltLen = 2
	// CipherLen is the total ciphertext length: SaltLen + 11 encoded bytes.
	CipherLen = 13
	// MaxWordLen is the number of leading plaintext bytes the primitive
	// looks at; anything past this is ignored.
	MaxWordLen = 8

	rounds = 25
)

// SaltAlphabet is the character class valid salt bytes are drawn from.
const SaltAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789./"

const encodeAlphabet = "./0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// ValidSalt reports whether s is a well-formed 2-byte salt.
func ValidSalt(s string) bool {
	if len(s) != SaltLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(SaltAlphabet, s[i]) < 0 {
			return false
		}
	}
	return true
}

// State is per-caller state for one H(word, salt) evaluation. The platform
// primitive this stands in for (crypt_r in the original assignment) hands
// each caller its own state block precisely because it isn't safe to share
// across concurrent calls (spec.md §9); State plays that role here, even
// though this implementation happens not to need locking internally, so
// that every crack worker (internal/crack) still gets its own instance per
// §4.7 rather than reaching into a shared one.
type State struct{}

// NewState returns a fresh per-caller state block.
func NewState() *State {
	return &State{}
}

// Hash computes H(word, salt). word is truncated to its first MaxWordLen
// bytes before use, matching the dictionary's own retention rule (§3).
func (s *State) Hash(word, salt string) (string, error) {
	if !ValidSalt(salt) {
		return "", errors.New("crackhash: invalid salt")
	}
	if len(word) > MaxWordLen {
		word = word[:MaxWordLen]
	}

	var key [8]byte
	copy(key[:], word)
	for i := range key {
		key[i] <<= 1 // crypt(3) only uses 7 bits per plaintext byte; DES ignores each key byte's low bit
	}
	key[0] ^= salt[0]
	key[1] ^= salt[1]

	block, err := des.NewCipher(key[:])
	if err != nil {
		return "", fmt.Errorf("crackhash: %w", err)
	}

	var buf [8]byte
	for i := 0; i < rounds; i++ {
		block.Encrypt(buf[:], buf[:])
	}

	return salt + encode(buf[:]), nil
}

// encode packs a 64-bit block into 11 base64-alphabet characters, 6 bits
// at a time, padding the final 2 bits with zero. This mirrors crypt(3)'s
// output width (2-byte salt + 11 encoded bytes = 13) without claiming to
// reproduce its specific bit-transposition algorithm.
func encode(b []byte) string {
	var bitBuf uint16
	var bitCount uint
	out := make([]byte, 0, 11)
	for _, by := range b {
		bitBuf = bitBuf<<8 | uint16(by)
		bitCount += 8
		for bitCount >= 6 {
			bitCount -= 6
			idx := (bitBuf >> bitCount) & 0x3f
			out = append(out, encodeAlphabet[idx])
		}
	}
	if bitCount > 0 {
		idx := (bitBuf << (6 - bitCount)) & 0x3f
		out = append(out, encodeAlphabet[idx])
	}
	for len(out) < 11 {
		out = append(out, encodeAlphabet[0])
	}
	return string(out)
}
