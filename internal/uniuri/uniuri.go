// Package uniuri generates cryptographically secure random strings from a
// fixed alphabet, for tokens that must be unguessable but safe to print,
// such as receipt numbers.
package uniuri

import "crypto/rand"

// StdLen is the default string length (~95 bits of entropy over StdChars).
const StdLen = 16

// StdChars is the default alphabet: upper and lower case letters plus digits.
var StdChars = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")

// New returns a random string of StdLen characters from StdChars.
func New() string {
	return NewLenChars(StdLen, StdChars)
}

// NewLen returns a random string of the given length from StdChars.
func NewLen(length int) string {
	return NewLenChars(length, StdChars)
}

// NewLenChars returns a random string of the given length drawn uniformly
// from chars. Random bytes beyond the largest multiple of len(chars) are
// rejected to avoid modulo bias.
func NewLenChars(length int, chars []byte) string {
	if length == 0 {
		return ""
	}

	if len(chars) < 2 || len(chars) > 256 {
		panic("uniuri: charset must hold between 2 and 256 characters")
	}

	limit := 256 - 256%len(chars)
	out := make([]byte, 0, length)
	buf := make([]byte, length*2)

	for {
		if _, err := rand.Read(buf); err != nil {
			panic("uniuri: reading random bytes: " + err.Error())
		}

		for _, b := range buf {
			if int(b) >= limit {
				continue
			}

			out = append(out, chars[int(b)%len(chars)])
			if len(out) == length {
				return string(out)
			}
		}
	}
}
