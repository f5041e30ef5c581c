package uniuri

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLen(t *testing.T) {
	for _, length := range []int{0, 1, 12, 16, 64} {
		s := NewLen(length)
		assert.Len(t, s, length)

		for i := 0; i < len(s); i++ {
			assert.True(t, bytes.ContainsRune(StdChars, rune(s[i])), "character %q outside the alphabet", s[i])
		}
	}
}

func TestNewIsUnique(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 1000; i++ {
		s := New()
		assert.False(t, seen[s], "duplicate token %q", s)
		seen[s] = true
	}
}

func TestNewLenCharsPanicsOnBadCharset(t *testing.T) {
	assert.Panics(t, func() { NewLenChars(10, []byte("a")) })
}
