package letters

import (
	"math/bits"
	"strings"
)

// Set is a bitmask over a-z, bit 0 being 'a'.
type Set uint32

// Full is the set of every letter.
const Full Set = 1<<AlphabetSize - 1

// SetOf returns the distinct letters of word. Bytes outside a-z are ignored.
func SetOf(word string) Set {
	var s Set
	for i := 0; i < len(word); i++ {
		s = s.Add(word[i])
	}
	return s
}

// Add returns s with letter included.
func (s Set) Add(letter byte) Set {
	if letter < 'a' || letter > 'z' {
		return s
	}
	return s | 1<<(letter-'a')
}

// Len returns the number of letters in s.
func (s Set) Len() int {
	return bits.OnesCount32(uint32(s))
}

// Overlaps reports whether s and other share a letter.
func (s Set) Overlaps(other Set) bool {
	return s&other != 0
}

// SubsetOf reports whether every letter of s is in other.
func (s Set) SubsetOf(other Set) bool {
	return s&^other == 0
}

// Union returns the letters in either set.
func (s Set) Union(other Set) Set {
	return s | other
}

// Each calls fn for every letter in s in alphabetical order.
func (s Set) Each(fn func(letter byte)) {
	for rest := uint32(s); rest != 0; rest &= rest - 1 {
		fn(byte('a' + bits.TrailingZeros32(rest)))
	}
}

func (s Set) String() string {
	var b strings.Builder
	s.Each(func(letter byte) {
		b.WriteByte(letter)
	})
	return b.String()
}
