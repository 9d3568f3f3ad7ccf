/*
Package letters derives letter statistics from a corpus of fixed-length words
and scores words against them.

A Model is built once from a normalized corpus and is read-only afterwards, so
it can be shared freely between goroutines.

Two scores are provided:

	PositionScore("crane")      // sum of per-slot counts for c,r,a,n,e
	FrequencyScore("eerie", 1)  // sum of global counts for e,r,i (each once)

The frequency exponent super-linearly rewards common letters when > 1; 1.5 is
the value used for tie-breaking and feedback ranking.
*/
package letters

import (
	"math"
	"sort"
)

// AlphabetSize is the number of symbols a word may be built from.
const AlphabetSize = 26

// Model holds global and per-position letter counts.
type Model struct {
	wordLength  int
	frequencies [AlphabetSize]int
	positions   [][AlphabetSize]int
	ranked      []byte
}

// New counts letters across words. Bytes outside a-z and positions past
// wordLength are not counted.
func New(words []string, wordLength int) *Model {
	m := &Model{
		wordLength: wordLength,
		positions:  make([][AlphabetSize]int, max(wordLength, 0)),
	}
	for _, w := range words {
		for pos := 0; pos < len(w) && pos < wordLength; pos++ {
			if w[pos] < 'a' || w[pos] > 'z' {
				continue
			}
			idx := w[pos] - 'a'
			m.frequencies[idx]++
			m.positions[pos][idx]++
		}
	}
	m.ranked = m.rank()
	return m
}

// WordLength returns the word length the model was built for.
func (m *Model) WordLength() int {
	return m.wordLength
}

// Frequency returns the number of times letter occurs across the corpus.
// Bytes outside a-z count as zero.
func (m *Model) Frequency(letter byte) int {
	if letter < 'a' || letter > 'z' {
		return 0
	}
	return m.frequencies[letter-'a']
}

// PositionCount returns how often letter occurs at pos.
func (m *Model) PositionCount(pos int, letter byte) int {
	if pos < 0 || pos >= m.wordLength || letter < 'a' || letter > 'z' {
		return 0
	}
	return m.positions[pos][letter-'a']
}

// PositionScore sums the per-position count of each letter in its slot.
func (m *Model) PositionScore(word string) int {
	score := 0
	for pos := 0; pos < len(word); pos++ {
		score += m.PositionCount(pos, word[pos])
	}
	return score
}

// FrequencyScore sums count**exponent over the distinct letters of word, so
// repeated letters are credited once.
func (m *Model) FrequencyScore(word string, exponent float64) float64 {
	var score float64
	SetOf(word).Each(func(letter byte) {
		score += math.Pow(float64(m.Frequency(letter)), exponent)
	})
	return score
}

// Ranked returns the alphabet ordered by descending corpus frequency.
// Letters with equal counts keep alphabetical order.
func (m *Model) Ranked() []byte {
	out := make([]byte, len(m.ranked))
	copy(out, m.ranked)
	return out
}

// TopLetters returns the set of the n most frequent letters.
func (m *Model) TopLetters(n int) Set {
	if n > AlphabetSize {
		n = AlphabetSize
	}
	var s Set
	for _, l := range m.ranked[:max(n, 0)] {
		s = s.Add(l)
	}
	return s
}

func (m *Model) rank() []byte {
	ranked := make([]byte, AlphabetSize)
	for i := range ranked {
		ranked[i] = byte('a' + i)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return m.frequencies[ranked[i]-'a'] > m.frequencies[ranked[j]-'a']
	})
	return ranked
}
