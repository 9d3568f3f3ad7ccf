// Package dictionary loads word lists and turns them into an immutable Corpus
// of fixed-length, lower-case words.
package dictionary

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/bastiangx/openers/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

var (
	// ErrWordLength is returned for a non-positive word length.
	ErrWordLength = errors.New("word length must be positive")
	// ErrEmptyCorpus is returned when no word survives normalization.
	ErrEmptyCorpus = errors.New("corpus is empty after filtering")
)

// Corpus is an ordered list of words of one length. It is never mutated after
// NewCorpus returns.
type Corpus struct {
	words      []string
	wordLength int
	trie       *patricia.Trie
	dropped    int
	duplicates int
}

// NewCorpus lower-cases raw, keeps the words that are wordLength letters in
// a-z and, when dedupe is set, drops repeats after their first occurrence.
func NewCorpus(raw []string, wordLength int, dedupe bool) (*Corpus, error) {
	if wordLength <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrWordLength, wordLength)
	}

	c := &Corpus{
		words:      make([]string, 0, len(raw)),
		wordLength: wordLength,
		trie:       patricia.NewTrie(),
	}

	var seen *utils.WordFilter
	if dedupe {
		seen = utils.NewWordFilter()
	}

	for _, w := range raw {
		w = strings.ToLower(strings.TrimSpace(w))
		if len(w) != wordLength || !utils.IsLowerAlpha(w) {
			c.dropped++
			continue
		}
		if seen != nil && !seen.ShouldInclude(w) {
			c.duplicates++
			continue
		}
		c.words = append(c.words, w)
		c.index(w, len(c.words)-1)
	}

	if len(c.words) == 0 {
		return nil, fmt.Errorf("%w: %d input words, none of length %d", ErrEmptyCorpus, len(raw), wordLength)
	}

	log.Debugf("Corpus built: %d words of length %d (%d dropped, %d duplicates)",
		len(c.words), wordLength, c.dropped, c.duplicates)
	return c, nil
}

// Words returns the corpus words in order. The slice must not be modified.
func (c *Corpus) Words() []string {
	return c.words
}

// Len returns the number of words.
func (c *Corpus) Len() int {
	return len(c.words)
}

// WordLength returns the length every word has.
func (c *Corpus) WordLength() int {
	return c.wordLength
}

// Contains reports whether word is in the corpus.
func (c *Corpus) Contains(word string) bool {
	return c.trie.Get(patricia.Prefix(strings.ToLower(word))) != nil
}

// WithPrefix returns the corpus indexes of words starting with prefix, in
// corpus order.
func (c *Corpus) WithPrefix(prefix string) []int {
	var idx []int
	err := c.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		idx = append(idx, item.([]int)...)
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting corpus subtree: %v", err)
		return nil
	}
	slices.Sort(idx)
	return idx
}

// Stats returns counts gathered while building the corpus.
func (c *Corpus) Stats() map[string]int {
	return map[string]int{
		"words":      len(c.words),
		"wordLength": c.wordLength,
		"dropped":    c.dropped,
		"duplicates": c.duplicates,
	}
}

// index records that word sits at position i. Repeats kept without dedupe
// share one trie node.
func (c *Corpus) index(word string, i int) {
	key := patricia.Prefix(word)
	if item := c.trie.Get(key); item != nil {
		c.trie.Set(key, append(item.([]int), i))
		return
	}
	c.trie.Insert(key, []int{i})
}
