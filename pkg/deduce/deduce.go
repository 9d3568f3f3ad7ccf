// Package deduce narrows a corpus down to the words still consistent with
// wordle style feedback and ranks what is left.
//
// Grey letters must be absent, yellow letters present somewhere and green
// letters fixed at a position. A letter reported both grey and yellow or green
// therefore matches nothing; callers that want repeated-letter semantics
// should leave such letters out of Grey.
package deduce

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/bastiangx/openers/internal/logger"
	"github.com/bastiangx/openers/internal/utils"
	"github.com/bastiangx/openers/pkg/dictionary"
	"github.com/bastiangx/openers/pkg/letters"
	"github.com/bits-and-blooms/bitset"
	"github.com/charmbracelet/log"
	mapset "github.com/deckarep/golang-set/v2"
)

// RankExponent is the frequency exponent used when ranking survivors.
const RankExponent = 1.5

// ErrInvalidFeedback is returned for letters outside a-z or green positions
// outside the word.
var ErrInvalidFeedback = errors.New("invalid feedback")

// Feedback collects what earlier guesses revealed. Grey and Yellow entries
// may hold one or more letters each; Green maps a 0-based position to a
// single letter.
type Feedback struct {
	Grey   []string
	Yellow []string
	Green  map[int]string
}

// Ranked is a surviving word with its 1-based rank and score. Ranks stop at
// utils.MaxRank; words past that share it and keep their slice order.
type Ranked struct {
	Word  string
	Rank  uint16
	Score float64
}

// Deducer answers feedback queries over one corpus. Indexes are built once
// and only read afterwards, so a Deducer is safe for concurrent use.
type Deducer struct {
	corpus *dictionary.Corpus
	model  *letters.Model
	all    *bitset.BitSet
	// at[p][l] holds the indexes of words with letter l at position p
	at [][letters.AlphabetSize]*bitset.BitSet
	// has[l] holds the indexes of words containing letter l
	has    [letters.AlphabetSize]*bitset.BitSet
	logger *log.Logger
}

// New indexes corpus by letter and position.
func New(corpus *dictionary.Corpus, model *letters.Model) *Deducer {
	words := corpus.Words()
	n := uint(len(words))
	d := &Deducer{
		corpus: corpus,
		model:  model,
		all:    bitset.New(n),
		at:     make([][letters.AlphabetSize]*bitset.BitSet, corpus.WordLength()),
		logger: logger.New("deduce"),
	}
	for l := range d.has {
		d.has[l] = bitset.New(n)
		for p := range d.at {
			d.at[p][l] = bitset.New(n)
		}
	}

	for i, w := range words {
		idx := uint(i)
		d.all.Set(idx)
		for p := 0; p < len(w); p++ {
			l := w[p] - 'a'
			d.at[p][l].Set(idx)
			d.has[l].Set(idx)
		}
	}
	d.logger.Debugf("Indexed %d words of length %d", n, corpus.WordLength())
	return d
}

// Deduce returns the words consistent with fb, best first. Equal scores keep
// corpus order.
func (d *Deducer) Deduce(fb Feedback) ([]Ranked, error) {
	grey, err := letterSet(fb.Grey)
	if err != nil {
		return nil, fmt.Errorf("grey: %w", err)
	}
	yellow, err := letterSet(fb.Yellow)
	if err != nil {
		return nil, fmt.Errorf("yellow: %w", err)
	}
	green, err := d.greenLetters(fb.Green)
	if err != nil {
		return nil, err
	}
	if both := grey.Intersect(yellow); both.Cardinality() > 0 {
		d.logger.Debug("letters are both grey and yellow", "letters", string(both.ToSlice()))
	}

	match := d.start(green)
	grey.Each(func(l byte) bool {
		match.InPlaceDifference(d.has[l-'a'])
		return false
	})
	yellow.Each(func(l byte) bool {
		match.InPlaceIntersection(d.has[l-'a'])
		return false
	})
	for p, l := range green {
		match.InPlaceIntersection(d.at[p][l-'a'])
	}

	words := d.corpus.Words()
	out := make([]Ranked, 0, match.Count())
	for i, ok := match.NextSet(0); ok; i, ok = match.NextSet(i + 1) {
		w := words[i]
		out = append(out, Ranked{
			Word:  w,
			Score: d.model.FrequencyScore(w, RankExponent) + float64(d.model.PositionScore(w)),
		})
	}
	slices.SortStableFunc(out, func(a, b Ranked) int {
		return cmp.Compare(b.Score, a.Score)
	})
	for i, r := range utils.CreateRankList(len(out)) {
		out[i].Rank = r
	}
	return out, nil
}

// Words is Deduce without scores.
func (d *Deducer) Words(fb Feedback) ([]string, error) {
	ranked, err := d.Deduce(fb)
	if err != nil {
		return nil, err
	}
	words := make([]string, len(ranked))
	for i, r := range ranked {
		words[i] = r.Word
	}
	return words, nil
}

// start returns the candidate set before filtering. When the green letters
// pin down a prefix the corpus prefix index is used instead of every word.
func (d *Deducer) start(green map[int]byte) *bitset.BitSet {
	var prefix []byte
	for p := 0; ; p++ {
		l, ok := green[p]
		if !ok {
			break
		}
		prefix = append(prefix, l)
	}
	if len(prefix) == 0 {
		return d.all.Clone()
	}

	set := bitset.New(d.all.Len())
	for _, i := range d.corpus.WithPrefix(string(prefix)) {
		set.Set(uint(i))
	}
	return set
}

func (d *Deducer) greenLetters(green map[int]string) (map[int]byte, error) {
	out := make(map[int]byte, len(green))
	for p, s := range green {
		if p < 0 || p >= d.corpus.WordLength() {
			return nil, fmt.Errorf("%w: green position %d outside word of length %d",
				ErrInvalidFeedback, p, d.corpus.WordLength())
		}
		s = strings.ToLower(strings.TrimSpace(s))
		if len(s) != 1 || !utils.IsLowerAlpha(s) {
			return nil, fmt.Errorf("%w: green position %d wants one letter, got %q", ErrInvalidFeedback, p, s)
		}
		out[p] = s[0]
	}
	return out, nil
}

func letterSet(entries []string) (mapset.Set[byte], error) {
	set := mapset.NewThreadUnsafeSet[byte]()
	for _, e := range entries {
		ls, ok := utils.Letters(e)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not a letter", ErrInvalidFeedback, e)
		}
		for _, l := range ls {
			set.Add(l)
		}
	}
	return set, nil
}

// ParsePattern turns a pattern such as "a__l_" into a green map. '_', '.',
// '?' and '*' mark unknown positions.
func ParsePattern(pattern string) (map[int]string, error) {
	green := make(map[int]string)
	for i, r := range strings.ToLower(pattern) {
		switch {
		case r == '_' || r == '.' || r == '?' || r == '*':
		case r >= 'a' && r <= 'z':
			green[i] = string(r)
		default:
			return nil, fmt.Errorf("%w: pattern %q has %q at %d", ErrInvalidFeedback, pattern, r, i)
		}
	}
	return green, nil
}
