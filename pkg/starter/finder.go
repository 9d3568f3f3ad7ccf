/*
Package starter recommends groups of k starting words whose letters do not
overlap, chosen to cover the most informative letters of a corpus.

The search only considers words built from the wordLength*k most frequent
letters, plus a "slack" of extra letters. If no group exists at that slack it
is widened one letter at a time until a group is found or the alphabet is
exhausted:

	f, _ := starter.NewFinder(corpus, model, starter.Options{})
	groups, err := f.BestKStartingWords(ctx, 2, 0)

Within one slack value the search is exhaustive over letter-disjoint
k-combinations of the candidates. Groups are scored by the sum of their
words' position scores; once the alphabet had to be widened, each word's
frequency score (exponent 1.5) is added to break ties in favor of words that
are more useful on their own. Results are sorted by score, best first, with
equal scores kept in discovery order.

Each first word of a group roots an independent subtree, so roots are fanned
out over a bounded worker pool. Output is identical for any worker count.
*/
package starter

import (
	"cmp"
	"context"
	"fmt"
	"runtime"
	"slices"
	"sync/atomic"

	"github.com/bastiangx/openers/internal/logger"
	"github.com/bastiangx/openers/pkg/dictionary"
	"github.com/bastiangx/openers/pkg/letters"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// DefaultTieBreakExponent is the frequency exponent of the widening bonus.
const DefaultTieBreakExponent = 1.5

// Options tunes a Finder. The zero value is usable.
type Options struct {
	// Workers bounds concurrent root searches; <= 0 uses GOMAXPROCS.
	Workers int
	// MaxSlack stops widening once reached; 0 widens until every letter is
	// allowed.
	MaxSlack int
	// TieBreakExponent defaults to DefaultTieBreakExponent.
	TieBreakExponent float64
	// ProgressEvery logs a debug line every n finished roots; 0 disables it.
	ProgressEvery int
	// Logger defaults to a "starter" prefixed logger.
	Logger *log.Logger
}

// Finder runs the starting word search over one immutable corpus.
type Finder struct {
	words  []string
	model  *letters.Model
	opts   Options
	logger *log.Logger
}

// NewFinder validates the corpus and model and returns a Finder over them.
func NewFinder(corpus *dictionary.Corpus, model *letters.Model, opts Options) (*Finder, error) {
	if corpus == nil || corpus.Len() == 0 {
		return nil, fmt.Errorf("%w: corpus is empty", ErrConfiguration)
	}
	if model == nil {
		return nil, fmt.Errorf("%w: letter model is missing", ErrConfiguration)
	}
	if corpus.WordLength() <= 0 || corpus.WordLength() != model.WordLength() {
		return nil, fmt.Errorf("%w: corpus word length %d, model word length %d",
			ErrConfiguration, corpus.WordLength(), model.WordLength())
	}

	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.TieBreakExponent == 0 {
		opts.TieBreakExponent = DefaultTieBreakExponent
	}
	if opts.MaxSlack < 0 {
		opts.MaxSlack = 0
	}
	l := opts.Logger
	if l == nil {
		l = logger.New("starter")
	}

	return &Finder{
		words:  corpus.Words(),
		model:  model,
		opts:   opts,
		logger: l,
	}, nil
}

// Model returns the letter model the finder scores with.
func (f *Finder) Model() *letters.Model {
	return f.model
}

// BestKStartingWords returns the word lists of every best-scoring group of k
// letter-disjoint words, best first. See BestKGroups.
func (f *Finder) BestKStartingWords(ctx context.Context, k, slack int) ([][]string, error) {
	groups, err := f.BestKGroups(ctx, k, slack)
	if err != nil {
		return nil, err
	}
	out := make([][]string, len(groups))
	for i, g := range groups {
		out[i] = g.Words
	}
	return out, nil
}

// BestKGroups searches at slack, widening by one letter while nothing is
// found, and returns all groups of the first slack that yields any, sorted by
// descending score.
func (f *Finder) BestKGroups(ctx context.Context, k, slack int) ([]Group, error) {
	if err := f.validate(k, slack); err != nil {
		return nil, err
	}
	wordLength := f.model.WordLength()

	for s := slack; ; s++ {
		groups, err := f.searchAt(ctx, k, s)
		if err != nil {
			return nil, err
		}
		if len(groups) > 0 {
			f.rank(groups, s)
			f.logger.Debug("search done", "k", k, "slack", s, "groups", len(groups))
			return groups, nil
		}

		if wordLength*k+s >= letters.AlphabetSize {
			return nil, fmt.Errorf("%w: corpus has no %d words with disjoint letters", ErrInfeasible, k)
		}
		if f.opts.MaxSlack > 0 && s >= f.opts.MaxSlack {
			return nil, fmt.Errorf("%w: no group of %d words within slack %d", ErrInfeasible, k, f.opts.MaxSlack)
		}
		f.logger.Debugf("No group of %d at slack %d, widening alphabet", k, s)
	}
}

func (f *Finder) validate(k, slack int) error {
	if k <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}
	if slack < 0 {
		return fmt.Errorf("%w: slack must be non-negative, got %d", ErrConfiguration, slack)
	}
	wordLength := f.model.WordLength()
	// k > 26/wordLength is k*wordLength > 26 without overflow
	if k > letters.AlphabetSize/wordLength {
		return fmt.Errorf("%w: %d words of %d distinct letters need more than %d letters",
			ErrInfeasible, k, wordLength, letters.AlphabetSize)
	}
	return nil
}

// searchAt collects every group at one slack value. Per-root results are
// merged in root order so the output does not depend on scheduling.
func (f *Finder) searchAt(ctx context.Context, k, slack int) ([]Group, error) {
	cands := Candidates(f.model, f.words, k, slack)
	f.logger.Debug("searching", "k", k, "slack", slack,
		"alphabet", AllowedAlphabetSize(f.model.WordLength(), k, slack), "candidates", len(cands))

	perRoot := make([][]Group, len(cands))
	var finished atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.opts.Workers)
	for i := range cands {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			perRoot[i] = searchRoot(cands, i, k)
			if n := finished.Add(1); f.opts.ProgressEvery > 0 && n%int64(f.opts.ProgressEvery) == 0 {
				f.logger.Debugf("Searched %d/%d roots", n, len(cands))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var groups []Group
	for _, r := range perRoot {
		groups = append(groups, r...)
	}
	return groups, nil
}

// rank adds the frequency bonus when the alphabet was widened and sorts by
// score, keeping discovery order among equals.
func (f *Finder) rank(groups []Group, slack int) {
	if slack > 0 {
		for i := range groups {
			for _, w := range groups[i].Words {
				groups[i].Score += f.model.FrequencyScore(w, f.opts.TieBreakExponent)
			}
		}
	}
	slices.SortStableFunc(groups, func(a, b Group) int {
		return cmp.Compare(b.Score, a.Score)
	})
}
