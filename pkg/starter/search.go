package starter

import (
	"github.com/bastiangx/openers/pkg/letters"
)

// Group is k letter-disjoint words and their aggregate score.
type Group struct {
	Words []string
	Score float64
}

// state is one branch of the search. It is passed by value and never shared
// between branches, so roots can be searched concurrently.
type state struct {
	used      letters.Set
	words     []string
	score     int
	pool      []Candidate
	remaining int
}

// with returns the state after picking c, with pool as the new candidates.
func (s state) with(c Candidate, pool []Candidate) state {
	words := make([]string, len(s.words), len(s.words)+1)
	copy(words, s.words)
	return state{
		used:      s.used.Union(c.Letters),
		words:     append(words, c.Word),
		score:     s.score + c.Score,
		pool:      pool,
		remaining: s.remaining - 1,
	}
}

// disjointFrom returns the candidates of pool sharing no letter with used.
func disjointFrom(pool []Candidate, used letters.Set) []Candidate {
	var out []Candidate
	for _, c := range pool {
		if !c.Letters.Overlaps(used) {
			out = append(out, c)
		}
	}
	return out
}

// search emits every completion of s. Candidates are taken left to right and
// only later ones are considered after a pick, so each combination appears
// once. A branch is entered only if enough disjoint candidates remain to
// fill it; that bound is necessary, not sufficient.
func search(s state, emit func(Group)) {
	if s.remaining == 0 {
		emit(Group{Words: s.words, Score: float64(s.score)})
		return
	}
	for i := range s.pool {
		step(s, i, emit)
	}
}

// step picks s.pool[i] and descends if the branch can still be completed.
func step(s state, i int, emit func(Group)) {
	c := s.pool[i]
	sub := disjointFrom(s.pool[i+1:], s.used.Union(c.Letters))
	if len(sub) >= s.remaining-1 {
		search(s.with(c, sub), emit)
	}
}

// searchRoot returns every group of k whose first word is cands[root].
func searchRoot(cands []Candidate, root, k int) []Group {
	var groups []Group
	step(state{pool: cands, remaining: k}, root, func(g Group) {
		groups = append(groups, g)
	})
	return groups
}
