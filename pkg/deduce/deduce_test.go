package deduce

import (
	"errors"
	"maps"
	"slices"
	"testing"

	"github.com/bastiangx/openers/pkg/dictionary"
	"github.com/bastiangx/openers/pkg/letters"
)

func newDeducer(t *testing.T, words []string) *Deducer {
	t.Helper()
	corpus, err := dictionary.NewCorpus(words, 5, true)
	if err != nil {
		t.Fatalf("NewCorpus: %v", err)
	}
	return New(corpus, letters.New(corpus.Words(), 5))
}

func TestDeduceFilters(t *testing.T) {
	d := newDeducer(t, []string{"apple", "amble", "angle", "crane", "plate", "pleat"})

	testCases := []struct {
		name string
		fb   Feedback
		want []string
	}{
		{
			name: "grey yellow green",
			fb:   Feedback{Grey: []string{"m"}, Yellow: []string{"p"}, Green: map[int]string{0: "a"}},
			want: []string{"apple"},
		},
		{
			name: "grey only",
			fb:   Feedback{Grey: []string{"a"}},
			want: nil,
		},
		{
			name: "yellow pair in one entry",
			fb:   Feedback{Yellow: []string{"p,t"}},
			want: []string{"plate", "pleat"},
		},
		{
			name: "green off the prefix",
			fb:   Feedback{Green: map[int]string{4: "t"}},
			want: []string{"pleat"},
		},
		{
			name: "upper case input",
			fb:   Feedback{Grey: []string{"M", "N"}, Green: map[int]string{0: "A"}},
			want: []string{"apple"},
		},
		{
			name: "grey and yellow conflict",
			fb:   Feedback{Grey: []string{"p"}, Yellow: []string{"p"}},
			want: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := d.Words(tc.fb)
			if err != nil {
				t.Fatalf("Words: %v", err)
			}
			slices.Sort(got)
			if !slices.Equal(got, tc.want) {
				t.Errorf("Words() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDeduceRanks(t *testing.T) {
	words := []string{"crane", "slate", "trace", "react", "cater", "eerie"}
	corpus, err := dictionary.NewCorpus(words, 5, true)
	if err != nil {
		t.Fatal(err)
	}
	model := letters.New(corpus.Words(), 5)
	d := New(corpus, model)

	got, err := d.Deduce(Feedback{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(words) {
		t.Fatalf("empty feedback kept %d words, want %d", len(got), len(words))
	}
	for i, r := range got {
		if r.Rank != uint16(i+1) {
			t.Errorf("%s rank = %d, want %d", r.Word, r.Rank, i+1)
		}
		want := model.FrequencyScore(r.Word, 1.5) + float64(model.PositionScore(r.Word))
		if r.Score != want {
			t.Errorf("%s score = %v, want %v", r.Word, r.Score, want)
		}
		if i > 0 && r.Score > got[i-1].Score {
			t.Errorf("scores not descending at %d", i)
		}
	}
}

func TestDeducePrefixMatchesScan(t *testing.T) {
	d := newDeducer(t, []string{"apple", "amble", "angle", "apply", "ample", "maple"})

	withPrefix, err := d.Words(Feedback{Green: map[int]string{0: "a", 1: "p"}})
	if err != nil {
		t.Fatal(err)
	}
	// position 1 alone skips the prefix index
	scanned, err := d.Words(Feedback{Green: map[int]string{1: "p"}, Yellow: []string{"a"}})
	if err != nil {
		t.Fatal(err)
	}
	var filtered []string
	for _, w := range scanned {
		if w[0] == 'a' {
			filtered = append(filtered, w)
		}
	}
	if !slices.Equal(withPrefix, filtered) {
		t.Errorf("prefix path = %v, scan path = %v", withPrefix, filtered)
	}
}

func TestDeduceInvalidFeedback(t *testing.T) {
	d := newDeducer(t, []string{"apple", "amble"})

	testCases := []struct {
		name string
		fb   Feedback
	}{
		{"grey digit", Feedback{Grey: []string{"3"}}},
		{"yellow symbol", Feedback{Yellow: []string{"p!"}}},
		{"green past end", Feedback{Green: map[int]string{5: "a"}}},
		{"green negative", Feedback{Green: map[int]string{-1: "a"}}},
		{"green two letters", Feedback{Green: map[int]string{0: "ab"}}},
		{"green empty", Feedback{Green: map[int]string{0: ""}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := d.Deduce(tc.fb); !errors.Is(err, ErrInvalidFeedback) {
				t.Errorf("got %v, want ErrInvalidFeedback", err)
			}
		})
	}
}

func TestParsePattern(t *testing.T) {
	testCases := []struct {
		pattern string
		want    map[int]string
		wantErr bool
	}{
		{"a__l_", map[int]string{0: "a", 3: "l"}, false},
		{".....", map[int]string{}, false},
		{"C?A*E", map[int]string{0: "c", 2: "a", 4: "e"}, false},
		{"a_1__", nil, true},
	}
	for _, tc := range testCases {
		got, err := ParsePattern(tc.pattern)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidFeedback) {
				t.Errorf("ParsePattern(%q) error = %v, want ErrInvalidFeedback", tc.pattern, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePattern(%q): %v", tc.pattern, err)
			continue
		}
		if !maps.Equal(got, tc.want) {
			t.Errorf("ParsePattern(%q) = %v, want %v", tc.pattern, got, tc.want)
		}
	}
}
