package cli

import (
	"bytes"
	"context"
	"maps"
	"slices"
	"strings"
	"testing"

	"github.com/bastiangx/openers/internal/logger"
	"github.com/bastiangx/openers/pkg/deduce"
	"github.com/bastiangx/openers/pkg/dictionary"
	"github.com/bastiangx/openers/pkg/letters"
	"github.com/bastiangx/openers/pkg/starter"
	"github.com/charmbracelet/log"
)

func runCLI(t *testing.T, input string) string {
	t.Helper()
	corpus, err := dictionary.NewCorpus([]string{"abcde", "fghij", "klmno", "pqrst", "uvwxy"}, 5, true)
	if err != nil {
		t.Fatal(err)
	}
	model := letters.New(corpus.Words(), 5)
	finder, err := starter.NewFinder(corpus, model, starter.Options{Logger: logger.Discard()})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	h := NewInputHandler(finder, deduce.New(corpus, model), corpus, 3)
	h.SetIO(strings.NewReader(input), logger.NewWithConfig(&buf, "", log.InfoLevel, false, log.TextFormatter))
	if err := h.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return buf.String()
}

func TestInputHandlerCommands(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []string
	}{
		{"start", "start 2\n", []string{"Found 1 groups of 2", "abcde", "fghij"}},
		{"start with slack", "s 1 20\n", []string{"Found 5 groups of 1, showing 3"}},
		{"infeasible", "start 6\n", []string{"No group possible"}},
		{"bad k", "start two\n", []string{"k must be a number"}},
		{"deduce", "deduce green=a____\n", []string{"1 words left", "abcde"}},
		{"deduce nothing left", "d grey=a,f,k,p,u\n", []string{"No words match"}},
		{"deduce bad pattern", "deduce green=a1___\n", []string{"Bad feedback"}},
		{"info", "info\n", []string{"words: 5 of length 5", "letters by frequency: abcdefghijklmnopqrstuvwxyz"}},
		{"help", "help\n", []string{"start <k> [slack]"}},
		{"unknown", "shuffle\n", []string{"Unknown command"}},
		{"quit stops reading", "quit\ninfo\n", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := runCLI(t, tc.input)
			for _, w := range tc.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			if tc.want == nil && strings.Contains(out, "words:") {
				t.Errorf("commands after quit were run:\n%s", out)
			}
		})
	}
}

func TestParseFeedback(t *testing.T) {
	fb, err := parseFeedback([]string{"grey=mx", "yellow=p", "y=l", "green=a____"})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(fb.Grey, []string{"mx"}) || !slices.Equal(fb.Yellow, []string{"p", "l"}) {
		t.Errorf("grey/yellow = %v / %v", fb.Grey, fb.Yellow)
	}
	if !maps.Equal(fb.Green, map[int]string{0: "a"}) {
		t.Errorf("green = %v", fb.Green)
	}

	for _, bad := range [][]string{{"grey"}, {"blue=a"}, {"green=a#"}} {
		if _, err := parseFeedback(bad); err == nil {
			t.Errorf("parseFeedback(%v) should fail", bad)
		}
	}
}
