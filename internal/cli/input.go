// Package cli handles cmd line input for trying searches and feedback by hand
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/openers/pkg/deduce"
	"github.com/bastiangx/openers/pkg/dictionary"
	"github.com/bastiangx/openers/pkg/starter"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

var wordStyle = lipgloss.NewStyle().Bold(true).
	Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"})

const usage = `commands:
  start <k> [slack]                         best k letter-disjoint starting words
  deduce grey=<letters> yellow=<letters> green=<pattern>
                                            words left after feedback, e.g. green=a__l_
  info                                      corpus statistics
  help                                      this text
  quit`

// InputHandler reads commands line by line and prints results through a
// charm logger.
type InputHandler struct {
	finder       *starter.Finder
	deducer      *deduce.Deducer
	corpus       *dictionary.Corpus
	limit        int
	in           io.Reader
	out          *log.Logger
	requestCount int
}

// NewInputHandler creates a handler reading stdin and printing to stderr.
func NewInputHandler(finder *starter.Finder, deducer *deduce.Deducer, corpus *dictionary.Corpus, limit int) *InputHandler {
	return &InputHandler{
		finder:  finder,
		deducer: deducer,
		corpus:  corpus,
		limit:   max(limit, 1),
		in:      os.Stdin,
		out:     log.Default(),
	}
}

// SetIO replaces the input and the logger results are printed with.
func (h *InputHandler) SetIO(in io.Reader, out *log.Logger) {
	h.in = in
	h.out = out
}

// Start runs the prompt loop until input ends, "quit" is typed or ctx is
// done.
func (h *InputHandler) Start(ctx context.Context) error {
	h.out.Print("openers CLI")
	h.out.Print("type a command and press enter, 'help' lists them (Ctrl+C to exit):")

	scanner := bufio.NewScanner(h.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		h.out.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		h.handleInput(ctx, line)
	}
}

func (h *InputHandler) handleInput(ctx context.Context, line string) {
	h.requestCount++
	fields := strings.Fields(line)
	log.Debug("Processing command", "n", h.requestCount, "cmd", fields[0])

	switch strings.ToLower(fields[0]) {
	case "start", "s":
		h.handleStart(ctx, fields[1:])
	case "deduce", "d":
		h.handleDeduce(fields[1:])
	case "info":
		h.handleInfo()
	case "help", "?":
		h.out.Print(usage)
	default:
		h.out.Errorf("Unknown command %q, type 'help'", fields[0])
	}
}

func (h *InputHandler) handleStart(ctx context.Context, args []string) {
	if len(args) == 0 || len(args) > 2 {
		h.out.Error("usage: start <k> [slack]")
		return
	}
	k, err := strconv.Atoi(args[0])
	if err != nil {
		h.out.Errorf("k must be a number: %s", args[0])
		return
	}
	slack := 0
	if len(args) == 2 {
		if slack, err = strconv.Atoi(args[1]); err != nil {
			h.out.Errorf("slack must be a number: %s", args[1])
			return
		}
	}

	start := time.Now()
	groups, err := h.finder.BestKGroups(ctx, k, slack)
	log.Debugf("Took [ %v ] for k=%d slack=%d", time.Since(start), k, slack)
	if err != nil {
		switch {
		case errors.Is(err, starter.ErrInfeasible):
			h.out.Warnf("No group possible: %v", err)
		default:
			h.out.Errorf("Search failed: %v", err)
		}
		return
	}

	h.out.Printf("Found %s groups of %d, showing %d:",
		humanize.Comma(int64(len(groups))), k, min(len(groups), h.limit))
	for i, g := range groups[:min(len(groups), h.limit)] {
		words := make([]string, len(g.Words))
		for j, w := range g.Words {
			words[j] = wordStyle.Render(w)
		}
		h.out.Printf("%2d. %s (score: %s)", i+1, strings.Join(words, " "), humanize.Commaf(g.Score))
	}
}

// parseFeedback reads grey=, yellow= and green= arguments. Grey and yellow
// take letters, optionally separated by commas; green takes a pattern.
func parseFeedback(args []string) (deduce.Feedback, error) {
	var fb deduce.Feedback
	for _, arg := range args {
		key, val, ok := strings.Cut(arg, "=")
		if !ok {
			return fb, fmt.Errorf("expected key=value, got %q", arg)
		}
		switch strings.ToLower(key) {
		case "grey", "gray", "x":
			fb.Grey = append(fb.Grey, val)
		case "yellow", "y":
			fb.Yellow = append(fb.Yellow, val)
		case "green", "g":
			green, err := deduce.ParsePattern(val)
			if err != nil {
				return fb, err
			}
			fb.Green = green
		default:
			return fb, fmt.Errorf("unknown feedback %q", key)
		}
	}
	return fb, nil
}

func (h *InputHandler) handleDeduce(args []string) {
	fb, err := parseFeedback(args)
	if err != nil {
		h.out.Errorf("Bad feedback: %v", err)
		return
	}
	ranked, err := h.deducer.Deduce(fb)
	if err != nil {
		h.out.Errorf("Bad feedback: %v", err)
		return
	}
	if len(ranked) == 0 {
		h.out.Warn("No words match that feedback")
		return
	}

	h.out.Printf("%s words left, showing %d:", humanize.Comma(int64(len(ranked))), min(len(ranked), h.limit))
	for _, r := range ranked[:min(len(ranked), h.limit)] {
		h.out.Printf("%2d. %s (score: %s)", r.Rank, wordStyle.Render(r.Word), humanize.FormatFloat("#,###.##", r.Score))
	}
}

func (h *InputHandler) handleInfo() {
	stats := h.corpus.Stats()
	h.out.Printf("words: %s of length %d", humanize.Comma(int64(stats["words"])), stats["wordLength"])
	h.out.Printf("dropped: %s, duplicates: %s",
		humanize.Comma(int64(stats["dropped"])), humanize.Comma(int64(stats["duplicates"])))
	h.out.Printf("letters by frequency: %s", string(h.finder.Model().Ranked()))
}
