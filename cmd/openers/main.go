// Copyright 2025 The openers Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the openers IPC server and CLI [DBG] application.

openers recommends sets of wordle starting words whose letters do not overlap,
chosen from the most frequent letters of a word list, and narrows a word list
down with grey/yellow/green feedback. It can operate as a MessagePack IPC
server for integration with other programs, or as a CLI for trying things by
hand.

# Usage

Start the server with default settings:

	openers

Use a custom word list and enable debug mode:

	openers -data /path/to/words.txt -d

Run in CLI mode for interactive testing:

	openers -c -limit 5

The corpus may be a plain text list (one word per line, extra columns are
ignored), a single dict_NNNN.bin chunk file or a directory of chunk files.

# Configuration

Runtime configuration is read from a TOML file that is created with defaults
if it doesn't exist:

	[search]
	word_length = 5
	max_slack = 0
	workers = 0
	tiebreak_exponent = 1.5
	progress_every = 0

	[corpus]
	path = "data"
	dedupe = true
	max_words = 0

	[server]
	max_limit = 64
	default_limit = 10
	max_k = 5
	cache_size = 32

	[cli]
	default_limit = 10

Flags given on the command line win over the file.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout, see package
server for the message shapes:

	{"id": "r1", "op": "starters", "k": 2}
	{"id": "r2", "op": "deduce", "grey": ["m"], "yellow": ["p"], "p": "a____"}
	{"id": "r3", "op": "info"}

# Command Line Flags

	-data string
	    Word list file or chunk directory (default from config)
	-config string
	    Path of the config file
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-len int
	    Word length to keep from the corpus
	-workers int
	    Concurrent root searches, 0 for one per CPU
	-max-slack int
	    Stop widening the alphabet after this many extra letters, 0 for never
	-limit int
	    Results to print in CLI mode
	-no-dedupe
	    Keep repeated words of the corpus
	-rebuild-config
	    Write a fresh default config file and exit
	-export string
	    Write the filtered corpus as dict_NNNN.bin chunks into a directory and exit
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/openers/internal/cli"
	"github.com/bastiangx/openers/internal/logger"
	"github.com/bastiangx/openers/internal/utils"
	"github.com/bastiangx/openers/pkg/config"
	"github.com/bastiangx/openers/pkg/deduce"
	"github.com/bastiangx/openers/pkg/dictionary"
	"github.com/bastiangx/openers/pkg/letters"
	"github.com/bastiangx/openers/pkg/server"
	"github.com/bastiangx/openers/pkg/starter"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

const (
	Version = "0.1.0-beta"
	AppName = "openers"
	gh      = "https://github.com/bastiangx/openers"
)

// sigHandler cancels running searches on SIGINT/SIGTERM and exits.
func sigHandler(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		cancel()
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, corpus and search together and hands over to the server
// or the CLI. It does not implement logic for them and only manages the flow.
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigHandler(cancel)

	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	dataPath := flag.String("data", defaults.Corpus.Path, "Word list file or directory of dict_*.bin chunks")
	configPath := flag.String("config", "", "Path of the config file")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	wordLength := flag.Int("len", defaults.Search.WordLength, "Word length to keep from the corpus")
	workers := flag.Int("workers", defaults.Search.Workers, "Concurrent root searches (0 for one per CPU)")
	maxSlack := flag.Int("max-slack", defaults.Search.MaxSlack, "Stop widening after this many extra letters (0 for never)")
	limit := flag.Int("limit", defaults.CLI.DefaultLimit, "Number of results to print in CLI mode")
	noDedupe := flag.Bool("no-dedupe", false, "Keep repeated words of the corpus")
	rebuildConfig := flag.Bool("rebuild-config", false, "Write a fresh default config file and exit")
	exportDir := flag.String("export", "", "Write the filtered corpus as chunk files into this directory and exit")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	if *rebuildConfig {
		path, err := config.RebuildConfigFile()
		if err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		log.Printf("Wrote default config to %s", path)
		return
	}

	cfg, loadedFrom, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config: %s", config.GetActiveConfigPath(loadedFrom))

	// explicit flags win over the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data":
			cfg.Corpus.Path = *dataPath
		case "len":
			cfg.Search.WordLength = *wordLength
		case "workers":
			cfg.Search.Workers = *workers
		case "max-slack":
			cfg.Search.MaxSlack = *maxSlack
		case "limit":
			cfg.CLI.DefaultLimit = *limit
		case "no-dedupe":
			cfg.Corpus.Dedupe = !*noDedupe
		}
	})

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Print("Either env is not set or system is not supported")
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}
	corpusPath := pathResolver.GetCorpusPath(cfg.Corpus.Path)
	log.Debugf("Using corpus at: %s", corpusPath)

	corpus, err := loadCorpus(corpusPath, cfg)
	if err != nil {
		log.Fatalf("Failed to load corpus: %v", err)
	}

	if *exportDir != "" {
		n, err := dictionary.ExportChunks(*exportDir, corpus.Words(), 0)
		if err != nil {
			log.Fatalf("Failed to export corpus: %v", err)
		}
		log.Printf("Exported %s words in %d chunks to %s", humanize.Comma(int64(corpus.Len())), n, *exportDir)
		return
	}

	model := letters.New(corpus.Words(), corpus.WordLength())

	finder, err := starter.NewFinder(corpus, model, starter.Options{
		Workers:          cfg.Search.Workers,
		MaxSlack:         cfg.Search.MaxSlack,
		TieBreakExponent: cfg.Search.TieBreakExponent,
		ProgressEvery:    cfg.Search.ProgressEvery,
		Logger:           logger.New("starter"),
	})
	if err != nil {
		log.Fatalf("Failed to init search: %v", err)
	}
	deducer := deduce.New(corpus, model)

	// CLI is mainly used for testing and dbg purposes.
	if *cliMode {
		log.SetReportTimestamp(false)
		inputHandler := cli.NewInputHandler(finder, deducer, corpus, cfg.CLI.DefaultLimit)
		if err := inputHandler.Start(ctx); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(finder, deducer, corpus, cfg)
	showStartupInfo(corpusPath, corpus)

	if err := srv.Start(ctx); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func loadCorpus(path string, cfg *config.Config) (*dictionary.Corpus, error) {
	raw, err := dictionary.Load(path, cfg.Corpus.MaxWords)
	if err != nil {
		return nil, err
	}
	return dictionary.NewCorpus(raw, cfg.Search.WordLength, cfg.Corpus.Dedupe)
}

func printVersion() {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ openers ] Letter-disjoint wordle starting words")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
	l.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(corpusPath string, corpus *dictionary.Corpus) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	fmt.Fprintln(os.Stderr, "===========")
	fmt.Fprintln(os.Stderr, "  "+AppName+"  ")
	fmt.Fprintln(os.Stderr, "===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("corpus: ( %s )", corpusPath)
	log.Infof("words: %s of length %d", humanize.Comma(int64(corpus.Len())), corpus.WordLength())
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "===========")
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
