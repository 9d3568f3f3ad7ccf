package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/openers/pkg/config"
	"github.com/bastiangx/openers/pkg/deduce"
	"github.com/bastiangx/openers/pkg/dictionary"
	"github.com/bastiangx/openers/pkg/starter"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for starter and deduce requests
type Server struct {
	finder   *starter.Finder
	deducer  *deduce.Deducer
	corpus   *dictionary.Corpus
	config   *config.Config
	cache    *ResultCache
	reader   io.Reader
	writer   *bufio.Writer
	encoder  *msgpack.Encoder
	requests int
}

// NewServer creates a server using stdin/stdout for IPC
func NewServer(finder *starter.Finder, deducer *deduce.Deducer, corpus *dictionary.Corpus, cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := &Server{
		finder:  finder,
		deducer: deducer,
		corpus:  corpus,
		config:  cfg,
		cache:   NewResultCache(cfg.Server.CacheSize),
	}
	s.SetIO(os.Stdin, os.Stdout)
	return s
}

// SetIO replaces the request source and response sink.
func (s *Server) SetIO(r io.Reader, w io.Writer) {
	s.reader = r
	s.writer = bufio.NewWriter(w)
	s.encoder = msgpack.NewEncoder(s.writer)
}

// Start sends the ready message and serves requests until the input ends or
// ctx is done. Searches run under ctx and are abandoned when it is canceled.
func (s *Server) Start(ctx context.Context) error {
	log.Debug("Starting Server.")
	s.sendResponse(ReadyMessage{Status: "ready"})

	decoder := msgpack.NewDecoder(bufio.NewReader(s.reader))
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		// decode raw first so a malformed request cannot desync the stream
		raw, err := decoder.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Debugf("Input closed after %d requests", s.requests)
				return nil
			}
			log.Errorf("Reading request: %v", err)
			return err
		}
		s.requests++

		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			log.Debugf("Bad request: %v", err)
			s.sendError("", fmt.Sprintf("invalid request: %v", err), CodeBadRequest)
			continue
		}
		s.handleRequest(ctx, req)
	}
}

func (s *Server) handleRequest(ctx context.Context, req Request) {
	log.Debug("request", "id", req.ID, "op", req.Op)
	switch req.Op {
	case "starters":
		s.handleStarters(ctx, req)
	case "deduce":
		s.handleDeduce(req)
	case "info":
		s.handleInfo(req)
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown op: %q", req.Op), CodeBadRequest)
	}
}

func (s *Server) handleStarters(ctx context.Context, req Request) {
	if maxK := s.config.Server.MaxK; maxK > 0 && req.K > maxK {
		s.sendError(req.ID, fmt.Sprintf("k %d exceeds server limit %d", req.K, maxK), CodeBadRequest)
		return
	}

	start := time.Now()
	groups, cached := s.cache.Get(req.K, req.Slack)
	if !cached {
		var err error
		groups, err = s.finder.BestKGroups(ctx, req.K, req.Slack)
		if err != nil {
			log.Debugf("starters %s failed after %v: %v", req.ID, time.Since(start), err)
			s.sendError(req.ID, err.Error(), errorCode(err))
			return
		}
		s.cache.Put(req.K, req.Slack, groups)
	}
	elapsed := time.Since(start)

	groups = groups[:min(len(groups), s.limit(req.Limit))]
	resp := StartersResponse{
		ID:        req.ID,
		Groups:    make([]StartersGroup, len(groups)),
		Count:     len(groups),
		TimeTaken: elapsed.Microseconds(),
	}
	for i, g := range groups {
		resp.Groups[i] = StartersGroup{Words: g.Words, Score: g.Score}
	}
	s.sendResponse(resp)
}

func (s *Server) handleDeduce(req Request) {
	fb := deduce.Feedback{Grey: req.Grey, Yellow: req.Yellow, Green: req.Green}
	if req.Pattern != "" {
		green, err := deduce.ParsePattern(req.Pattern)
		if err != nil {
			s.sendError(req.ID, err.Error(), errorCode(err))
			return
		}
		for p, l := range req.Green {
			green[p] = l
		}
		fb.Green = green
	}

	start := time.Now()
	ranked, err := s.deducer.Deduce(fb)
	elapsed := time.Since(start)
	if err != nil {
		s.sendError(req.ID, err.Error(), errorCode(err))
		return
	}

	ranked = ranked[:min(len(ranked), s.limit(req.Limit))]
	resp := DeduceResponse{
		ID:          req.ID,
		Suggestions: make([]DeduceSuggestion, len(ranked)),
		Count:       len(ranked),
		TimeTaken:   elapsed.Microseconds(),
	}
	for i, r := range ranked {
		resp.Suggestions[i] = DeduceSuggestion{Word: r.Word, Rank: r.Rank, Score: r.Score}
	}
	s.sendResponse(resp)
}

func (s *Server) handleInfo(req Request) {
	stats := s.corpus.Stats()
	s.sendResponse(InfoResponse{
		ID:         req.ID,
		Status:     "ok",
		Words:      stats["words"],
		WordLength: stats["wordLength"],
		Dropped:    stats["dropped"],
		Duplicates: stats["duplicates"],
		TopLetters: string(s.finder.Model().Ranked()),
		MaxK:       s.config.Server.MaxK,
		MaxLimit:   s.config.Server.MaxLimit,
		CacheHits:  s.cache.Stats()["hits"],
	})
}

// limit clamps a requested result count to [1, max_limit], using the
// configured default when none was given.
func (s *Server) limit(requested int) int {
	limit := requested
	if limit < 1 {
		limit = s.config.Server.DefaultLimit
	}
	if maxLimit := s.config.Server.MaxLimit; maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return max(limit, 1)
}

// errorCode maps domain errors onto response codes.
func errorCode(err error) int {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return CodeCanceled
	case errors.Is(err, starter.ErrInfeasible):
		return CodeInfeasible
	case errors.Is(err, starter.ErrConfiguration), errors.Is(err, deduce.ErrInvalidFeedback):
		return CodeBadRequest
	}
	return CodeInternal
}

// sendResponse encodes one msgpack message and flushes it to the client.
func (s *Server) sendResponse(response any) {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.writer.Flush(); err != nil {
		log.Errorf("Writing response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(ErrorResponse{
		ID:    id,
		Error: message,
		Code:  code,
	})
}
