/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 * Copyright (c) 2024, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dburkart/declscan/pkg/common/parse"
	"github.com/dburkart/declscan/pkg/scanner"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type Config struct {
	Port        int
	MetricsPort int
	// MaxBytes bounds the size of a request body. Zero or less means no
	// limit.
	MaxBytes int64
	// MaxErrors stops a scan after this many lexical errors. Zero means
	// no limit.
	MaxErrors int
}

type Server struct {
	log     zerolog.Logger
	metrics MetricsStore
	config  Config
	totals  *scanTotals

	scanSrv    *http.Server
	metricsSrv *http.Server
}

type ErrorResponse struct {
	Kind     parse.ErrorKind `json:"kind"`
	Line     int             `json:"line"`
	Start    int             `json:"start"`
	End      int             `json:"end"`
	Message  string          `json:"message"`
	Rendered string          `json:"rendered"`
}

type ScanResponse struct {
	ID     string          `json:"id"`
	Tokens []scanner.Token `json:"tokens"`
	Errors []ErrorResponse `json:"errors"`
}

func New(log zerolog.Logger, config Config) *Server {
	s := &Server{
		log:     log,
		metrics: NewMetricsStore(),
		config:  config,
		totals:  &scanTotals{},
	}
	s.metrics.RegisterCollector(NewScanStatsCollector(s.totals))

	// Both servers are built here; ServeScan and ServeMetrics only start them.
	s.scanSrv = &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Port),
		Handler: s.Handler(),
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", s.metrics.Handler())
	s.metricsSrv = &http.Server{
		Addr:    fmt.Sprintf(":%d", config.MetricsPort),
		Handler: metricsMux,
	}

	return s
}

// Handler returns the scanning API.
func (s *Server) Handler() http.Handler {
	mux := NewRouteMux(s.metrics)
	mux.Handle(http.MethodPost, "/scan", s.handleScan)
	mux.Handle(http.MethodGet, "/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})
	return mux
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	log := s.log.With().Str("request-id", id).Logger()
	w.Header().Set("X-Request-Id", id)

	var reader io.Reader = r.Body
	if s.config.MaxBytes > 0 {
		reader = http.MaxBytesReader(w, r.Body, s.config.MaxBytes)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Debug().Int64("limit", tooLarge.Limit).Msg("request body too large")
			http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
			return
		}
		log.Error().Err(err).Msg("unable to read request body")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	input := string(body)
	t := time.Now()
	tokens, errs := scanner.ScanAll(input, s.config.MaxErrors)
	log.Debug().
		Int("bytes", len(input)).
		Int("tokens", len(tokens)).
		Int("errors", len(errs)).
		Str("dur", time.Since(t).String()).
		Msg("scanned source")

	s.totals.observe(input)
	s.record(tokens, errs)

	resp := ScanResponse{
		ID:     id,
		Tokens: tokens,
		Errors: make([]ErrorResponse, 0, len(errs)),
	}
	if resp.Tokens == nil {
		resp.Tokens = []scanner.Token{}
	}
	for _, e := range errs {
		resp.Errors = append(resp.Errors, ErrorResponse{
			Kind:     e.Kind,
			Line:     e.Line,
			Start:    e.Location.Start,
			End:      e.Location.End,
			Message:  e.Message(),
			Rendered: e.FormatError(input),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if len(errs) > 0 {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error().Err(err).Msg("unable to write response")
	}
}

func (s *Server) record(tokens []scanner.Token, errs []*parse.LexError) {
	counts := make(map[scanner.TokenType]int)
	for _, t := range tokens {
		counts[t.Type]++
	}
	for k, n := range counts {
		s.metrics.AddTokens(k.ToString(), n)
	}
	for _, e := range errs {
		s.metrics.IncLexErrors(e.Kind.ToString())
	}
}

func (s *Server) ServeScan() error {
	s.log.Info().Int("port", s.config.Port).Msg("listening for scan requests")
	err := s.scanSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return errors.Wrap(err, "scan server failed")
}

func (s *Server) ServeMetrics() error {
	s.log.Info().Int("port", s.config.MetricsPort).Msg("/metrics endpoint started")
	err := s.metricsSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return errors.Wrap(err, "metrics server failed")
}

// Shutdown stops both listeners, waiting for in-flight requests until ctx
// is done. A server that has not started yet will refuse to start.
func (s *Server) Shutdown(ctx context.Context) error {
	var firstErr error
	for _, srv := range []*http.Server{s.scanSrv, s.metricsSrv} {
		if err := srv.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
