/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"net/http"
	"strconv"
	"time"
)

// RouteMux dispatches on path, then method, and records request metrics
// for every route it knows about.
type RouteMux struct {
	handlers map[string]map[string]http.HandlerFunc
	metrics  MetricsStore
}

func NewRouteMux(metrics MetricsStore) *RouteMux {
	return &RouteMux{
		handlers: make(map[string]map[string]http.HandlerFunc),
		metrics:  metrics,
	}
}

func (m *RouteMux) Handle(method, path string, f http.HandlerFunc) {
	methods, ok := m.handlers[path]
	if !ok {
		methods = make(map[string]http.HandlerFunc)
		m.handlers[path] = methods
	}
	methods[method] = f
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func (m *RouteMux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	methods, ok := m.handlers[r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}

	t := time.Now()
	rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
	defer func() {
		m.metrics.IncRequests(r.URL.Path, strconv.Itoa(rec.code))
		m.metrics.ObserveResponseNS(r.URL.Path, time.Since(t).Nanoseconds())
	}()

	f, ok := methods[r.Method]
	if !ok {
		http.Error(rec, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	f(rec, r)
}
