/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MetricsStore interface {
	Registry() *prometheus.Registry
	RegisterCollector(c prometheus.Collector)
	Handler() http.Handler

	// Collection
	IncRequests(route, code string)
	ObserveResponseNS(route string, t int64)
	AddTokens(kind string, n int)
	IncLexErrors(kind string)
}

type metricsStore struct {
	registry   *prometheus.Registry
	Requests   *prometheus.CounterVec
	ResponseNS *prometheus.HistogramVec
	Tokens     *prometheus.CounterVec
	LexErrors  *prometheus.CounterVec
}

var (
	RouteLabel = "route"
	CodeLabel  = "code"
	KindLabel  = "kind"
)

func NewMetricsStore() MetricsStore {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(
			collectors.WithGoCollectorRuntimeMetrics(collectors.MetricsAll),
		),
	)

	buckets := []float64{}
	for i := 1; i < 20; i++ {
		buckets = append(buckets, float64(2*i*int(time.Millisecond)))
	}

	factory := promauto.With(reg)
	return &metricsStore{
		registry: reg,
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "declscan_requests",
			Help: "Request counts per route and status code",
		}, []string{RouteLabel, CodeLabel}),
		ResponseNS: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "declscan_response_ns",
			Help:    "Response times per route",
			Buckets: buckets,
		}, []string{RouteLabel}),
		Tokens: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "declscan_tokens",
			Help: "Tokens produced, by kind",
		}, []string{KindLabel}),
		LexErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "declscan_lex_errors",
			Help: "Lexical errors reported, by kind",
		}, []string{KindLabel}),
	}
}

func (ms *metricsStore) Registry() *prometheus.Registry {
	return ms.registry
}

func (ms *metricsStore) RegisterCollector(c prometheus.Collector) {
	ms.registry.MustRegister(c)
}

func (ms *metricsStore) Handler() http.Handler {
	return promhttp.HandlerFor(ms.Registry(), promhttp.HandlerOpts{Registry: ms.Registry()})
}

func (ms *metricsStore) IncRequests(route, code string) {
	ms.Requests.With(prometheus.Labels{RouteLabel: route, CodeLabel: code}).Inc()
}

func (ms *metricsStore) ObserveResponseNS(route string, t int64) {
	ms.ResponseNS.
		With(prometheus.Labels{RouteLabel: route}).
		Observe(float64(t))
}

func (ms *metricsStore) AddTokens(kind string, n int) {
	ms.Tokens.With(prometheus.Labels{KindLabel: kind}).Add(float64(n))
}

func (ms *metricsStore) IncLexErrors(kind string) {
	ms.LexErrors.With(prometheus.Labels{KindLabel: kind}).Inc()
}
