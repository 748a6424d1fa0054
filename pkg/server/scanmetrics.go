/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// scanTotals holds running totals across every request served.
type scanTotals struct {
	sources atomic.Int64
	bytes   atomic.Int64
}

func (t *scanTotals) observe(input string) {
	t.sources.Add(1)
	t.bytes.Add(int64(len(input)))
}

type scanStatsCollector struct {
	totals *scanTotals

	sources *prometheus.Desc
	bytes   *prometheus.Desc
}

func NewScanStatsCollector(totals *scanTotals) prometheus.Collector {
	return &scanStatsCollector{
		totals: totals,
		sources: prometheus.NewDesc(
			"declscan_scanned_sources",
			"Number of sources scanned since start.",
			nil, nil,
		),
		bytes: prometheus.NewDesc(
			"declscan_scanned_bytes",
			"Number of source bytes scanned since start.",
			nil, nil,
		),
	}
}

// Describe implements Collector.
func (c *scanStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.sources
	ch <- c.bytes
}

// Collect implements Collector.
func (c *scanStatsCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.sources, prometheus.GaugeValue, float64(c.totals.sources.Load()))
	ch <- prometheus.MustNewConstMetric(c.bytes, prometheus.GaugeValue, float64(c.totals.bytes.Load()))
}
