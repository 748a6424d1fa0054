/*
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
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type decodedResponse struct {
	ID     string `json:"id"`
	Tokens []struct {
		Type     string `json:"type"`
		Lexeme   string `json:"lexeme"`
		Line     int    `json:"line"`
		Location struct {
			Start int `json:"start"`
			End   int `json:"end"`
		} `json:"location"`
	} `json:"tokens"`
	Errors []struct {
		Kind     string `json:"kind"`
		Line     int    `json:"line"`
		Message  string `json:"message"`
		Rendered string `json:"rendered"`
	} `json:"errors"`
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	s := New(zerolog.Nop(), Config{MaxBytes: 64})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func post(t *testing.T, ts *httptest.Server, body string) (*http.Response, decodedResponse) {
	t.Helper()

	resp, err := http.Post(ts.URL+"/scan", "text/plain", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded decodedResponse
	if resp.Header.Get("Content-Type") == "application/json" {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	} else {
		io.Copy(io.Discard, resp.Body)
	}
	return resp, decoded
}

func TestScan(t *testing.T) {
	s, ts := newTestServer(t)

	resp, decoded := post(t, ts, "foo: double = .12")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, err := uuid.Parse(resp.Header.Get("X-Request-Id"))
	require.NoError(t, err)
	require.Equal(t, resp.Header.Get("X-Request-Id"), decoded.ID)

	require.Len(t, decoded.Tokens, 6)
	require.Empty(t, decoded.Errors)

	number := decoded.Tokens[4]
	require.Equal(t, "TOK_NUMBER", number.Type)
	require.Equal(t, ".12", number.Lexeme)
	require.Equal(t, 14, number.Location.Start)
	require.Equal(t, 17, number.Location.End)
	require.Equal(t, "TOK_EOF", decoded.Tokens[5].Type)

	ms := s.metrics.(*metricsStore)
	require.Equal(t, 2.0, testutil.ToFloat64(ms.Tokens.WithLabelValues("TOK_IDENTIFIER")))
	require.Equal(t, 1.0, testutil.ToFloat64(ms.Requests.WithLabelValues("/scan", "200")))
	require.Equal(t, int64(17), s.totals.bytes.Load())
}

func TestScanReportsErrors(t *testing.T) {
	s, ts := newTestServer(t)

	resp, decoded := post(t, ts, "x = \"abc")
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	require.Len(t, decoded.Errors, 1)
	require.Equal(t, "unterminated-string", decoded.Errors[0].Kind)
	require.Equal(t, 1, decoded.Errors[0].Line)
	require.Contains(t, decoded.Errors[0].Rendered, "^~~~")

	ms := s.metrics.(*metricsStore)
	require.Equal(t, 1.0, testutil.ToFloat64(ms.LexErrors.WithLabelValues("unterminated-string")))
}

func TestScanRejectsLargeBodies(t *testing.T) {
	_, ts := newTestServer(t)

	resp, _ := post(t, ts, strings.Repeat("a", 65))
	require.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestRouteMux(t *testing.T) {
	s, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/scan")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	ms := s.metrics.(*metricsStore)
	require.Equal(t, 1.0, testutil.ToFloat64(ms.Requests.WithLabelValues("/scan", "405")))
}

func TestMetricsHandler(t *testing.T) {
	s, ts := newTestServer(t)
	post(t, ts, "a = 1")

	rec := httptest.NewRecorder()
	s.metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	require.Contains(t, body, "declscan_scanned_sources 1")
	require.Contains(t, body, "declscan_scanned_bytes 5")
	require.Contains(t, body, `declscan_tokens{kind="TOK_NUMBER"} 1`)
}

func TestScanWithoutSizeLimit(t *testing.T) {
	s := New(zerolog.Nop(), Config{})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	resp, decoded := post(t, ts, strings.Repeat("a ", 1024))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, decoded.Tokens, 1025)
}

func freePort(t *testing.T) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestShutdownStopsServingImmediately(t *testing.T) {
	port, metricsPort := freePort(t), freePort(t)
	s := New(zerolog.Nop(), Config{Port: port, MetricsPort: metricsPort, MaxBytes: 64})

	done := make(chan error, 2)
	go func() { done <- s.ServeScan() }()
	go func() { done <- s.ServeMetrics() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))

	for i := 0; i < 2; i++ {
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("server did not stop after Shutdown")
		}
	}

	for _, p := range []int{port, metricsPort} {
		conn, err := net.DialTimeout("tcp", fmt.Sprintf("127.0.0.1:%d", p), 200*time.Millisecond)
		if err == nil {
			conn.Close()
			t.Errorf("port %d still accepting connections after Shutdown", p)
		}
	}
}
