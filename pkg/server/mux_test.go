package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dburkart/declscan/pkg/server"
)

func stub(w http.ResponseWriter, r *http.Request) {

}

func BenchmarkRouteMux(b *testing.B) {
	mux := server.NewRouteMux(server.NewMetricsStore())

	mux.Handle(http.MethodGet, "/a", stub)
	mux.Handle(http.MethodGet, "/b", stub)
	mux.Handle(http.MethodPost, "/c", stub)

	tests := []*http.Request{
		httptest.NewRequest(http.MethodGet, "/a", nil),
		httptest.NewRequest(http.MethodGet, "/b", nil),
		httptest.NewRequest(http.MethodPost, "/c", nil),
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mux.ServeHTTP(httptest.NewRecorder(), tests[i%len(tests)])
	}
}
