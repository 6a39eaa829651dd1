// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestWithMetrics_CountsByPattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /polls/{question_id}/{$}", WithMetrics(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	counter := httpRequestsTotal.WithLabelValues("GET", "GET /polls/{question_id}/{$}", "200")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"1", "2", "abc"} {
		mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/polls/"+id+"/", nil))
	}

	if got := testutil.ToFloat64(counter) - before; got != 3 {
		t.Errorf("Expected 3 requests counted under one pattern, got %v", got)
	}
	if inFlight := testutil.ToFloat64(httpRequestsInFlight); inFlight != 0 {
		t.Errorf("Expected no requests in flight, got %v", inFlight)
	}
}

func TestWithMetrics_RecordsStatus(t *testing.T) {
	handler := WithMetrics(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	counter := httpRequestsTotal.WithLabelValues("GET", "unmatched", "404")
	before := testutil.ToFloat64(counter)

	handler(httptest.NewRecorder(), httptest.NewRequest("GET", "/nowhere", nil))

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("Expected one 404 counted, got %v", got)
	}
}

func TestWrap(t *testing.T) {
	called := false
	handler := Wrap(func(w http.ResponseWriter, r *http.Request) {
		called = true
		TextResponse(w, http.StatusAccepted, "ok")
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest("POST", "/x", nil))

	if !called {
		t.Error("Expected wrapped handler to be called")
	}
	if w.Code != http.StatusAccepted || w.Body.String() != "ok" {
		t.Errorf("Unexpected response %d %q", w.Code, w.Body.String())
	}
}
