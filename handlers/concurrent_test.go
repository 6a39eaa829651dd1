// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pollmaps/mysite/models"
	"github.com/pollmaps/mysite/store"
	"github.com/pollmaps/mysite/templates"
	"github.com/pollmaps/mysite/testutil"
)

// TestConcurrentRouteSaves verifies that simultaneous saves each get their
// own route and none are lost
func TestConcurrentRouteSaves(t *testing.T) {
	db := testutil.SetupTestDB(t)
	routes := store.NewRouteRepo(db)
	mapHandler := NewMapHandler(routes, templates.Must(), testutil.GetTestConfig())

	numClients := 10
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numClients; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			data := fmt.Sprintf("%d,%d;%d,%d;", idx, idx, idx+1, idx+1)
			req := testutil.MakeRequest("POST", "/maps/save_route/", models.SaveRouteRequest{Data: data}, nil)
			w := httptest.NewRecorder()

			mapHandler.SaveRoute(w, req)

			if w.Code == http.StatusCreated {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numClients {
		t.Errorf("Expected %d successful saves, got %d", numClients, successCount.Load())
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM route").Scan(&count); err != nil {
		t.Fatalf("Failed to count routes: %v", err)
	}
	if count != numClients {
		t.Errorf("Expected %d routes, got %d", numClients, count)
	}
}

// TestConcurrentPollIndexReads verifies that parallel index requests all see
// the same five questions
func TestConcurrentPollIndexReads(t *testing.T) {
	db := testutil.SetupTestDB(t)
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 8; i++ {
		testutil.CreateTestQuestion(t, db, fmt.Sprintf("Q%d", i), base.Add(time.Duration(i)*time.Minute))
	}
	pollHandler := NewPollHandler(store.NewQuestionRepo(db), templates.Must())

	numReaders := 20
	bodies := make([]string, numReaders)
	var wg sync.WaitGroup

	for i := 0; i < numReaders; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			w := httptest.NewRecorder()
			pollHandler.Index(w, httptest.NewRequest("GET", "/polls/", nil))
			if w.Code == http.StatusOK {
				bodies[idx] = w.Body.String()
			}
		}(i)
	}

	wg.Wait()

	for i, body := range bodies {
		if body != bodies[0] {
			t.Fatalf("Reader %d saw a different page", i)
		}
	}
	if got := strings.Count(bodies[0], "<li>"); got != store.LatestLimit {
		t.Errorf("Expected %d questions, got %d", store.LatestLimit, got)
	}
	if strings.Contains(bodies[0], ">Q2<") {
		t.Error("Oldest questions should not be listed")
	}
}
