// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pollmaps/mysite/cliparse"
	"github.com/pollmaps/mysite/handlers"
	"github.com/pollmaps/mysite/middleware"
	"github.com/pollmaps/mysite/requestid"
	"github.com/pollmaps/mysite/store"
	"github.com/pollmaps/mysite/templates"
)

// NewRouter wires storage, templates and handlers into a mux.
// saveLimiter throttles route submissions per client.
func NewRouter(db *sql.DB, cfg cliparse.Config, saveLimiter *middleware.RateLimiter) *http.ServeMux {
	pages := templates.Must()

	pollHandler := handlers.NewPollHandler(store.NewQuestionRepo(db), pages)
	mapHandler := handlers.NewMapHandler(store.NewRouteRepo(db), pages, cfg)

	return newMux(pollHandler, mapHandler, saveLimiter)
}

func newMux(pollHandler *handlers.PollHandler, mapHandler *handlers.MapHandler, saveLimiter *middleware.RateLimiter) *http.ServeMux {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	// polls app
	mux.HandleFunc("GET /polls/{$}", middleware.Wrap(pollHandler.Index))
	mux.HandleFunc("GET /polls/{question_id}/{$}", middleware.Wrap(pollHandler.Detail))
	mux.HandleFunc("GET /polls/{question_id}/results/{$}", middleware.Wrap(pollHandler.Results))
	mux.HandleFunc("/polls/{question_id}/vote/{$}", middleware.Wrap(pollHandler.Vote))

	// maps app
	mux.HandleFunc("GET /maps/{$}", middleware.Wrap(mapHandler.Index))
	mux.HandleFunc("POST /maps/save_route/{$}", middleware.Wrap(saveLimiter.Limit(mapHandler.SaveRoute)))
	mux.HandleFunc("GET /maps/routes/{$}", middleware.Wrap(mapHandler.ListRoutes))
	mux.HandleFunc("GET /maps/routes/{id}", middleware.Wrap(mapHandler.GetRoute))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("mysite server"))
	})

	return mux
}

// Handler wraps the mux with the middleware every request goes through
func Handler(mux http.Handler) http.Handler {
	return requestid.Middleware(middleware.CORS(mux))
}
