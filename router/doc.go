// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes using Go 1.22+ enhanced routing.

# Creating the Router

	limiter := middleware.NewRateLimiter(cfg.SaveRouteRate, cfg.SaveRouteBurst)
	mux := router.NewRouter(db, cfg, limiter)
	server := http.Server{Handler: router.Handler(mux)}

NewRouter builds the stores and page templates and hands them to the
handlers explicitly. Handler adds request IDs and CORS around the mux.

# Route Table

polls app:

	GET  /polls/                           Index (five newest questions)
	GET  /polls/{question_id}/             Detail
	GET  /polls/{question_id}/results/     Results
	*    /polls/{question_id}/vote/        Vote

maps app:

	GET  /maps/                Index (route planner)
	POST /maps/save_route/     SaveRoute
	GET  /maps/routes/         ListRoutes (JSON, ?limit=)
	GET  /maps/routes/{id}     GetRoute (JSON)

Other:

	GET  /health    returns "OK"
	GET  /metrics   Prometheus metrics
	GET  /          returns "mysite server"

Patterns ending in {$} match the exact path only, so /polls/7/extra is a 404
rather than the detail page. Question IDs are passed through unparsed.

# Middleware

Every app route is wrapped with middleware.Wrap (metrics and logging).
POST /maps/save_route/ is also throttled per client IP by the limiter
passed to NewRouter; rejected requests get 429 with Retry-After.
/health and /metrics are left unwrapped to keep scrapes out of the logs.
*/
package router
