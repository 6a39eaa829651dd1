// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Per-route Middleware

Wrap applies request metrics and logging to a handler:

	mux.HandleFunc("GET /polls/{$}", middleware.Wrap(pollHandler.Index))

WithLogging logs request start (method, path, remote) and completion
(status, duration_ms) using the request-scoped logger, so every line
carries the request_id set by package requestid.

WithMetrics records http_requests_total, http_request_duration_seconds and
http_requests_in_flight, labelled by the matched mux pattern.

# Rate Limiting

RateLimiter keeps one token bucket per client IP:

	limiter := middleware.NewRateLimiter(1, 5).TrustProxies(cfg.TrustedProxies...)
	go limiter.Run(ctx.Done())
	mux.HandleFunc("POST /maps/save_route/{$}", middleware.Wrap(limiter.Limit(h)))

Clients are keyed by peer address; forwarding headers count only when the
peer is a trusted proxy. Clients over budget get 429 with a Retry-After
header. Run forgets clients idle for five minutes.

# CORS Middleware

CORS reflects the request Origin and never allows credentials.

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# Response Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.TextResponse(w, http.StatusOK, "Your are looking at question 7")

# Request Helpers

	var req models.SaveRouteRequest
	if middleware.IsJSON(r) {
		err = middleware.ParseJSONBody(r, &req)
	}

	ip := middleware.GetClientIP(r)              // peer address only
	ip = middleware.GetClientIP(r, trusted...)   // X-Forwarded-For from trusted proxies
*/
package middleware
