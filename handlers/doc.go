// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP request handlers for the polls and maps apps.

# Handler Types

Each handler is a struct holding the small storage interface it needs and a
page Renderer:

  - PollHandler: questions index and the detail/results/vote placeholders
  - MapHandler: route planner page, route saving and the route API

	pollHandler := handlers.NewPollHandler(store.NewQuestionRepo(db), pages)
	mapHandler := handlers.NewMapHandler(store.NewRouteRepo(db), pages, cfg)

# Polls

	GET /polls/                         → Index (five latest questions)
	GET /polls/{question_id}/           → Detail
	GET /polls/{question_id}/results/   → Results
	    /polls/{question_id}/vote/      → Vote

The placeholders echo the raw path segment and never touch storage.

# Maps

	GET  /maps/              → Index
	POST /maps/save_route/   → SaveRoute (form field "data" or JSON)
	GET  /maps/routes/       → ListRoutes (?limit=, max 50)
	GET  /maps/routes/{id}   → GetRoute

Routes arrive as "lat,lng;lat,lng;" and are parsed by package geo.
Form submissions redirect back to /maps/?saved=<id>; JSON callers get 201.
*/
package handlers
