// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain, template and wire types shared by the
polls and maps apps.

# Polls

Question mirrors the question table, the only poll table read over HTTP:

	type Question struct {
		ID           int64
		QuestionText string
		PubDate      time.Time
	}

PollIndexContext is passed to polls/index.html; its LatestQuestionList
holds at most five questions, newest first.

# Maps

A Route is an ordered list of LatLng points with its haversine length:

	type Route struct {
		ID         string
		Points     []LatLng
		DistanceKM float64
		CreatedAt  time.Time
	}

The map page submits routes as SaveRouteRequest.Data in the form
"lat,lng;lat,lng;". See package geo for parsing.

# Errors

ErrorResponse is the JSON body written by middleware.ErrorResponse:

	{"error": "Bad Request", "message": "route needs at least 2 points"}
*/
package models
