// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Polls

type Question struct {
	ID           int64     `json:"id"`
	QuestionText string    `json:"question_text"`
	PubDate      time.Time `json:"pub_date"`
}

// PollIndexContext is the template context for polls/index.html
type PollIndexContext struct {
	LatestQuestionList []Question
}

// Maps

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Route struct {
	ID         string    `json:"id"`
	Points     []LatLng  `json:"points"`
	DistanceKM float64   `json:"distance_km"`
	CreatedAt  time.Time `json:"created_at"`
}

// MapIndexContext is the template context for maps/index.html
type MapIndexContext struct {
	CenterLat    float64
	CenterLng    float64
	Zoom         int
	RecentRoutes []Route
	SavedRouteID string
}

// Request types

// Data uses the map page encoding: "lat,lng;lat,lng;"
type SaveRouteRequest struct {
	Data string `json:"data"`
}

// Response types

type SaveRouteResponse struct {
	RouteID    string  `json:"route_id"`
	Points     int     `json:"points"`
	DistanceKM float64 `json:"distance_km"`
}

type ListRoutesResponse struct {
	Routes []Route `json:"routes"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
