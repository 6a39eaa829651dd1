// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	routesSavedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "maps_routes_saved_total",
		Help: "Total number of routes saved from the maps page",
	})

	routesRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "maps_routes_rejected_total",
		Help: "Total number of save_route requests with unparseable route data",
	})

	routeDistanceKM = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "maps_route_distance_km",
		Help:    "Length of saved routes in kilometres",
		Buckets: []float64{0.5, 1, 2, 5, 10, 25, 50, 100, 500},
	})
)
