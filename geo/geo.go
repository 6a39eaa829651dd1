// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package geo parses map routes and measures them.
package geo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pollmaps/mysite/models"
)

// EarthRadiusKM is the mean earth radius used for haversine distances.
const EarthRadiusKM = 6371.0

// MinRoutePoints is the fewest markers that make a route.
const MinRoutePoints = 2

var (
	ErrInvalidPoint = errors.New("invalid point")
	ErrTooFewPoints = errors.New("route needs at least 2 points")
)

// ParseRoute decodes "lat,lng;lat,lng;" into points.
// Empty segments are skipped, so a trailing separator is allowed.
func ParseRoute(data string) ([]models.LatLng, error) {
	var points []models.LatLng
	for i, seg := range strings.Split(data, ";") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		p, err := parsePoint(seg)
		if err != nil {
			return nil, fmt.Errorf("segment %d %q: %w", i+1, seg, err)
		}
		points = append(points, p)
	}
	if len(points) < MinRoutePoints {
		return nil, ErrTooFewPoints
	}
	return points, nil
}

func parsePoint(seg string) (models.LatLng, error) {
	latStr, lngStr, ok := strings.Cut(seg, ",")
	if !ok {
		return models.LatLng{}, ErrInvalidPoint
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return models.LatLng{}, ErrInvalidPoint
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return models.LatLng{}, ErrInvalidPoint
	}
	p := models.LatLng{Lat: lat, Lng: lng}
	if !Valid(p) {
		return models.LatLng{}, ErrInvalidPoint
	}
	return p, nil
}

// Valid reports whether p lies within latitude/longitude bounds.
func Valid(p models.LatLng) bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// EncodeRoute is the inverse of ParseRoute.
func EncodeRoute(points []models.LatLng) string {
	var b strings.Builder
	for _, p := range points {
		b.WriteString(strconv.FormatFloat(p.Lat, 'f', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(p.Lng, 'f', -1, 64))
		b.WriteByte(';')
	}
	return b.String()
}

// Distance returns the great-circle distance between a and b in kilometres.
func Distance(a, b models.LatLng) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	return EarthRadiusKM * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// RouteDistance sums the legs between consecutive points.
func RouteDistance(points []models.LatLng) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += Distance(points[i-1], points[i])
	}
	return total
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
