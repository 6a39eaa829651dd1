// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/pollmaps/mysite/cliparse"
	"github.com/pollmaps/mysite/geo"
	"github.com/pollmaps/mysite/logging"
	"github.com/pollmaps/mysite/middleware"
	"github.com/pollmaps/mysite/models"
	"github.com/pollmaps/mysite/store"
	"github.com/pollmaps/mysite/templates"
)

const (
	defaultRouteLimit = 5
	maxRouteLimit     = 50

	// Upper bound on a save_route body; a few thousand markers fit easily
	maxRouteBodyBytes = 1 << 20
)

// RouteStore is the storage the maps app needs
type RouteStore interface {
	Save(ctx context.Context, route models.Route) error
	Get(ctx context.Context, id string) (models.Route, error)
	Latest(ctx context.Context, limit int) ([]models.Route, error)
}

type MapHandler struct {
	routes RouteStore
	pages  Renderer
	cfg    cliparse.Config
	now    func() time.Time
}

func NewMapHandler(routes RouteStore, pages Renderer, cfg cliparse.Config) *MapHandler {
	return &MapHandler{routes: routes, pages: pages, cfg: cfg, now: time.Now}
}

// Index handles GET /maps/
// Renders the route planner with the most recent saved routes
func (h *MapHandler) Index(w http.ResponseWriter, r *http.Request) {
	recent, err := h.routes.Latest(r.Context(), defaultRouteLimit)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to query recent routes", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	renderPage(w, r, h.pages, templates.MapsIndex, models.MapIndexContext{
		CenterLat:    h.cfg.MapCenterLat,
		CenterLng:    h.cfg.MapCenterLng,
		Zoom:         h.cfg.MapZoom,
		RecentRoutes: recent,
		SavedRouteID: r.URL.Query().Get("saved"),
	})
}

// SaveRoute handles POST /maps/save_route/
// Accepts the page form field "data" or a JSON SaveRouteRequest
func (h *MapHandler) SaveRoute(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, maxRouteBodyBytes)

	var req models.SaveRouteRequest
	wantsJSON := middleware.IsJSON(r)
	if wantsJSON {
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
	} else {
		// ParseMultipartForm drops ParseForm errors for non-multipart bodies
		if err := r.ParseForm(); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid form")
			return
		}
		err := r.ParseMultipartForm(maxRouteBodyBytes)
		if err != nil && !errors.Is(err, http.ErrNotMultipart) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid form")
			return
		}
		req.Data = r.PostFormValue("data")
	}

	points, err := geo.ParseRoute(req.Data)
	if err != nil {
		routesRejectedTotal.Inc()
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	route := models.Route{
		ID:         uuid.NewString(),
		Points:     points,
		DistanceKM: geo.RouteDistance(points),
		CreatedAt:  h.now().UTC(),
	}

	if err := h.routes.Save(r.Context(), route); err != nil {
		logger.Error("failed to save route", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save route")
		return
	}

	routesSavedTotal.Inc()
	routeDistanceKM.Observe(route.DistanceKM)
	logger.Info("route saved",
		"route_id", route.ID,
		"points", len(points),
		"distance_km", route.DistanceKM,
	)

	if !wantsJSON {
		http.Redirect(w, r, "/maps/?saved="+url.QueryEscape(route.ID), http.StatusSeeOther)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SaveRouteResponse{
		RouteID:    route.ID,
		Points:     len(points),
		DistanceKM: route.DistanceKM,
	})
}

// ListRoutes handles GET /maps/routes/
func (h *MapHandler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	limit := defaultRouteLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxRouteLimit)
	}

	routes, err := h.routes.Latest(r.Context(), limit)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to query routes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListRoutesResponse{Routes: routes})
}

// GetRoute handles GET /maps/routes/{id}
func (h *MapHandler) GetRoute(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "route id is required")
		return
	}

	route, err := h.routes.Get(r.Context(), id)
	if errors.Is(err, store.ErrRouteNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Route not found")
		return
	}
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to query route", "route_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, route)
}
