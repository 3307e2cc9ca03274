package handlers

import (
	"net/http"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
)

// CourierHandler handles courier lookups and location pings.
type CourierHandler struct {
	locations locationWriter
	couriers  courierReader
	logger    logx.Logger
}

// NewCourierHandler creates a new CourierHandler.
func NewCourierHandler(logger logx.Logger, locations locationWriter, couriers courierReader) *CourierHandler {
	return &CourierHandler{locations: locations, couriers: couriers, logger: logger}
}

// Get handles GET /couriers/{id}.
// @Summary Courier profile
// @Tags couriers
// @Produce json
// @Success 200 {object} courierResponse
// @Failure 404 {object} ErrorResponse "courier not found"
// @Router /couriers/{id} [get]
func (h *CourierHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	c, err := h.couriers.Get(r.Context(), id)
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	if c == nil {
		writeError(h.logger, w, r, http.StatusNotFound, "courier not found")
		return
	}

	resp := courierResponse{
		ID:        c.ID,
		FullName:  c.FullName,
		Available: c.Available,
		Status:    string(c.Status),
	}
	if c.Location != nil {
		resp.Location = &pointDTO{Lat: c.Location.Lat, Lng: c.Location.Lng}
	}
	writeJSON(h.logger, w, r, http.StatusOK, resp)
}

// UpdateLocation handles PUT /couriers/{id}/location.
// @Summary Courier position ping
// @Tags couriers
// @Accept json
// @Produce json
// @Param request body updateLocationRequest true "Current position"
// @Success 204 "position stored"
// @Failure 400 {object} ErrorResponse "invalid coordinates"
// @Router /couriers/{id}/location [put]
func (h *CourierHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req updateLocationRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	p := domain.Point{Lat: req.Lat, Lng: req.Lng}
	if !p.Valid() {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid coordinates")
		return
	}

	if err := h.locations.Update(r.Context(), id, p); err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveLocation handles DELETE /couriers/{id}/location, e.g. on shift end.
func (h *CourierHandler) RemoveLocation(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.locations.Remove(r.Context(), id); err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
