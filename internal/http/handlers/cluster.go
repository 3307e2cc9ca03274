package handlers

import (
	"net/http"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
)

// offerConflictMsg is the courier-facing reason for any offer that cannot be
// acted on, whatever the underlying state was.
const offerConflictMsg = "offer not valid or already handled"

// ClusterHandler handles HTTP requests for cluster and offer resources.
type ClusterHandler struct {
	usecase  dispatchUsecase
	clusters clusterUsecase
	logger   logx.Logger
}

// NewClusterHandler creates a new ClusterHandler.
func NewClusterHandler(logger logx.Logger, uc dispatchUsecase, clusters clusterUsecase) *ClusterHandler {
	return &ClusterHandler{usecase: uc, clusters: clusters, logger: logger}
}

// AcceptOffer handles POST /clusters/{id}/offer/accept.
// @Summary Courier accepts their offer for a cluster
// @Tags offers
// @Accept json
// @Produce json
// @Param request body courierActionRequest true "Accepting courier"
// @Success 200 {object} assignResultResponse
// @Failure 404 {object} ErrorResponse "cluster not found"
// @Failure 409 {object} ErrorResponse "offer not valid or already handled"
// @Router /clusters/{id}/offer/accept [post]
func (h *ClusterHandler) AcceptOffer(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req courierActionRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	res, err := h.usecase.AcceptOffer(r.Context(), id, req.CourierID)
	if err != nil {
		writeDomainError(h.logger, w, r, err, "cluster not found", offerConflictMsg)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, assignResultToResponse(res))
}

// DeclineOffer handles POST /clusters/{id}/offer/decline.
// @Summary Courier declines their offer for a cluster
// @Tags offers
// @Accept json
// @Produce json
// @Param request body courierActionRequest true "Declining courier"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse "cluster not found"
// @Failure 409 {object} ErrorResponse "offer not valid or already handled"
// @Router /clusters/{id}/offer/decline [post]
func (h *ClusterHandler) DeclineOffer(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req courierActionRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	if err := h.usecase.DeclineOffer(r.Context(), id, req.CourierID); err != nil {
		writeDomainError(h.logger, w, r, err, "cluster not found", offerConflictMsg)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "declined"})
}

// CancelOffer handles POST /clusters/{id}/offer/cancel.
// @Summary Courier backs out of an accepted offer
// @Tags offers
// @Accept json
// @Produce json
// @Param request body courierActionRequest true "Cancelling courier"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse "cluster not found"
// @Failure 409 {object} ErrorResponse "offer not valid or already handled"
// @Router /clusters/{id}/offer/cancel [post]
func (h *ClusterHandler) CancelOffer(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req courierActionRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	if err := h.usecase.CancelOffer(r.Context(), id, req.CourierID); err != nil {
		writeDomainError(h.logger, w, r, err, "cluster not found", offerConflictMsg)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "canceled"})
}

// AssignDriver handles POST /clusters/{id}/assign.
// @Summary Dispatcher assigns a courier to a cluster by hand
// @Tags clusters
// @Accept json
// @Produce json
// @Param request body courierActionRequest true "Courier to assign"
// @Success 200 {object} clusterResponse
// @Failure 404 {object} ErrorResponse "cluster or courier not found"
// @Failure 409 {object} ErrorResponse "cluster already assigned or closed"
// @Router /clusters/{id}/assign [post]
func (h *ClusterHandler) AssignDriver(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req courierActionRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	c, err := h.clusters.AssignDriver(r.Context(), id, req.CourierID)
	if err != nil {
		writeDomainError(h.logger, w, r, err, "cluster or courier not found", "cluster already assigned or closed")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, clusterToResponse(c))
}

// AutoAssign handles POST /clusters/{id}/auto-assign.
// @Summary Re-run offer broadcasting for a pending cluster
// @Tags clusters
// @Accept json
// @Produce json
// @Param request body autoAssignRequest false "Optional pickup override"
// @Success 202 {object} map[string]string
// @Failure 404 {object} ErrorResponse "cluster not found"
// @Failure 409 {object} ErrorResponse "cluster not pending"
// @Router /clusters/{id}/auto-assign [post]
func (h *ClusterHandler) AutoAssign(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req autoAssignRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	var pickup *domain.Point
	if req.Pickup != nil {
		pickup = &domain.Point{Lat: req.Pickup.Lat, Lng: req.Pickup.Lng}
	}
	if err := h.usecase.AutoAssign(r.Context(), id, pickup); err != nil {
		writeDomainError(h.logger, w, r, err, "cluster not found", "cluster not pending")
		return
	}
	writeJSON(h.logger, w, r, http.StatusAccepted, map[string]string{"status": "assignment requested"})
}

// UpdateTracking handles PUT /clusters/{id}/tracking.
// @Summary Update the tracking snapshot of a cluster
// @Tags clusters
// @Accept json
// @Produce json
// @Param request body updateTrackingRequest true "Tracking snapshot"
// @Success 200 {object} trackingResponse
// @Failure 404 {object} ErrorResponse "cluster not found"
// @Router /clusters/{id}/tracking [put]
func (h *ClusterHandler) UpdateTracking(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req updateTrackingRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	c, err := h.clusters.UpdateTracking(r.Context(), id, req.Status, domain.Point{Lat: req.Lat, Lng: req.Lng})
	if err != nil {
		writeDomainError(h.logger, w, r, err, "cluster not found", "cluster not trackable")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, trackingToResponse(c))
}

// Unassigned handles GET /clusters/unassigned.
// @Summary Clusters still waiting for a courier, with their pending offers
// @Tags clusters
// @Produce json
// @Success 200 {array} unassignedClusterResponse
// @Router /clusters/unassigned [get]
func (h *ClusterHandler) Unassigned(w http.ResponseWriter, r *http.Request) {
	clusters, err := h.clusters.GetUnassigned(r.Context())
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]unassignedClusterResponse, 0, len(clusters))
	for _, u := range clusters {
		out = append(out, unassignedToResponse(u))
	}
	writeJSON(h.logger, w, r, http.StatusOK, out)
}
