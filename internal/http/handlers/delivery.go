package handlers

import (
	"net/http"

	"service-dispatch/internal/logx"
)

// DeliveryHandler handles HTTP requests for delivery resources.
type DeliveryHandler struct {
	usecase  dispatchUsecase
	clusters clusterUsecase
	logger   logx.Logger
}

// NewDeliveryHandler creates a new DeliveryHandler.
func NewDeliveryHandler(logger logx.Logger, uc dispatchUsecase, clusters clusterUsecase) *DeliveryHandler {
	return &DeliveryHandler{usecase: uc, clusters: clusters, logger: logger}
}

// Create handles POST /deliveries.
// @Summary Create a delivery for an order
// @Tags deliveries
// @Accept json
// @Produce json
// @Param request body createDeliveryRequest true "Create delivery payload"
// @Success 201 {object} deliveryResponse
// @Failure 400 {object} ErrorResponse "invalid input"
// @Failure 404 {object} ErrorResponse "order not found"
// @Failure 409 {object} ErrorResponse "delivery already exists"
// @Router /deliveries [post]
func (h *DeliveryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDeliveryRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	d, err := h.usecase.CreateDelivery(r.Context(), req.OrderID)
	if err != nil {
		writeDomainError(h.logger, w, r, err, "order not found", "delivery already exists for this order")
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, deliveryToResponse(d))
}

// Cancel handles POST /deliveries/{id}/cancel.
// @Summary Cancel a delivery
// @Tags deliveries
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse "delivery not found"
// @Failure 409 {object} ErrorResponse "delivery already completed or cancelled"
// @Router /deliveries/{id}/cancel [post]
func (h *DeliveryHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.usecase.CancelDelivery(r.Context(), id); err != nil {
		writeDomainError(h.logger, w, r, err, "delivery not found", "delivery already completed or cancelled")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "cancelled"})
}

// Complete handles POST /deliveries/{id}/complete.
// @Summary Complete a delivery
// @Tags deliveries
// @Accept json
// @Produce json
// @Param request body courierActionRequest true "Completing courier"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse "delivery not found"
// @Failure 409 {object} ErrorResponse "courier mismatch or delivery already closed"
// @Router /deliveries/{id}/complete [post]
func (h *DeliveryHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req courierActionRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	if err := h.usecase.CompleteDelivery(r.Context(), id, req.CourierID); err != nil {
		writeDomainError(h.logger, w, r, err, "delivery not found", "courier mismatch or delivery already closed")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "delivered"})
}

// Tracking handles GET /deliveries/{id}/tracking.
// @Summary Tracking snapshots of a delivery's legs
// @Tags deliveries
// @Produce json
// @Success 200 {array} trackingResponse
// @Failure 404 {object} ErrorResponse "delivery not found"
// @Router /deliveries/{id}/tracking [get]
func (h *DeliveryHandler) Tracking(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	clusters, err := h.clusters.GetTracking(r.Context(), id)
	if err != nil {
		writeDomainError(h.logger, w, r, err, "delivery not found", "delivery not trackable")
		return
	}

	out := make([]trackingResponse, 0, len(clusters))
	for i := range clusters {
		out = append(out, trackingToResponse(&clusters[i]))
	}
	writeJSON(h.logger, w, r, http.StatusOK, out)
}
