package handlers

import "service-dispatch/internal/domain"

func pointToDTO(p *domain.Point) *pointDTO {
	if p == nil {
		return nil
	}
	return &pointDTO{Lat: p.Lat, Lng: p.Lng}
}

func deliveryToResponse(d *domain.Delivery) deliveryResponse {
	return deliveryResponse{
		ID:             d.ID,
		OrderID:        d.OrderID,
		CustomerID:     d.CustomerID,
		Status:         string(d.Status),
		CourierID:      d.CourierID,
		TrackingNumber: d.TrackingNumber,
		RetryCount:     d.RetryCount,
	}
}

func assignResultToResponse(res *domain.AssignResult) assignResultResponse {
	return assignResultResponse{
		DeliveryID:     res.DeliveryID,
		ClusterID:      res.ClusterID,
		CourierID:      res.CourierID,
		Split:          res.Split,
		RelayClusterID: res.RelayClusterID,
	}
}

func clusterToResponse(c *domain.DeliveryCluster) clusterResponse {
	return clusterResponse{
		ID:            c.ID,
		DeliveryID:    c.DeliveryID,
		VendorID:      c.VendorID,
		Pickup:        pointToDTO(c.Pickup),
		Dropoff:       pointDTO{Lat: c.Dropoff.Lat, Lng: c.Dropoff.Lng},
		DistanceKm:    c.DistanceKm,
		Price:         c.Price,
		Status:        string(c.Status),
		CourierID:     c.CourierID,
		AssignedAt:    c.AssignedAt,
		SequenceOrder: c.SequenceOrder,
	}
}

func trackingToResponse(c *domain.DeliveryCluster) trackingResponse {
	resp := trackingResponse{
		ClusterID:     c.ID,
		SequenceOrder: c.SequenceOrder,
		Status:        string(c.Status),
	}
	if c.Tracking != nil {
		resp.Status = c.Tracking.Status
		resp.Location = pointToDTO(&c.Tracking.Location)
		resp.UpdatedAt = c.Tracking.UpdatedAt
	}
	return resp
}

func unassignedToResponse(u domain.UnassignedCluster) unassignedClusterResponse {
	resp := unassignedClusterResponse{
		Cluster:       clusterToResponse(&u.Cluster),
		PendingOffers: make([]offerResponse, 0, len(u.PendingOffers)),
	}
	for _, o := range u.PendingOffers {
		resp.PendingOffers = append(resp.PendingOffers, offerResponse{
			ID:           o.ID,
			CourierID:    o.CourierID,
			OfferedPrice: o.OfferedPrice,
			DistanceKm:   o.DistanceKm,
			ExpiryTime:   o.ExpiryTime,
		})
	}
	return resp
}
