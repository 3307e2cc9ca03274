// Package order talks to the orders service over HTTP. Dispatch needs the
// customer drop-off coordinates and the per-vendor line items of an order.
package order

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"service-dispatch/internal/domain"
)

// LineItem is one ordered item together with its vendor.
type LineItem struct {
	VendorID       string
	Name           string
	Quantity       int
	VendorLocation *domain.Point
}

// Order represents an order from the orders service.
type Order struct {
	ID         string
	CustomerID string
	Status     string
	Dropoff    *domain.Point
	Items      []LineItem
	CreatedAt  time.Time
}

// Vendors groups the order's line items by vendor, preserving first-seen
// order. The map value carries the vendor's coordinates when known.
func (o *Order) Vendors() ([]string, map[string]*domain.Point) {
	seen := map[string]*domain.Point{}
	var ids []string
	for _, it := range o.Items {
		if _, ok := seen[it.VendorID]; !ok {
			ids = append(ids, it.VendorID)
			seen[it.VendorID] = it.VendorLocation
		}
	}
	return ids, seen
}

type pointDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type lineItemDTO struct {
	VendorID       string    `json:"vendor_id"`
	Name           string    `json:"name"`
	Quantity       int       `json:"quantity"`
	VendorLocation *pointDTO `json:"vendor_location,omitempty"`
}

type orderDTO struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customer_id"`
	Status     string        `json:"status"`
	Dropoff    *pointDTO     `json:"dropoff,omitempty"`
	Items      []lineItemDTO `json:"items"`
	CreatedAt  time.Time     `json:"created_at"`
}

func mapPoint(p *pointDTO) *domain.Point {
	if p == nil {
		return nil
	}
	return &domain.Point{Lat: p.Lat, Lng: p.Lng}
}

func mapOrder(dto orderDTO) Order {
	o := Order{
		ID:         dto.ID,
		CustomerID: dto.CustomerID,
		Status:     dto.Status,
		Dropoff:    mapPoint(dto.Dropoff),
		CreatedAt:  dto.CreatedAt,
	}
	for _, it := range dto.Items {
		o.Items = append(o.Items, LineItem{
			VendorID:       it.VendorID,
			Name:           it.Name,
			Quantity:       it.Quantity,
			VendorLocation: mapPoint(it.VendorLocation),
		})
	}
	return o
}

// HTTPGateway is an orders gateway backed by the orders service's REST API.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
}

// NewHTTPGateway creates an orders gateway. A nil client falls back to a
// default with a 10s timeout.
func NewHTTPGateway(baseURL string, client *http.Client) *HTTPGateway {
	if baseURL == "" {
		return nil
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPGateway{baseURL: baseURL, client: client}
}

// GetByID fetches an order by ID. Returns (nil, nil) when the orders service
// reports 404.
func (g *HTTPGateway) GetByID(ctx context.Context, id string) (*Order, error) {
	u := fmt.Sprintf("%s/api/v1/orders/%s", g.baseURL, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("order gateway: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("order gateway: GetByID: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode != http.StatusOK:
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Method: "GetByID", Code: resp.StatusCode}
	}

	var dto orderDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return nil, fmt.Errorf("order gateway: decode order: %w", err)
	}
	ord := mapOrder(dto)
	return &ord, nil
}

// StatusError is a non-2xx answer from the orders service.
type StatusError struct {
	Method string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("order gateway: %s: unexpected status %d", e.Method, e.Code)
}
