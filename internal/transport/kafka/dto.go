package kafka

import (
	"strings"
	"time"

	"service-dispatch/internal/service/orderevents"
)

// EventDTO is the wire shape of an order event.
type EventDTO struct {
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ToDomain converts an EventDTO to an orderevents.Event.
func ToDomain(dto EventDTO) orderevents.Event {
	return orderevents.Event{
		OrderID:   strings.TrimSpace(dto.OrderID),
		Status:    strings.TrimSpace(dto.Status),
		CreatedAt: dto.CreatedAt,
	}
}
