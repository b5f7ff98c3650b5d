package orderrepo

import (
	"encoding/json"
	"fmt"
	"time"

	"hatod/internal/core/domain/model/order"
)

// createdPayload is the wire shape of an order.created outbox row.
type createdPayload struct {
	OrderID    string `json:"orderId"`
	CustomerID string `json:"customerId"`
	MerchantID string `json:"merchantId"`
	Total      int64  `json:"total"`
	At         string `json:"at"`
}

// statusChangedPayload is the wire shape of an order.statusChanged outbox row.
type statusChangedPayload struct {
	OrderID string `json:"orderId"`
	From    string `json:"fromStatus"`
	To      string `json:"toStatus"`
	Actor   string `json:"actor"`
	At      string `json:"at"`
}

// assignedPayload is the wire shape of an order.assigned outbox row.
type assignedPayload struct {
	OrderID    string `json:"orderId"`
	RiderID    string `json:"riderId"`
	AssignedAt string `json:"assignedAt"`
}

// cancelledPayload is the wire shape of an order.cancelled outbox row.
type cancelledPayload struct {
	OrderID     string `json:"orderId"`
	Reason      string `json:"reason"`
	CancelledBy string `json:"cancelledBy"`
	At          string `json:"at"`
}

// eventToDTO converts a domain event into an outbox row. Unknown event types
// are an error rather than a silent drop: every recorded event must reach
// the bus.
func eventToDTO(event order.Event) (OrderEventDTO, error) {
	var payload any
	var occurredAt time.Time

	switch e := event.(type) {
	case order.CreatedEvent:
		occurredAt = e.At
		payload = createdPayload{
			OrderID:    e.OrderID.String(),
			CustomerID: e.CustomerID.String(),
			MerchantID: e.MerchantID.String(),
			Total:      e.Total.Centavos(),
			At:         e.At.Format(time.RFC3339Nano),
		}
	case order.StatusChangedEvent:
		occurredAt = e.At
		payload = statusChangedPayload{
			OrderID: e.OrderID.String(),
			From:    e.From.String(),
			To:      e.To.String(),
			Actor:   e.Actor.String(),
			At:      e.At.Format(time.RFC3339Nano),
		}
	case order.AssignedEvent:
		occurredAt = e.AssignedAt
		payload = assignedPayload{
			OrderID:    e.OrderID.String(),
			RiderID:    e.RiderID.String(),
			AssignedAt: e.AssignedAt.Format(time.RFC3339Nano),
		}
	case order.CancelledEvent:
		occurredAt = e.At
		payload = cancelledPayload{
			OrderID:     e.OrderID.String(),
			Reason:      e.Reason,
			CancelledBy: e.CancelledBy.String(),
			At:          e.At.Format(time.RFC3339Nano),
		}
	default:
		return OrderEventDTO{}, fmt.Errorf("unknown order event type %T", event)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return OrderEventDTO{}, err
	}

	return OrderEventDTO{
		OrderID:    event.AggregateID().Bytes(),
		Name:       event.Name(),
		Payload:    raw,
		OccurredAt: occurredAt,
	}, nil
}
