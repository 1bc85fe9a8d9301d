// Package queue defines the event payloads published when bookings and
// payouts change state, and an AMQP publisher for them.
package queue

import "context"

// BookingStatusEvent is published whenever a booking's lifecycle status
// changes. It carries enough for downstream consumers to notify or log
// without querying the primary store.
type BookingStatusEvent struct {
	BookingID     string `json:"booking_id"`
	TripID        string `json:"trip_id"`
	CustomerID    string `json:"customer_id"`
	DriverID      string `json:"driver_id,omitempty"`
	DealerID      string `json:"dealer_id,omitempty"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	FinalPrice    int64  `json:"final_price"`
	OccurredAt    string `json:"occurred_at"`
}

// PayoutProcessedEvent is published when an admin settles a payout.
type PayoutProcessedEvent struct {
	PayoutID        string `json:"payout_id"`
	BookingID       string `json:"booking_id"`
	DriverID        string `json:"driver_id,omitempty"`
	DealerID        string `json:"dealer_id,omitempty"`
	BookingPrice    int64  `json:"booking_price"`
	AdminCommission int64  `json:"admin_commission"`
	DealerAmount    int64  `json:"dealer_amount"`
	DriverAmount    int64  `json:"driver_amount"`
	ProcessedAt     string `json:"processed_at"`
}

// Publisher delivers events to the broker. Implementations must tolerate
// broker outages; event delivery is best-effort and never blocks the
// booking or payout flow.
type Publisher interface {
	PublishBookingStatus(ctx context.Context, event BookingStatusEvent) error
	PublishPayoutProcessed(ctx context.Context, event PayoutProcessedEvent) error
}
